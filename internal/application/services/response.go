package services

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/DanielPopoola/cps-gateway/internal/domain"
)

// ResponseDirective tells the HTTP boundary what to send back to the gateway.
type ResponseDirective struct {
	Drop     bool
	Status   int
	Location string
}

// Drop ends the callback with no redirect.
func Drop() ResponseDirective {
	return ResponseDirective{Drop: true}
}

func Redirect(location string) ResponseDirective {
	return ResponseDirective{Status: http.StatusSeeOther, Location: location}
}

func (d ResponseDirective) IsRedirect() bool {
	return !d.Drop && d.Location != ""
}

// ResolveResponse sends the shopper to the order's receipt page. The result of
// the transition does not change where they land.
func ResolveResponse(returnURL string, order *domain.Order, _ AppliedResult) ResponseDirective {
	if order == nil {
		return Drop()
	}
	return Redirect(ReceiptURL(returnURL, order))
}

// ReceiptURL is <returnURL>/<order id>/?key=<order key>.
func ReceiptURL(returnURL string, order *domain.Order) string {
	base := strings.TrimRight(returnURL, "/")
	return base + "/" + strconv.FormatInt(order.ID, 10) + "/?key=" + url.QueryEscape(order.Key)
}
