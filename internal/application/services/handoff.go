package services

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/DanielPopoola/cps-gateway/internal/application"
	"github.com/DanielPopoola/cps-gateway/internal/config"
	"github.com/DanielPopoola/cps-gateway/internal/domain"
	"github.com/go-playground/validator"
)

// HandoffField is one hidden form input posted to the hosted payment page.
type HandoffField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Handoff is everything the shopper's browser needs to continue to Cornerstone.
type Handoff struct {
	OrderID   int64          `json:"order_id" validate:"required"`
	ActionURL string         `json:"action_url" validate:"required,url"`
	Method    string         `json:"method" validate:"required"`
	Fields    []HandoffField `json:"fields" validate:"required,min=1,dive"`
}

// Value returns the first field with the given name.
func (h *Handoff) Value(name string) string {
	for _, f := range h.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

type HandoffBuilder struct {
	cfg      config.GatewayConfig
	validate *validator.Validate
}

func NewHandoffBuilder(cfg config.GatewayConfig) *HandoffBuilder {
	return &HandoffBuilder{
		cfg:      cfg,
		validate: validator.New(),
	}
}

// Build assembles the POST form for an order still awaiting payment.
func (b *HandoffBuilder) Build(order *domain.Order) (*Handoff, error) {
	if !order.AwaitingPayment() {
		return nil, domain.NewInvalidStateError(order.Status, domain.StatusPending, domain.StatusOnHold)
	}
	if !b.currencyAllowed(order.Total.Currency) {
		return nil, domain.NewUnsupportedCurrencyError(order.Total.Currency)
	}

	callback, err := b.callbackURL(order.ID)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	merchantID, merchantKey := b.cfg.Credentials()
	number := strconv.FormatInt(order.ID, 10)

	h := &Handoff{
		OrderID:   order.ID,
		ActionURL: b.cfg.CheckoutURL(),
		Method:    http.MethodPost,
		Fields: []HandoffField{
			{Name: "merchant_id", Value: merchantID},
			{Name: "merchant_key", Value: merchantKey},
			{Name: "callback", Value: callback},
			{Name: "memo[Order No. ]", Value: number},
			{Name: "memo[Description]", Value: fmt.Sprintf("New order from %s", b.cfg.StoreName)},
			{Name: "amount", Value: order.Total.String()},
			{Name: "name", Value: fmt.Sprintf("%s purchase, Order %s", b.cfg.StoreName, number)},
			{Name: "oneitem", Value: "1"},
		},
	}

	if err := b.validate.Struct(h); err != nil {
		return nil, application.NewInvalidInputError(err)
	}
	return h, nil
}

func (b *HandoffBuilder) currencyAllowed(currency string) bool {
	return slices.ContainsFunc(b.cfg.CurrencyAllowlist, func(c string) bool {
		return strings.EqualFold(c, currency)
	})
}

func (b *HandoffBuilder) callbackURL(orderID int64) (string, error) {
	u, err := url.Parse(b.cfg.CallbackURL)
	if err != nil {
		return "", fmt.Errorf("parse callback url: %w", err)
	}
	q := u.Query()
	q.Set(domain.ParamOrderID, strconv.FormatInt(orderID, 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
