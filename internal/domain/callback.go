package domain

import (
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/govalues/decimal"
	"github.com/google/uuid"
)

// Wire parameter names used by the gateway callback.
const (
	ParamOrderID = "orderid"
	ParamStatus  = "status"
	ParamMessage = "message"
	ParamAmount  = "amount"
)

// CallbackNotification is one inbound gateway report. It lives for a single
// request and is never persisted; durable effects land on the Order.
type CallbackNotification struct {
	ID         uuid.UUID
	SourceIP   string
	OrderRef   string
	Status     string
	Message    string
	ReceivedAt time.Time

	// RawAmount is the sanitized amount text; empty when the gateway sent none.
	RawAmount string
	Amount    decimal.Decimal
	// AmountValid is false when RawAmount is present but not a number.
	AmountValid bool
}

// HasAmount reports whether the gateway included an amount field.
func (n *CallbackNotification) HasAmount() bool {
	return n.RawAmount != ""
}

// ParseCallback extracts and sanitizes the callback fields. Only the absence of
// the status parameter is an error; an empty status is a valid (indeterminate)
// report. With ErrMissingStatus the rest of the notification is still
// returned so the caller can decide to hold the order instead of dropping.
func ParseCallback(params url.Values, sourceIP string, receivedAt time.Time) (*CallbackNotification, error) {
	n := &CallbackNotification{
		SourceIP:   sourceIP,
		OrderRef:   keepDigits(params.Get(ParamOrderID)),
		Message:    keepAlnumSpace(params.Get(ParamMessage)),
		ReceivedAt: receivedAt,
	}

	if params.Has(ParamAmount) {
		n.RawAmount = keepAmount(params.Get(ParamAmount))
		if n.RawAmount != "" {
			amount, err := decimal.Parse(n.RawAmount)
			if err == nil {
				n.Amount = amount
				n.AmountValid = true
			}
		}
	}

	if !params.Has(ParamStatus) {
		return n, NewMissingStatusError()
	}
	n.Status = keepAlnumSpace(params.Get(ParamStatus))

	return n, nil
}

func keepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// keepAlnumSpace keeps ASCII letters, digits and whitespace.
func keepAlnumSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r < unicode.MaxASCII && unicode.IsSpace(r):
			return r
		}
		return -1
	}, s)
}

func keepAmount(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
}
