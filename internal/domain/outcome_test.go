package domain_test

import (
	"testing"

	"github.com/DanielPopoola/cps-gateway/internal/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInterpret(t *testing.T) {
	for _, s := range []string{"Approved", "APPROVED", "approved", "aPPrOvEd"} {
		assert.Equal(t, domain.OutcomeApproved, domain.Interpret(s).Kind, s)
	}

	for _, s := range []string{"Declined", "DECLINED", "declined"} {
		assert.Equal(t, domain.OutcomeDeclined, domain.Interpret(s).Kind, s)
	}

	for _, s := range []string{"", "pending", "approved ", "approvedx", "decline", "error 42"} {
		got := domain.Interpret(s)
		assert.Equal(t, domain.OutcomeIndeterminate, got.Kind, s)
		assert.Equal(t, s, got.Raw, "indeterminate keeps the original status")
	}
}

func TestGatewayOutcome_String(t *testing.T) {
	assert.Equal(t, "APPROVED", domain.Approved("approved").String())
	assert.Equal(t, "DECLINED", domain.Declined("declined").String())
	assert.Equal(t, `INDETERMINATE("odd")`, domain.Indeterminate("odd").String())
}

func TestAmountsEqual(t *testing.T) {
	cases := []struct {
		expected string
		reported string
		want     bool
	}{
		{"100.00", "100.00", true},
		{"100.00", "100.009", true},
		{"100.00", "99.991", true},
		{"100.00", "100.01", false},
		{"100.00", "99.99", false},
		{"100.00", "100.02", false},
		{"100.00", "100.011", false},
		{"49.99", "50", false},
	}

	for _, tc := range cases {
		got := domain.AmountsEqual(decimal.MustParse(tc.expected), decimal.MustParse(tc.reported))
		assert.Equal(t, tc.want, got, "%s vs %s", tc.expected, tc.reported)
	}
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "49.99", domain.Money{Cents: 4999, Currency: "USD"}.String())
	assert.Equal(t, "50.00", domain.Money{Cents: 5000, Currency: "USD"}.String())
	assert.Equal(t, "0.05", domain.Money{Cents: 5, Currency: "USD"}.String())
}
