package flow

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"max.ks1230/expense-bot/internal/model/customerr"
)

const centsPlaces = 2

var amountPattern = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)

// ParseAmount accepts "12.5", "12,50" or "$12" and rounds to cents.
func ParseAmount(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(strings.TrimPrefix(text, "$"))
	text = strings.Replace(text, ",", ".", 1)

	if !amountPattern.MatchString(text) {
		return decimal.Zero, errors.Wrapf(customerr.ErrInvalidAmount, "parse amount %q", text)
	}
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	amount, err := decimal.NewFromString(strings.TrimSuffix(text, "."))
	if err != nil {
		return decimal.Zero, errors.Wrapf(customerr.ErrInvalidAmount, "parse amount %q", text)
	}

	amount = amount.Round(centsPlaces)
	if !amount.IsPositive() {
		return decimal.Zero, errors.Wrapf(customerr.ErrInvalidAmount, "parse amount %q", text)
	}
	return amount, nil
}
