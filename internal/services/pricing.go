package services

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNegativeAmount is returned when a deposit split is requested for a
// negative order total.
var ErrNegativeAmount = errors.New("services: amount must not be negative")

var two = decimal.NewFromInt(2)

// DepositSplit divides an order total into the up-front deposit and the
// balance due on delivery. The deposit is half the total rounded to cents;
// the remainder is whatever is left, so the two parts always sum back to
// the exact total.
func DepositSplit(total decimal.Decimal) (deposit, remaining decimal.Decimal, err error) {
	if total.IsNegative() {
		return decimal.Zero, decimal.Zero, ErrNegativeAmount
	}
	deposit = total.Div(two).Round(2)
	remaining = total.Sub(deposit)
	return deposit, remaining, nil
}

// MinorUnits converts a cent-precision decimal amount into the integer
// minor-unit form payment processors expect ($12.50 becomes 1250).
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Round(2).Shift(2).IntPart()
}
