package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// minorUnitExp is the exponent between minor and major currency units (cents).
const minorUnitExp = -2

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// MoneyFromMinor converts an amount in minor units into Money in major units.
func MoneyFromMinor(minor int64, unit currency.Unit) Money {
	return Money{
		Amount:   decimal.New(minor, minorUnitExp),
		Currency: unit,
	}
}

func (m Money) Add(other Money) Money {
	return Money{
		Amount:   m.Amount.Add(other.Amount),
		Currency: m.Currency,
	}
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(-minorUnitExp), m.Currency)
}
