// Package pricing computes booking totals in exact decimal arithmetic.
// Binary floating point would drift on currency amounts.
package pricing

import (
	"github.com/Domenick1991/skybooking/internal/domain"
	"github.com/shopspring/decimal"
)

// ClassModifier returns the default price modifier for a seat class.
func ClassModifier(class domain.SeatClass) decimal.Decimal {
	switch class {
	case domain.SeatClassBusiness:
		return decimal.NewFromFloat(1.5)
	case domain.SeatClassFirst:
		return decimal.NewFromInt(2)
	default:
		return decimal.NewFromInt(1)
	}
}

// Total is the booking price law: base fare times the seat's modifier.
// Pure and side-effect free, callable outside any transaction.
func Total(baseFare, modifier decimal.Decimal) decimal.Decimal {
	return baseFare.Mul(modifier)
}
