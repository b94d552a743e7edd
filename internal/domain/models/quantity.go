package models

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var quantityPattern = regexp.MustCompile(`^\s*(\d+(?:[.,]\d+)?)\s*(.*?)\s*$`)

// Quantity is the structured reading of a free-text quantity such as "500g" or "1.5 kg".
// It is for display and sorting only; no unit conversion is attempted.
type Quantity struct {
	Magnitude decimal.Decimal
	Unit      string
}

// ParseQuantity extracts a leading magnitude and the trailing unit text.
func ParseQuantity(text string) (Quantity, bool) {
	m := quantityPattern.FindStringSubmatch(text)
	if m == nil {
		return Quantity{}, false
	}
	magnitude, err := decimal.NewFromString(strings.Replace(m[1], ",", ".", 1))
	if err != nil {
		return Quantity{}, false
	}
	return Quantity{Magnitude: magnitude, Unit: m[2]}, true
}

// String renders the quantity back to display text.
func (q Quantity) String() string {
	if q.Unit == "" {
		return q.Magnitude.String()
	}
	if len(q.Unit) <= 2 {
		return q.Magnitude.String() + q.Unit
	}
	return q.Magnitude.String() + " " + q.Unit
}
