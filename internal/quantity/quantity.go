// Package quantity enforces the bounded-quantity rule for import transactions:
// an import may never take more units than the product currently has available.
package quantity

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrNotANumber   = errors.New("quantity must be a whole number")
	ErrTooSmall     = errors.New("quantity must be at least 1")
	ErrExceedsStock = errors.New("quantity exceeds available stock")
)

// Validate reports whether qty is a legal import quantity for a product with
// `available` units in stock. Returns nil iff 1 <= qty <= available; importing
// the full stock is legal. Checks are ordered: lower bound first, then stock.
func Validate(qty, available int) error {
	if qty < 1 {
		return ErrTooSmall
	}
	if qty > available {
		return ErrExceedsStock
	}
	return nil
}

// Parse converts raw user input to a quantity and validates it against the
// available stock. Non-integer input (including decimals and empty strings)
// is rejected with ErrNotANumber before any range check.
func Parse(raw string, available int) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrNotANumber
	}
	if err := Validate(qty, available); err != nil {
		return 0, err
	}
	return qty, nil
}
