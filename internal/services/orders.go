package services

import (
	"strconv"

	"github.com/AnshRaj112/userorders-backend/internal/models"
)

// TotalPrice sums price*quantity over orders.
func TotalPrice(orders []models.Order) float64 {
	var total float64
	for _, o := range orders {
		total += o.Price * float64(o.Quantity)
	}
	return total
}

// FormatAmount renders v with exactly two decimal places. Rounding is
// applied once, to the summed total.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func validateOrder(in models.OrderInput) error {
	if in.Price < 0 {
		return &ValidationError{Field: "price", Message: "must not be negative"}
	}
	if in.Quantity < 0 {
		return &ValidationError{Field: "quantity", Message: "must not be negative"}
	}
	return nil
}
