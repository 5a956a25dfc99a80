package model

import "errors"

// Client-observed failure kinds reported by the remote POS API. The gateway
// classifies server responses into these once; everything downstream branches
// with errors.Is instead of inspecting message text.
var (
	ErrInsufficientStock = errors.New("insufficient stock quantity")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrProductNotFound   = errors.New("product not found")
)
