package services

import "errors"

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already registered")

	ErrNotFound = errors.New("not found")
	ErrNotOwner = errors.New("not the seller of this listing")

	ErrOwnListing         = errors.New("cannot buy your own listing")
	ErrProductUnavailable = errors.New("product is not available")
	ErrProductSold        = errors.New("sold listings cannot be edited")

	ErrEmptyCart        = errors.New("cart is empty")
	ErrDuplicateAttempt = errors.New("duplicate checkout attempt")
	ErrNotReconcilable  = errors.New("attempt is not awaiting reconciliation")
)
