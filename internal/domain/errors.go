package domain

import "errors"

var (
	// ErrContainerNotFound is returned when an operation references a
	// container that no longer exists.
	ErrContainerNotFound = errors.New("container not found")

	// ErrItemNotFound is returned when an operation references an item that
	// is not present in the container it names.
	ErrItemNotFound = errors.New("item not found")

	// ErrInsufficientQuantity is returned when a move or decrement asks for
	// more units than the source item holds.
	ErrInsufficientQuantity = errors.New("insufficient quantity")

	// ErrInsufficientFunds is returned when a money transfer asks for more
	// coins of any denomination than the source account holds.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidTarget is returned when a transfer names a missing or
	// unusable target.
	ErrInvalidTarget = errors.New("invalid transfer target")

	// ErrFixedTreasury is returned when an operation would delete the fixed
	// treasury container.
	ErrFixedTreasury = errors.New("the treasury container cannot be deleted")

	// ErrValidation wraps input validation failures at the edit boundary.
	ErrValidation = errors.New("validation failed")
)
