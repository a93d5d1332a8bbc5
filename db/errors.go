package db

import (
	"errors"
	"fmt"
)

// Conflict: the requested mutation is blocked by current loan state.
var (
	ErrLoanAlreadyReturned = errors.New("loan already returned")
	ErrItemHasActiveLoans  = errors.New("item has active loans and cannot be deleted")
)

// ErrNoItemsSelected rejects a loan request with an empty item list.
var ErrNoItemsSelected = &ValidationError{Msg: "no items selected"}

// ValidationError reports malformed input, rejected before any write.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError names the entity a lookup missed.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InsufficientStockError carries the item and its availability at the
// moment the request was refused.
type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q (%s): requested %d, available %d",
		e.ItemName, e.ItemID, e.Requested, e.Available)
}

// StorageError wraps a persistence failure with the operation that hit it.
// Any StorageError inside a transaction rolls the whole transaction back.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }
