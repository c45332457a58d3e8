package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a get/update/delete target does not exist.
var ErrNotFound = errors.New("empreendedor not found")

// ErrTelefoneExhausted is returned when no collision-free phone value fits
// within the column budget.
var ErrTelefoneExhausted = errors.New("could not generate a unique telefone")

// DuplicateError reports a submission rejected by the recency guard.
type DuplicateError struct {
	ExistingID int64
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate submission detected within the last 2 minutes (existing id %d)", e.ExistingID)
}

// Repository is the persistence contract for entrepreneur records.
//
// Create enforces both duplicate policies inside a single transaction:
// first the recency guard (same phone within RecencyWindow plus a matching
// tax id or email rejects with DuplicateError), then the exact-collision
// renamer (a verbatim phone collision gets a "_N" suffix). Concurrent
// creations against the same phone rely on the store's transaction
// isolation, not application locking.
type Repository interface {
	Create(ctx context.Context, req CreateEmpreendedor) (Empreendedor, error)
	GetByID(ctx context.Context, id int64) (Empreendedor, error)
	GetByTelefone(ctx context.Context, telefone string) (Empreendedor, error)
	GetByEmail(ctx context.Context, email string) (Empreendedor, error)
	GetByCPF(ctx context.Context, cpf string) (Empreendedor, error)
	Search(ctx context.Context, filter SearchFilter) ([]Empreendedor, int64, error)
	Update(ctx context.Context, id int64, updates UpdateEmpreendedor) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (Stats, error)
}
