// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/patungan/internal/models"
)

// Sentinel errors wrapped by store implementations.
var (
	// ErrNotFound is wrapped by every lookup that finds no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is wrapped when a unique key already exists.
	ErrConflict = errors.New("already exists")
)

// BillStore persists bills together with their expenses and additional expenses.
type BillStore interface {
	// CreateBill persists a new bill. Empty IDs, title and timestamps are filled in.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill by its ID, with every child row.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// UpdateBill replaces an existing bill and all of its child rows.
	UpdateBill(ctx context.Context, bill *models.Bill) error

	// DeleteBill removes a bill and its child rows.
	DeleteBill(ctx context.Context, billID string) error

	// ListBillsByOwner returns the user's bills, newest first.
	ListBillsByOwner(ctx context.Context, ownerID string) ([]*models.Bill, error)

	// ListBillsByGroup returns the group's bills, newest first.
	ListBillsByGroup(ctx context.Context, groupID string) ([]*models.Bill, error)
}

// GroupStore persists groups and the payments recorded inside them.
type GroupStore interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroupsByOwner(ctx context.Context, ownerID string) ([]*models.Group, error)
	// AddGroupMembers appends names not already in the group.
	AddGroupMembers(ctx context.Context, groupID string, names []string) error

	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)
	ListPaymentsByGroup(ctx context.Context, groupID string) ([]*models.Payment, error)
	DeletePayment(ctx context.Context, paymentID string) error
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store defines the full storage surface used by the services.
// This abstraction allows swapping storage backends without changing the service layer.
type Store interface {
	BillStore
	GroupStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
