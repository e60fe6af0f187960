package models

// Group represents a reusable participant list.
// Bills linked to a group are netted together with the group's payments.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// OwnerID is the user who created the group.
	OwnerID string

	// Name is the display name of the group (e.g., "Kos Mawar", "Trip Bali").
	Name string

	// Members is the list of participant names in this group.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Payment represents a transfer between group members that settles debts.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// GroupID is the group this payment belongs to.
	GroupID string

	// From is the member who paid (debtor settling up).
	From string

	// To is the member who received the money (creditor being paid).
	To string

	// Amount is the payment amount in whole Rupiah.
	Amount int64

	// Note is an optional description.
	Note string

	// CreatedBy is the user ID who recorded this payment.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
