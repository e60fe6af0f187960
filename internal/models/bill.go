package models

import "github.com/mmynk/patungan/internal/calculator"

// Bill represents one split-expense session among a set of people.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// OwnerID is the user who created the bill.
	OwnerID string

	// GroupID optionally links the bill to a group ledger.
	GroupID string

	// Title is the human-readable name for the bill.
	// Auto-generated from the people when left empty.
	Title string

	// People is the participant list, in display order.
	People []string

	// Expenses are the shared line items.
	Expenses []Expense

	// AdditionalExpenses are tax, service charge, discounts and other bill-wide costs.
	AdditionalExpenses []AdditionalExpense

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last update.
	UpdatedAt int64
}

// Expense is a line item split equally among Who and fronted by PaidBy.
// An empty PaidBy or Who marks a draft that the calculator skips.
type Expense struct {
	ID     string
	Item   string
	Amount int64
	Who    []string
	PaidBy string
}

// AdditionalExpense is a bill-wide cost. Amount is negative for discounts.
type AdditionalExpense struct {
	ID        string
	Name      string
	Amount    int64
	Who       []string
	PaidBy    string
	SplitType calculator.SplitType
}

// Input converts the bill into calculator input.
func (b *Bill) Input() calculator.Input {
	in := calculator.Input{
		People:             b.People,
		Expenses:           make([]calculator.Expense, len(b.Expenses)),
		AdditionalExpenses: make([]calculator.AdditionalExpense, len(b.AdditionalExpenses)),
	}
	for i, e := range b.Expenses {
		in.Expenses[i] = calculator.Expense{
			ID:     e.ID,
			Item:   e.Item,
			Amount: e.Amount,
			Who:    e.Who,
			PaidBy: e.PaidBy,
		}
	}
	for i, a := range b.AdditionalExpenses {
		in.AdditionalExpenses[i] = calculator.AdditionalExpense{
			ID:        a.ID,
			Name:      a.Name,
			Amount:    a.Amount,
			Who:       a.Who,
			PaidBy:    a.PaidBy,
			SplitType: a.SplitType,
		}
	}
	return in
}

// Total is the sum of every expense and additional expense, drafts included.
func (b *Bill) Total() int64 {
	var total int64
	for _, e := range b.Expenses {
		total += e.Amount
	}
	for _, a := range b.AdditionalExpenses {
		total += a.Amount
	}
	return total
}
