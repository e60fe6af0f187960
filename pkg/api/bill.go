// Package api defines the request and response messages of the Patungan RPC services.
//
// Messages are plain structs carried as JSON over Connect (see package apiconnect).
// Amounts are whole Rupiah. Struct tags drive go-playground/validator checks in the
// service layer; item-level fields are deliberately loose so drafts can be saved.
package api

// Expense is a line item shared equally by Who and fronted by PaidBy.
type Expense struct {
	ID     string   `json:"id,omitempty"`
	Item   string   `json:"item"`
	Amount int64    `json:"amount"`
	Who    []string `json:"who"`
	PaidBy string   `json:"paidBy"`
}

// AdditionalExpense is a tax, service charge, discount or other bill-wide cost.
type AdditionalExpense struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name"`
	Amount    int64    `json:"amount"`
	Who       []string `json:"who"`
	PaidBy    string   `json:"paidBy"`
	SplitType string   `json:"splitType" validate:"omitempty,oneof=equally proportionally"`
}

// BillItem is one person's share of an expense or additional expense.
type BillItem struct {
	ExpenseID    string `json:"expenseId"`
	Name         string `json:"name"`
	Share        int64  `json:"share"`
	IsAdditional bool   `json:"isAdditional"`
	Method       string `json:"method,omitempty"`
}

// Balance is one person's totals on a bill or across a group.
type Balance struct {
	Paid  int64      `json:"paid"`
	Spent int64      `json:"spent"`
	Net   int64      `json:"net"` // spent - paid; positive means the person owes
	Items []BillItem `json:"items,omitempty"`
}

// SettlementInstruction tells From to pay To.
type SettlementInstruction struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

// Summary is the computed view of a bill.
type Summary struct {
	People                 []string                `json:"people"`
	TotalSpent             int64                   `json:"totalSpent"`
	Balances               map[string]*Balance     `json:"balances"`
	Badges                 map[string][]string     `json:"badges"`
	SettlementInstructions []SettlementInstruction `json:"settlementInstructions"`
	Excluded               []string                `json:"excluded,omitempty"`
}

// Bill is a stored bill.
type Bill struct {
	ID                 string              `json:"id"`
	GroupID            string              `json:"groupId,omitempty"`
	Title              string              `json:"title"`
	People             []string            `json:"people"`
	Expenses           []Expense           `json:"expenses"`
	AdditionalExpenses []AdditionalExpense `json:"additionalExpenses"`
	Total              int64               `json:"total"`
	CreatedAt          int64               `json:"createdAt"`
	UpdatedAt          int64               `json:"updatedAt"`
}

// BillSummary is a bill row in a listing.
type BillSummary struct {
	BillID      string `json:"billId"`
	GroupID     string `json:"groupId,omitempty"`
	Title       string `json:"title"`
	Total       int64  `json:"total"`
	PeopleCount int32  `json:"peopleCount"`
	CreatedAt   int64  `json:"createdAt"`
}

type CalculateRequest struct {
	People             []string            `json:"people" validate:"dive,required"`
	Expenses           []Expense           `json:"expenses" validate:"dive"`
	AdditionalExpenses []AdditionalExpense `json:"additionalExpenses" validate:"dive"`
}

type CalculateResponse struct {
	Summary *Summary `json:"summary"`
}

type CreateBillRequest struct {
	Title              string              `json:"title"`
	GroupID            string              `json:"groupId,omitempty"`
	People             []string            `json:"people" validate:"min=1,dive,required"`
	Expenses           []Expense           `json:"expenses" validate:"dive"`
	AdditionalExpenses []AdditionalExpense `json:"additionalExpenses" validate:"dive"`
}

type CreateBillResponse struct {
	Bill    *Bill    `json:"bill"`
	Summary *Summary `json:"summary"`
}

type GetBillRequest struct {
	BillID string `json:"billId" validate:"required"`
}

type GetBillResponse struct {
	Bill      *Bill    `json:"bill"`
	Summary   *Summary `json:"summary"`
	GroupName string   `json:"groupName,omitempty"`
}

type UpdateBillRequest struct {
	BillID             string              `json:"billId" validate:"required"`
	Title              string              `json:"title"`
	GroupID            string              `json:"groupId,omitempty"`
	People             []string            `json:"people" validate:"min=1,dive,required"`
	Expenses           []Expense           `json:"expenses" validate:"dive"`
	AdditionalExpenses []AdditionalExpense `json:"additionalExpenses" validate:"dive"`
}

type UpdateBillResponse struct {
	Bill    *Bill    `json:"bill"`
	Summary *Summary `json:"summary"`
}

type DeleteBillRequest struct {
	BillID string `json:"billId" validate:"required"`
}

type DeleteBillResponse struct{}

type ListBillsRequest struct {
	// GroupID restricts the listing to one group when set.
	GroupID string `json:"groupId,omitempty"`
}

type ListBillsResponse struct {
	Bills []*BillSummary `json:"bills"`
}

type GetReceiptRequest struct {
	BillID string `json:"billId" validate:"required"`
}

type GetReceiptResponse struct {
	Text string `json:"text"`
}
