// Package models defines the persisted domain records for Patungan.
//
// # Models
//
//   - Bill: one split-expense session with its people, expenses and additional expenses
//   - Expense / AdditionalExpense: line items and bill-wide costs (tax, service, discount)
//   - Group: a reusable set of people whose bills and payments are netted together
//   - Payment: a real transfer between two group members recorded to settle debts
//   - User: a registered account that owns bills and groups
//
// People are identified by display name only; names are unique within a bill.
// Amounts are whole Rupiah in int64.
//
// Derived data (balances, badges, settlement instructions) is never stored; it is
// recomputed from these records by the calculator package on every read.
package models
