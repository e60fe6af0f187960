// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/patungan/internal/calculator"
	"github.com/mmynk/patungan/internal/models"
	"github.com/mmynk/patungan/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Foreign keys are a per-connection pragma, so request them in the DSN.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; one connection avoids SQLITE_BUSY between our own queries.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateBill persists a new bill to the database.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}
	if bill.UpdatedAt == 0 {
		bill.UpdatedAt = bill.CreatedAt
	}
	if bill.Title == "" {
		bill.Title = generateTitle(bill.People)
	}
	assignItemIDs(bill)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO bills (id, owner_id, group_id, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		bill.ID, bill.OwnerID, nullable(bill.GroupID), bill.Title, bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	if err := insertBillChildren(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateBill replaces the bill's title, group, people and items.
// OwnerID and CreatedAt are kept from the stored row.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.Bill) error {
	bill.UpdatedAt = time.Now().Unix()
	if bill.Title == "" {
		bill.Title = generateTitle(bill.People)
	}
	assignItemIDs(bill)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		"SELECT owner_id, created_at FROM bills WHERE id = ?", bill.ID,
	).Scan(&bill.OwnerID, &bill.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("bill %s: %w", bill.ID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get bill: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE bills SET group_id = ?, title = ?, updated_at = ? WHERE id = ?",
		nullable(bill.GroupID), bill.Title, bill.UpdatedAt, bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}

	for _, table := range []string{
		"expense_participants", "expenses",
		"additional_expense_participants", "additional_expenses",
		"bill_people",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE bill_id = ?", bill.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := insertBillChildren(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteBill removes a bill; child rows cascade.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted bill: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	return nil
}

// GetBill retrieves a bill by ID, including people, expenses and additional expenses.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	bill := &models.Bill{}
	var groupID sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT id, owner_id, group_id, title, created_at, updated_at FROM bills WHERE id = ?",
		billID,
	).Scan(&bill.ID, &bill.OwnerID, &groupID, &bill.Title, &bill.CreatedAt, &bill.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	bill.GroupID = groupID.String

	bill.People, err = s.queryStrings(ctx,
		"SELECT name FROM bill_people WHERE bill_id = ? ORDER BY position", billID)
	if err != nil {
		return nil, fmt.Errorf("failed to get people: %w", err)
	}

	if bill.Expenses, err = s.getExpenses(ctx, billID); err != nil {
		return nil, err
	}
	if bill.AdditionalExpenses, err = s.getAdditionalExpenses(ctx, billID); err != nil {
		return nil, err
	}

	return bill, nil
}

// ListBillsByOwner retrieves all bills created by a user.
func (s *SQLiteStore) ListBillsByOwner(ctx context.Context, ownerID string) ([]*models.Bill, error) {
	ids, err := s.queryStrings(ctx,
		"SELECT id FROM bills WHERE owner_id = ? ORDER BY created_at DESC, id", ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills by owner: %w", err)
	}
	return s.getBills(ctx, ids)
}

// ListBillsByGroup retrieves all bills associated with a group.
func (s *SQLiteStore) ListBillsByGroup(ctx context.Context, groupID string) ([]*models.Bill, error) {
	ids, err := s.queryStrings(ctx,
		"SELECT id FROM bills WHERE group_id = ? ORDER BY created_at DESC, id", groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills by group: %w", err)
	}
	return s.getBills(ctx, ids)
}

func (s *SQLiteStore) getBills(ctx context.Context, ids []string) ([]*models.Bill, error) {
	bills := make([]*models.Bill, 0, len(ids))
	for _, id := range ids {
		bill, err := s.GetBill(ctx, id)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, nil
}

func (s *SQLiteStore) getExpenses(ctx context.Context, billID string) ([]models.Expense, error) {
	who, err := s.participantsByItem(ctx,
		"SELECT expense_id, name FROM expense_participants WHERE bill_id = ? ORDER BY expense_id, position", billID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense participants: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, item, amount, paid_by FROM expenses WHERE bill_id = ? ORDER BY position", billID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Item, &e.Amount, &e.PaidBy); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Who = who[e.ID]
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

func (s *SQLiteStore) getAdditionalExpenses(ctx context.Context, billID string) ([]models.AdditionalExpense, error) {
	who, err := s.participantsByItem(ctx,
		"SELECT expense_id, name FROM additional_expense_participants WHERE bill_id = ? ORDER BY expense_id, position", billID)
	if err != nil {
		return nil, fmt.Errorf("failed to get additional expense participants: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, amount, paid_by, split_type FROM additional_expenses WHERE bill_id = ? ORDER BY position", billID)
	if err != nil {
		return nil, fmt.Errorf("failed to get additional expenses: %w", err)
	}
	defer rows.Close()

	var extras []models.AdditionalExpense
	for rows.Next() {
		var a models.AdditionalExpense
		var split string
		if err := rows.Scan(&a.ID, &a.Name, &a.Amount, &a.PaidBy, &split); err != nil {
			return nil, fmt.Errorf("failed to scan additional expense: %w", err)
		}
		a.SplitType = calculator.SplitType(split)
		a.Who = who[a.ID]
		extras = append(extras, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate additional expenses: %w", err)
	}
	return extras, nil
}

// participantsByItem groups (item id, name) rows by item id.
func (s *SQLiteStore) participantsByItem(ctx context.Context, query, billID string) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, query, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var itemID, name string
		if err := rows.Scan(&itemID, &name); err != nil {
			return nil, err
		}
		out[itemID] = append(out[itemID], name)
	}
	return out, rows.Err()
}

// queryStrings runs a single-column query and collects the values.
func (s *SQLiteStore) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func insertBillChildren(ctx context.Context, tx *sql.Tx, bill *models.Bill) error {
	for i, name := range bill.People {
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO bill_people (bill_id, name, position) VALUES (?, ?, ?)",
			bill.ID, name, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}
	}

	for i, e := range bill.Expenses {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expenses (bill_id, id, position, item, amount, paid_by) VALUES (?, ?, ?, ?, ?, ?)",
			bill.ID, e.ID, i, e.Item, e.Amount, e.PaidBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}
		for j, name := range e.Who {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO expense_participants (bill_id, expense_id, position, name) VALUES (?, ?, ?, ?)",
				bill.ID, e.ID, j, name,
			)
			if err != nil {
				return fmt.Errorf("failed to insert expense participant: %w", err)
			}
		}
	}

	for i, a := range bill.AdditionalExpenses {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO additional_expenses (bill_id, id, position, name, amount, paid_by, split_type) VALUES (?, ?, ?, ?, ?, ?, ?)",
			bill.ID, a.ID, i, a.Name, a.Amount, a.PaidBy, string(a.SplitType),
		)
		if err != nil {
			return fmt.Errorf("failed to insert additional expense: %w", err)
		}
		for j, name := range a.Who {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO additional_expense_participants (bill_id, expense_id, position, name) VALUES (?, ?, ?, ?)",
				bill.ID, a.ID, j, name,
			)
			if err != nil {
				return fmt.Errorf("failed to insert additional expense participant: %w", err)
			}
		}
	}

	return nil
}

// assignItemIDs gives every expense and additional expense without an ID a fresh one.
func assignItemIDs(bill *models.Bill) {
	for i := range bill.Expenses {
		if bill.Expenses[i].ID == "" {
			bill.Expenses[i].ID = uuid.New().String()
		}
	}
	for i := range bill.AdditionalExpenses {
		if bill.AdditionalExpenses[i].ID == "" {
			bill.AdditionalExpenses[i].ID = uuid.New().String()
		}
	}
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// generateTitle creates an auto-generated title from the people on the bill.
func generateTitle(people []string) string {
	if len(people) == 0 {
		return fmt.Sprintf("Bill - %s", time.Now().Format("Jan 2, 2006"))
	}
	if len(people) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(people, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(people[:2], ", "),
		len(people)-2,
	)
}
