package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/patungan/internal/calculator"
	"github.com/mmynk/patungan/internal/models"
	"github.com/mmynk/patungan/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleBill() *models.Bill {
	return &models.Bill{
		OwnerID: "user-1",
		People:  []string{"Alice", "Bob", "Carol"},
		Expenses: []models.Expense{
			{Item: "Nasi Goreng", Amount: 45000, Who: []string{"Carol", "Alice"}, PaidBy: "Alice"},
			{Item: "Es Teh", Amount: 15000, Who: []string{"Bob", "Alice", "Carol"}, PaidBy: "Bob"},
		},
		AdditionalExpenses: []models.AdditionalExpense{
			{Name: "PPN", Amount: 6000, Who: []string{"Alice", "Bob", "Carol"}, PaidBy: "Alice", SplitType: calculator.SplitProportionally},
			{Name: "Promo", Amount: -3000, Who: []string{"Bob"}, PaidBy: "Alice", SplitType: calculator.SplitEqually},
		},
	}
}

func TestSQLiteStore_Bills(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateBill generates IDs and title", func(t *testing.T) {
		bill := sampleBill()
		require.NoError(t, store.CreateBill(ctx, bill))

		assert.NotEmpty(t, bill.ID)
		assert.Equal(t, "Split with Alice, Bob, Carol", bill.Title)
		assert.NotZero(t, bill.CreatedAt)
		assert.Equal(t, bill.CreatedAt, bill.UpdatedAt)
		for _, e := range bill.Expenses {
			assert.NotEmpty(t, e.ID)
		}
		for _, a := range bill.AdditionalExpenses {
			assert.NotEmpty(t, a.ID)
		}
	})

	t.Run("GetBill round-trips every field in order", func(t *testing.T) {
		original := sampleBill()
		original.Title = "Warung Makan"
		original.Expenses[0].ID = "e-1"
		require.NoError(t, store.CreateBill(ctx, original))

		got, err := store.GetBill(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, original, got)
	})

	t.Run("GetBill returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetBill(ctx, "nonexistent-id")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("bill without items", func(t *testing.T) {
		bill := &models.Bill{OwnerID: "user-1", People: []string{"Dina"}}
		require.NoError(t, store.CreateBill(ctx, bill))

		got, err := store.GetBill(ctx, bill.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Dina"}, got.People)
		assert.Empty(t, got.Expenses)
		assert.Empty(t, got.AdditionalExpenses)
	})

	t.Run("draft items keep empty payer and participants", func(t *testing.T) {
		bill := &models.Bill{
			OwnerID:  "user-1",
			People:   []string{"Eko"},
			Expenses: []models.Expense{{ID: "draft", Item: "Parkir", Amount: 5000}},
		}
		require.NoError(t, store.CreateBill(ctx, bill))

		got, err := store.GetBill(ctx, bill.ID)
		require.NoError(t, err)
		require.Len(t, got.Expenses, 1)
		assert.Empty(t, got.Expenses[0].PaidBy)
		assert.Nil(t, got.Expenses[0].Who)
	})

	t.Run("UpdateBill replaces children and keeps owner", func(t *testing.T) {
		bill := sampleBill()
		require.NoError(t, store.CreateBill(ctx, bill))

		updated := &models.Bill{
			ID:      bill.ID,
			OwnerID: "someone-else",
			Title:   "Renamed",
			People:  []string{"Alice", "Bob"},
			Expenses: []models.Expense{
				{ID: "only", Item: "Martabak", Amount: 80000, Who: []string{"Alice", "Bob"}, PaidBy: "Bob"},
			},
		}
		require.NoError(t, store.UpdateBill(ctx, updated))
		assert.Equal(t, "user-1", updated.OwnerID)
		assert.Equal(t, bill.CreatedAt, updated.CreatedAt)

		got, err := store.GetBill(ctx, bill.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, []string{"Alice", "Bob"}, got.People)
		assert.Equal(t, updated.Expenses, got.Expenses)
		assert.Empty(t, got.AdditionalExpenses)
	})

	t.Run("UpdateBill returns ErrNotFound", func(t *testing.T) {
		err := store.UpdateBill(ctx, &models.Bill{ID: "missing", People: []string{"X"}})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("DeleteBill", func(t *testing.T) {
		bill := sampleBill()
		require.NoError(t, store.CreateBill(ctx, bill))
		require.NoError(t, store.DeleteBill(ctx, bill.ID))

		_, err := store.GetBill(ctx, bill.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, store.DeleteBill(ctx, bill.ID), storage.ErrNotFound)
	})

	t.Run("same item IDs in different bills", func(t *testing.T) {
		a := &models.Bill{OwnerID: "user-2", People: []string{"A"}, Expenses: []models.Expense{{ID: "1", Item: "x", Amount: 1, Who: []string{"A"}, PaidBy: "A"}}}
		b := &models.Bill{OwnerID: "user-2", People: []string{"A"}, Expenses: []models.Expense{{ID: "1", Item: "y", Amount: 2, Who: []string{"A"}, PaidBy: "A"}}}
		require.NoError(t, store.CreateBill(ctx, a))
		require.NoError(t, store.CreateBill(ctx, b))

		bills, err := store.ListBillsByOwner(ctx, "user-2")
		require.NoError(t, err)
		assert.Len(t, bills, 2)
	})

	t.Run("ListBillsByOwner filters by owner", func(t *testing.T) {
		bills, err := store.ListBillsByOwner(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, bills)
	})
}

func TestSQLiteStore_Groups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{OwnerID: "user-1", Name: "Kos Mawar", Members: []string{"Alice", "Bob"}}
	require.NoError(t, store.CreateGroup(ctx, group))
	assert.NotEmpty(t, group.ID)
	assert.NotZero(t, group.CreatedAt)

	t.Run("GetGroup", func(t *testing.T) {
		got, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, group, got)

		_, err = store.GetGroup(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("AddGroupMembers appends new names only", func(t *testing.T) {
		require.NoError(t, store.AddGroupMembers(ctx, group.ID, []string{"Bob", "Carol"}))

		got, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice", "Bob", "Carol"}, got.Members)

		assert.ErrorIs(t, store.AddGroupMembers(ctx, "missing", []string{"X"}), storage.ErrNotFound)
	})

	t.Run("ListGroupsByOwner", func(t *testing.T) {
		groups, err := store.ListGroupsByOwner(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, group.ID, groups[0].ID)
	})

	t.Run("bills link to groups", func(t *testing.T) {
		bill := sampleBill()
		bill.GroupID = group.ID
		require.NoError(t, store.CreateBill(ctx, bill))

		bills, err := store.ListBillsByGroup(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, bills, 1)
		assert.Equal(t, bill.ID, bills[0].ID)
		assert.Equal(t, group.ID, bills[0].GroupID)
	})

	t.Run("payments", func(t *testing.T) {
		p := &models.Payment{GroupID: group.ID, From: "Bob", To: "Alice", Amount: 25000, CreatedBy: "user-1"}
		require.NoError(t, store.CreatePayment(ctx, p))
		assert.NotEmpty(t, p.ID)

		withNote := &models.Payment{GroupID: group.ID, From: "Carol", To: "Alice", Amount: 1000, Note: "transfer BCA", CreatedBy: "user-1", CreatedAt: p.CreatedAt + 1}
		require.NoError(t, store.CreatePayment(ctx, withNote))

		got, err := store.GetPayment(ctx, withNote.ID)
		require.NoError(t, err)
		assert.Equal(t, withNote, got)

		list, err := store.ListPaymentsByGroup(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, p.ID, list[0].ID)
		assert.Empty(t, list[0].Note)

		require.NoError(t, store.DeletePayment(ctx, p.ID))
		assert.ErrorIs(t, store.DeletePayment(ctx, p.ID), storage.ErrNotFound)
		_, err = store.GetPayment(ctx, p.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("budi@example.com", "Budi", "hash")
	require.NoError(t, store.CreateUser(ctx, user))

	byEmail, err := store.GetUserByEmail(ctx, "budi@example.com")
	require.NoError(t, err)
	assert.Equal(t, user, byEmail)

	byID, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, byID)

	_, err = store.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	dup := models.NewUser("budi@example.com", "Budi 2", "hash")
	assert.ErrorIs(t, store.CreateUser(ctx, dup), storage.ErrConflict)
}

func TestGenerateTitle(t *testing.T) {
	assert.Equal(t, "Split with A", generateTitle([]string{"A"}))
	assert.Equal(t, "Split with A, B and 2 others", generateTitle([]string{"A", "B", "C", "D"}))
	assert.Contains(t, generateTitle(nil), "Bill - ")
}
