package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/patungan/internal/calculator"
	"github.com/mmynk/patungan/internal/middleware"
	"github.com/mmynk/patungan/internal/models"
	"github.com/mmynk/patungan/internal/receipt"
	"github.com/mmynk/patungan/internal/storage"
	"github.com/mmynk/patungan/pkg/api"
	"github.com/mmynk/patungan/pkg/api/apiconnect"
)

var _ apiconnect.BillServiceHandler = (*BillService)(nil)

// BillService implements the Connect BillService.
type BillService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewBillService creates a new BillService with the given storage backend.
func NewBillService(store storage.Store, logger *slog.Logger) *BillService {
	return &BillService{store: store, logger: logger}
}

// compute runs the calculator and counts the computation.
func compute(in calculator.Input) calculator.Result {
	middleware.BillCalculations.Inc()
	return calculator.ComputeBill(in)
}

// checkItems enforces the rules the calculator does not: payers must be on the
// bill and item IDs must be unique. Drafts with no payer pass.
func checkItems(people []string, expenses []api.Expense, extras []api.AdditionalExpense) error {
	seen := make(map[string]bool)
	checkID := func(id string) error {
		if id == "" {
			return nil
		}
		if seen[id] {
			return fmt.Errorf("duplicate item id %q", id)
		}
		seen[id] = true
		return nil
	}
	checkPayer := func(payer string) error {
		if payer != "" && !slices.Contains(people, payer) {
			return fmt.Errorf("payer %q must be one of the people", payer)
		}
		return nil
	}

	for _, e := range expenses {
		if err := checkID(e.ID); err != nil {
			return err
		}
		if err := checkPayer(e.PaidBy); err != nil {
			return err
		}
	}
	for _, a := range extras {
		if err := checkID(a.ID); err != nil {
			return err
		}
		if err := checkPayer(a.PaidBy); err != nil {
			return err
		}
	}
	return nil
}

// ownedGroup loads a group and checks that userID owns it.
func (s *BillService) ownedGroup(ctx context.Context, groupID, userID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, storeError(s.logger, "GetGroup", err)
	}
	if err := checkOwner(group.OwnerID, userID); err != nil {
		return nil, err
	}
	return group, nil
}

// ownedBill loads a bill and checks that userID owns it.
func (s *BillService) ownedBill(ctx context.Context, billID, userID string) (*models.Bill, error) {
	bill, err := s.store.GetBill(ctx, billID)
	if err != nil {
		return nil, storeError(s.logger, "GetBill", err)
	}
	if err := checkOwner(bill.OwnerID, userID); err != nil {
		return nil, err
	}
	return bill, nil
}

// addPeopleToGroup adds everyone on the bill who is not yet a group member.
// Failures are logged; the bill itself is already saved.
func (s *BillService) addPeopleToGroup(ctx context.Context, group *models.Group, people []string) {
	newMembers := missingFrom(people, group.Members)
	if len(newMembers) == 0 {
		return
	}
	if err := s.store.AddGroupMembers(ctx, group.ID, newMembers); err != nil {
		s.logger.Error("Failed to add bill people to group", "group_id", group.ID, "error", err)
		return
	}
	s.logger.Info("Added bill people to group", "group_id", group.ID, "new_members", newMembers)
}

// Calculate computes a bill without storing it.
func (s *BillService) Calculate(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	res := compute(CalculatorInput(req.Msg))
	s.logger.Debug("Calculated bill",
		"people", len(res.People),
		"total_spent", res.TotalSpent,
		"transfers", len(res.SettlementInstructions),
		"excluded", len(res.Excluded),
	)

	return connect.NewResponse(&api.CalculateResponse{Summary: SummaryFromResult(res)}), nil
}

// CreateBill stores a new bill owned by the caller and returns it with its summary.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := checkItems(req.Msg.People, req.Msg.Expenses, req.Msg.AdditionalExpenses); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	var group *models.Group
	if req.Msg.GroupID != "" {
		if group, err = s.ownedGroup(ctx, req.Msg.GroupID, userID); err != nil {
			return nil, err
		}
	}

	bill := &models.Bill{
		OwnerID:            userID,
		GroupID:            req.Msg.GroupID,
		Title:              strings.TrimSpace(req.Msg.Title),
		People:             req.Msg.People,
		Expenses:           expensesFromAPI(req.Msg.Expenses),
		AdditionalExpenses: additionalExpensesFromAPI(req.Msg.AdditionalExpenses),
	}
	if err := s.store.CreateBill(ctx, bill); err != nil {
		return nil, storeError(s.logger, "CreateBill", err)
	}

	res := compute(bill.Input())
	if group != nil {
		s.addPeopleToGroup(ctx, group, res.People)
	}

	s.logger.Info("Bill created", "bill_id", bill.ID, "user_id", userID, "group_id", bill.GroupID)
	return connect.NewResponse(&api.CreateBillResponse{
		Bill:    billToAPI(bill),
		Summary: SummaryFromResult(res),
	}), nil
}

// GetBill returns a stored bill with a freshly computed summary.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	bill, err := s.ownedBill(ctx, req.Msg.BillID, userID)
	if err != nil {
		return nil, err
	}

	resp := &api.GetBillResponse{
		Bill:    billToAPI(bill),
		Summary: SummaryFromResult(compute(bill.Input())),
	}
	if bill.GroupID != "" {
		group, err := s.store.GetGroup(ctx, bill.GroupID)
		if err == nil {
			resp.GroupName = group.Name
		}
	}
	return connect.NewResponse(resp), nil
}

// UpdateBill replaces the contents of a bill the caller owns.
func (s *BillService) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := checkItems(req.Msg.People, req.Msg.Expenses, req.Msg.AdditionalExpenses); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if _, err := s.ownedBill(ctx, req.Msg.BillID, userID); err != nil {
		return nil, err
	}

	var group *models.Group
	if req.Msg.GroupID != "" {
		if group, err = s.ownedGroup(ctx, req.Msg.GroupID, userID); err != nil {
			return nil, err
		}
	}

	bill := &models.Bill{
		ID:                 req.Msg.BillID,
		GroupID:            req.Msg.GroupID,
		Title:              strings.TrimSpace(req.Msg.Title),
		People:             req.Msg.People,
		Expenses:           expensesFromAPI(req.Msg.Expenses),
		AdditionalExpenses: additionalExpensesFromAPI(req.Msg.AdditionalExpenses),
	}
	if err := s.store.UpdateBill(ctx, bill); err != nil {
		return nil, storeError(s.logger, "UpdateBill", err)
	}

	res := compute(bill.Input())
	if group != nil {
		s.addPeopleToGroup(ctx, group, res.People)
	}

	s.logger.Info("Bill updated", "bill_id", bill.ID, "user_id", userID)
	return connect.NewResponse(&api.UpdateBillResponse{
		Bill:    billToAPI(bill),
		Summary: SummaryFromResult(res),
	}), nil
}

// DeleteBill removes a bill the caller owns.
func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if _, err := s.ownedBill(ctx, req.Msg.BillID, userID); err != nil {
		return nil, err
	}
	if err := s.store.DeleteBill(ctx, req.Msg.BillID); err != nil {
		return nil, storeError(s.logger, "DeleteBill", err)
	}

	s.logger.Info("Bill deleted", "bill_id", req.Msg.BillID, "user_id", userID)
	return connect.NewResponse(&api.DeleteBillResponse{}), nil
}

// ListBills lists the caller's bills, or the bills of one of the caller's groups.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var bills []*models.Bill
	if req.Msg.GroupID != "" {
		if _, err := s.ownedGroup(ctx, req.Msg.GroupID, userID); err != nil {
			return nil, err
		}
		bills, err = s.store.ListBillsByGroup(ctx, req.Msg.GroupID)
	} else {
		bills, err = s.store.ListBillsByOwner(ctx, userID)
	}
	if err != nil {
		return nil, storeError(s.logger, "ListBills", err)
	}

	summaries := make([]*api.BillSummary, len(bills))
	for i, bill := range bills {
		summaries[i] = billSummaryToAPI(bill)
	}
	return connect.NewResponse(&api.ListBillsResponse{Bills: summaries}), nil
}

// GetReceipt renders a stored bill as a plain-text receipt.
func (s *BillService) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	bill, err := s.ownedBill(ctx, req.Msg.BillID, userID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if err := receipt.Render(&b, bill.Title, compute(bill.Input())); err != nil {
		s.logger.Error("Failed to render receipt", "bill_id", bill.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&api.GetReceiptResponse{Text: b.String()}), nil
}
