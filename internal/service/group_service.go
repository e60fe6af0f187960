package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/patungan/internal/calculator"
	"github.com/mmynk/patungan/internal/models"
	"github.com/mmynk/patungan/internal/storage"
	"github.com/mmynk/patungan/pkg/api"
	"github.com/mmynk/patungan/pkg/api/apiconnect"
)

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService.
type GroupService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, logger *slog.Logger) *GroupService {
	return &GroupService{store: store, logger: logger}
}

func (s *GroupService) ownedGroup(ctx context.Context, groupID, userID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, storeError(s.logger, "GetGroup", err)
	}
	if err := checkOwner(group.OwnerID, userID); err != nil {
		return nil, err
	}
	return group, nil
}

// CreateGroup creates a new group owned by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	group := &models.Group{
		OwnerID: userID,
		Name:    strings.TrimSpace(req.Msg.Name),
		Members: missingFrom(req.Msg.Members, nil),
	}
	if group.Members == nil {
		group.Members = []string{}
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, storeError(s.logger, "CreateGroup", err)
	}

	s.logger.Info("Group created", "group_id", group.ID, "user_id", userID, "members_count", len(group.Members))
	return connect.NewResponse(&api.CreateGroupResponse{Group: groupToAPI(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	group, err := s.ownedGroup(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: groupToAPI(group)}), nil
}

// ListGroups lists the caller's groups.
func (s *GroupService) ListGroups(ctx context.Context, _ *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsByOwner(ctx, userID)
	if err != nil {
		return nil, storeError(s.logger, "ListGroups", err)
	}

	out := make([]*api.Group, len(groups))
	for i, group := range groups {
		out[i] = groupToAPI(group)
	}
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// AddMembers appends new names to a group. Existing members are ignored.
func (s *GroupService) AddMembers(ctx context.Context, req *connect.Request[api.AddMembersRequest]) (*connect.Response[api.AddMembersResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	group, err := s.ownedGroup(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	if newMembers := missingFrom(req.Msg.Members, group.Members); len(newMembers) > 0 {
		if err := s.store.AddGroupMembers(ctx, group.ID, newMembers); err != nil {
			return nil, storeError(s.logger, "AddGroupMembers", err)
		}
		group.Members = append(group.Members, newMembers...)
		s.logger.Info("Group members added", "group_id", group.ID, "new_members", newMembers)
	}

	return connect.NewResponse(&api.AddMembersResponse{Group: groupToAPI(group)}), nil
}

// RecordPayment records a transfer between two members of a group.
func (s *GroupService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	group, err := s.ownedGroup(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}
	for _, name := range []string{req.Msg.From, req.Msg.To} {
		if !slices.Contains(group.Members, name) {
			return nil, connect.NewError(connect.CodeInvalidArgument,
				fmt.Errorf("%q is not a member of the group", name))
		}
	}

	payment := &models.Payment{
		GroupID:   group.ID,
		From:      req.Msg.From,
		To:        req.Msg.To,
		Amount:    req.Msg.Amount,
		Note:      strings.TrimSpace(req.Msg.Note),
		CreatedBy: userID,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, storeError(s.logger, "CreatePayment", err)
	}

	s.logger.Info("Payment recorded",
		"payment_id", payment.ID,
		"group_id", group.ID,
		"from", payment.From,
		"to", payment.To,
		"amount", payment.Amount,
	)
	return connect.NewResponse(&api.RecordPaymentResponse{Payment: paymentToAPI(payment)}), nil
}

// ListPayments lists a group's payments.
func (s *GroupService) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if _, err := s.ownedGroup(ctx, req.Msg.GroupID, userID); err != nil {
		return nil, err
	}
	payments, err := s.store.ListPaymentsByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, storeError(s.logger, "ListPayments", err)
	}

	out := make([]*api.Payment, len(payments))
	for i, p := range payments {
		out[i] = paymentToAPI(p)
	}
	return connect.NewResponse(&api.ListPaymentsResponse{Payments: out}), nil
}

// DeletePayment removes a payment from a group the caller owns.
func (s *GroupService) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	payment, err := s.store.GetPayment(ctx, req.Msg.PaymentID)
	if err != nil {
		return nil, storeError(s.logger, "GetPayment", err)
	}
	if _, err := s.ownedGroup(ctx, payment.GroupID, userID); err != nil {
		return nil, err
	}
	if err := s.store.DeletePayment(ctx, payment.ID); err != nil {
		return nil, storeError(s.logger, "DeletePayment", err)
	}

	s.logger.Info("Payment deleted", "payment_id", payment.ID, "group_id", payment.GroupID)
	return connect.NewResponse(&api.DeletePaymentResponse{}), nil
}

// GetGroupBalances nets every bill and payment of a group and returns the
// transfers that settle what remains.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	group, err := s.ownedGroup(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	bills, err := s.store.ListBillsByGroup(ctx, group.ID)
	if err != nil {
		return nil, storeError(s.logger, "ListBillsByGroup", err)
	}
	payments, err := s.store.ListPaymentsByGroup(ctx, group.ID)
	if err != nil {
		return nil, storeError(s.logger, "ListPaymentsByGroup", err)
	}

	inputs := make([]calculator.Input, len(bills))
	for i, bill := range bills {
		inputs[i] = bill.Input()
	}
	transfers := make([]calculator.Payment, len(payments))
	for i, p := range payments {
		transfers[i] = calculator.Payment{From: p.From, To: p.To, Amount: p.Amount}
	}

	res := calculator.GroupBalances(group.Members, inputs, transfers)

	s.logger.Info("Group balances computed",
		"group_id", group.ID,
		"bills_count", len(bills),
		"payments_count", len(payments),
		"transfers", len(res.SettlementInstructions),
	)
	return connect.NewResponse(&api.GetGroupBalancesResponse{
		People:                 res.People,
		Balances:               balancesToAPI(res.Balances),
		SettlementInstructions: settlementToAPI(res.SettlementInstructions),
	}), nil
}
