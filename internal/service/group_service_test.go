package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/patungan/pkg/api"
)

func createGroup(t *testing.T, env *testEnv, name string, members ...string) *api.Group {
	t.Helper()
	resp, err := env.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:    name,
		Members: members,
	}))
	require.NoError(t, err)
	return resp.Msg.Group
}

func TestCreateGroup(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	group := createGroup(t, env, " Kos Mawar ", "Ani", "Budi", "Ani")
	assert.NotEmpty(t, group.ID)
	assert.Equal(t, "Kos Mawar", group.Name)
	assert.Equal(t, []string{"Ani", "Budi"}, group.Members)

	got, err := env.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: group.ID}))
	require.NoError(t, err)
	assert.Equal(t, group.Members, got.Msg.Group.Members)

	_, err = env.groups.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{Members: []string{"Ani"}}))
	requireCode(t, connect.CodeInvalidArgument, err)

	_, err = env.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: "missing"}))
	requireCode(t, connect.CodeNotFound, err)
}

func TestListGroups(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	createGroup(t, env, "Kos", "Ani")
	createGroup(t, env, "Kantor", "Budi")

	resp, err := env.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	require.NoError(t, err)
	assert.Len(t, resp.Msg.Groups, 2)

	other, err := env.groups.ListGroups(ctx, as(otherTestUser, &api.ListGroupsRequest{}))
	require.NoError(t, err)
	assert.Empty(t, other.Msg.Groups)
}

func TestAddMembers(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group := createGroup(t, env, "Trip Bali", "Ani")

	resp, err := env.groups.AddMembers(ctx, connect.NewRequest(&api.AddMembersRequest{
		GroupID: group.ID,
		Members: []string{"Budi", "Ani", "Citra"},
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ani", "Budi", "Citra"}, resp.Msg.Group.Members)

	_, err = env.groups.AddMembers(ctx, connect.NewRequest(&api.AddMembersRequest{GroupID: group.ID}))
	requireCode(t, connect.CodeInvalidArgument, err)

	_, err = env.groups.AddMembers(ctx, as(otherTestUser, &api.AddMembersRequest{
		GroupID: group.ID, Members: []string{"Mallory"},
	}))
	requireCode(t, connect.CodePermissionDenied, err)
}

func TestBillAddsPeopleToGroup(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group := createGroup(t, env, "Kos", "Ani")

	req := dinnerRequest()
	req.GroupID = group.ID
	_, err := env.bills.CreateBill(ctx, connect.NewRequest(req))
	require.NoError(t, err)

	got, err := env.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: group.ID}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ani", "Budi", "Citra"}, got.Msg.Group.Members)
}

func TestRecordPayment(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group := createGroup(t, env, "Kos", "Ani", "Budi")

	resp, err := env.groups.RecordPayment(ctx, connect.NewRequest(&api.RecordPaymentRequest{
		GroupID: group.ID, From: "Budi", To: "Ani", Amount: 15000, Note: "transfer BCA",
	}))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Msg.Payment.ID)
	assert.Equal(t, "transfer BCA", resp.Msg.Payment.Note)

	tests := []struct {
		name string
		req  *api.RecordPaymentRequest
		code connect.Code
	}{
		{"same person", &api.RecordPaymentRequest{GroupID: group.ID, From: "Ani", To: "Ani", Amount: 1}, connect.CodeInvalidArgument},
		{"zero amount", &api.RecordPaymentRequest{GroupID: group.ID, From: "Budi", To: "Ani"}, connect.CodeInvalidArgument},
		{"negative amount", &api.RecordPaymentRequest{GroupID: group.ID, From: "Budi", To: "Ani", Amount: -5}, connect.CodeInvalidArgument},
		{"not a member", &api.RecordPaymentRequest{GroupID: group.ID, From: "Dodi", To: "Ani", Amount: 1}, connect.CodeInvalidArgument},
		{"unknown group", &api.RecordPaymentRequest{GroupID: "missing", From: "Budi", To: "Ani", Amount: 1}, connect.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.groups.RecordPayment(ctx, connect.NewRequest(tt.req))
			requireCode(t, tt.code, err)
		})
	}

	list, err := env.groups.ListPayments(ctx, connect.NewRequest(&api.ListPaymentsRequest{GroupID: group.ID}))
	require.NoError(t, err)
	assert.Len(t, list.Msg.Payments, 1)
}

func TestDeletePayment(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group := createGroup(t, env, "Kos", "Ani", "Budi")

	resp, err := env.groups.RecordPayment(ctx, connect.NewRequest(&api.RecordPaymentRequest{
		GroupID: group.ID, From: "Budi", To: "Ani", Amount: 15000,
	}))
	require.NoError(t, err)
	paymentID := resp.Msg.Payment.ID

	_, err = env.groups.DeletePayment(ctx, as(otherTestUser, &api.DeletePaymentRequest{PaymentID: paymentID}))
	requireCode(t, connect.CodePermissionDenied, err)

	_, err = env.groups.DeletePayment(ctx, connect.NewRequest(&api.DeletePaymentRequest{PaymentID: paymentID}))
	require.NoError(t, err)

	_, err = env.groups.DeletePayment(ctx, connect.NewRequest(&api.DeletePaymentRequest{PaymentID: paymentID}))
	requireCode(t, connect.CodeNotFound, err)

	list, err := env.groups.ListPayments(ctx, connect.NewRequest(&api.ListPaymentsRequest{GroupID: group.ID}))
	require.NoError(t, err)
	assert.Empty(t, list.Msg.Payments)
}

func TestGetGroupBalances(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group := createGroup(t, env, "Kos", "Ani", "Budi", "Citra", "Dodi")

	req := dinnerRequest()
	req.GroupID = group.ID
	_, err := env.bills.CreateBill(ctx, connect.NewRequest(req))
	require.NoError(t, err)

	_, err = env.bills.CreateBill(ctx, connect.NewRequest(&api.CreateBillRequest{
		GroupID: group.ID,
		People:  []string{"Budi", "Citra"},
		Expenses: []api.Expense{
			{Item: "Bensin", Amount: 50000, Who: []string{"Budi", "Citra"}, PaidBy: "Citra"},
		},
	}))
	require.NoError(t, err)

	_, err = env.groups.RecordPayment(ctx, connect.NewRequest(&api.RecordPaymentRequest{
		GroupID: group.ID, From: "Budi", To: "Ani", Amount: 30000,
	}))
	require.NoError(t, err)

	resp, err := env.groups.GetGroupBalances(ctx, connect.NewRequest(&api.GetGroupBalancesRequest{GroupID: group.ID}))
	require.NoError(t, err)
	msg := resp.Msg

	assert.Equal(t, []string{"Ani", "Budi", "Citra", "Dodi"}, msg.People)

	// Dinner nets: Ani -61500, Budi +38500, Citra +23000.
	// Bensin: Budi +25000, Citra -25000. Payment: Budi -30000, Ani +30000.
	assert.Equal(t, int64(-31500), msg.Balances["Ani"].Net)
	assert.Equal(t, int64(33500), msg.Balances["Budi"].Net)
	assert.Equal(t, int64(-2000), msg.Balances["Citra"].Net)
	assert.Equal(t, int64(0), msg.Balances["Dodi"].Net)

	assert.Equal(t, []api.SettlementInstruction{
		{From: "Budi", To: "Ani", Amount: 31500},
		{From: "Budi", To: "Citra", Amount: 2000},
	}, msg.SettlementInstructions)

	_, err = env.groups.GetGroupBalances(ctx, as(otherTestUser, &api.GetGroupBalancesRequest{GroupID: group.ID}))
	requireCode(t, connect.CodePermissionDenied, err)
}

func TestGetGroupBalances_EmptyGroup(t *testing.T) {
	env := setupTestServer(t)
	group := createGroup(t, env, "Kosong", "Ani", "Budi")

	resp, err := env.groups.GetGroupBalances(context.Background(),
		connect.NewRequest(&api.GetGroupBalancesRequest{GroupID: group.ID}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ani", "Budi"}, resp.Msg.People)
	assert.Empty(t, resp.Msg.SettlementInstructions)
}
