package api

// Group is a reusable set of people whose bills are netted together.
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"createdAt"`
}

// Payment is a recorded transfer between two group members.
type Payment struct {
	ID        string `json:"id"`
	GroupID   string `json:"groupId"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    int64  `json:"amount"`
	Note      string `json:"note,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

type CreateGroupRequest struct {
	Name    string   `json:"name" validate:"required"`
	Members []string `json:"members" validate:"dive,required"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type AddMembersRequest struct {
	GroupID string   `json:"groupId" validate:"required"`
	Members []string `json:"members" validate:"min=1,dive,required"`
}

type AddMembersResponse struct {
	Group *Group `json:"group"`
}

type RecordPaymentRequest struct {
	GroupID string `json:"groupId" validate:"required"`
	From    string `json:"from" validate:"required"`
	To      string `json:"to" validate:"required,nefield=From"`
	Amount  int64  `json:"amount" validate:"gt=0"`
	Note    string `json:"note,omitempty"`
}

type RecordPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type ListPaymentsRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}

type DeletePaymentRequest struct {
	PaymentID string `json:"paymentId" validate:"required"`
}

type DeletePaymentResponse struct{}

type GetGroupBalancesRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type GetGroupBalancesResponse struct {
	People                 []string                `json:"people"`
	Balances               map[string]*Balance     `json:"balances"`
	SettlementInstructions []SettlementInstruction `json:"settlementInstructions"`
}
