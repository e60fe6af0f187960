package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/patungan/pkg/api"
)

// BillServiceName is the fully-qualified name of the BillService.
const BillServiceName = "patungan.v1.BillService"

// Procedure paths of the BillService.
const (
	BillServiceCalculateProcedure  = "/patungan.v1.BillService/Calculate"
	BillServiceCreateBillProcedure = "/patungan.v1.BillService/CreateBill"
	BillServiceGetBillProcedure    = "/patungan.v1.BillService/GetBill"
	BillServiceUpdateBillProcedure = "/patungan.v1.BillService/UpdateBill"
	BillServiceDeleteBillProcedure = "/patungan.v1.BillService/DeleteBill"
	BillServiceListBillsProcedure  = "/patungan.v1.BillService/ListBills"
	BillServiceGetReceiptProcedure = "/patungan.v1.BillService/GetReceipt"
)

// BillServiceHandler is implemented by the bill service.
type BillServiceHandler interface {
	Calculate(context.Context, *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error)
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error)
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	GetReceipt(context.Context, *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error)
}

// NewBillServiceHandler builds an HTTP handler for the service and returns the path to mount it on.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(BillServiceCalculateProcedure, connect.NewUnaryHandler(BillServiceCalculateProcedure, svc.Calculate, opts...))
	mux.Handle(BillServiceCreateBillProcedure, connect.NewUnaryHandler(BillServiceCreateBillProcedure, svc.CreateBill, opts...))
	mux.Handle(BillServiceGetBillProcedure, connect.NewUnaryHandler(BillServiceGetBillProcedure, svc.GetBill, opts...))
	mux.Handle(BillServiceUpdateBillProcedure, connect.NewUnaryHandler(BillServiceUpdateBillProcedure, svc.UpdateBill, opts...))
	mux.Handle(BillServiceDeleteBillProcedure, connect.NewUnaryHandler(BillServiceDeleteBillProcedure, svc.DeleteBill, opts...))
	mux.Handle(BillServiceListBillsProcedure, connect.NewUnaryHandler(BillServiceListBillsProcedure, svc.ListBills, opts...))
	mux.Handle(BillServiceGetReceiptProcedure, connect.NewUnaryHandler(BillServiceGetReceiptProcedure, svc.GetReceipt, opts...))
	return "/" + BillServiceName + "/", mux
}

// BillServiceClient is a client for the BillService.
type BillServiceClient interface {
	Calculate(context.Context, *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error)
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error)
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	GetReceipt(context.Context, *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error)
}

// NewBillServiceClient constructs a client for the BillService at baseURL.
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &billServiceClient{
		calculate:  connect.NewClient[api.CalculateRequest, api.CalculateResponse](httpClient, baseURL+BillServiceCalculateProcedure, opts...),
		createBill: connect.NewClient[api.CreateBillRequest, api.CreateBillResponse](httpClient, baseURL+BillServiceCreateBillProcedure, opts...),
		getBill:    connect.NewClient[api.GetBillRequest, api.GetBillResponse](httpClient, baseURL+BillServiceGetBillProcedure, opts...),
		updateBill: connect.NewClient[api.UpdateBillRequest, api.UpdateBillResponse](httpClient, baseURL+BillServiceUpdateBillProcedure, opts...),
		deleteBill: connect.NewClient[api.DeleteBillRequest, api.DeleteBillResponse](httpClient, baseURL+BillServiceDeleteBillProcedure, opts...),
		listBills:  connect.NewClient[api.ListBillsRequest, api.ListBillsResponse](httpClient, baseURL+BillServiceListBillsProcedure, opts...),
		getReceipt: connect.NewClient[api.GetReceiptRequest, api.GetReceiptResponse](httpClient, baseURL+BillServiceGetReceiptProcedure, opts...),
	}
}

type billServiceClient struct {
	calculate  *connect.Client[api.CalculateRequest, api.CalculateResponse]
	createBill *connect.Client[api.CreateBillRequest, api.CreateBillResponse]
	getBill    *connect.Client[api.GetBillRequest, api.GetBillResponse]
	updateBill *connect.Client[api.UpdateBillRequest, api.UpdateBillResponse]
	deleteBill *connect.Client[api.DeleteBillRequest, api.DeleteBillResponse]
	listBills  *connect.Client[api.ListBillsRequest, api.ListBillsResponse]
	getReceipt *connect.Client[api.GetReceiptRequest, api.GetReceiptResponse]
}

func (c *billServiceClient) Calculate(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	return c.calculate.CallUnary(ctx, req)
}

func (c *billServiceClient) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

func (c *billServiceClient) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *billServiceClient) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	return c.updateBill.CallUnary(ctx, req)
}

func (c *billServiceClient) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

func (c *billServiceClient) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

func (c *billServiceClient) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	return c.getReceipt.CallUnary(ctx, req)
}
