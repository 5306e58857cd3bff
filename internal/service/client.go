package service

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// LedgerClient calls LedgerService over Connect with the JSON codec.
type LedgerClient struct {
	getSummary     *connect.Client[GetSummaryRequest, GetSummaryResponse]
	getSnapshot    *connect.Client[GetSnapshotRequest, GetSnapshotResponse]
	addBet         *connect.Client[AddBetRequest, AddBetResponse]
	updateBet      *connect.Client[UpdateBetRequest, UpdateBetResponse]
	deleteBet      *connect.Client[DeleteBetRequest, DeleteBetResponse]
	addPayment     *connect.Client[AddPaymentRequest, AddPaymentResponse]
	deletePayment  *connect.Client[DeletePaymentRequest, DeletePaymentResponse]
	addCard        *connect.Client[AddCardRequest, AddCardResponse]
	deleteCard     *connect.Client[DeleteCardRequest, DeleteCardResponse]
	updateSettings *connect.Client[UpdateSettingsRequest, UpdateSettingsResponse]
	bankNow        *connect.Client[BankNowRequest, BankNowResponse]
}

// NewLedgerClient constructs a client for the service at baseURL.
func NewLedgerClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &LedgerClient{
		getSummary:     connect.NewClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL+GetSummaryProcedure, opts...),
		getSnapshot:    connect.NewClient[GetSnapshotRequest, GetSnapshotResponse](httpClient, baseURL+GetSnapshotProcedure, opts...),
		addBet:         connect.NewClient[AddBetRequest, AddBetResponse](httpClient, baseURL+AddBetProcedure, opts...),
		updateBet:      connect.NewClient[UpdateBetRequest, UpdateBetResponse](httpClient, baseURL+UpdateBetProcedure, opts...),
		deleteBet:      connect.NewClient[DeleteBetRequest, DeleteBetResponse](httpClient, baseURL+DeleteBetProcedure, opts...),
		addPayment:     connect.NewClient[AddPaymentRequest, AddPaymentResponse](httpClient, baseURL+AddPaymentProcedure, opts...),
		deletePayment:  connect.NewClient[DeletePaymentRequest, DeletePaymentResponse](httpClient, baseURL+DeletePaymentProcedure, opts...),
		addCard:        connect.NewClient[AddCardRequest, AddCardResponse](httpClient, baseURL+AddCardProcedure, opts...),
		deleteCard:     connect.NewClient[DeleteCardRequest, DeleteCardResponse](httpClient, baseURL+DeleteCardProcedure, opts...),
		updateSettings: connect.NewClient[UpdateSettingsRequest, UpdateSettingsResponse](httpClient, baseURL+UpdateSettingsProcedure, opts...),
		bankNow:        connect.NewClient[BankNowRequest, BankNowResponse](httpClient, baseURL+BankNowProcedure, opts...),
	}
}

func (c *LedgerClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *LedgerClient) GetSnapshot(ctx context.Context, req *connect.Request[GetSnapshotRequest]) (*connect.Response[GetSnapshotResponse], error) {
	return c.getSnapshot.CallUnary(ctx, req)
}

func (c *LedgerClient) AddBet(ctx context.Context, req *connect.Request[AddBetRequest]) (*connect.Response[AddBetResponse], error) {
	return c.addBet.CallUnary(ctx, req)
}

func (c *LedgerClient) UpdateBet(ctx context.Context, req *connect.Request[UpdateBetRequest]) (*connect.Response[UpdateBetResponse], error) {
	return c.updateBet.CallUnary(ctx, req)
}

func (c *LedgerClient) DeleteBet(ctx context.Context, req *connect.Request[DeleteBetRequest]) (*connect.Response[DeleteBetResponse], error) {
	return c.deleteBet.CallUnary(ctx, req)
}

func (c *LedgerClient) AddPayment(ctx context.Context, req *connect.Request[AddPaymentRequest]) (*connect.Response[AddPaymentResponse], error) {
	return c.addPayment.CallUnary(ctx, req)
}

func (c *LedgerClient) DeletePayment(ctx context.Context, req *connect.Request[DeletePaymentRequest]) (*connect.Response[DeletePaymentResponse], error) {
	return c.deletePayment.CallUnary(ctx, req)
}

func (c *LedgerClient) AddCard(ctx context.Context, req *connect.Request[AddCardRequest]) (*connect.Response[AddCardResponse], error) {
	return c.addCard.CallUnary(ctx, req)
}

func (c *LedgerClient) DeleteCard(ctx context.Context, req *connect.Request[DeleteCardRequest]) (*connect.Response[DeleteCardResponse], error) {
	return c.deleteCard.CallUnary(ctx, req)
}

func (c *LedgerClient) UpdateSettings(ctx context.Context, req *connect.Request[UpdateSettingsRequest]) (*connect.Response[UpdateSettingsResponse], error) {
	return c.updateSettings.CallUnary(ctx, req)
}

func (c *LedgerClient) BankNow(ctx context.Context, req *connect.Request[BankNowRequest]) (*connect.Response[BankNowResponse], error) {
	return c.bankNow.CallUnary(ctx, req)
}
