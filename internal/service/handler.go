package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/paydown/internal/milestone"
)

// LedgerServiceName is the fully-qualified name of the ledger service.
const LedgerServiceName = "paydown.v1.LedgerService"

// Procedure paths of LedgerService.
const (
	GetSummaryProcedure     = "/paydown.v1.LedgerService/GetSummary"
	GetSnapshotProcedure    = "/paydown.v1.LedgerService/GetSnapshot"
	AddBetProcedure         = "/paydown.v1.LedgerService/AddBet"
	UpdateBetProcedure      = "/paydown.v1.LedgerService/UpdateBet"
	DeleteBetProcedure      = "/paydown.v1.LedgerService/DeleteBet"
	AddPaymentProcedure     = "/paydown.v1.LedgerService/AddPayment"
	DeletePaymentProcedure  = "/paydown.v1.LedgerService/DeletePayment"
	AddCardProcedure        = "/paydown.v1.LedgerService/AddCard"
	DeleteCardProcedure     = "/paydown.v1.LedgerService/DeleteCard"
	UpdateSettingsProcedure = "/paydown.v1.LedgerService/UpdateSettings"
	BankNowProcedure        = "/paydown.v1.LedgerService/BankNow"
)

// NewLedgerServiceHandler builds an HTTP handler for every LedgerService
// procedure and returns the path to mount it on.
func NewLedgerServiceHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(GetSummaryProcedure, connect.NewUnaryHandler(GetSummaryProcedure, svc.GetSummary, opts...))
	mux.Handle(GetSnapshotProcedure, connect.NewUnaryHandler(GetSnapshotProcedure, svc.GetSnapshot, opts...))
	mux.Handle(AddBetProcedure, connect.NewUnaryHandler(AddBetProcedure, svc.handleAddBet, opts...))
	mux.Handle(UpdateBetProcedure, connect.NewUnaryHandler(UpdateBetProcedure, svc.handleUpdateBet, opts...))
	mux.Handle(DeleteBetProcedure, connect.NewUnaryHandler(DeleteBetProcedure, svc.handleDeleteBet, opts...))
	mux.Handle(AddPaymentProcedure, connect.NewUnaryHandler(AddPaymentProcedure, svc.handleAddPayment, opts...))
	mux.Handle(DeletePaymentProcedure, connect.NewUnaryHandler(DeletePaymentProcedure, svc.handleDeletePayment, opts...))
	mux.Handle(AddCardProcedure, connect.NewUnaryHandler(AddCardProcedure, svc.handleAddCard, opts...))
	mux.Handle(DeleteCardProcedure, connect.NewUnaryHandler(DeleteCardProcedure, svc.handleDeleteCard, opts...))
	mux.Handle(UpdateSettingsProcedure, connect.NewUnaryHandler(UpdateSettingsProcedure, svc.handleUpdateSettings, opts...))
	mux.Handle(BankNowProcedure, connect.NewUnaryHandler(BankNowProcedure, svc.handleBankNow, opts...))

	return "/" + LedgerServiceName + "/", mux
}

// GetSummary returns the dashboard
func (s *LedgerService) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	dashboard, err := s.Summary(ctx)
	if err != nil {
		return nil, connectError("GetSummary", err)
	}
	return connect.NewResponse(&GetSummaryResponse{Summary: dashboard}), nil
}

// GetSnapshot returns every record and the settings
func (s *LedgerService) GetSnapshot(ctx context.Context, req *connect.Request[GetSnapshotRequest]) (*connect.Response[GetSnapshotResponse], error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, connectError("GetSnapshot", err)
	}
	return connect.NewResponse(&GetSnapshotResponse{Snapshot: snap}), nil
}

func (s *LedgerService) handleAddBet(ctx context.Context, req *connect.Request[AddBetRequest]) (*connect.Response[AddBetResponse], error) {
	bet, err := s.AddBet(ctx, req.Msg.Bet)
	if err != nil {
		return nil, connectError("AddBet", err)
	}
	return connect.NewResponse(&AddBetResponse{Bet: bet}), nil
}

func (s *LedgerService) handleUpdateBet(ctx context.Context, req *connect.Request[UpdateBetRequest]) (*connect.Response[UpdateBetResponse], error) {
	bet, err := s.UpdateBet(ctx, req.Msg.ID, req.Msg.Bet)
	if err != nil {
		return nil, connectError("UpdateBet", err)
	}
	return connect.NewResponse(&UpdateBetResponse{Bet: bet}), nil
}

func (s *LedgerService) handleDeleteBet(ctx context.Context, req *connect.Request[DeleteBetRequest]) (*connect.Response[DeleteBetResponse], error) {
	if err := s.DeleteBet(ctx, req.Msg.ID); err != nil {
		return nil, connectError("DeleteBet", err)
	}
	return connect.NewResponse(&DeleteBetResponse{}), nil
}

func (s *LedgerService) handleAddPayment(ctx context.Context, req *connect.Request[AddPaymentRequest]) (*connect.Response[AddPaymentResponse], error) {
	payment, err := s.AddPayment(ctx, req.Msg.Payment)
	if err != nil {
		return nil, connectError("AddPayment", err)
	}
	return connect.NewResponse(&AddPaymentResponse{Payment: payment}), nil
}

func (s *LedgerService) handleDeletePayment(ctx context.Context, req *connect.Request[DeletePaymentRequest]) (*connect.Response[DeletePaymentResponse], error) {
	if err := s.DeletePayment(ctx, req.Msg.ID); err != nil {
		return nil, connectError("DeletePayment", err)
	}
	return connect.NewResponse(&DeletePaymentResponse{}), nil
}

func (s *LedgerService) handleAddCard(ctx context.Context, req *connect.Request[AddCardRequest]) (*connect.Response[AddCardResponse], error) {
	card, err := s.AddCard(ctx, req.Msg.Name, req.Msg.Balance)
	if err != nil {
		return nil, connectError("AddCard", err)
	}
	return connect.NewResponse(&AddCardResponse{Card: card}), nil
}

func (s *LedgerService) handleDeleteCard(ctx context.Context, req *connect.Request[DeleteCardRequest]) (*connect.Response[DeleteCardResponse], error) {
	if err := s.DeleteCard(ctx, req.Msg.ID); err != nil {
		return nil, connectError("DeleteCard", err)
	}
	return connect.NewResponse(&DeleteCardResponse{}), nil
}

func (s *LedgerService) handleUpdateSettings(ctx context.Context, req *connect.Request[UpdateSettingsRequest]) (*connect.Response[UpdateSettingsResponse], error) {
	settings, err := s.UpdateSettings(ctx, req.Msg.Settings)
	if err != nil {
		return nil, connectError("UpdateSettings", err)
	}
	return connect.NewResponse(&UpdateSettingsResponse{Settings: settings}), nil
}

func (s *LedgerService) handleBankNow(ctx context.Context, req *connect.Request[BankNowRequest]) (*connect.Response[BankNowResponse], error) {
	payment, err := s.BankNow(ctx)
	if err != nil {
		return nil, connectError("BankNow", err)
	}
	return connect.NewResponse(&BankNowResponse{Payment: payment}), nil
}

// connectError maps a service error onto a Connect code.
func connectError(op string, err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, milestone.ErrNothingToBank), errors.Is(err, milestone.ErrInsufficientProfit):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
}
