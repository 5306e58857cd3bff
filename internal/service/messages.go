package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/paydown/internal/models"
)

// Request and response messages of paydown.v1.LedgerService. Money
// travels as decimal strings.

type GetSummaryRequest struct{}

type GetSummaryResponse struct {
	Summary *Dashboard `json:"summary"`
}

type GetSnapshotRequest struct{}

type GetSnapshotResponse struct {
	Snapshot *models.Snapshot `json:"snapshot"`
}

type AddBetRequest struct {
	Bet BetInput `json:"bet"`
}

type AddBetResponse struct {
	Bet models.Bet `json:"bet"`
}

type UpdateBetRequest struct {
	ID  string   `json:"id"`
	Bet BetInput `json:"bet"`
}

type UpdateBetResponse struct {
	Bet models.Bet `json:"bet"`
}

type DeleteBetRequest struct {
	ID string `json:"id"`
}

type DeleteBetResponse struct{}

type AddPaymentRequest struct {
	Payment PaymentInput `json:"payment"`
}

type AddPaymentResponse struct {
	Payment models.Payment `json:"payment"`
}

type DeletePaymentRequest struct {
	ID string `json:"id"`
}

type DeletePaymentResponse struct{}

type AddCardRequest struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

type AddCardResponse struct {
	Card models.Card `json:"card"`
}

type DeleteCardRequest struct {
	ID string `json:"id"`
}

type DeleteCardResponse struct{}

type UpdateSettingsRequest struct {
	Settings models.Settings `json:"settings"`
}

type UpdateSettingsResponse struct {
	Settings models.Settings `json:"settings"`
}

type BankNowRequest struct{}

type BankNowResponse struct {
	Payment models.Payment `json:"payment"`
}
