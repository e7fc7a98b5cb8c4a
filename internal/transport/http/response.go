package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/app/ledger/queries/get_transaction"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the standard error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps domain errors to HTTP status codes. Anything
// unrecognised is reported as an internal error without detail.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrTransactionNotFound):
		writeError(w, http.StatusNotFound, "transaction not found")

	case errors.Is(err, domain.ErrInvalidResourceType),
		errors.Is(err, domain.ErrMissingExternalID),
		errors.Is(err, domain.ErrMissingEventType),
		errors.Is(err, domain.ErrMissingEventDate),
		errors.Is(err, domain.ErrMalformedPayload),
		errors.Is(err, errInvalidFilter):
		writeError(w, http.StatusBadRequest, err.Error())

	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// TransactionResponse is the JSON view of a snapshot.
type TransactionResponse struct {
	TransactionID         string            `json:"transaction_id"`
	ExternalID            string            `json:"external_id"`
	ResourceType          string            `json:"resource_type"`
	ParentExternalID      string            `json:"parent_external_id,omitempty"`
	State                 string            `json:"state"`
	Status                string            `json:"status"`
	Finished              bool              `json:"finished"`
	Amount                *int64            `json:"amount,omitempty"`
	Fee                   *int64            `json:"fee,omitempty"`
	NetAmount             *int64            `json:"net_amount,omitempty"`
	TotalAmount           *int64            `json:"total_amount,omitempty"`
	CorporateSurcharge    *int64            `json:"corporate_surcharge,omitempty"`
	GatewayAccountID      string            `json:"gateway_account_id,omitempty"`
	Reference             string            `json:"reference,omitempty"`
	Description           string            `json:"description,omitempty"`
	Email                 string            `json:"email,omitempty"`
	CardholderName        string            `json:"cardholder_name,omitempty"`
	CardBrand             string            `json:"card_brand,omitempty"`
	LastDigitsCardNumber  string            `json:"last_digits_card_number,omitempty"`
	FirstDigitsCardNumber string            `json:"first_digits_card_number,omitempty"`
	PaymentProvider       string            `json:"payment_provider,omitempty"`
	Live                  bool              `json:"live"`
	DelayedCapture        bool              `json:"delayed_capture"`
	CreatedDate           string            `json:"created_date"`
	StateChangedDate      string            `json:"state_changed_date"`
	EventCount            int64             `json:"event_count"`
	TransactionDetails    json.RawMessage   `json:"transaction_details"`
	Metadata              map[string]string `json:"metadata,omitempty"`
}

func toTransactionResponse(tx *domain.Transaction, metadata map[string]string) TransactionResponse {
	details := json.RawMessage(tx.TransactionDetails)
	if len(details) == 0 {
		details = json.RawMessage("{}")
	}
	return TransactionResponse{
		TransactionID:         tx.ID,
		ExternalID:            tx.ExternalID,
		ResourceType:          string(tx.ResourceType),
		ParentExternalID:      tx.ParentExternalID,
		State:                 string(tx.State),
		Status:                tx.State.StatusLabel(),
		Finished:              tx.State.IsFinished(),
		Amount:                tx.Amount,
		Fee:                   tx.Fee,
		NetAmount:             tx.NetAmount,
		TotalAmount:           tx.TotalAmount,
		CorporateSurcharge:    tx.CorporateSurcharge,
		GatewayAccountID:      tx.GatewayAccountID,
		Reference:             tx.Reference,
		Description:           tx.Description,
		Email:                 tx.Email,
		CardholderName:        tx.CardholderName,
		CardBrand:             tx.CardBrand,
		LastDigitsCardNumber:  tx.LastDigitsCardNumber,
		FirstDigitsCardNumber: tx.FirstDigitsCardNumber,
		PaymentProvider:       tx.PaymentProvider,
		Live:                  tx.Live,
		DelayedCapture:        tx.DelayedCapture,
		CreatedDate:           formatTime(tx.CreatedDate),
		StateChangedDate:      formatTime(tx.StateChangedDate),
		EventCount:            tx.EventCount,
		TransactionDetails:    details,
		Metadata:              metadata,
	}
}

func fromResult(res *get_transaction.Result) TransactionResponse {
	return toTransactionResponse(res.Transaction, res.Metadata)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
