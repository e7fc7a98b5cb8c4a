package m_transaction

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the transactions table.
type Data struct {
	TransactionID         string             `spanner:"transaction_id"`
	ExternalID            string             `spanner:"external_id"`
	ResourceType          string             `spanner:"resource_type"`
	ParentExternalID      spanner.NullString `spanner:"parent_external_id"`
	State                 string             `spanner:"state"`
	Amount                spanner.NullInt64  `spanner:"amount"`
	Fee                   spanner.NullInt64  `spanner:"fee"`
	NetAmount             spanner.NullInt64  `spanner:"net_amount"`
	TotalAmount           spanner.NullInt64  `spanner:"total_amount"`
	CorporateSurcharge    spanner.NullInt64  `spanner:"corporate_surcharge"`
	GatewayAccountID      spanner.NullString `spanner:"gateway_account_id"`
	Reference             spanner.NullString `spanner:"reference"`
	Description           spanner.NullString `spanner:"description"`
	Email                 spanner.NullString `spanner:"email"`
	CardholderName        spanner.NullString `spanner:"cardholder_name"`
	CardBrand             spanner.NullString `spanner:"card_brand"`
	LastDigitsCardNumber  spanner.NullString `spanner:"last_digits_card_number"`
	FirstDigitsCardNumber spanner.NullString `spanner:"first_digits_card_number"`
	PaymentProvider       spanner.NullString `spanner:"payment_provider"`
	Live                  bool               `spanner:"live"`
	DelayedCapture        bool               `spanner:"delayed_capture"`
	CreatedDate           time.Time          `spanner:"created_date"`
	StateChangedDate      time.Time          `spanner:"state_changed_date"`
	EventCount            int64              `spanner:"event_count"`
	TransactionDetails    spanner.NullJSON   `spanner:"transaction_details"`
	UpdatedAt             spanner.NullTime   `spanner:"updated_at"`
}
