package m_transaction

// Field name constants for the transactions table.
const (
	TableName = "transactions"

	// IndexByExternalID is the unique index on external_id.
	IndexByExternalID = "transactions_by_external_id"

	TransactionID         = "transaction_id"
	ExternalID            = "external_id"
	ResourceType          = "resource_type"
	ParentExternalID      = "parent_external_id"
	State                 = "state"
	Amount                = "amount"
	Fee                   = "fee"
	NetAmount             = "net_amount"
	TotalAmount           = "total_amount"
	CorporateSurcharge    = "corporate_surcharge"
	GatewayAccountID      = "gateway_account_id"
	Reference             = "reference"
	Description           = "description"
	Email                 = "email"
	CardholderName        = "cardholder_name"
	CardBrand             = "card_brand"
	LastDigitsCardNumber  = "last_digits_card_number"
	FirstDigitsCardNumber = "first_digits_card_number"
	PaymentProvider       = "payment_provider"
	Live                  = "live"
	DelayedCapture        = "delayed_capture"
	CreatedDate           = "created_date"
	StateChangedDate      = "state_changed_date"
	EventCount            = "event_count"
	TransactionDetails    = "transaction_details"
	UpdatedAt             = "updated_at"
)

// Columns lists every column written by InsertOrUpdateMut, in order.
var Columns = []string{
	TransactionID,
	ExternalID,
	ResourceType,
	ParentExternalID,
	State,
	Amount,
	Fee,
	NetAmount,
	TotalAmount,
	CorporateSurcharge,
	GatewayAccountID,
	Reference,
	Description,
	Email,
	CardholderName,
	CardBrand,
	LastDigitsCardNumber,
	FirstDigitsCardNumber,
	PaymentProvider,
	Live,
	DelayedCapture,
	CreatedDate,
	StateChangedDate,
	EventCount,
	TransactionDetails,
	UpdatedAt,
}
