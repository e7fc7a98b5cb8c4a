package m_transaction_metadata

// Field name constants for the transaction_metadata table.
const (
	TableName = "transaction_metadata"

	TransactionID = "transaction_id"
	MetadataKey   = "metadata_key"
	Value         = "value"
	UpdatedAt     = "updated_at"
)
