package m_transaction_metadata

// Data represents the database model for the transaction_metadata table.
type Data struct {
	TransactionID string `spanner:"transaction_id"`
	MetadataKey   string `spanner:"metadata_key"`
	Value         string `spanner:"value"`
}
