package m_transaction_metadata

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the transaction_metadata table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertOrUpdateMut creates a mutation setting the value of one key.
func (m *Model) InsertOrUpdateMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{TransactionID, MetadataKey, Value, UpdatedAt},
		[]interface{}{data.TransactionID, data.MetadataKey, data.Value, spanner.CommitTimestamp},
	)
}
