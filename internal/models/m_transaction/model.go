package m_transaction

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the transactions table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertOrUpdateMut creates a mutation replacing the whole snapshot row.
func (m *Model) InsertOrUpdateMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		Columns,
		[]interface{}{
			data.TransactionID,
			data.ExternalID,
			data.ResourceType,
			data.ParentExternalID,
			data.State,
			data.Amount,
			data.Fee,
			data.NetAmount,
			data.TotalAmount,
			data.CorporateSurcharge,
			data.GatewayAccountID,
			data.Reference,
			data.Description,
			data.Email,
			data.CardholderName,
			data.CardBrand,
			data.LastDigitsCardNumber,
			data.FirstDigitsCardNumber,
			data.PaymentProvider,
			data.Live,
			data.DelayedCapture,
			data.CreatedDate,
			data.StateChangedDate,
			data.EventCount,
			data.TransactionDetails,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a mutation deleting a transaction.
func (m *Model) DeleteMut(transactionID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{transactionID})
}
