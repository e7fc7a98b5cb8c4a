package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/models/m_transaction"
	"github.com/light-bringer/ledger-service/internal/pkg/committer"
)

var _ contracts.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implements TransactionRepository for Spanner.
type TransactionRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_transaction.Model
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(client *spanner.Client, comm *committer.Committer) *TransactionRepo {
	return &TransactionRepo{
		client:    client,
		committer: comm,
		model:     m_transaction.NewModel(),
	}
}

// FindByExternalID reads the snapshot by its derived primary key.
func (r *TransactionRepo) FindByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error) {
	row, err := r.client.Single().ReadRow(ctx, m_transaction.TableName,
		spanner.Key{domain.TransactionID(externalID)}, m_transaction.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to read transaction: %w", err)
	}

	var data m_transaction.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	return dataToTransaction(&data)
}

// Upsert replaces the snapshot row unless the stored row was folded from
// more events. The compare and the write share one read-write transaction.
func (r *TransactionRepo) Upsert(ctx context.Context, tx *domain.Transaction) error {
	data, err := transactionToData(tx)
	if err != nil {
		return err
	}
	err = r.committer.ApplyWithReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, m_transaction.TableName, spanner.Key{tx.ID}, []string{m_transaction.EventCount})
		switch {
		case err == nil:
			var stored int64
			if err := row.Column(0, &stored); err != nil {
				return err
			}
			if stored > tx.EventCount {
				return nil
			}
		case spanner.ErrCode(err) != codes.NotFound:
			return err
		}
		return txn.BufferWrite([]*spanner.Mutation{r.model.InsertOrUpdateMut(data)})
	})
	if err != nil {
		return fmt.Errorf("failed to upsert transaction %s: %w", tx.ExternalID, err)
	}
	return nil
}

func transactionToData(tx *domain.Transaction) (*m_transaction.Data, error) {
	var details interface{}
	if tx.TransactionDetails != "" {
		if err := json.Unmarshal([]byte(tx.TransactionDetails), &details); err != nil {
			return nil, fmt.Errorf("invalid transaction details for %s: %w", tx.ExternalID, err)
		}
	}

	return &m_transaction.Data{
		TransactionID:         tx.ID,
		ExternalID:            tx.ExternalID,
		ResourceType:          string(tx.ResourceType),
		ParentExternalID:      nullString(tx.ParentExternalID),
		State:                 string(tx.State),
		Amount:                nullInt64(tx.Amount),
		Fee:                   nullInt64(tx.Fee),
		NetAmount:             nullInt64(tx.NetAmount),
		TotalAmount:           nullInt64(tx.TotalAmount),
		CorporateSurcharge:    nullInt64(tx.CorporateSurcharge),
		GatewayAccountID:      nullString(tx.GatewayAccountID),
		Reference:             nullString(tx.Reference),
		Description:           nullString(tx.Description),
		Email:                 nullString(tx.Email),
		CardholderName:        nullString(tx.CardholderName),
		CardBrand:             nullString(tx.CardBrand),
		LastDigitsCardNumber:  nullString(tx.LastDigitsCardNumber),
		FirstDigitsCardNumber: nullString(tx.FirstDigitsCardNumber),
		PaymentProvider:       nullString(tx.PaymentProvider),
		Live:                  tx.Live,
		DelayedCapture:        tx.DelayedCapture,
		CreatedDate:           tx.CreatedDate,
		StateChangedDate:      tx.StateChangedDate,
		EventCount:            tx.EventCount,
		TransactionDetails:    spanner.NullJSON{Value: details, Valid: details != nil},
	}, nil
}

func dataToTransaction(data *m_transaction.Data) (*domain.Transaction, error) {
	details := "{}"
	if data.TransactionDetails.Valid {
		raw, err := json.Marshal(data.TransactionDetails.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode transaction details: %w", err)
		}
		details = string(raw)
	}

	return &domain.Transaction{
		ID:                    data.TransactionID,
		ExternalID:            data.ExternalID,
		ResourceType:          domain.ResourceType(data.ResourceType),
		ParentExternalID:      data.ParentExternalID.StringVal,
		State:                 domain.TransactionState(data.State),
		Amount:                int64Ptr(data.Amount),
		Fee:                   int64Ptr(data.Fee),
		NetAmount:             int64Ptr(data.NetAmount),
		TotalAmount:           int64Ptr(data.TotalAmount),
		CorporateSurcharge:    int64Ptr(data.CorporateSurcharge),
		GatewayAccountID:      data.GatewayAccountID.StringVal,
		Reference:             data.Reference.StringVal,
		Description:           data.Description.StringVal,
		Email:                 data.Email.StringVal,
		CardholderName:        data.CardholderName.StringVal,
		CardBrand:             data.CardBrand.StringVal,
		LastDigitsCardNumber:  data.LastDigitsCardNumber.StringVal,
		FirstDigitsCardNumber: data.FirstDigitsCardNumber.StringVal,
		PaymentProvider:       data.PaymentProvider.StringVal,
		Live:                  data.Live,
		DelayedCapture:        data.DelayedCapture,
		CreatedDate:           data.CreatedDate.UTC(),
		StateChangedDate:      data.StateChangedDate.UTC(),
		EventCount:            data.EventCount,
		TransactionDetails:    details,
	}, nil
}
