package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/models/m_transaction"
)

var _ contracts.TransactionRepository = (*TransactionStore)(nil)

// TransactionStore implements TransactionRepository on SQLite.
type TransactionStore struct {
	store *Store
}

var transactionSelect = "SELECT " + strings.Join(m_transaction.Columns, ", ") +
	" FROM " + m_transaction.TableName + " WHERE " + m_transaction.TransactionID + " = ?"

// FindByExternalID loads the snapshot keyed by the derived transaction id.
func (s *TransactionStore) FindByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error) {
	row := s.store.sqlDB.QueryRowContext(ctx, transactionSelect, domain.TransactionID(externalID))

	var (
		tx                                                   domain.Transaction
		resourceType, state, details                         string
		parentID, accountID, reference, description, email   sql.NullString
		cardholder, brand, lastDigits, firstDigits, provider sql.NullString
		amount, fee, netAmount, totalAmount, surcharge       sql.NullInt64
		live, delayedCapture                                 int64
		createdDate, stateChangedDate, updatedAt             int64
	)
	err := row.Scan(
		&tx.ID, &tx.ExternalID, &resourceType, &parentID, &state,
		&amount, &fee, &netAmount, &totalAmount, &surcharge,
		&accountID, &reference, &description, &email, &cardholder,
		&brand, &lastDigits, &firstDigits, &provider,
		&live, &delayedCapture, &createdDate, &stateChangedDate,
		&tx.EventCount, &details, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read transaction: %w", err)
	}

	tx.ResourceType = domain.ResourceType(resourceType)
	tx.ParentExternalID = parentID.String
	tx.State = domain.TransactionState(state)
	tx.Amount = int64Ptr(amount)
	tx.Fee = int64Ptr(fee)
	tx.NetAmount = int64Ptr(netAmount)
	tx.TotalAmount = int64Ptr(totalAmount)
	tx.CorporateSurcharge = int64Ptr(surcharge)
	tx.GatewayAccountID = accountID.String
	tx.Reference = reference.String
	tx.Description = description.String
	tx.Email = email.String
	tx.CardholderName = cardholder.String
	tx.CardBrand = brand.String
	tx.LastDigitsCardNumber = lastDigits.String
	tx.FirstDigitsCardNumber = firstDigits.String
	tx.PaymentProvider = provider.String
	tx.Live = live != 0
	tx.DelayedCapture = delayedCapture != 0
	tx.CreatedDate = fromNanos(createdDate)
	tx.StateChangedDate = fromNanos(stateChangedDate)
	tx.TransactionDetails = details
	return &tx, nil
}

// Upsert replaces the snapshot row keyed by transaction id unless the
// stored row was folded from more events.
func (s *TransactionStore) Upsert(ctx context.Context, tx *domain.Transaction) error {
	details := tx.TransactionDetails
	if details == "" {
		details = "{}"
	}

	_, err := s.store.sqlDB.ExecContext(ctx, `
INSERT INTO transactions (
    transaction_id, external_id, resource_type, parent_external_id, state,
    amount, fee, net_amount, total_amount, corporate_surcharge,
    gateway_account_id, reference, description, email, cardholder_name,
    card_brand, last_digits_card_number, first_digits_card_number, payment_provider,
    live, delayed_capture, created_date, state_changed_date,
    event_count, transaction_details, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(transaction_id) DO UPDATE SET
    external_id = excluded.external_id,
    resource_type = excluded.resource_type,
    parent_external_id = excluded.parent_external_id,
    state = excluded.state,
    amount = excluded.amount,
    fee = excluded.fee,
    net_amount = excluded.net_amount,
    total_amount = excluded.total_amount,
    corporate_surcharge = excluded.corporate_surcharge,
    gateway_account_id = excluded.gateway_account_id,
    reference = excluded.reference,
    description = excluded.description,
    email = excluded.email,
    cardholder_name = excluded.cardholder_name,
    card_brand = excluded.card_brand,
    last_digits_card_number = excluded.last_digits_card_number,
    first_digits_card_number = excluded.first_digits_card_number,
    payment_provider = excluded.payment_provider,
    live = excluded.live,
    delayed_capture = excluded.delayed_capture,
    created_date = excluded.created_date,
    state_changed_date = excluded.state_changed_date,
    event_count = excluded.event_count,
    transaction_details = excluded.transaction_details,
    updated_at = excluded.updated_at
WHERE excluded.event_count >= transactions.event_count`,
		tx.ID, tx.ExternalID, string(tx.ResourceType), nullString(tx.ParentExternalID), string(tx.State),
		nullInt64(tx.Amount), nullInt64(tx.Fee), nullInt64(tx.NetAmount), nullInt64(tx.TotalAmount), nullInt64(tx.CorporateSurcharge),
		nullString(tx.GatewayAccountID), nullString(tx.Reference), nullString(tx.Description), nullString(tx.Email), nullString(tx.CardholderName),
		nullString(tx.CardBrand), nullString(tx.LastDigitsCardNumber), nullString(tx.FirstDigitsCardNumber), nullString(tx.PaymentProvider),
		boolToInt(tx.Live), boolToInt(tx.DelayedCapture), toNanos(tx.CreatedDate), toNanos(tx.StateChangedDate),
		tx.EventCount, details, toNanos(s.store.now()),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert transaction %s: %w", tx.ExternalID, err)
	}
	return nil
}
