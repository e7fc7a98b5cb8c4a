// Package mocks provides testify mocks for the ledger contracts.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
)

var (
	_ contracts.EventRepository               = (*EventRepository)(nil)
	_ contracts.TransactionRepository         = (*TransactionRepository)(nil)
	_ contracts.MetadataKeyRepository         = (*MetadataKeyRepository)(nil)
	_ contracts.TransactionMetadataRepository = (*TransactionMetadataRepository)(nil)
	_ contracts.ReportRepository              = (*ReportRepository)(nil)
	_ contracts.PolicySource                  = (*StaticPolicy)(nil)
)

type EventRepository struct{ mock.Mock }

func (m *EventRepository) Insert(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventRepository) ListByResourceExternalID(ctx context.Context, externalID string) ([]*domain.Event, error) {
	args := m.Called(ctx, externalID)
	events, _ := args.Get(0).([]*domain.Event)
	return events, args.Error(1)
}

type TransactionRepository struct{ mock.Mock }

func (m *TransactionRepository) FindByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error) {
	args := m.Called(ctx, externalID)
	tx, _ := args.Get(0).(*domain.Transaction)
	return tx, args.Error(1)
}

func (m *TransactionRepository) Upsert(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

type MetadataKeyRepository struct{ mock.Mock }

func (m *MetadataKeyRepository) InsertIfNotExists(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type TransactionMetadataRepository struct{ mock.Mock }

func (m *TransactionMetadataRepository) Upsert(ctx context.Context, transactionID, key, value string) error {
	args := m.Called(ctx, transactionID, key, value)
	return args.Error(0)
}

func (m *TransactionMetadataRepository) ListByTransactionID(ctx context.Context, transactionID string) (map[string]string, error) {
	args := m.Called(ctx, transactionID)
	md, _ := args.Get(0).(map[string]string)
	return md, args.Error(1)
}

type ReportRepository struct{ mock.Mock }

func (m *ReportRepository) PaymentCountsByState(ctx context.Context, filter contracts.ReportFilter) ([]contracts.StateCount, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]contracts.StateCount)
	return rows, args.Error(1)
}

func (m *ReportRepository) TransactionSummaryStatistics(ctx context.Context, filter contracts.ReportFilter, resourceType domain.ResourceType) (contracts.TransactionsStatistics, error) {
	args := m.Called(ctx, filter, resourceType)
	stats, _ := args.Get(0).(contracts.TransactionsStatistics)
	return stats, args.Error(1)
}

// StaticPolicy serves a fixed policy.
type StaticPolicy struct {
	P *domain.MetadataPolicy
}

func (s *StaticPolicy) Policy() *domain.MetadataPolicy {
	if s.P == nil {
		return domain.DefaultMetadataPolicy()
	}
	return s.P
}
