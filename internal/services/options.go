package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/app/ledger/queries/get_transaction"
	"github.com/light-bringer/ledger-service/internal/app/ledger/queries/payment_counts_by_state"
	"github.com/light-bringer/ledger-service/internal/app/ledger/queries/transactions_summary"
	"github.com/light-bringer/ledger-service/internal/app/ledger/repo"
	"github.com/light-bringer/ledger-service/internal/app/ledger/usecases/project_event"
	"github.com/light-bringer/ledger-service/internal/app/ledger/usecases/replay_transaction"
	"github.com/light-bringer/ledger-service/internal/app/ledger/usecases/upsert_metadata"
	"github.com/light-bringer/ledger-service/internal/config"
	"github.com/light-bringer/ledger-service/internal/ingest"
	"github.com/light-bringer/ledger-service/internal/pkg/clock"
	"github.com/light-bringer/ledger-service/internal/pkg/committer"
	"github.com/light-bringer/ledger-service/internal/storage/sqlite"
	httphandler "github.com/light-bringer/ledger-service/internal/transport/http"
)

// Repositories groups the storage collaborators of one backend.
type Repositories struct {
	Events       contracts.EventRepository
	Transactions contracts.TransactionRepository
	MetadataKeys contracts.MetadataKeyRepository
	Metadata     contracts.TransactionMetadataRepository
	Reports      contracts.ReportRepository
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	SQLiteStore   *sqlite.Store
	Repositories  Repositories
	Policy        *config.PolicyLoader
	Logger        *slog.Logger

	ProjectEvent      *project_event.Interactor
	ReplayTransaction *replay_transaction.Interactor
	UpsertMetadata    *upsert_metadata.Interactor

	GetTransaction      *get_transaction.Query
	PaymentCounts       *payment_counts_by_state.Query
	TransactionsSummary *transactions_summary.Query
}

// NewServiceOptions opens the configured backend and wires up all
// application dependencies.
func NewServiceOptions(ctx context.Context, cfg config.Config, logger *slog.Logger) (*ServiceOptions, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &ServiceOptions{Logger: logger}

	// 1. Open storage
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite store: %w", err)
		}
		s.SQLiteStore = store
		s.Repositories = SQLiteRepositories(store)
	case config.BackendSpanner:
		client, err := spanner.NewClient(ctx, cfg.SpannerDB)
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		s.SpannerClient = client
		s.Repositories = SpannerRepositories(client)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	// 2. Metadata policy
	policy, err := config.NewPolicyLoader(cfg.PolicyFile, logger)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to load metadata policy: %w", err)
	}
	s.Policy = policy

	s.wire(clock.NewRealClock())
	return s, nil
}

// NewWithRepositories wires use cases over existing repositories.
func NewWithRepositories(repos Repositories, policy *config.PolicyLoader, clk clock.Clock, logger *slog.Logger) *ServiceOptions {
	if logger == nil {
		logger = slog.Default()
	}
	if policy == nil {
		policy, _ = config.NewPolicyLoader("", logger)
	}
	if clk == nil {
		clk = clock.NewRealClock()
	}
	s := &ServiceOptions{Repositories: repos, Policy: policy, Logger: logger}
	s.wire(clk)
	return s
}

func (s *ServiceOptions) wire(clk clock.Clock) {
	r := s.Repositories
	table := domain.DefaultSalienceTable()

	// Command use cases (write operations)
	s.UpsertMetadata = upsert_metadata.NewInteractor(r.Transactions, r.MetadataKeys, r.Metadata, s.Policy, s.Logger)
	s.ProjectEvent = project_event.NewInteractor(r.Events, r.Transactions, s.UpsertMetadata, table, clk, s.Logger)
	s.ReplayTransaction = replay_transaction.NewInteractor(r.Events, r.Transactions, s.UpsertMetadata, table, s.Logger)

	// Query use cases (read operations)
	s.GetTransaction = get_transaction.NewQuery(r.Transactions, r.Metadata)
	s.PaymentCounts = payment_counts_by_state.NewQuery(r.Reports)
	s.TransactionsSummary = transactions_summary.NewQuery(r.Reports)
}

// SpannerRepositories builds the Spanner-backed repositories.
func SpannerRepositories(client *spanner.Client) Repositories {
	comm := committer.NewCommitter(client)
	return Repositories{
		Events:       repo.NewEventRepo(client, comm),
		Transactions: repo.NewTransactionRepo(client, comm),
		MetadataKeys: repo.NewMetadataKeyRepo(comm),
		Metadata:     repo.NewTransactionMetadataRepo(client, comm),
		Reports:      repo.NewReportRepo(client),
	}
}

// SQLiteRepositories builds the SQLite-backed repositories.
func SQLiteRepositories(store *sqlite.Store) Repositories {
	return Repositories{
		Events:       store.Events(),
		Transactions: store.Transactions(),
		MetadataKeys: store.MetadataKeys(),
		Metadata:     store.TransactionMetadata(),
		Reports:      store.Reports(),
	}
}

// NewConsumer starts the asynchronous ingest pool.
func (s *ServiceOptions) NewConsumer(ctx context.Context, workers, queueSize int) *ingest.Consumer {
	return ingest.NewConsumer(ctx, s.ProjectEvent, workers, queueSize, s.Logger)
}

// HTTPHandler builds the HTTP API over the wired use cases.
func (s *ServiceOptions) HTTPHandler(consumer *ingest.Consumer) http.Handler {
	return httphandler.New(httphandler.Deps{
		Projector:    s.ProjectEvent,
		Batch:        consumer,
		Transactions: s.GetTransaction,
		PaymentCount: s.PaymentCounts,
		Summary:      s.TransactionsSummary,
	}, s.Logger)
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
	if s.SQLiteStore != nil {
		if err := s.SQLiteStore.Close(); err != nil {
			s.Logger.Warn("failed to close SQLite store", slog.Any("error", err))
		}
	}
}
