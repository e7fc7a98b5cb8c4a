package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
)

var _ contracts.PolicySource = (*PolicyLoader)(nil)

// PolicyFile is the YAML form of the metadata policy.
//
//	authoritative_states:
//	  PAYMENT: [CREATED]
//	  REFUND: [CREATED]
//	correction_event_types:
//	  - ADMIN_MANUALLY_DID_AN_UPDATE
type PolicyFile struct {
	AuthoritativeStates  map[string][]string `yaml:"authoritative_states"`
	CorrectionEventTypes []string            `yaml:"correction_event_types"`
}

// Policy converts the file into a validated domain policy.
func (f *PolicyFile) Policy() (*domain.MetadataPolicy, error) {
	states := make(map[domain.ResourceType][]domain.TransactionState, len(f.AuthoritativeStates))
	for rawType, rawStates := range f.AuthoritativeStates {
		rt, err := domain.ParseResourceType(rawType)
		if err != nil {
			return nil, fmt.Errorf("%w: resource type %q", domain.ErrInvalidPolicy, rawType)
		}
		for _, raw := range rawStates {
			s, err := domain.ParseTransactionState(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: state %q", domain.ErrInvalidPolicy, raw)
			}
			states[rt] = append(states[rt], s)
		}
	}
	return domain.NewMetadataPolicy(states, f.CorrectionEventTypes)
}

// PolicyLoader reads the metadata policy file and watches it for changes.
// Without a path it serves the built-in policy.
type PolicyLoader struct {
	path   string
	logger *slog.Logger

	mu      sync.RWMutex
	current *domain.MetadataPolicy
}

// NewPolicyLoader creates a PolicyLoader and performs the initial load.
func NewPolicyLoader(path string, logger *slog.Logger) (*PolicyLoader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	l := &PolicyLoader{path: strings.TrimSpace(path), logger: logger}
	if l.path == "" {
		l.current = domain.DefaultMetadataPolicy()
		return l, nil
	}
	p, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = p
	return l, nil
}

// Policy returns the policy currently in force.
func (l *PolicyLoader) Policy() *domain.MetadataPolicy {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Reload forces an immediate re-read of the policy file. On error the
// previous policy stays in force.
func (l *PolicyLoader) Reload() error {
	if l.path == "" {
		return nil
	}
	p, err := l.load()
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.current = p
	l.mu.Unlock()
	l.logger.Info("metadata policy reloaded", slog.String("path", l.path))
	return nil
}

// Watch hot-reloads the policy on file changes until stop is called.
func (l *PolicyLoader) Watch() (stop func(), err error) {
	if l.path == "" {
		return func() {}, nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("policy watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("policy watcher add %s: %w", l.path, err)
	}

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					if err := l.Reload(); err != nil {
						l.logger.Warn("keeping previous metadata policy", slog.Any("error", err))
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				l.logger.Warn("policy watcher error", slog.Any("error", err))
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }, nil
}

func (l *PolicyLoader) load() (*domain.MetadataPolicy, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read policy %s: %w", l.path, err)
	}
	var file PolicyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse policy %s: %w", l.path, err)
	}
	p, err := file.Policy()
	if err != nil {
		return nil, fmt.Errorf("policy %s: %w", l.path, err)
	}
	return p, nil
}
