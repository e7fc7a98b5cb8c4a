package contracts

import "github.com/light-bringer/ledger-service/internal/app/ledger/domain"

// PolicySource supplies the metadata policy currently in force.
// Implementations may swap the policy at runtime; callers read it per use.
type PolicySource interface {
	Policy() *domain.MetadataPolicy
}
