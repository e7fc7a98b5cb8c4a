package testutil

import "github.com/light-bringer/ledger-service/internal/pkg/clock"

// NewFixedClock creates a mock clock fixed at BaseDate.
func NewFixedClock() *clock.MockClock {
	return clock.NewMockClock(BaseDate)
}
