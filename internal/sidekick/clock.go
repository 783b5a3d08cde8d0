package sidekick

import (
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so business logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts unique ID generation so tests are deterministic.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }

// NewEntityID returns a prefixed entity id such as "t-<random>".
// Prefixes keep ids of different entity kinds visually distinct in stored data.
func NewEntityID(idgen IDGenerator, prefix string) string {
	return prefix + "-" + idgen.New()
}
