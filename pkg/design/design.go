// Package design keeps rendered layouts for a limited time so the HTTP API
// can hand out download links.
//
// A [Design] is an artifact (SVG, PNG, PDF, ...) with a random ID and an
// expiry. Backends implement [Store]:
//
//   - [MemoryStore] for tests and single-process servers
//   - [FileStore] for a local server that survives restarts
//   - [RedisStore] for multi-instance deployments, using key expiry
//   - [MongoStore] for deployments that already run MongoDB, using a TTL index
//
// Stores return DESIGN_NOT_FOUND for unknown IDs and DESIGN_EXPIRED for
// designs past their expiry that the backend has not yet removed. A
// [Janitor] calls Cleanup periodically for backends without native expiry.
package design

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/cafeplan/pkg/errors"
)

// DefaultTTL is how long a stored design stays downloadable.
const DefaultTTL = 10 * time.Minute

// Design is a stored artifact.
type Design struct {
	ID          string    `json:"id" bson:"_id" msgpack:"id"`
	Format      string    `json:"format" bson:"format" msgpack:"format"`
	ContentType string    `json:"content_type" bson:"content_type" msgpack:"content_type"`
	Data        []byte    `json:"data,omitempty" bson:"data" msgpack:"data"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" msgpack:"created_at"`
	ExpiresAt   time.Time `json:"expires_at" bson:"expires_at" msgpack:"expires_at"`
}

// New returns a design with a fresh ID that expires after ttl. A ttl of zero
// or less uses [DefaultTTL].
func New(format, contentType string, data []byte, ttl time.Duration) *Design {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now().UTC()
	return &Design{
		ID:          NewID(),
		Format:      format,
		ContentType: contentType,
		Data:        data,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

// NewID returns a random UUID string.
func NewID() string {
	return uuid.NewString()
}

// IsExpired reports whether d is past its expiry.
func (d *Design) IsExpired() bool {
	return time.Now().After(d.ExpiresAt)
}

// TTL returns the remaining lifetime of d, never negative.
func (d *Design) TTL() time.Duration {
	if ttl := time.Until(d.ExpiresAt); ttl > 0 {
		return ttl
	}
	return 0
}

// Store is implemented by design storage backends. All methods are safe for
// concurrent use.
type Store interface {
	// Save stores d, replacing any design with the same ID.
	Save(ctx context.Context, d *Design) error

	// Get returns the design with the given ID.
	Get(ctx context.Context, id string) (*Design, error)

	// Delete removes a design. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired designs and reports how many were removed.
	// Backends with native expiry may return 0.
	Cleanup(ctx context.Context) (int, error)

	// Close releases backend resources.
	Close() error
}

// checkID rejects IDs that are not UUIDs. File and database backends use
// the ID as a path or key, so arbitrary strings are never passed through.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notFound(id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeDesignNotFound, "design %q not found", id)
}

func expired(id string) error {
	return errors.New(errors.ErrCodeDesignExpired, "design %q has expired", id)
}

func validate(d *Design) error {
	if d == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil design")
	}
	if _, err := uuid.Parse(d.ID); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "design id %q is not a UUID", d.ID)
	}
	return nil
}
