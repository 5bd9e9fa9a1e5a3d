package trip

import (
	"context"

	"github.com/google/uuid"
)

// TripListItem is the list read model: the trip plus the aggregates the list
// view renders without extra lookups.
type TripListItem struct {
	Trip             *Trip
	ParticipantCount int
	HostUsername     string
}

// TripFilter narrows trip listings. Zero value matches everything.
type TripFilter struct {
	Keyword  string
	Status   TripStatus
	HasSlots bool
	offset   int
	limit    int
}

// NewTripFilter creates a filter with default paging.
func NewTripFilter() TripFilter {
	return TripFilter{limit: 50}
}

// WithKeyword matches title or destination, case-insensitively.
func (f TripFilter) WithKeyword(keyword string) TripFilter {
	f.Keyword = keyword
	return f
}

// WithStatus restricts to a single lifecycle state.
func (f TripFilter) WithStatus(status TripStatus) TripFilter {
	f.Status = status
	return f
}

// WithHasSlots restricts to Upcoming trips with spare capacity.
func (f TripFilter) WithHasSlots() TripFilter {
	f.HasSlots = true
	return f
}

// WithPaging sets offset and limit.
func (f TripFilter) WithPaging(offset, limit int) TripFilter {
	if offset >= 0 {
		f.offset = offset
	}
	if limit > 0 {
		f.limit = limit
	}
	return f
}

// Offset returns the paging offset.
func (f TripFilter) Offset() int { return f.offset }

// Limit returns the paging limit.
func (f TripFilter) Limit() int { return f.limit }

// TripRepository defines the persistence contract for trips and
// participations. Create, AddParticipant and RemoveParticipant are
// transactional: the trip row and its membership mutation commit or roll
// back together, and the status flip happens inside the same transaction.
type TripRepository interface {
	// Create persists the trip and the host's participation atomically.
	Create(ctx context.Context, t *Trip) error
	Update(ctx context.Context, t *Trip) error
	FindByID(ctx context.Context, id uuid.UUID) (*Trip, error)
	List(ctx context.Context, filter TripFilter) ([]*TripListItem, error)

	// AddParticipant inserts a participation under a trip row lock,
	// re-checking status and capacity, and flips Upcoming to Full when the
	// insert saturates the trip. Returns INVALID_STATE when the trip is not
	// Upcoming and CONFLICT on duplicate join or exhausted capacity.
	AddParticipant(ctx context.Context, tripID, userID uuid.UUID) error

	// RemoveParticipant deletes a participation under a trip row lock and
	// demotes Full to Upcoming when capacity frees up. Returns NOT_FOUND
	// when no participation exists.
	RemoveParticipant(ctx context.Context, tripID, userID uuid.UUID) error

	IsParticipant(ctx context.Context, tripID, userID uuid.UUID) (bool, error)
	CountParticipants(ctx context.Context, tripID uuid.UUID) (int64, error)
	ListParticipants(ctx context.Context, tripID uuid.UUID) ([]*ParticipantInfo, error)

	// ListByHost returns trips hosted by the user, most recent start first.
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]*Trip, error)
	// ListByParticipant returns trips the user participates in, most recent
	// start first, optionally excluding trips they host.
	ListByParticipant(ctx context.Context, userID uuid.UUID, excludeHosted bool) ([]*TripListItem, error)
}
