package shared

// BaseAggregateRoot contains common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int
}

// NewBaseAggregateRoot creates a new aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// IncrementVersion increments the aggregate version for optimistic locking
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}
