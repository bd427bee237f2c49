package enums

import "fmt"

// OutboxAggregateType maps to the aggregate_type enum in Postgres.
type OutboxAggregateType string

const (
	AggregateUser  OutboxAggregateType = "user"
	AggregateStore OutboxAggregateType = "store"
	AggregateRole  OutboxAggregateType = "role"
)

var validAggregateTypes = []OutboxAggregateType{
	AggregateUser,
	AggregateStore,
	AggregateRole,
}

// IsValid reports whether the value matches the canonical aggregate_type enum.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOutboxAggregateType converts raw input into OutboxAggregateType.
func ParseOutboxAggregateType(value string) (OutboxAggregateType, error) {
	for _, candidate := range validAggregateTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid aggregate type %q", value)
}

// OutboxEventType maps to the event_type enum in Postgres.
type OutboxEventType string

const (
	EventUserCreated     OutboxEventType = "user_created"
	EventUserUpdated     OutboxEventType = "user_updated"
	EventUserDeleted     OutboxEventType = "user_deleted"
	EventStoreCreated    OutboxEventType = "store_created"
	EventStoreUpdated    OutboxEventType = "store_updated"
	EventStoreDeleted    OutboxEventType = "store_deleted"
	EventRoleAssigned    OutboxEventType = "role_assigned"
	EventRoleRevoked     OutboxEventType = "role_revoked"
	EventEmployeeAdded   OutboxEventType = "employee_added"
	EventEmployeeRemoved OutboxEventType = "employee_removed"
)

var validEventTypes = []OutboxEventType{
	EventUserCreated,
	EventUserUpdated,
	EventUserDeleted,
	EventStoreCreated,
	EventStoreUpdated,
	EventStoreDeleted,
	EventRoleAssigned,
	EventRoleRevoked,
	EventEmployeeAdded,
	EventEmployeeRemoved,
}

// IsValid reports whether the value matches the canonical event_type enum.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}

// OutboxDLQErrorReason categorizes why an outbox event was parked.
type OutboxDLQErrorReason string

const (
	DLQReasonMaxAttempts  OutboxDLQErrorReason = "max_attempts_exceeded"
	DLQReasonUnresolvable OutboxDLQErrorReason = "unresolvable_event"
)
