package enums

import "fmt"

// OutboxStatus tracks delivery of an outbox event.
type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusPublished OutboxStatus = "published"
	OutboxStatusFailed    OutboxStatus = "failed"
)

var validOutboxStatuses = []OutboxStatus{
	OutboxStatusPending,
	OutboxStatusPublished,
	OutboxStatusFailed,
}

// IsValid reports whether the value is a known OutboxStatus.
func (o OutboxStatus) IsValid() bool {
	for _, candidate := range validOutboxStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOutboxStatus converts raw input into an OutboxStatus.
func ParseOutboxStatus(value string) (OutboxStatus, error) {
	for _, candidate := range validOutboxStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid outbox status %q", value)
}

// OutboxAggregateType names the entity an outbox event describes.
type OutboxAggregateType string

const (
	AggregatePurchase OutboxAggregateType = "purchase"
	AggregateOrder    OutboxAggregateType = "order"
)

var validAggregateTypes = []OutboxAggregateType{
	AggregatePurchase,
	AggregateOrder,
}

// IsValid reports whether the value is a known OutboxAggregateType.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// OutboxEventType names what happened to the aggregate.
type OutboxEventType string

const (
	EventPurchaseCompleted OutboxEventType = "purchase_completed"
	EventOrderConfirmed    OutboxEventType = "order_confirmed"
	EventOrderFailed       OutboxEventType = "order_failed"
)

var validOutboxEventTypes = []OutboxEventType{
	EventPurchaseCompleted,
	EventOrderConfirmed,
	EventOrderFailed,
}

// IsValid reports whether the value is a known OutboxEventType.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into an OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
