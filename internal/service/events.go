package service

// EventPublisher fans domain events out to realtime listeners. Publishing is
// fire and forget; it must not block or fail the caller.
type EventPublisher interface {
	Publish(eventType, action string, data any)
}

const (
	EventStock   = "stock_update"
	EventOrder   = "order_update"
	EventPayment = "payment_update"
	EventRates   = "rates_update"
)

type noopPublisher struct{}

func (noopPublisher) Publish(string, string, any) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
