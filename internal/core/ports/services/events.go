package services

// EventPublisher emits ledger events to an external broker. Publishing happens
// after the atomic unit commits and is best-effort: a publish failure never
// fails or rolls back the ledger operation.
type EventPublisher interface {
	Publish(topic string, event any) error
}
