// Package constants holds values shared across layers.
package constants

// Pub/Sub providers accepted by the pubsub.provider setting.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Event types carried in the "event_type" message attribute.
const (
	EventTypeOrderPlaced = "order.placed"
)
