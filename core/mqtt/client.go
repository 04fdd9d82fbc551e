package mqtt

import "context"

// Publisher sends payloads to an MQTT broker.
type Publisher interface {
	// Publish delivers payload on topic, retrying according to the
	// implementation's policy. It returns once the broker accepted the
	// message or ctx is done.
	Publish(ctx context.Context, topic string, payload []byte) error
}
