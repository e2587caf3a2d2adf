package callhub

import "github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"

// Client is one live connection on the streaming surface. It abstracts
// the underlying transport so the hub can route to websocket clients
// and test doubles uniformly.
type Client interface {
	// ID returns the transport-assigned connection identity.
	ID() string

	// Outbound returns the channel the hub delivers events into. The
	// hub never blocks on it; a full buffer means the event is dropped
	// for that client.
	Outbound() chan<- models.Outbound

	// Run starts the client's read and write pumps.
	Run()

	// Close stops outbound delivery and releases the transport.
	Close()
}
