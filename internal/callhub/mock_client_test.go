package callhub_test

import (
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"
)

// MockClient is a channel-backed Client for hub tests. Received events
// are read back from Recv.
type MockClient struct {
	id   string
	Recv chan models.Outbound
}

func newMockClient(id string) *MockClient {
	return &MockClient{
		id:   id,
		Recv: make(chan models.Outbound, 16),
	}
}

func (c *MockClient) ID() string                       { return c.id }
func (c *MockClient) Outbound() chan<- models.Outbound { return c.Recv }

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	// Not needed for testing
}

// received drains everything currently queued for the client.
func (c *MockClient) received() []models.Outbound {
	var out []models.Outbound
	for {
		select {
		case ev := <-c.Recv:
			out = append(out, ev)
		default:
			return out
		}
	}
}
