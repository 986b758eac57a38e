package player

import "context"

// Mock is a test double for a transport.
type Mock struct {
	Calls []string
	Err   error
}

// NewMock creates a new mock transport for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Play(context.Context) error {
	m.Calls = append(m.Calls, "play")
	return m.Err
}

func (m *Mock) Pause(context.Context) error {
	m.Calls = append(m.Calls, "pause")
	return m.Err
}
