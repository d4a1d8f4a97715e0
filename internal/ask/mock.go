package ask

import (
	"context"
)

// Mock returns an Asker that answers with the given responses in order,
// then ErrAborted once they run out
func Mock(responses ...string) *MockAsker {
	return &MockAsker{responses: responses}
}

// MockAsker implements Asker for testing
type MockAsker struct {
	responses []string
	Questions []string
}

var _ Asker = (*MockAsker)(nil)

func (m *MockAsker) Secret(ctx context.Context, question string) (string, error) {
	m.Questions = append(m.Questions, question)
	if len(m.responses) == 0 {
		return "", ErrAborted
	}
	response := m.responses[0]
	m.responses = m.responses[1:]
	return response, nil
}

