package runner

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCommandRunner is a mock implementation of the CommandRunner interface for testing.
type MockCommandRunner struct {
	mock.Mock
}

// NewMockCommandRunner creates a new MockCommandRunner instance.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{}
}

// Run mocks running a command.
func (m *MockCommandRunner) Run(ctx context.Context, cmd Command) (CommandResult, error) {
	args := m.Called(ctx, cmd)

	result, ok := args.Get(0).(CommandResult)
	if !ok {
		return CommandResult{}, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
	}

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// LookPath mocks resolving an executable.
func (m *MockCommandRunner) LookPath(name string) (string, error) {
	args := m.Called(name)

	return args.String(0), args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}
