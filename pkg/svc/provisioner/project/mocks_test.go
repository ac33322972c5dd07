package projectprovisioner_test

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, dest string) error {
	args := m.Called(ctx, dest)

	return args.Error(0)
}

type mockGit struct {
	mock.Mock
}

func (m *mockGit) Available() error {
	args := m.Called()

	return args.Error(0)
}

func (m *mockGit) Init(ctx context.Context, dir, branch string) error {
	args := m.Called(ctx, dir, branch)

	return args.Error(0)
}

func (m *mockGit) CommitAll(ctx context.Context, dir, message string) error {
	args := m.Called(ctx, dir, message)

	return args.Error(0)
}

type mockInstaller struct {
	mock.Mock
}

func (m *mockInstaller) Binary() string {
	args := m.Called()

	return args.String(0)
}

func (m *mockInstaller) CleanInstall(ctx context.Context, dir string) error {
	args := m.Called(ctx, dir)

	return args.Error(0)
}

// callRecorder collects the order in which collaborators are invoked.
type callRecorder struct {
	calls []string
}

func (r *callRecorder) record(name string) func(mock.Arguments) {
	return func(mock.Arguments) {
		r.calls = append(r.calls, name)
	}
}
