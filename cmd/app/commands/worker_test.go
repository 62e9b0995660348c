package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWorker struct {
	mock.Mock
}

func (m *mockWorker) Start(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockWorker) ProcessEvents(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestRunWorker(t *testing.T) {
	t.Run("cancellation-is-clean", func(t *testing.T) {
		ctx := context.Background()
		worker := &mockWorker{}
		worker.On("Start", ctx).Return(context.Canceled)

		assert.NoError(t, runWorker(ctx, worker))
		worker.AssertExpectations(t)
	})

	t.Run("failure-is-returned", func(t *testing.T) {
		ctx := context.Background()
		worker := &mockWorker{}
		worker.On("Start", ctx).Return(errors.New("boom"))

		err := runWorker(ctx, worker)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "outbox worker error")
	})
}
