package commands_test

import (
	"context"
	"testing"

	"errands/internal/core/application/usecases/commands"
	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/notification"
	"errands/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newNotificationFactory(env *testEnv) *MockNotificationUoWFactory {
	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(env.uow)
	return factory
}

func TestMarkNotificationReadCommandHandler_Handle(t *testing.T) {
	env := newTestEnv(t)
	owner := kernel.NewUUID()
	n, err := notification.New(kernel.NewUUID(), owner, notification.System, "Welcome", "hello", nil, testNow)
	require.NoError(t, err)
	env.notes.On("Get", mock.Anything, n.ID()).Return(n, nil)
	env.notes.On("Update", mock.Anything, n).Return(nil).Once()
	env.expectCommit()

	cmd, err := commands.NewMarkNotificationReadCommand(n.ID(), owner)
	require.NoError(t, err)
	handler := commands.NewMarkNotificationReadCommandHandler(newNotificationFactory(env))

	require.NoError(t, handler.Handle(context.Background(), cmd))
	assert.True(t, n.IsRead())
	env.notes.AssertExpectations(t)
}

func TestMarkNotificationReadCommandHandler_Handle_NotOwner(t *testing.T) {
	env := newTestEnv(t)
	n, err := notification.New(kernel.NewUUID(), kernel.NewUUID(), notification.System, "Welcome", "hello", nil, testNow)
	require.NoError(t, err)
	env.notes.On("Get", mock.Anything, n.ID()).Return(n, nil)

	cmd, err := commands.NewMarkNotificationReadCommand(n.ID(), kernel.NewUUID())
	require.NoError(t, err)
	handler := commands.NewMarkNotificationReadCommandHandler(newNotificationFactory(env))

	require.ErrorIs(t, handler.Handle(context.Background(), cmd), errs.ErrForbidden)
	assert.False(t, n.IsRead())
	env.notes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMarkAllNotificationsReadCommandHandler_Handle(t *testing.T) {
	env := newTestEnv(t)
	owner := kernel.NewUUID()
	env.notes.On("MarkAllRead", mock.Anything, owner).Return(int64(3), nil).Once()
	env.expectCommit()

	cmd, err := commands.NewMarkAllNotificationsReadCommand(owner)
	require.NoError(t, err)
	handler := commands.NewMarkAllNotificationsReadCommandHandler(newNotificationFactory(env))

	changed, err := handler.Handle(context.Background(), cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(3), changed)
}
