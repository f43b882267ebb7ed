package commands

import (
	"errors"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/pkg/guard"
)

var ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
	"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
)

type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID
	userID         kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkNotificationReadCommand(notificationID, userID kernel.UUID) (MarkNotificationReadCommand, error) {
	if err := errors.Join(notificationID.Validate(), userID.Validate()); err != nil {
		return MarkNotificationReadCommand{}, err
	}
	return MarkNotificationReadCommand{notificationID: notificationID, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

func (c MarkNotificationReadCommand) NotificationID() kernel.UUID { return c.notificationID }
func (c MarkNotificationReadCommand) UserID() kernel.UUID         { return c.userID }

var ErrMarkAllNotificationsReadCommandIsNotConstructed = errors.New(
	"MarkAllNotificationsReadCommand must be created via NewMarkAllNotificationsReadCommand constructor",
)

type MarkAllNotificationsReadCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkAllNotificationsReadCommand(userID kernel.UUID) (MarkAllNotificationsReadCommand, error) {
	if err := userID.Validate(); err != nil {
		return MarkAllNotificationsReadCommand{}, err
	}
	return MarkAllNotificationsReadCommand{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkAllNotificationsReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkAllNotificationsReadCommandIsNotConstructed)
}

func (c MarkAllNotificationsReadCommand) UserID() kernel.UUID {
	return c.userID
}
