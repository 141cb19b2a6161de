package notification

import "errors"

var (
	// ErrBuildMessage не удалось собрать сообщение
	ErrBuildMessage = errors.New("notification: failed to build message")

	// ErrPublish не удалось опубликовать событие
	ErrPublish = errors.New("notification: failed to publish event")
)
