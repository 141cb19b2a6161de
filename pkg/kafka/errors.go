package kafka

import "errors"

var (
	// ErrProducerClosed продюсер уже закрыт
	ErrProducerClosed = errors.New("kafka: producer is closed")

	// ErrInvalidMessage сообщение не удалось собрать
	ErrInvalidMessage = errors.New("kafka: invalid message")

	// ErrEmptyKey у сообщения нет ключа
	ErrEmptyKey = errors.New("kafka: message key cannot be empty")

	// ErrEmptyValue у сообщения нет тела
	ErrEmptyValue = errors.New("kafka: message value cannot be empty")

	// ErrInvalidConfig некорректная конфигурация продюсера
	ErrInvalidConfig = errors.New("kafka: invalid producer config")
)
