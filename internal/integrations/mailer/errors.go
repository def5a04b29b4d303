package mailer

import "errors"

var (
	// ErrSendFailed возвращается при ошибке отправки письма.
	// Вызывающая сторона логирует её, но не откатывает операцию.
	ErrSendFailed = errors.New("mailer: failed to send email")

	// ErrUnknownTemplate возвращается при неизвестном шаблоне письма
	ErrUnknownTemplate = errors.New("mailer: unknown template")
)
