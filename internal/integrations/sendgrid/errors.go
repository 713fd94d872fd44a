package sendgrid

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("sendgrid client: internal error")

	// ErrRejected возвращается, когда SendGrid отклонил письмо
	ErrRejected = errors.New("sendgrid client: message rejected")

	// ErrUnauthorized возвращается при неверном API ключе
	ErrUnauthorized = errors.New("sendgrid client: unauthorized")

	// ErrInvalidResponse возвращается при некорректном ответе от SendGrid
	ErrInvalidResponse = errors.New("sendgrid client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что SendGrid недоступен и отправку следует повторить позже
	ErrServiceDegraded = errors.New("sendgrid unavailable: graceful degradation applied")
)
