package stripe

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("stripe client: internal error")

	// ErrInvalidRequest возвращается, когда Stripe отклонил параметры запроса
	ErrInvalidRequest = errors.New("stripe client: invalid request")

	// ErrUnauthorized возвращается при неверном секретном ключе
	ErrUnauthorized = errors.New("stripe client: unauthorized")

	// ErrInvalidResponse возвращается при некорректном ответе от Stripe
	ErrInvalidResponse = errors.New("stripe client: invalid response")
)
