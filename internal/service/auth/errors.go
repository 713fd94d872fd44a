package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
	// Текст не различает "нет пользователя" и "не тот пароль".
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrAccountDisabled возвращается для деактивированных учетных записей
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrWeakPassword возвращается, когда новый пароль короче минимума
	ErrWeakPassword = errors.New("password does not meet minimum length")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth service: internal error")
)
