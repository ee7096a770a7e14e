package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется при неверном или отсутствующем админ-пароле.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда скрытая викторина запрошена без прав администратора.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrNotStarted используется, когда викторина еще не началась (join / запрос вопросов до start_time).
	// Не фатальна: клиент может повторить запрос после начала викторины.
	ErrNotStarted = errors.New("quiz has not started yet")

	// ErrConflict используется для конфликтов состояния.
	ErrConflict = errors.New("resource state conflict")
)
