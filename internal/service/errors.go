package service

import (
	"errors"
	"fmt"
)

// Виды ошибок, по которым граница (HTTP) выбирает код ответа
var (
	ErrValidation    = errors.New("validation failed")
	ErrConflict      = errors.New("conflict")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrMalformedAuth = errors.New("malformed authorization")
)

// Error ошибка с сообщением для клиента и одним или несколькими видами
type Error struct {
	msg   string
	kinds []error
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() []error {
	return e.kinds
}

func newError(msg string, kinds ...error) error {
	return &Error{msg: msg, kinds: kinds}
}

func validationError(format string, args ...any) error {
	return newError(fmt.Sprintf(format, args...), ErrValidation)
}

func conflictError(format string, args ...any) error {
	return newError(fmt.Sprintf(format, args...), ErrConflict)
}

func notFoundError(msg string) error {
	return newError(msg, ErrNotFound)
}

func forbiddenError(msg string) error {
	return newError(msg, ErrForbidden)
}

func unauthorizedError(msg string) error {
	return newError(msg, ErrUnauthorized)
}

// MalformedAuthError используется middleware при неверном формате заголовка
func MalformedAuthError(msg string) error {
	return newError(msg, ErrMalformedAuth)
}

// UnauthorizedError используется middleware при отсутствии заголовка
func UnauthorizedError(msg string) error {
	return unauthorizedError(msg)
}

// SessionNotFoundError ответ для слота, который не может существовать
func SessionNotFoundError() error {
	return notFoundError(msgSessionNotFound)
}

// ProfessionalNotFoundError ответ для специалиста, который не может существовать
func ProfessionalNotFoundError() error {
	return notFoundError(msgProfessionalNotFound)
}

// ValidationError используется контроллерами при разборе запроса
func ValidationError(msg string) error {
	return newError(msg, ErrValidation)
}

// Сообщения, которые видит клиент
const (
	msgSessionNotFound      = "Session not found"
	msgSessionNotAvailable  = "Session not available"
	msgCustomerRequired     = "Customer must be sent"
	msgNotOwner             = "You cannot remove sessions from others"
	msgProfessionalNotFound = "Professional not found"
	msgInvalidProfessional  = "Invalid professional"
	msgInvalidToken         = "Invalid token"
	msgLoginRequired        = "To generate a token, a professional must be sent"
	msgProfessionalRequired = `Object "professional" must be sent`
	msgFirstNameRequired    = "Professional must have a first name"
	msgLastNameRequired     = "Professional must have a last name"
)
