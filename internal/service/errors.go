package service

import "errors"

// 错误类别，GraphQL 层用 errors.Is 判断类别并映射为 extensions.code
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrInternalServer   = errors.New("internal server error")
)

// Error 是带有面向客户端消息的业务错误，Unwrap 返回其类别。
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrLoginToAddTrack    = newError(ErrPermissionDenied, "Login to add a track!")
	ErrLoginToLike        = newError(ErrPermissionDenied, "User is not existed! Please log in!")
	ErrNotLoggedIn        = newError(ErrPermissionDenied, "Not logged in!")
	ErrNotPermittedUpdate = newError(ErrPermissionDenied, "Not permitted to update this track!")
	ErrNotPermittedDelete = newError(ErrPermissionDenied, "Not permitted to delete this track!")
	ErrTrackNotFound      = newError(ErrNotFound, "Can not find track with this id!")
	ErrUserNotFound       = newError(ErrNotFound, "User matching query does not exist.")
	ErrUsernameTaken      = newError(ErrValidation, "A user with that username already exists.")
	ErrPasswordTooLong    = newError(ErrValidation, "Password must be at most 72 bytes.")
)
