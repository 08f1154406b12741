// Package apperr defines the coded business errors shared by all services.
// Controllers translate codes to HTTP statuses; everything uncoded is an
// internal error.
package apperr

import "errors"

type ErrCode string

const (
	ErrNotFound  ErrCode = "NOT_FOUND"
	ErrConflict  ErrCode = "CONFLICT"
	ErrBadEntity ErrCode = "BAD_ENTITY"
	ErrNotOwned  ErrCode = "NOT_OWNED"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

func New(code ErrCode, msg string) error { return codedError{code: code, msg: msg} }

func NotFound(msg string) error  { return New(ErrNotFound, msg) }
func Conflict(msg string) error  { return New(ErrConflict, msg) }
func BadEntity(msg string) error { return New(ErrBadEntity, msg) }
func NotOwned(msg string) error  { return New(ErrNotOwned, msg) }

// Code extracts the error code; uncoded errors yield "".
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
