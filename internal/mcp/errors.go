package mcp

import "errors"

// BadRequestError reports a malformed protocol call: an unknown tool name or
// arguments that fail the catalog-declared schema. Nothing is partially
// executed when it is returned.
type BadRequestError struct {
	Msg string
}

func (e *BadRequestError) Error() string { return e.Msg }

// NotFoundError reports an unknown resource URI, review id, or prompt name.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// IsBadRequest reports whether err is a protocol-level bad request.
func IsBadRequest(err error) bool {
	var br *BadRequestError
	return errors.As(err, &br)
}

// IsNotFound reports whether err is a protocol-level not found.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
