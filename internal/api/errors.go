package api

import "errors"

// ErrInvalidRequest marks failures caused by the request rather than the file.
var ErrInvalidRequest = errors.New("invalid_request")

type requestError struct {
	param string
	msg   string
}

func (e requestError) Error() string {
	return e.param + ": " + e.msg
}

func (e requestError) Unwrap() error {
	return ErrInvalidRequest
}

var errOutsideRoot = requestError{param: "path", msg: "must be relative to the server root"}
