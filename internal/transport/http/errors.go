package http

import "errors"

var (
	errInvalidPayload = errors.New("invalid payload")
	errUnsupported    = errors.New("unsupported message type")
)

// protocolError reports errors caused by a malformed client message.
func protocolError(err error) bool {
	return errors.Is(err, errInvalidPayload) || errors.Is(err, errUnsupported)
}
