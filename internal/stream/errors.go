package stream

import (
	"fmt"

	"golang.org/x/net/http2"
)

// ProtocolError is a peer-attributable violation of the HTTP/2 state
// machine. Frame handlers translate it into a connection- or
// stream-level error code on the wire; this core only classifies it.
type ProtocolError struct {
	Code    http2.ErrCode
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("http2 protocol error (%s): %s", e.Code, e.Message)
}

func protocolError(code http2.ErrCode, format string, args ...any) error {
	return &ProtocolError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsProtocolError reports whether err is a peer-attributable ProtocolError,
// as opposed to a programmer error (invalid argument / unsupported op).
func IsProtocolError(err error) bool {
	_, ok := err.(*ProtocolError)
	return ok
}
