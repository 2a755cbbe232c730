package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrShortHeader        = errors.New("protocol: short header")
	ErrLongHeader         = errors.New("protocol: header longer than 4 bytes")
	ErrInvalidMessageType = errors.New("protocol: invalid message type")
	ErrInvalidCode        = errors.New("protocol: invalid code")
	ErrInvalidClass       = errors.New("protocol: invalid code class")
	ErrDetailOutOfRange   = errors.New("protocol: code detail out of range")
	ErrNamedDetail        = errors.New("protocol: detail has a named variant")
	ErrInvalidDotted      = errors.New("protocol: invalid dotted code")
	ErrFieldWidth         = errors.New("protocol: field exceeds bit width")
)

// InvalidMessageTypeError carries the raw 2-bit type value that failed
// to map onto MsgType.
type InvalidMessageTypeError struct {
	Value uint8
}

func (e *InvalidMessageTypeError) Error() string {
	return fmt.Sprintf("protocol: invalid message type %d", e.Value)
}

func (e *InvalidMessageTypeError) Is(target error) bool {
	return target == ErrInvalidMessageType
}

// InvalidCodeError carries the offending class/detail pair. Reason is
// ErrInvalidClass or ErrDetailOutOfRange.
type InvalidCodeError struct {
	Class  uint8
	Detail uint8
	Reason error
}

func (e *InvalidCodeError) Error() string {
	if e.Reason == nil {
		return fmt.Sprintf("protocol: invalid code class=%d detail=%d", e.Class, e.Detail)
	}
	return fmt.Sprintf("protocol: invalid code class=%d detail=%d: %s", e.Class, e.Detail, trimPrefix(e.Reason))
}

func (e *InvalidCodeError) Is(target error) bool {
	return target == ErrInvalidCode
}

func (e *InvalidCodeError) Unwrap() error {
	return e.Reason
}

// FieldError reports a header field that does not fit its wire width.
type FieldError struct {
	Field string
	Value uint64
	Max   uint64
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("protocol: field %s=%d exceeds max %d", e.Field, e.Value, e.Max)
}

func (e *FieldError) Unwrap() error {
	return ErrFieldWidth
}

func trimPrefix(err error) string {
	const prefix = "protocol: "
	msg := err.Error()
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
