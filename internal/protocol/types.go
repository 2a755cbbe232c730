package protocol

import (
	"fmt"
	"strconv"
)

// HeaderSize is the fixed wire size of a message header.
const HeaderSize = 4

// Bit layout of the fixed header.
const (
	versionMask  uint8 = 0xC0
	versionShift       = 6
	typeMask     uint8 = 0x30
	typeShift          = 4
	tokenLenMask uint8 = 0x0F

	classShift       = 5
	classMask  uint8 = 0x07
	detailMask uint8 = 0x1F

	MaxVersion     uint8 = 0x03
	MaxTokenLength uint8 = 0x0F
	MaxDetail      uint8 = 0x1F
)

// MsgType is the 2-bit message type field.
type MsgType uint8

const (
	Confirmable    MsgType = 0
	NonConfirmable MsgType = 1
	Acknowledgment MsgType = 2
	Reset          MsgType = 3
)

var msgTypeNames = map[MsgType]string{
	Confirmable:    "Confirmable",
	NonConfirmable: "NonConfirmable",
	Acknowledgment: "Acknowledgment",
	Reset:          "Reset",
}

func (t MsgType) String() string {
	if name, ok := msgTypeNames[t]; ok {
		return name
	}
	return "MsgType(" + strconv.FormatUint(uint64(t), 10) + ")"
}

// ParseMsgType maps a raw type value onto the closed MsgType set.
func ParseMsgType(v uint8) (MsgType, error) {
	switch MsgType(v) {
	case Confirmable, NonConfirmable, Acknowledgment, Reset:
		return MsgType(v), nil
	default:
		return 0, &InvalidMessageTypeError{Value: v}
	}
}

// Header is the fixed 4-byte message header.
type Header struct {
	Version     uint8
	Type        MsgType
	TokenLength uint8
	Code        Code
	MessageID   uint16
}

// NewHeader builds a header from already-validated parts. Nothing is
// checked here; use Validate when the parts come from untrusted input.
func NewHeader(version uint8, typ MsgType, tokenLength uint8, code Code, messageID uint16) Header {
	return Header{
		Version:     version,
		Type:        typ,
		TokenLength: tokenLength,
		Code:        code,
		MessageID:   messageID,
	}
}

// Validate checks field widths, the message type and the code range.
func (h Header) Validate() error {
	if h.Version > MaxVersion {
		return &FieldError{Field: "version", Value: uint64(h.Version), Max: uint64(MaxVersion)}
	}
	if _, err := ParseMsgType(uint8(h.Type)); err != nil {
		return err
	}
	if h.TokenLength > MaxTokenLength {
		return &FieldError{Field: "token_length", Value: uint64(h.TokenLength), Max: uint64(MaxTokenLength)}
	}
	if h.Code == nil {
		return fmt.Errorf("%w: missing code", ErrInvalidCode)
	}
	if _, err := ParseCode(h.Code.Class(), h.Code.Detail()); err != nil {
		return err
	}
	return nil
}
