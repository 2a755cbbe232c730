package protocol

import (
	"errors"
	"io"
)

// DecodeHeader unpacks a fixed header from its wire form.
func DecodeHeader(b [HeaderSize]byte) (Header, error) {
	version := (b[0] & versionMask) >> versionShift
	msgType, err := ParseMsgType((b[0] & typeMask) >> typeShift)
	if err != nil {
		return Header{}, err
	}
	tokenLength := b[0] & tokenLenMask

	code, err := CodeFromByte(b[1])
	if err != nil {
		return Header{}, err
	}

	return Header{
		Version:     version,
		Type:        msgType,
		TokenLength: tokenLength,
		Code:        code,
		MessageID:   uint16(b[2])<<8 | uint16(b[3]),
	}, nil
}

// ParseHeader decodes a header from a slice that must hold exactly
// HeaderSize bytes.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, ErrShortHeader
	}
	if len(buf) > HeaderSize {
		return Header{}, ErrLongHeader
	}
	return DecodeHeader([HeaderSize]byte(buf))
}

// ReadHeader reads exactly one header from r.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, ErrShortHeader
		}
		return Header{}, err
	}
	return DecodeHeader(buf)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (h *Header) UnmarshalBinary(data []byte) error {
	decoded, err := ParseHeader(data)
	if err != nil {
		return err
	}
	*h = decoded
	return nil
}
