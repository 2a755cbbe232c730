package protocol

import "io"

// Encode packs h into its wire form. Each field is masked to its bit
// width; encoding a header that fails Validate yields those masked bits,
// which may not decode back.
func (h Header) Encode() [HeaderSize]byte {
	var buf [HeaderSize]byte
	buf[0] = (h.Version<<versionShift)&versionMask |
		(uint8(h.Type)<<typeShift)&typeMask |
		h.TokenLength&tokenLenMask
	if h.Code != nil {
		buf[1] = EncodeCode(h.Code)
	}
	buf[2] = byte(h.MessageID >> 8)
	buf[3] = byte(h.MessageID)
	return buf
}

// AppendBinary appends the wire form of h to dst.
func (h Header) AppendBinary(dst []byte) ([]byte, error) {
	buf := h.Encode()
	return append(dst, buf[:]...), nil
}

// MarshalBinary implements encoding.BinaryMarshaler. It never fails.
func (h Header) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, HeaderSize))
}

// WriteHeader writes the wire form of h to w.
func WriteHeader(w io.Writer, h Header) error {
	buf := h.Encode()
	_, err := w.Write(buf[:])
	return err
}
