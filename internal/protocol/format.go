package protocol

import (
	"fmt"
	"io"
	"strings"
)

// String renders h as the multi-line text block used by the CLI.
func (h Header) String() string {
	var b strings.Builder
	_, _ = h.WriteTo(&b)
	return b.String()
}

// WriteTo writes the text rendering of h to w.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	code := "<nil>"
	if h.Code != nil {
		code = h.Code.String()
	}
	n, err := fmt.Fprintf(w,
		"Version: %d\nType: %s\nToken length: %d\nCode: %s\nMessage ID: %d",
		h.Version, h.Type, h.TokenLength, code, h.MessageID)
	return int64(n), err
}
