package inspect

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidInput = errors.New("inspect: invalid input")

// ParseInput turns one operator-supplied header into raw bytes.
//
// Accepted forms:
//   - contiguous hex: 40010001 or 0x40010001
//   - spaced bytes: 40 01 00 01 or 0x40 0x01 0x00 0x01
//   - decimal list: 64,1,0,1 or [64, 1, 0, 1]
//
// Length is not checked here; the codec reports short or long buffers.
func ParseInput(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidInput)
	}
	if strings.HasPrefix(s, "[") || strings.Contains(s, ",") {
		return parseList(strings.Trim(s, "[]"))
	}
	fields := strings.Fields(s)
	if len(fields) > 1 {
		out := make([]byte, 0, len(fields))
		for _, f := range fields {
			b, err := parseHexByte(f)
			if err != nil {
				return nil, err
			}
			out = append(out, b)
		}
		return out, nil
	}
	raw := trimHexPrefix(s)
	out, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidInput, s, err)
	}
	return out, nil
}

func parseList(s string) ([]byte, error) {
	parts := strings.Split(s, ",")
	out := make([]byte, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("%w: empty list element", ErrInvalidInput)
		}
		// base 0 accepts 0x.. hex and plain decimal
		v, err := strconv.ParseUint(p, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: list element %q", ErrInvalidInput, p)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

func parseHexByte(s string) (byte, error) {
	v, err := strconv.ParseUint(trimHexPrefix(s), 16, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: byte %q", ErrInvalidInput, s)
	}
	return byte(v), nil
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}
