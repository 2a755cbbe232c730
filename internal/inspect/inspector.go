package inspect

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/coaphdr/internal/observability"
	"github.com/danmuck/coaphdr/internal/protocol"
	"github.com/rs/zerolog"
)

// Result is the outcome of decoding one input.
type Result struct {
	Input  string
	Raw    []byte
	Header protocol.Header
	Err    error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Inspector decodes operator input, logging and counting each outcome.
type Inspector struct {
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// New returns an Inspector. metrics may be nil.
func New(logger zerolog.Logger, metrics *observability.Metrics) *Inspector {
	return &Inspector{logger: logger, metrics: metrics}
}

// Inspect parses and decodes a single textual input.
func (i *Inspector) Inspect(input string) Result {
	raw, err := ParseInput(input)
	if err != nil {
		return i.fail(Result{Input: input, Err: err})
	}
	return i.InspectBytes(input, raw)
}

// InspectBytes decodes raw, labelling the result with input.
func (i *Inspector) InspectBytes(input string, raw []byte) Result {
	res := Result{Input: input, Raw: append([]byte(nil), raw...)}
	h, err := protocol.ParseHeader(raw)
	if err != nil {
		res.Err = err
		return i.fail(res)
	}
	res.Header = h
	i.metrics.RecordHeader(h.Type.String(), h.Code.Class().String())
	i.logger.Debug().
		Str("input", input).
		Uint8("version", h.Version).
		Str("type", h.Type.String()).
		Uint8("token_length", h.TokenLength).
		Str("code", h.Code.String()).
		Uint16("message_id", h.MessageID).
		Msg("header decoded")
	return res
}

// InspectLines decodes one input per line from r. Blank lines and lines
// starting with '#' are skipped. fn returning false stops the scan.
func (i *Inspector) InspectLines(r io.Reader, fn func(Result) bool) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !fn(i.Inspect(line)) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("inspect: read lines: %w", err)
	}
	return nil
}

// InspectStream decodes back-to-back binary headers from r until EOF.
// A trailing partial header is reported as a failed result.
func (i *Inspector) InspectStream(r io.Reader, fn func(Result) bool) error {
	var buf [protocol.HeaderSize]byte
	for offset := 0; ; offset += protocol.HeaderSize {
		n, err := io.ReadFull(r, buf[:])
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, io.ErrUnexpectedEOF):
			label := fmt.Sprintf("@%d", offset)
			fn(i.fail(Result{Input: label, Raw: append([]byte(nil), buf[:n]...), Err: protocol.ErrShortHeader}))
			return nil
		case err != nil:
			return fmt.Errorf("inspect: read stream: %w", err)
		}
		label := fmt.Sprintf("@%d", offset)
		if !fn(i.InspectBytes(label, buf[:])) {
			return nil
		}
	}
}

func (i *Inspector) fail(res Result) Result {
	reason := Reason(res.Err)
	i.metrics.RecordError(reason)
	i.logger.Warn().
		Str("input", res.Input).
		Str("raw", hex.EncodeToString(res.Raw)).
		Str("reason", reason).
		Err(res.Err).
		Msg("header rejected")
	return res
}

// Reason maps a decode error onto a stable metric label.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, protocol.ErrShortHeader):
		return "short_header"
	case errors.Is(err, protocol.ErrLongHeader):
		return "long_header"
	case errors.Is(err, protocol.ErrInvalidMessageType):
		return "invalid_message_type"
	case errors.Is(err, protocol.ErrInvalidClass):
		return "invalid_class"
	case errors.Is(err, protocol.ErrDetailOutOfRange):
		return "detail_out_of_range"
	default:
		return "other"
	}
}
