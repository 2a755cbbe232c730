package inspect

import (
	"encoding/hex"
	"strconv"

	"github.com/danmuck/coaphdr/internal/protocol"
)

// View is the serialisable form of a Result.
type View struct {
	Input       string  `json:"input" yaml:"input"`
	Hex         string  `json:"hex" yaml:"hex"`
	Version     *uint8  `json:"version,omitempty" yaml:"version,omitempty"`
	Type        string  `json:"type,omitempty" yaml:"type,omitempty"`
	TokenLength *uint8  `json:"token_length,omitempty" yaml:"token_length,omitempty"`
	Code        string  `json:"code,omitempty" yaml:"code,omitempty"`
	CodeDotted  string  `json:"code_dotted,omitempty" yaml:"code_dotted,omitempty"`
	MessageID   *uint16 `json:"message_id,omitempty" yaml:"message_id,omitempty"`
	Error       string  `json:"error,omitempty" yaml:"error,omitempty"`
}

func (r Result) View() View {
	v := View{Input: r.Input, Hex: hex.EncodeToString(r.Raw)}
	if r.Err != nil {
		v.Error = r.Err.Error()
		return v
	}
	h := r.Header
	v.Version = &h.Version
	v.Type = h.Type.String()
	v.TokenLength = &h.TokenLength
	v.Code = h.Code.String()
	v.CodeDotted = protocol.FormatDotted(h.Code)
	v.MessageID = &h.MessageID
	return v
}

// Report is an ordered set of results. It renders as a table.
type Report struct {
	Results []Result
}

func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
}

// Failed counts results that did not decode.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

func (r *Report) Views() []View {
	out := make([]View, 0, len(r.Results))
	for _, res := range r.Results {
		out = append(out, res.View())
	}
	return out
}

func (r *Report) Headers() []string {
	return []string{"Input", "Hex", "Ver", "Type", "TKL", "Code", "Dotted", "MID", "Error"}
}

func (r *Report) Rows() [][]string {
	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		raw := hex.EncodeToString(res.Raw)
		if !res.OK() {
			rows = append(rows, []string{res.Input, raw, "", "", "", "", "", "", res.Err.Error()})
			continue
		}
		h := res.Header
		rows = append(rows, []string{
			res.Input,
			raw,
			strconv.Itoa(int(h.Version)),
			h.Type.String(),
			strconv.Itoa(int(h.TokenLength)),
			h.Code.String(),
			protocol.FormatDotted(h.Code),
			strconv.Itoa(int(h.MessageID)),
			"",
		})
	}
	return rows
}
