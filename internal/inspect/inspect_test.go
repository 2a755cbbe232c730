package inspect

import (
	"bytes"
	"strings"
	"testing"

	"github.com/danmuck/coaphdr/internal/observability"
	"github.com/danmuck/coaphdr/internal/protocol"
	"github.com/danmuck/coaphdr/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInspector(t *testing.T) (*Inspector, *observability.Metrics, *bytes.Buffer) {
	t.Helper()
	testlog.Start(t)
	m, err := observability.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.DebugLevel)
	return New(logger, m), m, &logs
}

func TestParseInputForms(t *testing.T) {
	testlog.Start(t)
	want := []byte{0x40, 0x01, 0x00, 0x01}
	for _, in := range []string{
		"40010001",
		"0x40010001",
		"40 01 00 01",
		"0x40 0x01 0x00 0x01",
		"64,1,0,1",
		"[64, 1, 0, 1]",
		"  0x40, 1, 0, 0x01 ",
	} {
		got, err := ParseInput(in)
		require.NoError(t, err, "input=%q", in)
		assert.Equal(t, want, got, "input=%q", in)
	}
}

func TestParseInputRejectsGarbage(t *testing.T) {
	testlog.Start(t)
	for _, in := range []string{"", "zz", "400", "64,,1", "256,1,0,1", "40 0g"} {
		_, err := ParseInput(in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input=%q", in)
	}
}

func TestInspectDecodesAndCounts(t *testing.T) {
	insp, m, logs := newTestInspector(t)

	res := insp.Inspect("[96,95,0,1]")
	require.True(t, res.OK(), "err=%v", res.Err)
	assert.Equal(t, protocol.Acknowledgment, res.Header.Type)
	assert.Equal(t, protocol.Code(protocol.Success(31)), res.Header.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HeaderCounter("Acknowledgment", "Success")))
	assert.Contains(t, logs.String(), `"code":"Success Other(31)"`)
	assert.Contains(t, logs.String(), `"message":"header decoded"`)
}

func TestInspectFailureReasons(t *testing.T) {
	insp, m, logs := newTestInspector(t)

	tests := []struct {
		input  string
		reason string
	}{
		{"xyz", "invalid_input"},
		{"400100", "short_header"},
		{"4001000100", "long_header"},
		{"40200001", "invalid_class"},
		{"40080001", "detail_out_of_range"},
	}
	for _, tt := range tests {
		res := insp.Inspect(tt.input)
		require.False(t, res.OK(), "input=%q", tt.input)
		assert.Equal(t, tt.reason, Reason(res.Err), "input=%q", tt.input)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorCounter(tt.reason)), "reason=%s", tt.reason)
	}
	assert.Contains(t, logs.String(), `"message":"header rejected"`)
	assert.Equal(t, "", Reason(nil))
}

func TestInspectLinesSkipsCommentsAndStops(t *testing.T) {
	insp, _, _ := newTestInspector(t)
	input := strings.Join([]string{
		"# captured from sensor-7",
		"40010001",
		"",
		"64,2,0,2",
		"60200003",
		"40010004",
	}, "\n")

	var got []Result
	err := insp.InspectLines(strings.NewReader(input), func(res Result) bool {
		got = append(got, res)
		return res.OK()
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, protocol.Code(protocol.MethodPost), got[1].Header.Code)
	assert.ErrorIs(t, got[2].Err, protocol.ErrInvalidClass)
}

func TestInspectStream(t *testing.T) {
	insp, m, _ := newTestInspector(t)
	stream := []byte{64, 1, 0, 1, 96, 95, 0, 2, 0x40, 0x01}

	var report Report
	require.NoError(t, insp.InspectStream(bytes.NewReader(stream), func(res Result) bool {
		report.Add(res)
		return true
	}))
	require.Len(t, report.Results, 3)
	assert.Equal(t, "@0", report.Results[0].Input)
	assert.Equal(t, "@4", report.Results[1].Input)
	assert.Equal(t, uint16(2), report.Results[1].Header.MessageID)
	assert.Equal(t, "@8", report.Results[2].Input)
	assert.ErrorIs(t, report.Results[2].Err, protocol.ErrShortHeader)
	assert.Equal(t, []byte{0x40, 0x01}, report.Results[2].Raw)
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorCounter("short_header")))
}

func TestInspectWithoutMetrics(t *testing.T) {
	testlog.Start(t)
	insp := New(zerolog.Nop(), nil)
	assert.True(t, insp.Inspect("40010001").OK())
	assert.False(t, insp.Inspect("40").OK())
}

func TestReportRowsAndViews(t *testing.T) {
	insp, _, _ := newTestInspector(t)
	var report Report
	report.Add(insp.Inspect("40010001"))
	report.Add(insp.Inspect("40200001"))

	rows := report.Rows()
	require.Len(t, rows, 2)
	assert.Len(t, report.Headers(), len(rows[0]))
	assert.Equal(t, []string{"40010001", "40010001", "1", "Confirmable", "0", "Method Get", "0.01", "1", ""}, rows[0])
	assert.Equal(t, "40200001", rows[1][0])
	assert.NotEmpty(t, rows[1][8])

	views := report.Views()
	require.Len(t, views, 2)
	require.NotNil(t, views[0].MessageID)
	assert.Equal(t, uint16(1), *views[0].MessageID)
	assert.Equal(t, "0.01", views[0].CodeDotted)
	assert.Nil(t, views[1].Version)
	assert.Contains(t, views[1].Error, "invalid code class")
}
