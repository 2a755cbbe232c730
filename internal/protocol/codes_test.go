package protocol

import (
	"fmt"
	"testing"

	"github.com/danmuck/coaphdr/internal/testutil/testlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detailSet(ranges ...[2]int) map[uint8]bool {
	out := make(map[uint8]bool)
	for _, r := range ranges {
		for d := r[0]; d <= r[1]; d++ {
			out[uint8(d)] = true
		}
	}
	return out
}

func TestParseCodeDetailTables(t *testing.T) {
	testlog.Start(t)
	tests := []struct {
		class Class
		named map[uint8]bool
		other map[uint8]bool
	}{
		{ClassMethod, detailSet([2]int{0, 2}), detailSet([2]int{3, 7})},
		{ClassSuccess, detailSet([2]int{0, 1}), detailSet([2]int{2, 5}, [2]int{31, 31})},
		{ClassClientError, detailSet([2]int{0, 1}), detailSet([2]int{2, 9}, [2]int{12, 13}, [2]int{15, 15})},
		{ClassServerError, detailSet([2]int{0, 1}), detailSet([2]int{2, 5})},
		{ClassSignaling, detailSet([2]int{0, 1}), detailSet([2]int{2, 5})},
	}

	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			for d := 0; d <= 0xFF; d++ {
				detail := uint8(d)
				code, err := ParseCode(tt.class, detail)
				switch {
				case tt.named[detail]:
					require.NoError(t, err, "detail=%d", d)
					assert.False(t, code.IsOther(), "detail=%d", d)
				case tt.other[detail]:
					require.NoError(t, err, "detail=%d", d)
					assert.True(t, code.IsOther(), "detail=%d", d)
					assert.Equal(t, fmt.Sprintf("Other(%d)", d), code.Variant())
				default:
					assert.ErrorIs(t, err, ErrDetailOutOfRange, "detail=%d", d)
					assert.Nil(t, code)
					continue
				}
				assert.Equal(t, tt.class, code.Class())
				assert.Equal(t, detail, code.Detail())
			}
		})
	}
}

func TestParseCodeConcreteTypes(t *testing.T) {
	testlog.Start(t)
	tests := []struct {
		class  Class
		detail uint8
		want   Code
		text   string
	}{
		{ClassMethod, 0, MethodEmpty, "Method Empty"},
		{ClassMethod, 1, MethodGet, "Method Get"},
		{ClassMethod, 2, MethodPost, "Method Post"},
		{ClassMethod, 7, Method(7), "Method Other(7)"},
		{ClassSuccess, 0, SuccessCreated, "Success Created"},
		{ClassSuccess, 1, SuccessDeleted, "Success Deleted"},
		{ClassClientError, 0, ClientErrorBadRequest, "ClientError BadRequest"},
		{ClassClientError, 1, ClientErrorUnauthorized, "ClientError Unauthorized"},
		{ClassClientError, 13, ClientError(13), "ClientError Other(13)"},
		{ClassServerError, 0, ServerErrorInternal, "ServerError Internal"},
		{ClassServerError, 1, ServerErrorNotImplemented, "ServerError NotImplemented"},
		{ClassSignaling, 0, SignalingUnassigned, "Signaling Unassigned"},
		{ClassSignaling, 1, SignalingCSM, "Signaling CSM"},
		{ClassSignaling, 5, Signaling(5), "Signaling Other(5)"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseCode(tt.class, tt.detail)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, got.String())
		})
	}
}

func TestParseCodeInvalidClass(t *testing.T) {
	testlog.Start(t)
	for _, class := range []Class{1, 3, 6} {
		assert.False(t, class.Valid())
		_, err := ParseCode(class, 0)
		assert.ErrorIs(t, err, ErrInvalidClass)
		assert.EqualError(t, err, fmt.Sprintf("protocol: invalid code class=%d detail=0: invalid code class", class))
	}
	assert.Equal(t, "Class(3)", Class(3).String())
}

func TestCodeByteRoundTrip(t *testing.T) {
	testlog.Start(t)
	codes := AllCodes()
	require.Len(t, codes, 40)
	for _, code := range codes {
		b := EncodeCode(code)
		back, err := CodeFromByte(b)
		require.NoError(t, err, "code=%s", code)
		assert.Equal(t, code, back)
	}
}

func TestCodeFromByteMatchesParseCode(t *testing.T) {
	testlog.Start(t)
	for b := 0; b <= 0xFF; b++ {
		fromByte, byteErr := CodeFromByte(byte(b))
		parsed, parseErr := ParseCode(Class(b>>5), uint8(b&0x1F))
		assert.Equal(t, parseErr == nil, byteErr == nil, "byte=%#x", b)
		assert.Equal(t, parsed, fromByte)
		if byteErr == nil {
			assert.Equal(t, byte(b), EncodeCode(fromByte))
		}
	}
}

func TestNewOtherConstructors(t *testing.T) {
	testlog.Start(t)

	m, err := NewMethodOther(5)
	require.NoError(t, err)
	assert.True(t, m.IsOther())

	_, err = NewMethodOther(1)
	assert.ErrorIs(t, err, ErrNamedDetail)
	_, err = NewMethodOther(8)
	assert.ErrorIs(t, err, ErrDetailOutOfRange)

	s, err := NewSuccessOther(31)
	require.NoError(t, err)
	assert.Equal(t, "Success Other(31)", s.String())
	_, err = NewSuccessOther(6)
	assert.ErrorIs(t, err, ErrDetailOutOfRange)

	ce, err := NewClientErrorOther(12)
	require.NoError(t, err)
	assert.Equal(t, uint8(12), ce.Detail())
	_, err = NewClientErrorOther(14)
	assert.ErrorIs(t, err, ErrDetailOutOfRange)
	_, err = NewClientErrorOther(0)
	assert.ErrorIs(t, err, ErrNamedDetail)

	_, err = NewServerErrorOther(2)
	assert.NoError(t, err)
	_, err = NewServerErrorOther(6)
	assert.ErrorIs(t, err, ErrDetailOutOfRange)

	_, err = NewSignalingOther(5)
	assert.NoError(t, err)
	_, err = NewSignalingOther(1)
	assert.ErrorIs(t, err, ErrNamedDetail)
}

func TestDottedNotation(t *testing.T) {
	testlog.Start(t)
	assert.Equal(t, "0.01", FormatDotted(MethodGet))
	assert.Equal(t, "2.31", FormatDotted(Success(31)))
	assert.Equal(t, "4.15", FormatDotted(ClientError(15)))

	for _, code := range AllCodes() {
		back, err := ParseDotted(FormatDotted(code))
		require.NoError(t, err)
		assert.Equal(t, code, back)
	}

	got, err := ParseDotted(" 2.5 ")
	require.NoError(t, err)
	assert.Equal(t, Code(Success(5)), got)

	for _, bad := range []string{"", "2", "2.", ".5", "x.01", "8.00", "2.32", "2.-1"} {
		_, err := ParseDotted(bad)
		assert.ErrorIs(t, err, ErrInvalidDotted, "input=%q", bad)
	}

	_, err = ParseDotted("2.06")
	assert.ErrorIs(t, err, ErrDetailOutOfRange)
	_, err = ParseDotted("3.00")
	assert.ErrorIs(t, err, ErrInvalidClass)
}

func TestLookupCode(t *testing.T) {
	testlog.Start(t)
	tests := map[string]Code{
		"get":                       MethodGet,
		"POST":                      MethodPost,
		"Method Empty":              MethodEmpty,
		"created":                   SuccessCreated,
		"bad-request":               ClientErrorBadRequest,
		"client_error_unauthorized": ClientErrorUnauthorized,
		"not implemented":           ServerErrorNotImplemented,
		"csm":                       SignalingCSM,
		"signaling unassigned":      SignalingUnassigned,
	}
	for name, want := range tests {
		got, ok := LookupCode(name)
		require.True(t, ok, "name=%q", name)
		assert.Equal(t, want, got)
	}

	_, ok := LookupCode("teapot")
	assert.False(t, ok)
}
