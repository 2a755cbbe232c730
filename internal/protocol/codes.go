package protocol

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Class is the 3-bit code class. It selects which detail type applies.
type Class uint8

const (
	ClassMethod      Class = 0
	ClassSuccess     Class = 2
	ClassClientError Class = 4
	ClassServerError Class = 5
	ClassSignaling   Class = 7
)

// Classes lists the valid classes in wire order.
var Classes = []Class{ClassMethod, ClassSuccess, ClassClientError, ClassServerError, ClassSignaling}

// detailRange describes the valid detail values of one class. Named
// details are contiguous from zero.
type detailRange struct {
	name    string
	named   []string
	ceiling uint8
	extra   []uint8
}

var detailRanges = map[Class]detailRange{
	ClassMethod:      {name: "Method", named: []string{"Empty", "Get", "Post"}, ceiling: 7},
	ClassSuccess:     {name: "Success", named: []string{"Created", "Deleted"}, ceiling: 5, extra: []uint8{31}},
	ClassClientError: {name: "ClientError", named: []string{"BadRequest", "Unauthorized"}, ceiling: 9, extra: []uint8{12, 13, 15}},
	ClassServerError: {name: "ServerError", named: []string{"Internal", "NotImplemented"}, ceiling: 5},
	ClassSignaling:   {name: "Signaling", named: []string{"Unassigned", "CSM"}, ceiling: 5},
}

func (r detailRange) allows(detail uint8) bool {
	return detail <= r.ceiling || slices.Contains(r.extra, detail)
}

func (r detailRange) variant(detail uint8) string {
	if int(detail) < len(r.named) {
		return r.named[detail]
	}
	return "Other(" + strconv.Itoa(int(detail)) + ")"
}

// details returns every valid detail of the class in ascending order.
func (r detailRange) details() []uint8 {
	out := make([]uint8, 0, int(r.ceiling)+1+len(r.extra))
	for d := 0; d <= int(r.ceiling); d++ {
		out = append(out, uint8(d))
	}
	return append(out, r.extra...)
}

func (c Class) String() string {
	if r, ok := detailRanges[c]; ok {
		return r.name
	}
	return "Class(" + strconv.Itoa(int(c)) + ")"
}

// Valid reports whether c is one of the five code classes.
func (c Class) Valid() bool {
	_, ok := detailRanges[c]
	return ok
}

// Code is a decoded request/response code. The concrete type is the
// class tag: Method, Success, ClientError, ServerError or Signaling.
type Code interface {
	Class() Class
	Detail() uint8
	// Variant is the bare variant name, e.g. "Get" or "Other(31)".
	Variant() string
	IsOther() bool
	String() string
}

func checkDetail(class Class, detail uint8) error {
	if !detailRanges[class].allows(detail) {
		return &InvalidCodeError{Class: uint8(class), Detail: detail, Reason: ErrDetailOutOfRange}
	}
	return nil
}

func checkOther(class Class, detail uint8) error {
	r := detailRanges[class]
	if int(detail) < len(r.named) {
		return fmt.Errorf("%w: %s %s", ErrNamedDetail, r.name, r.named[detail])
	}
	return checkDetail(class, detail)
}

func isOther(class Class, detail uint8) bool {
	return int(detail) >= len(detailRanges[class].named)
}

func codeString(c Code) string {
	return c.Class().String() + " " + c.Variant()
}

// Method codes (class 0).
type Method uint8

const (
	MethodEmpty Method = 0
	MethodGet   Method = 1
	MethodPost  Method = 2
)

func (m Method) Class() Class    { return ClassMethod }
func (m Method) Detail() uint8   { return uint8(m) }
func (m Method) IsOther() bool   { return isOther(ClassMethod, uint8(m)) }
func (m Method) Variant() string { return detailRanges[ClassMethod].variant(uint8(m)) }
func (m Method) String() string  { return codeString(m) }

func ParseMethod(detail uint8) (Method, error) {
	if err := checkDetail(ClassMethod, detail); err != nil {
		return 0, err
	}
	return Method(detail), nil
}

// NewMethodOther returns the unnamed method detail v.
func NewMethodOther(v uint8) (Method, error) {
	if err := checkOther(ClassMethod, v); err != nil {
		return 0, err
	}
	return Method(v), nil
}

// Success codes (class 2).
type Success uint8

const (
	SuccessCreated Success = 0
	SuccessDeleted Success = 1
)

func (s Success) Class() Class    { return ClassSuccess }
func (s Success) Detail() uint8   { return uint8(s) }
func (s Success) IsOther() bool   { return isOther(ClassSuccess, uint8(s)) }
func (s Success) Variant() string { return detailRanges[ClassSuccess].variant(uint8(s)) }
func (s Success) String() string  { return codeString(s) }

func ParseSuccess(detail uint8) (Success, error) {
	if err := checkDetail(ClassSuccess, detail); err != nil {
		return 0, err
	}
	return Success(detail), nil
}

func NewSuccessOther(v uint8) (Success, error) {
	if err := checkOther(ClassSuccess, v); err != nil {
		return 0, err
	}
	return Success(v), nil
}

// ClientError codes (class 4).
type ClientError uint8

const (
	ClientErrorBadRequest   ClientError = 0
	ClientErrorUnauthorized ClientError = 1
)

func (e ClientError) Class() Class    { return ClassClientError }
func (e ClientError) Detail() uint8   { return uint8(e) }
func (e ClientError) IsOther() bool   { return isOther(ClassClientError, uint8(e)) }
func (e ClientError) Variant() string { return detailRanges[ClassClientError].variant(uint8(e)) }
func (e ClientError) String() string  { return codeString(e) }

func ParseClientError(detail uint8) (ClientError, error) {
	if err := checkDetail(ClassClientError, detail); err != nil {
		return 0, err
	}
	return ClientError(detail), nil
}

func NewClientErrorOther(v uint8) (ClientError, error) {
	if err := checkOther(ClassClientError, v); err != nil {
		return 0, err
	}
	return ClientError(v), nil
}

// ServerError codes (class 5).
type ServerError uint8

const (
	ServerErrorInternal       ServerError = 0
	ServerErrorNotImplemented ServerError = 1
)

func (e ServerError) Class() Class    { return ClassServerError }
func (e ServerError) Detail() uint8   { return uint8(e) }
func (e ServerError) IsOther() bool   { return isOther(ClassServerError, uint8(e)) }
func (e ServerError) Variant() string { return detailRanges[ClassServerError].variant(uint8(e)) }
func (e ServerError) String() string  { return codeString(e) }

func ParseServerError(detail uint8) (ServerError, error) {
	if err := checkDetail(ClassServerError, detail); err != nil {
		return 0, err
	}
	return ServerError(detail), nil
}

func NewServerErrorOther(v uint8) (ServerError, error) {
	if err := checkOther(ClassServerError, v); err != nil {
		return 0, err
	}
	return ServerError(v), nil
}

// Signaling codes (class 7).
type Signaling uint8

const (
	SignalingUnassigned Signaling = 0
	SignalingCSM        Signaling = 1
)

func (s Signaling) Class() Class    { return ClassSignaling }
func (s Signaling) Detail() uint8   { return uint8(s) }
func (s Signaling) IsOther() bool   { return isOther(ClassSignaling, uint8(s)) }
func (s Signaling) Variant() string { return detailRanges[ClassSignaling].variant(uint8(s)) }
func (s Signaling) String() string  { return codeString(s) }

func ParseSignaling(detail uint8) (Signaling, error) {
	if err := checkDetail(ClassSignaling, detail); err != nil {
		return 0, err
	}
	return Signaling(detail), nil
}

func NewSignalingOther(v uint8) (Signaling, error) {
	if err := checkOther(ClassSignaling, v); err != nil {
		return 0, err
	}
	return Signaling(v), nil
}

// ParseCode validates a raw class/detail pair and returns the typed code.
func ParseCode(class Class, detail uint8) (Code, error) {
	var (
		code Code
		err  error
	)
	switch class {
	case ClassMethod:
		code, err = ParseMethod(detail)
	case ClassSuccess:
		code, err = ParseSuccess(detail)
	case ClassClientError:
		code, err = ParseClientError(detail)
	case ClassServerError:
		code, err = ParseServerError(detail)
	case ClassSignaling:
		code, err = ParseSignaling(detail)
	default:
		return nil, &InvalidCodeError{Class: uint8(class), Detail: detail, Reason: ErrInvalidClass}
	}
	if err != nil {
		return nil, err
	}
	return code, nil
}

// CodeFromByte splits a wire code byte into class and detail and parses it.
func CodeFromByte(b byte) (Code, error) {
	return ParseCode(Class((b>>classShift)&classMask), b&detailMask)
}

// EncodeCode packs c into its wire byte. Range is not re-checked.
func EncodeCode(c Code) byte {
	return (uint8(c.Class())&classMask)<<classShift | c.Detail()&detailMask
}

// AllCodes returns every valid code, ordered by class then detail.
func AllCodes() []Code {
	out := make([]Code, 0, 48)
	for _, class := range Classes {
		for _, d := range detailRanges[class].details() {
			code, err := ParseCode(class, d)
			if err != nil {
				panic(err)
			}
			out = append(out, code)
		}
	}
	return out
}

// FormatDotted renders c in "c.dd" notation, e.g. "2.05".
func FormatDotted(c Code) string {
	return fmt.Sprintf("%d.%02d", uint8(c.Class()), c.Detail())
}

// ParseDotted parses "c.dd" notation and validates the result.
func ParseDotted(s string) (Code, error) {
	classPart, detailPart, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok || classPart == "" || detailPart == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDotted, s)
	}
	class, err := strconv.ParseUint(classPart, 10, 8)
	if err != nil || uint8(class) > classMask {
		return nil, fmt.Errorf("%w: class %q", ErrInvalidDotted, classPart)
	}
	detail, err := strconv.ParseUint(detailPart, 10, 8)
	if err != nil || uint8(detail) > detailMask {
		return nil, fmt.Errorf("%w: detail %q", ErrInvalidDotted, detailPart)
	}
	return ParseCode(Class(class), uint8(detail))
}

// LookupCode resolves a named variant, e.g. "get", "Method Get",
// "bad-request" or "csm". Matching ignores case, spaces, '-' and '_'.
func LookupCode(name string) (Code, bool) {
	key := normalizeName(name)
	for _, class := range Classes {
		r := detailRanges[class]
		for d, variant := range r.named {
			v := normalizeName(variant)
			if key == v || key == normalizeName(r.name)+v {
				code, err := ParseCode(class, uint8(d))
				if err != nil {
					return nil, false
				}
				return code, true
			}
		}
	}
	return nil, false
}

func normalizeName(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '\t':
			return -1
		}
		return r
	}, s)
}
