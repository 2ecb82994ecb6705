package memwatch

import (
	"fmt"
	"strings"
	"unsafe"
)

// TypeTag tells the renderer how to reinterpret the bytes at a watched
// address. The set is closed: only the constants below are valid.
type TypeTag uint8

const (
	Char TypeTag = iota
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float32
	Float64
	RawPointer
)

// typeKind groups tags by rendering rule.
type typeKind uint8

const (
	kindChar typeKind = iota
	kindSigned
	kindUnsigned
	kindFloat
	kindPointer
)

func (k typeKind) String() string {
	switch k {
	case kindChar:
		return "char"
	case kindSigned:
		return "signed"
	case kindUnsigned:
		return "unsigned"
	case kindFloat:
		return "float"
	case kindPointer:
		return "pointer"
	default:
		return "unknown"
	}
}

type typeInfo struct {
	name  string
	label string
	width int // bytes; 0 means host pointer width
	kind  typeKind
}

var registry = [...]typeInfo{
	Char:       {"Char", "<CHR>:", 1, kindChar},
	Int8:       {"Int8", "<I08>:", 1, kindSigned},
	Int16:      {"Int16", "<I16>:", 2, kindSigned},
	Int32:      {"Int32", "<I32>:", 4, kindSigned},
	Int64:      {"Int64", "<I64>:", 8, kindSigned},
	UInt8:      {"UInt8", "<U08>:", 1, kindUnsigned},
	UInt16:     {"UInt16", "<U16>:", 2, kindUnsigned},
	UInt32:     {"UInt32", "<U32>:", 4, kindUnsigned},
	UInt64:     {"UInt64", "<U64>:", 8, kindUnsigned},
	Float32:    {"Float32", "<F32>:", 4, kindFloat},
	Float64:    {"Float64", "<F64>:", 8, kindFloat},
	RawPointer: {"RawPointer", "<ADR>:", 0, kindPointer},
}

// labelWidth is the length of every bracketed label, e.g. "<I32>:".
const labelWidth = 6

// hostPointerWidth is the byte width of a pointer on this host.
var hostPointerWidth = int(unsafe.Sizeof(uintptr(0)))

// HostPointerWidth returns the byte width of a pointer in this process.
func HostPointerWidth() int {
	return hostPointerWidth
}

// AllTypeTags returns every valid tag in declaration order.
func AllTypeTags() []TypeTag {
	tags := make([]TypeTag, len(registry))
	for i := range registry {
		tags[i] = TypeTag(i)
	}
	return tags
}

// Valid reports whether t is one of the defined tags.
func (t TypeTag) Valid() bool {
	return int(t) < len(registry)
}

// String returns the Go-style name of the tag ("Int32").
func (t TypeTag) String() string {
	if !t.Valid() {
		return fmt.Sprintf("TypeTag(%d)", uint8(t))
	}
	return registry[t].name
}

// Label returns the bracketed display label shown after the address,
// e.g. "<I32>:".
func (t TypeTag) Label() string {
	if !t.Valid() {
		return "<???>:"
	}
	return registry[t].label
}

// Width returns the number of bytes read from a watched address.
// RawPointer reads the host pointer width.
func (t TypeTag) Width() int {
	return t.widthFor(hostPointerWidth)
}

func (t TypeTag) widthFor(ptrWidth int) int {
	if !t.Valid() {
		return 0
	}
	if w := registry[t].width; w != 0 {
		return w
	}
	return ptrWidth
}

// Kind returns the rendering family of the tag: char, signed, unsigned,
// float or pointer.
func (t TypeTag) Kind() string {
	if !t.Valid() {
		return "unknown"
	}
	return registry[t].kind.String()
}

func (t TypeTag) IsIntegerLike() bool {
	if !t.Valid() {
		return false
	}
	k := registry[t].kind
	return k == kindSigned || k == kindUnsigned
}

func (t TypeTag) IsSigned() bool {
	return t.Valid() && registry[t].kind == kindSigned
}

func (t TypeTag) IsFloat() bool {
	return t.Valid() && registry[t].kind == kindFloat
}

// ParseTypeTag resolves a tag from its Go name ("int32"), its bare label
// ("I32") or its full label ("<I32>:"). Matching is case-insensitive.
func ParseTypeTag(s string) (TypeTag, error) {
	needle := strings.ToUpper(strings.TrimSpace(s))
	for i, info := range registry {
		bare := strings.Trim(info.label, "<>:")
		if needle == strings.ToUpper(info.name) || needle == bare || needle == info.label {
			return TypeTag(i), nil
		}
	}
	return 0, fmt.Errorf("unknown type tag %q", s)
}

// TagOf infers the TypeTag for a typed Go pointer and returns it with the
// untyped address. ok is false for nil pointers and unsupported types.
// A *byte is watched as UInt8; use Char explicitly for characters.
func TagOf(ptr any) (addr unsafe.Pointer, tag TypeTag, ok bool) {
	switch p := ptr.(type) {
	case *int8:
		return ptrOrNil(p), Int8, p != nil
	case *int16:
		return ptrOrNil(p), Int16, p != nil
	case *int32:
		return ptrOrNil(p), Int32, p != nil
	case *int64:
		return ptrOrNil(p), Int64, p != nil
	case *uint8:
		return ptrOrNil(p), UInt8, p != nil
	case *uint16:
		return ptrOrNil(p), UInt16, p != nil
	case *uint32:
		return ptrOrNil(p), UInt32, p != nil
	case *uint64:
		return ptrOrNil(p), UInt64, p != nil
	case *float32:
		return ptrOrNil(p), Float32, p != nil
	case *float64:
		return ptrOrNil(p), Float64, p != nil
	case *int:
		return ptrOrNil(p), intTag(int(unsafe.Sizeof(int(0))), true), p != nil
	case *uint:
		return ptrOrNil(p), intTag(int(unsafe.Sizeof(uint(0))), false), p != nil
	case *uintptr:
		return ptrOrNil(p), RawPointer, p != nil
	case *unsafe.Pointer:
		return ptrOrNil(p), RawPointer, p != nil
	}
	return nil, 0, false
}

func ptrOrNil[T any](p *T) unsafe.Pointer {
	if p == nil {
		return nil
	}
	return unsafe.Pointer(p)
}

// intTag picks the sized integer tag matching Go's int/uint on this host.
func intTag(width int, signed bool) TypeTag {
	switch {
	case width == 4 && signed:
		return Int32
	case width == 4:
		return UInt32
	case signed:
		return Int64
	default:
		return UInt64
	}
}
