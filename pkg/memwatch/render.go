package memwatch

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unsafe"
)

// valueColumnWidth is the room the panel leaves for a value. The widest
// values are a Float64 (" -1.234567890123456e+308") and an 8-byte raw
// pointer dump, both 24 characters with their leading space.
const valueColumnWidth = 24

// Renderer turns a watched slot into its two display columns.
type Renderer struct {
	order    binary.ByteOrder
	ptrWidth int
}

// NewRenderer builds a renderer for a host with the given byte order and
// pointer width. Most callers want NewHostRenderer.
func NewRenderer(order binary.ByteOrder, ptrWidth int) *Renderer {
	return &Renderer{order: order, ptrWidth: ptrWidth}
}

// NewHostRenderer builds a renderer for the running process, probing the
// byte order at call time.
func NewHostRenderer() *Renderer {
	return NewRenderer(ProbeByteOrder(), hostPointerWidth)
}

// AddressColumnWidth is the width of the address column including the
// type label: "0x" + 2 hex digits per pointer byte + label.
func (r *Renderer) AddressColumnWidth() int {
	return 2 + 2*r.ptrWidth + labelWidth
}

// Render formats a non-empty slot. The caller guarantees the address is
// readable for the tag's width; calling Render on an empty slot returns
// two empty strings.
func (r *Renderer) Render(s Slot) (addressColumn, valueColumn string) {
	if s.Empty() {
		return "", ""
	}
	addressColumn = r.FormatAddress(uintptr(s.Address), s.Type)
	width := s.Type.widthFor(r.ptrWidth)
	if width == 0 {
		return addressColumn, ""
	}
	raw := make([]byte, width)
	copy(raw, unsafe.Slice((*byte)(s.Address), width))
	return addressColumn, r.FormatValue(raw, s.Type)
}

// FormatAddress renders addr as a zero-padded upper-case hex literal
// followed by the tag's label, e.g. "0x000000C00001A0F0<I32>:".
func (r *Renderer) FormatAddress(addr uintptr, tag TypeTag) string {
	return fmt.Sprintf("0x%0*X%s", 2*r.ptrWidth, uint64(addr), tag.Label())
}

// FormatValue decodes raw, laid out in the renderer's byte order, as tag.
// raw must hold at least the tag's width in bytes; shorter input renders
// as an empty string.
func (r *Renderer) FormatValue(raw []byte, tag TypeTag) string {
	width := tag.widthFor(r.ptrWidth)
	if width == 0 || len(raw) < width {
		return ""
	}
	raw = raw[:width]

	switch tag {
	case Char:
		return formatChar(raw[0])
	case Int8:
		return strconv.FormatInt(int64(int8(raw[0])), 10)
	case Int16:
		return strconv.FormatInt(int64(int16(r.order.Uint16(raw))), 10)
	case Int32:
		return strconv.FormatInt(int64(int32(r.order.Uint32(raw))), 10)
	case Int64:
		return strconv.FormatInt(int64(r.order.Uint64(raw)), 10)
	case UInt8:
		return strconv.FormatUint(uint64(raw[0]), 10)
	case UInt16:
		return strconv.FormatUint(uint64(r.order.Uint16(raw)), 10)
	case UInt32:
		return strconv.FormatUint(uint64(r.order.Uint32(raw)), 10)
	case UInt64:
		return strconv.FormatUint(r.order.Uint64(raw), 10)
	case Float32:
		return fmt.Sprintf("%.7e", float64(math.Float32frombits(r.order.Uint32(raw))))
	case Float64:
		return fmt.Sprintf("%.15e", math.Float64frombits(r.order.Uint64(raw)))
	case RawPointer:
		return r.formatPointerBytes(raw)
	}
	return ""
}

// formatPointerBytes prints the pointer's bytes most significant first,
// whatever order the host stored them in.
func (r *Renderer) formatPointerBytes(raw []byte) string {
	canonical := make([]byte, len(raw))
	if r.order == binary.LittleEndian {
		for i := range raw {
			canonical[i] = raw[len(raw)-1-i]
		}
	} else {
		copy(canonical, raw)
	}

	parts := make([]string, len(canonical))
	for i, b := range canonical {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

// formatChar shows printable ASCII as itself and everything else as '.'.
func formatChar(b byte) string {
	if b >= 0x20 && b < 0x7F {
		return string(rune(b))
	}
	return "."
}
