package memwatch

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeByteOrderMatchesHost(t *testing.T) {
	order := ProbeByteOrder()

	// Cross-check the probe by storing a value and looking at its bytes.
	v := uint16(0x0102)
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&v)), 2)
	assert.Equal(t, v, order.Uint16(raw))
}

func TestRenderUint32Max(t *testing.T) {
	r := NewHostRenderer()
	v := uint32(4294967295)
	_, value := r.Render(Slot{Address: unsafe.Pointer(&v), Type: UInt32})
	assert.Equal(t, "4294967295", value)
}

func TestRenderScalars(t *testing.T) {
	r := NewHostRenderer()

	var (
		c   = byte('A')
		i8  = int8(-5)
		i16 = int16(-32768)
		i32 = int32(-2147483648)
		i64 = int64(math.MinInt64)
		u8  = uint8(255)
		u16 = uint16(65535)
		u64 = uint64(math.MaxUint64)
		f32 = float32(3.14)
		f64 = 3.14
	)

	cases := []struct {
		addr unsafe.Pointer
		tag  TypeTag
		want string
	}{
		{unsafe.Pointer(&c), Char, "A"},
		{unsafe.Pointer(&i8), Int8, "-5"},
		{unsafe.Pointer(&i16), Int16, "-32768"},
		{unsafe.Pointer(&i32), Int32, "-2147483648"},
		{unsafe.Pointer(&i64), Int64, "-9223372036854775808"},
		{unsafe.Pointer(&u8), UInt8, "255"},
		{unsafe.Pointer(&u16), UInt16, "65535"},
		{unsafe.Pointer(&u64), UInt64, "18446744073709551615"},
		{unsafe.Pointer(&f32), Float32, "3.1400001e+00"},
		{unsafe.Pointer(&f64), Float64, "3.140000000000000e+00"},
	}
	for _, tc := range cases {
		_, value := r.Render(Slot{Address: tc.addr, Type: tc.tag})
		assert.Equal(t, tc.want, value, tc.tag.String())
	}
}

func TestRenderFloat32MatchesPrintf(t *testing.T) {
	r := NewHostRenderer()
	f := float32(3.14)
	_, value := r.Render(Slot{Address: unsafe.Pointer(&f), Type: Float32})
	assert.Equal(t, fmt.Sprintf("%.7e", float64(f)), value)
}

func TestRenderCharNonPrintable(t *testing.T) {
	r := NewHostRenderer()
	for _, b := range []byte{0x00, '\n', 0x1b, 0x7f, 0xff} {
		assert.Equal(t, ".", r.FormatValue([]byte{b}, Char), "byte %#x", b)
	}
	assert.Equal(t, " ", r.FormatValue([]byte{' '}, Char))
	assert.Equal(t, "~", r.FormatValue([]byte{'~'}, Char))
}

func TestRenderReadsOnlyDeclaredWidth(t *testing.T) {
	r := NewHostRenderer()
	// Only the first byte belongs to the Int8; the rest must not leak in.
	buf := [4]byte{0x7f, 0xff, 0xff, 0xff}
	_, value := r.Render(Slot{Address: unsafe.Pointer(&buf[0]), Type: Int8})
	assert.Equal(t, "127", value)
}

func TestRawPointerCanonicalOrder(t *testing.T) {
	want := "01 02 03 04 05 06 07 08"

	little := NewRenderer(binary.LittleEndian, 8)
	assert.Equal(t, want, little.FormatValue([]byte{8, 7, 6, 5, 4, 3, 2, 1}, RawPointer))

	big := NewRenderer(binary.BigEndian, 8)
	assert.Equal(t, want, big.FormatValue([]byte{1, 2, 3, 4, 5, 6, 7, 8}, RawPointer))

	narrow := NewRenderer(binary.LittleEndian, 4)
	assert.Equal(t, "DE AD BE EF", narrow.FormatValue([]byte{0xef, 0xbe, 0xad, 0xde}, RawPointer))
}

func TestRawPointerLiveMemory(t *testing.T) {
	if HostPointerWidth() != 8 {
		t.Skip("needs 8-byte pointers")
	}
	r := NewHostRenderer()
	v := uint64(0x0102030405060708)
	_, value := r.Render(Slot{Address: unsafe.Pointer(&v), Type: RawPointer})
	assert.Equal(t, "01 02 03 04 05 06 07 08", value)
}

func TestScalarsDecodeInRendererOrder(t *testing.T) {
	raw := []byte{0x00, 0x00, 0x01, 0x00}
	assert.Equal(t, "65536", NewRenderer(binary.LittleEndian, 8).FormatValue(raw, UInt32))
	assert.Equal(t, "256", NewRenderer(binary.BigEndian, 8).FormatValue(raw, UInt32))

	bits := math.Float64bits(-1.5)
	be := make([]byte, 8)
	binary.BigEndian.PutUint64(be, bits)
	assert.Equal(t, "-1.500000000000000e+00", NewRenderer(binary.BigEndian, 8).FormatValue(be, Float64))
}

func TestFormatValueShortInput(t *testing.T) {
	r := NewRenderer(binary.LittleEndian, 8)
	assert.Equal(t, "", r.FormatValue([]byte{1, 2}, UInt32))
	assert.Equal(t, "", r.FormatValue(nil, Char))
	assert.Equal(t, "", r.FormatValue([]byte{1}, TypeTag(200)))
}

func TestAddressColumn(t *testing.T) {
	r64 := NewRenderer(binary.LittleEndian, 8)
	col := r64.FormatAddress(0xC000012345, Int32)
	assert.Equal(t, "0x000000C000012345<I32>:", col)
	assert.Len(t, col, r64.AddressColumnWidth())
	assert.Equal(t, 24, r64.AddressColumnWidth())

	r32 := NewRenderer(binary.LittleEndian, 4)
	col = r32.FormatAddress(0xBEEF, RawPointer)
	assert.Equal(t, "0x0000BEEF<ADR>:", col)
	assert.Len(t, col, r32.AddressColumnWidth())
}

func TestRenderAddressColumnOfLiveSlot(t *testing.T) {
	r := NewHostRenderer()
	// Heap allocated: a stack variable may move while Render runs.
	v := new(int16)
	slot := Slot{Address: unsafe.Pointer(v), Type: Int16}
	addr, _ := r.Render(slot)
	require.True(t, strings.HasPrefix(addr, "0x"))
	require.True(t, strings.HasSuffix(addr, "<I16>:"))
	assert.Equal(t, fmt.Sprintf("0x%0*X", 2*HostPointerWidth(), uintptr(slot.Address)), strings.TrimSuffix(addr, "<I16>:"))
}

func TestRenderEmptySlot(t *testing.T) {
	addr, value := NewHostRenderer().Render(Slot{})
	assert.Empty(t, addr)
	assert.Empty(t, value)
}

func TestValueColumnFitsPanel(t *testing.T) {
	r := NewRenderer(binary.LittleEndian, 8)
	widest := []string{
		r.FormatValue(le64(math.Float64bits(-math.MaxFloat64)), Float64),
		r.FormatValue(le64(math.MaxUint64), RawPointer),
		r.FormatValue(le64(uint64(math.MaxUint64)), UInt64),
	}
	for _, v := range widest {
		assert.LessOrEqual(t, len(" "+v), valueColumnWidth, v)
	}
}

func le64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}
