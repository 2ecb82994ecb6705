package memwatch

import (
	"errors"
	"fmt"
	"iter"
	"unsafe"
)

// ErrInvalidCapacity is returned when a table is created with no rows.
var ErrInvalidCapacity = errors.New("memwatch: capacity must be positive")

// Slot is one row of the watch table. A nil Address marks the row as
// empty; Type is meaningless while the row is empty.
//
// The slot does not own the memory it points at. The host keeps the
// address valid and readable for as long as it is watched.
type Slot struct {
	Address unsafe.Pointer
	Type    TypeTag
}

// Empty reports whether the slot is not watching anything.
func (s Slot) Empty() bool {
	return s.Address == nil
}

// Table is a fixed-capacity list of slots indexed by row. Rows outside
// 0..Capacity()-1 are ignored by every mutating method.
type Table struct {
	slots []Slot
}

// NewTable allocates a table of capacity empty slots.
func NewTable(capacity int) (*Table, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return &Table{slots: make([]Slot, capacity)}, nil
}

// Capacity returns the number of rows. It is zero after Release.
func (t *Table) Capacity() int {
	return len(t.slots)
}

func (t *Table) inRange(row int) bool {
	return row >= 0 && row < len(t.slots)
}

// Set points row at addr, reinterpreted as tag. Whatever the row watched
// before is replaced. Out-of-range rows are ignored; Set reports whether
// the row was written.
func (t *Table) Set(row int, addr unsafe.Pointer, tag TypeTag) bool {
	if !t.inRange(row) {
		return false
	}
	t.slots[row] = Slot{Address: addr, Type: tag}
	return true
}

// Clear empties row. The old tag stays in place.
func (t *Table) Clear(row int) bool {
	if !t.inRange(row) {
		return false
	}
	t.slots[row].Address = nil
	return true
}

// Slot returns the slot at row. ok is false when row is out of range.
func (t *Table) Slot(row int) (Slot, bool) {
	if !t.inRange(row) {
		return Slot{}, false
	}
	return t.slots[row], true
}

// All yields every row in order, empty ones included.
func (t *Table) All() iter.Seq2[int, Slot] {
	return func(yield func(int, Slot) bool) {
		for i, s := range t.slots {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Watched returns the number of non-empty rows.
func (t *Table) Watched() int {
	n := 0
	for _, s := range t.slots {
		if !s.Empty() {
			n++
		}
	}
	return n
}

// Release drops the slot storage. The table has zero capacity afterwards.
func (t *Table) Release() {
	t.slots = nil
}
