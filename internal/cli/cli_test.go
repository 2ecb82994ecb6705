package cli

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"unsafe"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/memwatch/pkg/memwatch"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "memwatch v"+Version), out)
}

func TestTypesCommand(t *testing.T) {
	out, err := run(t, "types", "--bits", "32")
	require.NoError(t, err)

	out = ansi.Strip(out)
	for _, want := range []string{"TAG", "LABEL", "<CHR>:", "<F64>:", "<ADR>:", "RawPointer"} {
		assert.Contains(t, out, want)
	}
}

func TestTypesCommandRejectsBits(t *testing.T) {
	_, err := run(t, "types", "--bits", "16")
	assert.Error(t, err)
}

func TestTypeTablePointerWidth(t *testing.T) {
	for _, ptrWidth := range []int{4, 8} {
		table := ansi.Strip(renderTypeTable(ptrWidth))
		var adr string
		for _, line := range strings.Split(table, "\n") {
			if strings.Contains(line, "<ADR>:") {
				adr = line
			}
		}
		require.NotEmpty(t, adr)
		fields := strings.Fields(strings.ReplaceAll(adr, "│", " "))
		assert.Contains(t, fields, strconv.Itoa(ptrWidth))
	}
}

func TestDemoStepMutatesEveryVariable(t *testing.T) {
	// An uninitialized Watcher ignores the watch calls made by step.
	w := memwatch.New()
	d := &demoVars{letter: 'A'}

	d.step(w)
	assert.Equal(t, uint64(1), d.tick)
	assert.Equal(t, byte('B'), d.letter)
	assert.Equal(t, int32(1), d.counter)
	assert.Equal(t, int64(-1<<33), d.big)
	assert.Equal(t, uintptr(unsafe.Pointer(&d.big)), d.ptr)

	d.step(w)
	assert.Equal(t, uintptr(unsafe.Pointer(&d.counter)), d.ptr)
	assert.InDelta(t, 0.0, d.ratio, 1e-9)
}
