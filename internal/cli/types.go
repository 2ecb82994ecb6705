package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Mr-Dark-debug/memwatch/pkg/memwatch"
)

var typesHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var typesCellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTypesCmd() *cobra.Command {
	var bits int

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the type tags a row can be watched as",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if bits != 32 && bits != 64 {
				return fmt.Errorf("--bits must be 32 or 64, got %d", bits)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), renderTypeTable(bits/8))
			return err
		},
	}

	cmd.Flags().IntVar(&bits, "bits", memwatch.HostPointerWidth()*8, "pointer size to show RawPointer widths for")
	return cmd
}

// renderTypeTable lays out the type registry for a host with the given
// pointer width.
func renderTypeTable(ptrWidth int) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TAG", "LABEL", "BYTES", "KIND").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return typesHeaderStyle
			}
			return typesCellStyle
		})

	for _, tag := range memwatch.AllTypeTags() {
		width := tag.Width()
		if tag == memwatch.RawPointer {
			width = ptrWidth
		}
		t.Row(tag.String(), tag.Label(), strconv.Itoa(width), tag.Kind())
	}
	return t.Render()
}
