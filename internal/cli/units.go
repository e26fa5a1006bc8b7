package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trussmesh/pkg/units"
)

// unitsCommand creates the units command.
func (c *CLI) unitsCommand() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "units",
		Short: "List export units and their scale factors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" {
				source = c.config.SourceUnit
			}
			if source == "" {
				source = units.Inch.String()
			}
			from, err := units.Parse(source)
			if err != nil {
				return err
			}
			fmt.Println(unitTable(from))
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source-unit", "", "unit of the input coordinates (default inch)")

	return cmd
}

func unitTable(from units.Unit) string {
	rows := make([][]string, len(units.All))
	for i, u := range units.All {
		rows[i] = []string{
			strconv.Itoa(i),
			u.String(),
			strconv.FormatFloat(u.Meters(), 'g', -1, 64),
			strconv.FormatFloat(units.Factor(from, u), 'g', 6, 64),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Unit", "Meters", "Factor from "+from.String()).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
