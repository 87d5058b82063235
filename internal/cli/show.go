package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tmorell/slidegrid/pkg/grid"
	"github.com/tmorell/slidegrid/pkg/slide"
)

// showCommand creates the show command for inspecting a layout document.
func (c *CLI) showCommand() *cobra.Command {
	var (
		metrics bool
		noGrid  bool
	)

	cmd := &cobra.Command{
		Use:   "show [layout.json]",
		Short: "Pretty-print a layout document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := slide.ReadLayoutFile(args[0])
			if err != nil {
				return err
			}
			printLayout(l, metrics, !noGrid)
			return nil
		},
	}

	cmd.Flags().BoolVar(&metrics, "metrics", false, "include generation metrics")
	cmd.Flags().BoolVar(&noGrid, "no-grid", false, "skip the grid preview")

	return cmd
}

// printLayout renders a layout summary to stdout.
func printLayout(l slide.Layout, metrics, preview bool) {
	fmt.Println(StyleTitle.Render(l.SlideID))

	printKeyValue("pattern", l.Pattern)
	printKeyValue("status", l.Status)
	printKeyValue("valid", fmt.Sprintf("%t", l.Valid))
	printKeyValue("white space", renderScore(l.WhiteSpaceRatio))
	printKeyValue("alignment", renderScore(l.AlignmentScore))
	printKeyValue("balance", renderScore(l.BalanceScore))
	printNewline()

	if preview && len(l.Containers) > 0 {
		for _, line := range renderPreview(l) {
			fmt.Println("  " + line)
		}
		printNewline()
	}

	for i, pc := range l.Containers {
		pos := pc.Position
		printDetail("%s %-16s %3d,%-3d  %dx%d", containerMark(i), pc.ID, pos.LeftInset, pos.TopInset, pos.Width, pos.Height)
	}

	if metrics && len(l.Metrics) > 0 {
		printNewline()
		keys := make([]string, 0, len(l.Metrics))
		for k := range l.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			printDetail("%s = %v", k, l.Metrics[k])
		}
	}
}

// =============================================================================
// Grid Preview
// =============================================================================

// Preview canvas dimensions. Terminal cells are roughly twice as tall as
// wide, so 40x12 keeps the 160x90 grid's aspect close to true.
const (
	previewCols = 40
	previewRows = 12
)

var previewStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(colorCyan),
	lipgloss.NewStyle().Foreground(colorGreen),
	lipgloss.NewStyle().Foreground(colorYellow),
	lipgloss.NewStyle().Foreground(colorBlue),
	lipgloss.NewStyle().Foreground(colorRed),
	lipgloss.NewStyle().Foreground(colorWhite),
}

// containerMark returns the single-character label used for container i in
// the preview and the position listing.
func containerMark(i int) string {
	return string(rune('A' + i%26))
}

// renderPreview draws the layout as a downscaled character canvas, one
// styled letter per container.
func renderPreview(l slide.Layout) []string {
	type cell struct {
		mark  string
		style lipgloss.Style
	}
	canvas := make([][]*cell, previewRows)
	for y := range canvas {
		canvas[y] = make([]*cell, previewCols)
	}

	for i, pc := range l.Containers {
		pos := pc.Position
		x0 := pos.LeftInset * previewCols / grid.Width
		y0 := pos.TopInset * previewRows / grid.Height
		x1 := (pos.LeftInset + pos.Width) * previewCols / grid.Width
		y1 := (pos.TopInset + pos.Height) * previewRows / grid.Height
		if x1 <= x0 {
			x1 = x0 + 1
		}
		if y1 <= y0 {
			y1 = y0 + 1
		}

		c := &cell{mark: containerMark(i), style: previewStyles[i%len(previewStyles)]}
		for y := y0; y < y1 && y < previewRows; y++ {
			for x := x0; x < x1 && x < previewCols; x++ {
				canvas[y][x] = c
			}
		}
	}

	lines := make([]string, 0, previewRows)
	for _, row := range canvas {
		var b strings.Builder
		for _, c := range row {
			if c == nil {
				b.WriteString(StyleDim.Render("·"))
				continue
			}
			b.WriteString(c.style.Render(c.mark))
		}
		lines = append(lines, b.String())
	}
	return lines
}
