package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/cafeplan/pkg/core/floor"
	"github.com/matzehuels/cafeplan/pkg/pipeline"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
	colorOrange = lipgloss.Color("214")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)

	styleTable = lipgloss.NewStyle().Foreground(colorGreen)
	styleChair = lipgloss.NewStyle().Foreground(colorOrange)
	styleDesk  = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }

// printStats prints the one-line layout summary.
func printStats(s pipeline.Stats, cached bool) {
	status, style := "fresh", styleComputed
	if cached {
		status, style = "cached", styleCached
	}
	line := fmt.Sprintf("%d units · %d rows", s.Slots, s.Rows)
	if s.DroppedChairs > 0 {
		line += fmt.Sprintf(" · %d without chair", s.DroppedChairs)
	}
	fmt.Println("  " + StyleDim.Render(line+" · ") + style.Render(status))
}

// layoutTable renders every placed entity as a lipgloss table.
func layoutTable(res floor.Result) string {
	rows := make([][]string, 0, len(res.Tables)+len(res.Chairs)+1)
	kinds := make([]floor.Kind, 0, cap(rows))
	add := func(kind floor.Kind, i int, r floor.Rect, orient string) {
		rows = append(rows, []string{
			string(kind), strconv.Itoa(i),
			cm(r.X), cm(r.Y), cm(r.W), cm(r.H), orient,
		})
		kinds = append(kinds, kind)
	}
	if res.Desk != nil {
		add(floor.KindDesk, 0, res.Desk.Rect, "")
	}
	for i, t := range res.Tables {
		add(floor.KindTable, i, t.Rect, res.Slots[i].Orientation.String())
	}
	for i, c := range res.Chairs {
		add(floor.KindChair, i, c.Rect, "")
	}

	header := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "#", "X", "Y", "Width", "Depth", "Facing").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col != 0 || row < 0 || row >= len(kinds) {
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			switch kinds[row] {
			case floor.KindDesk:
				return styleDesk
			case floor.KindChair:
				return styleChair
			}
			return styleTable
		}).
		Render()
}

func cm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
