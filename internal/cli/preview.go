package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cafeplan/pkg/core/floor"
	"github.com/matzehuels/cafeplan/pkg/core/render/sink"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	gridStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// PreviewModel is the bubbletea model of the preview command. It lists the
// rows of a layout and lets the user turn rows around.
type PreviewModel struct {
	Request  floor.Request
	Result   floor.Result
	Reversed []int
	Cursor   int
	Saved    bool
	Cell     float64

	err error
}

// NewPreviewModel computes the initial layout for req.
func NewPreviewModel(req floor.Request, reversed []int, cell float64) (PreviewModel, error) {
	m := PreviewModel{Request: req, Reversed: slices.Clone(reversed), Cell: cell}
	if err := m.recompute(); err != nil {
		return PreviewModel{}, err
	}
	return m, nil
}

func (m *PreviewModel) recompute() error {
	res, err := floor.Compute(m.Request, floor.WithReversedRows(m.Reversed...))
	if err != nil {
		return err
	}
	m.Result = res
	return nil
}

// rows returns the slot rows of the current layout.
func (m PreviewModel) rows() [][]floor.Slot {
	return floor.Rows(m.Result.Slots)
}

func (m PreviewModel) Init() tea.Cmd { return nil }

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.rows())-1 {
			m.Cursor++
		}
	case "r", " ":
		m.toggle(m.Cursor)
	case "enter", "s":
		m.Saved = true
		return m, tea.Quit
	}
	return m, nil
}

// toggle reverses row i, or restores it when it is already reversed.
func (m *PreviewModel) toggle(i int) {
	prev := slices.Clone(m.Reversed)
	if j := slices.Index(m.Reversed, i); j >= 0 {
		m.Reversed = slices.Delete(m.Reversed, j, j+1)
	} else {
		m.Reversed = append(m.Reversed, i)
		slices.Sort(m.Reversed)
	}
	if err := m.recompute(); err != nil {
		m.Reversed = prev
		m.err = err
		return
	}
	m.err = nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout Preview"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select row  r turn row  ⏎ save  q quit"))
	b.WriteString("\n\n")

	if grid, err := sink.RenderText(m.Result, sink.WithTitle(""), sink.WithCellSize(m.Cell)); err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + err.Error())
	} else {
		b.WriteString(gridStyle.Render(strings.TrimRight(string(grid), "\n")))
	}
	b.WriteString("\n\n")

	for i, row := range m.rows() {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		mark := ""
		if slices.Contains(m.Reversed, i) {
			mark = StyleWarning.Render(" turned")
		}
		line := fmt.Sprintf("%srow %d  %d units  y=%s  facing %s°", cursor, i, len(row), cm(row[0].Y), row[0].Orientation)
		b.WriteString(style.Render(line) + mark + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
	}
	return b.String()
}

// previewCommand opens the interactive preview.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
		cell   float64
	)

	cmd := &cobra.Command{
		Use:   "preview [params.toml]",
		Short: "Preview a layout in the terminal and turn rows around",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(args)
			if err != nil {
				return err
			}
			req, err := opts.Params.Request()
			if err != nil {
				return err
			}
			return c.runPreview(cmd.Context(), req, flags.reverseRows, cell, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", defaultOutputBase+".json", "file written on save")
	cmd.Flags().Float64Var(&cell, "cell", sink.DefaultCellSize, "centimetres per character")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, req floor.Request, reversed []int, cell float64, output string) error {
	m, err := NewPreviewModel(req, reversed, cell)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	pm, ok := final.(PreviewModel)
	if !ok || !pm.Saved {
		return nil
	}

	data, err := sink.RenderJSON(pm.Result)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Saved layout")
	printFile(output)
	if len(pm.Reversed) > 0 {
		printDetail("turned rows: %v", pm.Reversed)
	}
	return nil
}
