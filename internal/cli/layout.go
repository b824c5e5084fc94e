package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cafeplan/pkg/core/floor"
	"github.com/matzehuels/cafeplan/pkg/core/render/sink"
	"github.com/matzehuels/cafeplan/pkg/pipeline"
)

// layoutCommand packs the room and prints a summary.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags     layoutFlags
		output    string
		showTable bool
		showGrid  bool
	)

	cmd := &cobra.Command{
		Use:   "layout [params.toml]",
		Short: "Compute a room layout",
		Long: `Compute a room layout and print a summary.

Units are packed from the bottom-right corner towards the left, one row at a
time, with an aisle between rows. With -o the layout is written as JSON, which
'render' does not need: it recomputes from the same parameters and hits the
cache instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(args)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), opts, output, showTable, showGrid)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout as JSON to this file")
	cmd.Flags().BoolVar(&showTable, "table", false, "list every table, chair and the desk")
	cmd.Flags().BoolVar(&showGrid, "grid", false, "draw the layout as text")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, showTable, showGrid bool) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	prog := newProgress(opts.Logger)
	spinner := newSpinnerWithContext(ctx, "Packing room...")
	spinner.Start()

	res, hit, err := runner.ComputeLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done("packed room")

	printSuccess("Layout complete")
	printKeyValue("Room", fmt.Sprintf("%s x %s cm", cm(res.Room.Width), cm(res.Room.Height)))
	printStats(statsOf(res), hit)

	if showTable {
		fmt.Println(layoutTable(res))
	}
	if showGrid {
		grid, err := sink.RenderText(res, sink.WithTitle(""))
		if err != nil {
			return err
		}
		fmt.Print(string(grid))
	}

	if output != "" {
		data, err := sink.RenderJSON(res)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		printFile(output)
	}

	printNewline()
	printNextStep("Render", "cafeplan render -f svg,png")
	return nil
}

func statsOf(res floor.Result) pipeline.Stats {
	return pipeline.Stats{
		Slots:         len(res.Slots),
		Chairs:        len(res.Chairs),
		DroppedChairs: res.DroppedChairs(),
		Rows:          len(floor.Rows(res.Slots)),
	}
}
