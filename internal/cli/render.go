package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cafeplan/pkg/core/render/sink"
	"github.com/matzehuels/cafeplan/pkg/pipeline"
)

const defaultOutputBase = "layout"

// renderOpts holds the style flags of the render command.
type renderOpts struct {
	formats  string
	output   string
	title    string
	noTitle  bool
	scale    float64
	noLabels bool
	noAxes   bool
	cell     float64
}

// renderCommand renders the layout to files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags layoutFlags
		ro    renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render [params.toml]",
		Short: "Render a room layout to files",
		Long: `Render a room layout to one or more files.

Formats: ` + sink.FormatNames() + `. PDF needs rsvg-convert on the PATH.

With a single format, -o names the output file. With several formats -o is a
base path and each file gets the format's extension.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(args)
			if err != nil {
				return err
			}
			formats, err := sink.ParseFormats(ro.formats)
			if err != nil {
				return err
			}
			for _, f := range formats {
				opts.Formats = append(opts.Formats, string(f))
			}
			opts.Title = ro.title
			opts.NoTitle = ro.noTitle
			opts.Scale = ro.scale
			opts.NoLabels = ro.noLabels
			opts.NoAxes = ro.noAxes
			opts.CellSize = ro.cell
			return c.runRender(cmd.Context(), opts, outputBase(ro.output, args))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&ro.formats, "format", "f", string(sink.FormatSVG), "output format(s), comma-separated")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (one format) or base path (several)")
	cmd.Flags().StringVar(&ro.title, "title", sink.DefaultTitle, "heading above the plan")
	cmd.Flags().BoolVar(&ro.noTitle, "no-title", false, "omit the heading")
	cmd.Flags().Float64Var(&ro.scale, "scale", sink.DefaultScale, "pixels per centimetre (svg, png, pdf)")
	cmd.Flags().BoolVar(&ro.noLabels, "no-labels", false, "omit furniture labels")
	cmd.Flags().BoolVar(&ro.noAxes, "no-axes", false, "omit axis ticks")
	cmd.Flags().Float64Var(&ro.cell, "cell", sink.DefaultCellSize, "centimetres per character (txt)")

	return cmd
}

// outputBase picks the output path: the flag, else the parameter file name
// without extension, else "layout".
func outputBase(output string, args []string) string {
	if output != "" {
		return output
	}
	if len(args) > 0 {
		return strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}
	return defaultOutputBase
}

// outputPath returns where format f is written. A single-format render uses
// base as is when it already carries an extension.
func outputPath(base, f string, single bool) string {
	if single && filepath.Ext(base) != "" {
		return base
	}
	return strings.TrimSuffix(base, "."+f) + "." + f
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, base string) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()
	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	single := len(opts.Formats) == 1
	var written []string
	for _, f := range opts.Formats {
		path := outputPath(base, f, single)
		if err := os.WriteFile(path, res.Artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Rendered %d file(s)", len(written))
	for _, p := range written {
		printFile(p)
	}
	printStats(res.Stats, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)
	return nil
}
