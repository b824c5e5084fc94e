package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cafeplan/pkg/errors"
	"github.com/matzehuels/cafeplan/pkg/params"
)

const defaultParamsFile = "cafeplan.toml"

// initCommand writes a parameter file holding the defaults.
func (c *CLI) initCommand() *cobra.Command {
	var (
		force bool
		desk  string
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a parameter file with the default settings",
		Long: `Write a parameter file with the default settings.

The format follows the extension: .toml (default), .yaml/.yml or .json.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultParamsFile
			if len(args) > 0 {
				path = args[0]
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
				}
			}

			p := params.Default()
			if desk != "" {
				p.SetDesk(desk, "")
			}
			if err := p.Validate(); err != nil {
				return err
			}
			if err := p.Save(path); err != nil {
				return err
			}

			printSuccess("Wrote default parameters")
			printFile(path)
			printNewline()
			printNextStep("Lay out", "cafeplan layout "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.Flags().StringVar(&desk, "desk", "", "include a reception desk of this size")
	return cmd
}
