package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ClayFreeman/procmanage/cliout"
)

// NewCommand creates a version command that displays build information.
// outputFormat is an optional pointer to a global output format flag (e.g. "json").
// If nil, defaults to human-readable output.
func NewCommand(info *Info, outputFormat *string) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Display %s version information", info.Name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := cliout.FormatDefault
			if outputFormat != nil {
				var err error
				if format, err = cliout.ParseFormat(*outputFormat); err != nil {
					return err
				}
			}

			out := cliout.New(cmd.OutOrStdout())
			switch {
			case format == cliout.FormatJSON:
				return out.JSON(info)
			case quiet:
				out.Plain("%s", info.Version)
			default:
				out.Plain("%s", info.Name)
				out.Label("Version", info.Version)
				out.Label("Build Date", info.BuildDate)
				out.Label("Git Commit", info.GitCommit)
				out.Label("Go", info.GoVersion)
				out.Label("Platform", info.Platform)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print version number")
	return cmd
}
