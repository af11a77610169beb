// version.go implements "entlog version".

package core

import (
	"fmt"

	"github.com/jpl-au/entlog/cmd"
	"github.com/jpl-au/entlog/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print build tag, build time, git commit, Go version and platform.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			info := version.Get()
			if cmd.JSON() {
				return cmd.PrintJSON(info)
			}
			_, err := fmt.Fprint(cmd.Out(), info.String())
			return err
		},
	}
}
