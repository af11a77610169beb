// guide.go implements "entlog guide".
//
// Guides are embedded in the binary. A terminal gets glamour rendering; a
// pipe gets raw markdown, which is what an LLM wants in its context.

package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/entlog/cmd"
	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/guide"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newGuideCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the entlog usage guide",
		Long: `Outputs the entlog guide for LLMs and humans.

  entlog guide           # main guide
  entlog guide search    # how ranking and fields work
  entlog guide api       # HTTP API routes`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			names, _ := guide.List()
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(c *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}

			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"name": name, "content": content})
			}

			raw, _ := c.Flags().GetBool(extension.FlagRaw)
			if !raw && term.IsTerminal(int(os.Stdout.Fd())) {
				if rendered, err := glamour.Render(content, "dark"); err == nil {
					fmt.Fprint(cmd.Out(), rendered)
					return nil
				}
			}

			fmt.Fprint(cmd.Out(), content)
			return nil
		},
	}
	c.Flags().Bool(extension.FlagRaw, false, "Output raw markdown without rendering")
	return c
}
