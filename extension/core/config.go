// config.go implements "entlog config".
//
// Design: Config cascades like git. Local config (.entlog/config.yaml) wins
// over global (~/.entlog/config.yaml), and writes go back to whichever file
// was read. The API token is never echoed.

package core

import (
	"fmt"

	"github.com/jpl-au/entlog/cmd"
	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/internal/config"
	"github.com/jpl-au/entlog/internal/log"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  entlog config                          # show config
  entlog config search.default_limit     # show one value
  entlog config search.default_limit 25  # set a value
  entlog config server.token s3cret      # set the API bearer token

Configuration locations:
  Global: ~/.entlog/config.yaml
  Local:  .entlog/config.yaml

Uses local config if it exists, otherwise global.
Use --local to write local config even if it does not exist yet.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.ValidKeys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.entlog/config.yaml)")
	return c
}

// display hides the token value.
func display(key, value string) string {
	if key == config.KeyServerToken && value != "" {
		return "(set)"
	}
	return value
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)

	var cfg *config.Config
	var err error
	if forceLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		values := cfg.All()
		log.Event("core:config", "list").Author(cmd.Author()).Write(nil)
		if cmd.JSON() {
			masked := make(map[string]string, len(values))
			for k, v := range values {
				masked[k] = display(k, v)
			}
			return cmd.PrintJSON(masked)
		}
		for _, k := range config.ValidKeys() {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, display(k, values[k]))
		}

	case 1:
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Author(cmd.Author()).Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"key": args[0], "value": display(args[0], v)})
		}
		fmt.Fprintln(cmd.Out(), display(args[0], v))

	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("core:config", "set").Author(cmd.Author()).Detail("key", args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		// The value is not logged; it may be the API token.
		log.Event("core:config", "set").Author(cmd.Author()).Detail("key", args[0]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"key": args[0], "scope": scopeName})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], display(args[0], args[1]), scopeName)
	}
	return nil
}
