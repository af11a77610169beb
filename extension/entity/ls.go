// ls.go implements "entlog ls".

package entity

import (
	"fmt"
	"io"

	"github.com/jpl-au/entlog/cmd"
	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/ls"
	"github.com/spf13/cobra"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List entities, newest first",
		Args:    cobra.NoArgs,
		RunE:    e.runLs,
	}
	c.Flags().BoolP(extension.FlagLong, "l", false, "Long format with type, update time and tags")
	c.Flags().Int(extension.FlagSkip, 0, "Entities to skip")
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Maximum entities (default search.default_limit)")
	return c
}

func (e *Extension) runLs(c *cobra.Command, _ []string) error {
	long, _ := c.Flags().GetBool(extension.FlagLong)
	skip, _ := c.Flags().GetInt(extension.FlagSkip)
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	if !c.Flags().Changed(extension.FlagLimit) {
		limit = e.cfg.SearchLimit()
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	result, err := ls.Run(c.Context(), w, e.svc, ls.Options{Skip: skip, Limit: limit, Long: long})

	log.Event("entity:ls", "list").
		Author(cmd.Author()).
		Detail("skip", skip).
		Detail("limit", limit).
		Count(len(result.Entities)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("ls: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(result.ToJSON())
	}
	return nil
}
