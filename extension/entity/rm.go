// rm.go implements "entlog rm".

package entity

import (
	"fmt"
	"io"

	"github.com/jpl-au/entlog/cmd"
	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/rm"
	"github.com/spf13/cobra"
)

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Delete entities",
		Long: `Permanently delete one or more entities.

Their tags stay in the registry; use "entlog tag rm" to remove a tag.`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runRm,
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	ids := make([]int64, len(args))
	for i, a := range args {
		id, err := parseID(a)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		ids[i] = id
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	results, err := rm.Run(c.Context(), w, e.svc, ids...)

	for _, r := range results {
		log.Event("entity:rm", "delete").Author(cmd.Author()).Entity(r.ID).Write(nil)
	}
	if err != nil {
		log.Event("entity:rm", "delete").Author(cmd.Author()).Entity(ids[len(results)]).Write(err)
		return cmd.PrintJSONError(fmt.Errorf("rm: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(results)
	}
	return nil
}
