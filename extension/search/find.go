// find.go implements "entlog find", fuzzy ranked search over entities.

package search

import (
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/entlog/cmd"
	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/internal/find"
	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/search"
	"github.com/spf13/cobra"
)

func (e *Extension) newFindCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "find [query...]",
		Short: "Search entities",
		Long: `Rank entities against a query by fuzzy partial matching.

  entlog find bar site              # all searchable text
  entlog find foo -f name           # names only
  entlog find web -f tags --exact   # entities tagged exactly "web"
  entlog find                       # newest first, no scoring

Matching is case-insensitive. Each result shows its score (0-100); only
scores above 60 are returned. See "entlog guide search".`,
		RunE: e.runFind,
	}
	c.Flags().StringP(extension.FlagField, "f", "", "Field: "+scopeList())
	c.Flags().Bool(extension.FlagExact, false, "Exact tag membership (with --field tags)")
	c.Flags().Int(extension.FlagSkip, 0, "Results to skip")
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Maximum results (default search.default_limit)")
	c.Flags().Bool(extension.FlagIDs, false, "Print ids only")

	_ = c.RegisterFlagCompletionFunc(extension.FlagField, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, len(search.Scopes))
		for i, s := range search.Scopes {
			out[i] = string(s)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
	return c
}

func scopeList() string {
	names := make([]string, len(search.Scopes))
	for i, s := range search.Scopes {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func (e *Extension) runFind(c *cobra.Command, args []string) error {
	field, _ := c.Flags().GetString(extension.FlagField)
	exact, _ := c.Flags().GetBool(extension.FlagExact)
	skip, _ := c.Flags().GetInt(extension.FlagSkip)
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	idsOnly, _ := c.Flags().GetBool(extension.FlagIDs)
	if !c.Flags().Changed(extension.FlagLimit) {
		limit = e.cfg.SearchLimit()
	}

	query := strings.Join(args, " ")
	opts := find.Options{
		Field:   search.Scope(field),
		Exact:   exact,
		Skip:    skip,
		Limit:   limit,
		IDsOnly: idsOnly,
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	result, err := find.Run(c.Context(), w, e.svc, query, opts)

	log.Event("search:find", "search").
		Author(cmd.Author()).
		Detail("query", query).
		Detail("field", field).
		Detail("exact", exact).
		Count(len(result.Results)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("find: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(result.ToJSON())
	}
	if len(result.Results) == 0 && !idsOnly {
		fmt.Fprintln(cmd.Out(), "No matches")
	}
	return nil
}
