// init.go implements "entlog init".
//
// Init creates the catalog database; it never writes config. The --local
// flag keeps the database out of git.

package core

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jpl-au/entlog/cmd"
	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/internal/catalog"
	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new entlog catalog",
		Long: `Creates a .entlog/entlog.db database in the current directory.

Use --db to create additional databases:
  entlog init --db work    # creates .entlog/entlog-work.db

Use --dir to create in a different directory:
  entlog init --dir /path/to/project

Use --local to exclude the database from git:
  entlog init --db scratch --local

Note: init does not create config. Use "entlog config" for that.`,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local (gitignored)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	db, dir := cmd.DB(), cmd.Dir()

	// --local edits this project's .entlog/.gitignore; with --dir the
	// database lives somewhere else.
	if local && dir != "" {
		return cmd.PrintJSONError(errors.New("cannot use --local with --dir"))
	}

	err := catalog.Init(cmd.Force(), db, local, dir)

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("local", local).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := filepath.Join(repo.Dir, repo.DBFileName(db))
	if dir != "" {
		loc = filepath.Join(dir, loc)
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"path": loc, "local": local})
	}
	fmt.Fprintf(cmd.Out(), "Initialised entlog catalog in %s\n", loc)
	return nil
}
