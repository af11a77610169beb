// db.go implements "entlog db" for multi-database management.
//
// Design: db is storeless. Listing and local/shared toggling only touch the
// .entlog/.gitignore; a named database is opened only to print its stats.

package core

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jpl-au/entlog/cmd"
	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/internal/catalog"
	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/repo"
	"github.com/jpl-au/entlog/internal/store"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "db [name]",
		Short: "List or manage databases",
		Long: `List databases, show one database's stats, or change its local/shared status.

  entlog db                  # list all databases
  entlog db work             # stats and status of entlog-work.db
  entlog db work --local     # mark as local (gitignored)
  entlog db work --share     # mark as shared
  entlog db --dir /path      # list databases in another directory

If no name is given with --local or --share, operates on the default database.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDB,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local")
	c.Flags().BoolP(extension.FlagShare, "s", false, "Mark database as shared")
	c.MarkFlagsMutuallyExclusive(extension.FlagLocal, extension.FlagShare)
	return c
}

func runDB(c *cobra.Command, args []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	share, _ := c.Flags().GetBool(extension.FlagShare)

	// repo functions take the .entlog directory, not the project root.
	dir := cmd.Dir()
	catalogDir := ""
	if dir != "" {
		catalogDir = filepath.Join(dir, repo.Dir)
	}

	if len(args) == 0 && !local && !share {
		err := listDBs(catalogDir)
		log.Event("core:db", "list").Author(cmd.Author()).Detail("dir", dir).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db list: %w", err))
		}
		return nil
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	switch {
	case local:
		err := repo.IgnoreDB(name, catalogDir)
		log.Event("core:db", "ignore").Author(cmd.Author()).Detail("db", name).Detail("dir", dir).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db ignore %q: %w", name, err))
		}
		fmt.Fprintf(cmd.Out(), "%s marked as local\n", repo.DBFileName(name))
		return nil

	case share:
		err := repo.UnignoreDB(name, catalogDir)
		log.Event("core:db", "unignore").Author(cmd.Author()).Detail("db", name).Detail("dir", dir).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db unignore %q: %w", name, err))
		}
		fmt.Fprintf(cmd.Out(), "%s marked as shared\n", repo.DBFileName(name))
		return nil
	}

	err := showDB(c, name, dir, catalogDir)
	log.Event("core:db", "status").Author(cmd.Author()).Detail("db", name).Detail("dir", dir).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db status %q: %w", name, err))
	}
	return nil
}

type dbStatus struct {
	File   string       `json:"file"`
	Status string       `json:"status"`
	Stats  *store.Stats `json:"stats"`
}

func showDB(c *cobra.Command, name, dir, catalogDir string) error {
	ignored, err := repo.IsIgnored(name, catalogDir)
	if err != nil {
		return err
	}
	dbPath, err := repo.Resolve(name, dir)
	if err != nil {
		return err
	}
	svc, err := catalog.Open(dbPath)
	if err != nil {
		return err
	}
	defer svc.Close()

	st, err := svc.Stats(c.Context())
	if err != nil {
		return err
	}

	s := dbStatus{File: repo.DBFileName(name), Status: "shared", Stats: st}
	if ignored {
		s.Status = "local"
	}
	if cmd.JSON() {
		return cmd.PrintJSON(s)
	}

	w := cmd.Out()
	fmt.Fprintf(w, "%s: %s\n", s.File, s.Status)
	fmt.Fprintf(w, "  entities:        %d\n", st.Entities)
	fmt.Fprintf(w, "  entity types:    %d\n", st.EntityTypes)
	fmt.Fprintf(w, "  tags:            %d\n", st.Tags)
	fmt.Fprintf(w, "  tag assignments: %d\n", st.TagAssignments)
	if st.NewestUpdate > 0 {
		fmt.Fprintf(w, "  last update:     %s\n", time.Unix(st.NewestUpdate, 0).UTC().Format(time.RFC3339))
	}
	return nil
}

// listDBs prints every database in the catalog directory with its status.
func listDBs(dir string) error {
	dbs, err := repo.ListDBs(dir)
	if err != nil {
		return fmt.Errorf("list databases: %w", err)
	}

	if cmd.JSON() {
		return cmd.PrintJSON(dbs)
	}
	if len(dbs) == 0 {
		fmt.Fprintln(cmd.Out(), "No databases found")
		return nil
	}
	for _, db := range dbs {
		status := "shared"
		if db.Local {
			status = "local"
		}
		fmt.Fprintf(cmd.Out(), "%s  %s\n", db.File, status)
	}
	return nil
}
