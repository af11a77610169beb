// Package transfer provides the transfer extension: export and import of the
// whole catalog as a JSON dump.
package transfer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/entlog/cmd"
	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/internal/exporter"
	"github.com/jpl-au/entlog/internal/importer"
	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the transfer extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "transfer".
func (e *Extension) Name() string { return "transfer" }

// Init receives the shared catalog.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns export and import.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newExportCmd(), e.newImportCmd()}
}

// MCPTools returns nil.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns import: with --dry-run it only reads the dump, so
// it opens the catalog itself when it needs one.
func (e *Extension) NoStoreCommands() []string {
	return []string{"import"}
}

func (e *Extension) newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the catalog",
		Long: `Write every entity and registered tag as a JSON dump.

  entlog export                   # dump to stdout
  entlog export catalog.json      # dump to a file
  entlog export out/ --markdown   # one <id>.md file per entity

Existing files are kept unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runExport,
	}
	c.Flags().Bool(extension.FlagMarkdown, false, "Write one markdown file per entity into a directory")
	return c
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	md, _ := c.Flags().GetBool(extension.FlagMarkdown)
	dst := ""
	if len(args) > 0 {
		dst = args[0]
	}
	if cmd.JSON() && (dst == "" || dst == "-") && !md {
		return cmd.PrintJSONError(errors.New("export to stdout is already JSON; omit -o json"))
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	result, err := exporter.Run(c.Context(), w, e.svc, dst, exporter.Options{Force: cmd.Force(), Markdown: md})

	log.Event("transfer:export", "export").
		Author(cmd.Author()).
		Detail("dst", dst).
		Detail("markdown", md).
		Count(result.Exported).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export: %w", err))
	}
	return cmd.PrintJSON(map[string]any{"exported": result.Exported, "paths": result.Paths})
}

func (e *Extension) newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON dump",
		Long: `Create entities from a dump written by "entlog export". Use "-" to read stdin.

Entities get new ids; the dump's ids and timestamps are not kept.
Registry tags in the dump are registered too.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runImport,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be imported")
	return c
}

func (e *Extension) runImport(c *cobra.Command, args []string) error {
	dry, _ := c.Flags().GetBool(extension.FlagDryRun)
	src := args[0]

	d, err := importer.Load(src, os.Stdin)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import: %w", err))
	}

	if !dry {
		if err := cmd.OpenCatalog(); err != nil {
			return cmd.PrintJSONError(fmt.Errorf("import: %w", err))
		}
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	result, err := importer.Run(c.Context(), w, e.svc, d, importer.Options{DryRun: dry})

	log.Event("transfer:import", "import").
		Author(cmd.Author()).
		Detail("src", src).
		Detail("dry_run", dry).
		Count(result.Imported).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"imported": result.Imported, "ids": result.IDs, "dry_run": dry})
	}
	if !dry {
		fmt.Fprintf(cmd.Out(), "Imported %d entities\n", result.Imported)
	}
	return nil
}
