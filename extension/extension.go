// Package extension provides the plugin architecture for entlog. Each
// extension bundles the CLI commands and MCP tools for one area of the
// catalog (entities, search, tags, transfer) and registers itself at init
// time, so cmd and the MCP server pick it up without naming it.
package extension

import "github.com/spf13/cobra"

// Extension defines the contract for entlog extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register alongside the built-in ones.
	MCPTools() []MCPTool
}

// Initializable extensions run setup once the catalog is open.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is implemented by extensions with commands that run without an
// open catalog. Commands named by NoStoreCommands are skipped by the
// catalog-opening PersistentPreRunE.
//
// Use cases:
//   - bootstrap commands such as init that create the catalog
//   - servers that open their own catalog (serve)
//   - utilities that never touch entities (version, guide)
type Storeless interface {
	NoStoreCommands() []string
}
