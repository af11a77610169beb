/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Extensions read flag values through the exported accessors rather than the
// variables, so they never touch cobra's persistent flag set directly.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/entlog/internal/config"
	"github.com/spf13/cobra"
)

var validOutputFormats = []string{"json"}

var (
	output string
	author string
	force  bool
	db     string
	dir    string
)

// out is the output writer for commands. Tests replace it to capture output.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// Output returns the output format flag value.
func Output() string { return output }

// Author returns who the audit log attributes the command to.
func Author() string { return author }

// Force returns the force flag value.
func Force() bool { return force }

// DB returns the resolved database name.
// Priority: --db flag > ENTLOG_DB env var > empty (default).
func DB() string {
	if db != "" {
		return db
	}
	return os.Getenv("ENTLOG_DB")
}

// Dir returns the explicit catalog directory if set.
// Priority: --dir flag > ENTLOG_DIR env var > empty (use discovery).
func Dir() string {
	if dir != "" {
		return dir
	}
	return os.Getenv("ENTLOG_DIR")
}

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints err as {"error": ...} when output is JSON and
// returns nil so cobra does not print it a second time. Otherwise err is
// returned unchanged.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

// detectAuthor resolves the audit author from ENTLOG_AUTHOR, then config,
// then the login name.
func detectAuthor() string {
	if a := os.Getenv("ENTLOG_AUTHOR"); a != "" {
		return a
	}
	if cfg, err := config.Load(); err == nil && cfg.Author.Name != "" {
		return cfg.Author.Name
	}
	return os.Getenv("USER")
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVarP(&author, "author", "a", "", "Name recorded in the audit log")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "Overwrite or reinitialise without asking")
	rootCmd.PersistentFlags().StringVar(&db, "db", "", "Database name (e.g., work for entlog-work.db)")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Catalog directory (skip discovery, use explicit path)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
