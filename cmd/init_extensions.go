/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go opens the catalog and wires it into extensions.
//
// Design: Extensions register during init() but are not initialised until a
// command that needs the catalog runs. The catalog is opened once and shared
// across all extensions through the Context.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/internal/catalog"
	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/repo"
)

// noStoreCommands lists commands that bypass catalog initialisation: the
// bootstrap commands plus whatever extensions declare through Storeless.
var noStoreCommands map[string]bool

func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":   true,
		"guide":  true,
		"config": true,
	}
	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}

var (
	extContext extension.Context
	extService *catalog.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions opens the catalog named by --db/--dir and injects it into
// every Initializable extension. A missing catalog surfaces as
// repo.ErrNotInitialised so the user is told to run "entlog init".
func initExtensions() error {
	initOnce.Do(func() {
		initErr = OpenCatalog()
	})
	return initErr
}

// OpenCatalog opens the catalog and initialises extensions with it. Storeless
// commands that decide at run time they need the catalog (import without
// --dry-run) call this directly.
func OpenCatalog() error {
	if extService != nil {
		return nil
	}
	dbPath, err := repo.Resolve(DB(), Dir())
	if err != nil {
		return err
	}
	svc, err := catalog.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	extService = svc

	log.SetProject(svc.Root())

	extContext = extension.NewContext(svc, svc.DB(), svc.Config())
	for _, ext := range extension.All() {
		if init, ok := ext.(extension.Initializable); ok {
			if err := init.Init(extContext); err != nil {
				return fmt.Errorf("init extension %s: %w", ext.Name(), err)
			}
		}
	}
	return nil
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		noStoreCommands = buildNoStoreCommands()
	})
}
