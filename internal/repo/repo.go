// Package repo provides catalog initialisation and discovery for entlog.
//
// A catalog is a .entlog directory holding one or more SQLite databases plus
// the media directory used by uploads. Discovery mirrors git: starting from
// the working directory, walk up until a .entlog directory containing the
// target database is found, or the filesystem root is reached.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/entlog/internal/store"
)

const (
	// Dir is the directory name for the catalog.
	Dir = ".entlog"
	// DBFile is the default database filename.
	DBFile = "entlog.db"
)

// DBFileName returns the database filename for a given name.
// Empty name returns "entlog.db", "work" returns "entlog-work.db", and a name
// already ending in ".db" is returned as-is.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return "entlog-" + name + ".db"
}

// ErrNotInitialised is returned when no catalog is found.
var ErrNotInitialised = errors.New("entlog not initialised (run 'entlog init')")

// Init creates a catalog database under dir (current directory when empty).
// With force an existing database is replaced. With local the database is
// listed in .entlog/.gitignore so it stays out of version control.
//
// Init does not write config; that is "entlog config".
func Init(force bool, db string, local bool, dir string) error {
	if dir == "" {
		dir = "."
	}
	catalogDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(catalogDir, DBFileName(db))

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFileName(db))
		}
		for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
			if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("remove database: %w", err)
			}
		}
	}

	if err := os.MkdirAll(catalogDir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	// Only written on first init so later inits keep local database markers.
	gitignore := filepath.Join(catalogDir, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		s := `# entlog - uploaded media and local config (may hold the API token)
media/
config.yaml
`
		if err := os.WriteFile(gitignore, []byte(s), 0644); err != nil {
			return fmt.Errorf("write gitignore: %w", err)
		}
	}

	if local {
		if err := IgnoreDB(db, catalogDir); err != nil {
			return fmt.Errorf("ignore database: %w", err)
		}
	}
	return nil
}

// Discover walks up the directory tree looking for a catalog database.
// The db parameter names the database (empty for default). Returns the full
// path to the database.
func Discover(db string) (string, error) {
	dbFile := DBFileName(db)
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		dbPath := filepath.Join(dir, Dir, dbFile)
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// Resolve returns the database path for db. With an explicit dir the catalog
// must live directly under it; otherwise Discover walks up from the working
// directory.
func Resolve(db, dir string) (string, error) {
	if dir == "" {
		return Discover(db)
	}
	dbPath := filepath.Join(dir, Dir, DBFileName(db))
	if _, err := os.Stat(dbPath); err != nil {
		return "", fmt.Errorf("%s: %w", dbPath, ErrNotInitialised)
	}
	return dbPath, nil
}

// DiscoverDir finds the .entlog directory, walking up the tree.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		catalogDir := filepath.Join(dir, Dir)
		if info, err := os.Stat(catalogDir); err == nil && info.IsDir() {
			return catalogDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DBInfo describes one database in a catalog directory.
type DBInfo struct {
	Name  string `json:"name"`  // Short name, empty for the default database
	File  string `json:"file"`  // Filename (entlog.db, entlog-work.db)
	Path  string `json:"path"`  // Full path
	Local bool   `json:"local"` // Listed in .entlog/.gitignore
}

// ListDBs returns every entlog database in dir with its local/shared status.
// If dir is empty, the .entlog directory is discovered from the working
// directory.
func ListDBs(dir string) ([]DBInfo, error) {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return nil, err
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", Dir, err)
	}

	var dbs []DBInfo
	for _, e := range entries {
		file := e.Name()
		if e.IsDir() || !strings.HasSuffix(file, ".db") {
			continue
		}
		var name string
		switch {
		case file == DBFile:
		case strings.HasPrefix(file, "entlog-"):
			name = strings.TrimSuffix(strings.TrimPrefix(file, "entlog-"), ".db")
		default:
			continue
		}

		// An unreadable .gitignore reports the database as shared.
		ignored, _ := IsIgnored(name, dir)
		dbs = append(dbs, DBInfo{Name: name, File: file, Path: filepath.Join(dir, file), Local: ignored})
	}
	return dbs, nil
}
