// Package log provides centralised audit logging for entlog operations.
// Entries are stored in ~/.entlog/log/entlog-log.db and record every CLI
// command, MCP tool call and HTTP API mutation across catalogs.
//
// # Fluent API
//
//	log.Event("entity:show", "read").
//		Author(cmd.Author()).
//		Entity(id).
//		Write(err)
//
//	log.Event("search:find", "search").
//		Author(cmd.Author()).
//		Detail("query", q.Text).
//		Count(len(results)).
//		Write(err)
//
// The source follows "{extension}:{command}" for CLI commands, "mcp:{tool}"
// for MCP tools and "api:{route}" for the HTTP API.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source   string // e.g., "entity:add", "mcp:entlog_search"
	Author   string // who performed the action
	Action   string // verb: create, read, update, delete, search, rename, ...
	EntityID int64  // entity the operation targeted, 0 when none
	Tag      string // tag name the operation targeted, "" when none
	Count    int    // output: results returned or rows affected

	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether the operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry. Create with [Event], chain setters, then
// call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation. MCP tools use "mcp", the API
// uses "api".
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Entity sets the entity id the operation affects.
func (b *Builder) Entity(id int64) *Builder {
	b.entry.EntityID = id
	return b
}

// Tag sets the tag name the operation affects.
func (b *Builder) Tag(name string) *Builder {
	b.entry.Tag = name
	return b
}

// Count records how many results were returned or rows were affected.
func (b *Builder) Count(n int) *Builder {
	b.entry.Count = n
	return b
}

// Detail adds a key-value pair to the entry's detail map. Can be called
// repeatedly.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the entry, deriving success from err.
//
//	e, err := svc.Entity(ctx, id)
//	log.Event("entity:show", "read").Entity(id).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Callers may ignore the error: logging is best-effort.
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent entries.
// The dir should be the absolute path to the .entlog directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. No-op when the logger is not open.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
