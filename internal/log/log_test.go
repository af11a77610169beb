package log

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDB points the logger at a fresh database for the test.
func useTempDB(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	orig := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	t.Cleanup(func() {
		Close()
		dbPathFunc = orig
	})
}

// lastRow opens the log database directly and returns the newest row.
func lastRow(t *testing.T, query string, dest ...any) {
	t.Helper()
	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.QueryRow(query+" FROM log ORDER BY id DESC LIMIT 1").Scan(dest...))
}

func TestOpenClose(t *testing.T) {
	useTempDB(t)

	require.NoError(t, Open())
	require.NoError(t, Open(), "open is idempotent")
	assert.FileExists(t, DBPath())
	Close()

	// No logger: must not panic.
	Log(Entry{Source: "test:cmd", Action: "test", Success: true})
}

func TestBuilderSuccess(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())
	SetProject("/test/catalog/.entlog")

	Event("entity:show", "read").
		Author("alice").
		Entity(7).
		Count(1).
		Write(nil)

	var source, author, action, project string
	var entityID int64
	var count, success int
	lastRow(t, "SELECT source, author, action, project, entity_id, count, success",
		&source, &author, &action, &project, &entityID, &count, &success)
	assert.Equal(t, "entity:show", source)
	assert.Equal(t, "alice", author)
	assert.Equal(t, "read", action)
	assert.Equal(t, hash("/test/catalog/.entlog"), project)
	assert.Equal(t, int64(7), entityID)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, success)
}

func TestBuilderError(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())

	Event("tag:mv", "rename").Tag("web").Write(errors.New("not found"))

	var tag, msg string
	var success int
	var entityID sql.NullInt64
	lastRow(t, "SELECT tag, error, success, entity_id", &tag, &msg, &success, &entityID)
	assert.Equal(t, "web", tag)
	assert.Equal(t, "not found", msg)
	assert.Equal(t, 0, success)
	assert.False(t, entityID.Valid, "zero entity id is stored as NULL")
}

func TestBuilderDetail(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())

	Event("search:find", "search").
		Detail("query", "demo").
		Detail("scope", "tags").
		Write(nil)

	var detail string
	lastRow(t, "SELECT detail", &detail)
	assert.Contains(t, detail, `"query":"demo"`)
	assert.Contains(t, detail, `"scope":"tags"`)
}

func TestHash(t *testing.T) {
	h1 := hash("/home/user/catalog/.entlog")
	h2 := hash("/home/user/catalog/.entlog")
	h3 := hash("/home/user/other/.entlog")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 16)
}

func TestDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	orig := dbPathFunc
	dbPathFunc = defaultDBPath
	defer func() { dbPathFunc = orig }()

	assert.Equal(t, filepath.Join(home, ".entlog", "log", "entlog-log.db"), DBPath())
}
