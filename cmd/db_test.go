package cmd

import (
	"testing"
)

func TestDB(t *testing.T) {
	env := newTestEnv(t)
	env.run("init", "--db", "work")

	out := env.run("db")
	env.contains(out, "entlog-work.db  shared")
	env.contains(out, "entlog.db  shared")

	env.contains(env.run("db", "work", "--local"), "entlog-work.db marked as local")
	env.contains(env.run("db"), "entlog-work.db  local")

	env.contains(env.run("db", "work", "--share"), "entlog-work.db marked as shared")
	env.contains(env.run("db"), "entlog-work.db  shared")
}

func TestDB_Stats(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	out := env.run("db", "entlog.db")
	env.contains(out, "entities:        3")
	env.contains(out, "tags:            4")
}

func TestDB_NamedCatalog(t *testing.T) {
	env := newTestEnv(t)
	env.run("init", "--db", "work")
	env.run("add", "website", "Work only", "w", "--db", "work")

	env.contains(env.run("ls", "--db", "work"), "Work only")
	env.notContains(env.run("ls"), "Work only")
}
