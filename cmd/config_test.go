package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("config", "search.default_limit", "2")
	env.contains(out, "search.default_limit = 2 (global)")
	assert.Equal(t, "2\n", env.run("config", "search.default_limit"))

	env.run("init")
	env.seed()
	out = env.run("ls")
	env.contains(out, "Printer")
	env.contains(out, "Billing API")
	env.notContains(out, "Foo", "configured default limit applies")
}

func TestConfig_TokenMasked(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("config", "server.token", "s3cret")
	env.notContains(out, "s3cret")
	env.contains(out, "(set)")

	env.notContains(env.run("config"), "s3cret")
	env.notContains(env.run("config", "server.token"), "s3cret")
}

func TestConfig_Invalid(t *testing.T) {
	env := newBareEnv(t)

	_, err := env.runErr("config", "no.such.key")
	assert.Error(t, err)

	_, err = env.runErr("config", "search.default_limit", "abc")
	assert.Error(t, err)
}
