package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRunGuard_Exclusive(t *testing.T) {
	name := "boxtime-test-" + t.Name()
	scope := t.TempDir()
	guard, err := AcquireRunGuard(name, scope)
	require.NoError(t, err)
	assert.Equal(t, guardAddress(name, guardScope(scope)), guard.Address())
	assert.Equal(t, filepath.Clean(scope), guard.Scope())

	_, err = AcquireRunGuard(name, scope)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	require.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())

	again, err := AcquireRunGuard(name, scope)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestAcquireRunGuard_SameDirectorySpelledDifferently(t *testing.T) {
	name := "boxtime-test-" + t.Name()
	scope := t.TempDir()
	guard, err := AcquireRunGuard(name, scope)
	require.NoError(t, err)
	defer guard.Release()

	_, err = AcquireRunGuard(name, filepath.Join(scope, "sub", ".."))
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestRunGuard_NilRelease(t *testing.T) {
	var guard *RunGuard

	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
	assert.Empty(t, guard.Scope())
}

func TestGuardAddress(t *testing.T) {
	tests := []struct {
		name  string
		scope string
	}{
		{name: "no scope", scope: ""},
		{name: "alice", scope: "/home/alice/.config/boxtime"},
		{name: "bob", scope: "/home/bob/.config/boxtime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			address := guardAddress("boxtime", tt.scope)

			assert.Equal(t, address, guardAddress("boxtime", tt.scope))
			assert.Regexp(t, `^127\.0\.0\.1:[23][0-9]{4}$`, address)
		})
	}

	assert.NotEqual(t,
		guardAddress("boxtime", "/home/alice/.config/boxtime"),
		guardAddress("boxtime", "/home/bob/.config/boxtime"))
}
