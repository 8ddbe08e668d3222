package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globalaccel/accel"
	"globalaccel/keys"
)

const group = DefaultGroup

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFileStore(dir)
	require.NoError(t, err)

	s.WriteEntry(group, "Print", "Alt+P", accel.WriteFlags{})
	s.WriteEntry(group, "Run", "default(Alt+F2);Meta+R", accel.WriteFlags{Global: true})
	require.NoError(t, s.Sync())

	local, global := s.Paths()
	assert.FileExists(t, local)
	assert.FileExists(t, global)
	assert.NoFileExists(t, local+".tmp")

	again, err := OpenFileStore(dir)
	require.NoError(t, err)
	v, ok := again.ReadEntry(group, "Print")
	require.True(t, ok)
	assert.Equal(t, "Alt+P", v)
	v, ok = again.ReadEntry(group, "Run")
	require.True(t, ok)
	assert.Equal(t, "default(Alt+F2);Meta+R", v)

	_, ok = again.ReadEntry(group, "Missing")
	assert.False(t, ok)
	_, ok = again.ReadEntry("Other", "Print")
	assert.False(t, ok)
}

func TestFileStoreLocalOverridesGlobal(t *testing.T) {
	s := NewFileStore(t.TempDir())
	s.WriteEntry(group, "Print", "Ctrl+P", accel.WriteFlags{Global: true})
	s.WriteEntry(group, "Print", "Alt+P", accel.WriteFlags{})

	v, _ := s.ReadEntry(group, "Print")
	assert.Equal(t, "Alt+P", v)

	// Erasing the local value uncovers the global one.
	s.WriteEntry(group, "Print", "", accel.WriteFlags{})
	v, _ = s.ReadEntry(group, "Print")
	assert.Equal(t, "Ctrl+P", v)
}

func TestFileStoreSyncWithoutChangesWritesNothing(t *testing.T) {
	s := NewFileStore(t.TempDir())
	require.NoError(t, s.Sync())

	local, _ := s.Paths()
	assert.NoFileExists(t, local)

	// Erasing an absent entry is not a change either.
	s.WriteEntry(group, "Print", "", accel.WriteFlags{})
	require.NoError(t, s.Sync())
	assert.NoFileExists(t, local)
}

func TestFileStoreReloadSeesOtherWriters(t *testing.T) {
	dir := t.TempDir()
	a, err := OpenFileStore(dir)
	require.NoError(t, err)
	b, err := OpenFileStore(dir)
	require.NoError(t, err)

	a.WriteEntry(group, "Lock", "Meta+L", accel.WriteFlags{})
	require.NoError(t, a.Sync())

	_, ok := b.ReadEntry(group, "Lock")
	assert.False(t, ok)
	require.NoError(t, b.Reload())
	v, ok := b.ReadEntry(group, "Lock")
	require.True(t, ok)
	assert.Equal(t, "Meta+L", v)
}

func TestFileStoreRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	local, _ := s.Paths()
	require.NoError(t, os.WriteFile(local, []byte("[broken"), 0644))

	assert.Error(t, s.Reload())
}

func TestRegistryPersistsThroughFileStore(t *testing.T) {
	dir := t.TempDir()
	build := func() *accel.Registry {
		r := accel.NewRegistry()
		r.InsertAction("Print", "", keys.MustParseSet("Ctrl+P"), keys.MustParseSet("Ctrl+P"), nil, true, true)
		r.InsertAction("Run", "", keys.MustParseSet("Alt+F2"), keys.MustParseSet("Alt+F2"), nil, true, true)
		return r
	}

	r := build()
	r.Action("Print").SetShortcuts(keys.MustParseSet("Meta+P;Ctrl+P"))
	r.Action("Run").SetShortcuts(nil)

	s, err := OpenFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, r.WriteAll(s, group, false, false))

	loaded, err := OpenFileStore(dir)
	require.NoError(t, err)
	fresh := build()
	fresh.ReadAll(loaded, group)

	assert.Equal(t, "Meta+P;Ctrl+P", fresh.Action("Print").Shortcuts().String())
	assert.True(t, fresh.Action("Run").Shortcuts().IsEmpty())

	// Back to default: the stale entry is erased from the file.
	fresh.Action("Print").SetShortcuts(keys.MustParseSet("Ctrl+P"))
	require.NoError(t, fresh.WriteAll(loaded, group, false, false))
	final, err := OpenFileStore(dir)
	require.NoError(t, err)
	_, ok := final.ReadEntry(group, "Print")
	assert.False(t, ok)
}

func TestResetOverridesGlobalEntry(t *testing.T) {
	dir := t.TempDir()
	globals := "[\"" + group + "\"]\nPrint = \"Alt+P\"\nRun = \"Alt+R\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, GlobalFileName), []byte(globals), 0644))

	build := func() *accel.Registry {
		r := accel.NewRegistry()
		for name, def := range map[string]string{"Print": "Ctrl+P", "Run": "Alt+F2", "Lock": "Meta+L"} {
			r.InsertAction(name, "", keys.MustParseSet(def), keys.MustParseSet(def), nil, true, true)
		}
		return r
	}

	s, err := OpenFileStore(dir)
	require.NoError(t, err)
	r := build()
	r.ReadAll(s, group)
	require.Equal(t, "Alt+P", r.Action("Print").Shortcuts().String())

	printAction := r.Action("Print")
	printAction.SetShortcuts(printAction.EffectiveDefaults())
	r.Action("Lock").SetShortcuts(keys.MustParseSet("Meta+K"))
	require.NoError(t, r.WriteAll(s, group, false, false))

	loaded, err := OpenFileStore(dir)
	require.NoError(t, err)
	v, ok := loaded.ReadScope(group, "Print", accel.WriteFlags{})
	require.True(t, ok)
	assert.Equal(t, "default(Ctrl+P)", v)
	_, ok = loaded.ReadScope(group, "Run", accel.WriteFlags{})
	assert.False(t, ok, "inherited global values stay out of the local file")

	fresh := build()
	fresh.ReadAll(loaded, group)
	assert.Equal(t, "Ctrl+P", fresh.Action("Print").Shortcuts().String())
	assert.Equal(t, "Alt+R", fresh.Action("Run").Shortcuts().String())
	assert.Equal(t, "Meta+K", fresh.Action("Lock").Shortcuts().String())

	// Matching the global value again drops the local override.
	fresh.Action("Print").SetShortcuts(keys.MustParseSet("Alt+P"))
	require.NoError(t, fresh.WriteAll(loaded, group, false, false))
	_, ok = loaded.ReadScope(group, "Print", accel.WriteFlags{})
	assert.False(t, ok)
}

func TestReadBelow(t *testing.T) {
	s := NewFileStore(t.TempDir())
	s.WriteEntry(group, "Print", "Ctrl+P", accel.WriteFlags{Global: true})
	s.WriteEntry(group, "Print", "Alt+P", accel.WriteFlags{})

	v, ok := s.ReadBelow(group, "Print", accel.WriteFlags{})
	require.True(t, ok)
	assert.Equal(t, "Ctrl+P", v)
	_, ok = s.ReadBelow(group, "Print", accel.WriteFlags{Global: true})
	assert.False(t, ok)

	v, _ = s.ReadScope(group, "Print", accel.WriteFlags{Global: true})
	assert.Equal(t, "Ctrl+P", v)
}
