package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestGetConfigDirHonoursEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	got, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestGetLogDir(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())

	dir, err := GetLogDir(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, dir)

	dir, err = GetLogDir(&LogConfig{LogsEnabled: false})
	require.NoError(t, err)
	assert.Equal(t, os.TempDir(), dir)

	dir, err = GetLogDir(&LogConfig{LogsEnabled: true, LogsDir: "/custom/log/dir"})
	require.NoError(t, err)
	assert.Equal(t, "/custom/log/dir", dir)

	dir, err = GetLogDir(&LogConfig{LogsEnabled: true})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(dir, string(filepath.Separator)+"logs"), dir)
	assert.DirExists(t, dir)
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())

	path, err := GetLogFilePath(&LogConfig{LogsEnabled: true})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "globalaccel.log"), path)

	path, err = GetLogFilePath(&LogConfig{LogsEnabled: true, LogsDir: "/custom/log/dir"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/log/dir", "globalaccel.log"), path)
}

func TestCreateRotatingWriter(t *testing.T) {
	dir := t.TempDir()

	w := createRotatingWriter(filepath.Join(dir, "plain.log"), nil)
	require.NotNil(t, w)
	f, ok := w.(*os.File)
	require.True(t, ok)
	require.NoError(t, f.Close())

	w = createRotatingWriter(filepath.Join(dir, "rotated.log"), &LogConfig{LogMaxSize: 10, LogMaxFiles: 5, LogMaxAge: 30})
	lj, ok := w.(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, 10, lj.MaxSize)
	assert.Equal(t, 5, lj.MaxBackups)
}

func TestInitializeWritesToFile(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(useStderr)

	InitializeWithConfig(true, &LogConfig{LogsEnabled: true, LogsDir: dir, Quiet: true})
	WarningLog.Printf("grab failed for %s", "Ctrl+P")
	Close()

	data, err := os.ReadFile(filepath.Join(dir, "globalaccel.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DAEMON] WARNING:")
	assert.Contains(t, string(data), "grab failed for Ctrl+P")
}

func TestEvery(t *testing.T) {
	e := NewEvery(time.Hour)
	assert.True(t, e.ShouldLog())
	assert.False(t, e.ShouldLog())

	fast := NewEvery(time.Millisecond)
	assert.True(t, fast.ShouldLog())
	assert.Eventually(t, fast.ShouldLog, time.Second, 5*time.Millisecond)
}
