package command

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/data-respons-solutions/nvram/internal/core/domain"
)

type testEnv struct {
	dir     string
	systemA string
	userA   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := t.TempDir()
	e := &testEnv{
		dir:     dir,
		systemA: filepath.Join(dir, "system_a"),
		userA:   filepath.Join(dir, "user_a"),
	}
	t.Setenv("NVRAM_CONFIG", "")
	t.Setenv("NVRAM_INTERFACE", "file")
	t.Setenv("NVRAM_FILE_SYSTEM_A", e.systemA)
	t.Setenv("NVRAM_FILE_USER_A", e.userA)
	t.Setenv("NVRAM_FILE_SYSTEM_B", "")
	t.Setenv("NVRAM_FILE_USER_B", "")
	t.Cleanup(func() {
		assert.NoFileExists(t, e.systemA+".tmp")
		assert.NoFileExists(t, e.userA+".tmp")
	})
	return e
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := App()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"nvram"}, args...))
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "nvram %s", strings.Join(args, " "))
	return out
}

func parseList(out string) map[string]string {
	m := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if k, v, ok := strings.Cut(line, "="); ok {
			m[k] = v
		}
	}
	return m
}

func TestApp(t *testing.T) {
	app := App()
	assert.Equal(t, "nvram", app.Name)

	names := make(map[string]bool)
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, name := range []string{"list", "get", "set", "delete", "watch", "version", "config"} {
		assert.True(t, names[name], "missing command %s", name)
	}
}

func TestSetGet(t *testing.T) {
	e := newTestEnv(t)

	mustRun(t, "set", "var1", "val1")
	assert.Equal(t, "val1\n", mustRun(t, "get", "var1"))
	assert.NoFileExists(t, e.systemA, "user commands must not touch the system section")
}

func TestSetGet_Multiple(t *testing.T) {
	newTestEnv(t)

	want := make(map[string]string)
	for i := 0; i < 10; i++ {
		key, val := "key"+string(rune('0'+i)), "val"+string(rune('0'+i))
		want[key] = val
		mustRun(t, "set", key, val)
	}
	for key, val := range want {
		assert.Equal(t, val+"\n", mustRun(t, "get", key))
	}
	assert.Equal(t, want, parseList(mustRun(t, "list")))
}

func TestSet_Pairs(t *testing.T) {
	e := newTestEnv(t)

	mustRun(t, "set", "b", "2", "a", "1")
	data, err := os.ReadFile(e.userA)
	require.NoError(t, err)
	assert.Equal(t, "a=1\nb=2\n", string(data))
}

func TestGet_Missing(t *testing.T) {
	newTestEnv(t)

	_, err := run(t, "get", "key1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_Empty(t *testing.T) {
	e := newTestEnv(t)

	assert.Equal(t, "", mustRun(t, "list"))
	assert.NoFileExists(t, e.userA)
}

func TestSet_Invalid(t *testing.T) {
	e := newTestEnv(t)

	_, err := run(t, "set", "odd")
	assert.Error(t, err)

	_, err = run(t, "set", "a=b", "v")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = run(t, "set", " key", "v")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = run(t, "set", "ok", "1", "bad", "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	assert.NoFileExists(t, e.userA, "failed set must not commit")
}

func TestErrorMessage(t *testing.T) {
	newTestEnv(t)

	_, err := run(t, "get", "key1")
	require.Error(t, err)
	assert.Equal(t, "error [NV-KEY-4040]: key not found: key1", ErrorMessage(err))

	_, err = run(t, "set", "odd")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(ErrorMessage(err), "error: set: "), ErrorMessage(err))
}

func TestDelete(t *testing.T) {
	e := newTestEnv(t)
	mustRun(t, "set", "a", "1", "b", "2")

	mustRun(t, "delete", "a")
	assert.Equal(t, map[string]string{"b": "2"}, parseList(mustRun(t, "list")))

	_, err := run(t, "delete", "b", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	data, err := os.ReadFile(e.userA)
	require.NoError(t, err)
	assert.Equal(t, "b=2\n", string(data), "failed delete must not commit")
}

func TestSystemSection(t *testing.T) {
	e := newTestEnv(t)

	mustRun(t, "--sys", "set", "serial", "DR-0042")
	assert.FileExists(t, e.systemA)
	assert.NoFileExists(t, e.userA)

	assert.Equal(t, "DR-0042\n", mustRun(t, "--sys", "get", "serial"))
	_, err := run(t, "get", "serial")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSectionB_Rejected(t *testing.T) {
	e := newTestEnv(t)
	t.Setenv("NVRAM_FILE_USER_B", filepath.Join(e.dir, "user_b"))

	_, err := run(t, "set", "a", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.NoFileExists(t, e.userA)
}

func TestList_Corrupt(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, os.WriteFile(e.userA, []byte("a=1\ngarbage\n"), 0o644))

	_, err := run(t, "list")
	assert.ErrorIs(t, err, domain.ErrCorruptData)
}

func TestOutputFormats(t *testing.T) {
	newTestEnv(t)
	mustRun(t, "set", "hostname", "board-7")

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "-o", "json", "list")), &got))
	assert.Equal(t, map[string]string{"hostname": "board-7"}, got)

	assert.Equal(t, "hostname: board-7\n", mustRun(t, "-o", "yaml", "get", "hostname"))

	_, err := run(t, "-o", "xml", "list")
	assert.Error(t, err)
}

func TestMetricsTextfile(t *testing.T) {
	e := newTestEnv(t)
	path := filepath.Join(e.dir, "nvram.prom")

	mustRun(t, "--metrics-textfile", path, "set", "a", "1")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `nvram_storage_operations_total{backend="file",op="write",result="ok"} 1`)
	assert.Contains(t, string(data), "nvram_sessions_open 0")
}

func TestConfigCommand(t *testing.T) {
	e := newTestEnv(t)

	out := mustRun(t, "-i", "file", "config")
	assert.Contains(t, out, "interface: file\n")
	assert.Contains(t, out, e.userA)
}

func TestVersionCommand(t *testing.T) {
	newTestEnv(t)

	out := mustRun(t, "version")
	assert.True(t, strings.HasPrefix(out, "dev"), out)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "-o", "json", "version")), &info))
	assert.Contains(t, info, "go_version")
}

func TestUnknownInterface(t *testing.T) {
	newTestEnv(t)

	_, err := run(t, "-i", "floppy", "list")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

// syncBuffer is written by the watch goroutine while the test polls it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	e := newTestEnv(t)
	mustRun(t, "set", "a", "1")

	out := &syncBuffer{}
	app := App()
	app.Writer = out
	app.ErrWriter = &syncBuffer{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- app.RunContext(ctx, []string{"nvram", "watch"}) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "a=1\n")
	}, 2*time.Second, 10*time.Millisecond)

	tmp := e.userA + ".new"
	require.NoError(t, os.WriteFile(tmp, []byte("a=1\nb=2\n"), 0o644))
	require.NoError(t, os.Rename(tmp, e.userA))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "b=2\n")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestWatch_RequiresFileInterface(t *testing.T) {
	newTestEnv(t)

	_, err := run(t, "-i", "mtd", "watch")
	assert.Error(t, err)
}
