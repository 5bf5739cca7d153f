package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchCommand_Flags(t *testing.T) {
	cmd := NewWatchCommand(&globalOptions{})
	assert.Equal(t, "watch", cmd.Use)
	assert.NotEmpty(t, cmd.Long)
}

func TestWatchCommand_InvalidConfig(t *testing.T) {
	_, _, err := execute(t, "watch", "--config", filepath.Join(t.TempDir(), "missing.yml"))
	var cfgErr *configError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRunWatch_RegeneratesOnChange(t *testing.T) {
	path := newProject(t)
	dir := filepath.Dir(path)
	p, err := loadProject(&globalOptions{configPath: path})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &lockedBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, out, p, zaptest.NewLogger(t))
	}()

	source := filepath.Join(dir, "out", "sources", "com", "example", "ContextBootstrapInitializer.java")
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Press Ctrl+C to stop")
	}, 5*time.Second, 20*time.Millisecond)

	initial, err := os.ReadFile(source)
	require.NoError(t, err)
	require.Contains(t, string(initial), `"restTemplate"`)

	updated := strings.Replace(testSnapshot,
		"  - name: restTemplate\n    class: org.springframework.web.client.RestTemplate\n", "", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "snapshot.yml"), []byte(updated), 0644))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Generated 5 bean(s)")
	}, 5*time.Second, 20*time.Millisecond)

	regenerated, err := os.ReadFile(source)
	require.NoError(t, err)
	assert.NotContains(t, string(regenerated), `"restTemplate"`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.Contains(t, out.String(), "Stopped watching")
	assert.Contains(t, out.String(), "Generated 6 bean(s)")
}
