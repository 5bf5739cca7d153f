package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCache_SetAndGet(t *testing.T) {
	rc := NewRunCache()
	_, ok := rc.Get("build/aot")
	assert.False(t, ok)
	assert.False(t, rc.UpToDate("build/aot", "abc"))

	rc.Set(&Run{ID: "1", Fingerprint: "abc", OutputDir: "build/aot", Files: []string{"a.java"}})

	run, ok := rc.Get("build/aot")
	require.True(t, ok)
	assert.Equal(t, "1", run.ID)
	assert.False(t, run.GeneratedAt.IsZero())
	assert.True(t, rc.UpToDate("build/aot", "abc"))
	assert.False(t, rc.UpToDate("build/aot", "def"))
	assert.False(t, rc.UpToDate("build/other", "abc"))

	rc.Set(&Run{ID: "2", Fingerprint: "def", OutputDir: "build/aot"})
	assert.Equal(t, 1, rc.Size())
	assert.True(t, rc.UpToDate("build/aot", "def"))
}

func TestRunCache_Invalidate(t *testing.T) {
	rc := NewRunCache()
	rc.Set(&Run{Fingerprint: "abc", OutputDir: "one"})
	rc.Set(&Run{Fingerprint: "abc", OutputDir: "two"})

	rc.Invalidate("one")
	assert.Equal(t, 1, rc.Size())
	assert.False(t, rc.UpToDate("one", "abc"))

	rc.InvalidateAll()
	assert.Equal(t, 0, rc.Size())
}

func TestRunCache_Prune(t *testing.T) {
	rc := NewRunCache()
	rc.Set(&Run{OutputDir: "old", GeneratedAt: time.Now().Add(-2 * time.Hour)})
	rc.Set(&Run{OutputDir: "recent"})

	assert.Equal(t, 1, rc.Prune(time.Hour))
	_, ok := rc.Get("recent")
	assert.True(t, ok)
}

func TestRunCache_Concurrency(t *testing.T) {
	rc := NewRunCache()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rc.Set(&Run{Fingerprint: "abc", OutputDir: "out"})
			rc.UpToDate("out", "abc")
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, rc.Size())
}
