package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "units.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	hash := HashSource("fn main() {}")
	sum := Summary{
		ContentHash: hash,
		FileName:    "main.vela",
		ErrorCount:  0,
		WarnCount:   1,
		Diagnostics: "warning: unused binding 'x'",
		CachedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.Put(sum))

	got, ok, err := s.Get(hash)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, sum.FileName, got.FileName)
	require.Equal(t, sum.WarnCount, got.WarnCount)
	require.Equal(t, sum.Diagnostics, got.Diagnostics)
}

func TestGetMissingReturnsFalse(t *testing.T) {
	s := openTestStore(t)
	_, ok, err := s.Get(HashSource("never put"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPutOverwritesExistingHash(t *testing.T) {
	s := openTestStore(t)
	hash := HashSource("same source")
	require.NoError(t, s.Put(Summary{ContentHash: hash, FileName: "a.vela", ErrorCount: 1, CachedAt: time.Now()}))
	require.NoError(t, s.Put(Summary{ContentHash: hash, FileName: "a.vela", ErrorCount: 0, CachedAt: time.Now()}))

	got, ok, err := s.Get(hash)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 0, got.ErrorCount)
}

func TestEvict(t *testing.T) {
	s := openTestStore(t)
	hash := HashSource("to be evicted")
	require.NoError(t, s.Put(Summary{ContentHash: hash, FileName: "x.vela", CachedAt: time.Now()}))
	require.NoError(t, s.Evict(hash))

	_, ok, err := s.Get(hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCountReflectsPuts(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Put(Summary{ContentHash: HashSource("1"), FileName: "a.vela", CachedAt: time.Now()}))
	require.NoError(t, s.Put(Summary{ContentHash: HashSource("2"), FileName: "b.vela", CachedAt: time.Now()}))

	n, err := s.Count()
	require.NoError(t, err)
	require.Equal(t, "2", n)
}

func TestHashSourceIsDeterministic(t *testing.T) {
	require.Equal(t, HashSource("abc"), HashSource("abc"))
	require.NotEqual(t, HashSource("abc"), HashSource("abd"))
}
