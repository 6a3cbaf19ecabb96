package blobstore

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const table = "# acl\n10**0*1\n0*\n"

func readAll(t *testing.T, rc io.ReadCloser) string {
	t.Helper()
	defer func() { require.NoError(t, rc.Close()) }()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func zstdBytes(t *testing.T, s string) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll([]byte(s), nil)
}

func lz4Bytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	data := []byte(table)
	s.Put("acl.txt", data)
	data[0] = 'X'

	rc, err := s.Open(ctx, "acl.txt")
	require.NoError(t, err)
	assert.Equal(t, table, readAll(t, rc), "Put copies its input")

	_, err = s.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "v4"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "v4", "acl.txt"), []byte(table), 0o600))

	s := NewLocalStore(dir)

	rc, err := s.Open(ctx, "v4/acl.txt")
	require.NoError(t, err)
	assert.Equal(t, table, readAll(t, rc))

	_, err = s.Open(ctx, "v4/missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Open(ctx, "../etc/passwd")
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Open(cancelled, "v4/acl.txt")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenTable(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Put("acl.txt", []byte(table))
	s.Put("acl.txt.zst", zstdBytes(t, table))
	s.Put("acl.txt.lz4", lz4Bytes(t, table))

	for _, name := range []string{"acl.txt", "acl.txt.zst", "acl.txt.lz4"} {
		t.Run(name, func(t *testing.T) {
			// Twice, so the second zstd open reuses a pooled decoder.
			for range 2 {
				rc, err := OpenTable(ctx, s, name)
				require.NoError(t, err)
				assert.Equal(t, table, readAll(t, rc))
			}
		})
	}

	_, err := OpenTable(ctx, s, "missing.zst")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenTable_Corrupt(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Put("bad.zst", []byte("not zstd at all"))

	rc, err := OpenTable(ctx, s, "bad.zst")
	if err == nil {
		_, err = io.ReadAll(rc)
		_ = rc.Close()
	}
	assert.Error(t, err)
}
