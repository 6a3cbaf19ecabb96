package blobstore

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ZSTD decoder pool; decoders are reset onto each new table.
var zstdDecoderPool sync.Pool

func getZstdDecoder(r io.Reader) (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		dec := v.(*zstd.Decoder)
		if err := dec.Reset(r); err != nil {
			return nil, err
		}
		return dec, nil
	}
	return zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
}

func putZstdDecoder(dec *zstd.Decoder) {
	// Drop the reference to the source before pooling.
	if dec.Reset(nil) == nil {
		zstdDecoderPool.Put(dec)
	}
}

// OpenTable opens name from store and decompresses it according to its
// extension: ".zst" uses zstd, ".lz4" uses LZ4 frames. Other names are
// returned as stored.
func OpenTable(ctx context.Context, store Store, name string) (io.ReadCloser, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(name, ".zst"):
		dec, err := getZstdDecoder(rc)
		if err != nil {
			_ = rc.Close()
			return nil, err
		}
		return &decodedTable{Reader: dec, src: rc, release: func() { putZstdDecoder(dec) }}, nil
	case strings.HasSuffix(name, ".lz4"):
		return &decodedTable{Reader: lz4.NewReader(rc), src: rc}, nil
	default:
		return rc, nil
	}
}

// decodedTable reads decompressed data and closes the compressed source.
type decodedTable struct {
	io.Reader
	src     io.Closer
	release func()
	once    sync.Once
}

func (t *decodedTable) Close() error {
	err := t.src.Close()
	t.once.Do(func() {
		if t.release != nil {
			t.release()
		}
	})
	return err
}
