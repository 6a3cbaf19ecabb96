// Package blobstore provides read-only access to rule tables kept on local
// disk, in memory or in object storage.
//
// Store is the interface every backend implements. Implementations must be
// safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem rooted at a directory
//   - MemoryStore: in-memory tables, mainly for tests
//   - s3.Store: Amazon S3 via the aws-sdk-go-v2 download manager
//
// # Compression
//
// OpenTable wraps Open and decompresses by extension: ".zst" tables are
// read with zstd, ".lz4" tables with LZ4 frames, everything else as is.
//
//	rc, err := blobstore.OpenTable(ctx, blobstore.NewLocalStore("./tables"), "acl.txt.zst")
//	if err != nil { ... }
//	defer rc.Close()
//	filters, err := ruletable.Read(rc)
package blobstore
