// Package s3 provides an S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("tables/"),
//	    s3.WithRegion("us-east-1"),
//	)
//	rc, err := blobstore.OpenTable(ctx, store, "acl.txt.zst")
//
// Tables are fetched whole with the aws-sdk-go-v2 download manager, which
// splits large objects into parallel ranged GETs.
package s3
