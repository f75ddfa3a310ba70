// Package storage holds document blobs outside the relational datastore.
//
// A BlobStore addresses blobs by generated key only (see NewBlobKey); there is
// no content addressing or deduplication. Three backends are provided:
//
//   - FileStore: a directory on local disk (default)
//   - MinIOStore: an S3-compatible bucket through minio-go
//   - GCSStore: a Google Cloud Storage bucket
//
// Every backend reports a missing blob as ErrBlobNotFound.
package storage
