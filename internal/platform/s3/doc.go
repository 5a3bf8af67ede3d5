// Package s3 stores objects in S3-compatible object storage.
//
// It is used by the s3 submit handler to upload form submissions. Any
// endpoint speaking the S3 protocol works; leave the endpoint empty to use
// AWS itself.
package s3
