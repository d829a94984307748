// Package storage stages uploaded audio files. Backends register a factory
// and are selected by Config.Provider:
//
//   - storage/local: local filesystem on afero (default, under the OS temp dir)
//   - storage/s3: Amazon S3 and S3-compatible storage
//
// Example configuration:
//
//	storage:
//	  provider: "s3"
//	  bucket: "audioviz-uploads"
//	  region: "us-east-1"
package storage
