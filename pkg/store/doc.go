// Package store persists edited documents.
//
// A document is a named value.Value. Names ending in .yaml or .yml are
// stored as YAML; every other name is stored as compact JSON with a .json
// extension added when the name has none.
//
// Two implementations are provided:
//
//   - BucketStore keeps documents in a gocloud.dev/blob bucket. Open
//     creates one for file:// and mem:// URLs.
//   - S3Store talks to Amazon S3 (or a compatible service) through the
//     AWS SDK. Open creates one for s3://bucket/prefix URLs.
//
// Loading a missing document fails with an error matching ErrNotFound.
// LoadOrNull turns that case into a null value, which is what an editor
// mounted on a fresh document starts from.
package store
