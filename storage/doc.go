// Package storage defines the persistence interfaces for resource rows.
//
// The embedding pipeline appends rows, the reembedding tool rewrites their
// vectors, and search reads them back by vector similarity. Implementations
// must be safe for concurrent use.
package storage
