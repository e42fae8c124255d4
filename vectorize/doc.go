// Package vectorize implements the third pipeline stage: converting enriched
// web resources into embedded, searchable rows.
//
// Each resource becomes one text chunk (title, summary, and an optional
// documentation block). Chunks are embedded in fixed-size batches and the
// resulting rows are buffered and inserted in fixed-size sub-batches with a
// short pacing delay. The upload is best effort and append-only: insert
// failures are logged and skipped, and re-running the stage never duplicates
// rows because row IDs are content hashes.
package vectorize
