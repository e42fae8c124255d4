// Package enrich implements the second pipeline stage: rating each organized
// resource for evergreen quality and enriching the keepers with a summary,
// documentation, and tags.
//
// The runner processes clusters strictly in input order, one external call in
// flight at a time. External calls use a bounded fixed-delay retry policy.
// Progress is persisted to a checkpoint after every few clusters and once
// more at the end of the run, so an interrupted run resumes without
// reprocessing completed resources. A corrupt checkpoint is treated as
// absent, not fatal.
package enrich
