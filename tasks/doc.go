// Package tasks schedules ingestion runs as background tasks.
//
// A Scheduler runs dataset ingestions on a worker pool, admitting at
// most one active task per dataset so re-ingestion of a file can never
// race an in-flight run for the same identifier. Each Task exposes its
// status, an incremental processed-files snapshot safe to poll while
// the run is in flight, and the final ingestion record once done.
package tasks
