// Package orchestration drives a batch of dyadic sumset counts over
// n = 1..N. It partitions the range into shards, runs them on a bounded
// worker pool, merges the per-shard batches into rows ordered by n, and
// reports progress through the ProgressReporter interface so that it never
// depends on presentation code.
package orchestration
