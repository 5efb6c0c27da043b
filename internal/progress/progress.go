// Package progress defines the progress notifications emitted by the batch
// driver. Notifications are observational and never influence results.
package progress

import "time"

// ProgressUpdate is sent once per completed shard.
type ProgressUpdate struct {
	// ShardIndex is the index of the shard that just completed.
	ShardIndex int
	// Completed is the number of shards completed so far, this one included.
	Completed int
	// Total is the number of shards in the batch.
	Total int
	// Rows is the number of rows the shard produced.
	Rows int
	// Elapsed is the time since the batch started.
	Elapsed time.Duration
}

// Fraction returns Completed/Total in [0, 1].
func (u ProgressUpdate) Fraction() float64 {
	if u.Total <= 0 {
		return 0
	}
	return float64(u.Completed) / float64(u.Total)
}

// Percent returns the integer percentage of completed shards.
func (u ProgressUpdate) Percent() int {
	if u.Total <= 0 {
		return 0
	}
	return 100 * u.Completed / u.Total
}
