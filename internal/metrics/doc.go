// Package metrics exposes batch measurements as Prometheus metrics and
// reads runtime memory statistics for the execution summary.
package metrics
