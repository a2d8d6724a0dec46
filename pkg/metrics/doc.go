// Package metrics exposes API activity in the Prometheus text format
// (text/plain; version=0.0.4).
//
// Supported metric types:
//   - Counter: monotonically increasing value (requests, rows generated)
//   - Gauge: value that can go up or down (fields in the stored schema)
//   - Histogram: distribution of observed values (request latency)
//
// Every value is safe for concurrent use. A Set bundles the metrics the
// HTTP API records; each server owns its own Set, so tests never share state.
package metrics
