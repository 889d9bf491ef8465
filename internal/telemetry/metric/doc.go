// Package metric provides Prometheus metrics for nvram.
//
// Metrics include:
//
//   - Storage backend operations by backend, operation and result
//   - Bytes read from and written to storage
//   - Open sessions and session entry counts
//
// nvram is a one-shot tool, so metrics are not served over HTTP. They are
// written in the text exposition format for the node_exporter textfile
// collector (see Registry.WriteTextfile).
package metric
