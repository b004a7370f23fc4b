// Package metrics records what each sweep computed in a Prometheus registry
// that can be dumped in node_exporter textfile format, plus runtime memory
// snapshots for verbose output.
package metrics
