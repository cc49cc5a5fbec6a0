/*
Package metrics exposes Prometheus instrumentation for the server runtime
and node store: job dispatch counters, repeated-job fire counters, worker
queue depth, node-store size and operation latency. It is operational
visibility for the embedder, not the OPC UA subscription/monitored-item
notification engine clients use; that stays out of scope here.
*/
package metrics
