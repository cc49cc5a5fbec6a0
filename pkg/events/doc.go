/*
Package events is an internal diagnostics bus: a pub-sub Broker that
notifies embedders of operational occurrences (a node added or deleted, a
repeated job firing, the server starting or stopping, a worker job
panicking). This is not the OPC UA client subscription/monitored-item
notification service; there is no MonitoredItem, no sampling interval,
no queueing against a client session, just an in-process channel an
embedder can read from for logging, alerting or a custom UI.
*/
package events
