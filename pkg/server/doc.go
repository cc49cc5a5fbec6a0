/*
Package server implements the core's runtime: a single main loop
that merges timed work (repeated jobs) with network work (jobs collected
from every registered network layer) and dispatches each job either inline
on the loop thread or to the optional worker pool.

The loop owns exactly one goroutine. Network layers, the repeated-job
scheduler and the worker pool are all driven from that one thread; nothing
in this package starts a goroutine of its own beyond the loop itself and
whatever the worker pool spawns.
*/
package server
