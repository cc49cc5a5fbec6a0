/*
Package worker implements the server runtime's optional worker pool: a
fixed number of goroutines consuming jobs the main loop marked dispatchable
instead of running them inline. DetachConnection jobs and repeated
jobs are never sent here; the loop runs those itself regardless of whether
a pool is configured.
*/
package worker
