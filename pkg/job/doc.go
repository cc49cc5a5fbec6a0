/*
Package job implements the job model (C4): the Job tagged variant dispatched
by the server's main loop, and RepeatedJobScheduler, the structure backing
periodically re-firing work (sampling, self-checks, anything a caller wants
run on an interval rather than once).

RepeatedJobScheduler intentionally runs no goroutine of its own. The server
main loop (pkg/server) is the single thread permitted to decide when work
happens; this package only holds the schedule and answers "what's due" and
"when's next" when asked. There is no internal ticker; the loop itself is
the clock.
*/
package job
