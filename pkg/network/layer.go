package network

import (
	"github.com/rs/zerolog"

	"github.com/cuemby/opcua-core/pkg/job"
)

// NetworkLayer is the server runtime's connection to the outside world
//. The main loop polls it once per iteration with GetJobs, tears it
// down with Stop at shutdown, and finally releases its resources with
// DeleteMembers. Implementations must honor the single-consumer contract
// documented in the package comment: GetJobs, Stop and DeleteMembers are
// never called concurrently with each other on the same instance.
type NetworkLayer interface {
	// DiscoveryUrl is the endpoint URL this layer advertises, used to build
	// the server's ApplicationDescription.
	DiscoveryUrl() string

	// Start begins accepting connections, logging through logger.
	Start(logger zerolog.Logger) error

	// GetJobs fills out with up to len(out) ready jobs, waiting up to
	// timeoutMicros microseconds for at least one to become available if
	// none are ready yet. timeoutMicros == 0 means "don't block; return
	// whatever's ready right now", which is how the loop polls every layer
	// after the first one in a single iteration. It returns the
	// number of entries written into out.
	GetJobs(out []job.Job, timeoutMicros int64) (int, error)

	// Stop closes every connection this layer owns, writing a
	// KindDetachConnection job into out for each one so the loop can run
	// ordinary connection-teardown logic on its way out, and returns the
	// number of entries written.
	Stop(out []job.Job) (int, error)

	// DeleteMembers releases whatever Start allocated. Called once, after
	// Stop, during the final phase of shutdown.
	DeleteMembers()
}
