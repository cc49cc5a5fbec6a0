/*
Package log provides structured logging shared by every package in this
module, wrapping zerolog so that the server's logger is a shared,
append-only sink with serialized delivery of complete records, without
each package rolling its own.

	Init(Config) sets the process-wide Logger.
	WithComponent/WithNodeID/WithChannelID derive child loggers that tag
	every record with the caller's identity, the way pkg/server tags the
	loop thread.

The core never logs through fmt.Print*; anything worth recording goes
through a zerolog.Logger obtained from this package.
*/
package log
