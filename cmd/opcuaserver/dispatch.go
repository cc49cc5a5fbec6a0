package main

import (
	"github.com/rs/zerolog"

	"github.com/cuemby/opcua-core/pkg/job"
	"github.com/cuemby/opcua-core/pkg/service"
)

// decodedCall is the shape cmd/opcuaserver expects to find in a
// KindDecodedRequest job's Request field: a request that already knows how
// to run itself against svc. The core has no codec of its own, so whatever
// sits upstream of this demo (a real binary codec, a test harness, an
// in-process caller) is responsible for producing one of these, not this
// package.
type decodedCall func(svc *service.Service)

// newDispatcher returns the function wired to server.Server.Dispatch: it
// runs a decodedCall job against svc, and otherwise just logs, since a raw
// KindBinaryMessage has no decoder in this demo and KindDetachConnection /
// KindDelayedMethodCall need no action beyond bookkeeping here.
func newDispatcher(svc *service.Service, logger zerolog.Logger) func(job.Job) {
	return func(j job.Job) {
		switch j.Kind {
		case job.KindDecodedRequest:
			call, ok := j.Request.(decodedCall)
			if !ok {
				logger.Warn().Uint32("channel_id", j.ChannelId).Msg("decoded request job carried an unrecognized Request type")
				return
			}
			call(svc)
		case job.KindBinaryMessage:
			logger.Debug().Uint32("channel_id", j.ChannelId).Int("bytes", len(j.Data)).
				Msg("received raw frame; this demo wires no binary codec, only pkg/service's decoded-request surface")
		case job.KindDetachConnection:
			logger.Info().Uint32("channel_id", j.ChannelId).Msg("connection detached")
		case job.KindDelayedMethodCall:
			logger.Info().Uint32("channel_id", j.ChannelId).Str("method", j.MethodId.String()).
				Msg("delayed method call re-entered")
		}
	}
}
