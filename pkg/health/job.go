package health

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/cuemby/opcua-core/pkg/job"
	"github.com/cuemby/opcua-core/pkg/log"
	"github.com/cuemby/opcua-core/pkg/types"
)

// Schedule registers a repeated job on scheduler that runs checker every
// interval. A violation is logged and, since a broken internal invariant is
// fatal, reported to onFatal so the caller (ordinarily
// server.Server.ReportFatal) can unwind the main loop.
func Schedule(scheduler *job.RepeatedJobScheduler, checker *Checker, interval time.Duration, onFatal func(error)) error {
	logger := log.WithComponent("health")
	_, err := scheduler.AddRepeatedJob(job.Job{
		Run: func() { runOnce(checker, logger, onFatal) },
	}, interval)
	return err
}

func runOnce(checker *Checker, logger zerolog.Logger, onFatal func(error)) {
	result := checker.Check()
	if result.Healthy {
		logger.Debug().Dur("duration", result.Duration).Msg("node store invariant check passed")
		return
	}
	logger.Error().Str("violation", result.Message).Msg("node store invariant broken")
	if onFatal != nil {
		onFatal(types.NewError(types.KindInternalInvariant, "health.invariantCheck"))
	}
}
