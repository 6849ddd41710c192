package tracker

import (
	"context"
	"fmt"

	"github.com/2beens/weeklyfit/internal/config"
	"github.com/2beens/weeklyfit/internal/fitness"
	"github.com/2beens/weeklyfit/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

// NewReportCache creates a freecache backed report cache of sizeMB megabytes.
// freecache raises anything below 512KB to 512KB.
func NewReportCache(sizeMB int) *freecache.Cache {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	return freecache.NewCache(sizeMB * 1024 * 1024)
}

// LoadRoster registers a record for every valid user. Invalid users are
// skipped and their errors returned combined; use multierr.Errors to split them.
func LoadRoster(ctx context.Context, registry *Registry, users []config.User) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "tracker.roster.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("users", len(users)))

	for _, u := range users {
		record, recErr := fitness.NewRecord(u.Name, u.Steps, u.Calories, u.StepGoal, u.CalorieGoal)
		if recErr != nil {
			registry.metrics.CounterInvalidRecords.Inc()
			log.Errorf("tracker: invalid record for user [%s]: %s", u.Name, recErr)
			err = multierr.Append(err, fmt.Errorf("user [%s]: %w", u.Name, recErr))
			continue
		}
		registry.AddUser(record)
	}

	log.Debugf("tracker: roster loaded, %d users registered", registry.Len())
	return err
}
