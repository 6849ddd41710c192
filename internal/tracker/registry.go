package tracker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/2beens/weeklyfit/internal/fitness"
	"github.com/2beens/weeklyfit/internal/metrics"
	"github.com/2beens/weeklyfit/internal/telemetry/tracing"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var ErrUserNotFound = errors.New("user not found")

// ReportCache keeps rendered reports keyed by registry position.
// *freecache.Cache satisfies it.
type ReportCache interface {
	Get(key []byte) (value []byte, err error)
	Set(key, value []byte, expireSeconds int) error
}

type NewRegistryParams struct {
	// optional
	Metrics *metrics.Manager
	// optional, nil disables caching
	Cache ReportCache
}

// Registry is an append-only, insertion-ordered collection of fitness records.
// Names are not unique; lookups return the first match.
type Registry struct {
	users   []*fitness.Record
	metrics *metrics.Manager
	cache   ReportCache
}

func NewRegistry(params NewRegistryParams) *Registry {
	m := params.Metrics
	if m == nil {
		m = metrics.NewManager("weeklyfit", "tracker", prometheus.NewRegistry())
	}
	return &Registry{
		users:   []*fitness.Record{},
		metrics: m,
		cache:   params.Cache,
	}
}

func (r *Registry) AddUser(record *fitness.Record) {
	if record == nil {
		log.Warnln("tracker: ignoring nil fitness record")
		return
	}

	r.users = append(r.users, record)

	onTrack := record.OnTrack()
	r.metrics.CounterUsersRegistered.WithLabelValues(fmt.Sprintf("%t", onTrack)).Inc()
	if onTrack {
		r.metrics.GaugeUsersOnTrack.Inc()
	}
	log.Debugf("tracker: user [%s] added, users count: %d", record.Name(), len(r.users))
}

// GetUserByName returns the first record whose name matches, ignoring case.
func (r *Registry) GetUserByName(name string) (*fitness.Record, bool) {
	_, user, found := r.lookup(name)
	return user, found
}

// lookup returns the position of the first matching record as well.
func (r *Registry) lookup(name string) (int, *fitness.Record, bool) {
	for i, u := range r.users {
		if strings.EqualFold(u.Name(), name) {
			return i, u, true
		}
	}
	return -1, nil, false
}

// Users returns the registered records in insertion order.
func (r *Registry) Users() []*fitness.Record {
	return append([]*fitness.Record(nil), r.users...)
}

func (r *Registry) Len() int {
	return len(r.users)
}

// Report builds the structured weekly report for the named user.
func (r *Registry) Report(ctx context.Context, name string) (_ fitness.Report, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "tracker.registry.report")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user", name))

	user, found := r.GetUserByName(name)
	if !found {
		return fitness.Report{}, fmt.Errorf("%w: %s", ErrUserNotFound, name)
	}
	return user.BuildReport(), nil
}

// GenerateUserReport returns the rendered weekly report for the named user,
// or a not-found notice. It never fails.
// The cache is only consulted after a match and is keyed by the matched
// record's position, which never changes in an append-only registry.
func (r *Registry) GenerateUserReport(ctx context.Context, name string) string {
	_, span := tracing.GlobalTracer.Start(ctx, "tracker.registry.generate-user-report")
	defer span.End()
	span.SetAttributes(attribute.String("user", name))

	idx, user, found := r.lookup(name)
	if !found {
		log.Infof("tracker: report requested for unknown user [%s]", name)
		r.metrics.CounterReports.WithLabelValues(metrics.OutcomeNotFound).Inc()
		span.SetAttributes(attribute.Bool("found", false))
		return NotFoundNotice(name)
	}
	span.SetAttributes(attribute.Bool("found", true))
	r.metrics.CounterReports.WithLabelValues(metrics.OutcomeFound).Inc()

	cacheKey := reportCacheKey(idx)
	if r.cache != nil {
		if cached, err := r.cache.Get(cacheKey); err == nil {
			r.metrics.CounterReportCacheHits.Inc()
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return string(cached)
		}
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))

	rendered := user.BuildReport().String()
	if r.cache != nil {
		if err := r.cache.Set(cacheKey, []byte(rendered), 0); err != nil {
			log.Warnf("tracker: cache report for [%s]: %s", name, err)
		}
	}

	return rendered
}

func reportCacheKey(idx int) []byte {
	return []byte("user:" + strconv.Itoa(idx))
}

func NotFoundNotice(name string) string {
	return fmt.Sprintf("User '%s' not found.\n", name)
}
