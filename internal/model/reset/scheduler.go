package reset

import (
	"context"
	"time"

	"github.com/jinzhu/now"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/zap"
	"max.ks1230/expense-bot/internal/entity/expense"
	"max.ks1230/expense-bot/internal/logger"
	"max.ks1230/expense-bot/internal/utils"
)

// lateResetGrace bounds how far past midnight a reset may still run. After
// that the new day's buckets can already hold expenses.
const lateResetGrace = time.Minute

type dayResetter interface {
	ResetDay(ctx context.Context, day expense.Day) error
}

type config interface {
	Location() *time.Location
}

// Scheduler refills every balance at local midnight.
type Scheduler struct {
	resetter dayResetter
	location *time.Location
	clock    utils.Clock
	after    func(d time.Duration) <-chan time.Time
}

func NewScheduler(resetter dayResetter, config config, clock utils.Clock) *Scheduler {
	return &Scheduler{
		resetter: resetter,
		location: config.Location(),
		clock:    clock,
		after:    time.After,
	}
}

// NextMidnight is the start of the day following t in loc.
func NextMidnight(t time.Time, loc *time.Location) time.Time {
	return now.New(t.In(loc)).BeginningOfDay().AddDate(0, 0, 1)
}

func (s *Scheduler) Run(ctx context.Context) {
	logger.Info("Start daily reset scheduler", zap.String("location", s.location.String()))

	var last time.Time
	for ctx.Err() == nil {
		next := NextMidnight(s.clock.Now(), s.location)
		// a timer that fires a little early must not schedule the same midnight twice
		if !next.After(last) {
			next = NextMidnight(last, s.location)
		}
		wait := next.Sub(s.clock.Now())
		logger.Debug("next daily reset", zap.Time("at", next), zap.Duration("in", wait))

		select {
		case <-ctx.Done():
			logger.Info("Stop daily reset scheduler")
			return
		case <-s.after(wait):
			if late := s.clock.Now().Sub(next); late > lateResetGrace {
				logger.Warn("daily reset skipped, timer fired late",
					zap.String("day", string(expense.DayOf(next))),
					zap.Duration("late", late))
			} else {
				s.resetOnce(ctx, expense.DayOf(next))
			}
			last = next
		}
	}
	logger.Info("Stop daily reset scheduler")
}

func (s *Scheduler) resetOnce(ctx context.Context, day expense.Day) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "dailyReset")
	defer span.Finish()
	span.SetTag("day", string(day))

	if err := s.resetter.ResetDay(ctx, day); err != nil {
		ext.Error.Set(span, true)
		logger.Error("daily reset not persisted", zap.Error(err), zap.String("day", string(day)))
		return
	}
	logger.Info("daily reset done", zap.String("day", string(day)))
}
