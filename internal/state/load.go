package state

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/paddock/internal/f1api"
	"github.com/five82/paddock/internal/logging"
)

// LoadHome fetches every home slot concurrently, one goroutine per slot.
// Failures are recorded in their own slot and logged; they never touch the
// other slots.
func LoadHome(ctx context.Context, f f1api.HomeFetcher, logger *zap.Logger) Home {
	logger = logging.OrNop(logger)
	var (
		home Home
		wg   sync.WaitGroup
	)
	run(&wg, logger, SlotDriverStandings, &home.DriverStandings, func() ([]f1api.DriverStanding, error) {
		return f.FetchDriverStandings(ctx)
	})
	run(&wg, logger, SlotConstructorStandings, &home.ConstructorStandings, func() ([]f1api.ConstructorStanding, error) {
		return f.FetchConstructorStandings(ctx)
	})
	run(&wg, logger, SlotNextEvent, &home.NextEvent, func() (f1api.Race, error) {
		return f.FetchNextEvent(ctx)
	})
	run(&wg, logger, SlotTeamDrivers, &home.TeamDrivers, func() ([]f1api.TeamDrivers, error) {
		return f.FetchTeamDrivers(ctx)
	})
	run(&wg, logger, SlotDriverStats, &home.DriverStats, func() ([]f1api.DriverStats, error) {
		return f.FetchDriverStats(ctx)
	})
	run(&wg, logger, SlotConstructorStats, &home.ConstructorStats, func() ([]f1api.ConstructorStats, error) {
		return f.FetchConstructorStats(ctx)
	})
	run(&wg, logger, SlotCountdown, &home.Countdown, func() (f1api.Countdown, error) {
		return f.FetchNextEventCountdown(ctx)
	})
	wg.Wait()
	return home
}

// LoadSeason fetches the season list and the per-year slots of year
// concurrently.
func LoadSeason(ctx context.Context, f f1api.SeasonFetcher, year int, logger *zap.Logger) Season {
	logger = logging.OrNop(logger).With(zap.Int("year", year))
	var (
		season = Season{Year: year}
		wg     sync.WaitGroup
	)
	run(&wg, logger, SlotSeasons, &season.List, func() ([]f1api.Season, error) {
		return f.FetchSeasons(ctx)
	})
	run(&wg, logger, SlotCalendar, &season.Calendar, func() ([]f1api.Race, error) {
		return f.FetchRaceCalendar(ctx, year)
	})
	run(&wg, logger, SlotDriverPoints, &season.DriverPoints, func() ([]f1api.DriverPoints, error) {
		return f.FetchDriverPoints(ctx, year)
	})
	run(&wg, logger, SlotConstructorPoints, &season.ConstructorPoints, func() ([]f1api.ConstructorPoints, error) {
		return f.FetchConstructorPoints(ctx, year)
	})
	wg.Wait()
	return season
}

// run fills slot from fetch on its own goroutine. Each goroutine writes only
// the slot it was handed.
func run[T any](wg *sync.WaitGroup, logger *zap.Logger, name string, slot *Slot[T], fetch func() (T, error)) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := fetch()
		if err != nil {
			logger.Warn("fetch failed", zap.String("slot", name), zap.Error(err))
		}
		slot.Apply(v, err, time.Now())
	}()
}
