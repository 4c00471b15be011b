package state

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/five82/paddock/internal/f1api"
)

// Leader names the holder of a season record.
type Leader struct {
	Name  string
	Count int
}

// Champion is the position 1 entry of a points table.
type Champion struct {
	Name   string
	Points float64
}

// Summary condenses a season's points matrices.
type Summary struct {
	DriverChampion      Champion
	ConstructorChampion Champion
	MostWins            Leader
	MostPodiums         Leader
	ConstructorWins     Leader
	Races               int
}

// Summarize derives the season overview from the per-race positions. Ties
// go to the better placed entry in the standings.
func Summarize(drivers []f1api.DriverPoints, constructors []f1api.ConstructorPoints) Summary {
	drivers = slices.Clone(drivers)
	slices.SortStableFunc(drivers, func(a, b f1api.DriverPoints) int { return cmp.Compare(rank(a.Position), rank(b.Position)) })
	constructors = slices.Clone(constructors)
	slices.SortStableFunc(constructors, func(a, b f1api.ConstructorPoints) int {
		return cmp.Compare(rank(a.Position), rank(b.Position))
	})

	var sum Summary
	if d, ok := lo.Find(drivers, func(d f1api.DriverPoints) bool { return d.Position == 1 }); ok {
		sum.DriverChampion = Champion{Name: d.Name, Points: d.Total}
	}
	if c, ok := lo.Find(constructors, func(c f1api.ConstructorPoints) bool { return c.Position == 1 }); ok {
		sum.ConstructorChampion = Champion{Name: c.Constructor, Points: c.Total}
	}

	for _, d := range drivers {
		wins := countFinishes(d.Races, 1)
		podiums := countFinishes(d.Races, 3)
		if wins > sum.MostWins.Count {
			sum.MostWins = Leader{Name: d.Name, Count: wins}
		}
		if podiums > sum.MostPodiums.Count {
			sum.MostPodiums = Leader{Name: d.Name, Count: podiums}
		}
		sum.Races = max(sum.Races, len(d.Races))
	}
	for _, c := range constructors {
		if wins := countFinishes(c.Races, 1); wins > sum.ConstructorWins.Count {
			sum.ConstructorWins = Leader{Name: c.Constructor, Count: wins}
		}
	}
	return sum
}

func countFinishes(races []f1api.RacePoints, worst int) int {
	return lo.CountBy(races, func(r f1api.RacePoints) bool { return r.Position >= 1 && r.Position <= worst })
}

// rank orders unclassified (zero) positions last.
func rank(p int) int {
	if p <= 0 {
		return int(^uint(0) >> 1)
	}
	return p
}
