package promotion

import (
	"sort"

	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// RankClubs orders clubs by points, goal difference and goals for, all
// descending. Ties keep their input order. The input slice is not modified.
func RankClubs(clubs []models.Club) []models.Club {
	ranked := append([]models.Club(nil), clubs...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Stats, ranked[j].Stats
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})
	return ranked
}

// Table converts ranked clubs into table rows.
func Table(ranked []models.Club) []models.Ranking {
	rows := make([]models.Ranking, 0, len(ranked))
	for i, club := range ranked {
		rows = append(rows, rankingOf(i+1, club))
	}
	return rows
}

// split returns how many clubs of a level of size n are promoted and
// relegated. Promotion is served first so no club does both.
func split(n, promote, relegate int, canPromote, canRelegate bool) (int, int) {
	p, r := 0, 0
	if canPromote {
		p = clamp(promote, 0, n)
	}
	if canRelegate {
		r = clamp(relegate, 0, n-p)
	}
	return p, r
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
