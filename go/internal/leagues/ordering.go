package leagues

import (
	"sort"

	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// SortLevels orders levels from the top tier down. Levels without a tier sort
// after tiered ones by natural name order, then id.
func SortLevels(levels []models.LeagueLevel) {
	sort.SliceStable(levels, func(i, j int) bool {
		return levelLess(levels[i], levels[j])
	})
}

func levelLess(a, b models.LeagueLevel) bool {
	switch {
	case a.Tier > 0 && b.Tier > 0 && a.Tier != b.Tier:
		return a.Tier < b.Tier
	case a.Tier > 0 && b.Tier <= 0:
		return true
	case a.Tier <= 0 && b.Tier > 0:
		return false
	}
	if c := compareNatural(a.Name, b.Name); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}

// compareNatural compares strings treating runs of digits as numbers, so
// "Level 2" sorts before "Level 10".
func compareNatural(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			si := i
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			sj := j
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na, nb := trimZeros(a[si:i]), trimZeros(b[sj:j])
			if len(na) != len(nb) {
				return cmpInt(len(na), len(nb))
			}
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
			continue
		}
		if ca != cb {
			return cmpInt(int(ca), int(cb))
		}
		i++
		j++
	}
	return cmpInt(len(a)-i, len(b)-j)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func trimZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
