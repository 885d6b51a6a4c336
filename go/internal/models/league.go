package models

import "encoding/json"

// Default promotion/relegation counts.
const (
	DefaultPromote  = 2
	DefaultRelegate = 2
)

// PromotionRules sets how many clubs move between adjacent tiers per season.
type PromotionRules struct {
	Promote  int `json:"promote"`
	Relegate int `json:"relegate"`
}

// DefaultPromotionRules returns the rules used when a league has none.
func DefaultPromotionRules() PromotionRules {
	return PromotionRules{Promote: DefaultPromote, Relegate: DefaultRelegate}
}

// League groups league levels for a season.
type League struct {
	ID                       string         `json:"id"`
	Name                     string         `json:"name"`
	Season                   string         `json:"season"`
	LeagueLevels             []string       `json:"league_levels"`
	PromotionRelegationRules PromotionRules `json:"promotion_relegation_rules"`
}

// GetID returns the record id.
func (l League) GetID() string { return l.ID }

// UnmarshalJSON defaults absent promotion rules to 2/2.
func (l *League) UnmarshalJSON(data []byte) error {
	type alias League
	aux := alias{PromotionRelegationRules: DefaultPromotionRules()}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*l = League(aux)
	l.LeagueLevels = nonNil(l.LeagueLevels)
	return nil
}
