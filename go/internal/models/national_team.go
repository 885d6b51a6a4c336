package models

import "encoding/json"

// NationalTeam is a country's squad.
type NationalTeam struct {
	ID          string   `json:"id"`
	CountryName string   `json:"country_name"`
	Coach       string   `json:"coach"`
	Players     []string `json:"players"`
}

// GetID returns the record id.
func (n NationalTeam) GetID() string { return n.ID }

// UnmarshalJSON tolerates older records with missing fields.
func (n *NationalTeam) UnmarshalJSON(data []byte) error {
	type alias NationalTeam
	var aux alias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*n = NationalTeam(aux)
	n.Players = nonNil(n.Players)
	return nil
}
