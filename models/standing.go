package models

// Standing is one computed row of a pool table. Standings are never persisted;
// they are recomputed from completed league matches whenever needed.
type Standing struct {
	TeamName string `json:"team_name"`
	Played   int    `json:"played"`
	Won      int    `json:"won"`
	Points   int    `json:"points"`
}
