package models

// LineType identifies the betting market a line belongs to.
type LineType string

const (
	LineTypeMoneyline LineType = "moneyline"
	LineTypeSpread    LineType = "spread"
	LineTypeOverUnder LineType = "over/under"
)

// Well-known field values used across markets.
const (
	UnknownLeague  = "UNKNOWN"
	PeriodFullGame = "FULL GAME"

	SideDraw  = "draw"
	SideOver  = "over"
	SideUnder = "under"
	TeamTotal = "total"
)

// BettingLine is a single extracted betting line for one side of one market.
// Every line produced within a scrape cycle shares the same EventDateUTC.
type BettingLine struct {
	SportLeague  string   `json:"sport_league"`
	EventDateUTC string   `json:"event_date_utc"`
	Team1        string   `json:"team1"`
	Team2        string   `json:"team2"`
	Period       string   `json:"period"`
	LineType     LineType `json:"line_type"`
	Price        string   `json:"price"`
	Side         string   `json:"side"`
	Team         string   `json:"team"`
	Spread       float64  `json:"spread"`
	// Pitcher is reserved for baseball listings; extraction never fills it.
	Pitcher string `json:"pitcher"`
}
