package models

// RosterAnalysis summarizes one team's positional makeup.
type RosterAnalysis struct {
	TeamName       string
	RosterID       int
	TotalPlayers   int
	PositionCounts map[Position]int
	Strengths      []string
	Weaknesses     []string
	Needs          []Position
}

// TradeOpportunity pairs a team short at a position with a team deep at it.
type TradeOpportunity struct {
	Position      Position
	TeamNeeding   string
	TeamWithDepth string
}

// WaiverPick is one recommended waiver-wire pickup.
type WaiverPick struct {
	PlayerID      string
	Name          string
	Position      Position
	Team          string
	ValueScore    float64
	TrendingScore int
	DepthSlot     int
	Age           int
	YearsExp      int
	HandcuffFor   string
	Bonus         float64
	Category      string
}
