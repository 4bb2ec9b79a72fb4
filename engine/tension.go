package engine

import "github.com/cardlab/gosim/genome"

// TensionMetrics tracks the lead-change/margin curve of a single playout so
// the fitness evaluator can score how close a game stays without needing to
// replay it. LeaderHistory is sampled once per turn by the batch runner.
type TensionMetrics struct {
	LeadChanges       int     // Number of times the leader switched
	DecisiveTurn      int     // Turn when the eventual winner took a lead they never lost
	ClosestMargin     float32 // Smallest normalized gap between 1st and 2nd place seen (0 = tied)
	TotalTurns        int     // Turns observed, used to compute DecisiveTurnPct
	WinnerWasTrailing bool    // Set by Finalize: true if the eventual winner was ever not the leader

	currentLeader int
	leaderHistory []int
}

// NewTensionMetrics returns a tracker ready to observe a playout with the
// given player count. numPlayers is accepted for symmetry with the rest of
// the batch-runner instrumentation even though the tracker itself is
// player-count agnostic.
func NewTensionMetrics(numPlayers int) *TensionMetrics {
	return &TensionMetrics{
		currentLeader: -1,
		ClosestMargin: 1.0,
		leaderHistory: make([]int, 0, 100),
	}
}

// Update records the leader/margin at the current point in the game and
// updates the lead-change and decisive-turn bookkeeping. Call once per turn,
// and additionally after any betting/bidding round that can shift the chip
// leader mid-turn.
func (tm *TensionMetrics) Update(state *GameState, detector LeaderDetector) {
	tm.TotalTurns++
	leader := detector.GetLeader(state)
	if leader != tm.currentLeader {
		if tm.currentLeader != -1 && leader != -1 {
			tm.LeadChanges++
		}
		tm.currentLeader = leader
		tm.DecisiveTurn = tm.TotalTurns
	}
	tm.leaderHistory = append(tm.leaderHistory, leader)

	if margin := detector.GetMargin(state); margin < tm.ClosestMargin {
		tm.ClosestMargin = margin
	}
}

// Finalize computes winner-dependent stats once the game is over. winnerID
// of -1 (draw) leaves WinnerWasTrailing false.
func (tm *TensionMetrics) Finalize(winnerID int) {
	if winnerID < 0 {
		return
	}
	for _, leader := range tm.leaderHistory {
		if leader != winnerID {
			tm.WinnerWasTrailing = true
			return
		}
	}
}

// DecisiveTurnPct returns how late in the game the permanent leader emerged,
// as a fraction of total turns observed (0 = led from the start, 1 = decided
// on the final turn).
func (tm *TensionMetrics) DecisiveTurnPct() float32 {
	if tm.TotalTurns == 0 {
		return 0
	}
	return float32(tm.DecisiveTurn) / float32(tm.TotalTurns)
}

// LeaderDetector abstracts "who is ahead right now" over the handful of
// scoring shapes the genome schema can express (raw score, hand size, trick
// count, chip stack) so the batch runner doesn't need to know which shape a
// given genome uses.
type LeaderDetector interface {
	GetLeader(state *GameState) int     // Player ID, or -1 on a tie
	GetMargin(state *GameState) float32 // Normalized gap in [0,1], 0 = tied
}

// ScoreLeaderDetector ranks players by PlayerState.Score. Used for
// high-score, capture, and first-to-score win conditions.
type ScoreLeaderDetector struct{}

func (d *ScoreLeaderDetector) GetLeader(state *GameState) int {
	leader := -1
	var best, second int32
	tied := false
	for i := 0; i < int(state.NumPlayers) && i < len(state.Players); i++ {
		s := state.Players[i].Score
		switch {
		case leader == -1 || s > best:
			second = best
			best = s
			leader = i
			tied = false
		case s == best:
			tied = true
		case s > second:
			second = s
		}
	}
	if tied {
		return -1
	}
	return leader
}

func (d *ScoreLeaderDetector) GetMargin(state *GameState) float32 {
	best, second := topTwoScores(state)
	if best == 0 {
		return 0
	}
	return float32(best-second) / float32(best)
}

func topTwoScores(state *GameState) (best, second int32) {
	for i := 0; i < int(state.NumPlayers) && i < len(state.Players); i++ {
		s := state.Players[i].Score
		if s > best {
			second = best
			best = s
		} else if s > second {
			second = s
		}
	}
	return best, second
}

// HandSizeLeaderDetector ranks players by ascending hand size: the player
// closest to emptying their hand leads. Used for empty-hand win conditions.
type HandSizeLeaderDetector struct{}

func (d *HandSizeLeaderDetector) GetLeader(state *GameState) int {
	leader := -1
	fewest := -1
	tied := false
	for i := 0; i < int(state.NumPlayers) && i < len(state.Players); i++ {
		n := len(state.Players[i].Hand)
		switch {
		case fewest == -1 || n < fewest:
			fewest = n
			leader = i
			tied = false
		case n == fewest:
			tied = true
		}
	}
	if tied {
		return -1
	}
	return leader
}

func (d *HandSizeLeaderDetector) GetMargin(state *GameState) float32 {
	fewest, most := -1, 0
	for i := 0; i < int(state.NumPlayers) && i < len(state.Players); i++ {
		n := len(state.Players[i].Hand)
		if fewest == -1 || n < fewest {
			fewest = n
		}
		if n > most {
			most = n
		}
	}
	if most == 0 {
		return 0
	}
	return float32(most-fewest) / float32(most)
}

// TrickLeaderDetector ranks players by tricks won. Used for most-tricks win
// conditions.
type TrickLeaderDetector struct{}

func (d *TrickLeaderDetector) GetLeader(state *GameState) int {
	leader := -1
	var best, totalTricks uint8
	tied := false
	for i := 0; i < int(state.NumPlayers) && i < len(state.TricksWon); i++ {
		t := state.TricksWon[i]
		totalTricks += t
		switch {
		case leader == -1 || t > best:
			best = t
			leader = i
			tied = false
		case t == best:
			tied = true
		}
	}
	if tied {
		return -1
	}
	return leader
}

func (d *TrickLeaderDetector) GetMargin(state *GameState) float32 {
	var total uint32
	best, second := trickTopTwo(state)
	for _, t := range state.TricksWon[:min(int(state.NumPlayers), len(state.TricksWon))] {
		total += uint32(t)
	}
	if total == 0 {
		return 0
	}
	return float32(int(best)-int(second)) / float32(total)
}

func trickTopTwo(state *GameState) (best, second uint8) {
	for i := 0; i < int(state.NumPlayers) && i < len(state.TricksWon); i++ {
		t := state.TricksWon[i]
		if t > best {
			second = best
			best = t
		} else if t > second {
			second = t
		}
	}
	return best, second
}

// TrickAvoidanceLeaderDetector ranks players by ascending tricks won: the
// player with the fewest tricks leads. Used for Hearts-style low-score and
// fewest-tricks win conditions.
type TrickAvoidanceLeaderDetector struct{}

func (d *TrickAvoidanceLeaderDetector) GetLeader(state *GameState) int {
	leader := -1
	var fewest uint8
	have := false
	tied := false
	for i := 0; i < int(state.NumPlayers) && i < len(state.TricksWon); i++ {
		t := state.TricksWon[i]
		switch {
		case !have || t < fewest:
			fewest = t
			leader = i
			have = true
			tied = false
		case t == fewest:
			tied = true
		}
	}
	if tied {
		return -1
	}
	return leader
}

func (d *TrickAvoidanceLeaderDetector) GetMargin(state *GameState) float32 {
	var total uint32
	fewest, most := trickFewestMost(state)
	for _, t := range state.TricksWon[:min(int(state.NumPlayers), len(state.TricksWon))] {
		total += uint32(t)
	}
	if total == 0 {
		return 0
	}
	return float32(int(most)-int(fewest)) / float32(total)
}

func trickFewestMost(state *GameState) (fewest, most uint8) {
	have := false
	for i := 0; i < int(state.NumPlayers) && i < len(state.TricksWon); i++ {
		t := state.TricksWon[i]
		if !have || t < fewest {
			fewest = t
			have = true
		}
		if t > most {
			most = t
		}
	}
	return fewest, most
}

// ChipLeaderDetector ranks players by chip stack. Used for betting games.
type ChipLeaderDetector struct{}

func (d *ChipLeaderDetector) GetLeader(state *GameState) int {
	leader := -1
	var best, second int64
	tied := false
	for i := 0; i < int(state.NumPlayers) && i < len(state.Players); i++ {
		c := state.Players[i].Chips
		switch {
		case leader == -1 || c > best:
			second = best
			best = c
			leader = i
			tied = false
		case c == best:
			tied = true
		case c > second:
			second = c
		}
	}
	if tied {
		return -1
	}
	return leader
}

func (d *ChipLeaderDetector) GetMargin(state *GameState) float32 {
	var total int64
	best, second := chipTopTwo(state)
	for i := 0; i < int(state.NumPlayers) && i < len(state.Players); i++ {
		total += state.Players[i].Chips
	}
	if total == 0 {
		return 0
	}
	return float32(best-second) / float32(total)
}

func chipTopTwo(state *GameState) (best, second int64) {
	for i := 0; i < int(state.NumPlayers) && i < len(state.Players); i++ {
		c := state.Players[i].Chips
		if c > best {
			second = best
			best = c
		} else if c > second {
			second = c
		}
	}
	return best, second
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// SelectLeaderDetector picks the leader-detection strategy that matches a
// genome's scoring shape. Win-condition type takes precedence over phase
// type, since a game can run trick-taking phases on the way to a score-based
// win (e.g. a point-trick game) rather than a trick-count win.
func SelectLeaderDetector(g *genome.GameGenome) LeaderDetector {
	for _, wc := range g.WinConditions {
		switch wc.Type {
		case genome.WinTypeEmptyHand, genome.WinTypeAllHandsEmpty:
			return &HandSizeLeaderDetector{}
		case genome.WinTypeLowScore:
			return &TrickAvoidanceLeaderDetector{}
		case genome.WinTypeHighScore, genome.WinTypeFirstToScore,
			genome.WinTypeCaptureAll, genome.WinTypeMostCaptured, genome.WinTypeBestHand:
			return &ScoreLeaderDetector{}
		}
	}

	for _, phase := range g.TurnStructure.Phases {
		switch phase.PhaseType() {
		case genome.PhaseTypeBetting, genome.PhaseTypeBidding:
			return &ChipLeaderDetector{}
		case genome.PhaseTypeTrick:
			return &TrickLeaderDetector{}
		}
	}

	return &ScoreLeaderDetector{}
}
