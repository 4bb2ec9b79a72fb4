package engine

// BiddingPhase carries the contract-bidding parameters a BidMove is
// generated and scored against. It mirrors genome.BiddingPhase so the
// interpreter can convert without importing the genome package here.
type BiddingPhase struct {
	MinBid   int
	MaxBid   int
	AllowNil bool
}

// ContractScoring carries the point values EvaluateContracts applies once
// a hand's tricks are all played out.
type ContractScoring struct {
	PointsPerTrickBid     int
	OvertrickPoints       int
	FailedContractPenalty int
	NilBonus              int
	NilPenalty            int
	BagLimit              int
	BagPenalty            int
}

// BidMove is a single candidate bid: a trick count, or Nil.
type BidMove struct {
	Value int
	IsNil bool
}

// MoveBidOffset anchors bid values in the LegalMove.CardIndex sentinel
// space. A bid of N tricks encodes as MoveBidOffset-N so it never collides
// with real hand-card indices (>=0) or the betting/claim sentinels
// (<=MoveBettingCheck).
const MoveBidOffset = -100

// GenerateBidMoves enumerates the legal bids for a hand of the given size.
// Bids range from MinBid to min(MaxBid, handSize); Nil is offered separately
// when the phase allows it.
func GenerateBidMoves(phase BiddingPhase, handSize int) []BidMove {
	maxBid := phase.MaxBid
	if maxBid > handSize {
		maxBid = handSize
	}

	moves := make([]BidMove, 0, maxBid-phase.MinBid+2)
	if phase.AllowNil {
		moves = append(moves, BidMove{Value: 0, IsNil: true})
	}
	for v := phase.MinBid; v <= maxBid; v++ {
		moves = append(moves, BidMove{Value: v})
	}
	return moves
}

// ApplyBidMove records a player's bid. Once every player has bid, it marks
// bidding complete and sets each team's contract to its non-Nil bid total.
func ApplyBidMove(state *GameState, playerIdx int, bid BidMove) {
	player := &state.Players[playerIdx]
	player.IsNilBid = bid.IsNil
	if bid.IsNil {
		player.CurrentBid = 0
	} else {
		player.CurrentBid = bid.Value
	}

	allBid := true
	for i := range state.Players[:state.NumPlayers] {
		if state.Players[i].CurrentBid < 0 {
			allBid = false
			break
		}
	}
	if !allBid {
		return
	}
	state.BiddingComplete = true

	if len(state.TeamContracts) == 0 {
		return
	}
	for teamIdx := range state.TeamContracts {
		total := 0
		for i, team := range state.PlayerToTeam {
			if int(team) == teamIdx && !state.Players[i].IsNilBid {
				total += state.Players[i].CurrentBid
			}
		}
		state.TeamContracts[teamIdx] = total
	}
}
