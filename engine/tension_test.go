package engine

import "testing"

func TestNewTensionMetrics(t *testing.T) {
	tm := NewTensionMetrics(4)

	if tm.currentLeader != -1 {
		t.Errorf("expected currentLeader=-1, got %d", tm.currentLeader)
	}
	if tm.ClosestMargin != 1.0 {
		t.Errorf("expected ClosestMargin=1.0, got %f", tm.ClosestMargin)
	}
	if len(tm.leaderHistory) != 0 {
		t.Errorf("expected empty leaderHistory, got len=%d", len(tm.leaderHistory))
	}
	if cap(tm.leaderHistory) < 100 {
		t.Errorf("expected leaderHistory capacity >= 100, got %d", cap(tm.leaderHistory))
	}
}

func newScoreState(numPlayers int, scores ...int32) *GameState {
	s := GetState()
	s.NumPlayers = uint8(numPlayers)
	for i, score := range scores {
		s.Players[i].Score = score
	}
	return s
}

func TestScoreLeaderDetectorTie(t *testing.T) {
	state := newScoreState(2, 5, 5)
	defer PutState(state)

	d := &ScoreLeaderDetector{}
	if leader := d.GetLeader(state); leader != -1 {
		t.Errorf("expected tie (-1), got %d", leader)
	}
	if margin := d.GetMargin(state); margin != 0 {
		t.Errorf("expected margin 0 on a tie, got %f", margin)
	}
}

func TestScoreLeaderDetectorMargin(t *testing.T) {
	state := newScoreState(2, 10, 5)
	defer PutState(state)

	d := &ScoreLeaderDetector{}
	if leader := d.GetLeader(state); leader != 0 {
		t.Errorf("expected player 0 to lead, got %d", leader)
	}
	if margin := d.GetMargin(state); margin != 0.5 {
		t.Errorf("expected margin 0.5, got %f", margin)
	}
}

func TestTensionMetricsUpdateTracksLeadChanges(t *testing.T) {
	d := &ScoreLeaderDetector{}
	tm := NewTensionMetrics(2)

	state := newScoreState(2, 1, 0)
	defer PutState(state)

	tm.Update(state, d) // player 0 takes the lead, no prior leader
	state.Players[1].Score = 5
	tm.Update(state, d) // player 1 overtakes
	state.Players[0].Score = 10
	tm.Update(state, d) // player 0 overtakes again

	if tm.LeadChanges != 2 {
		t.Errorf("expected 2 lead changes, got %d", tm.LeadChanges)
	}
	if tm.TotalTurns != 3 {
		t.Errorf("expected 3 turns observed, got %d", tm.TotalTurns)
	}
	if tm.DecisiveTurn != 3 {
		t.Errorf("expected decisive turn 3 (the last lead change), got %d", tm.DecisiveTurn)
	}
}

func TestTensionMetricsFinalizeWinnerWasTrailing(t *testing.T) {
	d := &ScoreLeaderDetector{}
	tm := NewTensionMetrics(2)

	state := newScoreState(2, 0, 1)
	defer PutState(state)

	tm.Update(state, d) // player 1 leads
	state.Players[0].Score = 5
	tm.Update(state, d) // player 0 takes over and wins

	tm.Finalize(0)
	if !tm.WinnerWasTrailing {
		t.Error("expected WinnerWasTrailing=true: winner was behind on turn 1")
	}
}

func TestTensionMetricsFinalizeWireToWireWinner(t *testing.T) {
	d := &ScoreLeaderDetector{}
	tm := NewTensionMetrics(2)

	state := newScoreState(2, 3, 0)
	defer PutState(state)

	tm.Update(state, d)
	state.Players[0].Score = 6
	tm.Update(state, d)

	tm.Finalize(0)
	if tm.WinnerWasTrailing {
		t.Error("expected WinnerWasTrailing=false: winner led the entire game")
	}
}

func TestTensionMetricsFinalizeDraw(t *testing.T) {
	tm := NewTensionMetrics(2)
	tm.Finalize(-1)
	if tm.WinnerWasTrailing {
		t.Error("Finalize(-1) on a draw must not set WinnerWasTrailing")
	}
}

func TestDecisiveTurnPct(t *testing.T) {
	tm := NewTensionMetrics(2)
	if pct := tm.DecisiveTurnPct(); pct != 0 {
		t.Errorf("expected 0 with no turns observed, got %f", pct)
	}

	tm.TotalTurns = 10
	tm.DecisiveTurn = 5
	if pct := tm.DecisiveTurnPct(); pct != 0.5 {
		t.Errorf("expected 0.5, got %f", pct)
	}
}

func TestHandSizeLeaderDetectorFewerCardsWins(t *testing.T) {
	state := GetState()
	defer PutState(state)
	state.NumPlayers = 2
	state.Players[0].Hand = make([]Card, 2)
	state.Players[1].Hand = make([]Card, 5)

	d := &HandSizeLeaderDetector{}
	if leader := d.GetLeader(state); leader != 0 {
		t.Errorf("expected player 0 (fewer cards) to lead, got %d", leader)
	}
}

func TestChipLeaderDetector(t *testing.T) {
	state := GetState()
	defer PutState(state)
	state.NumPlayers = 2
	state.Players[0].Chips = 100
	state.Players[1].Chips = 40

	d := &ChipLeaderDetector{}
	if leader := d.GetLeader(state); leader != 0 {
		t.Errorf("expected player 0 (most chips) to lead, got %d", leader)
	}
	if margin := d.GetMargin(state); margin <= 0 {
		t.Errorf("expected a positive margin, got %f", margin)
	}
}
