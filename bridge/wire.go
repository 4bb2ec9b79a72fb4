// Package bridge implements the flatbuffers wire format for the CGo batch
// simulation boundary (cgo/bridge.go). There is no flatc available to
// regenerate a schema package, so the tables below are built and read by
// hand with the same flatbuffers.Builder/Table primitive calls that
// generated accessor code would produce.
package bridge

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/cardlab/gosim/simulation"
)

// SimulationRequest mirrors one entry of a BatchRequest's requests vector.
type SimulationRequest struct {
	GenomeBytecode  []byte
	NumGames        uint32
	AIPlayerType    uint8
	MCTSIterations  uint32
	RandomSeed      uint64
	Player0AIType   uint8 // 0 = use AIPlayerType, else (value-1) overrides player 0
	Player1AIType   uint8 // 0 = use AIPlayerType, else (value-1) overrides player 1
}

// vtable field slots, in declaration order (0-indexed field position; the
// byte offset into the vtable is 4+2*slot).
const (
	reqGenomeBytecode = 0
	reqNumGames       = 1
	reqAIPlayerType   = 2
	reqMCTSIterations = 3
	reqRandomSeed     = 4
	reqPlayer0AIType  = 5
	reqPlayer1AIType  = 6
	reqFieldCount     = 7
)

const (
	batchReqBatchID = 0
	batchReqVector  = 1
	batchReqFields  = 2
)

const (
	statsFieldCount = 26
)

// statsSlot enumerates AggregatedStats vtable slots, in the same order they
// are written by writeAggregatedStats/read by readAggregatedStats.
const (
	statTotalGames = iota
	statPlayer0Wins
	statPlayer1Wins
	statDraws
	statAvgTurns
	statMedianTurns
	statAvgDurationNs
	statErrors
	statTotalDecisions
	statTotalValidMoves
	statForcedDecisions
	statTotalInteractions
	statTotalActions
	statTotalHandSize
	statTotalClaims
	statTotalBluffs
	statTotalChallenges
	statSuccessfulBluffs
	statSuccessfulCatches
	statTotalBets
	statAllInCount
	statShowdownWins
	statFoldWins
	statLeadChanges
	statDecisiveTurnPct
	statClosestMargin
)

// BuildBatchRequest serializes a batch of simulation requests into a
// flatbuffers byte buffer.
func BuildBatchRequest(batchID uint64, requests []SimulationRequest) []byte {
	b := flatbuffers.NewBuilder(1024)

	offsets := make([]flatbuffers.UOffsetT, len(requests))
	for i, req := range requests {
		bytecodeOff := b.CreateByteVector(req.GenomeBytecode)

		b.StartObject(reqFieldCount)
		b.PrependUOffsetTSlot(reqGenomeBytecode, bytecodeOff, 0)
		b.PrependUint32Slot(reqNumGames, req.NumGames, 0)
		b.PrependByteSlot(reqAIPlayerType, req.AIPlayerType, 0)
		b.PrependUint32Slot(reqMCTSIterations, req.MCTSIterations, 0)
		b.PrependUint64Slot(reqRandomSeed, req.RandomSeed, 0)
		b.PrependByteSlot(reqPlayer0AIType, req.Player0AIType, 0)
		b.PrependByteSlot(reqPlayer1AIType, req.Player1AIType, 0)
		offsets[i] = b.EndObject()
	}

	b.StartVector(4, len(offsets), 4)
	for i := len(offsets) - 1; i >= 0; i-- {
		b.PrependUOffsetT(offsets[i])
	}
	vecOff := b.EndVector(len(offsets))

	b.StartObject(batchReqFields)
	b.PrependUOffsetTSlot(batchReqVector, vecOff, 0)
	b.PrependUint64Slot(batchReqBatchID, batchID, 0)
	root := b.EndObject()

	b.Finish(root)
	return b.FinishedBytes()
}

// ParseBatchRequest decodes a BatchRequest flatbuffer written by
// BuildBatchRequest (or the equivalent client-side encoder).
func ParseBatchRequest(buf []byte) (batchID uint64, requests []SimulationRequest) {
	root := rootTable(buf)

	if o := root.Offset(flatbuffers.VOffsetT(4 + 2*batchReqBatchID)); o != 0 {
		batchID = root.GetUint64(o + root.Pos)
	}

	o := root.Offset(flatbuffers.VOffsetT(4 + 2*batchReqVector))
	if o == 0 {
		return batchID, nil
	}
	vecOff := root.Vector(o)
	n := root.VectorLen(o)

	requests = make([]SimulationRequest, n)
	for i := 0; i < n; i++ {
		elemPos := vecOff + flatbuffers.UOffsetT(i)*4
		elemPos = root.Indirect(elemPos)

		reqTable := flatbuffers.Table{Bytes: root.Bytes, Pos: elemPos}
		req := SimulationRequest{}

		if fo := reqTable.Offset(flatbuffers.VOffsetT(4 + 2*reqGenomeBytecode)); fo != 0 {
			req.GenomeBytecode = reqTable.ByteVector(fo + reqTable.Pos)
		}
		if fo := reqTable.Offset(flatbuffers.VOffsetT(4 + 2*reqNumGames)); fo != 0 {
			req.NumGames = reqTable.GetUint32(fo + reqTable.Pos)
		}
		if fo := reqTable.Offset(flatbuffers.VOffsetT(4 + 2*reqAIPlayerType)); fo != 0 {
			req.AIPlayerType = reqTable.GetByte(fo + reqTable.Pos)
		}
		if fo := reqTable.Offset(flatbuffers.VOffsetT(4 + 2*reqMCTSIterations)); fo != 0 {
			req.MCTSIterations = reqTable.GetUint32(fo + reqTable.Pos)
		}
		if fo := reqTable.Offset(flatbuffers.VOffsetT(4 + 2*reqRandomSeed)); fo != 0 {
			req.RandomSeed = reqTable.GetUint64(fo + reqTable.Pos)
		}
		if fo := reqTable.Offset(flatbuffers.VOffsetT(4 + 2*reqPlayer0AIType)); fo != 0 {
			req.Player0AIType = reqTable.GetByte(fo + reqTable.Pos)
		}
		if fo := reqTable.Offset(flatbuffers.VOffsetT(4 + 2*reqPlayer1AIType)); fo != 0 {
			req.Player1AIType = reqTable.GetByte(fo + reqTable.Pos)
		}

		requests[i] = req
	}

	return batchID, requests
}

// BuildBatchResponse serializes aggregated stats for a batch of requests.
func BuildBatchResponse(batchID uint64, results []simulation.AggregatedStats) []byte {
	b := flatbuffers.NewBuilder(1024)

	offsets := make([]flatbuffers.UOffsetT, len(results))
	for i, stats := range results {
		offsets[i] = writeAggregatedStats(b, &stats)
	}

	b.StartVector(4, len(offsets), 4)
	for i := len(offsets) - 1; i >= 0; i-- {
		b.PrependUOffsetT(offsets[i])
	}
	vecOff := b.EndVector(len(offsets))

	b.StartObject(batchReqFields)
	b.PrependUOffsetTSlot(batchReqVector, vecOff, 0)
	b.PrependUint64Slot(batchReqBatchID, batchID, 0)
	root := b.EndObject()

	b.Finish(root)
	return b.FinishedBytes()
}

// ParseBatchResponse decodes a BatchResponse flatbuffer written by
// BuildBatchResponse.
func ParseBatchResponse(buf []byte) (batchID uint64, results []simulation.AggregatedStats) {
	root := rootTable(buf)

	if o := root.Offset(flatbuffers.VOffsetT(4 + 2*batchReqBatchID)); o != 0 {
		batchID = root.GetUint64(o + root.Pos)
	}

	o := root.Offset(flatbuffers.VOffsetT(4 + 2*batchReqVector))
	if o == 0 {
		return batchID, nil
	}
	vecOff := root.Vector(o)
	n := root.VectorLen(o)

	results = make([]simulation.AggregatedStats, n)
	for i := 0; i < n; i++ {
		elemPos := vecOff + flatbuffers.UOffsetT(i)*4
		elemPos = root.Indirect(elemPos)
		statsTable := flatbuffers.Table{Bytes: root.Bytes, Pos: elemPos}
		results[i] = readAggregatedStats(&statsTable)
	}

	return batchID, results
}

func writeAggregatedStats(b *flatbuffers.Builder, s *simulation.AggregatedStats) flatbuffers.UOffsetT {
	b.StartObject(statsFieldCount)
	b.PrependUint32Slot(statTotalGames, s.TotalGames, 0)
	b.PrependUint32Slot(statPlayer0Wins, s.Player0Wins, 0)
	b.PrependUint32Slot(statPlayer1Wins, s.Player1Wins, 0)
	b.PrependUint32Slot(statDraws, s.Draws, 0)
	b.PrependFloat32Slot(statAvgTurns, s.AvgTurns, 0)
	b.PrependUint32Slot(statMedianTurns, s.MedianTurns, 0)
	b.PrependUint64Slot(statAvgDurationNs, s.AvgDurationNs, 0)
	b.PrependUint32Slot(statErrors, s.Errors, 0)
	b.PrependUint64Slot(statTotalDecisions, s.TotalDecisions, 0)
	b.PrependUint64Slot(statTotalValidMoves, s.TotalValidMoves, 0)
	b.PrependUint64Slot(statForcedDecisions, s.ForcedDecisions, 0)
	b.PrependUint64Slot(statTotalInteractions, s.TotalInteractions, 0)
	b.PrependUint64Slot(statTotalActions, s.TotalActions, 0)
	b.PrependUint64Slot(statTotalHandSize, s.TotalHandSize, 0)
	b.PrependUint32Slot(statTotalClaims, s.TotalClaims, 0)
	b.PrependUint32Slot(statTotalBluffs, s.TotalBluffs, 0)
	b.PrependUint32Slot(statTotalChallenges, s.TotalChallenges, 0)
	b.PrependUint32Slot(statSuccessfulBluffs, s.SuccessfulBluffs, 0)
	b.PrependUint32Slot(statSuccessfulCatches, s.SuccessfulCatches, 0)
	b.PrependUint32Slot(statTotalBets, s.TotalBets, 0)
	b.PrependUint32Slot(statAllInCount, s.AllInCount, 0)
	b.PrependUint32Slot(statShowdownWins, s.ShowdownWins, 0)
	b.PrependUint32Slot(statFoldWins, s.FoldWins, 0)
	b.PrependUint64Slot(statLeadChanges, s.LeadChanges, 0)
	b.PrependFloat32Slot(statDecisiveTurnPct, s.DecisiveTurnPct, 0)
	b.PrependFloat32Slot(statClosestMargin, s.ClosestMargin, 0)
	return b.EndObject()
}

func readAggregatedStats(t *flatbuffers.Table) simulation.AggregatedStats {
	var s simulation.AggregatedStats

	get32 := func(slot int) uint32 {
		if o := t.Offset(flatbuffers.VOffsetT(4 + 2*slot)); o != 0 {
			return t.GetUint32(o + t.Pos)
		}
		return 0
	}
	get64 := func(slot int) uint64 {
		if o := t.Offset(flatbuffers.VOffsetT(4 + 2*slot)); o != 0 {
			return t.GetUint64(o + t.Pos)
		}
		return 0
	}

	s.TotalGames = get32(statTotalGames)
	s.Player0Wins = get32(statPlayer0Wins)
	s.Player1Wins = get32(statPlayer1Wins)
	s.Draws = get32(statDraws)
	if o := t.Offset(flatbuffers.VOffsetT(4 + 2*statAvgTurns)); o != 0 {
		s.AvgTurns = t.GetFloat32(o + t.Pos)
	}
	s.MedianTurns = get32(statMedianTurns)
	s.AvgDurationNs = get64(statAvgDurationNs)
	s.Errors = get32(statErrors)
	s.TotalDecisions = get64(statTotalDecisions)
	s.TotalValidMoves = get64(statTotalValidMoves)
	s.ForcedDecisions = get64(statForcedDecisions)
	s.TotalInteractions = get64(statTotalInteractions)
	s.TotalActions = get64(statTotalActions)
	s.TotalHandSize = get64(statTotalHandSize)
	s.TotalClaims = get32(statTotalClaims)
	s.TotalBluffs = get32(statTotalBluffs)
	s.TotalChallenges = get32(statTotalChallenges)
	s.SuccessfulBluffs = get32(statSuccessfulBluffs)
	s.SuccessfulCatches = get32(statSuccessfulCatches)
	s.TotalBets = get32(statTotalBets)
	s.AllInCount = get32(statAllInCount)
	s.ShowdownWins = get32(statShowdownWins)
	s.FoldWins = get32(statFoldWins)
	s.LeadChanges = get64(statLeadChanges)
	if o := t.Offset(flatbuffers.VOffsetT(4 + 2*statDecisiveTurnPct)); o != 0 {
		s.DecisiveTurnPct = t.GetFloat32(o + t.Pos)
	}
	if o := t.Offset(flatbuffers.VOffsetT(4 + 2*statClosestMargin)); o != 0 {
		s.ClosestMargin = t.GetFloat32(o + t.Pos)
	}

	return s
}

// rootTable locates the root table of a finished flatbuffer at offset 0,
// the same indirection flatbuffers.GetRootAsX helpers perform.
func rootTable(buf []byte) flatbuffers.Table {
	n := flatbuffers.GetUOffsetT(buf)
	return flatbuffers.Table{Bytes: buf, Pos: n}
}
