package main

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"
import (
	"unsafe"

	"github.com/cardlab/gosim/bridge"
	"github.com/cardlab/gosim/engine"
	"github.com/cardlab/gosim/simulation"
)

//export SimulateBatch
func SimulateBatch(requestPtr unsafe.Pointer, requestLen C.int, responseLen *C.int) unsafe.Pointer {
	requestBytes := C.GoBytes(requestPtr, requestLen)
	batchID, requests := bridge.ParseBatchRequest(requestBytes)

	results := make([]simulation.AggregatedStats, len(requests))
	for i, req := range requests {
		g, err := engine.ParseGenome(req.GenomeBytecode)
		if err != nil {
			results[i] = simulation.AggregatedStats{
				TotalGames: req.NumGames,
				Errors:     req.NumGames,
			}
			continue
		}

		aiType := simulation.AIPlayerType(req.AIPlayerType)
		p0AI, p1AI := aiType, aiType
		if req.Player0AIType > 0 {
			p0AI = simulation.AIPlayerType(req.Player0AIType - 1)
		}
		if req.Player1AIType > 0 {
			p1AI = simulation.AIPlayerType(req.Player1AIType - 1)
		}

		if p0AI == p1AI {
			results[i] = simulation.RunBatch(g, int(req.NumGames), p0AI, int(req.MCTSIterations), req.RandomSeed)
		} else {
			results[i] = simulation.RunBatchAsymmetric(g, int(req.NumGames), p0AI, p1AI, int(req.MCTSIterations), req.RandomSeed)
		}
	}

	responseBytes := bridge.BuildBatchResponse(batchID, results)
	*responseLen = C.int(len(responseBytes))

	if len(responseBytes) == 0 {
		*responseLen = 0
		return nil
	}

	cBytes := C.malloc(C.size_t(len(responseBytes)))
	if cBytes == nil {
		*responseLen = 0
		return nil
	}
	C.memcpy(cBytes, unsafe.Pointer(&responseBytes[0]), C.size_t(len(responseBytes)))

	return cBytes
}

//export FreeResponse
func FreeResponse(ptr unsafe.Pointer) {
	C.free(ptr)
}

func main() {} // Required for CGo
