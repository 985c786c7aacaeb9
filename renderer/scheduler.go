package renderer

import "math"

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split frame into blocks of variable height and assign them to the
	// pool of workers using feedback collected from previous frames.
	//
	// This function returns the block height assignment for each worker
	// in the input list. Assignments always add up to frameH.
	Schedule(workers []WorkerStat, frameH uint32) []uint32
}

// Create a scheduler by name. Unknown names select the perfect scheduler.
func NewScheduler(name string) BlockScheduler {
	if name == "naive" {
		return NaiveScheduler()
	}
	return PerfectScheduler()
}

// The naive scheduler splits the frame rows proportionally to each worker's
// speed estimate and ignores any feedback from previous frames.
type naiveScheduler struct{}

func NaiveScheduler() BlockScheduler {
	return naiveScheduler{}
}

func (naiveScheduler) Schedule(workers []WorkerStat, frameH uint32) []uint32 {
	var total float64
	for _, w := range workers {
		total += float64(w.SpeedEstimate)
	}

	assignment := make([]uint32, len(workers))
	for idx, w := range workers {
		assignment[idx] = rowShare(float64(w.SpeedEstimate), total, frameH)
	}
	return fitRows(assignment, frameH)
}

// The perfect scheduler assumes that the volume of tracing work between two
// subsequent frames is approximately the same.
type perfectScheduler struct {
	blockAssignment []uint32
}

// Create a new perfect scheduler instance
func PerfectScheduler() BlockScheduler {
	return &perfectScheduler{}
}

// When previous frame information is available the scheduler uses the
// following formula for estimating the workload for worker w and frame i+1:
// w_i, f_i+1 = (blockH,w_i / time,w_i) / Σ(blockH_i / time,i)
func (sch *perfectScheduler) Schedule(workers []WorkerStat, frameH uint32) []uint32 {
	// If this is the first time we try to schedule or the number of
	// workers has changed we need to reset the block assignments
	if len(sch.blockAssignment) != len(workers) {
		sch.blockAssignment = naiveScheduler{}.Schedule(workers, frameH)
		return sch.blockAssignment
	}

	var total float64
	rates := make([]float64, len(workers))
	for idx, w := range workers {
		rates[idx] = rowsPerNs(w)
		total += rates[idx]
	}

	for idx := range workers {
		sch.blockAssignment[idx] = rowShare(rates[idx], total, frameH)
	}
	sch.blockAssignment = fitRows(sch.blockAssignment, frameH)
	return sch.blockAssignment
}

func rowsPerNs(w WorkerStat) float64 {
	elapsed := w.RenderTime.Nanoseconds()
	if elapsed <= 0 {
		elapsed = 1
	}
	return float64(w.BlockH) / float64(elapsed)
}

// Each worker gets at least one row.
func rowShare(weight, total float64, frameH uint32) uint32 {
	if total <= 0 {
		return 1
	}
	return uint32(math.Max(1.0, math.Floor(weight/total*float64(frameH))))
}

// Adjust an assignment so it adds up to frameH. Missing rows are appended to
// the first worker; excess rows are removed from the largest blocks
// starting from the end of the list.
func fitRows(assignment []uint32, frameH uint32) []uint32 {
	if len(assignment) == 0 {
		return assignment
	}

	var scheduledRows uint32
	for _, rows := range assignment {
		scheduledRows += rows
	}

	if scheduledRows < frameH {
		assignment[0] += frameH - scheduledRows
		return assignment
	}

	for ; scheduledRows > frameH; scheduledRows-- {
		largest := 0
		for idx, rows := range assignment {
			if rows >= assignment[largest] {
				largest = idx
			}
		}
		assignment[largest]--
	}
	return assignment
}
