package postprocess

import (
	"sort"

	"github.com/nvr-ai/go-detect/images"
)

// NMSConfig defines parameters for Non-Maximum Suppression.
type NMSConfig struct {
	// IoUThreshold is the overlap above which a candidate is suppressed.
	IoUThreshold float32
	// ClassAware, if true, suppresses only within the same class. By
	// default suppression ignores class: an overlapping box of a
	// different class still suppresses.
	ClassAware bool
}

// ApplyGreedyNMS filters overlapping candidates with greedy Non-Maximum
// Suppression.
//
// Candidates are ranked by descending score; ties keep their original
// relative order so the result is deterministic. Each survivor suppresses
// every later candidate whose IoU with it exceeds the threshold. The
// returned slice is in survival order (descending score, stable ties).
//
// The input slice is never reordered or mutated; ranking and suppression
// run over a parallel index/flag array.
func ApplyGreedyNMS(candidates []Candidate, config *NMSConfig) []Candidate {
	n := len(candidates)
	if n == 0 {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return candidates[order[a]].Score > candidates[order[b]].Score
	})

	filtered := make([]Candidate, 0, n)
	suppressed := make([]bool, n)

	for i := 0; i < n; i++ {
		if suppressed[i] {
			continue
		}

		anchor := candidates[order[i]]
		filtered = append(filtered, anchor)

		for j := i + 1; j < n; j++ {
			if suppressed[j] {
				continue
			}
			other := candidates[order[j]]
			if config.ClassAware && anchor.Class != other.Class {
				continue
			}
			if images.CalculateIoU(anchor.Box, other.Box) > config.IoUThreshold {
				suppressed[j] = true
			}
		}
	}

	return filtered
}
