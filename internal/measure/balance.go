// Package measure computes cell sizes for view trees.
package measure

import "math"

// Input describes one sibling of a group being balanced.
type Input struct {
	Min       float64
	Max       float64
	HasMax    bool
	Weight    float64
	Minimized bool
}

// unboundedMax stands in for a missing maximum when saturating.
const unboundedMax = 999

// MinPaneSize is the smallest size tmux can give a pane.
const MinPaneSize = 2

// Balance distributes total cells over a sibling group. Weights are expected
// to be normalized already. Sizes are computed in floating point and only
// truncated at the end, so the result may not sum to total exactly. The
// result can exceed total: a lone overcommitted sibling keeps its minimum,
// and every sibling is raised to MinPaneSize.
func Balance(in []Input, total float64) []int {
	if len(in) == 0 {
		return nil
	}
	mins := make([]float64, len(in))
	weights := make([]float64, len(in))
	for i, v := range in {
		mins[i] = v.Min
		if !v.Minimized {
			weights[i] = v.Weight
		}
	}
	weights = normalize(weights)
	var sizes []float64
	if sum(mins) > total {
		sizes = cut(mins, weights, total)
	} else {
		sizes = distribute(in, mins, weights, total)
	}
	return rectify(sizes)
}

// cut shrinks an overcommitted group. Siblings with low weight give up more
// space. Sizes pushed below zero are clamped and their deficit is taken
// evenly from the others.
func cut(mins, weights []float64, total float64) []float64 {
	surplus := sum(mins) - total
	reverse := make([]float64, len(weights))
	for i, w := range weights {
		reverse[i] = 1 - w
	}
	if s := sum(reverse); s > 0 {
		for i := range reverse {
			reverse[i] /= s
		}
	}
	sizes := make([]float64, len(mins))
	negTotal := 0.0
	negCount := 0
	for i, m := range mins {
		sizes[i] = m - surplus*reverse[i]
		if sizes[i] < 0 {
			negTotal += sizes[i]
			negCount++
		}
	}
	share := 0.0
	if rest := len(mins) - negCount; rest > 0 {
		share = negTotal / float64(rest)
	}
	for i, s := range sizes {
		if s < 0 {
			sizes[i] = 0
		} else {
			sizes[i] = s + share
		}
	}
	return sizes
}

func distribute(in []Input, mins, weights []float64, total float64) []float64 {
	maxTotal := 0.0
	unbounded := false
	for _, v := range in {
		if v.HasMax {
			maxTotal += v.Max
		} else {
			unbounded = true
		}
	}
	if unbounded && maxTotal < total {
		return distributeOnUnbounded(in, mins, weights, total)
	}
	return distributeOnAll(in, mins, weights, total)
}

// distributeOnUnbounded gives bounded siblings their maximum and splits the
// remaining space among the unbounded ones.
func distributeOnUnbounded(in []Input, mins, weights []float64, total float64) []float64 {
	initial := make([]float64, len(in))
	unboundedWeights := make([]float64, len(in))
	for i, v := range in {
		if v.HasMax {
			initial[i] = v.Max
		} else {
			initial[i] = mins[i]
			unboundedWeights[i] = weights[i]
		}
	}
	unboundedWeights = normalize(unboundedWeights)
	surplus := total - sum(initial)
	sizes := make([]float64, len(in))
	for i := range in {
		sizes[i] = initial[i] + unboundedWeights[i]*surplus
	}
	return sizes
}

func distributeOnAll(in []Input, mins, weights []float64, total float64) []float64 {
	maxes := make([]float64, len(in))
	for i, v := range in {
		maxes[i] = unboundedMax
		if v.HasMax {
			maxes[i] = v.Max
		}
	}
	sizes := saturate(mins, maxes, weights, total)
	rest := total - sum(sizes)
	if rest <= 0 {
		return sizes
	}
	restWeights := weights
	trimmed := make([]float64, len(in))
	present := make([]bool, len(in))
	anyUnsaturated := false
	for i := range in {
		if sizes[i] != maxes[i] {
			trimmed[i] = weights[i]
			present[i] = true
			anyUnsaturated = true
		}
	}
	if anyUnsaturated {
		restWeights = normalize(amend(trimmed, present))
	}
	out := make([]float64, len(sizes))
	for i, s := range sizes {
		out[i] = s + restWeights[i]*rest
	}
	return out
}

// saturate grows every sibling from its minimum towards its maximum by
// weight, handing the share of saturated siblings to the others until nothing
// changes or no space is left.
func saturate(initial, maxes, weights []float64, total float64) []float64 {
	current := append([]float64(nil), initial...)
	for iter := 0; iter <= len(current); iter++ {
		rest := total - sum(current)
		if rest <= 0 {
			break
		}
		unsat := make([]float64, len(current))
		for i, s := range current {
			if s < maxes[i] {
				unsat[i] = weights[i]
			}
		}
		weights = normalize(unsat)
		next := make([]float64, len(current))
		changed := false
		for i, s := range current {
			next[i] = math.Min(s+weights[i]*rest, maxes[i])
			if next[i] != s {
				changed = true
			}
		}
		current = next
		if !changed {
			break
		}
	}
	return current
}

// rectify raises every size to MinPaneSize, taking the shortfall evenly from
// the siblings that can spare it, and truncates to whole cells.
func rectify(sizes []float64) []int {
	under := 0.0
	over := 0
	for _, s := range sizes {
		s = math.Max(s, 0)
		if s < MinPaneSize {
			under += MinPaneSize - s
		} else {
			over++
		}
	}
	sub := 0.0
	if over > 0 {
		sub = under / float64(over)
	}
	out := make([]int, len(sizes))
	for i, s := range sizes {
		s = math.Max(s, 0)
		if s < MinPaneSize {
			out[i] = MinPaneSize
			continue
		}
		out[i] = int(math.Max(MinPaneSize, s-sub))
	}
	return out
}

// Weights fills in missing weights with the mean of the present ones and
// normalizes the result to sum to 1.
func Weights(weights []float64, present []bool) []float64 {
	return normalize(amend(weights, present))
}

func amend(weights []float64, present []bool) []float64 {
	total := 0.0
	empties := 0
	for i, w := range weights {
		if present[i] {
			total += w
		} else {
			empties++
		}
	}
	if total == 0 {
		total = 1
	}
	if empties == 0 {
		empties = 1
	}
	fill := total / float64(empties)
	out := make([]float64, len(weights))
	for i, w := range weights {
		if present[i] {
			out[i] = w
		} else {
			out[i] = fill
		}
	}
	return out
}

func normalize(weights []float64) []float64 {
	total := sum(weights)
	if total == 0 {
		total = 1
	}
	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = w / total
	}
	return out
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}
