package measure

import (
	"math"
	"reflect"
	"testing"
)

func inputs(mins, maxes, weights []float64, minimized []bool) []Input {
	in := make([]Input, len(mins))
	for i := range mins {
		in[i] = Input{Min: mins[i], Weight: weights[i]}
		if maxes != nil && !math.IsInf(maxes[i], 1) {
			in[i].Max, in[i].HasMax = maxes[i], true
		}
		if minimized != nil {
			in[i].Minimized = minimized[i]
		}
	}
	return in
}

func TestBalance(t *testing.T) {
	third := 1.0 / 3
	inf := math.Inf(1)
	cases := []struct {
		name  string
		in    []Input
		total float64
		want  []int
	}{
		{
			name:  "unbounded sibling takes the rest",
			in:    inputs([]float64{0, 0, 5}, []float64{10, 10, inf}, []float64{third, third, third}, nil),
			total: 50,
			want:  []int{10, 10, 30},
		},
		{
			name:  "saturated siblings hand over their share",
			in:    inputs([]float64{0, 0, 0}, []float64{10, 10, 40}, []float64{.2, .4, .4}, nil),
			total: 50,
			want:  []int{10, 10, 30},
		},
		{
			name:  "space beyond every max is spread by weight",
			in:    inputs([]float64{0, 0, 0}, []float64{10, 10, 10}, []float64{third, third, third}, nil),
			total: 90,
			want:  []int{30, 30, 30},
		},
		{
			name:  "overcommitted mins are cut",
			in:    inputs([]float64{10, 20, 40}, nil, []float64{.2, .4, .4}, nil),
			total: 50,
			want:  []int{2, 14, 34},
		},
		{
			name:  "minimized sibling keeps its size",
			in:    inputs([]float64{10, 2}, []float64{10, 2}, []float64{.5, .5}, []bool{false, true}),
			total: 50,
			want:  []int{48, 2},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Balance(tc.in, tc.total)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Balance = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBalanceEmpty(t *testing.T) {
	if got := Balance(nil, 10); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestBalanceNeverBelowFloor(t *testing.T) {
	in := inputs([]float64{30, 30, 30, 30}, nil, []float64{.7, .1, .1, .1}, nil)
	for _, total := range []float64{4, 10, 25, 60} {
		for i, size := range Balance(in, total) {
			if size < MinPaneSize {
				t.Fatalf("total %v: sibling %d got %d", total, i, size)
			}
		}
	}
}

func TestBalanceFillsUnboundedGroup(t *testing.T) {
	in := inputs([]float64{0, 0, 0, 0}, nil, []float64{.25, .25, .25, .25}, nil)
	got := Balance(in, 100)
	total := 0
	for _, s := range got {
		total += s
	}
	if total != 100 {
		t.Fatalf("expected sizes to fill 100 cells, got %v", got)
	}
}

func floatSum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}

func TestCutKeepsTotal(t *testing.T) {
	cases := []struct {
		name    string
		mins    []float64
		weights []float64
		total   float64
		want    []float64
	}{
		{"weighted shrink", []float64{30, 30, 30}, []float64{.7, .1, .2}, 50, []float64{24, 12, 14}},
		{"clamped sibling", []float64{5, 40}, []float64{.1, .9}, 20, []float64{0, 20}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cut(tc.mins, tc.weights, tc.total)
			if math.Abs(floatSum(got)-tc.total) > 1e-9 {
				t.Fatalf("cut sums to %v, want %v (%v)", floatSum(got), tc.total, got)
			}
			for i := range got {
				if math.Abs(got[i]-tc.want[i]) > 1e-9 {
					t.Fatalf("cut = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestCutSingleSiblingKeepsMinimum(t *testing.T) {
	got := Balance(inputs([]float64{30}, nil, []float64{1}, nil), 10)
	if !reflect.DeepEqual(got, []int{30}) {
		t.Fatalf("expected a lone sibling to keep its minimum, got %v", got)
	}
}

func TestDistributeKeepsTotal(t *testing.T) {
	inf := math.Inf(1)
	third := 1.0 / 3
	cases := []struct {
		name  string
		in    []Input
		total float64
	}{
		{"unbounded", inputs([]float64{0, 3, 0}, []float64{10, inf, inf}, []float64{third, third, third}, nil), 50},
		{"unbounded uneven weights", inputs([]float64{0, 0}, nil, []float64{.8, .2}, nil), 37},
		{"saturate", inputs([]float64{0, 0, 0}, []float64{10, 20, 40}, []float64{third, third, third}, nil), 50},
		{"leftover", inputs([]float64{0, 0}, []float64{10, 20}, []float64{.5, .5}, nil), 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mins := make([]float64, len(tc.in))
			weights := make([]float64, len(tc.in))
			for i, v := range tc.in {
				mins[i], weights[i] = v.Min, v.Weight
			}
			got := distribute(tc.in, mins, weights, tc.total)
			if math.Abs(floatSum(got)-tc.total) > 1e-9 {
				t.Fatalf("distribute sums to %v, want %v (%v)", floatSum(got), tc.total, got)
			}
			for i, v := range tc.in {
				if got[i] < v.Min-1e-9 {
					t.Fatalf("sibling %d shrank below its minimum: %v", i, got)
				}
			}
		})
	}
}

func TestWeights(t *testing.T) {
	got := Weights([]float64{2, 0, 0}, []bool{true, false, false})
	want := []float64{.5, .25, .25}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Weights = %v, want %v", got, want)
	}
	got = Weights([]float64{0, 0}, []bool{false, false})
	if !reflect.DeepEqual(got, []float64{.5, .5}) {
		t.Fatalf("absent weights should split evenly, got %v", got)
	}
}
