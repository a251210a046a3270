package battery

import (
	"sort"
)

// rankAll assigns mid-ranks (1-based, ties averaged) to the concatenation
// of all samples and returns per-sample rank slices plus the tie counts
// needed for tie corrections.
func rankAll(samples ...[]float64) (ranks [][]float64, ties []int) {
	type tagged struct {
		value  float64
		sample int
		index  int
	}

	total := 0
	for _, s := range samples {
		total += len(s)
	}
	all := make([]tagged, 0, total)
	for si, s := range samples {
		for i, v := range s {
			all = append(all, tagged{value: v, sample: si, index: i})
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].value < all[j].value })

	ranks = make([][]float64, len(samples))
	for si, s := range samples {
		ranks[si] = make([]float64, len(s))
	}

	for i := 0; i < len(all); {
		j := i
		for j < len(all) && all[j].value == all[i].value {
			j++
		}
		// Mid-rank for the whole tie block.
		mid := float64(i+j+1) / 2
		if j-i > 1 {
			ties = append(ties, j-i)
		}
		for k := i; k < j; k++ {
			ranks[all[k].sample][all[k].index] = mid
		}
		i = j
	}
	return ranks, ties
}

// tieSum computes sum(t^3 - t) over tie block sizes.
func tieSum(ties []int) float64 {
	var s float64
	for _, t := range ties {
		ft := float64(t)
		s += ft*ft*ft - ft
	}
	return s
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}
