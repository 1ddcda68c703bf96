package layout

// Epsilon is the tolerance used when comparing size sums.
const Epsilon = 1e-6

// redistribute zeroes sizes[idx] and scales the remaining entries so the
// slice sums to Total again. When the remaining entries sum to zero the
// space is split evenly between them.
func redistribute(sizes []float64, idx int) []float64 {
	out := make([]float64, len(sizes))
	remaining := 0.0
	for i, v := range sizes {
		if i != idx {
			remaining += v
		}
	}
	others := len(sizes) - 1
	for i, v := range sizes {
		switch {
		case i == idx:
			out[i] = 0
		case remaining <= 0:
			out[i] = Total / float64(others)
		default:
			out[i] = v / remaining * Total
		}
	}
	return out
}

// normalize scales sizes to sum to Total, falling back to equal sizes when
// they sum to zero.
func normalize(sizes []float64) []float64 {
	total := sum(sizes)
	if total <= 0 {
		return equalSizes(len(sizes))
	}
	out := make([]float64, len(sizes))
	for i, v := range sizes {
		out[i] = v / total * Total
	}
	return out
}

func equalSizes(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = Total / float64(n)
	}
	return out
}

func sum(sizes []float64) float64 {
	total := 0.0
	for _, v := range sizes {
		total += v
	}
	return total
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
