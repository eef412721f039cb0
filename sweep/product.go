package sweep

import "gonum.org/v1/gonum/stat/combin"

// Product enumerates the cartesian product of axes with the given lengths.
// Each element holds one index per axis, the last axis varies fastest.
// Any empty axis (or no axis at all) gives an empty product
func Product(lens ...int) [][]int {
	if len(lens) == 0 {
		return nil
	}
	for _, l := range lens {
		if l <= 0 {
			return nil
		}
	}

	return combin.Cartesian(lens)
}

// Cross is Product over string lists, joining every combination with sep
func Cross(sep string, lists ...[]string) []string {
	lens := make([]int, len(lists))
	for i, l := range lists {
		lens[i] = len(l)
	}
	points := Product(lens...)
	out := make([]string, len(points))
	for i, p := range points {
		s := ""
		for axis, idx := range p {
			if axis > 0 {
				s += sep
			}
			s += lists[axis][idx]
		}
		out[i] = s
	}
	return out
}
