package circuit

import "fmt"

// orderPreserving builds a list starting with `ordered`, in the given
// order, then appends any element of `original` not already mentioned
// in `ordered`. `ordered` must be a subset of `original`, matching the
// reference implementation's order_list helper (used by OrderOutputs).
// The result holds the same multiset as `original`: a mentioned label
// that occurs k times in `original` is placed k times, at its first
// mention.
func orderPreserving(ordered, original []Label) ([]Label, error) {
	count := make(map[Label]int, len(original))
	for _, l := range original {
		count[l]++
	}
	mentioned := make(map[Label]bool, len(ordered))
	result := make([]Label, 0, len(original))
	for _, l := range ordered {
		if count[l] == 0 {
			return nil, fmt.Errorf("%q is not present in the original list", l)
		}
		if mentioned[l] {
			continue
		}
		mentioned[l] = true
		for k := 0; k < count[l]; k++ {
			result = append(result, l)
		}
	}
	for _, l := range original {
		if !mentioned[l] {
			result = append(result, l)
		}
	}
	return result, nil
}
