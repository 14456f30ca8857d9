package minireduce

import (
	"fmt"
	"sort"
)

// Shuffle groups mapped items by their exact string value and deals the
// distinct keys round-robin across r buckets. All occurrences of one key land
// in the same bucket, with multiplicity and encounter order preserved. Keys
// are dealt in ascending order, so the assignment is deterministic for a
// given set of map outputs.
func Shuffle(mapOutputs [][]string, r int) ([][]string, error) {
	if len(mapOutputs) == 0 || r <= 0 {
		return nil, fmt.Errorf("shuffle: %w", ErrInvalidArgument)
	}

	grouped := make(map[string][]string)
	for _, output := range mapOutputs {
		for _, item := range output {
			grouped[item] = append(grouped[item], item)
		}
	}

	keys := make([]string, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buckets := make([][]string, r)
	for i, key := range keys {
		b := i % r
		buckets[b] = append(buckets[b], grouped[key]...)
	}

	return buckets, nil
}
