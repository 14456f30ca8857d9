package wordcount

import (
	"fmt"
	"strings"

	"pkg.jsn.cam/minireduce/pkg/minireduce"
)

// WordCountWorker counts word occurrences. Map emits every whitespace-split
// field of a line; since the shuffle keeps all occurrences of a word in one
// bucket, Reduce can count by tallying its bucket locally.
type WordCountWorker struct{}

func (w WordCountWorker) Map(line string, emit minireduce.Emitter) error {
	for _, word := range strings.Fields(line) {
		emit(word)
	}
	return nil
}

func (w WordCountWorker) Reduce(bucket []string, emit minireduce.Emitter) error {
	counts := make(map[string]int)
	var order []string
	for _, word := range bucket {
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	for _, word := range order {
		emit(fmt.Sprintf("%s %d", word, counts[word]))
	}
	return nil
}

func (w WordCountWorker) Description() string {
	return "counts occurrences of each whitespace-separated word"
}
