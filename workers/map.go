package workers

import (
	"sort"

	"pkg.jsn.cam/minireduce/pkg/minireduce"
	"pkg.jsn.cam/minireduce/workers/identity"
	"pkg.jsn.cam/minireduce/workers/wordcount"
)

// DefaultWorker is the registry name used when no worker is selected.
const DefaultWorker = "identity"

var Workers = map[string]minireduce.Worker{
	"identity":  identity.IdentityWorker{},
	"wordcount": wordcount.WordCountWorker{},
}

func IsValidWorker(name string) bool {
	_, exists := Workers[name]
	return exists
}

func GetWorker(name string) minireduce.Worker {
	return Workers[name]
}

func ListWorkers() []string {
	var names []string
	for name := range Workers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
