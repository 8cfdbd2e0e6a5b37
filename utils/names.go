package utils

import (
	"math/rand"
	"strings"

	"github.com/Pallinder/go-randomdata"
)

// NameGenerator gives distinct random asset-safe names, same sequence for same seed
type NameGenerator struct {
	used map[string]struct{}
}

func NewNameGenerator(seed int64) *NameGenerator {
	randomdata.CustomRand(rand.New(rand.NewSource(seed)))
	return &NameGenerator{used: make(map[string]struct{})}
}

// Name returns name without spaces, never returned before by this generator
func (ng *NameGenerator) Name() string {
	for {
		name := strings.Replace(randomdata.SillyName(), " ", "", -1)
		if _, exists := ng.used[name]; !exists {
			ng.used[name] = struct{}{}
			return name
		}
	}
}
