package services

import (
	"sync"

	"github.com/brianvoe/gofakeit/v7"
)

// NameGenerator produces a placeholder personal name for a new cat.
type NameGenerator func() string

// NewFakerNameGenerator returns a generator backed by its own faker instance.
// A zero seed draws a random one.
func NewFakerNameGenerator(seed uint64) NameGenerator {
	faker := gofakeit.New(seed)
	var mu sync.Mutex

	return func() string {
		mu.Lock()
		defer mu.Unlock()
		return faker.Name()
	}
}

// StaticNameGenerator always returns name.
func StaticNameGenerator(name string) NameGenerator {
	return func() string { return name }
}

func (g NameGenerator) next() string {
	if g == nil {
		return ""
	}
	return g()
}
