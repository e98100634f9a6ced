package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFakerNameGeneratorDeterministicPerSeed(t *testing.T) {
	first := NewFakerNameGenerator(42)
	second := NewFakerNameGenerator(42)

	for i := 0; i < 5; i++ {
		a, b := first(), second()
		require.NotEmpty(t, a)
		require.Equal(t, a, b)
	}
}

func TestFakerNameGeneratorConcurrentUse(t *testing.T) {
	gen := NewFakerNameGenerator(0)

	var wg sync.WaitGroup
	names := make([]string, 32)
	for i := range names {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			names[i] = gen()
		}(i)
	}
	wg.Wait()

	for _, name := range names {
		require.NotEmpty(t, name)
	}
}

func TestNilNameGenerator(t *testing.T) {
	var gen NameGenerator
	require.Equal(t, "", gen.next())
	require.Equal(t, "Felix", StaticNameGenerator("Felix").next())
}
