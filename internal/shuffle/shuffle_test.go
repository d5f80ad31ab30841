package shuffle

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffle_PreservesElements(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 2, 7, 50} {
		in := make([]int, n)
		for i := range in {
			in[i] = i % 4 // duplicates on purpose
		}
		want := slices.Clone(in)

		out := Shuffle(slices.Clone(in))

		require.Len(t, out, n)
		assert.ElementsMatch(t, want, out)
	}
}

func TestShuffle_InPlace(t *testing.T) {
	t.Parallel()

	in := []string{"a", "b", "c", "d"}
	out := Shuffle(in)

	assert.Same(t, &in[0], &out[0])
}

func TestShuffleFunc_SwapSequence(t *testing.T) {
	t.Parallel()

	var bounds []int
	identity := func(n int) int {
		bounds = append(bounds, n)
		return n - 1
	}

	out := ShuffleFunc([]int{1, 2, 3, 4}, identity)

	assert.Equal(t, []int{1, 2, 3, 4}, out)
	assert.Equal(t, []int{4, 3, 2}, bounds)

	first := func(int) int { return 0 }
	// i=3 swaps 0<->3, i=2 swaps 0<->2, i=1 swaps 0<->1
	assert.Equal(t, []int{2, 3, 4, 1}, ShuffleFunc([]int{1, 2, 3, 4}, first))
}

func TestShuffle_ReachesEveryPermutation(t *testing.T) {
	t.Parallel()

	seen := make(map[[3]int]int)
	for i := 0; i < 3000; i++ {
		s := Shuffle([]int{1, 2, 3})
		seen[[3]int{s[0], s[1], s[2]}]++
	}

	assert.Len(t, seen, 6)
	for perm, count := range seen {
		assert.Greater(t, count, 300, "permutation %v looks under-represented", perm)
	}
}
