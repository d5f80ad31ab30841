// Package shuffle randomizes presentation order of small slices.
package shuffle

import "math/rand"

// Shuffle permutes s in place with the Fisher-Yates algorithm and returns it.
// The randomness comes from math/rand and is not suitable for security use.
func Shuffle[T any](s []T) []T {
	return ShuffleFunc(s, rand.Intn)
}

// ShuffleFunc is Shuffle with a caller-supplied source. intn(n) must return
// a value in [0, n).
func ShuffleFunc[T any](s []T, intn func(n int) int) []T {
	for i := len(s) - 1; i > 0; i-- {
		j := intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
	return s
}
