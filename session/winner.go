// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"math/rand/v2"

	"github.com/danielhkuo/pickme/models"
)

// Winner returns the single surviving card of a finished session. Duel
// finishes look at Remaining; swipe finishes look at everything not passed
// (Remaining and Smashed). Zero or several candidates mean no winner.
func Winner(st State) (string, bool) {
	if st.Status != models.StatusFinished {
		return "", false
	}

	var candidates []string
	switch st.Mode {
	case models.ModeDuel:
		candidates = dedup(without(st.Remaining, st.Passed))
	default:
		candidates = dedup(without(append(cloneIDs(st.Remaining), st.Smashed...), st.Passed))
	}

	if len(candidates) != 1 {
		return "", false
	}
	return candidates[0], true
}

// Rand is the randomness used to draw duel pairs. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// PickPair draws two distinct entries uniformly from pool. pool must hold at
// least two ids.
func PickPair(pool []string, r Rand) (string, string) {
	n := len(pool)
	i := r.IntN(n)
	j := r.IntN(n - 1)
	if j >= i {
		j++
	}
	return pool[i], pool[j]
}
