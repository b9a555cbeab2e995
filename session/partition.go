// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"slices"

	"github.com/danielhkuo/pickme/models"
)

// State is the part of a session the state machine reads and writes.
type State struct {
	models.Partition
	Mode   models.Mode
	Status models.Status
}

// StateOf extracts the machine state from a stored session.
func StateOf(s models.Session) State {
	return State{
		Partition: clonePartition(s.Partition),
		Mode:      s.Mode,
		Status:    s.Status,
	}
}

// Apply writes st back onto s.
func (st State) Apply(s *models.Session) {
	s.Partition = clonePartition(st.Partition)
	s.Mode = st.Mode
	s.Status = st.Status
}

// NewState builds the initial state of a session over the given deck order.
// A duel over fewer than two cards has nothing to decide and starts finished.
func NewState(cardIDs []string, mode models.Mode) State {
	st := State{
		Partition: models.Partition{
			Remaining: dedup(cardIDs),
			Smashed:   []string{},
			Passed:    []string{},
		},
		Mode:   mode,
		Status: models.StatusActive,
	}
	if mode == models.ModeDuel && len(st.Remaining) < 2 {
		st.Status = models.StatusFinished
	}
	return st
}

// Disjoint reports whether no card id appears in two sequences, or twice in
// one.
func Disjoint(p models.Partition) bool {
	seen := make(map[string]struct{}, len(p.Remaining)+len(p.Smashed)+len(p.Passed))
	for _, seq := range [][]string{p.Remaining, p.Smashed, p.Passed} {
		for _, id := range seq {
			if _, dup := seen[id]; dup {
				return false
			}
			seen[id] = struct{}{}
		}
	}
	return true
}

// Contains reports whether id is in any of the three sequences.
func Contains(p models.Partition, id string) bool {
	return slices.Contains(p.Remaining, id) ||
		slices.Contains(p.Smashed, id) ||
		slices.Contains(p.Passed, id)
}

// Extend appends deck cards that are in no sequence yet to Remaining,
// keeping deck order.
func Extend(st State, deckOrder []string) (State, []string) {
	next := st.clone()
	var added []string
	for _, id := range deckOrder {
		if Contains(next.Partition, id) {
			continue
		}
		next.Remaining = append(next.Remaining, id)
		added = append(added, id)
	}
	return next, added
}

func (st State) clone() State {
	return State{Partition: clonePartition(st.Partition), Mode: st.Mode, Status: st.Status}
}

func clonePartition(p models.Partition) models.Partition {
	return models.Partition{
		Remaining: cloneIDs(p.Remaining),
		Smashed:   cloneIDs(p.Smashed),
		Passed:    cloneIDs(p.Passed),
	}
}

// cloneIDs never returns nil so sequences encode as [] rather than null.
func cloneIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func remove(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(v string) bool { return v == id })
}

func appendUnique(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func dedup(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = appendUnique(out, id)
	}
	return out
}

// without returns ids minus anything in exclude, preserving order.
func without(ids, exclude []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(exclude, id) {
			out = append(out, id)
		}
	}
	return out
}
