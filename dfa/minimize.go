package dfa

import (
	"sort"
	"strconv"
	"strings"
)

// group is a set of DFA state indices known to be equivalent so far.
type group []StateID

// Minimize collapses equivalent states via Moore-style partition
// refinement: states start grouped by (accepting?, terminal, priority,
// lookahead identity), then any
// group whose members disagree on which partition group their transitions
// land in is split, repeating until the partition stops changing.
func Minimize(d *DFA) *DFA {
	partition := initialPartition(d)

	for {
		next, changed := refine(d, partition)
		partition = next
		if !changed {
			break
		}
	}

	return buildFromPartition(d, partition)
}

// acceptKey identifies states that must never be merged: differing
// terminal, differing priority, or the same terminal and priority but a
// different lookahead identity (4.5: "states with lookaheads must not be
// merged with states without them, and states with differing lookahead
// automata must not be merged").
type acceptKey struct {
	terminal    int
	priority    int
	lookaheadID int
}

// initialPartition groups states by whether they accept and, if so, by
// their acceptKey — states with a different terminal, priority or
// lookahead identity can never merge, and a non-accepting state can never
// merge with an accepting one.
func initialPartition(d *DFA) []group {
	nonAccepting := group{}
	byKey := make(map[acceptKey]group)

	for i, st := range d.States {
		if st.Accept.HasMatch {
			key := acceptKey{terminal: st.Accept.Terminal, priority: st.Accept.Priority, lookaheadID: st.Accept.LookaheadID}
			byKey[key] = append(byKey[key], StateID(i))
		} else {
			nonAccepting = append(nonAccepting, StateID(i))
		}
	}

	keys := make([]acceptKey, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].terminal != keys[j].terminal {
			return keys[i].terminal < keys[j].terminal
		}
		if keys[i].priority != keys[j].priority {
			return keys[i].priority < keys[j].priority
		}
		return keys[i].lookaheadID < keys[j].lookaheadID
	})

	partition := make([]group, 0, len(keys)+1)
	if len(nonAccepting) > 0 {
		partition = append(partition, nonAccepting)
	}
	for _, k := range keys {
		partition = append(partition, byKey[k])
	}
	return partition
}

// groupIndex builds a lookup from state id to its current partition group.
func groupIndex(partition []group) map[StateID]int {
	idx := make(map[StateID]int)
	for gi, g := range partition {
		for _, s := range g {
			idx[s] = gi
		}
	}
	return idx
}

// refine splits every group whose members' transition signatures disagree
// under the current partition, returning the new partition and whether any
// group actually split.
func refine(d *DFA, partition []group) ([]group, bool) {
	idx := groupIndex(partition)
	var next []group
	changed := false

	for _, g := range partition {
		buckets := make(map[string]group)
		var order []string
		for _, s := range g {
			sig := signature(d.States[s].Transitions, idx)
			if _, ok := buckets[sig]; !ok {
				order = append(order, sig)
			}
			buckets[sig] = append(buckets[sig], s)
		}
		if len(buckets) > 1 {
			changed = true
		}
		for _, k := range order {
			next = append(next, buckets[k])
		}
	}
	return next, changed
}

// signature encodes a state's transitions as (class, target-group) pairs,
// sorted for a deterministic key. Two states with identical signatures
// under the current partition are indistinguishable so far.
func signature(transitions []Transition, groupOf map[StateID]int) string {
	type pair struct {
		class  uint32
		target int
	}
	pairs := make([]pair, len(transitions))
	for i, t := range transitions {
		pairs[i] = pair{class: uint32(t.Class), target: groupOf[t.Target]}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].class != pairs[j].class {
			return pairs[i].class < pairs[j].class
		}
		return pairs[i].target < pairs[j].target
	})

	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(strconv.FormatUint(uint64(p.class), 36))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(p.target))
		b.WriteByte(',')
	}
	return b.String()
}

// buildFromPartition renumbers the partition so the group containing the
// original start state becomes group 0, then emits one representative state
// per group with transitions remapped to group indices.
func buildFromPartition(d *DFA, partition []group) *DFA {
	idx := groupIndex(partition)
	startGroup := idx[d.Start]
	if startGroup != 0 {
		partition[0], partition[startGroup] = partition[startGroup], partition[0]
		idx = groupIndex(partition)
	}

	states := make([]State, len(partition))
	for gi, g := range partition {
		rep := g[0]
		var accept AcceptInfo
		for _, s := range g {
			if d.States[s].Accept.HasMatch {
				accept = d.States[s].Accept
				break
			}
		}

		transitions := make([]Transition, 0, len(d.States[rep].Transitions))
		for _, t := range d.States[rep].Transitions {
			transitions = append(transitions, Transition{Class: t.Class, Target: StateID(idx[t.Target])})
		}
		states[gi] = State{Transitions: dedupTransitions(transitions), Accept: accept}
	}

	return &DFA{States: states, Start: 0}
}
