package model

// NumContainers is the number of containers (and slots) in a game
const NumContainers = 3

// Slot is a position visible to the player (0 left, 1 middle, 2 right)
type Slot int

// Valid reports whether the slot is one of the three positions
func (s Slot) Valid() bool {
	return s >= 0 && s < NumContainers
}

// Identity labels a physical container regardless of where it currently sits
type Identity int

// Valid reports whether the identity names one of the three containers
func (i Identity) Valid() bool {
	return i >= 0 && i < NumContainers
}

// Arrangement maps each slot to the identity of the container sitting in it
type Arrangement [NumContainers]Identity

// IdentityArrangement returns the starting arrangement where slot i holds container i
func IdentityArrangement() Arrangement {
	return Arrangement{0, 1, 2}
}

// IndexOf returns the slot holding the given identity, or -1 if absent
func (a Arrangement) IndexOf(id Identity) Slot {
	for s, held := range a {
		if held == id {
			return Slot(s)
		}
	}
	return -1
}

// IsPermutation reports whether every identity appears exactly once
func (a Arrangement) IsPermutation() bool {
	var seen [NumContainers]bool
	for _, id := range a {
		if !id.Valid() || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}

// Apply moves the container in slot s to slot p[s] and returns the result
func (a Arrangement) Apply(p Permutation) Arrangement {
	var next Arrangement
	for s, id := range a {
		next[p[s]] = id
	}
	return next
}

// Permutation relabels slots: the container in slot s moves to slot p[s]
type Permutation [NumContainers]Slot

// Permutations lists every permutation of three slots in lexicographic order.
// A uniform index into this table is a uniform permutation.
var Permutations = [...]Permutation{
	{0, 1, 2},
	{0, 2, 1},
	{1, 0, 2},
	{1, 2, 0},
	{2, 0, 1},
	{2, 1, 0},
}

// PermutationIndex returns the position of p in Permutations, or -1
func PermutationIndex(p Permutation) int {
	for i, candidate := range Permutations {
		if candidate == p {
			return i
		}
	}
	return -1
}

// PermutationBetween recovers the permutation that turns before into after.
// Both arrangements must be permutations of the same identities.
func PermutationBetween(before, after Arrangement) Permutation {
	var p Permutation
	for s, id := range before {
		p[s] = after.IndexOf(id)
	}
	return p
}
