package entity

// RelationKey is an unordered faction pair, normalized so (a,b) and
// (b,a) address the same affinity.
type RelationKey struct {
	A, B Faction
}

func relationKey(a, b Faction) RelationKey {
	if b < a {
		a, b = b, a
	}
	return RelationKey{A: a, B: b}
}

// Relations maps faction pairs to an affinity in [-100, 100]. Positive
// means friendly, negative hostile.
type Relations map[RelationKey]int

// DefaultRelations seeds the starting diplomacy: villagers like the
// player a little, monsters hate everyone.
func DefaultRelations() Relations {
	r := make(Relations)
	r.Set(FactionPlayer, FactionVillagers, 10)
	r.Set(FactionPlayer, FactionMonsters, -80)
	r.Set(FactionVillagers, FactionMonsters, -90)
	return r
}

// Get returns the affinity between two factions, zero when unset.
func (r Relations) Get(a, b Faction) int {
	return r[relationKey(a, b)]
}

// Set stores an affinity, clamped to [-100, 100].
func (r Relations) Set(a, b Faction, value int) {
	r[relationKey(a, b)] = clampAffinity(value)
}

// Shift moves an affinity by delta, clamped to [-100, 100].
func (r Relations) Shift(a, b Faction, delta int) {
	k := relationKey(a, b)
	r[k] = clampAffinity(r[k] + delta)
}

func clampAffinity(v int) int {
	if v < -100 {
		return -100
	}
	if v > 100 {
		return 100
	}
	return v
}
