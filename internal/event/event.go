// Package event generates, ages and resolves procedural world events:
// raids, quests, world shifts and isekai twists, plus the chain logic
// that lets a resolved event spawn a follow-up.
package event

// Type is an event category.
type Type string

const (
	TypeRaid   Type = "raid"
	TypeQuest  Type = "quest"
	TypeWorld  Type = "world"
	TypeIsekai Type = "isekai"
)

// ChainTag marks a resolved event as eligible for follow-up generation.
type ChainTag string

const (
	ChainNone       ChainTag = ""
	ChainDefense    ChainTag = "defense"
	ChainQuestline  ChainTag = "questline"
	ChainWorldshift ChainTag = "worldshift"
	ChainIsekai     ChainTag = "isekai"
)

// ItemGrant is one item stack in a reward.
type ItemGrant struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// Reward is what resolving an event pays out.
type Reward struct {
	Exp   int         `json:"exp"`
	Rep   int         `json:"rep"`
	Items []ItemGrant `json:"items,omitempty"`
}

// WorldEvent is one live or resolved event. JSON tags are the persisted
// wire names.
type WorldEvent struct {
	ID          int      `json:"eid"`
	Type        Type     `json:"etype"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Biome       string   `json:"biome"`
	Difficulty  int      `json:"difficulty"`
	Reward      Reward   `json:"reward"`
	Timer       float64  `json:"timer"`
	ChainTag    ChainTag `json:"chain_tag"`
	Resolved    bool     `json:"resolved"`
}
