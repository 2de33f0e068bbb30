package data

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// BiomeTheme feeds procedural location names ("shadowed grove").
type BiomeTheme struct {
	Adjectives []string `yaml:"adjectives"`
	Nouns      []string `yaml:"nouns"`
}

// ContentTable holds every text bank the simulation draws from: event
// variants, quest objectives, dialogue and ambient flavor. Banks are
// ordered; seeded draws index into them, so reordering a bank changes
// outcomes for a given seed.
type ContentTable struct {
	BiomeThemes map[string]BiomeTheme `yaml:"biome_themes"`
	BiomeNames  map[string]string     `yaml:"biome_names"`

	RaidVariants []string `yaml:"raid_variants"`
	// WorldVariants: exactly one entry mentions "ruin". The event engine
	// keys the ruins impact off that word in the stored title so the
	// variant survives snapshot round-trips.
	WorldVariants []string `yaml:"world_variants"`
	// IsekaiTwists: same contract, keyed on "blessing".
	IsekaiTwists []string `yaml:"isekai_twists"`

	QuestObjectives []string `yaml:"quest_objectives"`
	QuestRewards    []string `yaml:"quest_rewards"`
	EventIntros     []string `yaml:"event_intros"`

	Dialogues   map[string][]string `yaml:"dialogues"`
	FlavorLines []string            `yaml:"flavor_lines"`
}

// LoadContentTable reads a YAML bank file over the built-in defaults.
// Missing keys keep their default bank, so a pack file may override a
// single bank without restating the rest.
func LoadContentTable(path string) (*ContentTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content table: %w", err)
	}
	t := DefaultContent()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse content table: %w", err)
	}
	return t, nil
}

// Theme returns the naming theme for a biome, falling back to plains.
func (t *ContentTable) Theme(biome string) BiomeTheme {
	if th, ok := t.BiomeThemes[biome]; ok {
		return th
	}
	return t.BiomeThemes["plains"]
}

// BiomeName returns the in-sentence name of a biome ("the village ruins").
func (t *ContentTable) BiomeName(biome string) string {
	if n, ok := t.BiomeNames[biome]; ok {
		return n
	}
	return "the " + strings.ReplaceAll(biome, "_", " ")
}

// DialogueFor returns the dialogue bank for an entity kind.
func (t *ContentTable) DialogueFor(kind string) []string {
	if lines, ok := t.Dialogues[kind]; ok && len(lines) > 0 {
		return lines
	}
	return []string{"..."}
}

var titler = cases.Title(language.English)

// DisplayName turns an internal identifier into a log-friendly name:
// "demon_lord" becomes "Demon Lord".
func DisplayName(id string) string {
	return titler.String(strings.ReplaceAll(id, "_", " "))
}

func DefaultContent() *ContentTable {
	return &ContentTable{
		BiomeThemes: map[string]BiomeTheme{
			"plains": {
				Adjectives: []string{"sunlit", "windy", "emerald", "gentle", "vast", "golden", "misty", "star-kissed", "sacred", "luminous"},
				Nouns:      []string{"meadow", "field", "valley", "prairie", "ridge", "crossroad", "pasture", "camp", "hamlet", "gate"},
			},
			"forest": {
				Adjectives: []string{"verdant", "shadowed", "fae", "mossy", "thorned", "silent", "amber", "arcane", "twilit", "moonbound"},
				Nouns:      []string{"thicket", "grove", "canopy", "trail", "clearing", "tree-ring", "copse", "sanctum", "shrine", "pool"},
			},
			"mountains": {
				Adjectives: []string{"frozen", "stormy", "granite", "high", "shattered", "howling", "ashen", "obsidian", "glacial", "thunder"},
				Nouns:      []string{"peak", "pass", "cliff", "ridge", "summit", "cavern", "mine", "crag", "fort", "spire"},
			},
			"dungeon": {
				Adjectives: []string{"cursed", "forbidden", "forgotten", "abyssal", "eldritch", "violet", "haunted", "demonic", "void", "eternal"},
				Nouns:      []string{"crypt", "labyrinth", "vault", "hall", "catacomb", "citadel", "pit", "gateway", "arena", "rift"},
			},
		},
		BiomeNames: map[string]string{
			"plains":        "the plains",
			"forest":        "the forest",
			"mountains":     "the mountains",
			"village_ruins": "the village ruins",
			"dungeon":       "the dungeon",
		},
		RaidVariants: []string{
			"Bandit raid",
			"Monster wave",
			"Demon incursion",
		},
		WorldVariants: []string{
			"meteor shower",
			"ancient ruins surfaced",
			"merchant caravan ambushed",
		},
		IsekaiTwists: []string{
			"a gate to the modern world flickered open",
			"a god offers a blessing or a curse",
			"a rival hero from another world appears",
		},
		QuestObjectives: []string{
			"escort a caravan through monster roads",
			"rescue a trapped villager from slime caverns",
			"collect moon petals before dawn",
			"defeat rogue bandits near the broken gate",
			"recover a stolen heirloom blade",
			"investigate crimson lights in the ruin",
			"clear wolves from the orchard",
			"deliver mana crystals to a remote shrine",
			"protect a merchant camp at twilight",
			"hunt a corrupted treant",
			"gather ore for blacksmith apprentices",
			"repair ancient totems in the forest",
			"challenge a rival adventurer",
			"trace missing scouts by footprints",
			"seal an unstable portal",
			"rebuild the village watchtower",
			"capture a runaway mimic chest",
			"collect fireflies for alchemy",
			"guard lovers meeting under moonlight",
			"retrieve an artifact from a cursed hall",
			"rescue a cat from a demon roof",
			"reclaim a haunted windmill",
			"escort children to the next settlement",
			"map hidden dungeon corridors",
			"recover tax records from goblin raiders",
			"help a wandering bard gather song echoes",
			"purify a lake touched by shadow",
			"restore a broken teleport obelisk",
			"craft emergency medicine for refugees",
			"track a ghost caravan",
		},
		QuestRewards: []string{
			"gold chest",
			"core cluster",
			"artisan tool kit",
			"enchanted plank stack",
			"arcane sword blueprint",
			"otherworld blessing token",
			"faction reputation",
			"merchant discount voucher",
			"dragon scale fragment",
			"mystic accessory",
			"training manual",
			"companion contract",
		},
		EventIntros: []string{
			"A trumpet of alarm echoes across the valley.",
			"The sky flashes and the wind tastes of mana.",
			"Villagers run in panic from the northern road.",
			"A mysterious letter arrives bearing your name.",
			"The earth trembles with a distant roar.",
			"An arcane sigil burns into the ground nearby.",
			"Merchants shout for guards at the city gate.",
			"A godlike whisper invades your thoughts.",
			"A rival hero posts a challenge notice.",
			"A wounded scout collapses at your campfire.",
			"Strange purple lightning splits the clouds.",
			"A caravan bell rings in desperate rhythm.",
		},
		Dialogues: map[string][]string{
			"villager": {
				"Thanks for helping us. We can finally sleep tonight.",
				"Monsters get bold after rain. Please be careful.",
				"If you build walls, fewer beasts wander in.",
				"Some say this world is a game. You feel that too?",
				"I saw a star fall where the old ruins stand.",
				"Merchants pay better after you gain reputation.",
				"The rival hero is flashy, but your heart seems stronger.",
				"Our crops grow faster near your strange aura.",
				"Bandits took my ring. I still believe you'll get it back.",
				"I heard singing in the dungeon halls.",
			},
			"merchant": {
				"Premium blades, premium prices, premium survival!",
				"Bring me cores and I can open special stock.",
				"Caravan routes are cursed this week.",
				"Your fame improves my profit. Keep it up.",
				"A demon lord bounty just doubled.",
				"Rain damages goods. Buy now before shortages.",
				"I can hire companions if you pay enough.",
				"Guild taxes are brutal this season.",
				"Found this amulet in meteor debris.",
				"Try selling crafted staffs; huge margin.",
			},
			"companion": {
				"Your aura is dazzling tonight.",
				"Let me support your quest chain.",
				"I can fight or watch the village, your choice.",
				"The moon makes your sword look legendary.",
				"I dreamt of a gate to your old world.",
				"Summon me when danger gets overwhelming.",
				"Your kindness is your strongest stat.",
				"Let's rebuild this village together.",
				"Teach me your time-slow trick someday.",
				"I wrote a song about your first battle.",
			},
		},
		FlavorLines: []string{
			"A distant bell rings three times, then silence.",
			"You notice glowing mushrooms near wet rocks.",
			"A fox watches from a hill before vanishing.",
			"The wind carries laughter from a ruined village.",
			"Ancient runes pulse softly in the dirt.",
			"A fallen star leaves a silver trail overhead.",
			"Drums echo far beyond the forest line.",
			"Clouds briefly form a dragon silhouette.",
			"The grass glitters like tiny gemstones.",
			"You hear distant chanting from the mountains.",
			"Shadows shift unnaturally near dungeon doors.",
			"A merchant banner flaps on an empty road.",
			"Rain smells like ozone and wildflowers.",
			"A raven drops a key and flies away.",
			"The moonlight paints your sword in blue.",
		},
	}
}
