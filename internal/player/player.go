// Package player holds the hero's stats block: the piece of state the
// event engine rewards, entities damage, and snapshots persist.
package player

// Body size in world units, used for rectangle collision queries.
const (
	Width  = 24
	Height = 34
)

type Player struct {
	X, Y float64

	HP, HPMax     int
	Mana, ManaMax int
	Level         int
	Exp           int
	Reputation    int

	Items map[string]int

	// TimeSlow is the remaining duration of the time-dilation ability.
	// While positive, entity updates run at a reduced scale. Transient;
	// not persisted.
	TimeSlow float64
}

func New() *Player {
	return &Player{
		X: 200, Y: 180,
		HP: 100, HPMax: 100,
		Mana: 80, ManaMax: 80,
		Level: 1,
		Items: map[string]int{"wood": 10, "ore": 6},
	}
}

// GainExp adds experience and applies any level-ups, returning how many
// levels were gained. Each level-up raises hp max by 8 and mana max by 6
// and fully restores both.
func (p *Player) GainExp(amount int) int {
	p.Exp += amount
	ups := 0
	need := 70 + p.Level*35
	for p.Exp >= need {
		p.Exp -= need
		p.Level++
		ups++
		p.HPMax += 8
		p.ManaMax += 6
		p.HP = p.HPMax
		p.Mana = p.ManaMax
		need = 70 + p.Level*35
	}
	return ups
}

// AddItem adds count of an item kind to the bag.
func (p *Player) AddItem(kind string, count int) {
	if count <= 0 {
		return
	}
	p.Items[kind] += count
}

// ConsumeItem removes count of an item kind if the bag holds enough.
func (p *Player) ConsumeItem(kind string, count int) bool {
	if p.Items[kind] < count {
		return false
	}
	p.Items[kind] -= count
	if p.Items[kind] <= 0 {
		delete(p.Items, kind)
	}
	return true
}

// Damage reduces hp, never below zero.
func (p *Player) Damage(amount int) {
	p.HP -= amount
	if p.HP < 0 {
		p.HP = 0
	}
}

// CastTimeSlow spends 20 mana to dilate time for 3.5 seconds.
func (p *Player) CastTimeSlow() bool {
	if p.Mana < 20 {
		return false
	}
	p.Mana -= 20
	p.TimeSlow = 3.5
	return true
}

// Tick advances ability timers and regenerates mana.
func (p *Player) Tick(dt float64) {
	if p.TimeSlow > 0 {
		p.TimeSlow -= dt
	}
	p.Mana += int(6 * dt)
	if p.Mana > p.ManaMax {
		p.Mana = p.ManaMax
	}
}
