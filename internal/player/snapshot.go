package player

// Snapshot is the persisted player shape.
type Snapshot struct {
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	HP         int            `json:"hp"`
	HPMax      int            `json:"hp_max"`
	Mana       int            `json:"mana"`
	ManaMax    int            `json:"mana_max"`
	Level      int            `json:"level"`
	Exp        int            `json:"exp"`
	Reputation int            `json:"reputation"`
	Items      map[string]int `json:"items"`
}

func (p *Player) Snapshot() Snapshot {
	items := make(map[string]int, len(p.Items))
	for k, v := range p.Items {
		items[k] = v
	}
	return Snapshot{
		X: p.X, Y: p.Y,
		HP: p.HP, HPMax: p.HPMax,
		Mana: p.Mana, ManaMax: p.ManaMax,
		Level: p.Level, Exp: p.Exp,
		Reputation: p.Reputation,
		Items:      items,
	}
}

// Restore applies a snapshot. Fields that are never legitimately zero on
// a live player (max stats, level) keep their current value when the
// snapshot omits them, so partial or legacy saves degrade gracefully.
func (p *Player) Restore(s Snapshot) {
	p.X, p.Y = s.X, s.Y
	if s.HPMax > 0 {
		p.HPMax = s.HPMax
	}
	if s.ManaMax > 0 {
		p.ManaMax = s.ManaMax
	}
	if s.Level > 0 {
		p.Level = s.Level
	}
	if s.HP > 0 {
		p.HP = s.HP
	}
	p.Mana = s.Mana
	if p.Mana > p.ManaMax {
		p.Mana = p.ManaMax
	}
	if p.Mana < 0 {
		p.Mana = 0
	}
	p.Exp = s.Exp
	p.Reputation = s.Reputation
	if s.Items != nil {
		p.Items = make(map[string]int, len(s.Items))
		for k, v := range s.Items {
			p.Items[k] = v
		}
	}
	p.TimeSlow = 0
}
