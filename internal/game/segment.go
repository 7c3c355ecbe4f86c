package game

// NormalOutcome - закрытый набор исходов сегмента в обычном режиме
type NormalOutcome int

const (
	OutcomePlus50 NormalOutcome = iota
	OutcomePlus100
	OutcomePlus200
	OutcomeMinus50
	OutcomeMinus100
	OutcomeSpinAgain
	OutcomeDoublePoints
	OutcomeLoseTurn
)

func (o NormalOutcome) String() string {
	switch o {
	case OutcomePlus50:
		return "+50"
	case OutcomePlus100:
		return "+100"
	case OutcomePlus200:
		return "+200"
	case OutcomeMinus50:
		return "-50"
	case OutcomeMinus100:
		return "-100"
	case OutcomeSpinAgain:
		return "spin_again"
	case OutcomeDoublePoints:
		return "double_points"
	case OutcomeLoseTurn:
		return "lose_turn"
	}
	return "unknown"
}

// BattleOutcome - закрытый набор исходов сегмента в режиме Battle Royale
type BattleOutcome int

const (
	OutcomeVictory BattleOutcome = iota
	OutcomeDefeat
	OutcomeImmunity
	OutcomeDoubleElimination
	OutcomeSuddenDeath
	OutcomeExtraLife
)

func (o BattleOutcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeImmunity:
		return "immunity"
	case OutcomeDoubleElimination:
		return "double_elimination"
	case OutcomeSuddenDeath:
		return "sudden_death"
	case OutcomeExtraLife:
		return "extra_life"
	}
	return "unknown"
}

// Segment представляет сегмент на колесе
type Segment struct {
	Label  string        `json:"label"`
	Color  string        `json:"color"`
	Normal NormalOutcome `json:"-"`
	Battle BattleOutcome `json:"-"`
}

// возвращает конфигурацию колеса для обычного режима (8 сегментов)
func NormalSegments() []Segment {
	return []Segment{
		{Label: "+100", Color: "#2ecc71", Normal: OutcomePlus100},
		{Label: "-50", Color: "#e74c3c", Normal: OutcomeMinus50},
		{Label: "Spin Again", Color: "#3498db", Normal: OutcomeSpinAgain},
		{Label: "+200", Color: "#f1c40f", Normal: OutcomePlus200},
		{Label: "Lose Turn", Color: "#95a5a6", Normal: OutcomeLoseTurn},
		{Label: "+50", Color: "#27ae60", Normal: OutcomePlus50},
		{Label: "Double Pts", Color: "#9b59b6", Normal: OutcomeDoublePoints},
		{Label: "-100", Color: "#c0392b", Normal: OutcomeMinus100},
	}
}

// возвращает конфигурацию колеса для Battle Royale (6 сегментов)
func BattleSegments() []Segment {
	return []Segment{
		{Label: "Victory", Color: "#2ecc71", Battle: OutcomeVictory},
		{Label: "Defeat", Color: "#e74c3c", Battle: OutcomeDefeat},
		{Label: "Immunity", Color: "#3498db", Battle: OutcomeImmunity},
		{Label: "Double KO", Color: "#8e44ad", Battle: OutcomeDoubleElimination},
		{Label: "Sudden Death", Color: "#e67e22", Battle: OutcomeSuddenDeath},
		{Label: "Extra Life", Color: "#f1c40f", Battle: OutcomeExtraLife},
	}
}

// возвращает колесо для выбранного режима
func SegmentsForMode(mode Mode) []Segment {
	if mode == ModeBattleRoyale {
		return BattleSegments()
	}
	return NormalSegments()
}

// возвращает индексы "хороших" сегментов - используется как набор
// целей по умолчанию для подкрученного спина
func FavorableIndices(mode Mode) []int {
	var out []int
	if mode == ModeBattleRoyale {
		for i, s := range BattleSegments() {
			switch s.Battle {
			case OutcomeVictory, OutcomeImmunity, OutcomeExtraLife:
				out = append(out, i)
			}
		}
		return out
	}
	for i, s := range NormalSegments() {
		switch s.Normal {
		case OutcomePlus200, OutcomeDoublePoints:
			out = append(out, i)
		}
	}
	return out
}
