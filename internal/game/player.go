package game

// Status - статус игрока в текущем матче
type Status string

const (
	StatusActive     Status = "active"
	StatusEliminated Status = "eliminated"
	StatusWinner     Status = "winner"
)

// Cause - причина выбывания игрока
type Cause string

const (
	CauseDefeat            Cause = "defeat"
	CauseDoubleElimination Cause = "double_elimination"
	CauseSuddenDeath       Cause = "sudden_death"
)

// EliminationRecord фиксирует выбывание игрока. OrderKey - строго
// возрастающий счетчик матча: при двойном выбывании инициатор
// получает ключ строго меньше жертвы и поэтому всегда ранжируется ниже.
type EliminationRecord struct {
	Cause        Cause  `json:"cause"`
	EliminatedBy string `json:"eliminated_by,omitempty"`
	Round        int    `json:"round"`
	OrderKey     int64  `json:"order_key"`
}

// Player - участник матча
type Player struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Status      Status             `json:"status"`
	Score       int                `json:"score"`
	Elimination *EliminationRecord `json:"elimination,omitempty"`
	Revivals    int                `json:"revivals"`
}

// сбрасывает игровые поля перед новым матчем, состав не трогаем
func (p *Player) resetRuntime() {
	p.Status = StatusActive
	p.Score = 0
	p.Elimination = nil
	p.Revivals = 0
}
