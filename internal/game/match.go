package game

import (
	"errors"
	"strconv"
	"strings"
	"sync"
)

// Phase - фаза жизненного цикла матча
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// Mode - режим игры
type Mode string

const (
	ModeNormal       Mode = "normal"
	ModeBattleRoyale Mode = "battle_royale"
)

const maxPlayers = 64

var (
	ErrNotSetupPhase  = errors.New("операция доступна только в фазе настройки")
	ErrRosterFull     = errors.New("достигнут лимит игроков")
	ErrInvalidName    = errors.New("имя игрока должно быть от 1 до 24 символов")
	ErrPlayerNotFound = errors.New("игрок не найден")
	ErrNotEnough      = errors.New("недостаточно игроков для старта")
)

// IDGenerator выдает идентификаторы игроков. Передается снаружи,
// чтобы матч не зависел от глобального состояния процесса.
type IDGenerator func() string

// OutcomeResult - итог применения исхода спина, отдается наружу
// для трансляции зрителям
type OutcomeResult struct {
	Outcome      string   `json:"outcome"`
	Message      string   `json:"message"`
	Delta        int      `json:"delta,omitempty"`
	Eliminated   []string `json:"eliminated,omitempty"`
	Revived      string   `json:"revived,omitempty"`
	Finished     bool     `json:"finished"`
	WinnerID     string   `json:"winner_id,omitempty"`
	NextPlayerID string   `json:"next_player_id,omitempty"`
	Round        int      `json:"round"`
}

// Match - машина состояний одного матча. Все переходы идут через
// методы под мьютексом, параллельной мутации нет.
type Match struct {
	mu          sync.RWMutex
	mode        Mode
	phase       Phase
	targetScore int
	players     []*Player
	currentIdx  int
	round       int
	elimSeq     int64
	rankings    []RankEntry
	idgen       IDGenerator
}

// NewMatch создает матч в фазе настройки
func NewMatch(mode Mode, targetScore int, idgen IDGenerator) *Match {
	return &Match{
		mode:        mode,
		phase:       PhaseSetup,
		targetScore: targetScore,
		round:       1,
		idgen:       idgen,
	}
}

func (m *Match) Mode() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

func (m *Match) Phase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

func (m *Match) Round() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.round
}

// возвращает ID игрока, чей сейчас ход, или пустую строку
func (m *Match) CurrentPlayerID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.currentIdx < 0 || m.currentIdx >= len(m.players) {
		return ""
	}
	return m.players[m.currentIdx].ID
}

// AddPlayer добавляет игрока в состав. Только в фазе настройки.
func (m *Match) AddPlayer(name string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseSetup {
		return nil, ErrNotSetupPhase
	}
	if len(m.players) >= maxPlayers {
		return nil, ErrRosterFull
	}
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > 24 {
		return nil, ErrInvalidName
	}

	p := &Player{
		ID:     m.idgen(),
		Name:   name,
		Status: StatusActive,
	}
	m.players = append(m.players, p)
	return p, nil
}

// RemovePlayer убирает игрока из состава. Только в фазе настройки.
func (m *Match) RemovePlayer(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseSetup {
		return ErrNotSetupPhase
	}
	for i, p := range m.players {
		if p.ID == id {
			m.players = append(m.players[:i], m.players[i+1:]...)
			return nil
		}
	}
	return ErrPlayerNotFound
}

// Start переводит матч в фазу игры и сбрасывает игровые поля всех
// игроков. Требует минимум 1 игрока (обычный режим) или 2 (Battle Royale).
func (m *Match) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == PhasePlaying {
		return ErrNotSetupPhase
	}
	min := 1
	if m.mode == ModeBattleRoyale {
		min = 2
	}
	if len(m.players) < min {
		return ErrNotEnough
	}

	for _, p := range m.players {
		p.resetRuntime()
	}
	m.currentIdx = 0
	m.round = 1
	m.elimSeq = 0
	m.rankings = nil
	m.phase = PhasePlaying
	return nil
}

// Reset возвращает матч в фазу настройки: состав сохраняется,
// статусы и очки очищаются. Повторный вызов ничего не меняет.
func (m *Match) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.players {
		p.resetRuntime()
	}
	m.currentIdx = 0
	m.round = 1
	m.elimSeq = 0
	m.rankings = nil
	m.phase = PhaseSetup
}

// ApplyNormalOutcome применяет исход спина в обычном режиме.
// Возвращает nil если исход неприменим (не та фаза, текущий игрок
// не активен) - это ошибка вызывающего, поглощается молча.
func (m *Match) ApplyNormalOutcome(o NormalOutcome) *OutcomeResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.currentActive()
	if m.phase != PhasePlaying || cur == nil {
		return nil
	}

	res := &OutcomeResult{Outcome: o.String(), Round: m.round}
	advance := true

	switch o {
	case OutcomePlus50:
		res.Delta = 50
	case OutcomePlus100:
		res.Delta = 100
	case OutcomePlus200:
		res.Delta = 200
	case OutcomeMinus50:
		res.Delta = -50
	case OutcomeMinus100:
		res.Delta = -100
	case OutcomeSpinAgain:
		res.Message = cur.Name + " крутит еще раз"
		advance = false
	case OutcomeDoublePoints:
		// удвоение: прибавляем текущий счет, ноль и минус сохраняются как есть
		res.Delta = cur.Score
	case OutcomeLoseTurn:
		res.Message = cur.Name + " пропускает ход"
	}

	cur.Score += res.Delta
	if res.Message == "" {
		res.Message = cur.Name + ": " + o.String()
	}

	// достижение целевого счета завершает матч немедленно,
	// даже если выпал "крутить еще раз"
	if m.targetScore > 0 && cur.Score >= m.targetScore {
		cur.Status = StatusWinner
		m.phase = PhaseFinished
		res.Finished = true
		res.WinnerID = cur.ID
		res.Message = cur.Name + " побеждает со счетом " + strconv.Itoa(cur.Score)
		return res
	}

	if advance {
		m.advanceTurn()
	}
	res.Round = m.round
	res.NextPlayerID = m.players[m.currentIdx].ID
	return res
}

// ApplyBattleOutcome применяет исход спина в режиме Battle Royale.
// Возвращает nil если исход неприменим (см. ApplyNormalOutcome).
func (m *Match) ApplyBattleOutcome(o BattleOutcome) *OutcomeResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.currentActive()
	if m.phase != PhasePlaying || cur == nil {
		return nil
	}

	res := &OutcomeResult{Outcome: o.String(), Round: m.round}

	switch o {
	case OutcomeVictory:
		res.Message = cur.Name + " выстоял"
	case OutcomeImmunity:
		res.Message = cur.Name + " под иммунитетом"
	case OutcomeDefeat:
		m.eliminate(cur, CauseDefeat, "")
		res.Eliminated = append(res.Eliminated, cur.Name)
		res.Message = cur.Name + " выбывает"
	case OutcomeDoubleElimination:
		// инициатор получает меньший ключ и поэтому всегда ранжируется
		// строго ниже своей жертвы
		m.eliminate(cur, CauseDoubleElimination, "")
		res.Eliminated = append(res.Eliminated, cur.Name)
		if victim := m.randomActive(); victim != nil {
			m.eliminate(victim, CauseDoubleElimination, cur.Name)
			res.Eliminated = append(res.Eliminated, victim.Name)
			res.Message = cur.Name + " утягивает за собой " + victim.Name
		} else {
			res.Message = cur.Name + " выбывает, второй жертвы не нашлось"
		}
	case OutcomeSuddenDeath:
		if secureRandInt(2) == 0 {
			m.eliminate(cur, CauseSuddenDeath, "")
			res.Eliminated = append(res.Eliminated, cur.Name)
			res.Message = cur.Name + " не пережил внезапную смерть"
		} else {
			res.Message = cur.Name + " пережил внезапную смерть"
		}
	case OutcomeExtraLife:
		if revived := m.randomEliminated(); revived != nil {
			revived.Status = StatusActive
			revived.Elimination = nil
			revived.Revivals++
			res.Revived = revived.Name
			res.Message = revived.Name + " возвращается в игру"
		} else {
			res.Message = "возвращать некого"
		}
	}

	// после любого исхода пересчитываем выживших
	if countActive(m.players) <= 1 {
		m.finishBattle(res)
		return res
	}

	m.advanceTurn()
	res.Round = m.round
	res.NextPlayerID = m.players[m.currentIdx].ID
	return res
}

// Rankings возвращает финальную таблицу мест (пусто до конца матча)
func (m *Match) Rankings() []RankEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RankEntry, len(m.rankings))
	copy(out, m.rankings)
	return out
}

// Serialize возвращает снимок состояния для клиента
func (m *Match) Serialize() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	players := make([]*Player, len(m.players))
	copy(players, m.players)

	state := map[string]interface{}{
		"mode":                 m.mode,
		"phase":                m.phase,
		"round":                m.round,
		"current_player_index": m.currentIdx,
		"players":              players,
	}
	if m.mode == ModeNormal {
		state["target_score"] = m.targetScore
	}
	if m.phase == PhaseFinished && len(m.rankings) > 0 {
		state["rankings"] = m.rankings
	}
	return state
}

// возвращает текущего игрока если он активен, иначе nil
func (m *Match) currentActive() *Player {
	if m.currentIdx < 0 || m.currentIdx >= len(m.players) {
		return nil
	}
	p := m.players[m.currentIdx]
	if p.Status != StatusActive {
		return nil
	}
	return p
}

func (m *Match) advanceTurn() {
	next, wrapped := NextActiveIndex(m.currentIdx, m.players)
	m.currentIdx = next
	if wrapped {
		m.round++
	}
}

func (m *Match) eliminate(p *Player, cause Cause, by string) {
	m.elimSeq++
	p.Status = StatusEliminated
	p.Elimination = &EliminationRecord{
		Cause:        cause,
		EliminatedBy: by,
		Round:        m.round,
		OrderKey:     m.elimSeq,
	}
}

// выбирает равновероятно случайного активного игрока кроме текущего
func (m *Match) randomActive() *Player {
	var pool []*Player
	for i, p := range m.players {
		if i != m.currentIdx && p.Status == StatusActive {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		return nil
	}
	return pool[secureRandInt(int64(len(pool)))]
}

// выбирает равновероятно случайного выбывшего игрока
func (m *Match) randomEliminated() *Player {
	var pool []*Player
	for _, p := range m.players {
		if p.Status == StatusEliminated {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		return nil
	}
	return pool[secureRandInt(int64(len(pool)))]
}

// завершает Battle Royale: единственный выживший (если есть)
// становится победителем, считается финальная таблица мест
func (m *Match) finishBattle(res *OutcomeResult) {
	for _, p := range m.players {
		if p.Status == StatusActive {
			p.Status = StatusWinner
			res.WinnerID = p.ID
			if res.Message != "" {
				res.Message += "; "
			}
			res.Message += p.Name + " - последний выживший"
		}
	}
	m.phase = PhaseFinished
	m.rankings = ComputeRankings(m.players, m.round)
	res.Finished = true
	res.Round = m.round
}
