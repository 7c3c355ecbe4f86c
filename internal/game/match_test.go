package game

import (
	"strconv"
	"testing"
)

// последовательный генератор ID для тестов
func testIDGen() IDGenerator {
	n := 0
	return func() string {
		n++
		return "p" + strconv.Itoa(n)
	}
}

func newBattleMatch(t *testing.T, names ...string) *Match {
	t.Helper()
	m := NewMatch(ModeBattleRoyale, 0, testIDGen())
	for _, name := range names {
		if _, err := m.AddPlayer(name); err != nil {
			t.Fatalf("AddPlayer(%s): %v", name, err)
		}
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return m
}

func TestAddPlayerValidation(t *testing.T) {
	m := NewMatch(ModeNormal, 100, testIDGen())

	if _, err := m.AddPlayer("  "); err != ErrInvalidName {
		t.Errorf("пустое имя: ожидалась ErrInvalidName, получено %v", err)
	}
	if _, err := m.AddPlayer("очень длинное имя игрока за пределами лимита"); err != ErrInvalidName {
		t.Errorf("длинное имя: ожидалась ErrInvalidName, получено %v", err)
	}

	p, err := m.AddPlayer("Алиса")
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if p.ID == "" || p.Status != StatusActive {
		t.Errorf("новый игрок: id=%q status=%s", p.ID, p.Status)
	}
}

func TestRosterLimit(t *testing.T) {
	m := NewMatch(ModeNormal, 100, testIDGen())
	for i := 0; i < maxPlayers; i++ {
		if _, err := m.AddPlayer("Игрок" + strconv.Itoa(i)); err != nil {
			t.Fatalf("игрок %d: %v", i, err)
		}
	}
	if _, err := m.AddPlayer("лишний"); err != ErrRosterFull {
		t.Errorf("ожидалась ErrRosterFull, получено %v", err)
	}
}

func TestStartRequiresEnoughPlayers(t *testing.T) {
	m := NewMatch(ModeBattleRoyale, 0, testIDGen())
	m.AddPlayer("Один")
	if err := m.Start(); err != ErrNotEnough {
		t.Errorf("battle royale с одним игроком: ожидалась ErrNotEnough, получено %v", err)
	}

	n := NewMatch(ModeNormal, 100, testIDGen())
	if err := n.Start(); err != ErrNotEnough {
		t.Errorf("обычный режим без игроков: ожидалась ErrNotEnough, получено %v", err)
	}
}

func TestRosterFrozenWhilePlaying(t *testing.T) {
	m := newBattleMatch(t, "A", "B")
	if _, err := m.AddPlayer("C"); err != ErrNotSetupPhase {
		t.Errorf("добавление во время игры: ожидалась ErrNotSetupPhase, получено %v", err)
	}
	if err := m.RemovePlayer("p1"); err != ErrNotSetupPhase {
		t.Errorf("удаление во время игры: ожидалась ErrNotSetupPhase, получено %v", err)
	}
}

func TestNormalModeScoring(t *testing.T) {
	m := NewMatch(ModeNormal, 100, testIDGen())
	m.AddPlayer("X")
	m.AddPlayer("Y")
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}

	res := m.ApplyNormalOutcome(OutcomePlus50)
	if res == nil || res.Delta != 50 {
		t.Fatalf("ожидалась дельта 50, результат %+v", res)
	}
	state := m.Serialize()
	players := state["players"].([]*Player)
	if players[0].Score != 50 {
		t.Errorf("счет X = %d, ожидалось 50", players[0].Score)
	}
	if res.NextPlayerID != players[1].ID {
		t.Errorf("ход должен был перейти к Y")
	}
}

func TestNormalModeSpinAgainKeepsTurn(t *testing.T) {
	m := NewMatch(ModeNormal, 100, testIDGen())
	m.AddPlayer("X")
	m.AddPlayer("Y")
	m.Start()

	cur := m.CurrentPlayerID()
	res := m.ApplyNormalOutcome(OutcomeSpinAgain)
	if res == nil {
		t.Fatal("ожидался результат")
	}
	if m.CurrentPlayerID() != cur {
		t.Errorf("spin again не должен передавать ход")
	}
}

func TestNormalModeDoublePointsWin(t *testing.T) {
	// сценарий: цель 150, игрок со 100 очками выбрасывает удвоение - 200,
	// матч завершается немедленно
	m := NewMatch(ModeNormal, 150, testIDGen())
	x, _ := m.AddPlayer("X")
	m.AddPlayer("Y")
	m.Start()

	m.ApplyNormalOutcome(OutcomePlus100) // X: 100
	m.ApplyNormalOutcome(OutcomeMinus50) // Y: -50
	res := m.ApplyNormalOutcome(OutcomeDoublePoints) // X: 200 >= 150

	if res == nil || !res.Finished || res.WinnerID != x.ID {
		t.Fatalf("ожидалась победа X, результат %+v", res)
	}
	if m.Phase() != PhaseFinished {
		t.Fatalf("ожидалось завершение матча, фаза %s", m.Phase())
	}
	state := m.Serialize()
	for _, p := range state["players"].([]*Player) {
		if p.ID == x.ID && p.Status != StatusWinner {
			t.Errorf("X должен быть победителем, статус %s", p.Status)
		}
	}
}

func TestDoublePointsDoublesScore(t *testing.T) {
	m := NewMatch(ModeNormal, 1000, testIDGen())
	m.AddPlayer("X")
	m.Start()

	m.ApplyNormalOutcome(OutcomePlus200)      // X: 200
	res := m.ApplyNormalOutcome(OutcomeDoublePoints) // X: 400
	if res.Delta != 200 {
		t.Errorf("удвоение при 200: дельта %d, ожидалось 200", res.Delta)
	}

	// удвоение нуля и отрицательного счета ничего не меняет по модулю знака
	n := NewMatch(ModeNormal, 1000, testIDGen())
	n.AddPlayer("Z")
	n.Start()
	if res := n.ApplyNormalOutcome(OutcomeDoublePoints); res.Delta != 0 {
		t.Errorf("удвоение нуля: дельта %d", res.Delta)
	}
	n.ApplyNormalOutcome(OutcomeMinus100)
	if res := n.ApplyNormalOutcome(OutcomeDoublePoints); res.Delta != -100 {
		t.Errorf("удвоение -100: дельта %d, ожидалось -100", res.Delta)
	}
}

func TestBattleDefeatEliminates(t *testing.T) {
	m := newBattleMatch(t, "A", "B", "C")

	res := m.ApplyBattleOutcome(OutcomeDefeat)
	if res == nil || len(res.Eliminated) != 1 || res.Eliminated[0] != "A" {
		t.Fatalf("ожидалось выбывание A, результат %+v", res)
	}
	if res.Finished {
		t.Error("матч с двумя выжившими не должен завершиться")
	}

	state := m.Serialize()
	a := state["players"].([]*Player)[0]
	if a.Status != StatusEliminated || a.Elimination == nil || a.Elimination.Cause != CauseDefeat {
		t.Errorf("запись о выбывании A: %+v", a.Elimination)
	}
}

func TestBattleLastSurvivorWins(t *testing.T) {
	m := newBattleMatch(t, "A", "B")

	res := m.ApplyBattleOutcome(OutcomeDefeat)
	if res == nil || !res.Finished {
		t.Fatalf("ожидалось завершение матча, результат %+v", res)
	}

	rankings := m.Rankings()
	if len(rankings) != 2 {
		t.Fatalf("ожидалось 2 строки таблицы, получено %d", len(rankings))
	}
	if rankings[0].Rank != 1 || rankings[0].Name != "B" {
		t.Errorf("победителем должен быть B: %+v", rankings[0])
	}
	if rankings[1].Name != "A" || rankings[1].Cause != CauseDefeat {
		t.Errorf("второе место A: %+v", rankings[1])
	}
}

func TestBattleDoubleEliminationScenario(t *testing.T) {
	// сценарий: A выбывает по Defeat, затем B выбрасывает двойное
	// выбывание - единственной жертвой может быть только C. Матч
	// заканчивается без победителя, C выше B в таблице.
	m := newBattleMatch(t, "A", "B", "C")

	m.ApplyBattleOutcome(OutcomeDefeat) // A выбывает, ход B

	res := m.ApplyBattleOutcome(OutcomeDoubleElimination)
	if res == nil || !res.Finished {
		t.Fatalf("ожидалось немедленное завершение, результат %+v", res)
	}
	if res.WinnerID != "" {
		t.Errorf("победителя быть не должно, получен %s", res.WinnerID)
	}
	if len(res.Eliminated) != 2 || res.Eliminated[0] != "B" || res.Eliminated[1] != "C" {
		t.Fatalf("порядок выбывания: %v, ожидалось [B C]", res.Eliminated)
	}

	rankings := m.Rankings()
	if len(rankings) != 3 {
		t.Fatalf("ожидалось 3 строки, получено %d", len(rankings))
	}
	// C выбыл последним (больший ключ) - выше всех; B строго ниже C
	if rankings[0].Rank != 2 || rankings[1].Rank != 3 || rankings[2].Rank != 4 {
		t.Errorf("нумерация мест: %+v", rankings)
	}
	if rankings[0].Name != "C" || rankings[0].EliminatedBy != "B" {
		t.Errorf("первая строка: %+v, ожидался C eliminated_by=B", rankings[0])
	}
	if rankings[1].Name != "B" {
		t.Errorf("вторая строка: %+v, ожидался B", rankings[1])
	}
	if rankings[2].Name != "A" {
		t.Errorf("третья строка: %+v, ожидался A", rankings[2])
	}
}

func TestBattleDoubleEliminationTwoPlayers(t *testing.T) {
	// двое активных: инициатор и единственная жертва выбывают вместе,
	// победителя нет, первое место вакантно
	m := newBattleMatch(t, "A", "B")
	m.ApplyBattleOutcome(OutcomeVictory) // ход B

	res := m.ApplyBattleOutcome(OutcomeDoubleElimination)
	if res == nil || !res.Finished {
		t.Fatalf("ожидалось завершение матча, результат %+v", res)
	}
	if len(res.Eliminated) != 2 || res.Eliminated[0] != "B" || res.Eliminated[1] != "A" {
		t.Errorf("выбывшие: %v, ожидалось [B A]", res.Eliminated)
	}
	if res.WinnerID != "" {
		t.Errorf("победителя быть не должно: %s", res.WinnerID)
	}

	rankings := m.Rankings()
	if len(rankings) != 2 || rankings[0].Rank != 2 {
		t.Fatalf("места должны начинаться со второго: %+v", rankings)
	}
	if rankings[0].Name != "A" || rankings[1].Name != "B" {
		t.Errorf("жертва выше инициатора: %+v", rankings)
	}
}

func TestBattleExtraLifeRevives(t *testing.T) {
	m := newBattleMatch(t, "A", "B", "C")
	m.ApplyBattleOutcome(OutcomeDefeat) // A выбывает

	res := m.ApplyBattleOutcome(OutcomeExtraLife)
	if res == nil || res.Revived != "A" {
		t.Fatalf("ожидалось возвращение A, результат %+v", res)
	}

	state := m.Serialize()
	a := state["players"].([]*Player)[0]
	if a.Status != StatusActive || a.Revivals != 1 || a.Elimination != nil {
		t.Errorf("A после возвращения: status=%s revivals=%d elim=%v",
			a.Status, a.Revivals, a.Elimination)
	}
}

func TestBattleExtraLifeNooneToRevive(t *testing.T) {
	m := newBattleMatch(t, "A", "B", "C")

	res := m.ApplyBattleOutcome(OutcomeExtraLife)
	if res == nil || res.Revived != "" {
		t.Fatalf("возвращать некого, результат %+v", res)
	}
	if res.Finished {
		t.Error("матч не должен завершиться")
	}
}

func TestOutcomeNoopWhenNotPlaying(t *testing.T) {
	m := NewMatch(ModeBattleRoyale, 0, testIDGen())
	m.AddPlayer("A")
	m.AddPlayer("B")

	if res := m.ApplyBattleOutcome(OutcomeDefeat); res != nil {
		t.Errorf("исход до старта должен быть no-op, получен %+v", res)
	}

	m.Start()
	m.ApplyBattleOutcome(OutcomeDefeat) // матч завершен
	if res := m.ApplyBattleOutcome(OutcomeDefeat); res != nil {
		t.Errorf("исход после завершения должен быть no-op, получен %+v", res)
	}
}

func TestRoundAdvancesOnWrap(t *testing.T) {
	m := newBattleMatch(t, "A", "B", "C")
	if m.Round() != 1 {
		t.Fatalf("начальный раунд %d", m.Round())
	}

	m.ApplyBattleOutcome(OutcomeVictory) // A -> B
	m.ApplyBattleOutcome(OutcomeVictory) // B -> C
	if m.Round() != 1 {
		t.Errorf("раунд сменился раньше времени: %d", m.Round())
	}
	m.ApplyBattleOutcome(OutcomeVictory) // C -> A, переход через конец
	if m.Round() != 2 {
		t.Errorf("после полного круга раунд %d, ожидалось 2", m.Round())
	}
}

func TestResetIdempotent(t *testing.T) {
	m := newBattleMatch(t, "A", "B", "C")
	m.ApplyBattleOutcome(OutcomeDefeat)

	m.Reset()
	first := m.Serialize()
	m.Reset()
	second := m.Serialize()

	if first["phase"] != PhaseSetup || second["phase"] != PhaseSetup {
		t.Error("обе попытки должны оставить фазу setup")
	}
	p1 := first["players"].([]*Player)
	p2 := second["players"].([]*Player)
	if len(p1) != 3 || len(p2) != 3 {
		t.Errorf("состав должен сохраниться: %d / %d", len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i].ID != p2[i].ID || p1[i].Status != StatusActive || p1[i].Score != 0 {
			t.Errorf("игрок %d после сброса: %+v", i, p1[i])
		}
	}
}

func TestPlayAgainSameRoster(t *testing.T) {
	m := newBattleMatch(t, "A", "B")
	m.ApplyBattleOutcome(OutcomeDefeat)
	if m.Phase() != PhaseFinished {
		t.Fatal("матч должен быть завершен")
	}

	// finished -> playing с тем же составом
	if err := m.Start(); err != nil {
		t.Fatalf("повторный старт: %v", err)
	}
	state := m.Serialize()
	for _, p := range state["players"].([]*Player) {
		if p.Status != StatusActive || p.Score != 0 || p.Elimination != nil {
			t.Errorf("игрок не сброшен: %+v", p)
		}
	}
}
