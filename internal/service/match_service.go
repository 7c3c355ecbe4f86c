package service

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"wheelparty/internal/game"
	"wheelparty/internal/logger"
	"wheelparty/internal/metrics"

	"github.com/google/uuid"
)

var (
	ErrMatchNotFound = errors.New("матч не найден")
	ErrSpinInFlight  = errors.New("спин уже выполняется")
	ErrNotPlaying    = errors.New("матч не в фазе игры")
	ErrBadMode       = errors.New("неизвестный режим игры")
)

// EventCallback получает события матча для трансляции зрителям
type EventCallback func(matchID, event string, payload map[string]interface{})

// FinishCallback получает финальную таблицу завершенного матча
type FinishCallback func(matchID string, mode game.Mode, rankings []game.RankEntry)

// SpinHandle - немедленный результат запроса спина: угол и сегмент
// уже известны, исход будет применен после паузы на анимацию
type SpinHandle struct {
	SpinID         string  `json:"spin_id"`
	TargetRotation float64 `json:"target_rotation"`
	SegmentIndex   int     `json:"segment_index"`
	cancel         func()
}

// Cancel отменяет отложенное применение исхода
func (h *SpinHandle) Cancel() {
	if h.cancel != nil {
		h.cancel()
	}
}

// armedRig - взведенная подкрутка для конкретного игрока
type armedRig struct {
	playerID string
	favored  []int
}

// matchSession - матч плюс состояние планирования спинов.
// В один момент времени у матча может быть не больше одного
// неразрешенного спина и не больше одного таймера автозапуска.
type matchSession struct {
	match    *game.Match
	rotation float64 // накопленный угол колеса

	rig *armedRig

	spinning  bool
	spinSeq   int // защита от устаревших таймеров
	spinTimer *time.Timer
	nextTimer *time.Timer

	lastActivity time.Time
}

// MatchService управляет активными матчами в памяти
type MatchService struct {
	mu       sync.RWMutex
	sessions map[string]*matchSession

	spinDelay     time.Duration
	autoSpin      bool
	autoSpinDelay time.Duration

	eventCb  EventCallback
	finishCb FinishCallback

	log    *slog.Logger
	stopCh chan struct{}
}

// NewMatchService создает сервис и запускает уборку простаивающих сессий
func NewMatchService(spinDelay time.Duration, autoSpin bool, autoSpinDelay time.Duration) *MatchService {
	s := &MatchService{
		sessions:      make(map[string]*matchSession),
		spinDelay:     spinDelay,
		autoSpin:      autoSpin,
		autoSpinDelay: autoSpinDelay,
		log:           logger.With("component", "match_service"),
		stopCh:        make(chan struct{}),
	}

	go s.cleanupIdleSessions()
	return s
}

// Stop останавливает фоновую уборку
func (s *MatchService) Stop() {
	close(s.stopCh)
}

// SetEventCallback устанавливает получателя событий матча
func (s *MatchService) SetEventCallback(cb EventCallback) {
	s.eventCb = cb
}

// SetFinishCallback устанавливает получателя результатов матча
func (s *MatchService) SetFinishCallback(cb FinishCallback) {
	s.finishCb = cb
}

// CreateMatch создает матч в фазе настройки и возвращает его ID
// вместе с токеном ведущего
func (s *MatchService) CreateMatch(mode game.Mode, targetScore int) (string, string, error) {
	if mode != game.ModeNormal && mode != game.ModeBattleRoyale {
		return "", "", ErrBadMode
	}

	matchID := uuid.New().String()[:8]
	hostToken, err := IssueHostToken(matchID)
	if err != nil {
		return "", "", err
	}

	idgen := func() string { return uuid.New().String() }
	sess := &matchSession{
		match:        game.NewMatch(mode, targetScore, idgen),
		lastActivity: time.Now(),
	}

	s.mu.Lock()
	s.sessions[matchID] = sess
	s.mu.Unlock()

	metrics.ActiveSessions.Inc()
	s.log.Info("матч создан", "match_id", matchID, "mode", mode)
	return matchID, hostToken, nil
}

// AddPlayer добавляет игрока в состав матча
func (s *MatchService) AddPlayer(matchID, name string) (*game.Player, error) {
	sess, err := s.session(matchID)
	if err != nil {
		return nil, err
	}
	p, err := sess.match.AddPlayer(name)
	if err == nil {
		s.touch(matchID)
		s.emit(matchID, "player_added", map[string]interface{}{"player": p})
	}
	return p, err
}

// RemovePlayer убирает игрока из состава матча
func (s *MatchService) RemovePlayer(matchID, playerID string) error {
	sess, err := s.session(matchID)
	if err != nil {
		return err
	}
	if err := sess.match.RemovePlayer(playerID); err != nil {
		return err
	}
	s.touch(matchID)
	s.emit(matchID, "player_removed", map[string]interface{}{"player_id": playerID})
	return nil
}

// StartMatch запускает матч
func (s *MatchService) StartMatch(matchID string) error {
	sess, err := s.session(matchID)
	if err != nil {
		return err
	}
	if err := sess.match.Start(); err != nil {
		return err
	}
	s.touch(matchID)
	metrics.MatchesStarted.WithLabelValues(string(sess.match.Mode())).Inc()
	s.emit(matchID, "match_started", sess.match.Serialize())
	return nil
}

// GetState возвращает снимок состояния матча
func (s *MatchService) GetState(matchID string) (map[string]interface{}, error) {
	sess, err := s.session(matchID)
	if err != nil {
		return nil, err
	}
	return sess.match.Serialize(), nil
}

// Rankings возвращает финальную таблицу мест
func (s *MatchService) Rankings(matchID string) ([]game.RankEntry, error) {
	sess, err := s.session(matchID)
	if err != nil {
		return nil, err
	}
	return sess.match.Rankings(), nil
}

// Segments возвращает конфигурацию колеса матча
func (s *MatchService) Segments(matchID string) ([]game.Segment, error) {
	sess, err := s.session(matchID)
	if err != nil {
		return nil, err
	}
	return game.SegmentsForMode(sess.match.Mode()), nil
}

// ArmRig взводит подкрутку для игрока. Пустой favored означает
// стандартный набор выгодных сегментов режима. Вызывается только
// с токеном ведущего - проверка на уровне HTTP.
func (s *MatchService) ArmRig(matchID, playerID string, favored []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[matchID]
	if !ok {
		return ErrMatchNotFound
	}
	if len(favored) == 0 {
		favored = game.FavorableIndices(sess.match.Mode())
	}
	sess.rig = &armedRig{playerID: playerID, favored: favored}
	s.log.Info("подкрутка взведена", "match_id", matchID, "player_id", playerID)
	return nil
}

// DisarmRig снимает подкрутку
func (s *MatchService) DisarmRig(matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[matchID]
	if !ok {
		return ErrMatchNotFound
	}
	sess.rig = nil
	return nil
}

// RequestSpin разрешает спин немедленно и откладывает применение
// исхода на время анимации. Пока спин не разрешен, новые запросы
// отклоняются. riggedFor включает подкрутку только если она взведена
// именно для этого игрока и сейчас его ход - молча никогда.
func (s *MatchService) RequestSpin(matchID, riggedFor string) (*SpinHandle, error) {
	s.mu.Lock()

	sess, ok := s.sessions[matchID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrMatchNotFound
	}
	if sess.match.Phase() != game.PhasePlaying {
		s.mu.Unlock()
		return nil, ErrNotPlaying
	}
	if sess.spinning {
		s.mu.Unlock()
		return nil, ErrSpinInFlight
	}

	// новый спин отменяет ожидающий таймер автозапуска
	if sess.nextTimer != nil {
		sess.nextTimer.Stop()
		sess.nextTimer = nil
	}

	currentID := sess.match.CurrentPlayerID()
	var rig *game.RigDirective
	rigged := false
	if sess.rig != nil && riggedFor != "" && riggedFor == sess.rig.playerID && riggedFor == currentID {
		rig = &game.RigDirective{Active: true, FavoredIndices: sess.rig.favored}
		rigged = true
	}

	segments := game.SegmentsForMode(sess.match.Mode())
	res := game.ResolveSpin(sess.rotation, len(segments), rig)
	sess.rotation = res.TargetRotation

	sess.spinning = true
	sess.spinSeq++
	seq := sess.spinSeq
	sess.lastActivity = time.Now()

	sess.spinTimer = time.AfterFunc(s.spinDelay, func() {
		s.resolveOutcome(matchID, seq, res.SegmentIndex)
	})

	mode := string(sess.match.Mode())
	s.mu.Unlock()

	metrics.SpinsTotal.WithLabelValues(mode, boolLabel(rigged)).Inc()
	s.emit(matchID, "spin_started", map[string]interface{}{
		"player_id":       currentID,
		"target_rotation": res.TargetRotation,
		"duration_ms":     s.spinDelay.Milliseconds(),
	})

	spinID := uuid.New().String()[:8]
	return &SpinHandle{
		SpinID:         spinID,
		TargetRotation: res.TargetRotation,
		SegmentIndex:   res.SegmentIndex,
		cancel:         func() { s.cancelSpin(matchID, seq) },
	}, nil
}

// ResetMatch отменяет незавершенный спин и таймеры и возвращает матч
// в фазу настройки. Повторный вызов ничего не меняет.
func (s *MatchService) ResetMatch(matchID string) error {
	s.mu.Lock()

	sess, ok := s.sessions[matchID]
	if !ok {
		s.mu.Unlock()
		return ErrMatchNotFound
	}

	s.cancelTimersLocked(sess)
	sess.rig = nil
	sess.match.Reset()
	sess.lastActivity = time.Now()
	s.mu.Unlock()

	s.emit(matchID, "match_reset", nil)
	return nil
}

// применяет исход разрешенного спина после паузы на анимацию
func (s *MatchService) resolveOutcome(matchID string, seq, segmentIndex int) {
	s.mu.Lock()

	sess, ok := s.sessions[matchID]
	if !ok || seq != sess.spinSeq {
		// спин был отменен или вытеснен - ничего не делаем
		s.mu.Unlock()
		return
	}
	sess.spinning = false
	sess.lastActivity = time.Now()

	m := sess.match
	segments := game.SegmentsForMode(m.Mode())
	seg := segments[segmentIndex]

	var res *game.OutcomeResult
	if m.Mode() == game.ModeBattleRoyale {
		res = m.ApplyBattleOutcome(seg.Battle)
	} else {
		res = m.ApplyNormalOutcome(seg.Normal)
	}
	s.mu.Unlock()

	if res == nil {
		// текущий игрок оказался неактивен - ошибка вызывающего, глотаем
		s.log.Warn("исход спина неприменим", "match_id", matchID, "segment", seg.Label)
		return
	}

	s.emit(matchID, "outcome", map[string]interface{}{
		"segment_index": segmentIndex,
		"label":         seg.Label,
		"result":        res,
	})

	if res.Finished {
		metrics.MatchesFinished.WithLabelValues(string(m.Mode())).Inc()
		s.emit(matchID, "match_finished", map[string]interface{}{
			"winner_id": res.WinnerID,
			"rankings":  m.Rankings(),
		})
		if s.finishCb != nil {
			s.finishCb(matchID, m.Mode(), m.Rankings())
		}
		return
	}

	if s.autoSpin {
		s.scheduleNextSpin(matchID)
	}
}

// планирует автозапуск следующего спина; новый таймер вытесняет старый
func (s *MatchService) scheduleNextSpin(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[matchID]
	if !ok {
		return
	}
	if sess.nextTimer != nil {
		sess.nextTimer.Stop()
	}
	sess.nextTimer = time.AfterFunc(s.autoSpinDelay, func() {
		if _, err := s.RequestSpin(matchID, ""); err != nil {
			s.log.Debug("автоспин не запущен", "match_id", matchID, "error", err)
		}
	})
}

// отменяет отложенный исход, если спин с этим номером еще в полете
func (s *MatchService) cancelSpin(matchID string, seq int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[matchID]
	if !ok || seq != sess.spinSeq || !sess.spinning {
		return
	}
	if sess.spinTimer != nil {
		sess.spinTimer.Stop()
	}
	sess.spinning = false
	sess.spinSeq++ // страховка от таймера, успевшего сработать
	metrics.SpinsCancelled.Inc()
	s.log.Info("спин отменен", "match_id", matchID)
}

func (s *MatchService) cancelTimersLocked(sess *matchSession) {
	if sess.spinTimer != nil {
		sess.spinTimer.Stop()
		sess.spinTimer = nil
	}
	if sess.nextTimer != nil {
		sess.nextTimer.Stop()
		sess.nextTimer = nil
	}
	if sess.spinning {
		metrics.SpinsCancelled.Inc()
	}
	sess.spinning = false
	sess.spinSeq++
}

func (s *MatchService) session(matchID string) (*matchSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[matchID]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return sess, nil
}

func (s *MatchService) touch(matchID string) {
	s.mu.Lock()
	if sess, ok := s.sessions[matchID]; ok {
		sess.lastActivity = time.Now()
	}
	s.mu.Unlock()
}

func (s *MatchService) emit(matchID, event string, payload map[string]interface{}) {
	if s.eventCb != nil {
		s.eventCb(matchID, event, payload)
	}
}

// выкидывает сессии без активности больше двух часов
func (s *MatchService) cleanupIdleSessions() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.mu.Lock()
			for id, sess := range s.sessions {
				if time.Since(sess.lastActivity) > 2*time.Hour {
					s.cancelTimersLocked(sess)
					delete(s.sessions, id)
					metrics.ActiveSessions.Dec()
					s.log.Info("простаивающая сессия удалена", "match_id", id)
				}
			}
			s.mu.Unlock()
		}
	}
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
