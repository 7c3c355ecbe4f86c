package service

import (
	"context"
	"log/slog"
	"time"

	"wheelparty/internal/logger"
	"wheelparty/internal/repository"
)

// запасной список, когда база не настроена или недоступна
var defaultSuggestedNames = []string{
	"Алиса", "Боб", "Вера", "Гриша", "Даша", "Егор",
	"Женя", "Зоя", "Иван", "Катя", "Лена", "Миша",
}

// RosterService отдает подсказки имен для экрана набора состава
type RosterService struct {
	names *repository.NameRepository
	log   *slog.Logger
}

// NewRosterService создает сервис подсказок; repo может быть nil -
// тогда работает только статический список
func NewRosterService(names *repository.NameRepository) *RosterService {
	return &RosterService{names: names, log: logger.With("component", "roster")}
}

// SuggestedNames возвращает список имен для предзаполнения
func (s *RosterService) SuggestedNames(ctx context.Context, limit int) []string {
	if limit <= 0 || limit > 64 {
		limit = 12
	}

	if s.names != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		names, err := s.names.GetSuggestedNames(ctx, limit)
		if err == nil && len(names) > 0 {
			return names
		}
		if err != nil {
			s.log.Warn("не удалось получить имена из базы, используем запасной список", "error", err)
		}
	}

	if limit > len(defaultSuggestedNames) {
		limit = len(defaultSuggestedNames)
	}
	out := make([]string, limit)
	copy(out, defaultSuggestedNames)
	return out
}

// RememberName запоминает имя для будущих подсказок (best effort)
func (s *RosterService) RememberName(ctx context.Context, name string) {
	if s.names == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.names.RememberName(ctx, name); err != nil {
		s.log.Warn("не удалось сохранить имя", "name", name, "error", err)
	}
}
