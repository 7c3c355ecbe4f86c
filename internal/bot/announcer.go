package bot

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"wheelparty/internal/game"
	"wheelparty/internal/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Announcer публикует результаты завершенных матчей в Telegram-чат
type Announcer struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	stopCh chan struct{}
	wg     sync.WaitGroup
	log    *slog.Logger
}

// NewAnnouncer создает бота-глашатая
func NewAnnouncer(token string, chatID int64) (*Announcer, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log := logger.With("component", "announcer")
	log.Info("announcer bot authorized", "username", api.Self.UserName)

	return &Announcer{
		bot:    api,
		chatID: chatID,
		stopCh: make(chan struct{}),
		log:    log,
	}, nil
}

// AnnounceResult отправляет финальную таблицу матча в чат.
// Вызывается из колбэка сервиса, отправка уходит в горутину.
func (a *Announcer) AnnounceResult(matchID string, mode game.Mode, rankings []game.RankEntry) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		select {
		case <-a.stopCh:
			return
		default:
		}

		msg := tgbotapi.NewMessage(a.chatID, formatResult(matchID, mode, rankings))
		if _, err := a.bot.Send(msg); err != nil {
			a.log.Error("не удалось отправить анонс", "match_id", matchID, "error", err)
		}
	}()
}

// Stop дожидается отправки начатых анонсов
func (a *Announcer) Stop() {
	close(a.stopCh)
	a.wg.Wait()
}

func formatResult(matchID string, mode game.Mode, rankings []game.RankEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎡 Матч %s завершен (%s)\n", matchID, mode)

	if len(rankings) == 0 {
		b.WriteString("победителей нет")
		return b.String()
	}

	for _, e := range rankings {
		switch e.Rank {
		case 1:
			fmt.Fprintf(&b, "🥇 %s", e.Name)
		case 2:
			fmt.Fprintf(&b, "🥈 %s", e.Name)
		case 3:
			fmt.Fprintf(&b, "🥉 %s", e.Name)
		default:
			fmt.Fprintf(&b, "%d. %s", e.Rank, e.Name)
		}
		if e.Cause != "" {
			fmt.Fprintf(&b, " (выбыл в раунде %d", e.Round)
			if e.EliminatedBy != "" {
				fmt.Fprintf(&b, ", виновник: %s", e.EliminatedBy)
			}
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	return b.String()
}
