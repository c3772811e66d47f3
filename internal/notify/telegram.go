package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/availability_api/internal/formatting"
	"github.com/Freeeeeet/availability_api/internal/model"
)

const sendTimeout = 10 * time.Second

// MessageSender часть API бота, нужная для уведомлений
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramNotifier отправляет сообщение о новой записи в чат администратора.
// Отправка асинхронная и не влияет на результат бронирования.
type TelegramNotifier struct {
	sender   MessageSender
	chatID   int64
	location *time.Location
	logger   *zap.Logger
	wg       sync.WaitGroup
}

// NewTelegramBot создаёт клиента бота без запроса getMe при старте
func NewTelegramBot(token string) (*bot.Bot, error) {
	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return b, nil
}

func NewTelegramNotifier(sender MessageSender, chatID int64, location *time.Location, logger *zap.Logger) *TelegramNotifier {
	if location == nil {
		location = time.UTC
	}

	return &TelegramNotifier{
		sender:   sender,
		chatID:   chatID,
		location: location,
		logger:   logger,
	}
}

// NotifyBooked ставит отправку уведомления в фон
func (n *TelegramNotifier) NotifyBooked(_ context.Context, sessions []*model.Session) {
	if len(sessions) == 0 {
		return
	}

	text := BookingMessage(sessions, n.location)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		_, err := n.sender.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: n.chatID,
			Text:   text,
		})
		if err != nil {
			n.logger.Warn("Failed to send booking notification",
				zap.Int64("chat_id", n.chatID),
				zap.Int64("session_id", sessions[0].ID),
				zap.Error(err),
			)
			return
		}

		n.logger.Debug("Booking notification sent", zap.Int64("session_id", sessions[0].ID))
	}()
}

// Wait дожидается отправки уведомлений, поставленных в фон
func (n *TelegramNotifier) Wait() {
	n.wg.Wait()
}

// BookingMessage текст уведомления о записи
func BookingMessage(sessions []*model.Session, loc *time.Location) string {
	first := sessions[0]
	last := sessions[len(sessions)-1]

	customer := "-"
	if first.Customer != nil {
		customer = *first.Customer
	}

	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, fmt.Sprintf("#%d", s.ID))
	}

	var sb strings.Builder
	sb.WriteString("📅 Новая запись\n\n")
	fmt.Fprintf(&sb, "Клиент: %s\n", customer)
	fmt.Fprintf(&sb, "Специалист: #%d\n", first.ProfessionalID)
	fmt.Fprintf(&sb, "Начало: %s\n", formatting.FormatDateTime(first.Start, loc))
	fmt.Fprintf(&sb, "Время: %s\n", formatting.FormatTimeRange(first.Start, last.End, loc))
	fmt.Fprintf(&sb, "Слоты: %s", strings.Join(ids, ", "))

	return sb.String()
}
