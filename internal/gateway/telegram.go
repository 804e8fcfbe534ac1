package gateway

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rahul/alfred/internal/dispatch"
	"go.uber.org/zap"
)

var _ Messenger = (*TelegramGateway)(nil)

// TelegramGateway serves every Telegram chat through one dispatcher. Updates
// are handled one at a time, so turns never overlap.
type TelegramGateway struct {
	Bot     *tgbotapi.BotAPI
	Handler dispatch.Handler
	log     *zap.Logger
}

func NewTelegramGateway(token string, h dispatch.Handler, log *zap.Logger) (*TelegramGateway, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	log.Info("telegram authorized", zap.String("account", bot.Self.UserName))

	return &TelegramGateway{
		Bot:     bot,
		Handler: h,
		log:     log,
	}, nil
}

func (tg *TelegramGateway) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := tg.Bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			tg.Bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			tg.handle(ctx, update.Message)
		}
	}
}

func (tg *TelegramGateway) handle(ctx context.Context, m *tgbotapi.Message) {
	input := strings.TrimSpace(m.Text)
	if input == "" {
		return
	}
	chatID := strconv.FormatInt(m.Chat.ID, 10)
	if m.From != nil {
		tg.log.Debug("telegram message", zap.String("chat_id", chatID), zap.String("from", m.From.UserName))
	}

	reply := replyFor(ctx, tg.Handler, chatID, input)
	if _, err := tg.Bot.Send(tgbotapi.NewMessage(m.Chat.ID, reply.Text)); err != nil {
		tg.log.Warn("telegram send failed", zap.String("chat_id", chatID), zap.Error(err))
	}
}

// replyFor answers the exit keyword locally, like the console does, and hands
// everything else to the dispatcher.
func replyFor(ctx context.Context, h dispatch.Handler, chatID, input string) dispatch.Reply {
	if strings.EqualFold(input, dispatch.ExitKeyword) {
		return dispatch.Reply{Text: dispatch.FarewellMessage, Tone: dispatch.ToneMuted}
	}
	return h.Handle(ctx, chatID, input)
}

func (tg *TelegramGateway) Send(chatID string, text string) error {
	id, err := parseChatID(chatID)
	if err != nil {
		return err
	}
	_, err = tg.Bot.Send(tgbotapi.NewMessage(id, text))
	return err
}

func (tg *TelegramGateway) Stop() error {
	tg.Bot.StopReceivingUpdates()
	return nil
}

func parseChatID(chatID string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(chatID), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid chat ID: %s", chatID)
	}
	return id, nil
}
