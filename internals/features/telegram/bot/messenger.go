package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Messenger: satu-satunya jalur keluar ke Telegram, bisa diganti fake di test.
type Messenger interface {
	SendText(chatID int64, text string) error
}

type apiMessenger struct {
	bot *tgbotapi.BotAPI
}

func NewAPIMessenger(bot *tgbotapi.BotAPI) Messenger {
	return &apiMessenger{bot: bot}
}

func (m *apiMessenger) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	_, err := m.bot.Send(msg)
	return err
}

// SendLong: pecah per baris sesuai batas Telegram, kirim berurutan.
// Bagian yang hanya berisi whitespace dilewati (Telegram menolak pesan kosong).
func SendLong(m Messenger, chatID int64, text string) error {
	for _, part := range SplitMessage(text, MaxMessageLength) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		if err := m.SendText(chatID, part); err != nil {
			return err
		}
	}
	return nil
}
