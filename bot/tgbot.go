package bot

import (
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"

	"netivim/entity"
	"netivim/internal/lib/sl"
)

// TgBot sends service notifications to the admin chat.
type TgBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string
	adminId     int64
}

func NewTgBot(botName, apiKey string, adminId int64, log *slog.Logger) (*TgBot, error) {
	tgBot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		adminId:     adminId,
		botUsername: botName,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.api = api

	return tgBot, nil
}

func (t *TgBot) SendMessage(msg string) {
	t.plainResponse(t.adminId, msg)
}

// SchoolAdded tells the admin about a new school from the intake form.
func (t *TgBot) SchoolAdded(school entity.School) {
	go t.SendMessage(NewSchoolMessage(school))
}

func NewSchoolMessage(school entity.School) string {
	return fmt.Sprintf("מוסד חדש נוסף למפה\n%s (%s)\n%s, %s\nשכבות: %s",
		school.Name, school.Type.Label(), school.City, school.Region, school.Grades)
}

func (t *TgBot) plainResponse(chatId int64, text string) {
	sanitized := sanitize(text)

	if sanitized != "" {
		_, err := t.api.SendMessage(chatId, sanitized, &tgbotapi.SendMessageOpts{
			ParseMode: "MarkdownV2",
		})
		if err != nil {
			// logging here would loop back through the telegram log handler
			_, _ = t.api.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{})
		}
	}
}

func sanitize(input string) string {
	// reserved characters of MarkdownV2
	reservedChars := "\\`_{}#+-.!|()[]*~>="

	var b strings.Builder
	for _, char := range input {
		if strings.ContainsRune(reservedChars, char) {
			b.WriteRune('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
