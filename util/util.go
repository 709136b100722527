package util

import (
	"strings"

	"github.com/go-telegram/bot/models"
)

func IsCommand(str string) bool {
	return strings.HasPrefix(str, "/")
}

// SplitCommand splits "/cmd@bot_name rest" into "/cmd" and "rest". The
// mention is dropped only when it names botUserName, or any bot when
// botUserName is empty.
func SplitCommand(text, botUserName string) (string, string) {
	text = strings.TrimSpace(text)
	cmd, args, _ := strings.Cut(text, " ")
	if name, mention, found := strings.Cut(cmd, "@"); found {
		if botUserName == "" || strings.EqualFold(mention, botUserName) {
			cmd = name
		}
	}
	return strings.ToLower(cmd), strings.TrimSpace(args)
}

func Ptr[T any](v T) *T {
	return &v
}

// EffectId
func EffectId(update *models.Update) int64 {
	if update == nil {
		return 0
	}

	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID
	}

	if update.CallbackQuery != nil {
		return update.CallbackQuery.From.ID
	}

	if update.InlineQuery != nil && update.InlineQuery.From != nil {
		return update.InlineQuery.From.ID
	}

	if update.EditedMessage != nil && update.EditedMessage.From != nil {
		return update.EditedMessage.From.ID
	}

	if update.ChosenInlineResult != nil {
		return update.ChosenInlineResult.From.ID
	}

	return 0
}

// CallbackMessageID is the id of the message carrying the pressed button,
// 0 when it is no longer accessible.
func CallbackMessageID(cq *models.CallbackQuery) int {
	if cq == nil || cq.Message.Message == nil {
		return 0
	}
	return cq.Message.Message.ID
}
