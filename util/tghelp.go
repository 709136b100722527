package util

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/krainode/rpcbot/entity"
	"github.com/krainode/rpcbot/logger"
	"github.com/krainode/rpcbot/playground"
	"github.com/krainode/rpcbot/queue"
	"github.com/krainode/rpcbot/snippet"
	"github.com/krainode/rpcbot/viewer"
	"github.com/rs/zerolog/log"
)

// at most this many toggle buttons are offered under a response
const maxToggleButtons = 40

func SendParams(userID int64, text string, markup models.ReplyMarkup) *bot.SendMessageParams {
	return &bot.SendMessageParams{
		ChatID:      userID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
		LinkPreviewOptions: &models.LinkPreviewOptions{
			IsDisabled: bot.True(),
		},
	}
}

// SendMessage sends an HTML message; a 429 hands it to the retry queue.
func SendMessage(ctx context.Context, b *bot.Bot, userID int64, text string, markup models.ReplyMarkup) (*models.Message, error) {
	params := SendParams(userID, text, markup)
	message, err := b.SendMessage(ctx, params)
	if err != nil {
		if bot.IsTooManyRequestsError(err) {
			_ = queue.RetryPushMessage(params)
		}
		log.Error().Func(logger.WithCategory(logger.CategoryBot)).Err(err).Int64("userID", userID).Msg("send message err")
		return nil, err
	}
	return message, nil
}

func QuickMessage(ctx context.Context, b *bot.Bot, userID int64, text string) {
	_, _ = SendMessage(ctx, b, userID, text, nil)
}

// EditOrSend rewrites messageID in place, or sends a new message when
// there is nothing to edit or the edit fails.
func EditOrSend(ctx context.Context, b *bot.Bot, userID int64, messageID int, text string, markup models.ReplyMarkup) {
	if messageID != 0 {
		_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      userID,
			MessageID:   messageID,
			Text:        text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: markup,
			LinkPreviewOptions: &models.LinkPreviewOptions{
				IsDisabled: bot.True(),
			},
		})
		if err == nil {
			return
		}
		// telegram rejects edits that change nothing
		if strings.Contains(err.Error(), "message is not modified") {
			return
		}
		log.Debug().Func(logger.WithCategory(logger.CategoryBot)).Err(err).Int("messageID", messageID).Msg("edit failed, sending new message")
	}
	_, _ = SendMessage(ctx, b, userID, text, markup)
}

// AskForInput sends a ForceReply prompt and returns its message id.
func AskForInput(ctx context.Context, b *bot.Bot, userID int64, text, placeholder string) (int, error) {
	message, err := SendMessage(ctx, b, userID, text, models.ForceReply{
		ForceReply:            true,
		InputFieldPlaceholder: placeholder,
	})
	if err != nil {
		return 0, err
	}
	return message.ID, nil
}

func CallBackAnswer(ctx context.Context, b *bot.Bot, callbackQuery *models.CallbackQuery) {
	CallBackAlert(ctx, b, callbackQuery, "")
}

// CallBackAlert answers a callback with a short toast; empty text just
// stops the spinner.
func CallBackAlert(ctx context.Context, b *bot.Bot, callbackQuery *models.CallbackQuery, text string) {
	ok, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackQuery.ID,
		Text:            text,
	})
	if err != nil {
		log.Error().Func(logger.WithCategory(logger.CategoryBot)).Err(err).Msg("callbackAnswer err")
		return
	}
	if !ok {
		log.Warn().Func(logger.WithCategory(logger.CategoryBot)).Msg("callbackAnswer not ok")
	}
}

func NewCallbackDataButton(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

func UrlButton(text, url string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text: text,
		URL:  url,
	}
}

func button(code entity.BOT_CALLBACK_DATA_CODE) models.InlineKeyboardButton {
	return entity.GetCallbackButton(code)
}

func checked(text string, selected bool) string {
	if selected {
		return "✅ " + text
	}
	return text
}

// PlaygroundKeyBoard is the main control panel under the selection card.
func PlaygroundKeyBoard(snap playground.Snapshot) models.InlineKeyboardMarkup {
	var kb models.InlineKeyboardMarkup

	kb.InlineKeyboard = [][]models.InlineKeyboardButton{
		{button(entity.CHAINS), button(entity.NETWORKS), button(entity.PROVIDERS)},
		{button(entity.CUSTOM_URL), button(entity.CUSTOM_HEADERS)},
		{button(entity.METHODS), button(entity.PRESETS), button(entity.SHOW_REQUEST)},
		{button(entity.SEND), button(entity.PROBE), button(entity.RESPONSE)},
		{button(entity.HISTORY), button(entity.SNIPPETS), button(entity.HELP)},
		{button(entity.CLEAR_LOCAL)},
	}
	if snap.Selection.CustomURL != "" {
		kb.InlineKeyboard[1] = append(kb.InlineKeyboard[1], button(entity.CLEAR_CUSTOM))
	}
	if snap.Spotlight != nil && snap.Spotlight.Website != "" {
		kb.InlineKeyboard = append(kb.InlineKeyboard, []models.InlineKeyboardButton{
			UrlButton("🔗 "+snap.Spotlight.Name, snap.Spotlight.Website),
		})
	}
	return kb
}

// ListKeyBoard offers items two per row; each button carries its index.
func ListKeyBoard(prefix string, items []string, selected string) models.InlineKeyboardMarkup {
	var kb models.InlineKeyboardMarkup

	var row []models.InlineKeyboardButton
	for i, item := range items {
		row = append(row, NewCallbackDataButton(
			checked(TruncateString(item, 30), item == selected),
			entity.IndexedData(prefix, i),
		))
		if len(row) == 2 {
			kb.InlineKeyboard = append(kb.InlineKeyboard, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb.InlineKeyboard = append(kb.InlineKeyboard, row)
	}
	kb.InlineKeyboard = append(kb.InlineKeyboard, []models.InlineKeyboardButton{button(entity.PLAYGROUND)})
	return kb
}

// RequestKeyBoard sits under the request text.
func RequestKeyBoard() models.InlineKeyboardMarkup {
	return models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{button(entity.SEND), button(entity.EDIT_REQUEST)},
		{button(entity.METHODS), button(entity.PRESETS)},
		{button(entity.PLAYGROUND)},
	}}
}

// NodeLabel names a container row on its toggle button.
func NodeLabel(l viewer.Line) string {
	marker := "▸ "
	if l.Open {
		marker = "▾ "
	}
	name := strings.Trim(l.Key, `"`)
	if name == "" {
		if l.Path == "" {
			name = "root"
		} else {
			name = "#" + l.Path[strings.LastIndex(l.Path, "/")+1:]
		}
	}
	return marker + TruncateString(name, 24)
}

// ResponseKeyBoard has one toggle button per visible container, then the
// view modes.
func ResponseKeyBoard(view playground.View) models.InlineKeyboardMarkup {
	var kb models.InlineKeyboardMarkup

	var row []models.InlineKeyboardButton
	for i, l := range view.Containers {
		if i == maxToggleButtons {
			break
		}
		row = append(row, NewCallbackDataButton(NodeLabel(l), entity.IndexedData(entity.TOGGLE_NODE, i)))
		if len(row) == 3 {
			kb.InlineKeyboard = append(kb.InlineKeyboard, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb.InlineKeyboard = append(kb.InlineKeyboard, row)
	}
	kb.InlineKeyboard = append(kb.InlineKeyboard,
		[]models.InlineKeyboardButton{button(entity.EXPAND_ALL), button(entity.COLLAPSE_ALL), button(entity.RESET_VIEW)},
		[]models.InlineKeyboardButton{button(entity.SEND), button(entity.PLAYGROUND)},
	)
	return kb
}

// FailureKeyBoard follows a failed send; timeouts get the retry button.
func FailureKeyBoard(timeout bool) models.InlineKeyboardMarkup {
	first := []models.InlineKeyboardButton{button(entity.SEND), button(entity.PROVIDERS)}
	if timeout {
		first = []models.InlineKeyboardButton{button(entity.RETRY), button(entity.PROVIDERS)}
	}
	return models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		first,
		{button(entity.PLAYGROUND)},
	}}
}

func SnippetKeyBoard(selected snippet.Kind) models.InlineKeyboardMarkup {
	var kb models.InlineKeyboardMarkup

	var row []models.InlineKeyboardButton
	for _, k := range snippet.Kinds {
		row = append(row, NewCallbackDataButton(checked(snippet.Label(k), k == selected), entity.PICK_SNIPPET+string(k)))
	}
	kb.InlineKeyboard = [][]models.InlineKeyboardButton{
		row,
		{button(entity.PLAYGROUND)},
	}
	return kb
}

func HistoryKeyBoard(hasEntries bool) models.InlineKeyboardMarkup {
	var kb models.InlineKeyboardMarkup
	if hasEntries {
		kb.InlineKeyboard = append(kb.InlineKeyboard, []models.InlineKeyboardButton{button(entity.CLEAR_HISTORY)})
	}
	kb.InlineKeyboard = append(kb.InlineKeyboard, []models.InlineKeyboardButton{button(entity.PLAYGROUND)})
	return kb
}

func BackKeyBoard() models.InlineKeyboardMarkup {
	return models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{button(entity.PLAYGROUND)},
	}}
}
