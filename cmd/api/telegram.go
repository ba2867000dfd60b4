package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"svitlo/internal/notifications"
)

type telegramUpdate struct {
	Message *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// telegramWebhookHandler godoc
//
//	@Summary		Telegram bot webhook
//	@Description	Receives bot updates; /start gets a welcome message with the store link. Always answers 200 so Telegram stops retrying.
//	@Tags			Telegram
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/telegram/webhook [post]
func (app *application) telegramWebhookHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// Bot API updates carry many more fields than we read (update_id,
	// message_id, from, date, ...), so no strict decoding here.
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_578)
	var update telegramUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		app.logger.Warnw("malformed telegram update", "error", err)
		app.jsonResponse(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	if update.Message == nil || update.Message.Text != "/start" || update.Message.Chat.ID == 0 {
		app.jsonResponse(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	tg, ok := app.notifier.(*notifications.TelegramAdapter)
	if !ok {
		app.jsonResponse(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	text := fmt.Sprintf("Welcome to our lighting store! ✨\n\nBrowse our products here: %s", app.config.webAppURL)
	chatID := fmt.Sprintf("%d", update.Message.Chat.ID)

	if err := tg.SendMessage(ctx, chatID, text); err != nil {
		app.logger.Errorw("telegram welcome reply failed", "chat", chatID, "error", err)
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
