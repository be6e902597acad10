// Package telegram runs the diet plan questionnaire as a Telegram bot.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"slices"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"diet-planner/internal/config"
	"diet-planner/internal/export"
	"diet-planner/internal/metrics"
	"diet-planner/internal/planner"
	"diet-planner/internal/shared"
)

// maxMessageLength is the Telegram limit for one text message, in characters.
const maxMessageLength = 4096

// sender is the part of *tgbotapi.BotAPI the bot uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot wraps the Telegram API and the Planner.
type Bot struct {
	api      sender
	planner  *planner.Planner
	recorder *metrics.Recorder
	allowed  []int64
	sessions *sessionStore
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, p *planner.Planner, recorder *metrics.Recorder) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	webhookURL := cfg.TelegramWebhookURL
	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url %s: %w", webhookURL, err)
	}
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", webhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return newBot(bot, p, recorder, cfg.TelegramAllowedUserIDs), nil
}

func newBot(api sender, p *planner.Planner, recorder *metrics.Recorder, allowed []int64) *Bot {
	return &Bot{
		api:      api,
		planner:  p,
		recorder: recorder,
		allowed:  allowed,
		sessions: newSessionStore(),
	}
}

// RegisterHandlers registers the webhook and health handlers with mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(metrics.GetSysHealth()); err != nil {
			log.Printf("Failed to encode health: %v", err)
		}
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Printf("Error parsing update: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	go b.handleUpdate(context.Background(), update)
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		q := update.CallbackQuery
		if q.From == nil || q.Message == nil || q.Message.Chat == nil || !b.isAllowed(q.From) {
			return
		}
		b.handleCallbackQuery(ctx, q)
	case update.Message != nil:
		msg := update.Message
		if msg.From == nil || msg.Chat == nil || !b.isAllowed(msg.From) {
			return
		}
		b.processMessage(ctx, msg)
	}
}

func (b *Bot) isAllowed(user *tgbotapi.User) bool {
	if slices.Contains(b.allowed, user.ID) {
		return true
	}
	log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", user.ID, user.UserName)
	return false
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch command(msg.Text) {
	case "start", "plan":
		b.sessions.start(chatID)
		b.send(tgbotapi.NewMessage(chatID, "Let's build your personalized diet plan. Send /cancel at any time to stop."))
		b.ask(chatID, 0, nil)
		return
	case "cancel":
		if b.sessions.drop(chatID) {
			b.send(tgbotapi.NewMessage(chatID, "Questionnaire cancelled. Send /plan to start again."))
		} else {
			b.send(tgbotapi.NewMessage(chatID, "Nothing to cancel. Send /plan to create a diet plan."))
		}
		return
	}

	out, ok := b.sessions.advance(chatID, input{text: msg.Text})
	if !ok {
		b.send(tgbotapi.NewMessage(chatID, "Send /plan to create your personalized diet plan."))
		return
	}
	b.respond(ctx, chatID, 0, out)
}

func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Answer callback to remove spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("Failed to answer callback: %v", err)
	}

	in, ok := parseCallbackData(query.Data)
	if !ok {
		return
	}
	chatID := query.Message.Chat.ID
	out, ok := b.sessions.advance(chatID, in)
	if !ok {
		b.send(tgbotapi.NewMessage(chatID, "This questionnaire has ended. Send /plan to start again."))
		return
	}
	b.respond(ctx, chatID, query.Message.MessageID, out)
}

func (b *Bot) respond(ctx context.Context, chatID int64, messageID int, out outcome) {
	switch {
	case out.problem != "":
		b.send(tgbotapi.NewMessage(chatID, out.problem))
	case out.toggled:
		if messageID != 0 {
			b.send(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, keyboard(out.step, questions[out.step], out.selected)))
		}
	case out.complete:
		b.generateAndSendPlan(ctx, chatID, out)
	case out.step >= 0:
		b.ask(chatID, out.step, out.selected)
	}
}

func (b *Bot) ask(chatID int64, step int, selected []string) {
	q := questions[step]
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("%d/%d. %s", step+1, len(questions), q.prompt))
	if q.kind == kindChoice || q.kind == kindMulti {
		msg.ReplyMarkup = keyboard(step, q, selected)
	}
	b.send(msg)
}

func (b *Bot) generateAndSendPlan(ctx context.Context, chatID int64, out outcome) {
	b.send(tgbotapi.NewMessage(chatID, "🧑‍🍳 Generating your personalized diet plan... This may take a minute."))

	plan, err := b.planner.Generate(ctx, out.answers)
	if err != nil {
		log.Printf("Error generating plan for chat %d: %v", chatID, err)
		b.sendError(chatID, err)
		return
	}

	text, pdf, err := plan.Artifacts()
	if err != nil {
		b.recorder.RecordExport("pdf", err)
		log.Printf("[%s] PDF export failed: %v", plan.ID, err)
		b.sendError(chatID, err)
		return
	}

	for _, chunk := range splitMessage(plan.Text, maxMessageLength) {
		b.send(tgbotapi.NewMessage(chatID, chunk))
	}

	for _, a := range []struct {
		format   string
		artifact export.Artifact
	}{{"txt", text}, {"pdf", pdf}} {
		_, err := b.api.Send(document(chatID, a.artifact.FileName, a.artifact.Data))
		b.recorder.RecordExport(a.format, err)
		if err != nil {
			log.Printf("[%s] failed to send %s: %v", plan.ID, a.artifact.FileName, err)
		}
	}
}

func (b *Bot) sendError(chatID int64, err error) {
	msg, hint := shared.UserMessage(err)
	text := "❌ " + msg
	if hint != "" {
		text += "\n\n" + hint
	}
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func document(chatID int64, name string, data []byte) tgbotapi.DocumentConfig {
	return tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
}

// keyboard builds the inline buttons of a choice question. Callback data is
// "a|<step>|<option>" or "a|<step>|done"; Telegram limits it to 64 bytes.
func keyboard(step int, q question, selected []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.options)+1)
	for i, opt := range q.options {
		label := opt
		if slices.Contains(selected, opt) {
			label = "✅ " + opt
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("a|%d|%d", step, i)),
		))
	}
	if q.kind == kindMulti {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Done", fmt.Sprintf("a|%d|done", step)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func parseCallbackData(data string) (input, bool) {
	parts := strings.Split(data, "|")
	if len(parts) != 3 || parts[0] != "a" {
		return input{}, false
	}
	step, err := strconv.Atoi(parts[1])
	if err != nil {
		return input{}, false
	}
	in := input{button: true, step: step}
	if parts[2] == "done" {
		in.done = true
		return in, true
	}
	if in.option, err = strconv.Atoi(parts[2]); err != nil {
		return input{}, false
	}
	return in, true
}

// command returns the bot command of text without the leading slash or a
// trailing @botname, or "" when text is not a command.
func command(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	cmd, _, _ := strings.Cut(fields[0][1:], "@")
	return strings.ToLower(cmd)
}

// splitMessage cuts text into chunks of at most limit characters, preferring
// to break after a newline. Whitespace-only chunks are dropped.
func splitMessage(text string, limit int) []string {
	var chunks []string
	add := func(r []rune) {
		if strings.TrimSpace(string(r)) != "" {
			chunks = append(chunks, string(r))
		}
	}

	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i > 0; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		add(runes[:cut])
		runes = runes[cut:]
	}
	add(runes)
	return chunks
}

