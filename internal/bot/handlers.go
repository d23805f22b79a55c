package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/nbastats/internal/service"
)

const (
	commandTimeout = 30 * time.Second

	helpText = "Available commands:\n" +
		"/scores [MM/DD/YYYY] - Scoreboard for a day (default today)\n" +
		"/standings <east|west> - Conference standings\n" +
		"/last - Last scoreboard loaded\n" +
		"/endpoints - Endpoints and their result sets\n" +
		"/table <endpoint> <resultset> [Key=Value ...] - Any result set"
)

type Handler struct {
	statsService *service.StatsService
}

func NewHandler(statsService *service.StatsService) *Handler {
	return &Handler{statsService: statsService}
}

func (h *Handler) HandleCommand(update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()
	msg.ParseMode = "Markdown"

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch command {
	case "start":
		msg.Text = "Welcome to the NBA stats bot! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "scores":
		h.handleScores(ctx, &msg, args)
	case "standings":
		h.handleStandings(ctx, &msg, args)
	case "last":
		h.handleLast(&msg)
	case "endpoints":
		msg.Text = h.statsService.ListEndpoints()
	case "table":
		h.handleTable(ctx, &msg, args)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleScores(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	scores, err := h.statsService.GetScoreboard(ctx, args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching scores: %v", err)
	} else {
		msg.Text = scores
	}
}

func (h *Handler) handleStandings(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a conference. Usage: /standings <east|west>"
		return
	}
	standings, err := h.statsService.GetStandings(ctx, args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching standings: %v", err)
	} else {
		msg.Text = standings
	}
}

func (h *Handler) handleLast(msg *tgbotapi.MessageConfig) {
	report, err := h.statsService.GetLastSnapshot()
	if err != nil {
		msg.Text = fmt.Sprintf("Nothing to show: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleTable(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		msg.Text = "Please provide an endpoint and a result set. Usage: /table <endpoint> <resultset> [Key=Value ...]"
		return
	}

	params, err := service.ParseParams(fields[2:])
	if err != nil {
		msg.Text = err.Error()
		return
	}

	result, err := h.statsService.GetTable(ctx, fields[0], fields[1], params)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching table: %v", err)
	} else {
		msg.Text = result
	}
}
