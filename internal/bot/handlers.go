package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"sleeperscout/internal/service"
)

type Handler struct {
	analyzer *service.AnalyzerService
}

func NewHandler(analyzer *service.AnalyzerService) *Handler {
	return &Handler{analyzer: analyzer}
}

func (h *Handler) HandleCommand(update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to SleeperScout! Use /help to see available commands."
	case "help":
		msg.Text = "Available commands:\n/league - Full league roster analysis\n/waivers - Waiver wire recommendations\n/value <player> - Value score breakdown for a player\n/whohas <player> - Which roster owns a player\n/trending - Add/drop momentum leaders\n/refresh - Reload trending data"
	case "league":
		h.handleLeague(&msg)
	case "waivers":
		h.handleWaivers(&msg)
	case "value":
		h.handleValue(&msg, args)
	case "whohas":
		h.handleWhoHas(&msg, args)
	case "trending":
		h.handleTrending(&msg)
	case "refresh":
		h.handleRefresh(&msg)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleLeague(msg *tgbotapi.MessageConfig) {
	report, err := h.analyzer.LeagueReport()
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating league report: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleWaivers(msg *tgbotapi.MessageConfig) {
	report, err := h.analyzer.WaiverReport()
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating waiver report: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleValue(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a player name. Usage: /value <player name>"
		return
	}
	report, err := h.analyzer.PlayerValueReport(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error calculating player value: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleWhoHas(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a player name. Usage: /whohas <player name>"
		return
	}
	report, err := h.analyzer.WhoHasReport(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error looking up player: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleRefresh(msg *tgbotapi.MessageConfig) {
	if err := h.analyzer.ReloadTrending(); err != nil {
		msg.Text = fmt.Sprintf("Error reloading trending data: %v", err)
		return
	}
	msg.Text = "✅ Trending data reloaded."
}

func (h *Handler) handleTrending(msg *tgbotapi.MessageConfig) {
	report, err := h.analyzer.TrendingReport()
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating trending report: %v", err)
	} else {
		msg.Text = report
	}
}
