package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/diegoclair/vigil-bot/internal/domain"
	"github.com/diegoclair/vigil-bot/internal/domain/contest"
	"github.com/diegoclair/vigil-bot/internal/domain/contract"
	"github.com/diegoclair/vigil-bot/internal/domain/entity"
	slackcmd "github.com/diegoclair/vigil-bot/internal/domain/slack"
	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

type SlackHandler struct {
	vigilService  contract.VigilService
	signingSecret string
}

func New(vigilService contract.VigilService, signingSecret string) *SlackHandler {
	return &SlackHandler{
		vigilService:  vigilService,
		signingSecret: signingSecret,
	}
}

// Register mounts the Slack endpoints and the health check
func (h *SlackHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /slack/commands", h.HandleSlashCommand)
	mux.HandleFunc("POST /slack/events", h.HandleEvents)
	mux.HandleFunc("GET /health", h.HandleHealth)
}

// verify checks the Slack signature and puts the body back for later parsing
func (h *SlackHandler) verify(r *http.Request) ([]byte, int) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, http.StatusBadRequest
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		return nil, http.StatusUnauthorized
	}
	if _, err := verifier.Write(body); err != nil {
		return nil, http.StatusInternalServerError
	}
	if err := verifier.Ensure(); err != nil {
		return nil, http.StatusUnauthorized
	}

	return body, http.StatusOK
}

func (h *SlackHandler) HandleSlashCommand(w http.ResponseWriter, r *http.Request) {
	if _, status := h.verify(r); status != http.StatusOK {
		w.WriteHeader(status)
		return
	}

	s, err := slack.SlashCommandParse(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	cmd, err := slackcmd.ParseCommand(s.Text)
	if err != nil {
		h.respond(w, h.createErrorResponse(fmt.Sprintf("%s. Try `/vigil help`.", err)))
		return
	}

	h.respond(w, h.handleCommand(r.Context(), cmd, &s))
}

func (h *SlackHandler) handleCommand(ctx context.Context, cmd *slackcmd.Command, slashCmd *slack.SlashCommand) *slack.Msg {
	switch cmd.Type {
	case slackcmd.CmdHelp:
		return h.ephemeral(slackcmd.GetHelpText())
	case slackcmd.CmdMine:
		return h.handleMine(slashCmd)
	case slackcmd.CmdEnable:
		return h.handleEnable(slashCmd)
	}

	if cmd.AdminOnly() && !h.vigilService.IsAdmin(slashCmd.UserID) {
		return h.createErrorResponse("Only bot admins can do that.")
	}

	group, err := h.vigilService.GetGroup(slashCmd.ChannelID)
	if err != nil {
		return h.errorResponse(err)
	}
	if group == nil {
		return h.createErrorResponse("Vigil is not set up in this channel. An admin can run `/vigil enable`.")
	}

	switch cmd.Type {
	case slackcmd.CmdDisable:
		return h.handleDisable(group)
	case slackcmd.CmdSlave:
		return h.handleSlave(ctx, cmd, group)
	case slackcmd.CmdStop:
		return h.handleStop(ctx, group)
	case slackcmd.CmdStatus:
		return h.ephemeral(slackcmd.FormatGroup(group))
	case slackcmd.CmdConfig:
		return h.handleConfig(cmd, group)
	case slackcmd.CmdTitle:
		return h.handleTitle(cmd, group)
	case slackcmd.CmdJoin:
		return h.handleJoin(ctx, cmd, group, slashCmd)
	case slackcmd.CmdQuit:
		return h.handleQuit(ctx, group, slashCmd)
	case slackcmd.CmdAutoJoin:
		return h.handleAutoJoin(ctx, cmd, group, slashCmd)
	case slackcmd.CmdNoAutoJoin:
		return h.handleNoAutoJoin(ctx, group, slashCmd)
	case slackcmd.CmdTime:
		return h.handleTime(cmd, group, slashCmd)
	case slackcmd.CmdImAwake:
		return h.handleImAwake(ctx, slashCmd)
	case slackcmd.CmdList:
		return h.handleList(cmd, group)
	case slackcmd.CmdMatch:
		return h.handleMatch(group)
	default:
		return h.createErrorResponse("Unknown command. Try `/vigil help`.")
	}
}

func (h *SlackHandler) handleEnable(slashCmd *slack.SlashCommand) *slack.Msg {
	group, err := h.vigilService.GetGroup(slashCmd.ChannelID)
	if err != nil {
		return h.errorResponse(err)
	}

	if group == nil {
		if !h.vigilService.IsAdmin(slashCmd.UserID) {
			return h.createErrorResponse("Only bot admins can set Vigil up in a channel.")
		}
		if _, _, err := h.vigilService.SetupGroup(slashCmd.ChannelID, slashCmd.ChannelName); err != nil {
			return h.errorResponse(err)
		}
		return h.inChannel(":crescent_moon: Vigil is set up in this channel. Use `/vigil join` to take part.")
	}

	if group.IsEnabled {
		return h.ephemeral("Vigil is already on in this channel.")
	}
	if err := h.vigilService.EnableGroup(group.ID); err != nil {
		return h.errorResponse(err)
	}
	return h.inChannel(":crescent_moon: Vigil is back on in this channel.")
}

func (h *SlackHandler) handleDisable(group *entity.Group) *slack.Msg {
	if err := h.vigilService.DisableGroup(group.ID); err != nil {
		return h.errorResponse(err)
	}
	return h.inChannel("Vigil is off in this channel. Use `/vigil enable` to turn it back on.")
}

func (h *SlackHandler) handleSlave(ctx context.Context, cmd *slackcmd.Command, group *entity.Group) *slack.Msg {
	if len(cmd.Args) == 0 {
		return h.createErrorResponse("Use: `/vigil slave #channel`")
	}

	masterChannelID := slackcmd.ParseMention(cmd.Args[0])
	if err := h.vigilService.LinkToMaster(ctx, group.ID, masterChannelID); err != nil {
		return h.errorResponse(err)
	}
	return h.inChannel(fmt.Sprintf("This channel now plays in the contest of <#%s>.", masterChannelID))
}

func (h *SlackHandler) handleStop(ctx context.Context, group *entity.Group) *slack.Msg {
	if err := h.vigilService.DeleteGroup(ctx, group.ID); err != nil {
		return h.errorResponse(err)
	}
	return h.inChannel("Vigil has left this channel. Good night!")
}

func (h *SlackHandler) handleConfig(cmd *slackcmd.Command, group *entity.Group) *slack.Msg {
	if len(cmd.Args) == 0 || cmd.Args[0] == "show" {
		return h.ephemeral(slackcmd.FormatGroup(group))
	}
	if len(cmd.Args) < 2 {
		return h.createErrorResponse(fmt.Sprintf("Use: `/vigil config <key> <value>` with key one of %s", strings.Join(domain.ConfigKeys, ", ")))
	}

	key := cmd.Args[0]
	value := strings.Join(cmd.Args[1:], " ")
	if err := h.vigilService.UpdateGroupConfig(group.ID, key, value); err != nil {
		return h.errorResponse(err)
	}
	return h.ephemeral(fmt.Sprintf(":white_check_mark: %s = %s", key, value))
}

func (h *SlackHandler) handleTitle(cmd *slackcmd.Command, group *entity.Group) *slack.Msg {
	var enabled bool
	switch strings.ToLower(cmd.Arg(0)) {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		return h.createErrorResponse("Use: `/vigil title on|off`")
	}

	if err := h.vigilService.SetTitleEnabled(group.ID, enabled); err != nil {
		return h.errorResponse(err)
	}
	if enabled {
		return h.ephemeral(":white_check_mark: The channel title is kept up to date.")
	}
	return h.ephemeral(":white_check_mark: The channel title is left alone.")
}

func (h *SlackHandler) handleJoin(ctx context.Context, cmd *slackcmd.Command, group *entity.Group, slashCmd *slack.SlashCommand) *slack.Msg {
	zone, err := h.vigilService.Join(ctx, group.ID, slashCmd.UserID, cmd.Arg(0))
	if err != nil {
		return h.errorResponse(err)
	}
	return h.inChannel(fmt.Sprintf(":candle: <@%s> joins the vigil from %s.", slashCmd.UserID, zone))
}

func (h *SlackHandler) handleQuit(ctx context.Context, group *entity.Group, slashCmd *slack.SlashCommand) *slack.Msg {
	if err := h.vigilService.Quit(ctx, group.ID, slashCmd.UserID); err != nil {
		return h.errorResponse(err)
	}
	return h.inChannel(fmt.Sprintf(":zzz: <@%s> left the vigil.", slashCmd.UserID))
}

func (h *SlackHandler) handleAutoJoin(ctx context.Context, cmd *slackcmd.Command, group *entity.Group, slashCmd *slack.SlashCommand) *slack.Msg {
	zone, inHall, err := h.vigilService.EnableAutoJoin(ctx, group.ID, slashCmd.UserID, cmd.Arg(0))
	if err != nil {
		return h.errorResponse(err)
	}

	text := fmt.Sprintf(":white_check_mark: You will join every night from %s.", zone)
	if !inHall {
		text += " The match is running, so you play from the next one."
	}
	return h.ephemeral(text)
}

func (h *SlackHandler) handleNoAutoJoin(ctx context.Context, group *entity.Group, slashCmd *slack.SlashCommand) *slack.Msg {
	if err := h.vigilService.DisableAutoJoin(ctx, group.ID, slashCmd.UserID); err != nil {
		return h.errorResponse(err)
	}
	return h.ephemeral(":white_check_mark: You no longer join automatically.")
}

func (h *SlackHandler) handleTime(cmd *slackcmd.Command, group *entity.Group, slashCmd *slack.SlashCommand) *slack.Msg {
	now, zone, err := h.vigilService.LocalTime(group.ID, slashCmd.UserID, cmd.Arg(0))
	if err != nil {
		return h.errorResponse(err)
	}
	return h.ephemeral(slackcmd.FormatLocalTime(now, zone))
}

func (h *SlackHandler) handleImAwake(ctx context.Context, slashCmd *slack.SlashCommand) *slack.Msg {
	recorded, err := h.vigilService.RecordActivity(ctx, slashCmd.ChannelID, slashCmd.UserID)
	if err != nil {
		return h.errorResponse(err)
	}
	if !recorded {
		return h.ephemeral("That does not count: you are not in the hall or your window is closed.")
	}
	return h.ephemeral(":eyes: Noted, you are awake.")
}

func (h *SlackHandler) handleList(cmd *slackcmd.Command, group *entity.Group) *slack.Msg {
	views, err := h.vigilService.ListParticipants(group.ID, cmd.Arg(0))
	if err != nil {
		return h.errorResponse(err)
	}
	return h.ephemeral(slackcmd.FormatPartitions("In the hall", views))
}

func (h *SlackHandler) handleMatch(group *entity.Group) *slack.Msg {
	views, err := h.vigilService.MatchStatus(group.ID)
	if err != nil {
		return h.errorResponse(err)
	}
	if len(views) == 0 {
		return h.ephemeral("No match is running right now.")
	}
	return h.ephemeral(slackcmd.FormatPartitions("Matches running now", views))
}

func (h *SlackHandler) handleMine(slashCmd *slack.SlashCommand) *slack.Msg {
	memberships, err := h.vigilService.MyStatus(slashCmd.UserID)
	if err != nil {
		return h.errorResponse(err)
	}
	return h.ephemeral(slackcmd.FormatMemberships(memberships))
}

// HandleEvents serves the Events API. Every plain user message in a channel
// counts as activity of its author.
func (h *SlackHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	body, status := h.verify(r)
	if status != http.StatusOK {
		w.WriteHeader(status)
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(challenge.Challenge))
		return
	case slackevents.CallbackEvent:
		if msg, ok := event.InnerEvent.Data.(*slackevents.MessageEvent); ok {
			h.handleMessage(r.Context(), msg)
		}
	}

	w.WriteHeader(http.StatusOK)
}

func (h *SlackHandler) handleMessage(ctx context.Context, msg *slackevents.MessageEvent) {
	if msg.User == "" || msg.BotID != "" || msg.SubType != "" {
		return
	}

	recorded, err := h.vigilService.RecordActivity(ctx, msg.Channel, msg.User)
	if err != nil {
		log.Error().Err(err).Str("channel", msg.Channel).Str("user", msg.User).Msg("failed to record activity")
		return
	}
	if recorded {
		log.Debug().Str("channel", msg.Channel).Str("user", msg.User).Msg("activity recorded")
	}
}

func (h *SlackHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

// errorResponse turns a service error into a message for the user. Errors
// the user can act on are shown as is.
func (h *SlackHandler) errorResponse(err error) *slack.Msg {
	switch {
	case errors.Is(err, contest.ErrMatchInProgress):
		return h.createErrorResponse("The match is already running in that timezone. Join the next one, or use `/vigil autojoin`.")
	case errors.Is(err, contest.ErrInvalidZone):
		return h.createErrorResponse("Unknown timezone. Use an IANA name such as `Europe/Paris`.")
	case errors.Is(err, domain.ErrGroupDisabled):
		return h.createErrorResponse("Vigil is off in this channel.")
	case errors.Is(err, domain.ErrGroupNotFound),
		errors.Is(err, domain.ErrSelfLink),
		errors.Is(err, domain.ErrInvalidValue),
		errors.Is(err, contest.ErrConfigInconsistent):
		return h.createErrorResponse(err.Error())
	}

	log.Error().Err(err).Msg("command failed")
	return h.createErrorResponse("Something went wrong, please try again.")
}

func (h *SlackHandler) ephemeral(text string) *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         text,
	}
}

func (h *SlackHandler) inChannel(text string) *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeInChannel,
		Text:         text,
	}
}

func (h *SlackHandler) createErrorResponse(message string) *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         fmt.Sprintf(":x: %s", message),
	}
}

func (h *SlackHandler) respond(w http.ResponseWriter, response *slack.Msg) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}
