package slack

import (
	"fmt"
	"strings"
)

type CommandType string

const (
	CmdEnable     CommandType = "enable"
	CmdDisable    CommandType = "disable"
	CmdSlave      CommandType = "slave"
	CmdStop       CommandType = "stop"
	CmdStatus     CommandType = "status"
	CmdConfig     CommandType = "config"
	CmdTitle      CommandType = "title"
	CmdJoin       CommandType = "join"
	CmdQuit       CommandType = "quit"
	CmdAutoJoin   CommandType = "autojoin"
	CmdNoAutoJoin CommandType = "noautojoin"
	CmdTime       CommandType = "time"
	CmdImAwake    CommandType = "imawake"
	CmdList       CommandType = "list"
	CmdMatch      CommandType = "match"
	CmdMine       CommandType = "mine"
	CmdHelp       CommandType = "help"
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

// AdminOnly reports whether the command changes group settings. Enable is
// only restricted for the first setup, which the handler checks itself.
func (c *Command) AdminOnly() bool {
	switch c.Type {
	case CmdSlave, CmdStop, CmdConfig, CmdTitle:
		return true
	}
	return false
}

// Arg returns the i-th argument or an empty string
func (c *Command) Arg(i int) string {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return ""
}

func ParseCommand(text string) (*Command, error) {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) == 0 {
		return &Command{Type: CmdHelp}, nil
	}

	cmd := &Command{
		Raw: text,
	}
	if len(parts) > 1 {
		cmd.Args = parts[1:]
	}

	switch strings.ToLower(parts[0]) {
	case "enable", "start":
		cmd.Type = CmdEnable
	case "disable":
		cmd.Type = CmdDisable
	case "slave", "link":
		cmd.Type = CmdSlave
	case "stop":
		cmd.Type = CmdStop
	case "status":
		cmd.Type = CmdStatus
	case "config":
		cmd.Type = CmdConfig
	case "title":
		cmd.Type = CmdTitle
	case "join":
		cmd.Type = CmdJoin
	case "quit", "leave":
		cmd.Type = CmdQuit
	case "autojoin":
		cmd.Type = CmdAutoJoin
	case "noautojoin":
		cmd.Type = CmdNoAutoJoin
	case "time":
		cmd.Type = CmdTime
	case "imawake", "awake":
		cmd.Type = CmdImAwake
	case "list", "ls":
		cmd.Type = CmdList
	case "match":
		cmd.Type = CmdMatch
	case "mine", "me":
		cmd.Type = CmdMine
	case "help":
		cmd.Type = CmdHelp
	default:
		return nil, fmt.Errorf("unknown command: %s", parts[0])
	}

	return cmd, nil
}

// ParseMention extracts the channel or user id from a Slack mention such as
// <#C123|general> or <@U123>. Plain ids are returned unchanged.
func ParseMention(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "<")
	value = strings.TrimSuffix(value, ">")
	value = strings.TrimLeft(value, "#@")
	if i := strings.Index(value, "|"); i >= 0 {
		value = value[:i]
	}
	return value
}

func GetHelpText() string {
	return `*Last one awake wins*

*Playing:*
• ` + "`/vigil join [timezone]`" + ` - Join tonight's match
• ` + "`/vigil quit`" + ` - Leave the match
• ` + "`/vigil autojoin [timezone]`" + ` - Join every night automatically
• ` + "`/vigil noautojoin`" + ` - Stop joining automatically
• ` + "`/vigil imawake`" + ` - Prove you are still awake

*Looking around:*
• ` + "`/vigil list [timezone|+hhmm]`" + ` - List participants
• ` + "`/vigil match`" + ` - Show the matches running now
• ` + "`/vigil mine`" + ` - Show the groups you play in
• ` + "`/vigil time [timezone]`" + ` - Show your local time
• ` + "`/vigil status`" + ` - Show this group's settings

*Admin:*
• ` + "`/vigil enable`" + ` / ` + "`/vigil disable`" + ` - Turn the bot on or off here
• ` + "`/vigil slave #channel`" + ` - Mirror the contest of another channel
• ` + "`/vigil stop`" + ` - Remove the bot from this channel
• ` + "`/vigil config <key> <value>`" + ` - Change a setting
• ` + "`/vigil title on|off`" + ` - Keep the channel topic updated`
}
