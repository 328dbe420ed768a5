package slack

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/diegoclair/vigil-bot/internal/domain/contest"
	"github.com/diegoclair/vigil-bot/internal/domain/entity"
)

const clockLayout = "15:04"

// Winner is an announced winner with its member resolved for display
type Winner struct {
	Member    *entity.Member
	Key       contest.WinnerKey
	Zones     []string
	LocalTime time.Time
}

// Mention renders a member as a Slack user mention
func Mention(member *entity.Member) string {
	if member == nil {
		return "someone"
	}
	if member.SlackUserID != "" {
		return fmt.Sprintf("<@%s>", member.SlackUserID)
	}
	return Name(member)
}

// Name renders a member without notifying them
func Name(member *entity.Member) string {
	switch {
	case member == nil:
		return "someone"
	case member.DisplayName != "":
		return member.DisplayName
	case member.SlackUserID != "":
		return member.SlackUserID
	default:
		return "member #" + strconv.FormatInt(member.ID, 10)
	}
}

func offsetLabel(offset contest.Offset, zones []string) string {
	if len(zones) == 0 {
		return "UTC" + offset.String()
	}
	return fmt.Sprintf("UTC%s (%s)", offset, strings.Join(zones, ", "))
}

func FormatWinners(winners []Winner) string {
	var b strings.Builder
	b.WriteString(":trophy: *Last one awake*\n")
	for _, w := range winners {
		fmt.Fprintf(&b, "• %s wins %s for %s, last seen at %s\n",
			Mention(w.Member), w.Key.Date, offsetLabel(w.Key.Offset, w.Zones), w.LocalTime.Format(clockLayout))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatPartitions lists the hall grouped by UTC offset
func FormatPartitions(header string, views []*entity.PartitionView) string {
	if len(views) == 0 {
		return "Nobody is in the hall."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", header)
	for _, view := range views {
		fmt.Fprintf(&b, "\n*%s* local time %s\n", offsetLabel(view.Offset, view.Zones), view.LocalTime.Format(clockLayout))
		for _, p := range view.Participants {
			line := fmt.Sprintf("• %s, last seen %s", Name(p.Member), p.LastActive.In(view.Offset.Location()).Format(clockLayout))
			if p.AutoJoin {
				line += " (autojoin)"
			}
			b.WriteString(line + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func FormatMatchStart(views []*entity.PartitionView) string {
	var b strings.Builder
	b.WriteString(":crescent_moon: *The match starts now*\n")
	for _, view := range views {
		fmt.Fprintf(&b, "• %s: %d in the hall\n", offsetLabel(view.Offset, view.Zones), len(view.Participants))
	}
	b.WriteString("Stay awake!")
	return b.String()
}

func FormatMatchSoon(offsets []contest.Offset) string {
	labels := make([]string, 0, len(offsets))
	for _, offset := range offsets {
		labels = append(labels, "UTC"+offset.String())
	}
	return fmt.Sprintf(":alarm_clock: The match starts in one hour in %s. Use `/vigil join` to take part.", strings.Join(labels, ", "))
}

func FormatMemberships(memberships []*entity.Membership) string {
	if len(memberships) == 0 {
		return "You are not playing anywhere."
	}

	var b strings.Builder
	b.WriteString("*You are playing in:*\n")
	for _, m := range memberships {
		name := m.Group.SlackChannelName
		if name == "" {
			name = m.Group.SlackChannelID
		}
		fmt.Fprintf(&b, "• <#%s|%s> as %s, last seen %s\n", m.Group.SlackChannelID, name, m.Timezone, m.LastActive.UTC().Format(time.RFC3339))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func FormatGroup(group *entity.Group) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Settings of <#%s>*\n", group.SlackChannelID)
	fmt.Fprintf(&b, "• enabled: %s\n", onOff(group.IsEnabled))
	if group.IsSlave() {
		fmt.Fprintf(&b, "• mirrors group #%d\n", group.SlaveOf)
	} else {
		fmt.Fprintf(&b, "• mode: %s\n", group.Contest.Mode)
		fmt.Fprintf(&b, "• deadline: %d\n", group.Contest.Deadline)
		fmt.Fprintf(&b, "• start: %02d:00\n", group.Contest.StartHour)
		fmt.Fprintf(&b, "• stop: %02d:00\n", group.Contest.StopHour)
		fmt.Fprintf(&b, "• broadcast_delay: %s\n", onOff(group.Contest.DelayBroadcast))
	}
	fmt.Fprintf(&b, "• timezone: %s\n", group.Timezone)
	fmt.Fprintf(&b, "• title: %s (%s)\n", onOff(group.TitleEnabled), group.TitleTemplate)
	fmt.Fprintf(&b, "• status_broadcast: %s\n", onOff(group.BroadcastStatus))
	fmt.Fprintf(&b, "• winner_broadcast: %s", onOff(group.BroadcastWinner))
	return b.String()
}

func FormatLocalTime(now time.Time, zone string) string {
	return fmt.Sprintf(":clock3: It is %s in %s (UTC%s).", now.Format("Mon 15:04"), zone, now.Format("-0700"))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
