package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// onMessage applies the auto-react rules. Every reaction call is
// best-effort; a failed reaction never surfaces.
func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore bot messages to prevent loops.
	if m.Author == nil || m.Author.Bot {
		return
	}

	for _, emoji := range b.cfg.AutoReactChannels[m.ChannelID] {
		_ = s.MessageReactionAdd(m.ChannelID, m.ID, emoji)
	}

	if len(b.cfg.AutoReactKeywords) == 0 || m.Content == "" {
		return
	}
	content := strings.ToLower(m.Content)
	for keyword, emojis := range b.cfg.AutoReactKeywords {
		if !strings.Contains(content, strings.ToLower(keyword)) {
			continue
		}
		for _, emoji := range emojis {
			_ = s.MessageReactionAdd(m.ChannelID, m.ID, emoji)
		}
	}
}

func (b *Bot) onReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if s.State.User != nil && r.UserID == s.State.User.ID {
		return
	}
	roleID := b.reactionRole(r.MessageID, r.Emoji)
	if roleID == "" || r.GuildID == "" {
		return
	}
	_ = s.GuildMemberRoleAdd(r.GuildID, r.UserID, roleID)
}

func (b *Bot) onReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	roleID := b.reactionRole(r.MessageID, r.Emoji)
	if roleID == "" || r.GuildID == "" {
		return
	}
	_ = s.GuildMemberRoleRemove(r.GuildID, r.UserID, roleID)
}

// reactionRole resolves a reaction to a role id via the configured rules,
// or "" when no rule matches.
func (b *Bot) reactionRole(messageID string, emoji discordgo.Emoji) string {
	roleMap := b.cfg.ReactionRoles[messageID]
	if roleMap == nil {
		return ""
	}
	return roleMap[emoji.APIName()]
}
