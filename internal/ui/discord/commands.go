package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/fxelysrism/a-map-of-us-bot/internal/mous"
)

// debugLimit caps the raw payload dump in /mous debug replies.
const debugLimit = 1800

func commandSet() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "mous",
			Description: "Request Mous",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "random",
					Description: "Get a random Mous (via the API).",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "id",
					Description: "Get a Mous by ID (via the API).",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "mous_id",
							Description: "The Mous ID to fetch",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "debug",
					Description: "Show raw random Mous payload (truncated).",
				},
			},
		},
		{
			Name:        "reload",
			Description: "Reload slash commands (sync).",
		},
	}
}

// registerCommands bulk-overwrites the command set, guild-scoped when a
// guild id is configured so updates show up without the global delay.
func (b *Bot) registerCommands() error {
	appID := b.session.State.User.ID
	_, err := b.session.ApplicationCommandBulkOverwrite(appID, b.cfg.GuildID, commandSet())
	return err
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	switch data.Name {
	case "mous":
		if len(data.Options) == 0 {
			return
		}
		sub := data.Options[0]
		switch sub.Name {
		case "random":
			b.handleRandom(i)
		case "id":
			if len(sub.Options) == 0 {
				return
			}
			b.handleByID(i, sub.Options[0].StringValue())
		case "debug":
			b.handleDebug(i)
		}
	case "reload":
		b.handleReload(i)
	}
}

func (b *Bot) handleRandom(i *discordgo.InteractionCreate) {
	b.deferReply(i, false)

	payload, err := b.source.Random(context.Background())
	if err != nil {
		b.followupError(i, fmt.Sprintf("❌ Failed to fetch random Mous: `%s`", short(err.Error())))
		return
	}
	b.followupEmbed(i, embedFromDocument(mous.Render(mous.Canonicalize(payload))))
}

func (b *Bot) handleByID(i *discordgo.InteractionCreate, id string) {
	b.deferReply(i, false)

	payload, err := b.source.ByID(context.Background(), id)
	if err != nil {
		b.followupError(i, fmt.Sprintf("❌ Failed to fetch Mous %s: `%s`", id, short(err.Error())))
		return
	}
	b.followupEmbed(i, embedFromDocument(mous.Render(mous.Canonicalize(payload))))
}

func (b *Bot) handleDebug(i *discordgo.InteractionCreate) {
	b.deferReply(i, true)

	payload, err := b.source.RandomRaw(context.Background())
	if err != nil {
		b.followupError(i, fmt.Sprintf("❌ Debug failed: `%s`", short(err.Error())))
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte(fmt.Sprint(payload))
	}
	dump := string(raw)
	if runes := []rune(dump); len(runes) > debugLimit {
		dump = string(runes[:debugLimit]) + "…"
	}
	b.followup(i, "```"+dump+"```", true)
}

func (b *Bot) handleReload(i *discordgo.InteractionCreate) {
	if !isAdmin(i) {
		b.respondEphemeral(i, "You do not have permission to use this.")
		return
	}
	if err := b.registerCommands(); err != nil {
		b.respondEphemeral(i, fmt.Sprintf("Command failed: `%s`", short(err.Error())))
		return
	}
	b.respondEphemeral(i, fmt.Sprintf("Reloaded %d slash commands.", len(commandSet())))
}

func isAdmin(i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	perms := i.Member.Permissions
	return perms&discordgo.PermissionAdministrator != 0 ||
		perms&discordgo.PermissionManageServer != 0
}

func (b *Bot) deferReply(i *discordgo.InteractionCreate, ephemeral bool) {
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}
	if ephemeral {
		resp.Data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}
	if err := b.session.InteractionRespond(i.Interaction, resp); err != nil {
		slog.Warn("interaction defer failed", slog.String("error", err.Error()))
	}
}

func (b *Bot) respondEphemeral(i *discordgo.InteractionCreate, content string) {
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Warn("interaction respond failed", slog.String("error", err.Error()))
	}
}

func (b *Bot) followup(i *discordgo.InteractionCreate, content string, ephemeral bool) {
	params := &discordgo.WebhookParams{Content: content}
	if ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	if _, err := b.session.FollowupMessageCreate(i.Interaction, true, params); err != nil {
		slog.Warn("interaction followup failed", slog.String("error", err.Error()))
	}
}

func (b *Bot) followupEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	params := &discordgo.WebhookParams{Embeds: []*discordgo.MessageEmbed{embed}}
	if _, err := b.session.FollowupMessageCreate(i.Interaction, true, params); err != nil {
		slog.Warn("interaction followup failed", slog.String("error", err.Error()))
	}
}

func (b *Bot) followupError(i *discordgo.InteractionCreate, content string) {
	b.followup(i, content, true)
}

// short keeps command error replies to a single readable line.
func short(s string) string {
	const max = 200
	if runes := []rune(s); len(runes) > max {
		return string(runes[:max]) + "…"
	}
	return s
}
