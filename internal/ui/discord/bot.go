// Package discord adapts the bot's domain to the Discord platform: slash
// commands, reaction roles, auto reactions, presence, and the daily-post
// channel send.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/fxelysrism/a-map-of-us-bot/internal/config"
	"github.com/fxelysrism/a-map-of-us-bot/internal/core/domain"
	"github.com/fxelysrism/a-map-of-us-bot/internal/core/ports"
)

const embedColor = 0x5865F2 // blurple

type Bot struct {
	cfg     config.Config
	source  ports.Source
	session *discordgo.Session

	ready     chan struct{}
	readyOnce sync.Once
}

func New(cfg config.Config, source ports.Source) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	// Reaction roles need members + reaction events; keyword auto
	// reactions need message content.
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent

	b := &Bot{
		cfg:     cfg,
		source:  source,
		session: session,
		ready:   make(chan struct{}),
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	session.AddHandler(b.onMessage)
	session.AddHandler(b.onReactionAdd)
	session.AddHandler(b.onReactionRemove)

	return b, nil
}

var _ ports.Publisher = (*Bot)(nil)

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	if err := b.registerCommands(); err != nil {
		// The bot still works for events; commands just stay stale.
		slog.Error("slash command sync failed", slog.String("error", err.Error()))
	}
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

// ReadyGate is closed once the session is ready; the scheduler waits on
// it before its first fire.
func (b *Bot) ReadyGate() <-chan struct{} {
	return b.ready
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	if err := s.UpdateWatchStatus(0, b.cfg.StatusText); err != nil {
		slog.Warn("set presence failed", slog.String("error", err.Error()))
	}
	slog.Info("logged in",
		slog.String("user", r.User.Username),
		slog.String("id", r.User.ID))
	b.readyOnce.Do(func() { close(b.ready) })
}

// Publish resolves the daily channel (state cache first, REST fallback)
// and sends the document as an embed. An unresolved channel is an error;
// the scheduler retries on the next day's tick.
func (b *Bot) Publish(ctx context.Context, doc domain.Document) error {
	channelID := b.cfg.DailyChannelID
	if _, err := b.session.State.Channel(channelID); err != nil {
		if _, err := b.session.Channel(channelID); err != nil {
			return fmt.Errorf("resolve channel %s: %w", channelID, err)
		}
	}
	if _, err := b.session.ChannelMessageSendEmbed(channelID, embedFromDocument(doc)); err != nil {
		return fmt.Errorf("send daily post: %w", err)
	}
	return nil
}

func embedFromDocument(doc domain.Document) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       doc.Title,
		Description: doc.Body,
		Color:       embedColor,
		Author:      &discordgo.MessageEmbedAuthor{Name: doc.AuthorLine},
		Footer:      &discordgo.MessageEmbedFooter{Text: doc.Footer},
	}
	if doc.Link != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "View",
			Value: doc.Link,
		})
	}
	return embed
}
