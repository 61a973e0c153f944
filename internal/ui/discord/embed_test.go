package discord

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxelysrism/a-map-of-us-bot/internal/core/domain"
)

func TestEmbedFromDocument(t *testing.T) {
	embed := embedFromDocument(domain.Document{
		Title:      "travel • 2024-03-01",
		Body:       "a memory",
		AuthorLine: "ada",
		Footer:     "ID: m-3",
		Link:       "https://amapof.us/map?mou=m-3",
	})

	assert.Equal(t, "travel • 2024-03-01", embed.Title)
	assert.Equal(t, "a memory", embed.Description)
	assert.Equal(t, "ada", embed.Author.Name)
	assert.Equal(t, "ID: m-3", embed.Footer.Text)
	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "View", embed.Fields[0].Name)
	assert.Equal(t, "https://amapof.us/map?mou=m-3", embed.Fields[0].Value)
}

func TestEmbedFromDocument_NoLinkField(t *testing.T) {
	embed := embedFromDocument(domain.Document{
		Title:  "mous • Unknown date",
		Body:   "*No text found.*",
		Footer: "ID: unknown-id",
	})
	assert.Empty(t, embed.Fields)
}

func TestCommandSet(t *testing.T) {
	cmds := commandSet()
	require.Len(t, cmds, 2)

	mousCmd := cmds[0]
	assert.Equal(t, "mous", mousCmd.Name)
	var subs []string
	for _, opt := range mousCmd.Options {
		subs = append(subs, opt.Name)
	}
	assert.ElementsMatch(t, []string{"random", "id", "debug"}, subs)

	assert.Equal(t, "reload", cmds[1].Name)
}

func TestShort_Truncates(t *testing.T) {
	long := strings.Repeat("e", 500)
	got := short(long)
	assert.Len(t, []rune(got), 201)
	assert.True(t, strings.HasSuffix(got, "…"))

	assert.Equal(t, "brief", short("brief"))
}
