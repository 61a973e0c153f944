package domain

// Record is a memory entry in canonical form. Every field is non-empty:
// the normalizer substitutes a default for anything the upstream payload
// does not provide, so consumers never need nil/absence handling.
type Record struct {
	ID         string
	Category   string
	MemoryDate string
	Author     string
	Text       string
}

// Document is the platform-neutral rendering of a Record. The Discord
// adapter maps it onto an embed; nothing here depends on the platform.
type Document struct {
	Title      string
	Body       string
	AuthorLine string
	Footer     string
	// Link is empty when the record id never resolved.
	Link string
}

// ReactionRoles maps message id -> emoji -> role id. A reaction with a
// matching emoji on a listed message grants the role; removing it revokes.
type ReactionRoles map[string]map[string]string

// AutoReactChannels maps channel id -> emoji list applied to every message.
type AutoReactChannels map[string][]string

// AutoReactKeywords maps a case-insensitive keyword -> emoji list applied
// to any message containing it.
type AutoReactKeywords map[string][]string
