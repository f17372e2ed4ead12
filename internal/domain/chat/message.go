// Package chat defines the assistant conversation model. A transcript is an
// append-only sequence local to one session; it is never persisted and never
// reconciled with server-side state because none is kept.
package chat

import "time"

// Context carries the structured hints the assistant attaches to a reply:
// product names, categories and colors it matched against.
type Context struct {
	Products   []string `json:"products,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Colors     []string `json:"colors,omitempty"`
}

// Message is one transcript entry, either from the user or the assistant.
type Message struct {
	Text     string
	FromUser bool
	SentAt   time.Time
	Context  *Context
}

// User builds a user-authored message stamped with the current time.
func User(text string) Message {
	return Message{Text: text, FromUser: true, SentAt: time.Now()}
}

// Assistant builds an assistant reply with optional context hints.
func Assistant(text string, ctx *Context) Message {
	return Message{Text: text, SentAt: time.Now(), Context: ctx}
}

// Preferences are the shopper preferences sent along with every chat message.
// The backend uses them to bias recommendations; the client never interprets
// them.
type Preferences struct {
	Style          string   `json:"style"`
	Size           string   `json:"size"`
	FavoriteColors []string `json:"favoriteColors,omitempty"`
	PriceRange     string   `json:"priceRange"`
}

// DefaultPreferences mirrors the defaults applied when the shopper has not
// configured any.
func DefaultPreferences() Preferences {
	return Preferences{
		Style:          "casual",
		Size:           "M",
		FavoriteColors: []string{"blue", "black"},
		PriceRange:     "medium",
	}
}
