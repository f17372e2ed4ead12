package view

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/xenking/storefront-cli/internal/api"
	"github.com/xenking/storefront-cli/internal/domain/chat"
)

// greeting opens every assistant session.
const greeting = "Hello! I'm your shopping assistant. I can help you find products, " +
	"answer questions about items, and provide style recommendations. How can I help you today?"

// fallbackReply is appended when the assistant call fails, so the transcript
// always pairs the user's message with a reply.
const fallbackReply = "I apologize, but I'm having trouble processing your request at the moment. " +
	"Please try again in a few moments, or you can try rephrasing your question."

// ChatPage is the assistant conversation. The user's message is echoed into
// the transcript immediately — a pure local echo, not a server-confirmed
// mutation — then the assistant's reply (or the fixed fallback) follows. The
// transcript is never reconciled with any server-side state because none is
// kept.
type ChatPage struct {
	api   *api.Client
	toast *Toaster
	guard *Guard
	prefs chat.Preferences

	mu         sync.Mutex
	transcript []chat.Message
}

// NewChatPage builds the assistant page with the opening greeting in place.
func NewChatPage(client *api.Client, toast *Toaster, guard *Guard, prefs chat.Preferences) *ChatPage {
	return &ChatPage{
		api:        client,
		toast:      toast,
		guard:      guard,
		prefs:      prefs,
		transcript: []chat.Message{chat.Assistant(greeting, nil)},
	}
}

func (p *ChatPage) Route() string { return "/assistant" }
func (p *ChatPage) Title() string { return "AI Assistant" }

func (p *ChatPage) Enter(context.Context) {}

// Send appends the user's message, asks the assistant, and appends exactly
// one reply — the assistant's answer or the fixed fallback on failure. The
// user entry survives either way.
func (p *ChatPage) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	return p.guard.Do("chat.send", func() error {
		p.append(chat.User(text))

		reply, err := p.api.SendMessage(ctx, text, p.prefs)
		if err != nil {
			p.append(chat.Assistant(fallbackReply, nil))
			p.toast.Error(errMessage(err))
			return nil
		}
		p.append(chat.Assistant(reply.Response, reply.Context))
		return nil
	})
}

func (p *ChatPage) append(m chat.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transcript = append(p.transcript, m)
}

// Transcript returns a copy of the conversation so far.
func (p *ChatPage) Transcript() []chat.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.transcript)
}

// Exec treats the whole line as a message to the assistant.
func (p *ChatPage) Exec(ctx context.Context, args []string) error {
	return p.Send(ctx, strings.Join(args, " "))
}

func (p *ChatPage) Render(w io.Writer) {
	for _, m := range p.Transcript() {
		if m.FromUser {
			fmt.Fprintf(w, "%s %s\n", color.CyanString("you>"), m.Text)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", color.GreenString("assistant>"), m.Text)
		if m.Context != nil && len(m.Context.Products) > 0 {
			fmt.Fprintf(w, "  matched: %s\n", strings.Join(m.Context.Products, ", "))
		}
	}
}
