package view

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/xenking/storefront-cli/internal/session"
	"github.com/xenking/storefront-cli/pkg/health"
)

// HomePage is the storefront landing view: a short orientation plus the
// backend connectivity status.
type HomePage struct {
	sess    *session.Session
	monitor *health.Monitor
}

// NewHomePage builds the landing page.
func NewHomePage(sess *session.Session, monitor *health.Monitor) *HomePage {
	return &HomePage{sess: sess, monitor: monitor}
}

func (p *HomePage) Route() string { return "/" }
func (p *HomePage) Title() string { return "AI Shopping Experience" }

func (p *HomePage) Enter(context.Context) {}

func (p *HomePage) Exec(context.Context, []string) error {
	return errUnknownCommand
}

func (p *HomePage) Render(w io.Writer) {
	fmt.Fprintln(w, "welcome! browse /products, try /search with a photo,")
	fmt.Fprintln(w, "chat with the /assistant, or review your /cart.")

	if p.sess.Authenticated() {
		fmt.Fprintln(w, "signed in")
	} else {
		fmt.Fprintln(w, "not signed in — use: login <email> <password>")
	}

	for _, s := range p.monitor.Statuses() {
		if s.Reachable {
			fmt.Fprintf(w, "%s: %s\n", s.Name, color.GreenString("online"))
		} else {
			fmt.Fprintf(w, "%s: %s\n", s.Name, color.RedString("offline"))
		}
	}
}
