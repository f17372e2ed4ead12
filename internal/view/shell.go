package view

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/storefront-cli/internal/api"
)

// Shell is the navigation chrome: a route table over the pages, a prompt
// loop, and a per-page context cancelled on navigation so responses arriving
// after a page is left never touch its state.
//
// The shell holds no shared data between pages; cross-page state lives on the
// backend and is refetched on entry. There is no route guarding — a missing
// token is only discovered when a privileged call fails.
type Shell struct {
	api   *api.Client
	toast *Toaster
	out   io.Writer

	routes map[string]Page
	order  []string

	current Page
	pageCtx context.Context
	cancel  context.CancelFunc
}

// NewShell composes the pages into a routing table, preserving their order
// for the help listing.
func NewShell(out io.Writer, client *api.Client, toast *Toaster, pages ...Page) *Shell {
	s := &Shell{
		api:    client,
		toast:  toast,
		out:    out,
		routes: make(map[string]Page, len(pages)),
	}
	for _, p := range pages {
		s.routes[p.Route()] = p
		s.order = append(s.order, p.Route())
	}
	return s
}

// Navigate switches to the page at route. The outgoing page's context is
// cancelled; its in-flight requests resolve into nothing.
func (s *Shell) Navigate(ctx context.Context, route string) error {
	page, ok := s.routes[route]
	if !ok {
		return errors.Errorf("no such page %q", route)
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.pageCtx, s.cancel = context.WithCancel(ctx)
	s.current = page
	page.Enter(s.pageCtx)
	return nil
}

// Current returns the active page.
func (s *Shell) Current() Page {
	return s.current
}

// Run drives the prompt loop until the input ends or ctx is cancelled.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	lg := zctx.From(ctx)

	if err := s.Navigate(ctx, "/"); err != nil {
		return err
	}
	s.render()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(s.out, "%s ", color.New(color.Bold).Sprintf("%s>", s.current.Route()))
		if !scanner.Scan() {
			if s.cancel != nil {
				s.cancel()
			}
			return scanner.Err()
		}
		if ctx.Err() != nil {
			if s.cancel != nil {
				s.cancel()
			}
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			s.render()
			continue
		}

		args := strings.Fields(line)
		if done := s.dispatch(ctx, args); done {
			return nil
		}
		lg.Debug("Command handled", zap.String("page", s.current.Route()), zap.String("cmd", args[0]))
		s.render()
	}
}

// dispatch handles global commands, falling through to the current page.
// It returns true when the user asked to quit.
func (s *Shell) dispatch(ctx context.Context, args []string) bool {
	switch args[0] {
	case "quit", "exit":
		if s.cancel != nil {
			s.cancel()
		}
		return true
	case "help":
		s.printHelp()
		return false
	case "go":
		if len(args) < 2 {
			s.toast.Error("usage: go <route>")
			return false
		}
		s.navigateOrToast(ctx, args[1])
		return false
	case "login", "register":
		if len(args) < 3 {
			s.toast.Error(fmt.Sprintf("usage: %s <email> <password>", args[0]))
			return false
		}
		s.authenticate(ctx, args[0], args[1], args[2])
		return false
	case "logout":
		if err := s.api.Logout(); err != nil {
			s.toast.Error(errMessage(err))
			return false
		}
		s.toast.Info("Signed out")
		return false
	}

	// Bare routes navigate directly.
	if strings.HasPrefix(args[0], "/") {
		s.navigateOrToast(ctx, args[0])
		return false
	}

	// Page commands run under the page's own context: navigating away aborts
	// whatever the command left in flight.
	if err := s.current.Exec(s.pageCtx, args); err != nil {
		s.toast.Error(errMessage(err))
	}
	return false
}

func (s *Shell) navigateOrToast(ctx context.Context, route string) {
	if err := s.Navigate(ctx, route); err != nil {
		s.toast.Error(errMessage(err))
	}
}

func (s *Shell) authenticate(ctx context.Context, action, email, password string) {
	var err error
	switch action {
	case "login":
		err = s.api.Login(ctx, email, password)
	case "register":
		err = s.api.Register(ctx, email, password)
	}
	if err != nil {
		s.toast.Error(errMessage(err))
		return
	}
	s.toast.Success("Signed in as " + email)
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, "pages:")
	for _, route := range s.order {
		fmt.Fprintf(s.out, "  %-12s %s\n", route, s.routes[route].Title())
	}
	fmt.Fprintln(s.out, "global: go <route> | login <email> <pw> | register <email> <pw> | logout | help | quit")
}

func (s *Shell) render() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, color.New(color.Bold, color.FgBlue).Sprint("== "+s.current.Title()+" =="))
	s.current.Render(s.out)
	s.toast.Render(s.out)
}
