package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/go-faster/errors"

	"github.com/xenking/storefront-cli/internal/api"
	"github.com/xenking/storefront-cli/internal/domain/catalog"
)

// acceptedImageExts filters selections before any network call; everything
// else is rejected locally.
var acceptedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ImageSearchPage uploads one image and shows visually similar products with
// their similarity scores, in the order the backend returned them.
//
// Selecting a second file while one is in flight is allowed: the last
// selection always wins both the preview and the results (tracked with a
// selection generation counter).
type ImageSearchPage struct {
	api   *api.Client
	toast *Toaster
	guard *Guard

	results Result[[]catalog.SearchResult]

	mu      sync.Mutex
	gen     uint64
	preview string
}

// NewImageSearchPage builds the visual search page.
func NewImageSearchPage(client *api.Client, toast *Toaster, guard *Guard) *ImageSearchPage {
	return &ImageSearchPage{api: client, toast: toast, guard: guard}
}

func (p *ImageSearchPage) Route() string { return "/search" }
func (p *ImageSearchPage) Title() string { return "Visual Search" }

func (p *ImageSearchPage) Enter(context.Context) {}

// Select validates and uploads the file at path. Non-image files are rejected
// before any network call.
func (p *ImageSearchPage) Select(ctx context.Context, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !acceptedImageExts[ext] {
		return errors.Errorf("unsupported file type %q: only jpg, jpeg, png and webp are accepted", ext)
	}

	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open image")
	}
	defer file.Close()

	// Claim the preview: the most recent selection owns it and the results.
	p.mu.Lock()
	p.gen++
	mine := p.gen
	p.preview = path
	p.mu.Unlock()

	p.results.SetLoading()
	resp, err := p.api.SearchImage(ctx, filepath.Base(path), file)

	if p.stale(mine) || ctx.Err() != nil {
		return nil
	}
	if err != nil {
		msg := errMessage(err)
		p.results.SetErr(msg)
		p.toast.Error(msg)
		return nil
	}
	p.results.SetOK(resp.Products)
	return nil
}

// stale reports whether a newer selection superseded generation g.
func (p *ImageSearchPage) stale(g uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen != g
}

// Preview returns the path of the last selected image.
func (p *ImageSearchPage) Preview() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.preview
}

// AddToCart puts one unit of a result in the cart.
func (p *ImageSearchPage) AddToCart(ctx context.Context, productID string) error {
	return p.guard.Do("cart.add:"+productID, func() error {
		if err := p.api.AddToCart(ctx, productID, 1); err != nil {
			p.toast.Error(errMessage(err))
			return nil
		}
		p.toast.Success("Added to cart")
		return nil
	})
}

func (p *ImageSearchPage) Exec(ctx context.Context, args []string) error {
	switch args[0] {
	case "upload":
		if len(args) < 2 {
			return errUnknownCommand
		}
		return p.Select(ctx, args[1])
	case "add":
		if len(args) < 2 {
			return errUnknownCommand
		}
		return p.AddToCart(ctx, args[1])
	default:
		return errUnknownCommand
	}
}

func (p *ImageSearchPage) Render(w io.Writer) {
	preview := p.Preview()
	if preview == "" {
		// Nothing selected yet, so the results state is meaningless.
		fmt.Fprintln(w, "upload an image to find similar products: upload <path>")
		return
	}
	fmt.Fprintf(w, "preview: %s\n", preview)

	state, results, errMsg := p.results.Get()
	switch state {
	case StateLoading:
		fmt.Fprintln(w, "analyzing image and finding similar products...")
	case StateErr:
		fmt.Fprintln(w, color.RedString("search failed: %s", errMsg))
	case StateOK:
		if len(results) == 0 {
			fmt.Fprintln(w, "no similar products found")
			return
		}
		for _, r := range results {
			fmt.Fprintf(w, "%-8s %-40s %10s  %s\n",
				r.ID, r.Name, "$"+r.Price.StringFixed(2),
				color.GreenString("%d%% match", int(r.Similarity*100)))
		}
	}
}
