// Package texture loads bitmaps in the background and samples them the way
// a clamp-to-edge, linearly filtered GPU texture would.
package texture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedScheme = errors.New("texture: unsupported source scheme")

const defaultMaxBytes = 32 << 20

// Options tune a load.
type Options struct {
	// Client fetches http(s) sources. nil means http.DefaultClient.
	Client *http.Client
	// Logger receives load diagnostics. nil discards them.
	Logger *slog.Logger
	// MaxBytes caps the encoded size. 0 means 32 MiB.
	MaxBytes int64
}

// Placeholder returns the 1×1 fully transparent image used until a load
// completes.
func Placeholder() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{})
	return img
}

// Pending is an in-flight load. Current is safe to call from any goroutine
// at any time.
type Pending struct {
	src  string
	done chan struct{}

	mu  sync.Mutex
	img image.Image
	err error
}

// Load starts loading src, a file path or an http(s) URL, and returns
// immediately.
func Load(ctx context.Context, src string, opts Options) *Pending {
	p := &Pending{
		src:  src,
		done: make(chan struct{}),
		img:  Placeholder(),
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	go func() {
		defer close(p.done)
		img, err := fetch(ctx, src, opts)
		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.err = err
			log.Warn("texture load failed; keeping placeholder", "src", src, "error", err)
			return
		}
		p.img = img
		b := img.Bounds()
		log.Debug("texture loaded", "src", src, "width", b.Dx(), "height", b.Dy())
	}()
	return p
}

func (p *Pending) Source() string { return p.src }

// Current returns the placeholder until the load succeeds, then the
// decoded image.
func (p *Pending) Current() image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.img
}

// Done is closed once the load has finished, successfully or not.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Err returns the load error after Done is closed.
func (p *Pending) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func fetch(ctx context.Context, src string, opts Options) (image.Image, error) {
	rc, err := open(ctx, src, opts.Client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	limit := opts.MaxBytes
	if limit <= 0 {
		limit = defaultMaxBytes
	}
	img, _, err := image.Decode(io.LimitReader(rc, limit))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	return img, nil
}

func open(ctx context.Context, src string, client *http.Client) (io.ReadCloser, error) {
	u, err := url.Parse(src)
	// Single-letter schemes are Windows drive letters.
	if err != nil || len(u.Scheme) <= 1 {
		return openFile(src)
	}
	switch strings.ToLower(u.Scheme) {
	case "file":
		return openFile(u.Path)
	case "http", "https":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", src, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %s", src, resp.Status)
	}
	return resp.Body, nil
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	return f, nil
}
