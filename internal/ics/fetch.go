package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sourcegraph/conc/pool"

	appLog "termcal/internal/log"
	"termcal/internal/style"
)

const defaultFetchWorkers = 4

// Source represents a single calendar source: a local .ics file, a
// directory of them, or an http(s) URL.
type Source struct {
	// ID is an internal identifier used for logging.
	ID string
	// Path is a file or directory on disk.
	Path string
	// URL is an ICS endpoint. Takes precedence over Path.
	URL string
	// Style is attached to every occurrence of this source's events.
	Style style.Rule
}

func (s Source) describe() string {
	if s.URL != "" {
		return redactURL(s.URL)
	}
	return s.Path
}

// FetchResult contains one ICS payload. A directory source yields one
// result per file.
type FetchResult struct {
	Source Source
	Name   string // file path or redacted URL
	Body   []byte
}

// Fetcher reads ICS payloads from disk or over HTTP.
type Fetcher struct {
	client  *http.Client
	workers int
}

// NewFetcher creates a new ICS Fetcher with a bounded HTTP client.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		workers: defaultFetchWorkers,
	}
}

// FetchAll fetches all given sources concurrently and returns the results in
// source order. Errors for individual sources are logged and returned in the
// error slice; they never stop the other sources.
func (f *Fetcher) FetchAll(ctx context.Context, sources []Source) ([]FetchResult, []error) {
	perSource := make([][]FetchResult, len(sources))
	perErr := make([]error, len(sources))

	p := pool.New().WithMaxGoroutines(f.workers)
	for i, src := range sources {
		i, src := i, src
		p.Go(func() {
			perSource[i], perErr[i] = f.FetchOne(ctx, src)
		})
	}
	p.Wait()

	results := make([]FetchResult, 0, len(sources))
	errs := make([]error, 0)
	for i, src := range sources {
		if perErr[i] != nil {
			errs = append(errs, perErr[i])
			appLog.Error("ics fetch failed", perErr[i], "id", src.ID, "location", src.describe())
			continue
		}
		results = append(results, perSource[i]...)
	}
	return results, errs
}

// FetchOne reads a single source.
func (f *Fetcher) FetchOne(ctx context.Context, src Source) ([]FetchResult, error) {
	switch {
	case src.URL != "":
		body, err := f.fetchURL(ctx, src.URL)
		if err != nil {
			return nil, err
		}
		return []FetchResult{{Source: src, Name: redactURL(src.URL), Body: body}}, nil
	case src.Path != "":
		return readPath(src)
	default:
		return nil, errors.New("source has neither file nor url")
	}
}

func (f *Fetcher) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	appLog.Debug("ics fetch start", "url", redactURL(url))

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", redactURL(url), resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// readPath reads a file, or every regular file of a directory in name
// order. Unreadable directory entries are logged and skipped.
func readPath(src Source) ([]FetchResult, error) {
	info, err := os.Stat(src.Path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		body, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, err
		}
		return []FetchResult{{Source: src, Name: src.Path, Body: body}}, nil
	}

	entries, err := os.ReadDir(src.Path)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", src.Path, err)
	}
	out := make([]FetchResult, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := filepath.Join(src.Path, entry.Name())
		body, err := os.ReadFile(name)
		if err != nil {
			appLog.Error("ics read failed", err, "id", src.ID, "file", name)
			continue
		}
		out = append(out, FetchResult{Source: src, Name: name, Body: body})
	}
	return out, nil
}

// redactURL hides sensitive parts of an ICS URL for logging purposes.
func redactURL(u string) string {
	// Very simple redaction to avoid logging query strings / paths in full.
	// Example:
	//   https://example.com/path/to/private.ics?token=abcd
	// -> https://example.com/...(redacted)
	const redactedSuffix = "/...(redacted)"

	// Find scheme separator.
	i := -1
	for idx := 0; idx+2 < len(u); idx++ {
		if u[idx:idx+3] == "://" {
			i = idx + 3
			break
		}
	}
	if i == -1 {
		return "ics://...(redacted)"
	}

	// Find next slash after host.
	j := i
	for j < len(u) && u[j] != '/' {
		j++
	}

	host := u[:j]
	return host + redactedSuffix
}
