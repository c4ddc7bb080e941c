package poller

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/jpalmerr/eoltracker/eol"
)

// DefaultBaseURL is the endoflife.date v1 API root used in slug mode.
const DefaultBaseURL = "https://endoflife.date/api/v1"

// Fetcher retrieves one complete [eol.Snapshot] for an identifier.
//
// Implementations return an *eol.FetchError on failure and must not retry;
// retry is the [Coordinator]'s periodic schedule.
type Fetcher interface {
	Fetch(ctx context.Context, identifier string) (eol.Snapshot, error)
}

// URIFetcher treats the identifier as the full release resource URI and
// derives the product resource with [eol.ProductURI].
type URIFetcher struct {
	client *Client
	now    func() time.Time
}

// NewURIFetcher creates a [URIFetcher] using client.
func NewURIFetcher(client *Client) *URIFetcher {
	return &URIFetcher{client: client, now: time.Now}
}

// Fetch performs the release GET followed by the product GET. Both must
// return 200 with a JSON object body; otherwise no snapshot is produced.
func (f *URIFetcher) Fetch(ctx context.Context, identifier string) (eol.Snapshot, error) {
	releaseURI := strings.TrimSpace(identifier)

	productURI, err := eol.ProductURI(releaseURI)
	if err != nil {
		return eol.Snapshot{}, &eol.FetchError{Kind: eol.KindInvalidIdentifier, Err: err}
	}

	body, err := f.get(ctx, releaseURI)
	if err != nil {
		return eol.Snapshot{}, err
	}
	release, err := eol.DecodeRelease(body)
	if err != nil {
		return eol.Snapshot{}, &eol.FetchError{Kind: eol.KindMalformed, URL: releaseURI, Err: err}
	}

	body, err = f.get(ctx, productURI)
	if err != nil {
		return eol.Snapshot{}, err
	}
	product, err := eol.DecodeProduct(body)
	if err != nil {
		return eol.Snapshot{}, &eol.FetchError{Kind: eol.KindMalformed, URL: productURI, Err: err}
	}

	return eol.Snapshot{
		Release:   release,
		Product:   product,
		FetchedAt: f.now(),
	}, nil
}

// get returns the body of a 200 response or a typed fetch error.
func (f *URIFetcher) get(ctx context.Context, uri string) ([]byte, error) {
	resp := f.client.Get(ctx, uri)
	if resp.Error != nil {
		return nil, &eol.FetchError{Kind: eol.KindNetwork, URL: uri, Err: resp.Error}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &eol.FetchError{Kind: eol.KindBadStatus, URL: uri, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

// SlugFetcher treats the identifier as "product" or "product/release" and
// expands it against a base URL before delegating to a [URIFetcher].
type SlugFetcher struct {
	baseURL string
	uri     *URIFetcher
}

// NewSlugFetcher creates a [SlugFetcher]. An empty baseURL means
// [DefaultBaseURL].
func NewSlugFetcher(client *Client, baseURL string) *SlugFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &SlugFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		uri:     NewURIFetcher(client),
	}
}

// Fetch expands the slug and fetches it.
func (f *SlugFetcher) Fetch(ctx context.Context, identifier string) (eol.Snapshot, error) {
	releaseURI, err := ReleaseURI(f.baseURL, identifier)
	if err != nil {
		return eol.Snapshot{}, &eol.FetchError{Kind: eol.KindInvalidIdentifier, Err: err}
	}
	return f.uri.Fetch(ctx, releaseURI)
}

// ReleaseURI expands "product" or "product/release" into the release
// resource under baseURL. The release defaults to "latest".
func ReleaseURI(baseURL, slug string) (string, error) {
	parts := strings.Split(strings.Trim(strings.TrimSpace(slug), "/"), "/")
	if len(parts) > 2 || slices.Contains(parts, "") {
		return "", fmt.Errorf("slug %q must be \"product\" or \"product/release\"", slug)
	}

	release := "latest"
	if len(parts) == 2 {
		release = parts[1]
	}

	return fmt.Sprintf("%s/products/%s/releases/%s",
		strings.TrimRight(baseURL, "/"),
		url.PathEscape(strings.ToLower(parts[0])),
		url.PathEscape(release),
	), nil
}
