package transcript

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/domain"
)

const defaultBaseURL = "https://video.google.com/timedtext"

var videoIDRe = regexp.MustCompile(`v=([^&]+)`)

// VideoID extracts the value of the v= query parameter from a watch URL.
func VideoID(rawURL string) (string, error) {
	m := videoIDRe.FindStringSubmatch(rawURL)
	if m == nil {
		return "", fmt.Errorf("%w: no video id in url %q", domain.ErrInvalidInput, rawURL)
	}
	return m[1], nil
}

// Client fetches captions from the YouTube timedtext endpoint.
type Client struct {
	baseURL string
	client  *http.Client
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: base,
		client:  &http.Client{Timeout: timeout},
	}
}

type trackList struct {
	Tracks []struct {
		LangCode string `xml:"lang_code,attr"`
	} `xml:"track"`
}

type captionDoc struct {
	Texts []struct {
		Body string `xml:",chardata"`
	} `xml:"text"`
}

// ListLanguages returns the caption language codes available for a video.
// A video without captions yields an empty slice, not an error.
func (c *Client) ListLanguages(ctx context.Context, videoID string) ([]string, error) {
	q := url.Values{"type": {"list"}, "v": {videoID}}
	var list trackList
	if err := c.getXML(ctx, q, &list); err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(list.Tracks))
	for _, t := range list.Tracks {
		codes = append(codes, t.LangCode)
	}
	return codes, nil
}

// Fetch downloads caption snippets in source order, trying the preferred
// languages in turn and returning the first non-empty track.
func (c *Client) Fetch(ctx context.Context, videoID string, languages []string) ([]domain.Snippet, error) {
	for _, lang := range languages {
		q := url.Values{"v": {videoID}, "lang": {lang}}
		var doc captionDoc
		if err := c.getXML(ctx, q, &doc); err != nil {
			return nil, err
		}
		if len(doc.Texts) == 0 {
			continue
		}
		snippets := make([]domain.Snippet, 0, len(doc.Texts))
		for _, t := range doc.Texts {
			snippets = append(snippets, domain.Snippet{Text: strings.TrimSpace(t.Body)})
		}
		return snippets, nil
	}
	return nil, nil
}

func (c *Client) getXML(ctx context.Context, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: transcript fetch: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: transcript fetch: %s", domain.ErrUpstream, resp.Status)
	}
	// Videos without captions answer with an empty body; that is the
	// no-transcript case, not a service failure.
	if err := xml.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: transcript decode: %v", domain.ErrUpstream, err)
	}
	return nil
}

// Join concatenates snippets into one transcript string with a leading
// space before each snippet.
func Join(snippets []domain.Snippet) string {
	var b strings.Builder
	for _, s := range snippets {
		b.WriteString(" ")
		b.WriteString(s.Text)
	}
	return b.String()
}
