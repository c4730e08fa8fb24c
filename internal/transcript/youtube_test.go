package transcript

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/domain"
)

func TestVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"plain watch url", "https://youtube.com/watch?v=abc123", "abc123", false},
		{"id followed by params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", false},
		{"id after other params", "https://youtube.com/watch?list=PL1&v=xyz", "xyz", false},
		{"no id", "https://youtube.com/watch?list=PL1", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VideoID(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func captionServer(t *testing.T, listBody, trackBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("type") == "list" {
			_, _ = w.Write([]byte(listBody))
			return
		}
		_, _ = w.Write([]byte(trackBody))
	}))
}

func TestListLanguages(t *testing.T) {
	srv := captionServer(t,
		`<transcript_list><track lang_code="en"/><track lang_code="pt"/></transcript_list>`,
		``)
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	langs, err := c.ListLanguages(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "pt"}, langs)
}

func TestListLanguagesNoneAvailable(t *testing.T) {
	srv := captionServer(t, ``, ``)
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	langs, err := c.ListLanguages(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Empty(t, langs)
}

func TestFetch(t *testing.T) {
	srv := captionServer(t, ``,
		`<transcript><text start="0" dur="1.5">the quick</text><text start="1.5" dur="2">brown fox</text></transcript>`)
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	snippets, err := c.Fetch(context.Background(), "abc123", []string{"en"})
	require.NoError(t, err)
	require.Len(t, snippets, 2)
	assert.Equal(t, "the quick", snippets[0].Text)
	assert.Equal(t, "brown fox", snippets[1].Text)

	assert.Equal(t, " the quick brown fox", Join(snippets))
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Fetch(context.Background(), "abc123", []string{"en"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
