package rss

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/search"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Search results</title>
  <item>
    <title>Quantum chip breaks record</title>
    <link>https://example.com/quantum-chip</link>
    <pubDate>Sat, 01 Mar 2025 09:30:00 GMT</pubDate>
    <description>&lt;p&gt;A new &lt;b&gt;quantum&lt;/b&gt; chip &amp;amp; more&lt;/p&gt;</description>
  </item>
  <item>
    <title>Second story</title>
    <link>https://example.com/second</link>
  </item>
  <item>
    <title>Third story</title>
    <link>https://example.com/third</link>
  </item>
</channel>
</rss>`

func TestSearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/rss?q=%s", 5)
	resp, err := c.Search(context.Background(), &search.Request{Query: "Quantum Computing", PageSize: 2})
	require.NoError(t, err)

	assert.Equal(t, "Quantum Computing", gotQuery)
	require.Len(t, resp.Results, 2)

	first := resp.Results[0]
	assert.Equal(t, "Quantum chip breaks record", first.Title)
	assert.Equal(t, "https://example.com/quantum-chip", first.URL)
	assert.Equal(t, "2025-03-01T09:30:00Z", first.PublishedAt)
	assert.Equal(t, "2025-03-01", first.Date())
	assert.Equal(t, "A new quantum chip & more", first.TrailText)

	assert.Equal(t, "", resp.Results[1].PublishedAt)
	assert.Equal(t, "", resp.Results[1].TrailText)
}

func TestSearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 5).Search(context.Background(), &search.Request{Query: "x"})
	require.EqualError(t, err, "rss feed error (status 503)")
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", 0)
	assert.Equal(t, DefaultFeedURL, c.feedURL)
}
