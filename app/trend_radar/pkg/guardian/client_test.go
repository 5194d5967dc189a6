package guardian

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/search"
)

const payload = `{
  "response": {
    "status": "ok",
    "total": 2,
    "results": [
      {
        "webTitle": "Quantum chip breaks record",
        "webPublicationDate": "2025-03-14T09:30:00Z",
        "webUrl": "https://www.theguardian.com/science/quantum-chip",
        "fields": {"headline": "Quantum chip breaks record", "trailText": "A new processor holds qubits longer"}
      },
      {
        "webTitle": "Untitled brief"
      }
    ]
  }
}`

func TestSearch(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5)
	resp, err := client.Search(context.Background(), &search.Request{Query: "Quantum Computing"})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/search", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "Quantum Computing", q.Get("q"))
	assert.Equal(t, "test-key", q.Get("api-key"))
	assert.Equal(t, "headline,trailText,webPublicationDate", q.Get("show-fields"))
	assert.Equal(t, "10", q.Get("page-size"))

	require.Len(t, resp.Results, 2)
	assert.Equal(t, model.Article{
		Title:       "Quantum chip breaks record",
		PublishedAt: "2025-03-14T09:30:00Z",
		TrailText:   "A new processor holds qubits longer",
		URL:         "https://www.theguardian.com/science/quantum-chip",
	}, resp.Results[0])
	assert.Equal(t, "2025-03-14", resp.Results[0].Date())

	// 缺失字段默认为空字符串
	assert.Equal(t, model.Article{Title: "Untitled brief"}, resp.Results[1])
}

func TestSearchPageSize(t *testing.T) {
	var pageSize string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageSize = r.URL.Query().Get("page-size")
		w.Write([]byte(`{"response":{"results":[]}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "k", 0)
	resp, err := client.Search(context.Background(), &search.Request{Query: "AI", PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, "3", pageSize)
	assert.Empty(t, resp.Results)
}

func TestSearchMissingEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, "k", 0).Search(context.Background(), &search.Request{Query: "AI"})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestSearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, "bad-key", 0).Search(context.Background(), &search.Request{Query: "AI"})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "status 401")
}

func TestSearchTransportErrorRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewClient(srv.URL, "secret-key", 1).Search(context.Background(), &search.Request{Query: "AI"})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-key")
}
