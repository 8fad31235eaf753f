// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gists

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnkrsec/gist-hunter/pkg/types"
)

func TestNextPageURL(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			"next and last",
			`<https://api.github.com/gists/public?page=2>; rel="next", <https://api.github.com/gists/public?page=100>; rel="last"`,
			"https://api.github.com/gists/public?page=2",
		},
		{
			"prev only",
			`<https://api.github.com/gists/public?page=1>; rel="prev"`,
			"",
		},
		{"empty header", "", ""},
		{"malformed", "not a link header", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextPageURL(tt.header); got != tt.want {
				t.Errorf("nextPageURL(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

// pagedServer serves three one-gist pages linked by Link headers.
func pagedServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	requests := 0
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	mux.HandleFunc("/gists/public", func(w http.ResponseWriter, r *http.Request) {
		requests++
		page := r.URL.Query().Get("page")
		switch page {
		case "", "1":
			w.Header().Set("Link", fmt.Sprintf(`<%s/gists/public?page=2>; rel="next"`, ts.URL))
			fmt.Fprint(w, `[{"id":"g1","html_url":"https://gist.github.com/g1","description":"first","files":{"a.txt":{"filename":"a.txt","size":12}}}]`)
		case "2":
			w.Header().Set("Link", fmt.Sprintf(`<%s/gists/public?page=3>; rel="next"`, ts.URL))
			fmt.Fprint(w, `[{"id":"g2","html_url":"https://gist.github.com/g2","description":null,"files":{}}]`)
		default:
			fmt.Fprint(w, `[{"id":"g3","html_url":"https://gist.github.com/g3","description":"last","files":{"b.py":{"filename":"b.py","size":5}}}]`)
		}
	})
	return ts, &requests
}

func TestWalkFollowsCursorUntilExhaustion(t *testing.T) {
	ts, requests := pagedServer(t)
	defer ts.Close()

	orig := publicGistsURL
	publicGistsURL = ts.URL + "/gists/public"
	defer func() { publicGistsURL = orig }()

	c := &Client{HTTPClient: ts.Client(), Token: "ghp_test"}

	var seen []string
	pages, err := c.Walk(context.Background(), 10, 0, func(g types.Gist) error {
		seen = append(seen, g.ID)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 3, pages)
	assert.Equal(t, 3, *requests)
	assert.Equal(t, []string{"g1", "g2", "g3"}, seen)
}

func TestWalkHonorsMaxRequests(t *testing.T) {
	ts, requests := pagedServer(t)
	defer ts.Close()

	orig := publicGistsURL
	publicGistsURL = ts.URL + "/gists/public"
	defer func() { publicGistsURL = orig }()

	c := &Client{HTTPClient: ts.Client(), Token: "ghp_test"}
	pages, err := c.Walk(context.Background(), 2, 0, func(types.Gist) error { return nil })
	require.NoError(t, err)

	assert.Equal(t, 2, pages)
	assert.Equal(t, 2, *requests)
}

func TestWalkStopsOnUpstreamError(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Link", `<`+publicGistsURL+`?page=2>; rel="next"`)
			fmt.Fprint(w, `[{"id":"g1","html_url":"u1","files":{"a":{"filename":"a","size":1}}}]`)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	orig := publicGistsURL
	publicGistsURL = ts.URL
	defer func() { publicGistsURL = orig }()

	c := &Client{HTTPClient: ts.Client(), Token: "ghp_test"}
	pages, err := c.Walk(context.Background(), 5, 0, func(types.Gist) error { return nil })

	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUpstreamError))
	assert.Equal(t, 1, pages)
}

func TestWalkPropagatesVisitError(t *testing.T) {
	ts, _ := pagedServer(t)
	defer ts.Close()

	orig := publicGistsURL
	publicGistsURL = ts.URL + "/gists/public"
	defer func() { publicGistsURL = orig }()

	boom := errors.New("ledger write failed")
	c := &Client{HTTPClient: ts.Client(), Token: "ghp_test"}
	_, err := c.Walk(context.Background(), 10, 0, func(types.Gist) error { return boom })
	assert.True(t, errors.Is(err, boom))
}

func TestFetchPageSendsAuth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token ghp_test", r.Header.Get("Authorization"))
		fmt.Fprint(w, `[]`)
	}))
	defer ts.Close()

	c := &Client{HTTPClient: ts.Client(), Token: "ghp_test"}
	page, next, err := c.FetchPage(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Empty(t, next)
}
