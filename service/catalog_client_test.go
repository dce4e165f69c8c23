package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtg-labels/models"
)

func newTestClient(url string) *CatalogClient {
	return NewCatalogClient(CatalogClientOptions{
		CatalogURL: url,
		UserAgent:  "mtglabels-test",
		Timeout:    5 * time.Second,
		Logger:     discardLogger(),
	})
}

func TestCatalogClient_FetchAllSets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "mtglabels-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"object": "list",
			"has_more": false,
			"data": [
				{"code": "mh3", "name": "Modern Horizons 3", "set_type": "draft_innovation", "card_count": 303,
				 "released_at": "2024-06-14", "icon_svg_uri": "https://svgs.scryfall.io/sets/mh3.svg?1717992000"},
				{"code": "lea", "name": "Limited Edition Alpha", "set_type": "core", "card_count": 295,
				 "released_at": "1993-08-05", "icon_svg_uri": "https://svgs.scryfall.io/sets/lea.svg"},
				{"code": "tbd", "name": "Announced", "set_type": "expansion", "card_count": 0,
				 "icon_svg_uri": "https://svgs.scryfall.io/sets/default.svg"}
			]
		}`)
	}))
	defer server.Close()

	sets, err := newTestClient(server.URL).FetchAllSets(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 3)

	assert.Equal(t, "mh3", sets[0].Code)
	assert.Equal(t, "draft_innovation", sets[0].SetType)
	assert.Equal(t, 303, sets[0].CardCount)
	assert.Equal(t, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), sets[0].Released)
	assert.Equal(t, "https://svgs.scryfall.io/sets/mh3.svg?1717992000", sets[0].IconSVGURI)
	assert.True(t, sets[2].Released.IsZero())
}

func TestCatalogClient_FollowsNextPage(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"object":"list","has_more":false,"data":[{"code":"lea","name":"Alpha","set_type":"core","card_count":295,"released_at":"1993-08-05"}]}`)
			return
		}
		fmt.Fprintf(w, `{"object":"list","has_more":true,"next_page":%q,"data":[{"code":"mh3","name":"MH3","set_type":"draft_innovation","card_count":303,"released_at":"2024-06-14"}]}`,
			server.URL+"/sets?page=2")
	}))
	defer server.Close()

	sets, err := newTestClient(server.URL + "/sets").FetchAllSets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"mh3", "lea"}, codesOf(sets))
}

func TestCatalogClient_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"object":"error"}`},
		{name: "not found", status: http.StatusNotFound, body: `{"object":"error"}`},
		{name: "malformed json", status: http.StatusOK, body: `{"data": [`},
		{name: "missing data", status: http.StatusOK, body: `{"object":"list"}`},
		{name: "bad release date", status: http.StatusOK, body: `{"data":[{"code":"lea","released_at":"August 1993"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).FetchAllSets(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrUpstream)

			var upstream *models.UpstreamError
			require.ErrorAs(t, err, &upstream)
			if tt.status != http.StatusOK {
				assert.Equal(t, tt.status, upstream.StatusCode)
			}
		})
	}
}

func TestCatalogClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newTestClient(url).FetchAllSets(context.Background())
	assert.ErrorIs(t, err, models.ErrUpstream)
}

func TestCatalogClient_FetchIcon(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sets/lea.svg" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		fmt.Fprint(w, `<svg xmlns="http://www.w3.org/2000/svg"/>`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	data, err := client.FetchIcon(context.Background(), server.URL+"/sets/lea.svg?123")
	require.NoError(t, err)
	assert.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg"/>`, string(data))

	_, err = client.FetchIcon(context.Background(), server.URL+"/sets/missing.svg")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrDownload)

	var downloadErr *models.DownloadError
	require.ErrorAs(t, err, &downloadErr)
	assert.Equal(t, http.StatusNotFound, downloadErr.StatusCode)
}
