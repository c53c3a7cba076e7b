package hiscore

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchWiki(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api.php", r.URL.Path)
		assert.Equal(t, "opensearch", r.URL.Query().Get("action"))
		switch r.URL.Query().Get("search") {
		case "abyssal whip":
			fmt.Fprint(w, `["abyssal whip",["Abyssal whip","Abyssal whip (or)"],["",""],["https://oldschool.runescape.wiki/w/Abyssal_whip","https://oldschool.runescape.wiki/w/Abyssal_whip_(or)"]]`)
		default:
			fmt.Fprint(w, `["zzz",[],[],[]]`)
		}
	}))
	defer srv.Close()
	c := newTestClient(srv)

	res, err := c.SearchWiki(context.Background(), "abyssal whip")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, "Abyssal whip", res.Title)
	assert.Equal(t, "https://oldschool.runescape.wiki/w/Abyssal_whip", res.URL)

	miss, err := c.SearchWiki(context.Background(), "zzz")
	require.NoError(t, err)
	assert.False(t, miss.Found)
	assert.Equal(t, "zzz", miss.Term)
}

func TestEntityInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("titles") {
		case "Zulrah":
			fmt.Fprint(w, `{"batchcomplete":"","query":{"pages":{"1234":{"pageid":1234,"ns":0,"title":"Zulrah","extract":"Zulrah is a boss.\n"}}}}`)
		case "Bare Page":
			fmt.Fprint(w, `{"query":{"pages":{"99":{"pageid":99,"ns":0,"title":"Bare Page"}}}}`)
		default:
			fmt.Fprint(w, `{"query":{"pages":{"-1":{"ns":0,"title":"Nope","missing":""}}}}`)
		}
	}))
	defer srv.Close()
	c := newTestClient(srv)

	info, err := c.EntityInfo(context.Background(), "Zulrah")
	require.NoError(t, err)
	assert.True(t, info.Found)
	assert.Equal(t, "Zulrah is a boss.", info.Description)
	assert.Equal(t, srv.URL+"/w/Zulrah", info.URL)

	bare, err := c.EntityInfo(context.Background(), "Bare Page")
	require.NoError(t, err)
	assert.True(t, bare.Found)
	assert.Equal(t, noDescription, bare.Description)
	assert.Equal(t, srv.URL+"/w/Bare_Page", bare.URL)

	missing, err := c.EntityInfo(context.Background(), "Nope")
	require.NoError(t, err)
	assert.False(t, missing.Found)
	assert.Equal(t, noDescription, missing.Description)
}

func TestWikiURL(t *testing.T) {
	c := NewClient(Config{})
	assert.Equal(t, "https://oldschool.runescape.wiki/w/Dragon_Slayer_II", c.WikiURL("Dragon Slayer II"))
}
