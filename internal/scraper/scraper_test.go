package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ogPage = `<!doctype html><html><head>
<title>Fallback title</title>
<meta property="og:title" content="Glow Serum 50ml">
<meta property="og:image" content="/img/serum.jpg">
<meta property="product:price:amount" content="29,900">
<meta property="product:price:currency" content="KRW">
</head><body></body></html>`

const ldPage = `<html><head>
<script type="application/ld+json">{"@context":"https://schema.org","@graph":[
  {"@type":"WebPage","name":"Shop"},
  {"@type":["Product","Thing"],"name":"Lip Tint","image":["https://cdn.example.com/tint.png"],
   "offers":[{"@type":"Offer","price":"12.5","priceCurrency":"USD"}]}
]}</script>
</head><body><h1>x</h1></body></html>`

func TestParse_OpenGraph(t *testing.T) {
	base, _ := url.Parse("https://shop.example.com/p/1")
	p, err := Parse(strings.NewReader(ogPage), base)
	require.NoError(t, err)

	assert.Equal(t, "Glow Serum 50ml", p.Title)
	assert.Equal(t, "https://shop.example.com/img/serum.jpg", p.ImageURL)
	require.NotNil(t, p.Price)
	assert.Equal(t, 29900.0, *p.Price)
	assert.Equal(t, "KRW", p.Currency)
}

func TestParse_JSONLDGraph(t *testing.T) {
	p, err := Parse(strings.NewReader(ldPage), nil)
	require.NoError(t, err)

	assert.Equal(t, "Lip Tint", p.Title)
	assert.Equal(t, "https://cdn.example.com/tint.png", p.ImageURL)
	require.NotNil(t, p.Price)
	assert.Equal(t, 12.5, *p.Price)
	assert.Equal(t, "USD", p.Currency)
}

func TestParse_TitleOnlyAndEmpty(t *testing.T) {
	p, err := Parse(strings.NewReader(`<html><head><title> Plain </title></head></html>`), nil)
	require.NoError(t, err)
	assert.Equal(t, "Plain", p.Title)
	assert.Nil(t, p.Price)

	_, err = Parse(strings.NewReader(`<html><body>nothing</body></html>`), nil)
	assert.ErrorIs(t, err, ErrNoMetadata)
}

func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(ogPage))
	}))
	defer srv.Close()

	f := New(Options{Timeout: time.Second, UserAgent: "TestBot/1.0"})

	p, err := f.Fetch(context.Background(), srv.URL+"/item")
	require.NoError(t, err)
	assert.Equal(t, "TestBot/1.0", gotUA)
	assert.Equal(t, srv.URL+"/item", p.URL)
	assert.Equal(t, srv.URL+"/img/serum.jpg", p.ImageURL)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestFetch_RejectsNonHTTP(t *testing.T) {
	f := New(Options{})
	for _, raw := range []string{"", "ftp://example.com/x", "/relative", "javascript:alert(1)"} {
		_, err := f.Fetch(context.Background(), raw)
		assert.ErrorIs(t, err, ErrInvalidURL, raw)
	}
}
