package scraper

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// pageMeta - сырые значения до выбора по приоритету
type pageMeta struct {
	meta   map[string]string
	title  string
	ldJSON []string
}

// Parse разбирает HTML. Приоритет: og/product meta, затем JSON-LD Product, затем <title>.
func Parse(r io.Reader, base *url.URL) (*Product, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse product page: %w", err)
	}

	pm := &pageMeta{meta: make(map[string]string)}
	pm.walk(doc)
	ld := findLDProduct(pm.ldJSON)

	p := &Product{
		Title:    firstNonEmpty(pm.meta["og:title"], pm.meta["twitter:title"], ld.Get("name").String(), pm.title),
		ImageURL: firstNonEmpty(pm.meta["og:image:secure_url"], pm.meta["og:image"], pm.meta["twitter:image"], ldImage(ld)),
		Currency: firstNonEmpty(
			pm.meta["product:price:currency"], pm.meta["og:price:currency"],
			ld.Get("offers.priceCurrency").String(), ld.Get("offers.0.priceCurrency").String(),
		),
	}
	p.Price = parsePrice(firstNonEmpty(
		pm.meta["product:price:amount"], pm.meta["og:price:amount"],
		ld.Get("offers.price").String(), ld.Get("offers.0.price").String(), ld.Get("offers.lowPrice").String(),
	))
	p.ImageURL = resolve(base, p.ImageURL)

	if p.Title == "" && p.ImageURL == "" {
		return nil, ErrNoMetadata
	}
	return p, nil
}

func (pm *pageMeta) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Meta:
			key := strings.ToLower(firstNonEmpty(attr(n, "property"), attr(n, "name"), attr(n, "itemprop")))
			if key != "" {
				if _, seen := pm.meta[key]; !seen {
					pm.meta[key] = strings.TrimSpace(attr(n, "content"))
				}
			}
		case atom.Title:
			if pm.title == "" && n.FirstChild != nil {
				pm.title = strings.TrimSpace(n.FirstChild.Data)
			}
		case atom.Script:
			if strings.EqualFold(attr(n, "type"), "application/ld+json") && n.FirstChild != nil {
				pm.ldJSON = append(pm.ldJSON, n.FirstChild.Data)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		pm.walk(c)
	}
}

// findLDProduct ищет объект с @type Product: на верхнем уровне, в массиве или в @graph
func findLDProduct(blocks []string) gjson.Result {
	for _, raw := range blocks {
		if !gjson.Valid(raw) {
			continue
		}
		root := gjson.Parse(raw)
		candidates := []gjson.Result{root}
		if root.IsArray() {
			candidates = root.Array()
		}
		if graph := root.Get("@graph"); graph.IsArray() {
			candidates = append(candidates, graph.Array()...)
		}
		for _, c := range candidates {
			if isProduct(c.Get("@type")) {
				return c
			}
		}
	}
	return gjson.Result{}
}

func isProduct(t gjson.Result) bool {
	if t.IsArray() {
		for _, v := range t.Array() {
			if v.String() == "Product" {
				return true
			}
		}
		return false
	}
	return t.String() == "Product"
}

func ldImage(ld gjson.Result) string {
	img := ld.Get("image")
	switch {
	case img.IsArray():
		return img.Get("0").String()
	case img.IsObject():
		return img.Get("url").String()
	}
	return img.String()
}

func parsePrice(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func resolve(base *url.URL, ref string) string {
	if ref == "" || base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
