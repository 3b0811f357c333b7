package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
		ok   bool
	}{
		{"dollar sign", "$123.45", 123.45, true},
		{"dollar sign with space", "$ 99", 99, true},
		{"thousands separator", "$1,234.56", 1234.56, true},
		{"bare decimal", "Now 45.99 each", 45.99, true},
		{"usd prefix", "USD 250", 250, true},
		{"no price", "Call for pricing", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractPrice(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Errorf("extractPrice(%q) = %v, %v; want %v, %v", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSearchURLs(t *testing.T) {
	urls := SearchURLs("gate latch heavy duty")

	if len(urls) != 4 {
		t.Fatalf("got %d suppliers, want 4", len(urls))
	}
	hd, ok := urls["Home Depot"]
	if !ok {
		t.Fatal("missing Home Depot search URL")
	}
	if hd != "https://www.homedepot.com/s/gate+latch+heavy+duty" {
		t.Errorf("Home Depot URL = %q", hd)
	}
	if lowes := urls["Lowe's"]; !strings.Contains(lowes, "searchTerm=gate+latch+heavy+duty") {
		t.Errorf("Lowe's URL = %q", lowes)
	}
}

func TestGetPriceFromURL(t *testing.T) {
	page := `<html><body>
		<h1>Heavy Duty Gate Latch, Black</h1>
		<span class="product-price">$34.98</span>
	</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("User-Agent = %q, want a browser string", ua)
		}
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	c := NewSupplierClient()
	result, err := c.GetPriceFromURL(context.Background(), srv.URL+"/product/123")
	if err != nil {
		t.Fatalf("GetPriceFromURL() error = %v", err)
	}

	if result.Price != 34.98 {
		t.Errorf("Price = %v, want 34.98", result.Price)
	}
	if result.ProductName != "Heavy Duty Gate Latch, Black" {
		t.Errorf("ProductName = %q", result.ProductName)
	}
	if !result.InStock {
		t.Error("InStock = false, want true")
	}
	if result.LastChecked.IsZero() {
		t.Error("LastChecked not set")
	}
}

func TestGetPriceFromURLMetaTag(t *testing.T) {
	page := `<html><head>
		<meta property="product:price:amount" content="129.00">
	</head><body><h1>Wireless Keypad</h1></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	c := NewSupplierClient()
	result, err := c.GetPriceFromURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetPriceFromURL() error = %v", err)
	}
	if result.Price != 129 {
		t.Errorf("Price = %v, want 129", result.Price)
	}
}

func TestGetPriceFromURLNoPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><h1>Product</h1><p>Call for pricing</p></body></html>`)
	}))
	defer srv.Close()

	c := NewSupplierClient()
	_, err := c.GetPriceFromURL(context.Background(), srv.URL)
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("GetPriceFromURL() error = %v, want *LookupError", err)
	}
}

func TestGetPriceFromURLServesCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `<html><body><h1>Post</h1><span class="price">$18.50</span></body></html>`)
	}))
	defer srv.Close()

	c := NewSupplierClient()
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if _, err := c.GetPriceFromURL(context.Background(), srv.URL); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := c.GetPriceFromURL(context.Background(), srv.URL); err != nil {
		t.Fatalf("cached fetch: %v", err)
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (second lookup served from cache)", hits)
	}

	// Past the cache window the price is refetched.
	now = now.Add(2 * time.Hour)
	if _, err := c.GetPriceFromURL(context.Background(), srv.URL); err != nil {
		t.Fatalf("expired fetch: %v", err)
	}
	if hits != 2 {
		t.Errorf("server hits = %d, want 2 after cache expiry", hits)
	}
}

func TestComparePrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/a":
			fmt.Fprint(w, `<html><body><h1>A</h1><span class="price">$45.00</span></body></html>`)
		case "/b":
			fmt.Fprint(w, `<html><body><h1>B</h1><span class="price">$19.99</span></body></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewSupplierClient()
	results := c.ComparePrices(context.Background(), []string{
		srv.URL + "/a",
		srv.URL + "/b",
		srv.URL + "/missing",
	})

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (failed lookup dropped)", len(results))
	}
	if results[0].Price != 19.99 || results[1].Price != 45 {
		t.Errorf("results not sorted by price: %v, %v", results[0].Price, results[1].Price)
	}
}

func TestSupplierForURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.homedepot.com/p/gate-latch/12345", "Home Depot"},
		{"https://www.lowes.com/pd/latch/67890", "Lowe's"},
		{"https://www.tractorsupply.com/tsc/product/latch", "Tractor Supply"},
		{"https://www.walmart.com/ip/latch/555", "Walmart"},
		{"https://www.fencesupplyco.com/latch", "fencesupplyco.com"},
	}

	for _, tt := range tests {
		if got := supplierForURL(tt.url); got != tt.want {
			t.Errorf("supplierForURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
