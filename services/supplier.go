package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"
)

// PriceResult is one supplier price lookup outcome.
type PriceResult struct {
	Supplier    string    `json:"supplier"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`
	URL         string    `json:"url"`
	InStock     bool      `json:"in_stock"`
	LastChecked time.Time `json:"last_checked"`
}

// supplierInfo describes one supported supplier.
type supplierInfo struct {
	Name      string
	SearchURL string // %s receives the +-joined query
	Host      string
}

var suppliers = map[string]supplierInfo{
	"homedepot": {
		Name:      "Home Depot",
		SearchURL: "https://www.homedepot.com/s/%s",
		Host:      "homedepot.com",
	},
	"lowes": {
		Name:      "Lowe's",
		SearchURL: "https://www.lowes.com/search?searchTerm=%s",
		Host:      "lowes.com",
	},
	"tractorsupply": {
		Name:      "Tractor Supply",
		SearchURL: "https://www.tractorsupply.com/tsc/search/%s",
		Host:      "tractorsupply.com",
	},
	"walmart": {
		Name:      "Walmart",
		SearchURL: "https://www.walmart.com/search?q=%s",
		Host:      "walmart.com",
	},
}

// LookupError reports a failed supplier price fetch.
type LookupError struct {
	URL string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("price lookup %s: %v", e.URL, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// SupplierClient fetches and caches supplier prices. Safe for concurrent
// use; results are cached per URL for cacheDuration.
type SupplierClient struct {
	http *http.Client

	mu    sync.Mutex
	cache map[string]PriceResult

	cacheDuration time.Duration
	now           func() time.Time
}

// NewSupplierClient returns a client with a 10s request timeout and a 1h
// price cache.
func NewSupplierClient() *SupplierClient {
	return &SupplierClient{
		http:          &http.Client{Timeout: 10 * time.Second},
		cache:         map[string]PriceResult{},
		cacheDuration: time.Hour,
		now:           time.Now,
	}
}

// Retail sites block the default Go user agent.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
}

// GetPriceFromURL fetches the current price from a product page. Cached
// results are served until they age out.
func (c *SupplierClient) GetPriceFromURL(ctx context.Context, pageURL string) (PriceResult, error) {
	c.mu.Lock()
	cached, ok := c.cache[pageURL]
	c.mu.Unlock()
	if ok && c.now().Sub(cached.LastChecked) < c.cacheDuration {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return PriceResult{}, &LookupError{URL: pageURL, Err: err}
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return PriceResult{}, &LookupError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return PriceResult{}, &LookupError{URL: pageURL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return PriceResult{}, &LookupError{URL: pageURL, Err: fmt.Errorf("parse page: %w", err)}
	}

	result, err := parseProductPage(doc, pageURL)
	if err != nil {
		return PriceResult{}, err
	}
	result.LastChecked = c.now()

	c.mu.Lock()
	c.cache[pageURL] = result
	c.mu.Unlock()

	return result, nil
}

// ComparePrices fetches several product URLs concurrently and returns the
// successful results sorted by price. Individual failures are dropped.
func (c *SupplierClient) ComparePrices(ctx context.Context, urls []string) []PriceResult {
	var (
		mu      sync.Mutex
		results []PriceResult
		wg      sync.WaitGroup
	)
	for _, u := range urls {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			r, err := c.GetPriceFromURL(ctx, u)
			if err != nil {
				return
			}
			mu.Lock()
			results = append(results, r)
			mu.Unlock()
		}(u)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Price < results[j].Price })
	return results
}

// ClearCache drops all cached prices.
func (c *SupplierClient) ClearCache() {
	c.mu.Lock()
	c.cache = map[string]PriceResult{}
	c.mu.Unlock()
}

// SearchURLs returns the per-supplier search page URL for a product name,
// keyed by supplier display name. Search pages need a browser to render, so
// these are for manual lookup rather than scraping.
func SearchURLs(productName string) map[string]string {
	query := strings.ReplaceAll(productName, " ", "+")
	out := make(map[string]string, len(suppliers))
	for _, info := range suppliers {
		out[info.Name] = fmt.Sprintf(info.SearchURL, query)
	}
	return out
}

// supplierForURL returns the display name for a product URL, falling back
// to the page's host.
func supplierForURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "unknown"
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	for _, info := range suppliers {
		if strings.HasSuffix(host, info.Host) {
			return info.Name
		}
	}
	return host
}

// parseProductPage extracts the price and product title from a product page.
func parseProductPage(doc *html.Node, pageURL string) (PriceResult, error) {
	price, ok := findPrice(doc)
	if !ok {
		return PriceResult{}, &LookupError{URL: pageURL, Err: fmt.Errorf("no price found on page")}
	}

	title := findTitle(doc)
	if title == "" {
		title = "Product"
	}
	if len(title) > 100 {
		title = title[:100]
	}

	return PriceResult{
		Supplier:    supplierForURL(pageURL),
		ProductName: title,
		Price:       price,
		URL:         pageURL,
		InStock:     true,
	}, nil
}

// findPrice walks the document looking for the usual price markers: an
// element with "price" in its class, itemprop="price", or the
// product:price:amount meta tag.
func findPrice(doc *html.Node) (float64, bool) {
	var price float64
	var found bool

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "span", "div":
				if attrContains(n, "class", "price") || attrEquals(n, "itemprop", "price") {
					if p, ok := extractPrice(nodeText(n)); ok {
						price, found = p, true
						return
					}
				}
			case "meta":
				if attrEquals(n, "property", "product:price:amount") {
					if p, ok := extractPrice(attrValue(n, "content")); ok {
						price, found = p, true
						return
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return price, found
}

// findTitle returns the text of the first h1 on the page.
func findTitle(doc *html.Node) string {
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "h1" {
			title = strings.TrimSpace(nodeText(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func attrEquals(n *html.Node, key, want string) bool {
	return strings.EqualFold(attrValue(n, key), want)
}

func attrContains(n *html.Node, key, want string) bool {
	return strings.Contains(strings.ToLower(attrValue(n, key)), want)
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\s*(\d+\.?\d*)`),
	regexp.MustCompile(`(\d+\.\d{2})`),
	regexp.MustCompile(`USD\s*(\d+\.?\d*)`),
}

// extractPrice pulls a numeric price out of arbitrary text,
// e.g. "$1,234.56" -> 1234.56.
func extractPrice(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	text = strings.ReplaceAll(text, ",", "")
	for _, re := range pricePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				return v, true
			}
		}
	}
	return 0, false
}
