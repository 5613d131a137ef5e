// Package news fetches recent financial headlines for held instruments,
// used as optional enrichment context for portfolio analysis. Everything in
// here degrades to "no headlines" on failure.
package news

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/ak18akashrajr/portfolio-llm/internal/api"
	"github.com/ak18akashrajr/portfolio-llm/internal/logger"
)

// Headline is one scraped article reference.
type Headline struct {
	Title  string
	URL    string
	Source string
}

// Source defines a news listing page and the selectors to lift articles out
// of it.
type Source struct {
	Name       string
	BaseURL    string
	SearchPath string // {symbol} is replaced with the instrument symbol
	Container  string
	Title      string
	Link       string
	RateLimit  time.Duration
}

// Fetcher scrapes headlines from the configured sources.
type Fetcher struct {
	sources []Source
	timeout time.Duration
	client  *api.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		sources: defaultSources(),
		timeout: timeout,
		client:  api.NewClient(api.WithTimeout(timeout)),
	}
}

func defaultSources() []Source {
	return []Source{
		{
			Name:       "MoneyControl",
			BaseURL:    "https://www.moneycontrol.com",
			SearchPath: "/news/tags/{symbol}.html",
			Container:  "li.clearfix",
			Title:      "h2 a, h3 a",
			Link:       "h2 a, h3 a",
			RateLimit:  2 * time.Second,
		},
		{
			Name:       "EconomicTimes",
			BaseURL:    "https://economictimes.indiatimes.com",
			SearchPath: "/topic/{symbol}",
			Container:  "div.story-box",
			Title:      "a",
			Link:       "a",
			RateLimit:  2 * time.Second,
		},
	}
}

// Fetch collects up to max headlines for a symbol across all sources.
// Per-source failures are logged and skipped.
func (f *Fetcher) Fetch(ctx context.Context, symbol string, max int) []Headline {
	if max <= 0 {
		return nil
	}

	var out []Headline
	for _, src := range f.sources {
		if len(out) >= max {
			break
		}
		hs, err := f.fetchSource(ctx, src, symbol, max-len(out))
		if err != nil {
			logger.Degraded(ctx, "news", "skip-source", "source", src.Name, "symbol", symbol, "error", err)
			continue
		}
		out = append(out, hs...)
		time.Sleep(src.RateLimit)
	}

	logger.Debug(ctx, "Headline fetch completed", "symbol", symbol, "headlines", len(out))
	return out
}

func (f *Fetcher) fetchSource(ctx context.Context, src Source, symbol string, max int) ([]Headline, error) {
	var headlines []Headline

	c := colly.NewCollector(
		colly.AllowedDomains(hostOf(src.BaseURL)),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(f.timeout)

	c.OnRequest(func(r *colly.Request) {
		for k, v := range api.BrowserHeaders() {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML(src.Container, func(e *colly.HTMLElement) {
		if len(headlines) >= max {
			return
		}
		title := strings.TrimSpace(e.ChildText(src.Title))
		link := e.ChildAttr(src.Link, "href")
		if title == "" || link == "" {
			return
		}
		if strings.HasPrefix(link, "/") {
			link = src.BaseURL + link
		}
		headlines = append(headlines, Headline{Title: title, URL: link, Source: src.Name})
	})

	target := src.BaseURL + strings.ReplaceAll(src.SearchPath, "{symbol}", strings.ToLower(symbol))
	if err := c.Visit(target); err != nil {
		return nil, err
	}
	return headlines, nil
}

// Summarize pulls the leading paragraphs out of an article page. Best
// effort; an empty string means the page gave nothing usable.
func (f *Fetcher) Summarize(ctx context.Context, articleURL string) (string, error) {
	resp, err := f.client.GET(ctx, articleURL, api.BrowserHeaders())
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return "", err
	}

	var paras []string
	doc.Find("article p, div.content p, p").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if len(text) > 80 {
			paras = append(paras, text)
		}
		return len(paras) < 3
	})

	return strings.Join(paras, "\n"), nil
}

func hostOf(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return u.Host
}

// Render formats headlines as a compact context block for prompts.
func Render(headlines []Headline) string {
	if len(headlines) == 0 {
		return ""
	}
	var b strings.Builder
	for _, h := range headlines {
		b.WriteString("- [")
		b.WriteString(h.Source)
		b.WriteString("] ")
		b.WriteString(h.Title)
		b.WriteString("\n")
	}
	return b.String()
}
