// Package scrape fetches and parses league group pages from the nuLiga
// portal. The client handles transport and caching; the parsers turn the
// portal's HTML into the {groups: [{group, teams, matches}]} payload the
// import pipeline consumes.
package scrape

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
	Sleep     time.Duration
	CacheDir  string
	UseCache  bool
}

func NewClient(cacheDir string) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: 20 * time.Second},
		BaseURL:   "https://tvm-tennis.liga.nu/cgi-bin/WebObjects/nuLigaTENDE.woa/wa",
		UserAgent: "nuliga-league-sync/1.0",
		Sleep:     250 * time.Millisecond,
		CacheDir:  cacheDir,
		UseCache:  cacheDir != "",
	}
}

// FetchRaw downloads urlPath with the given query and writes the body to
// relPath under the cache dir. Returns raw bytes, from cache when fresh.
func (c *Client) FetchRaw(urlPath string, query url.Values, relPath string, force bool) ([]byte, error) {
	cachePath := filepath.Join(c.CacheDir, relPath)
	if !force && c.UseCache {
		if body, err := os.ReadFile(cachePath); err == nil {
			return body, nil
		}
	}

	if c.Sleep > 0 {
		time.Sleep(c.Sleep)
	}

	req, err := http.NewRequest("GET", c.BaseURL+urlPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s failed: %d", urlPath, resp.StatusCode)
	}

	if c.UseCache {
		if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(cachePath, body, 0o644); err != nil {
			return nil, err
		}
	}
	return body, nil
}

// FetchGroup downloads and parses one league group page.
func (c *Client) FetchGroup(championship, group string, force bool) (*Group, error) {
	q := url.Values{}
	q.Set("championship", championship)
	q.Set("group", group)
	body, err := c.FetchRaw("/groupPage", q,
		filepath.Join("groups", championship, group+".html"), force)
	if err != nil {
		return nil, err
	}
	return ParseGroupPage(bytes.NewReader(body))
}

// FetchGroups assembles the full scraped payload for a championship.
func (c *Client) FetchGroups(championship string, groups []string, force bool) (*Payload, error) {
	p := &Payload{}
	for _, g := range groups {
		parsed, err := c.FetchGroup(championship, g, force)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", g, err)
		}
		p.Groups = append(p.Groups, *parsed)
	}
	return p, nil
}
