package hiscore

import (
	"context"
	"strings"

	"github.com/tidwall/gjson"
)

const noDescription = "No description available"

type WikiSearchResult struct {
	Term  string `json:"term"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Found bool   `json:"found"`
}

type EntityInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Found       bool   `json:"found"`
}

// WikiURL returns the page URL for name.
func (c *Client) WikiURL(name string) string {
	return c.config.WikiURL + "/w/" + strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// SearchWiki runs an opensearch query and returns the best hit.
func (c *Client) SearchWiki(ctx context.Context, term string) (WikiSearchResult, error) {
	res := WikiSearchResult{Term: term}
	u := c.config.WikiURL + "/api.php?action=opensearch&search=" + escape(term) +
		"&limit=5&namespace=0&format=json"

	body, err := c.getWithRetry(ctx, u)
	if err != nil {
		return res, err
	}

	// [term, [titles...], [descriptions...], [urls...]]
	title := gjson.GetBytes(body, "1.0")
	if !title.Exists() || title.String() == "" {
		return res, nil
	}
	res.Title = title.String()
	res.URL = gjson.GetBytes(body, "3.0").String()
	if res.URL == "" {
		res.URL = c.WikiURL(res.Title)
	}
	res.Found = true
	return res, nil
}

// EntityInfo fetches the intro extract of a wiki page.
func (c *Client) EntityInfo(ctx context.Context, name string) (EntityInfo, error) {
	info := EntityInfo{Name: name, Description: noDescription}
	u := c.config.WikiURL + "/api.php?action=query&prop=extracts&exintro&explaintext&titles=" +
		escape(name) + "&format=json"

	body, err := c.getWithRetry(ctx, u)
	if err != nil {
		return info, err
	}

	var page gjson.Result
	gjson.GetBytes(body, "query.pages").ForEach(func(_, v gjson.Result) bool {
		page = v
		return false
	})
	if !page.Exists() || page.Get("missing").Exists() {
		return info, nil
	}

	if extract := page.Get("extract"); extract.Exists() && strings.TrimSpace(extract.String()) != "" {
		info.Description = strings.TrimSpace(extract.String())
	}
	if t := page.Get("title").String(); t != "" {
		info.Name = t
	}
	info.URL = c.WikiURL(info.Name)
	info.Found = true
	return info, nil
}
