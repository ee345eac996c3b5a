package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

// maxBody caps how much of a remote resource is read.
const maxBody = 20 << 20

// skipped elements contribute no text
var skipped = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"svg":      true,
	"head":     true,
}

var blocks = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "header": true, "footer": true,
	"pre": true, "blockquote": true, "table": true, "ul": true, "ol": true,
	"title": true,
}

// FromURL fetches a web resource and returns its text. HTML is stripped of
// markup, PDFs are extracted, plain text is returned as is.
func (e *Extractor) FromURL(ctx context.Context, url string) (string, error) {
	body, contentType, err := e.get(ctx, url)
	if err != nil {
		return "", err
	}

	switch {
	case strings.HasPrefix(contentType, "application/pdf"):
		return pdfText(bytes.NewReader(body), int64(len(body)))
	case strings.HasPrefix(contentType, "text/plain"):
		return string(body), nil
	default:
		return StripHTML(bytes.NewReader(body))
	}
}

func (e *Extractor) get(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "ask/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", url, err)
	}
	return body, strings.ToLower(resp.Header.Get("Content-Type")), nil
}

// StripHTML returns the visible text of an HTML document, one block per
// line with runs of whitespace collapsed.
func StripHTML(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)
	var b strings.Builder
	skipDepth := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return tidy(b.String()), nil
			}
			return "", z.Err()
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skipped[tag] && tt == html.StartTagToken {
				skipDepth++
			}
			if blocks[tag] {
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skipped[tag] && skipDepth > 0 {
				skipDepth--
			}
			if blocks[tag] {
				b.WriteByte('\n')
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func tidy(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
