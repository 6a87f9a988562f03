package html

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"

	"github.com/custodia-labs/research-agent/internal/core/ports/driven"
)

// Ensure Sanitiser implements the interface.
var _ driven.ContentSanitiser = (*Sanitiser)(nil)

// droppedTags are removed together with everything inside them.
var droppedTags = []string{
	"script", "style", "iframe", "frame", "frameset", "object", "embed",
	"applet", "form", "input", "button", "select", "textarea", "link",
	"meta", "base", "noscript", "template", "svg", "math", "head", "title",
}

// allowedTags maps kept elements to their kept attributes.
// Elements not listed here are unwrapped: their children stay.
var allowedTags = map[string]map[string]bool{
	"p": {}, "br": {}, "hr": {}, "div": {}, "span": {},
	"b": {}, "strong": {}, "i": {}, "em": {}, "u": {}, "s": {},
	"sub": {}, "sup": {}, "small": {}, "mark": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"ul": {}, "ol": {}, "li": {}, "dl": {}, "dt": {}, "dd": {},
	"blockquote": {}, "pre": {}, "code": {},
	"table": {}, "thead": {}, "tbody": {}, "tr": {}, "th": {}, "td": {},
	"a":   {"href": true, "title": true},
	"img": {"src": true, "alt": true, "title": true},
}

// urlAttrs hold URLs and are checked against allowedSchemes.
var urlAttrs = map[string]bool{"href": true, "src": true}

var allowedSchemes = []string{"http:", "https:", "mailto:"}

// blockTags end a line in plain text output.
var blockTags = "p, div, br, hr, li, dt, dd, tr, blockquote, pre, h1, h2, h3, h4, h5, h6"

var spaceRun = regexp.MustCompile(`[ \t\f\r\x{00a0}]+`)

// Sanitiser cleans result HTML with goquery.
type Sanitiser struct{}

// New creates a new sanitiser.
func New() *Sanitiser {
	return &Sanitiser{}
}

// Sanitise returns raw with only allow-listed markup left.
// Input that cannot be parsed is returned escaped.
func (s *Sanitiser) Sanitise(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	body, ok := parseBody(raw)
	if !ok {
		return xhtml.EscapeString(raw)
	}

	removeComments(body)

	body.Find("*").Each(func(_ int, sel *goquery.Selection) {
		attrs, ok := allowedTags[goquery.NodeName(sel)]
		if !ok {
			sel.ReplaceWithSelection(sel.Contents())
			return
		}
		filterAttrs(sel, attrs)
	})

	out, err := body.Html()
	if err != nil {
		return xhtml.EscapeString(raw)
	}
	return strings.TrimSpace(out)
}

// PlainText flattens raw into text with one line per block element.
// Runs of whitespace collapse and blank lines are dropped.
func (s *Sanitiser) PlainText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	body, ok := parseBody(raw)
	if !ok {
		return strings.TrimSpace(raw)
	}

	body.Find(blockTags).Each(func(_ int, sel *goquery.Selection) {
		sel.Get(0).AppendChild(&xhtml.Node{Type: xhtml.TextNode, Data: "\n"})
	})

	lines := strings.Split(body.Text(), "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// parseBody parses raw as a document and returns its body with the
// dropped elements already removed.
func parseBody(raw string) (*goquery.Selection, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, false
	}
	doc.Find(strings.Join(droppedTags, ", ")).Remove()

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil, false
	}
	return body, true
}

func removeComments(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		node := child.Get(0)
		switch node.Type {
		case xhtml.CommentNode:
			child.Remove()
		case xhtml.ElementNode:
			removeComments(child)
		}
	})
}

func filterAttrs(sel *goquery.Selection, allowed map[string]bool) {
	node := sel.Get(0)
	keys := make([]string, 0, len(node.Attr))
	for _, a := range node.Attr {
		keys = append(keys, a.Key)
	}

	for _, key := range keys {
		if !allowed[key] {
			sel.RemoveAttr(key)
			continue
		}
		if urlAttrs[key] {
			val, _ := sel.Attr(key)
			if !safeURL(val) {
				sel.RemoveAttr(key)
			}
		}
	}

	if goquery.NodeName(sel) == "a" {
		if _, ok := sel.Attr("href"); ok {
			sel.SetAttr("rel", "noopener noreferrer")
		}
	}
}

// safeURL accepts relative URLs and the allowed absolute schemes.
func safeURL(raw string) bool {
	v := strings.ToLower(strings.TrimSpace(raw))
	// Browsers ignore embedded control characters and whitespace in schemes.
	v = strings.Map(func(r rune) rune {
		if r < 0x21 {
			return -1
		}
		return r
	}, v)

	colon := strings.IndexByte(v, ':')
	if colon < 0 {
		return true
	}
	if slash := strings.IndexAny(v, "/?#"); slash >= 0 && slash < colon {
		return true
	}
	for _, scheme := range allowedSchemes {
		if strings.HasPrefix(v, scheme) {
			return true
		}
	}
	return false
}
