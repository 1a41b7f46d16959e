package preview

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vanderheijden86/devquest/pkg/metrics"
)

// overviewPrefix is matched against the trimmed, upper-cased heading text.
const overviewPrefix = "OVERVIEW"

// Overview is the extracted overview section of one document.
type Overview struct {
	HTML  string `json:"html"`
	Found bool   `json:"found"`
}

// ExtractOverview finds the first <h1> whose text starts with "Overview"
// (case-insensitive, surrounding whitespace ignored) and returns the markup of
// the element siblings that follow it, up to but excluding the next <h1>.
// Found is true iff at least one sibling was collected.
func ExtractOverview(content []byte) (Overview, error) {
	defer metrics.Timer(metrics.OverviewExtract)()

	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return Overview{}, fmt.Errorf("parsing document: %w", err)
	}

	heading := findOverviewHeading(doc)
	if heading == nil {
		return Overview{}, nil
	}

	var buf bytes.Buffer
	for n := nextElementSibling(heading); n != nil; n = nextElementSibling(n) {
		if n.DataAtom == atom.H1 {
			break
		}
		if err := html.Render(&buf, n); err != nil {
			return Overview{}, fmt.Errorf("rendering overview: %w", err)
		}
	}
	return Overview{HTML: buf.String(), Found: buf.Len() > 0}, nil
}

// findOverviewHeading returns the first <h1> in document order whose text
// starts with the overview prefix. Later matching headings are ignored.
func findOverviewHeading(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.H1 {
		text := strings.ToUpper(strings.TrimSpace(textContent(n)))
		if strings.HasPrefix(text, overviewPrefix) {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if h := findOverviewHeading(c); h != nil {
			return h
		}
	}
	return nil
}

func nextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// parentDirPrefix is the traversal prefix stripped from image sources.
const parentDirPrefix = "../"

// RewriteRelativeAssetPaths strips exactly one leading "../" from every <img>
// src, so images resolve against the documents directory instead of its parent.
// It returns the inner markup of the document's root element.
func RewriteRelativeAssetPaths(content []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parsing document: %w", err)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Img {
			for i, a := range n.Attr {
				if a.Namespace == "" && a.Key == "src" && strings.HasPrefix(a.Val, parentDirPrefix) {
					n.Attr[i].Val = strings.TrimPrefix(a.Val, parentDirPrefix)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	root := doc
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Html {
			root = c
			break
		}
	}

	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("rendering document: %w", err)
		}
	}
	return buf.String(), nil
}
