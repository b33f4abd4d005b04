package extract

import (
    "bytes"
    "errors"
    "fmt"
    "regexp"
    "strings"

    "golang.org/x/net/html"
)

// ErrExtraction marks a document that lacks the structural anchors the
// extractor requires. No partial Article is ever returned alongside it.
var ErrExtraction = errors.New("extraction failed")

// ErrNoHeading is returned when the page has no primary heading.
var ErrNoHeading = fmt.Errorf("%w: no primary heading found", ErrExtraction)

// ErrNoContent is returned when the main content container is missing.
var ErrNoContent = fmt.Errorf("%w: no main content container found", ErrExtraction)

// KeyEntities holds naive named-entity buckets. Only People is populated by
// the current rule; the other two are placeholders for future rules and are
// always emitted empty rather than dropped.
type KeyEntities struct {
    People        []string `json:"people"`
    Organizations []string `json:"organizations"`
    Locations     []string `json:"locations"`
}

// Article is the structured result of parsing one Wikipedia page. It is a
// pure function of the input markup and is never mutated after return.
type Article struct {
    Title       string      `json:"title"`
    Summary     string      `json:"summary"`
    Sections    []string    `json:"sections"`
    KeyEntities KeyEntities `json:"key_entities"`
    Content     string      `json:"content"`
    RawHTML     string      `json:"raw_html"`
}

const maxPeople = 10

var peopleRe = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)

// FromHTML parses Wikipedia article markup into an Article.
//
// The title comes from the h1#firstHeading node (any h1 as fallback), the
// summary from the first paragraph that is a direct child of
// div#mw-content-text, and the section list from h2/h3 nodes carrying a
// non-toc anchor id. Extraction is atomic: a missing heading or content
// container fails the whole call.
func FromHTML(input []byte) (Article, error) {
    root, err := html.Parse(bytes.NewReader(input))
    if err != nil || root == nil {
        return Article{}, fmt.Errorf("%w: parse: %v", ErrExtraction, err)
    }

    heading := findElementWithID(root, "h1", "firstHeading")
    if heading == nil {
        heading = findFirst(root, "h1")
    }
    if heading == nil {
        return Article{}, ErrNoHeading
    }
    title := strings.TrimSpace(nodeText(heading))
    if title == "" {
        return Article{}, ErrNoHeading
    }

    container := findElementWithID(root, "div", "mw-content-text")
    if container == nil {
        return Article{}, ErrNoContent
    }
    summary := ""
    if p := firstDirectChild(container, "p"); p != nil {
        summary = strings.TrimSpace(nodeText(p))
    }

    sections := collectSections(root)
    content := visibleText(root)

    return Article{
        Title:       title,
        Summary:     summary,
        Sections:    sections,
        KeyEntities: extractEntities(content),
        Content:     content,
        RawHTML:     string(input),
    }, nil
}

// collectSections returns the visible labels of h2/h3 headings in document
// order, keeping only headings whose id anchor exists and does not belong to
// the table of contents, and stripping the trailing [edit] link text.
func collectSections(root *html.Node) []string {
    var sections []string
    walk(root, func(n *html.Node) {
        if n.Type != html.ElementNode {
            return
        }
        name := strings.ToLower(n.Data)
        if name != "h2" && name != "h3" {
            return
        }
        id := attrValue(n, "id")
        if id == "" || strings.HasPrefix(id, "toc") {
            return
        }
        label := strings.TrimSpace(strings.ReplaceAll(nodeText(n), "[edit]", ""))
        sections = append(sections, label)
    })
    return sections
}

// extractEntities applies the naive two-capitalized-word heuristic for
// people. Match order is lost in deduplication, so the cap keeps an
// arbitrary 10; callers must not rely on ordering.
func extractEntities(content string) KeyEntities {
    seen := map[string]struct{}{}
    for _, m := range peopleRe.FindAllString(content, -1) {
        seen[m] = struct{}{}
    }
    people := make([]string, 0, len(seen))
    for name := range seen {
        if len(people) >= maxPeople {
            break
        }
        people = append(people, name)
    }
    return KeyEntities{
        People:        people,
        Organizations: []string{},
        Locations:     []string{},
    }
}

// visibleText concatenates every text node in the document, skipping script
// and style subtrees. No whitespace normalization is applied.
func visibleText(root *html.Node) string {
    var b strings.Builder
    var dfs func(*html.Node)
    dfs = func(n *html.Node) {
        if n.Type == html.ElementNode {
            switch strings.ToLower(n.Data) {
            case "script", "style", "noscript":
                return
            }
        }
        if n.Type == html.TextNode {
            b.WriteString(n.Data)
        }
        for c := n.FirstChild; c != nil; c = c.NextSibling {
            dfs(c)
        }
    }
    dfs(root)
    return b.String()
}

func walk(n *html.Node, visit func(*html.Node)) {
    visit(n)
    for c := n.FirstChild; c != nil; c = c.NextSibling {
        walk(c, visit)
    }
}

func findFirst(n *html.Node, tag string) *html.Node {
    var res *html.Node
    var dfs func(*html.Node)
    dfs = func(cur *html.Node) {
        if res != nil {
            return
        }
        if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) {
            res = cur
            return
        }
        for c := cur.FirstChild; c != nil; c = c.NextSibling {
            dfs(c)
            if res != nil {
                return
            }
        }
    }
    dfs(n)
    return res
}

func findElementWithID(n *html.Node, tag, id string) *html.Node {
    var res *html.Node
    var dfs func(*html.Node)
    dfs = func(cur *html.Node) {
        if res != nil {
            return
        }
        if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) && attrValue(cur, "id") == id {
            res = cur
            return
        }
        for c := cur.FirstChild; c != nil; c = c.NextSibling {
            dfs(c)
            if res != nil {
                return
            }
        }
    }
    dfs(n)
    return res
}

func firstDirectChild(n *html.Node, tag string) *html.Node {
    for c := n.FirstChild; c != nil; c = c.NextSibling {
        if c.Type == html.ElementNode && strings.EqualFold(c.Data, tag) {
            return c
        }
    }
    return nil
}

func attrValue(n *html.Node, key string) string {
    for _, a := range n.Attr {
        if strings.EqualFold(a.Key, key) {
            return a.Val
        }
    }
    return ""
}

func nodeText(n *html.Node) string {
    var b strings.Builder
    var dfs func(*html.Node)
    dfs = func(cur *html.Node) {
        if cur.Type == html.TextNode {
            b.WriteString(cur.Data)
        }
        for c := cur.FirstChild; c != nil; c = c.NextSibling {
            dfs(c)
        }
    }
    dfs(n)
    return b.String()
}
