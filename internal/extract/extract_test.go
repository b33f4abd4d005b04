package extract

import (
    "errors"
    "fmt"
    "strings"
    "testing"
)

func TestFromHTML_AlanTuringScenario(t *testing.T) {
    page := `<!doctype html>
    <html>
      <body>
        <h1 id="firstHeading">Alan Turing</h1>
        <div id="mw-content-text">
          <p>Alan Turing was an English mathematician and computer scientist.</p>
          <h2 id="Early_life_and_education">Early life and education<span>[edit]</span></h2>
          <h2 id="Career_and_research">Career and research<span>[edit]</span></h2>
          <h2 id="toc">Contents</h2>
        </div>
      </body>
    </html>`

    a, err := FromHTML([]byte(page))
    if err != nil {
        t.Fatalf("extract error: %v", err)
    }
    if a.Title != "Alan Turing" {
        t.Fatalf("expected title 'Alan Turing', got %q", a.Title)
    }
    if a.Summary != "Alan Turing was an English mathematician and computer scientist." {
        t.Fatalf("unexpected summary %q", a.Summary)
    }
    want := []string{"Early life and education", "Career and research"}
    if len(a.Sections) != len(want) {
        t.Fatalf("expected sections %v, got %v", want, a.Sections)
    }
    for i := range want {
        if a.Sections[i] != want[i] {
            t.Fatalf("expected section %q at %d, got %q", want[i], i, a.Sections[i])
        }
    }
}

func TestFromHTML_MissingHeadingFails(t *testing.T) {
    page := `<html><body><div id="mw-content-text"><p>text</p></div></body></html>`
    _, err := FromHTML([]byte(page))
    if !errors.Is(err, ErrNoHeading) {
        t.Fatalf("expected ErrNoHeading, got %v", err)
    }
    if !errors.Is(err, ErrExtraction) {
        t.Fatalf("expected error to wrap ErrExtraction")
    }
}

func TestFromHTML_MissingContainerFails(t *testing.T) {
    page := `<html><body><h1 id="firstHeading">Title</h1></body></html>`
    _, err := FromHTML([]byte(page))
    if !errors.Is(err, ErrNoContent) {
        t.Fatalf("expected ErrNoContent, got %v", err)
    }
}

func TestFromHTML_SummaryEmptyWhenNoDirectParagraph(t *testing.T) {
    // The paragraph is nested one level down, so it is not a direct child of
    // the container and must not become the summary.
    page := `<html><body>
      <h1 id="firstHeading">Title</h1>
      <div id="mw-content-text"><div class="mw-parser-output"><p>Nested lead.</p></div></div>
    </body></html>`
    a, err := FromHTML([]byte(page))
    if err != nil {
        t.Fatalf("extract error: %v", err)
    }
    if a.Summary != "" {
        t.Fatalf("expected empty summary, got %q", a.Summary)
    }
}

func TestFromHTML_FallsBackToPlainH1(t *testing.T) {
    page := `<html><body>
      <h1> Spaced Title </h1>
      <div id="mw-content-text"><p>Lead.</p></div>
    </body></html>`
    a, err := FromHTML([]byte(page))
    if err != nil {
        t.Fatalf("extract error: %v", err)
    }
    if a.Title != "Spaced Title" {
        t.Fatalf("expected trimmed title, got %q", a.Title)
    }
}

func TestFromHTML_SectionsRequireAnchorID(t *testing.T) {
    page := `<html><body>
      <h1 id="firstHeading">Title</h1>
      <div id="mw-content-text">
        <p>Lead.</p>
        <h2>No anchor here</h2>
        <h3 id="Sub_section">Sub section[edit]</h3>
        <h2 id="tocheading">Skipped toc heading</h2>
        <h3 id="Sub_section">Sub section[edit]</h3>
      </div>
    </body></html>`
    a, err := FromHTML([]byte(page))
    if err != nil {
        t.Fatalf("extract error: %v", err)
    }
    // Duplicates are kept in document order; anchorless and toc-prefixed
    // headings are dropped.
    want := []string{"Sub section", "Sub section"}
    if len(a.Sections) != len(want) {
        t.Fatalf("expected sections %v, got %v", want, a.Sections)
    }
    for i := range want {
        if a.Sections[i] != want[i] {
            t.Fatalf("expected section %q, got %q", want[i], a.Sections[i])
        }
    }
}

func TestFromHTML_PeopleCappedAtTen(t *testing.T) {
    var sb strings.Builder
    sb.WriteString(`<html><body><h1 id="firstHeading">Title</h1><div id="mw-content-text"><p>`)
    surnames := []string{"Adams", "Baker", "Clark", "Davis", "Evans", "Fisher", "Grant", "Hayes", "Irwin", "Jones", "Keene", "Lewis", "Mason", "Nolan", "Owens"}
    for _, s := range surnames {
        fmt.Fprintf(&sb, "Robert %s attended. ", s)
    }
    sb.WriteString(`</p></div></body></html>`)

    a, err := FromHTML([]byte(sb.String()))
    if err != nil {
        t.Fatalf("extract error: %v", err)
    }
    if len(a.KeyEntities.People) > 10 {
        t.Fatalf("expected at most 10 people, got %d", len(a.KeyEntities.People))
    }
    if len(a.KeyEntities.People) == 0 {
        t.Fatal("expected some people to be extracted")
    }
    // Ordering is unspecified; assert membership only.
    for _, p := range a.KeyEntities.People {
        if !strings.Contains(sb.String(), p) {
            t.Fatalf("extracted person %q not present in source", p)
        }
    }
}

func TestFromHTML_PeopleDeduplicated(t *testing.T) {
    page := `<html><body><h1 id="firstHeading">Title</h1><div id="mw-content-text">
      <p>Alan Turing met Alan Turing and later Alan Turing again, with Alonzo Church.</p>
    </div></body></html>`
    a, err := FromHTML([]byte(page))
    if err != nil {
        t.Fatalf("extract error: %v", err)
    }
    count := 0
    for _, p := range a.KeyEntities.People {
        if p == "Alan Turing" {
            count++
        }
    }
    if count != 1 {
        t.Fatalf("expected 'Alan Turing' exactly once, got %d in %v", count, a.KeyEntities.People)
    }
}

func TestFromHTML_PlaceholderBucketsAlwaysEmpty(t *testing.T) {
    page := `<html><body><h1 id="firstHeading">Title</h1><div id="mw-content-text"><p>Acme Corporation in New York.</p></div></body></html>`
    a, err := FromHTML([]byte(page))
    if err != nil {
        t.Fatalf("extract error: %v", err)
    }
    if a.KeyEntities.Organizations == nil || len(a.KeyEntities.Organizations) != 0 {
        t.Fatalf("expected empty organizations, got %v", a.KeyEntities.Organizations)
    }
    if a.KeyEntities.Locations == nil || len(a.KeyEntities.Locations) != 0 {
        t.Fatalf("expected empty locations, got %v", a.KeyEntities.Locations)
    }
}

func TestFromHTML_ContentSkipsScriptsAndKeepsRawInput(t *testing.T) {
    page := `<html><body><h1 id="firstHeading">Title</h1>
      <script>var hidden = true;</script>
      <div id="mw-content-text"><p>Visible text.</p></div>
    </body></html>`
    a, err := FromHTML([]byte(page))
    if err != nil {
        t.Fatalf("extract error: %v", err)
    }
    if strings.Contains(a.Content, "hidden") {
        t.Fatalf("script text leaked into content: %q", a.Content)
    }
    if !strings.Contains(a.Content, "Visible text.") {
        t.Fatalf("expected visible text in content")
    }
    if a.RawHTML != page {
        t.Fatalf("expected raw markup to be the verbatim input")
    }
}
