package quiz

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "strings"

    openai "github.com/sashabaranov/go-openai"
    "github.com/rs/zerolog/log"

    "wikiquiz/internal/llm"
)

// ErrGeneration marks a failed live generation attempt: backend errors,
// unparsable output, missing keys, or shape violations. In the default
// configuration it never escapes Generate; strict mode surfaces it.
var ErrGeneration = errors.New("quiz generation failed")

// maxContentChars bounds how much article text is sent to the backend per
// prompt. The section list is always sent in full.
const maxContentChars = 5000

const quizSystemMessage = "You are a quiz writer. Respond with strict JSON only, no narration. The JSON schema is {\"quiz\": [{\"question\": string, \"options\": string[4], \"answer\": string, \"difficulty\": \"easy\"|\"medium\"|\"hard\", \"explanation\": string, \"section\": string}]}."

const topicsSystemMessage = "You suggest further reading. Respond with strict JSON only, no narration. The JSON schema is {\"related_topics\": string[3..5]}."

// Generator turns extracted article text into a validated quiz through two
// sequential backend calls. Mock skips the backend entirely and returns the
// fallback payload; Strict surfaces generation failures instead of absorbing
// them.
type Generator struct {
    Client llm.Client
    Model  string
    Mock   bool
    Strict bool
}

// Generate produces a quiz plus related topics for the given article text
// and section list. In the default configuration it never returns an error:
// any live failure is logged and replaced by the fallback payload in a
// single explicit branch, with no second backend attempt.
func (g *Generator) Generate(ctx context.Context, content string, sections []string) (Result, error) {
    if g.Mock {
        return Fallback(), nil
    }
    res, err := g.generateLive(ctx, content, sections)
    if err != nil {
        if g.Strict {
            return Result{}, fmt.Errorf("%w: %v", ErrGeneration, err)
        }
        log.Warn().Err(err).Msg("live generation failed; serving fallback payload")
        return Fallback(), nil
    }
    return res, nil
}

func (g *Generator) generateLive(ctx context.Context, content string, sections []string) (Result, error) {
    if g.Client == nil || g.Model == "" {
        return Result{}, errors.New("generator not configured")
    }
    content = truncate(content, maxContentChars)

    quizRaw, err := g.complete(ctx, quizSystemMessage, buildQuizPrompt(content, sections))
    if err != nil {
        return Result{}, fmt.Errorf("quiz call: %w", err)
    }
    questions, err := parseQuestions(quizRaw)
    if err != nil {
        return Result{}, fmt.Errorf("quiz payload: %w", err)
    }

    topicsRaw, err := g.complete(ctx, topicsSystemMessage, buildTopicsPrompt(content))
    if err != nil {
        return Result{}, fmt.Errorf("topics call: %w", err)
    }
    topics, err := parseTopics(topicsRaw)
    if err != nil {
        return Result{}, fmt.Errorf("topics payload: %w", err)
    }

    return Result{Questions: questions, RelatedTopics: topics}, nil
}

func (g *Generator) complete(ctx context.Context, system, user string) (string, error) {
    resp, err := g.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
        Model: g.Model,
        Messages: []openai.ChatCompletionMessage{
            {Role: openai.ChatMessageRoleSystem, Content: system},
            {Role: openai.ChatMessageRoleUser, Content: user},
        },
        Temperature: 0.2,
        N:           1,
    })
    if err != nil {
        return "", err
    }
    if len(resp.Choices) == 0 {
        return "", errors.New("no choices")
    }
    return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildQuizPrompt(content string, sections []string) string {
    var b strings.Builder
    b.WriteString("Based on the following Wikipedia article content and sections, generate a quiz with 5-10 questions.\n")
    b.WriteString("Group questions by the provided sections where possible.\n")
    b.WriteString("Each question should have:\n")
    b.WriteString("- Question text\n")
    b.WriteString("- Four options labeled \"A.\" through \"D.\"\n")
    b.WriteString("- The correct answer, repeated verbatim from the options\n")
    b.WriteString("- Difficulty level (easy, medium, hard)\n")
    b.WriteString("- Short explanation\n")
    b.WriteString("- Section it belongs to (from the provided sections list)\n\n")
    b.WriteString("Ensure questions are relevant to the article content and vary in difficulty.\n\n")
    b.WriteString("Sections: ")
    b.WriteString(strings.Join(sections, ", "))
    b.WriteString("\n\nArticle content:\n")
    b.WriteString(content)
    return b.String()
}

func buildTopicsPrompt(content string) string {
    var b strings.Builder
    b.WriteString("Based on the Wikipedia article content, suggest 3-5 related Wikipedia topics for further reading.\n\n")
    b.WriteString("Article content:\n")
    b.WriteString(content)
    return b.String()
}

// parseQuestions decodes the quiz call output: an object with a "quiz" array.
// The payload is parsed untyped first, then shape-checked before conversion.
func parseQuestions(raw string) ([]Question, error) {
    obj, err := parseObject(raw)
    if err != nil {
        return nil, err
    }
    quizVal, ok := obj["quiz"]
    if !ok {
        return nil, errors.New(`missing "quiz" key`)
    }
    var questions []Question
    if err := json.Unmarshal(quizVal, &questions); err != nil {
        return nil, fmt.Errorf("decode quiz array: %v", err)
    }
    if err := validateQuestions(questions); err != nil {
        return nil, err
    }
    return questions, nil
}

func parseTopics(raw string) ([]string, error) {
    obj, err := parseObject(raw)
    if err != nil {
        return nil, err
    }
    topicsVal, ok := obj["related_topics"]
    if !ok {
        return nil, errors.New(`missing "related_topics" key`)
    }
    var topics []string
    if err := json.Unmarshal(topicsVal, &topics); err != nil {
        return nil, fmt.Errorf("decode related_topics array: %v", err)
    }
    if len(topics) == 0 {
        return nil, errors.New("empty related_topics array")
    }
    return topics, nil
}

func parseObject(raw string) (map[string]json.RawMessage, error) {
    raw = stripCodeFence(raw)
    var obj map[string]json.RawMessage
    if err := json.Unmarshal([]byte(raw), &obj); err != nil {
        return nil, fmt.Errorf("parse json: %v", err)
    }
    return obj, nil
}

// stripCodeFence removes a surrounding markdown code fence when the model
// wraps its JSON despite the strict-JSON instruction.
func stripCodeFence(s string) string {
    s = strings.TrimSpace(s)
    if !strings.HasPrefix(s, "```") {
        return s
    }
    s = strings.TrimPrefix(s, "```")
    if i := strings.IndexByte(s, '\n'); i >= 0 {
        // Drops a language tag like "json" on the opening fence line.
        s = s[i+1:]
    }
    s = strings.TrimSuffix(strings.TrimSpace(s), "```")
    return strings.TrimSpace(s)
}

var allowedDifficulties = map[string]bool{"easy": true, "medium": true, "hard": true}

// validateQuestions enforces per-question shape: non-empty text, exactly
// four options, a verbatim answer match, and a known difficulty. Counts
// (5-10 questions) remain a prompt-level contract and are not enforced.
func validateQuestions(questions []Question) error {
    if len(questions) == 0 {
        return errors.New("empty quiz array")
    }
    for i, q := range questions {
        if strings.TrimSpace(q.Question) == "" {
            return fmt.Errorf("question %d: empty question text", i)
        }
        if len(q.Options) != 4 {
            return fmt.Errorf("question %d: expected 4 options, got %d", i, len(q.Options))
        }
        if !containsString(q.Options, q.Answer) {
            return fmt.Errorf("question %d: answer does not match any option", i)
        }
        if !allowedDifficulties[q.Difficulty] {
            return fmt.Errorf("question %d: unknown difficulty %q", i, q.Difficulty)
        }
    }
    return nil
}

func containsString(list []string, want string) bool {
    for _, s := range list {
        if s == want {
            return true
        }
    }
    return false
}

func truncate(s string, n int) string {
    if len(s) <= n {
        return s
    }
    r := []rune(s)
    if len(r) <= n {
        return s
    }
    return string(r[:n])
}
