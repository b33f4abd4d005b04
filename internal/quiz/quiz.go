package quiz

// Question is one multiple-choice item. Options carry their "A."–"D." labels
// and Answer repeats the correct option verbatim.
type Question struct {
    Question    string   `json:"question"`
    Options     []string `json:"options"`
    Answer      string   `json:"answer"`
    Difficulty  string   `json:"difficulty"`
    Explanation string   `json:"explanation"`
    Section     string   `json:"section"`
}

// Result is the merged outcome of the quiz and related-topics calls.
type Result struct {
    Questions     []Question `json:"quiz"`
    RelatedTopics []string   `json:"related_topics"`
}

// Fallback returns the fixed canned payload used whenever live generation
// fails or the backend is disabled. A fresh value is built on every call so
// callers cannot mutate shared state.
func Fallback() Result {
    return Result{
        Questions: []Question{
            {
                Question:    "Where did Alan Turing study?",
                Options:     []string{"Harvard University", "Cambridge University", "Oxford University", "Princeton University"},
                Answer:      "Cambridge University",
                Difficulty:  "easy",
                Explanation: "Mentioned in the 'Early life' section.",
                Section:     "Early life and education",
            },
            {
                Question:    "What was Alan Turing's main contribution during World War II?",
                Options:     []string{"Atomic research", "Breaking the Enigma code", "Inventing radar", "Developing jet engines"},
                Answer:      "Breaking the Enigma code",
                Difficulty:  "medium",
                Explanation: "Detailed in the 'World War II' section.",
                Section:     "Career and research",
            },
        },
        RelatedTopics: []string{"Cryptography", "Enigma machine", "Computer science history"},
    }
}
