package faq

// Entry is one static question/answer pair from the FAQ backing file.
// Entries are immutable once loaded; questions carry no uniqueness
// constraint.
type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
