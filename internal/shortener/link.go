package shortener

// Code represents a short link code.
type Code string

// Link is the persisted mapping between a code and the canonical URL it resolves to.
// Links are created once and never modified.
type Link struct {
	Code      Code
	TargetURL string
}
