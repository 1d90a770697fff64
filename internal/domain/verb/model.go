package verb

// Verb is a registered action type with a stable numeric id.
type Verb struct {
	ID         int    `json:"id" yaml:"id"`
	Infinitive string `json:"infinitive" yaml:"infinitive"`
	PastTense  string `json:"past_tense,omitempty" yaml:"past_tense"`
}

func (v Verb) String() string {
	return v.Infinitive
}

// DefaultVerbs returns the verbs every registry starts from when no catalog is configured.
func DefaultVerbs() []Verb {
	return []Verb{
		{ID: 1, Infinitive: "follow", PastTense: "followed"},
		{ID: 2, Infinitive: "comment", PastTense: "commented"},
		{ID: 3, Infinitive: "love", PastTense: "loved"},
		{ID: 4, Infinitive: "add", PastTense: "added"},
	}
}
