package verb

// Lookup resolves verb ids. Implementations must be safe for concurrent use.
type Lookup interface {
	Lookup(id int) (Verb, error)
}
