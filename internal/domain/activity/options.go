package activity

// ListOptions provides paging options for listing a feed.
type ListOptions struct {
	Limit  int
	Offset int
}
