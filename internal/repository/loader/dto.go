package loader

// entry is one rendered page in the renderer's output pool.
// A non-nil Error means the renderer could not load the page.
type entry struct {
	Filepath   string  `json:"filepath"`
	Tier       string  `json:"tier"`
	Filename   string  `json:"filename"`
	Text       string  `json:"text"`
	Screenshot string  `json:"screenshot"`
	Error      *string `json:"error"`
}

// name returns the document identifier, falling back to the source path.
func (e entry) name() string {
	if e.Filename != "" {
		return e.Filename
	}
	return e.Filepath
}
