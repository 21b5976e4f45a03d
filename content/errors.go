package content

import "errors"

var (
	// ErrNoFrontMatter is returned for a post without a front matter block.
	ErrNoFrontMatter = errors.New("no front matter")
	// ErrMissingField is returned when a required front matter key is empty.
	ErrMissingField = errors.New("missing required field")
	// ErrBadDate is returned when the date cannot be parsed.
	ErrBadDate = errors.New("unparseable date")
)

// LoadError records a failure to load the post at Path.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return "load " + e.Path + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
