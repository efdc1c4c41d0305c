package definition

import "github.com/rohmanhakim/mauvaise-langue/pkg/failure"

const (
	msgNoDefinition   = "Aucune définition trouvée."
	msgUpstreamStatus = "Erreur lors de la récupération de la définition (status: %d)."
	msgFailure        = "Une erreur est survenue : %v"
)

type Status int

const (
	// StatusOK: the page answered 200 and its first ordered list had items.
	StatusOK Status = iota
	// StatusEmpty: the page answered 200 without a usable ordered list.
	StatusEmpty
	// StatusFailed: non-200 answer, transport failure or unbuildable URL.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the explicit outcome of one definition lookup.
type Result struct {
	term       string
	url        string
	status     Status
	httpStatus int
	entries    []string
	markdown   string
	reason     failure.ClassifiedError
}

func (r Result) Term() string {
	return r.term
}

// URL returns the page address that was requested.
func (r Result) URL() string {
	return r.url
}

func (r Result) Status() Status {
	return r.status
}

// HTTPStatus is 0 when no response was received.
func (r Result) HTTPStatus() int {
	return r.httpStatus
}

// Entries returns the text of every list item, nested items included.
func (r Result) Entries() []string {
	return r.entries
}

// Markdown is only filled when the markdown format was requested.
func (r Result) Markdown() string {
	return r.markdown
}

func (r Result) Reason() failure.ClassifiedError {
	return r.reason
}
