package failure

type Severity int

// caller control flow
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeverityRecoverable:
		return "recoverable"
	default:
		return "unknown"
	}
}

type ClassifiedError interface {
	error
	Severity() Severity
}
