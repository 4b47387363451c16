package failure

// Kind identifies the runtime category of a signaled payload
type Kind int

const (
	// KindUnknown is any payload not covered by a named kind
	KindUnknown Kind = iota

	// KindLowGPA carries the offending GPA (numeric, continuous)
	KindLowGPA

	// KindMissingCredits carries the number of missing credits (numeric, discrete)
	KindMissingCredits

	// KindDiagnostic carries a free-form diagnostic message
	KindDiagnostic

	// KindStructured is the common ancestor of structured payloads.
	// No payload is ever created with this kind directly.
	KindStructured

	// KindStudent carries a StudentException
	KindStudent
)

// ancestors declares which kinds a kind specializes, nearest first
var ancestors = map[Kind][]Kind{
	KindStudent: {KindStructured},
}

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindLowGPA:
		return "low_gpa"
	case KindMissingCredits:
		return "missing_credits"
	case KindDiagnostic:
		return "diagnostic"
	case KindStructured:
		return "structured"
	case KindStudent:
		return "student_exception"
	default:
		return "unknown"
	}
}

// Ancestors returns the kinds k specializes
func (k Kind) Ancestors() []Kind {
	return ancestors[k]
}

// Specializes reports whether k is target or declares target as an ancestor
func (k Kind) Specializes(target Kind) bool {
	if k == target {
		return true
	}
	for _, a := range k.Ancestors() {
		if a.Specializes(target) {
			return true
		}
	}
	return false
}
