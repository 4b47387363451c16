// Package failure defines the payloads a fallible student operation can
// signal. Payloads form a tagged variant: every Signal carries a Kind and the
// raw value, and handlers select on the Kind rather than on Go types.
package failure

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// StudentException is the structured payload owned by the student domain
type StudentException struct {
	num int
}

// NewStudentException creates an exception with a fixed diagnostic code
func NewStudentException(num int) StudentException {
	return StudentException{num: num}
}

// Num returns the embedded diagnostic code
func (e StudentException) Num() int {
	return e.num
}

// Signal is a raised payload travelling to the nearest cascade
type Signal struct {
	ID    string
	kind  Kind
	value any
}

func newSignal(kind Kind, value any) *Signal {
	return &Signal{
		ID:    uuid.NewString(),
		kind:  kind,
		value: value,
	}
}

// LowGPA signals a GPA below the graduation threshold
func LowGPA(gpa float32) *Signal {
	return newSignal(KindLowGPA, gpa)
}

// MissingCredits signals how many credits are missing
func MissingCredits(n int) *Signal {
	return newSignal(KindMissingCredits, n)
}

// Diagnostic signals a raw diagnostic message
func Diagnostic(msg string) *Signal {
	return newSignal(KindDiagnostic, msg)
}

// Student signals a StudentException
func Student(e StudentException) *Signal {
	return newSignal(KindStudent, e)
}

// Raise classifies an arbitrary value into a Signal. Values of a type with no
// named kind become KindUnknown; an error already carrying a Signal is
// returned unchanged.
func Raise(v any) *Signal {
	switch p := v.(type) {
	case *Signal:
		return p
	case float32:
		return LowGPA(p)
	case int:
		return MissingCredits(p)
	case string:
		return Diagnostic(p)
	case StudentException:
		return Student(p)
	case *StudentException:
		if p != nil {
			return Student(*p)
		}
	case error:
		if s, ok := From(p); ok {
			return s
		}
	}
	return newSignal(KindUnknown, v)
}

// From extracts a Signal from an error chain
func From(err error) (*Signal, bool) {
	var s *Signal
	if errors.As(err, &s) {
		return s, true
	}
	return nil, false
}

// Kind returns the payload kind
func (s *Signal) Kind() Kind {
	return s.kind
}

// Is reports whether the payload is of kind or of a kind specializing it
func (s *Signal) Is(kind Kind) bool {
	return s.kind.Specializes(kind)
}

// Value returns the raw payload
func (s *Signal) Value() any {
	return s.value
}

// GPA returns the payload of a KindLowGPA signal
func (s *Signal) GPA() (float32, bool) {
	v, ok := s.value.(float32)
	return v, ok && s.kind == KindLowGPA
}

// Credits returns the payload of a KindMissingCredits signal
func (s *Signal) Credits() (int, bool) {
	v, ok := s.value.(int)
	return v, ok && s.kind == KindMissingCredits
}

// Message returns the payload of a KindDiagnostic signal
func (s *Signal) Message() (string, bool) {
	v, ok := s.value.(string)
	return v, ok && s.kind == KindDiagnostic
}

// Exception returns the payload of a KindStudent signal
func (s *Signal) Exception() (StudentException, bool) {
	v, ok := s.value.(StudentException)
	return v, ok && s.kind == KindStudent
}

// Error implements the error interface
func (s *Signal) Error() string {
	switch s.kind {
	case KindLowGPA:
		gpa, _ := s.GPA()
		return "low gpa: " + FormatGPA(gpa)
	case KindMissingCredits:
		n, _ := s.Credits()
		return fmt.Sprintf("missing %d credits", n)
	case KindDiagnostic:
		msg, _ := s.Message()
		return msg
	case KindStudent:
		e, _ := s.Exception()
		return fmt.Sprintf("student exception %d", e.Num())
	default:
		return fmt.Sprintf("unknown payload %v (%T)", s.value, s.value)
	}
}

// FormatGPA renders a GPA with at most six significant digits
func FormatGPA(gpa float32) string {
	return strconv.FormatFloat(float64(gpa), 'g', 6, 32)
}
