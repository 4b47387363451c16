package utils

import (
	"fmt"
	"math"
	"regexp"
	"unicode/utf8"
)

var studentIDRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// MaxGPA is the top of the grading scale
const MaxGPA = 4.0

// ValidateStudentID validates a student identifier
func ValidateStudentID(id string) error {
	if !studentIDRegex.MatchString(id) {
		return fmt.Errorf("invalid student id format: %q", id)
	}
	return nil
}

// ValidateGPA validates a grade point average
func ValidateGPA(gpa float32) error {
	if math.IsNaN(float64(gpa)) {
		return fmt.Errorf("gpa must be a number")
	}

	if gpa < 0 {
		return fmt.Errorf("gpa must not be negative: %.2f", gpa)
	}

	if gpa > MaxGPA {
		return fmt.Errorf("gpa exceeds maximum of %.1f: %.2f", MaxGPA, gpa)
	}

	return nil
}

// ValidateInitial validates a middle initial; empty means none
func ValidateInitial(initial string) error {
	if !utf8.ValidString(initial) {
		return fmt.Errorf("middle initial is not valid UTF-8: %q", initial)
	}
	if utf8.RuneCountInString(initial) > 1 {
		return fmt.Errorf("middle initial must be a single character: %q", initial)
	}
	return nil
}
