package entity

import (
	"fmt"
	"io"
	"strconv"
	"sync/atomic"

	"github.com/garyjia/gradcheck/internal/domain/failure"
)

// numStudents counts constructed and not yet released students
var numStudents atomic.Int64

// Student is a Person enrolled in a course
type Student struct {
	Person

	gpa           float32
	currentCourse string
	studentID     string // fixed at construction

	released atomic.Bool
}

// NewStudent creates a student and counts it as live
func NewStudent(firstName, lastName string, middleInitial rune, title string,
	gpa float32, course, id string) *Student {
	s := &Student{
		Person:        NewPerson(firstName, lastName, middleInitial, title),
		gpa:           gpa,
		currentCourse: course,
		studentID:     id,
	}
	numStudents.Add(1)
	return s
}

// NewDefaultStudent creates an unnamed student whose id is derived from the
// live count at construction time, e.g. "100Id" for the first one.
func NewDefaultStudent() *Student {
	id := strconv.FormatInt(numStudents.Load()+defaultIDOffset, 10) + "Id"
	s := &Student{studentID: id}
	numStudents.Add(1)
	return s
}

// Clone copies the student, including its id. The copy is counted as a
// separate live instance and must be released on its own.
func (s *Student) Clone() *Student {
	c := &Student{
		Person:        s.Person,
		gpa:           s.gpa,
		currentCourse: s.currentCourse,
		studentID:     s.studentID,
	}
	numStudents.Add(1)
	return c
}

// Release ends the student's lifetime. Only the first call has an effect.
func (s *Student) Release() {
	if s.released.CompareAndSwap(false, true) {
		numStudents.Add(-1)
	}
}

// NumberStudents returns the number of live students
func NumberStudents() int {
	return int(numStudents.Load())
}

func (s *Student) GPA() float32          { return s.gpa }
func (s *Student) CurrentCourse() string { return s.currentCourse }
func (s *Student) StudentID() string     { return s.studentID }

// SetCurrentCourse changes the course the student is taking
func (s *Student) SetCurrentCourse(course string) {
	s.currentCourse = course
}

// EarnPhD promotes the student's title
func (s *Student) EarnPhD() {
	s.modifyTitle(TitleDoctor)
}

// Print writes the student's name, id, GPA and course
func (s *Student) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s %s %c. %s with id: %s GPA:  %s Course: %s\n",
		s.Title(), s.FirstName(), s.MiddleInitial(), s.LastName(),
		s.studentID, strconv.FormatFloat(float64(s.gpa), 'g', 3, 32), s.currentCourse)
	return err
}

// IsA names the concrete kind
func (s *Student) IsA() string {
	return "Student"
}

// Validate checks the student against course standards. No standard is
// implemented yet, so it always signals the prerequisites diagnostic.
func (s *Student) Validate() error {
	return failure.Diagnostic(PrerequisitesMessage)
}

// TakePrerequisites attempts to correct a failed Validate
func (s *Student) TakePrerequisites() bool {
	return false
}

// Graduate checks graduation eligibility. It has no success path: a GPA
// below MinGraduationGPA signals the GPA itself, anything else signals a
// StudentException with GraduationExceptionCode.
func (s *Student) Graduate() error {
	if s.gpa < MinGraduationGPA {
		return failure.LowGPA(s.gpa)
	}
	// TODO: signal failure.MissingCredits once credit tracking exists on Student
	return failure.Student(failure.NewStudentException(GraduationExceptionCode))
}
