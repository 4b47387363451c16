package entity

// Title constants for Person
const (
	TitleMr     = "Mr."
	TitleMs     = "Ms."
	TitleMrs    = "Mrs."
	TitleMiss   = "Miss"
	TitleDoctor = "Dr."
)

// Graduation requirements
const (
	// MinGraduationGPA is the lowest GPA that does not trip the low-GPA check
	MinGraduationGPA float32 = 2.0

	// GraduationExceptionCode is the code carried by the StudentException
	// Graduate raises once the GPA check passes
	GraduationExceptionCode = 5

	// defaultIDOffset is added to the live count to build default student ids
	defaultIDOffset = 100
)

// PrerequisitesMessage is the diagnostic Validate signals
const PrerequisitesMessage = "Student does not meet prerequisites"
