// Package exitcode lists the process exit codes gradcheck can end with.
package exitcode

// Exit codes for each cascade clause and the terminate guard
const (
	Success          = 0 // Graduate returned without signaling
	LowGPA           = 1 // GPA below the graduation threshold
	MissingCredits   = 2 // Student is short on credits
	Diagnostic       = 4 // Raw diagnostic message
	StudentException = 5 // Structured StudentException
	Unknown          = 6 // Payload of a kind no clause names
	Uncaught         = 1 // Payload escaped every cascade
	Setup            = 3 // Configuration or logger could not be initialized
)
