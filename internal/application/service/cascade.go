package service

import (
	"context"
	"fmt"
	"io"

	"github.com/garyjia/gradcheck/internal/application/dispatcher"
	"github.com/garyjia/gradcheck/internal/domain/failure"
	"github.com/garyjia/gradcheck/internal/exitcode"
)

// Clause names of the graduation cascade, in evaluation order
const (
	ClauseLowGPA           = "low-gpa"
	ClauseMissingCredits   = "missing-credits"
	ClauseDiagnostic       = "diagnostic"
	ClauseStudentException = "student-exception"
	ClauseCatchAll         = "catch-all"
)

// NewGraduationCascade builds the fixed cascade for graduation payloads.
// Each clause prints one line to out.
func NewGraduationCascade(out io.Writer, opts ...dispatcher.Option) dispatcher.Cascade {
	c := dispatcher.NewCascade(opts...)

	c.On(failure.KindLowGPA, ClauseLowGPA, exitcode.LowGPA,
		func(ctx context.Context, sig *failure.Signal) error {
			gpa, _ := sig.GPA()
			_, err := fmt.Fprintf(out, "Too low gpa: %s\n", failure.FormatGPA(gpa))
			return err
		})

	c.On(failure.KindMissingCredits, ClauseMissingCredits, exitcode.MissingCredits,
		func(ctx context.Context, sig *failure.Signal) error {
			n, _ := sig.Credits()
			_, err := fmt.Fprintf(out, "Missing %d credits\n", n)
			return err
		})

	c.On(failure.KindDiagnostic, ClauseDiagnostic, exitcode.Diagnostic,
		func(ctx context.Context, sig *failure.Signal) error {
			msg, _ := sig.Message()
			_, err := fmt.Fprintln(out, msg)
			return err
		})

	c.On(failure.KindStudent, ClauseStudentException, exitcode.StudentException,
		func(ctx context.Context, sig *failure.Signal) error {
			e, _ := sig.Exception()
			_, err := fmt.Fprintf(out, "Error: %d\n", e.Num())
			return err
		})

	c.Otherwise(ClauseCatchAll, exitcode.Unknown,
		func(ctx context.Context, sig *failure.Signal) error {
			_, err := fmt.Fprintln(out, "Exiting")
			return err
		})

	return c
}
