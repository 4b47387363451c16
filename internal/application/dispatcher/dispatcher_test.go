package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/gradcheck/internal/domain/failure"
)

// mockLogger implements Logger for testing
type mockLogger struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, msg)
}

func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

func (m *mockLogger) ErrorCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.errors)
}

func (m *mockLogger) HasInfo(msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, info := range m.infos {
		if info == msg {
			return true
		}
	}
	return false
}

// recorder builds handlers that append their clause name when run
type recorder struct {
	ran []string
}

func (r *recorder) handler(name string) Handler {
	return func(ctx context.Context, sig *failure.Signal) error {
		r.ran = append(r.ran, name)
		return nil
	}
}

func newFullCascade(rec *recorder, opts ...Option) Cascade {
	c := NewCascade(opts...)
	c.On(failure.KindLowGPA, "gpa", 1, rec.handler("gpa"))
	c.On(failure.KindMissingCredits, "credits", 2, rec.handler("credits"))
	c.On(failure.KindDiagnostic, "diagnostic", 4, rec.handler("diagnostic"))
	c.On(failure.KindStudent, "student", 5, rec.handler("student"))
	c.Otherwise("catch-all", 6, rec.handler("catch-all"))
	return c
}

func TestDispatchSelectsClauseByKind(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantClause string
		wantExit   int
	}{
		{name: "gpa payload", err: failure.LowGPA(1.5), wantClause: "gpa", wantExit: 1},
		{name: "credit payload", err: failure.MissingCredits(3), wantClause: "credits", wantExit: 2},
		{name: "text payload", err: failure.Diagnostic("no"), wantClause: "diagnostic", wantExit: 4},
		{name: "student payload", err: failure.Student(failure.NewStudentException(5)), wantClause: "student", wantExit: 5},
		{name: "unlisted numeric payload", err: failure.Raise(2.5), wantClause: "catch-all", wantExit: 6},
		{name: "plain error", err: errors.New("disk on fire"), wantClause: "catch-all", wantExit: 6},
		{name: "wrapped payload", err: fmt.Errorf("graduate: %w", failure.LowGPA(1.0)), wantClause: "gpa", wantExit: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			c := newFullCascade(rec)

			outcome, err := c.Dispatch(context.Background(), tt.err)
			require.NoError(t, err)

			assert.True(t, outcome.Handled)
			assert.Equal(t, tt.wantClause, outcome.Clause)
			assert.Equal(t, tt.wantExit, outcome.ExitCode)
			assert.Equal(t, []string{tt.wantClause}, rec.ran, "exactly one clause runs")
		})
	}
}

func TestDispatchDeclarationOrderWins(t *testing.T) {
	t.Run("specific clause beats catch-all", func(t *testing.T) {
		rec := &recorder{}
		c := NewCascade()
		c.Otherwise("catch-all", 6, rec.handler("catch-all"))
		c.On(failure.KindStudent, "student", 5, rec.handler("student"))

		outcome, err := c.Dispatch(context.Background(), failure.Student(failure.NewStudentException(5)))
		require.NoError(t, err)
		assert.Equal(t, "student", outcome.Clause)
		assert.Equal(t, []string{"student"}, rec.ran)
	})

	t.Run("first of two matching clauses wins", func(t *testing.T) {
		rec := &recorder{}
		c := NewCascade()
		c.On(failure.KindStructured, "structured", 7, rec.handler("structured"))
		c.On(failure.KindStudent, "student", 5, rec.handler("student"))

		outcome, err := c.Dispatch(context.Background(), failure.Student(failure.NewStudentException(5)))
		require.NoError(t, err)
		assert.Equal(t, "structured", outcome.Clause)
		assert.Equal(t, 7, outcome.ExitCode)
		assert.Equal(t, []string{"structured"}, rec.ran)
	})

	t.Run("ancestor clause does not catch unrelated kinds", func(t *testing.T) {
		rec := &recorder{}
		c := NewCascade()
		c.On(failure.KindStructured, "structured", 7, rec.handler("structured"))
		c.Otherwise("catch-all", 6, rec.handler("catch-all"))

		outcome, err := c.Dispatch(context.Background(), failure.LowGPA(1.0))
		require.NoError(t, err)
		assert.Equal(t, "catch-all", outcome.Clause)
	})
}

func TestDispatchWithoutCatchAll(t *testing.T) {
	logger := &mockLogger{}
	rec := &recorder{}
	c := NewCascade(WithLogger(logger))
	c.On(failure.KindLowGPA, "gpa", 1, rec.handler("gpa"))

	outcome, err := c.Dispatch(context.Background(), failure.MissingCredits(2))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnhandled)
	assert.False(t, outcome.Handled)
	assert.NotNil(t, outcome.Signal)
	assert.Empty(t, rec.ran)
	assert.Equal(t, 1, logger.ErrorCount())
}

func TestDispatchNilError(t *testing.T) {
	rec := &recorder{}
	c := newFullCascade(rec)

	outcome, err := c.Dispatch(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, outcome.Handled)
	assert.Empty(t, rec.ran)
}

func TestDispatchHandlerFailures(t *testing.T) {
	t.Run("returns handler error with outcome", func(t *testing.T) {
		expectedErr := errors.New("handler error")
		c := NewCascade()
		c.On(failure.KindLowGPA, "gpa", 1, func(ctx context.Context, sig *failure.Signal) error {
			return expectedErr
		})

		outcome, err := c.Dispatch(context.Background(), failure.LowGPA(1.0))
		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.Equal(t, 1, outcome.ExitCode)
	})

	t.Run("recovers from handler panic", func(t *testing.T) {
		logger := &mockLogger{}
		c := NewCascade(WithLogger(logger))
		c.On(failure.KindLowGPA, "gpa", 1, func(ctx context.Context, sig *failure.Signal) error {
			panic("test panic")
		})

		outcome, err := c.Dispatch(context.Background(), failure.LowGPA(1.0))
		require.Error(t, err)
		assert.True(t, outcome.Handled)
		assert.Greater(t, logger.ErrorCount(), 0, "expected panic to be logged as error")
	})
}

func TestListClauses(t *testing.T) {
	logger := &mockLogger{}
	c := newFullCascade(&recorder{}, WithLogger(logger))

	clauses := c.ListClauses()
	require.Len(t, clauses, 5)

	names := make([]string, 0, len(clauses))
	for _, info := range clauses {
		names = append(names, info.Name)
		assert.Nil(t, info.Handler, "expected handler function not to be exposed")
	}
	assert.Equal(t, []string{"gpa", "credits", "diagnostic", "student", "catch-all"}, names)
	assert.True(t, clauses[4].CatchAll)
	assert.True(t, logger.HasInfo("Clause registered"))
	assert.True(t, logger.HasInfo("Catch-all registered"))
}

func TestDispatchMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newFullCascade(&recorder{}, WithMetrics(reg))

	for i := 0; i < 2; i++ {
		_, err := c.Dispatch(context.Background(), failure.LowGPA(1.0))
		require.NoError(t, err)
	}
	_, err := c.Dispatch(context.Background(), failure.Raise(int64(9)))
	require.NoError(t, err)

	impl := c.(*cascade)
	assert.Equal(t, 2.0, testutil.ToFloat64(impl.metrics.clauseTotal.WithLabelValues("gpa", "low_gpa")))
	assert.Equal(t, 1.0, testutil.ToFloat64(impl.metrics.clauseTotal.WithLabelValues("catch-all", "unknown")))

	bare := NewCascade(WithMetrics(prometheus.NewRegistry()))
	_, err = bare.Dispatch(context.Background(), failure.LowGPA(1.0))
	require.ErrorIs(t, err, ErrUnhandled)
	assert.Equal(t, 1.0, testutil.ToFloat64(bare.(*cascade).metrics.unhandledTotal))
}
