package diagnostics

import "sort"

// Sink accumulates diagnostics across a single check_file invocation.
// The checker never panics on a semantic problem; it calls Add and
// keeps going, mirroring the teacher's accumulate-then-report checker
// loop.
type Sink struct {
	RunID string
	errs  []GradusError
}

// NewSink creates an empty sink stamped with runID (a uuid.NewString()
// value from the driver).
func NewSink(runID string) *Sink {
	return &Sink{RunID: runID}
}

func (s *Sink) Add(e GradusError) {
	s.errs = append(s.errs, e)
}

// Diagnostics returns all accumulated diagnostics, sorted by source
// position for stable, readable output.
func (s *Sink) Diagnostics() []GradusError {
	out := make([]GradusError, len(s.errs))
	copy(out, s.errs)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Pos(), out[j].Pos()
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Column < pj.Column
	})
	return out
}

// Summary mirrors check.py's errors.num_messages(): total diagnostic
// count and how many are errors (as opposed to, say, a future warning
// kind).
func (s *Sink) Summary() (errorCount, total int) {
	for _, e := range s.errs {
		total++
		if e.Kind() != "warning" {
			errorCount++
		}
	}
	return
}

func (s *Sink) HasErrors() bool {
	errorCount, _ := s.Summary()
	return errorCount > 0
}
