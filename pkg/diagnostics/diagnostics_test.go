package diagnostics

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"gradus/pkg/source"
	"gradus/pkg/token"
)

func pos(line, col int) token.Position {
	return token.Position{Line: line, Column: col}
}

func TestRenderPlainCaret(t *testing.T) {
	src := source.NewSourceFile("sample.gr", "sample.gr", "var x: int = \"oops\"\n")
	e := NewTypeError(pos(1, 14), "Incompatible types in assignment (expression has type %q, variable has type %q)", "str", "int")

	var buf bytes.Buffer
	Render(&buf, src, e, ColorNever)
	snaps.MatchSnapshot(t, buf.String())
}

func TestRenderWideRuneCaret(t *testing.T) {
	src := source.NewSourceFile("wide.gr", "wide.gr", "var 日本語 = 1\n")
	e := NewSyntaxError(pos(1, 5), "unexpected identifier")

	var buf bytes.Buffer
	Render(&buf, src, e, ColorNever)
	snaps.MatchSnapshot(t, buf.String())
}

func TestRenderAllSortsByPosition(t *testing.T) {
	src := source.NewSourceFile("multi.gr", "multi.gr", "var a: int = \"x\"\nvar b: str = 1\n")
	sink := NewSink("test-run")
	// Added out of source order; RenderAll must still print line 1 before line 2.
	sink.Add(NewTypeError(pos(2, 14), "Incompatible types in assignment (expression has type %q, variable has type %q)", "int", "str"))
	sink.Add(NewTypeError(pos(1, 14), "Incompatible types in assignment (expression has type %q, variable has type %q)", "str", "int"))

	var buf bytes.Buffer
	RenderAll(&buf, src, sink, ColorNever)
	snaps.MatchSnapshot(t, buf.String())
}

func TestSinkSummaryAndHasErrors(t *testing.T) {
	sink := NewSink("test-run")
	if sink.HasErrors() {
		t.Fatalf("empty sink should not report errors")
	}
	sink.Add(NewSyntaxError(pos(1, 1), "boom"))
	errCount, total := sink.Summary()
	if errCount != 1 || total != 1 {
		t.Fatalf("Summary() = (%d, %d), want (1, 1)", errCount, total)
	}
	if !sink.HasErrors() {
		t.Fatalf("expected HasErrors() after adding a diagnostic")
	}
}

func TestToJSONReport(t *testing.T) {
	sink := NewSink("fixed-run-id")
	sink.Add(NewDuplicateInterface(pos(3, 7), "Speaker"))
	sink.Add(NewIncompatibleValueCount(pos(5, 1), 2, 3))

	out, err := sink.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	snaps.MatchJSON(t, out)
}

func TestFilterReportByKind(t *testing.T) {
	sink := NewSink("fixed-run-id")
	sink.Add(NewDuplicateInterface(pos(3, 7), "Speaker"))
	sink.Add(NewIncompatibleValueCount(pos(5, 1), 2, 3))
	sink.Add(NewSyntaxError(pos(1, 1), "boom"))

	report, err := sink.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	filtered := FilterReportByKind(report, "class")
	snaps.MatchJSON(t, filtered)
}

func TestFilterReportByKindNoMatches(t *testing.T) {
	sink := NewSink("fixed-run-id")
	sink.Add(NewSyntaxError(pos(1, 1), "boom"))

	report, err := sink.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	filtered := FilterReportByKind(report, "class")
	if string(filtered) != "[]" {
		t.Fatalf("filtered = %q, want []", filtered)
	}
}
