package diagnostics

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Report is the JSON shape emitted by `gradus check --json`.
type Report struct {
	RunID       string       `json:"run_id"`
	Diagnostics []reportItem `json:"diagnostics"`
}

type reportItem struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ToJSON marshals the sink's diagnostics into a Report.
func (s *Sink) ToJSON() ([]byte, error) {
	r := Report{RunID: s.RunID}
	for _, e := range s.Diagnostics() {
		pos := e.Pos()
		r.Diagnostics = append(r.Diagnostics, reportItem{
			Line:    pos.Line,
			Column:  pos.Column,
			Kind:    e.Kind(),
			Message: e.Message(),
		})
	}
	return json.Marshal(r)
}

// FilterReportByKind re-shapes a previously emitted `-json` report,
// returning only the diagnostic objects whose "kind" field matches
// kind. It reads the raw report with gjson rather than round-tripping
// through Report, since `dump-types` only needs to re-slice a field
// it didn't produce.
func FilterReportByKind(reportJSON []byte, kind string) []byte {
	diags := gjson.GetBytes(reportJSON, "diagnostics")
	var kept []gjson.Result
	diags.ForEach(func(_, item gjson.Result) bool {
		if item.Get("kind").String() == kind {
			kept = append(kept, item)
		}
		return true
	})

	raws := make([]string, len(kept))
	for i, item := range kept {
		raws[i] = item.Raw
	}
	out := "[" + joinRaw(raws) + "]"
	return []byte(out)
}

func joinRaw(items []string) string {
	if len(items) == 0 {
		return ""
	}
	out := items[0]
	for _, s := range items[1:] {
		out += "," + s
	}
	return out
}
