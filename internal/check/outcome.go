package check

import "fmt"

// Verdict is the result of a single check.
type Verdict string

const (
	Pass Verdict = "pass"
	Fail Verdict = "fail"
)

// ReasonKind tags the reason of a failed check.
type ReasonKind string

const (
	ReasonNone             ReasonKind = ""
	ReasonNetwork          ReasonKind = "network"
	ReasonStatus           ReasonKind = "status"
	ReasonContent          ReasonKind = "content"
	ReasonContentType      ReasonKind = "content-type"
	ReasonContentLength    ReasonKind = "content-length"
	ReasonMissingHeader    ReasonKind = "missing-header"
	ReasonHeaderValue      ReasonKind = "header-value"
	ReasonMissingSubstring ReasonKind = "missing-substring"
	ReasonSecurity         ReasonKind = "security"
	ReasonTestError        ReasonKind = "test-error"
)

// Outcome is produced by exactly one test case. Reason is set iff the verdict
// is Fail. Note carries optional context for passed checks.
type Outcome struct {
	Verdict Verdict    `json:"verdict"`
	Name    string     `json:"name"`
	Group   string     `json:"group,omitempty"`
	Reason  string     `json:"reason,omitempty"`
	Kind    ReasonKind `json:"kind,omitempty"`
	Note    string     `json:"note,omitempty"`
}

func Passed() Outcome {
	return Outcome{Verdict: Pass}
}

func PassedWithNote(note string) Outcome {
	return Outcome{Verdict: Pass, Note: note}
}

func Failed(kind ReasonKind, format string, args ...any) Outcome {
	return Outcome{
		Verdict: Fail,
		Kind:    kind,
		Reason:  fmt.Sprintf(format, args...),
	}
}

func (o Outcome) IsPassed() bool {
	return o.Verdict == Pass
}
