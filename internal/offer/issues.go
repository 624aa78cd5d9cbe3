package offer

import "fmt"

// RenderIssue records one contained failure during document assembly.
// Issues never abort a run; they surface in the result so callers can
// log or display them.
type RenderIssue struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func (i RenderIssue) String() string {
	return i.Stage + ": " + i.Message
}

type issueList struct {
	issues []RenderIssue
}

func (l *issueList) add(stage, format string, args ...any) {
	l.issues = append(l.issues, RenderIssue{Stage: stage, Message: fmt.Sprintf(format, args...)})
}
