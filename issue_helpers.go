package bylawkit

import (
	"fmt"
	"strings"

	"github.com/reoring/bylawkit/i18n"
)

// IssueAt creates an Issue at p with an explicit message.
func IssueAt(p PathRef, code, msg string, params map[string]any) Issue {
	return Issue{Path: p.String(), Code: code, Message: msg, Params: params}
}

// NewIssue creates an Issue at p whose message comes from the active i18n
// catalogue, interpolated with params.
func NewIssue(p PathRef, code string, params map[string]any) Issue {
	return IssueAt(p, code, i18n.T(code, messageData(params)), params)
}

// messageData flattens params into the string map the catalogue expects.
// Lists are joined with ", ".
func messageData(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		switch t := v.(type) {
		case string:
			out[k] = t
		case []string:
			out[k] = strings.Join(t, ", ")
		default:
			out[k] = fmt.Sprint(t)
		}
	}
	return out
}
