package pgraph

import (
	"encoding/json"
	"strings"
)

// parseCommentData extracts the JSON block carried inside an object comment
// between [<token>] and [/<token>] markers. Malformed or absent blocks yield
// nil, never an error: comment metadata is best-effort by contract.
func parseCommentData(comment *string, token string) any {
	if comment == nil || token == "" {
		return nil
	}
	openTag := "[" + token + "]"
	closeTag := "[/" + token + "]"

	start := strings.Index(*comment, openTag)
	if start < 0 {
		return nil
	}
	rest := (*comment)[start+len(openTag):]
	end := strings.Index(rest, closeTag)
	if end < 0 {
		return nil
	}

	var data any
	if err := json.Unmarshal([]byte(strings.TrimSpace(rest[:end])), &data); err != nil {
		return nil
	}
	return data
}
