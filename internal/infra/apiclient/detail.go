package apiclient

import (
	"encoding/json"
	"strings"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

// DecodeDetail extracts the error text from a non-2xx body.
// "detail" may be a string or a list of validation entries with "msg";
// anything else yields domain.FallbackMessage.
func DecodeDetail(body []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Detail) == 0 {
		return domain.FallbackMessage
	}

	var s string
	if err := json.Unmarshal(env.Detail, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return domain.FallbackMessage
		}
		return s
	}

	var items []json.RawMessage
	if err := json.Unmarshal(env.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			var entry struct {
				Msg string `json:"msg"`
			}
			if json.Unmarshal(it, &entry) == nil && entry.Msg != "" {
				msgs = append(msgs, entry.Msg)
				continue
			}
			var plain string
			if json.Unmarshal(it, &plain) == nil && plain != "" {
				msgs = append(msgs, plain)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	return domain.FallbackMessage
}
