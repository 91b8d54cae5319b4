package sessionstore

import (
	"strings"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

// Masked returns a copy of sess safe to print: tokens are shortened and
// sensitive user fields are replaced. The input is not mutated.
func Masked(sess domain.Session) domain.Session {
	out := sess
	out.Token = maskToken(sess.Token)
	out.AccessToken = maskToken(sess.AccessToken)
	out.RefreshToken = maskToken(sess.RefreshToken)
	out.User = MaskRecord(sess.User)
	return out
}

// MaskRecord masks values whose keys look sensitive, recursing into nested objects.
func MaskRecord(in domain.Record) domain.Record {
	if in == nil {
		return nil
	}
	out := make(domain.Record, len(in))
	for k, v := range in {
		if isSensitiveKey(k) {
			out[k] = maskValue
			continue
		}
		switch t := v.(type) {
		case map[string]any:
			out[k] = map[string]any(MaskRecord(t))
		case domain.Record:
			out[k] = MaskRecord(t)
		default:
			out[k] = v
		}
	}
	return out
}

func maskToken(tok string) string {
	if tok == "" {
		return ""
	}
	if len(tok) <= 12 {
		return maskValue
	}
	return tok[:6] + "…" + maskValue
}

func isSensitiveKey(k string) bool {
	kk := strings.ToLower(strings.TrimSpace(k))
	switch kk {
	case "ssn", "tin", "ein", "tax_id", "business_tin", "business_ein":
		return true
	}
	return strings.Contains(kk, "token") ||
		strings.Contains(kk, "secret") ||
		strings.Contains(kk, "password") ||
		strings.Contains(kk, "api_key") ||
		strings.Contains(kk, "apikey")
}
