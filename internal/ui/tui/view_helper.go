package tui

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/usecase/columns"
)

// errorText renders an error message in full, wrapped to the terminal width when it is known.
func errorText(t Theme, msg string, width int) string {
	if width > 8 {
		return t.Error.Width(width - 8).Render(msg)
	}
	return t.Error.Render(msg)
}

func filterLabel(filters map[string]string) string {
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + filters[k]
	}
	return strings.Join(parts, ", ")
}

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func textOf(v any) string {
	return columns.Text(v)
}

// recordID returns the identifier used in item paths.
func recordID(rec domain.Record) string {
	for _, k := range []string{"id", "_id", "uuid"} {
		if s := textOf(rec[k]); s != "" {
			return s
		}
	}
	return ""
}

// renderRecord lists every field of rec as "key  value", keys sorted.
func renderRecord(rec domain.Record, t Theme, width int) string {
	if len(rec) == 0 {
		return t.Help.Render("(empty)")
	}

	keys := make([]string, 0, len(rec))
	keyW := 0
	for k := range rec {
		keys = append(keys, k)
		if n := utf8.RuneCountInString(k); n > keyW {
			keyW = n
		}
	}
	sort.Strings(keys)

	valW := width - keyW - 10
	if valW < 20 {
		valW = 20
	}

	var b strings.Builder
	for _, k := range keys {
		pad := strings.Repeat(" ", keyW-utf8.RuneCountInString(k))
		b.WriteString(t.Label.Render(k + pad))
		b.WriteString("  ")
		b.WriteString(clampString(textOf(rec[k]), valW))
		b.WriteString("\n")
	}
	return b.String()
}
