package columns

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

var errNotJSON = errors.New("response body is not valid JSON")

// Records returns the list found at listKey (a JSONPath), or the body itself when it is an array.
// An object body without the key yields an empty list.
// Records are returned as decoded, untouched. Non-object entries are wrapped as {"value": v}.
func Records(body []byte, listKey string) ([]domain.Record, error) {
	doc, err := parseJSON(body)
	if err != nil {
		return nil, decodeErr("columns.records", listKey, err)
	}

	list := doc
	if key := strings.TrimSpace(listKey); key != "" {
		if _, isArray := doc.([]any); !isArray {
			list, err = jsonpath.Get(key, doc)
			switch {
			case err != nil && missingKey(doc, err):
				list = nil
			case err != nil:
				return nil, decodeErr("columns.records", key, fmt.Errorf("list not found: %w", err))
			}
		}
	}

	if list == nil {
		return []domain.Record{}, nil
	}
	arr, ok := list.([]any)
	if !ok {
		return nil, decodeErr("columns.records", listKey, fmt.Errorf("expected an array, got %T", list))
	}

	out := make([]domain.Record, 0, len(arr))
	for _, it := range arr {
		if m, ok := it.(map[string]any); ok {
			out = append(out, domain.Record(m))
			continue
		}
		out = append(out, domain.Record{"value": it})
	}
	return out, nil
}

func missingKey(doc any, err error) bool {
	if _, ok := doc.(map[string]any); !ok {
		return false
	}
	return strings.HasPrefix(err.Error(), "unknown key")
}

// Item decodes a single-record response.
func Item(body []byte) (domain.Record, error) {
	doc, err := parseJSON(body)
	if err != nil {
		return nil, decodeErr("columns.item", "", err)
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, decodeErr("columns.item", "", fmt.Errorf("expected an object, got %T", doc))
	}
	return domain.Record(m), nil
}

// PageMeta fills paging totals from "total", "total_pages"/"pages" and "page" when the body has them.
func PageMeta(body []byte, requested domain.Page, count int) domain.Page {
	p := domain.Page{Number: requested.Number, Size: requested.Size, Count: count}

	doc, err := parseJSON(body)
	if err != nil {
		return p
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return p
	}

	if n, ok := intAt(obj, "$.total"); ok {
		p.Total, p.Known = n, true
	}
	for _, key := range []string{"$.total_pages", "$.pages"} {
		if n, ok := intAt(obj, key); ok {
			p.TotalPages, p.Known = n, true
			break
		}
	}
	if n, ok := intAt(obj, "$.page"); ok && n > 0 {
		p.Number = n
	}
	return p
}

// Cell renders the value at a column path for display. Missing values render empty.
func Cell(rec domain.Record, path string) string {
	if rec == nil || strings.TrimSpace(path) == "" {
		return ""
	}
	val, err := jsonpath.Get(path, map[string]any(rec))
	if err != nil || isEmptyValue(val) {
		return ""
	}
	s, err := toString(val)
	if err != nil {
		return ""
	}
	return s
}

// Row renders one record across cols.
func Row(rec domain.Record, cols []domain.Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = Cell(rec, c.Path)
	}
	return out
}

// For returns cols, or columns inferred from the first record when none are declared.
func For(cols []domain.Column, recs []domain.Record) []domain.Column {
	if len(cols) > 0 || len(recs) == 0 {
		return cols
	}
	return Infer(recs[0])
}

// Infer builds one column per top-level scalar key of rec, sorted by key.
func Infer(rec domain.Record) []domain.Column {
	keys := make([]string, 0, len(rec))
	for k, v := range rec {
		switch v.(type) {
		case map[string]any, []any:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cols := make([]domain.Column, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, domain.Column{Title: k, Path: "$[" + strconv.Quote(k) + "]"})
	}
	return cols
}

// Text renders a decoded JSON value for display. Objects and arrays become compact JSON.
func Text(v any) string {
	if v == nil {
		return ""
	}
	if _, ok := v.([]any); ok {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
	s, err := toString(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// Titles returns the column headers.
func Titles(cols []domain.Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Title
	}
	return out
}

func parseJSON(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, errNotJSON
	}
	return doc, nil
}

func intAt(doc map[string]any, path string) (int, bool) {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return int(t), t >= 0
	case string:
		n, err := strconv.Atoi(t)
		return n, err == nil && n >= 0
	}
	return 0, false
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) (string, error) {
	if arr, ok := v.([]any); ok && len(arr) == 1 {
		return toString(arr[0])
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func decodeErr(op, path string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindAPI,
		Path: path,
		Err:  err,
	}
}
