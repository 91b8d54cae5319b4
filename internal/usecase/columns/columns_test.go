package columns

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

func TestRecords_FromListKey(t *testing.T) {
	body := []byte(`{"licenses":[{"id":"l1","license_fee":1500,"territory":"US"},{"id":"l2","exclusive":true}],"total":2}`)

	got, err := Records(body, "$.licenses")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.Record{
		{"id": "l1", "license_fee": 1500.0, "territory": "US"},
		{"id": "l2", "exclusive": true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestRecords_BareArray(t *testing.T) {
	got, err := Records([]byte(`[{"id":"a"},"loose"]`), "$.ignored")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0]["id"] != "a" || got[1]["value"] != "loose" {
		t.Fatalf("unexpected records %#v", got)
	}
}

func TestRecords_NullList(t *testing.T) {
	got, err := Records([]byte(`{"deals":null}`), "$.deals")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}

func TestRecords_MissingKeyIsEmpty(t *testing.T) {
	got, err := Records([]byte(`{"total":0}`), "$.products")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected an empty list, got %#v", got)
	}
}

func TestRecords_Errors(t *testing.T) {
	cases := []struct {
		name string
		body string
		key  string
	}{
		{"not json", `<html>`, "$.x"},
		{"not array", `{"deals":{"id":1}}`, "$.deals"},
		{"object without key", `{"id":1}`, ""},
	}
	for _, c := range cases {
		_, err := Records([]byte(c.body), c.key)
		if err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
		if !domain.IsKind(err, domain.KindAPI) {
			t.Fatalf("%s: expected api kind, got %v", c.name, err)
		}
	}
}

func TestItem(t *testing.T) {
	rec, err := Item([]byte(`{"id":"m1","status":"sent"}`))
	if err != nil || rec["status"] != "sent" {
		t.Fatalf("unexpected item %#v %v", rec, err)
	}
	if _, err := Item([]byte(`[1,2]`)); err == nil {
		t.Fatalf("expected error for array body")
	}
}

func TestPageMeta(t *testing.T) {
	req := domain.Page{Number: 2, Size: 20}

	p := PageMeta([]byte(`{"items":[],"total":45,"pages":3,"page":2}`), req, 20)
	if !p.Known || p.Total != 45 || p.TotalPages != 3 || p.Number != 2 || p.Count != 20 {
		t.Fatalf("unexpected page %+v", p)
	}

	p = PageMeta([]byte(`{"items":[]}`), req, 7)
	if p.Known || p.Number != 2 || p.Count != 7 {
		t.Fatalf("expected unknown totals, got %+v", p)
	}
	if p.HasNext() {
		t.Fatalf("expected short page without totals to disable next")
	}

	p = PageMeta([]byte(`[{"id":1}]`), req, 1)
	if p.Known {
		t.Fatalf("expected array body to carry no totals")
	}
}

func TestCellAndRow(t *testing.T) {
	rec := domain.Record{
		"id":      "p1",
		"gtin":    "00012345678905",
		"price":   19.99,
		"active":  false,
		"tags":    []any{"single"},
		"artist":  map[string]any{"name": "Big Mann"},
		"missing": nil,
	}
	cols := []domain.Column{
		{Title: "ID", Path: "$.id"},
		{Title: "Price", Path: "$.price"},
		{Title: "Active", Path: "$.active"},
		{Title: "Tag", Path: "$.tags"},
		{Title: "Artist", Path: "$.artist.name"},
		{Title: "Missing", Path: "$.missing"},
		{Title: "Absent", Path: "$.nope"},
	}
	want := []string{"p1", "19.99", "false", "single", "Big Mann", "", ""}
	if diff := cmp.Diff(want, Row(rec, cols)); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ID", "Price", "Active", "Tag", "Artist", "Missing", "Absent"}, Titles(cols)); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}
}

func TestInfer_SkipsNestedAndSorts(t *testing.T) {
	cols := Infer(domain.Record{"b": 1.0, "a": "x", "list": []any{1.0}, "obj": map[string]any{}})
	if len(cols) != 2 || cols[0].Title != "a" || cols[1].Title != "b" {
		t.Fatalf("unexpected columns %+v", cols)
	}
	if got := Cell(domain.Record{"a": "x"}, cols[0].Path); got != "x" {
		t.Fatalf("inferred path did not resolve, got %q", got)
	}
}

func TestFor_PrefersDeclared(t *testing.T) {
	declared := []domain.Column{{Title: "ID", Path: "$.id"}}
	if got := For(declared, []domain.Record{{"x": 1.0}}); len(got) != 1 || got[0].Title != "ID" {
		t.Fatalf("expected declared columns, got %+v", got)
	}
	if got := For(nil, nil); len(got) != 0 {
		t.Fatalf("expected no columns, got %+v", got)
	}
}

func TestText(t *testing.T) {
	cases := map[string]any{
		"":            nil,
		"Night Drive": "Night Drive",
		"1500":        1500.0,
		"true":        true,
		`{"k":"v"}`:   map[string]any{"k": "v"},
		`["US","CA"]`: []any{"US", "CA"},
	}
	for want, in := range cases {
		if got := Text(in); got != want {
			t.Errorf("Text(%v) = %q, want %q", in, got, want)
		}
	}
}
