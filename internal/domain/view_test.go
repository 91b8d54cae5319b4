package domain

import (
	"errors"
	"testing"
)

func TestViewState_LoadingThenReady(t *testing.T) {
	var v ViewState
	if v.Status != "" && v.Status != StatusIdle {
		t.Fatalf("unexpected initial status %q", v.Status)
	}

	seq := v.Begin()
	if v.Status != StatusLoading {
		t.Fatalf("expected loading, got %q", v.Status)
	}

	recs := []Record{{"id": "1", "title": "Song"}}
	if !v.Resolve(seq, recs, Page{Number: 1, Size: 20, Count: 1}) {
		t.Fatalf("expected current seq to resolve")
	}
	if v.Status != StatusReady {
		t.Fatalf("expected ready, got %q", v.Status)
	}
	if v.Records[0]["title"] != "Song" {
		t.Fatalf("expected records verbatim, got %#v", v.Records)
	}
}

func TestViewState_DropsStaleResult(t *testing.T) {
	var v ViewState
	old := v.Begin()
	cur := v.Begin()

	if v.Resolve(old, []Record{{"id": "stale"}}, Page{}) {
		t.Fatalf("expected stale result to be dropped")
	}
	if v.Fail(old, errors.New("late")) {
		t.Fatalf("expected stale failure to be dropped")
	}
	if v.Status != StatusLoading {
		t.Fatalf("expected still loading, got %q", v.Status)
	}
	if !v.Fail(cur, &APIError{Status: 404, Detail: "Deal not found"}) {
		t.Fatalf("expected current failure to apply")
	}
	if v.Err != "Deal not found" {
		t.Fatalf("expected detail, got %q", v.Err)
	}
}

func TestViewState_FailFallback(t *testing.T) {
	var v ViewState
	seq := v.Begin()
	v.Fail(seq, &APIError{Status: 500})
	if v.Status != StatusFailed || v.Err != FallbackMessage {
		t.Fatalf("expected failed with fallback, got %q %q", v.Status, v.Err)
	}
}

func TestFormState_SubmittingGuard(t *testing.T) {
	f := NewFormState([]Field{{Name: "title"}})
	f.Values["title"] = "Track"

	if !f.BeginSubmit() {
		t.Fatalf("expected first submit to start")
	}
	if f.BeginSubmit() {
		t.Fatalf("expected second submit to be refused while in flight")
	}

	f.Succeed("Created", true)
	if f.Submitting || f.Success != "Created" {
		t.Fatalf("unexpected state %+v", f)
	}
	if f.Values["title"] != "" {
		t.Fatalf("expected values reset, got %q", f.Values["title"])
	}
}

func TestFormState_FailKeepsValues(t *testing.T) {
	f := NewFormState([]Field{{Name: "title"}})
	f.Values["title"] = "Track"
	f.BeginSubmit()
	f.Fail(&APIError{Status: 400, Detail: "ISRC already registered"})

	if f.Err != "ISRC already registered" {
		t.Fatalf("expected detail, got %q", f.Err)
	}
	if f.Values["title"] != "Track" {
		t.Fatalf("expected values kept")
	}
}
