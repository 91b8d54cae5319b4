package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/ports"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/usecase/columns"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/usecase/validate"
)

// SubmitForm sends a write view: validate, transform, then exactly one call.
// Identical submissions in flight at the same time share one call.
type SubmitForm struct {
	api    ports.APICaller
	flight singleflight.Group
}

func NewSubmitForm(api ports.APICaller) *SubmitForm {
	return &SubmitForm{api: api}
}

// SubmitResult is what a write view shows after a successful call.
type SubmitResult struct {
	Message string
	Record  domain.Record
	// Shared is set when this caller joined a submission already in flight.
	Shared bool
}

// Execute submits values for op. Updates are partial: required fields may be left blank.
func (uc *SubmitForm) Execute(ctx context.Context, res domain.Resource, op domain.Operation, id string, values map[string]string) (SubmitResult, error) {
	var tmpl string
	switch op {
	case domain.OpCreate:
		if !res.CanCreate() {
			return SubmitResult{}, notSupported("form.submit", res, "create")
		}
		tmpl = res.CreatePath
	case domain.OpUpdate:
		if !res.CanUpdate() {
			return SubmitResult{}, notSupported("form.submit", res, "update")
		}
		tmpl = res.UpdatePath
	default:
		return SubmitResult{}, notSupported("form.submit", res, string(op))
	}

	path, err := domain.ExpandPath(tmpl, domain.PathVars{"id": id})
	if err != nil {
		return SubmitResult{}, err
	}

	if err := validate.Form(res.Fields, values, op == domain.OpUpdate); err != nil {
		return SubmitResult{}, err
	}

	payload, err := domain.TransformForm(res.Fields, values)
	if err != nil {
		return SubmitResult{}, err
	}
	call := domain.WriteCall(op, path, payload)

	v, err, shared := uc.flight.Do(flightKey(call), func() (any, error) {
		return uc.api.Do(ctx, call)
	})
	if err != nil {
		return SubmitResult{}, err
	}
	resp := v.(domain.Response)

	out := SubmitResult{Message: successMessage(resp.Body, op), Shared: shared}
	if rec, err := columns.Item(resp.Body); err == nil {
		out.Record = rec
	}
	return out, nil
}

// Delete issues one DELETE for the record id.
func (uc *SubmitForm) Delete(ctx context.Context, res domain.Resource, id string) (SubmitResult, error) {
	if !res.CanDelete() {
		return SubmitResult{}, notSupported("form.delete", res, "delete")
	}
	path, err := domain.ExpandPath(res.DeletePath, domain.PathVars{"id": id})
	if err != nil {
		return SubmitResult{}, err
	}

	call := domain.Call{Method: http.MethodDelete, Path: path}
	v, err, shared := uc.flight.Do(flightKey(call), func() (any, error) {
		return uc.api.Do(ctx, call)
	})
	if err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{Message: successMessage(v.(domain.Response).Body, domain.OpDelete), Shared: shared}, nil
}

func successMessage(body []byte, op domain.Operation) string {
	var env struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &env) == nil && strings.TrimSpace(env.Message) != "" {
		return env.Message
	}
	switch op {
	case domain.OpUpdate:
		return "Updated successfully."
	case domain.OpDelete:
		return "Deleted successfully."
	default:
		return "Created successfully."
	}
}

// flightKey identifies a submission by method, path and body.
// encoding/json sorts map keys, so equal payloads produce equal keys.
func flightKey(c domain.Call) string {
	var b strings.Builder
	b.WriteString(c.Method)
	b.WriteByte(' ')
	b.WriteString(c.Path)
	if c.JSON != nil {
		js, _ := json.Marshal(c.JSON)
		b.WriteByte(' ')
		b.Write(js)
	}
	if len(c.Files) > 0 {
		names := make([]string, 0, len(c.Files))
		for k, v := range c.Files {
			names = append(names, k+"="+v)
		}
		sort.Strings(names)
		b.WriteByte(' ')
		b.WriteString(strings.Join(names, ","))
	}
	return b.String()
}
