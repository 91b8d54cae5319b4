package domain

import "strings"

// Record is one JSON object returned by the backend. Its shape is owned by the server.
type Record map[string]any

// APIDomain groups endpoints by their first path segment.
type APIDomain string

const (
	DomainAuth        APIDomain = "auth"
	DomainBusiness    APIDomain = "business"
	DomainDDEX        APIDomain = "ddex"
	DomainSponsorship APIDomain = "sponsorship"
	DomainTax         APIDomain = "tax"
	DomainIndustry    APIDomain = "industry"
	DomainPayments    APIDomain = "payments"
	DomainLicensing   APIDomain = "licensing"
	DomainGS1         APIDomain = "gs1"
)

// FieldKind decides how a form value is validated and transformed before submit.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldEmail    FieldKind = "email"
	FieldPassword FieldKind = "password"
	FieldDate     FieldKind = "date"
	FieldNumber   FieldKind = "number"
	FieldBool     FieldKind = "bool"
	FieldSelect   FieldKind = "select"
	FieldFile     FieldKind = "file"
)

// Field describes one input of a write view.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Options  []string // FieldSelect only
	Pattern  string   // optional regexp the raw value must match
	Hint     string
}

// Column describes one table column of a read view.
// Path is a JSONPath evaluated against a single record.
type Column struct {
	Title string
	Path  string
	Width int
}

// Resource is a catalog entry: one family of endpoints and how to view/edit it.
type Resource struct {
	Name   string
	Domain APIDomain
	Title  string

	ListPath   string
	ItemPath   string // may contain {{id}}
	CreatePath string
	UpdatePath string // may contain {{id}}
	DeletePath string // may contain {{id}}

	// ListKey is a JSONPath to the array inside a list response.
	// Empty means the body itself is the array.
	ListKey  string
	Pageable bool
	Filters  []string

	Columns []Column
	Fields  []Field
}

func (r Resource) CanList() bool   { return r.ListPath != "" }
func (r Resource) CanShow() bool   { return r.ItemPath != "" }
func (r Resource) CanCreate() bool { return r.CreatePath != "" }
func (r Resource) CanUpdate() bool { return r.UpdatePath != "" }
func (r Resource) CanDelete() bool { return r.DeletePath != "" }

// Multipart reports whether submissions must be sent as multipart/form-data.
func (r Resource) Multipart() bool {
	for _, f := range r.Fields {
		if f.Kind == FieldFile {
			return true
		}
	}
	return false
}

// Field returns the field definition by name.
func (r Resource) Field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// AllowsFilter reports whether key is a declared list filter.
func (r Resource) AllowsFilter(key string) bool {
	for _, f := range r.Filters {
		if strings.EqualFold(f, key) {
			return true
		}
	}
	return false
}

// Operation is a write-view mode.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)
