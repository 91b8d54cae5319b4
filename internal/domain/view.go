package domain

// ViewStatus is the lifecycle of a read view.
type ViewStatus string

const (
	StatusIdle    ViewStatus = "idle"
	StatusLoading ViewStatus = "loading"
	StatusReady   ViewStatus = "ready"
	StatusFailed  ViewStatus = "failed"
)

// ViewState holds what a read view renders. Seq identifies the latest request;
// results carrying an older Seq are ignored.
type ViewState struct {
	Status  ViewStatus
	Records []Record
	Item    Record
	Page    Page
	Err     string
	Seq     uint64
}

// Begin moves the view to loading and returns the sequence number of the new request.
// Records from the previous load stay visible until the new result lands.
func (v *ViewState) Begin() uint64 {
	v.Seq++
	v.Status = StatusLoading
	v.Err = ""
	return v.Seq
}

// Resolve stores a list result. It returns false for a stale seq.
func (v *ViewState) Resolve(seq uint64, records []Record, page Page) bool {
	if seq != v.Seq {
		return false
	}
	v.Status = StatusReady
	v.Records = records
	v.Item = nil
	v.Page = page
	v.Err = ""
	return true
}

// ResolveItem stores a single-record result. It returns false for a stale seq.
func (v *ViewState) ResolveItem(seq uint64, item Record) bool {
	if seq != v.Seq {
		return false
	}
	v.Status = StatusReady
	v.Item = item
	v.Records = nil
	v.Err = ""
	return true
}

// Fail stores the message for a failed load. It returns false for a stale seq.
func (v *ViewState) Fail(seq uint64, err error) bool {
	if seq != v.Seq {
		return false
	}
	v.Status = StatusFailed
	v.Err = Message(err)
	return true
}

func (v ViewState) Loading() bool { return v.Status == StatusLoading }

// FormState holds what a write view renders.
type FormState struct {
	Values     map[string]string
	Submitting bool
	Success    string
	Err        string
}

// NewFormState returns an empty form with a value slot per field.
func NewFormState(fields []Field) FormState {
	vals := make(map[string]string, len(fields))
	for _, f := range fields {
		vals[f.Name] = ""
	}
	return FormState{Values: vals}
}

// BeginSubmit marks the form as submitting. It returns false while a submission is in flight.
func (f *FormState) BeginSubmit() bool {
	if f.Submitting {
		return false
	}
	f.Submitting = true
	f.Success = ""
	f.Err = ""
	return true
}

// Succeed records a successful submission; reset clears the entered values.
func (f *FormState) Succeed(msg string, reset bool) {
	f.Submitting = false
	f.Success = msg
	f.Err = ""
	if reset {
		for k := range f.Values {
			f.Values[k] = ""
		}
	}
}

// Fail records a failed submission and keeps the entered values.
func (f *FormState) Fail(err error) {
	f.Submitting = false
	f.Success = ""
	f.Err = Message(err)
}
