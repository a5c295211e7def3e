package validate

// Form collects field-level validation results for one screen. A screen is
// submittable only when every enabled field validates; only the first
// failure per field is kept, matching what the inline message slot can show.
type Form struct {
	fieldErrors map[string]string
}

// NewForm returns an empty form result.
func NewForm() *Form {
	return &Form{fieldErrors: make(map[string]string)}
}

// Check records the outcome of a field validator. A nil error leaves the
// field untouched; later failures for an already-failed field are ignored.
func (f *Form) Check(field string, err error) {
	if err == nil {
		return
	}
	if _, exists := f.fieldErrors[field]; exists {
		return
	}
	f.fieldErrors[field] = err.Error()
}

// Valid reports whether no field failed.
func (f *Form) Valid() bool {
	return len(f.fieldErrors) == 0
}

// FieldError returns the message for a field, or an empty string.
func (f *Form) FieldError(field string) string {
	return f.fieldErrors[field]
}

// Errors returns every field message, keyed by field name.
func (f *Form) Errors() map[string]string {
	return f.fieldErrors
}
