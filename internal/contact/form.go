package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Field is a named contact form input.
type Field string

const (
	FieldName        Field = "name"
	FieldEmail       Field = "email"
	FieldCompany     Field = "company"
	FieldProjectType Field = "projectType"
	FieldBudget      Field = "budget"
	FieldTimeline    Field = "timeline"
	FieldMessage     Field = "message"
)

// Fields lists every form field in display order.
var Fields = []Field{
	FieldName,
	FieldEmail,
	FieldCompany,
	FieldProjectType,
	FieldBudget,
	FieldTimeline,
	FieldMessage,
}

// RequiredFields must be non-empty before a submission is attempted.
var RequiredFields = []Field{FieldName, FieldEmail, FieldProjectType, FieldMessage}

// DefaultResetAfter is how long the thank-you state stays up.
const DefaultResetAfter = 3 * time.Second

var (
	ErrUnknownField   = errors.New("unknown form field")
	ErrSubmitInFlight = errors.New("a submission is already in progress")
)

// MissingFieldsError lists required fields left empty.
type MissingFieldsError struct {
	Fields []Field
}

func (e *MissingFieldsError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return "missing required fields: " + strings.Join(names, ", ")
}

// IsRequired reports whether f must be filled in.
func IsRequired(f Field) bool {
	for _, r := range RequiredFields {
		if r == f {
			return true
		}
	}
	return false
}

// ParseField validates a field name.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Snapshot is a read-only copy of the form state.
type Snapshot struct {
	Values     map[Field]string
	Submitting bool
	Submitted  bool
	Error      string
}

// Value returns the current value of f.
func (s Snapshot) Value(f Field) string {
	return s.Values[f]
}

// Form holds one visitor's contact form. It allows at most one submission
// in flight and clears its thank-you state on a timer.
type Form struct {
	submitter  Submitter
	resetAfter time.Duration

	mu         sync.Mutex
	values     map[Field]string
	submitting bool
	submitted  bool
	lastErr    string
	resetTimer *time.Timer
	closed     bool
}

// NewForm creates an empty form.
func NewForm(submitter Submitter, resetAfter time.Duration) *Form {
	if resetAfter <= 0 {
		resetAfter = DefaultResetAfter
	}
	return &Form{
		submitter:  submitter,
		resetAfter: resetAfter,
		values:     emptyValues(),
	}
}

func emptyValues() map[Field]string {
	values := make(map[Field]string, len(Fields))
	for _, f := range Fields {
		values[f] = ""
	}
	return values
}

// UpdateField replaces the value of a single field.
func (f *Form) UpdateField(name, value string) error {
	field, err := ParseField(name)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[field] = value
	return nil
}

// Snapshot returns a copy of the current state.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	values := make(map[Field]string, len(f.values))
	for k, v := range f.values {
		values[k] = v
	}
	return Snapshot{
		Values:     values,
		Submitting: f.submitting,
		Submitted:  f.submitted,
		Error:      f.lastErr,
	}
}

type configurable interface {
	Configured() bool
}

// Submit sends the current values. On success the fields are cleared and
// the submitted flag is set until the reset timer fires; on failure the
// values stay so the visitor can retry.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}

	var missing []Field
	for _, field := range RequiredFields {
		if strings.TrimSpace(f.values[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		err := &MissingFieldsError{Fields: missing}
		f.lastErr = UserMessage(err)
		f.mu.Unlock()
		return err
	}

	if !f.configuredLocked() {
		f.lastErr = UserMessage(ErrEndpointNotConfigured)
		f.mu.Unlock()
		return ErrEndpointNotConfigured
	}

	f.submitting = true
	f.lastErr = ""
	payload := f.payloadLocked()
	submitter := f.submitter
	f.mu.Unlock()

	err := submitter.Submit(ctx, payload)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.lastErr = UserMessage(err)
		return err
	}

	f.submitted = true
	f.values = emptyValues()
	f.scheduleResetLocked()
	return nil
}

// Close stops the pending reset timer. The form must not be submitted
// after Close.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
}

func (f *Form) configuredLocked() bool {
	if f.submitter == nil {
		return false
	}
	if c, ok := f.submitter.(configurable); ok {
		return c.Configured()
	}
	return true
}

func (f *Form) payloadLocked() Payload {
	return Payload{
		Name:        f.values[FieldName],
		Email:       f.values[FieldEmail],
		Company:     f.values[FieldCompany],
		ProjectType: f.values[FieldProjectType],
		Budget:      f.values[FieldBudget],
		Timeline:    f.values[FieldTimeline],
		Message:     f.values[FieldMessage],
	}
}

func (f *Form) scheduleResetLocked() {
	if f.resetTimer != nil {
		f.resetTimer.Stop()
	}
	if f.closed {
		f.resetTimer = nil
		return
	}
	f.resetTimer = time.AfterFunc(f.resetAfter, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.submitted = false
		f.resetTimer = nil
	})
}

// UserMessage turns a submission error into text for the visitor.
func UserMessage(err error) string {
	var submitErr *SubmitError
	var missing *MissingFieldsError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &missing):
		return "Please fill in all required fields."
	case errors.Is(err, ErrEndpointNotConfigured):
		return "Our contact form is not set up yet. Please email us directly."
	case errors.As(err, &submitErr):
		return submitErr.Message
	case errors.Is(err, ErrSubmitInFlight):
		return "Your message is still being sent."
	default:
		return ErrNetwork.Error()
	}
}
