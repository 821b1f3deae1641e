package forms

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/km-arc/go-tourism/framework/http/validation"
	"github.com/km-arc/go-tourism/framework/logger"
)

// DefaultHideAfter is how long the success indicator stays visible.
const DefaultHideAfter = 5 * time.Second

// Result is the outcome of a submit.
type Result struct {
	Valid  bool               `json:"valid"`
	Errors *validation.Errors `json:"errors,omitempty"`
}

// Option configures a FormValidator.
type Option func(*FormValidator)

// WithHideAfter sets how long the success indicator stays up. Non-positive
// durations are ignored.
func WithHideAfter(d time.Duration) Option {
	return func(v *FormValidator) {
		if d > 0 {
			v.hideAfter = d
		}
	}
}

// WithScheduler replaces the wall-clock scheduler used for the auto-hide.
func WithScheduler(s Scheduler) Option {
	return func(v *FormValidator) {
		if s != nil {
			v.scheduler = s
		}
	}
}

// WithLogger sets the logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(v *FormValidator) {
		if l != nil {
			v.logger = l
		}
	}
}

// FormValidator validates one form instance and owns its presentation state.
// It is safe for concurrent use; operations are applied one at a time.
type FormValidator struct {
	mu   sync.Mutex
	form *Form

	hideAfter time.Duration
	scheduler Scheduler
	logger    *slog.Logger

	pending    Timer
	generation uint64
	closed     bool
}

// NewValidator takes ownership of form; callers should not touch it
// afterwards except through the validator.
func NewValidator(form *Form, opts ...Option) *FormValidator {
	v := &FormValidator{
		form:      form,
		hideAfter: DefaultHideAfter,
		scheduler: ClockScheduler,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = v.logger.With(logger.Component("forms"), logger.Form(form.ID))
	return v
}

// ── Real-time validation ─────────────────────────────────────────────────────

// ValidateField re-validates the named field and refreshes its error state.
func (v *FormValidator) ValidateField(name string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fd, ok := v.form.Field(name)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return v.validateField(fd), nil
}

// Blur handles the field losing focus.
func (v *FormValidator) Blur(name string) (bool, error) {
	return v.ValidateField(name)
}

// Change sets a new value and re-validates only that field.
func (v *FormValidator) Change(name, value string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fd, ok := v.form.Field(name)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	fd.Value = value
	return v.validateField(fd), nil
}

// Input sets a value without validating, as typing does.
func (v *FormValidator) Input(name, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	fd, ok := v.form.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	fd.Value = value
	return nil
}

// Fill sets every field from values. Fields missing from values become
// empty, matching a browser post of the whole form. Keys naming no field
// are reported with ErrUnknownField after the known ones are applied.
func (v *FormValidator) Fill(values map[string]string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, fd := range v.form.Fields {
		fd.Value = values[fd.Name]
	}
	for name := range values {
		if _, ok := v.form.Field(name); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}
	return nil
}

// ── Whole-form validation ────────────────────────────────────────────────────

// ValidateForm validates every field in document order and reports whether
// all of them passed. Every field is visited so stale errors are cleared.
func (v *FormValidator) ValidateForm() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.validateForm()
}

// Submit validates the form. On success it shows the success indicator,
// clears all values and schedules the indicator to hide; on failure the
// errors stay visible and the values are kept. A closed validator still
// validates and clears, but never shows the indicator since nothing would
// hide it.
func (v *FormValidator) Submit() Result {
	v.mu.Lock()
	defer v.mu.Unlock()

	res := Result{Valid: v.validateForm()}
	if !res.Valid {
		res.Errors = v.form.Errors()
		v.logger.Debug("form submission rejected", slog.Any("fields", fieldNames(res.Errors)))
		return res
	}

	v.form.Reset()
	if !v.closed {
		v.form.Success = true
		v.scheduleHide()
	}
	v.logger.Info("form submitted successfully")
	return res
}

// HideAfter reports how long the success indicator stays up.
func (v *FormValidator) HideAfter() time.Duration { return v.hideAfter }

// Snapshot returns a copy of the current form state for rendering.
func (v *FormValidator) Snapshot() *Form {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form.Clone()
}

// Close cancels a pending auto-hide. Later submits no longer schedule one.
func (v *FormValidator) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
	v.cancelHide()
}

// ── internals (mu held) ──────────────────────────────────────────────────────

func (v *FormValidator) validateField(fd *Field) bool {
	st := validation.Check(fd.Value, fd.Constraint)

	fd.clearError()
	if !st.Valid {
		fd.showError(st.ErrorText)
	}
	return st.Valid
}

func (v *FormValidator) validateForm() bool {
	valid := true
	for _, fd := range v.form.Fields {
		if !v.validateField(fd) {
			valid = false
		}
	}
	return valid
}

func (v *FormValidator) scheduleHide() {
	v.cancelHide()
	gen := v.generation
	v.pending = v.scheduler.AfterFunc(v.hideAfter, func() { v.hideSuccess(gen) })
}

// cancelHide stops the pending hide and bumps the generation so a callback
// that is already running cannot hide a newer indicator.
func (v *FormValidator) cancelHide() {
	if v.pending != nil {
		v.pending.Stop()
		v.pending = nil
	}
	v.generation++
}

func (v *FormValidator) hideSuccess(gen uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		return
	}
	v.form.Success = false
	v.pending = nil
}

func fieldNames(errs *validation.Errors) []string {
	if errs == nil {
		return nil
	}
	names := make([]string, 0, len(errs.Bag))
	for name := range errs.Bag {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
