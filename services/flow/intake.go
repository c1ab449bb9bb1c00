package flow

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"techforge_app_go/services/analytics"
)

// ContactFormName labels contact form analytics events
const ContactFormName = "Contact Form"

// LeadForm is the contact form draft
type LeadForm struct {
	Name         string `json:"name" form:"name"`
	Email        string `json:"email" form:"email"`
	ProjectType  string `json:"projectType" form:"projectType"`
	Budget       string `json:"budget" form:"budget"`
	Timeline     string `json:"timeline" form:"timeline"`
	Requirements string `json:"requirements" form:"requirements"`
}

// Field names accepted by UpdateField
const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldProjectType  = "projectType"
	FieldBudget       = "budget"
	FieldTimeline     = "timeline"
	FieldRequirements = "requirements"
)

// FieldNames lists the form fields in display order
var FieldNames = []string{FieldName, FieldEmail, FieldProjectType, FieldBudget, FieldTimeline, FieldRequirements}

// RequiredFields lists the fields a submission cannot omit
var RequiredFields = []string{FieldName, FieldEmail, FieldProjectType, FieldRequirements}

// Get returns the value of a named field
func (f LeadForm) Get(field string) (string, bool) {
	switch field {
	case FieldName:
		return f.Name, true
	case FieldEmail:
		return f.Email, true
	case FieldProjectType:
		return f.ProjectType, true
	case FieldBudget:
		return f.Budget, true
	case FieldTimeline:
		return f.Timeline, true
	case FieldRequirements:
		return f.Requirements, true
	}
	return "", false
}

// set assigns a named field
func (f *LeadForm) set(field, value string) bool {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldProjectType:
		f.ProjectType = value
	case FieldBudget:
		f.Budget = value
	case FieldTimeline:
		f.Timeline = value
	case FieldRequirements:
		f.Requirements = value
	default:
		return false
	}
	return true
}

// MissingRequired returns the required fields that are blank
func (f LeadForm) MissingRequired() []string {
	var missing []string
	for _, name := range RequiredFields {
		v, _ := f.Get(name)
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// IsZero reports whether every field is empty
func (f LeadForm) IsZero() bool {
	return f == LeadForm{}
}

// MissingFieldsError blocks a submission with blank required fields
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// SubmissionStatus is the lifecycle of a lead submission
type SubmissionStatus int

const (
	StatusIdle SubmissionStatus = iota
	StatusSubmitting
	StatusSubmitted
	StatusFailed
)

func (s SubmissionStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSubmitted:
		return "submitted"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Editable reports whether the form accepts a new submission
func (s SubmissionStatus) Editable() bool {
	return s == StatusIdle || s == StatusFailed
}

// IntakeState is a snapshot of the contact form
type IntakeState struct {
	Fields    LeadForm
	Status    SubmissionStatus
	LastError string
	LeadID    string
}

// IntakeConfig wires an Intake to its collaborators
type IntakeConfig struct {
	Submitter LeadSubmitter
	Sink      analytics.Sink
	Logger    *log.Logger
}

// Intake owns the contact form draft and its submission
type Intake struct {
	cfg IntakeConfig

	mu        sync.Mutex
	pubMu     sync.Mutex
	state     IntakeState
	touched   map[string]bool
	listeners []func(IntakeState)

	base       context.Context
	baseCancel context.CancelFunc
	wg         sync.WaitGroup
}

func NewIntake(cfg IntakeConfig) *Intake {
	if cfg.Sink == nil {
		cfg.Sink = analytics.Nop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	base, cancel := context.WithCancel(context.Background())
	return &Intake{
		cfg:        cfg,
		touched:    make(map[string]bool),
		base:       base,
		baseCancel: cancel,
	}
}

// Snapshot returns the current state
func (in *Intake) Snapshot() IntakeState {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.state
}

// Subscribe registers fn to receive every state change. Listeners must not
// call back into the Intake synchronously.
func (in *Intake) Subscribe(fn func(IntakeState)) {
	in.mu.Lock()
	in.listeners = append(in.listeners, fn)
	in.mu.Unlock()
}

func (in *Intake) publish() {
	in.pubMu.Lock()
	defer in.pubMu.Unlock()

	in.mu.Lock()
	s := in.state
	listeners := append([]func(IntakeState){}, in.listeners...)
	in.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}

// UpdateField assigns one field. Values are not validated here.
func (in *Intake) UpdateField(name, value string) error {
	in.mu.Lock()
	if !in.state.Fields.set(name, value) {
		in.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	first := !in.touched[name]
	in.touched[name] = true
	in.mu.Unlock()

	if first {
		in.cfg.Sink.Record(analytics.ContactInteraction("field_update", name))
	}
	in.publish()
	return nil
}

// Prefill sets the project type picked through the catalog hand-off. An
// empty type is ignored, as is any prefill while a submission is running.
// It reports whether the form changed.
func (in *Intake) Prefill(projectType string) bool {
	if projectType == "" {
		return false
	}
	in.mu.Lock()
	if in.state.Status == StatusSubmitting {
		in.mu.Unlock()
		in.cfg.Logger.Printf("[LEAD] ignored project type %q during submission", projectType)
		return false
	}
	in.state.Fields.ProjectType = projectType
	in.mu.Unlock()
	in.publish()
	return true
}

// Submit sends the draft. It returns a *MissingFieldsError when a required
// field is blank and ErrSubmitInProgress while a submission is running; in
// both cases nothing is sent. Delivery failures are reported through the
// state, never returned.
func (in *Intake) Submit() error {
	in.mu.Lock()
	if in.state.Status == StatusSubmitting {
		in.mu.Unlock()
		return ErrSubmitInProgress
	}
	if missing := in.state.Fields.MissingRequired(); len(missing) > 0 {
		in.mu.Unlock()
		return &MissingFieldsError{Fields: missing}
	}
	payload := in.state.Fields
	in.state.Status = StatusSubmitting
	in.state.LastError = ""
	in.wg.Add(1)
	in.mu.Unlock()

	in.cfg.Sink.Record(analytics.ContactInteraction("submit_attempt", ""))
	in.publish()

	go in.deliver(payload)
	return nil
}

func (in *Intake) deliver(payload LeadForm) {
	defer in.wg.Done()

	res, err := in.cfg.Submitter.SubmitLead(in.base, payload)
	ok := err == nil && res.OK

	in.mu.Lock()
	var reason string
	if ok {
		in.state = IntakeState{Status: StatusSubmitted, LeadID: res.ID}
		in.touched = make(map[string]bool)
	} else {
		in.state.Status = StatusFailed
		if err != nil {
			in.state.LastError = err.Error()
		} else {
			in.state.LastError = "the submission was not accepted"
		}
		reason = in.state.LastError
	}
	in.mu.Unlock()

	if ok {
		in.cfg.Logger.Printf("[LEAD] submission accepted (id %s)", res.ID)
	} else {
		in.cfg.Logger.Printf("[LEAD] submission failed: %s", reason)
	}
	in.cfg.Sink.Record(analytics.FormSubmission(ContactFormName, ok))
	in.publish()
}

// ResetAfterSuccess returns a submitted form to Idle so another lead can be
// entered. It reports false when the form was not in the Submitted state.
func (in *Intake) ResetAfterSuccess() bool {
	in.mu.Lock()
	if in.state.Status != StatusSubmitted {
		in.mu.Unlock()
		return false
	}
	in.state = IntakeState{Status: StatusIdle}
	in.mu.Unlock()

	in.publish()
	return true
}

// Wait blocks until an in-flight submission has finished
func (in *Intake) Wait() {
	in.wg.Wait()
}

// Close cancels an in-flight submission
func (in *Intake) Close() {
	in.baseCancel()
	in.wg.Wait()
}
