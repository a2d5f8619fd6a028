// Package wizard implements the four-step inventory entry state machine:
// per-step validation, progress, estimated profit and navigation.
package wizard

import (
	"errors"

	"github.com/erazemk/resell/internal/model"
)

// ErrClosed is returned when an engine is used after its record was handed off.
var ErrClosed = errors.New("wizard session already finished")

// Errors maps a field to its validation message.
type Errors map[Field]string

// Sink receives the record of a finished session.
type Sink interface {
	AddConfirmed(model.Record) error
	AddDraft(model.Record) error
}

// Engine owns one in-progress record. It is not safe for concurrent use.
type Engine struct {
	record model.Record
	step   Step
	errors Errors
	closed bool
}

// New returns an engine on the first step with an empty record.
func New() *Engine {
	return &Engine{
		step:   FirstStep,
		errors: make(Errors),
	}
}

// Step returns the current step.
func (e *Engine) Step() Step { return e.step }

// Closed reports whether the record has been handed off.
func (e *Engine) Closed() bool { return e.closed }

// Record returns a copy of the in-progress record.
func (e *Engine) Record() model.Record { return e.record.Clone() }

// Errors returns a copy of the current validation errors.
func (e *Engine) Errors() Errors {
	out := make(Errors, len(e.errors))
	for f, msg := range e.errors {
		out[f] = msg
	}
	return out
}

// SetField overwrites a field and clears that field's validation error.
// Errors on other fields are kept.
func (e *Engine) SetField(f Field, value any) error {
	if e.closed {
		return ErrClosed
	}
	if err := assign(&e.record, f, value); err != nil {
		return err
	}
	delete(e.errors, f)
	return nil
}

// SetFieldText parses form text for the field and sets it.
func (e *Engine) SetFieldText(f Field, text string) error {
	v, err := ParseValue(f, text)
	if err != nil {
		return err
	}
	return e.SetField(f, v)
}

// ToggleAccessory adds the accessory if absent and removes it otherwise.
func (e *Engine) ToggleAccessory(a model.Accessory) error {
	if e.closed {
		return ErrClosed
	}
	if _, err := model.ParseAccessory(string(a)); err != nil {
		return err
	}
	e.record.Accessories = e.record.Accessories.Toggle(a)
	return nil
}

// ValidateStep recomputes the errors for the step's fields, replacing any
// stored errors for those fields. It reports whether the step has none.
func (e *Engine) ValidateStep(s Step) bool {
	found := validate(e.record, s)
	for _, f := range s.Fields() {
		delete(e.errors, f)
	}
	for f, msg := range found {
		e.errors[f] = msg
	}
	return len(found) == 0
}

func validate(r model.Record, s Step) Errors {
	errs := make(Errors)
	switch s {
	case StepBasicInfo:
		if !r.Model.Set() {
			errs[FieldModel] = MsgModelRequired
		}
		if !r.Condition.Set() {
			errs[FieldCondition] = MsgConditionRequired
		}
		if r.PurchasePrice == "" {
			errs[FieldPurchasePrice] = MsgPurchasePriceRequired
		} else if _, ok := ParsePrice(r.PurchasePrice); !ok {
			errs[FieldPurchasePrice] = MsgPurchasePriceNumber
		}
		if r.PurchaseDate == nil {
			errs[FieldPurchaseDate] = MsgPurchaseDateRequired
		}
	case StepDeviceDetails:
		if r.SerialNumber == "" {
			errs[FieldSerialNumber] = MsgSerialNumberRequired
		}
	}
	return errs
}

// IsStepValid reports whether the step's required fields are present.
// Unlike ValidateStep it does not check the price format and leaves errors alone.
func (e *Engine) IsStepValid(s Step) bool {
	r := e.record
	switch s {
	case StepBasicInfo:
		return r.Model.Set() && r.Condition.Set() && r.PurchasePrice != "" && r.PurchaseDate != nil
	case StepDeviceDetails:
		return r.SerialNumber != ""
	case StepConditionDocs, StepAccessoriesNotes:
		return true
	}
	return false
}

// IsComplete reports whether the record may be saved as a confirmed item.
func (e *Engine) IsComplete() bool {
	return e.IsStepValid(StepBasicInfo) && e.IsStepValid(StepDeviceDetails)
}

// Progress returns 0, 50 or 100: the share of steps with required fields
// that are currently valid.
func (e *Engine) Progress() int {
	done := 0
	for _, s := range []Step{StepBasicInfo, StepDeviceDetails} {
		if e.IsStepValid(s) {
			done++
		}
	}
	return done * 100 / 2
}

// EstimateProfit returns the estimated profit of the in-progress record.
func (e *Engine) EstimateProfit() string { return EstimateProfit(e.record) }

// GoNext advances one step if the current step validates.
func (e *Engine) GoNext() bool {
	if e.closed || e.step >= LastStep {
		return false
	}
	if !e.ValidateStep(e.step) {
		return false
	}
	e.step++
	return true
}

// GoBack retreats one step. It never validates and never touches errors.
func (e *Engine) GoBack() bool {
	if e.closed || e.step <= FirstStep {
		return false
	}
	e.step--
	return true
}

// Save hands the record to sink as a confirmed item. It does nothing and
// returns false when the record is incomplete.
func (e *Engine) Save(sink Sink) (bool, error) {
	if e.closed {
		return false, ErrClosed
	}
	if !e.IsComplete() {
		return false, nil
	}
	if err := sink.AddConfirmed(e.record.Clone()); err != nil {
		return false, err
	}
	e.closed = true
	return true, nil
}

// SaveDraft hands the record to sink as a draft, regardless of completeness.
func (e *Engine) SaveDraft(sink Sink) error {
	if e.closed {
		return ErrClosed
	}
	if err := sink.AddDraft(e.record.Clone()); err != nil {
		return err
	}
	e.closed = true
	return nil
}
