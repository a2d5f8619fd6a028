package wizard

import "github.com/erazemk/resell/internal/model"

// View is the read-only projection rendered after every operation.
type View struct {
	Step        Step         `json:"step"`
	StepTitle   string       `json:"step_title"`
	Description string       `json:"description"`
	NextTitle   string       `json:"next_title,omitempty"`
	Errors      Errors       `json:"errors"`
	Progress    int          `json:"progress"`
	Complete    bool         `json:"complete"`
	CanAdvance  bool         `json:"can_advance"`
	CanGoBack   bool         `json:"can_go_back"`
	LastStep    bool         `json:"last_step"`
	Profit      string       `json:"estimated_profit"`
	Record      model.Record `json:"record"`
}

// View projects the engine state for display.
func (e *Engine) View() View {
	v := View{
		Step:        e.step,
		StepTitle:   e.step.Title(),
		Description: e.step.Description(),
		Errors:      e.Errors(),
		Progress:    e.Progress(),
		Complete:    e.IsComplete(),
		CanAdvance:  e.step < LastStep && e.IsStepValid(e.step),
		CanGoBack:   e.step > FirstStep,
		LastStep:    e.step == LastStep,
		Profit:      e.EstimateProfit(),
		Record:      e.Record(),
	}
	if e.step < LastStep {
		v.NextTitle = (e.step + 1).Title()
	}
	return v
}

// Error returns the message for a field, or "".
func (v View) Error(f string) string { return v.Errors[Field(f)] }
