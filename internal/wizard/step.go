package wizard

// Step is one of the four ordered field groups, numbered from 1.
type Step int

// Steps in traversal order.
const (
	StepBasicInfo Step = iota + 1
	StepDeviceDetails
	StepConditionDocs
	StepAccessoriesNotes
)

// FirstStep and LastStep bound the wizard.
const (
	FirstStep = StepBasicInfo
	LastStep  = StepAccessoriesNotes
)

var stepTitles = map[Step]string{
	StepBasicInfo:        "Basic Information",
	StepDeviceDetails:    "Device Details",
	StepConditionDocs:    "Condition Documentation",
	StepAccessoriesNotes: "Accessories & Notes",
}

var stepDescriptions = map[Step]string{
	StepBasicInfo:        "Enter the basic information about the PS5.",
	StepDeviceDetails:    "Provide details about the device.",
	StepConditionDocs:    "Document the condition and proof of purchase.",
	StepAccessoriesNotes: "Add any accessories and additional notes.",
}

var stepFields = map[Step][]Field{
	StepBasicInfo:        {FieldModel, FieldCondition, FieldPurchasePrice, FieldPurchaseDate},
	StepDeviceDetails:    {FieldSerialNumber, FieldColor, FieldControllerCount},
	StepConditionDocs:    {FieldHasWarranty, FieldHasReceipt, FieldPhotoLinks},
	StepAccessoriesNotes: {FieldAccessories, FieldNotes},
}

// Valid reports whether s is one of the four steps.
func (s Step) Valid() bool { return s >= FirstStep && s <= LastStep }

// Title returns the step heading.
func (s Step) Title() string { return stepTitles[s] }

// Description returns the one-line step instructions.
func (s Step) Description() string { return stepDescriptions[s] }

// Fields returns the fields owned by the step.
func (s Step) Fields() []Field { return stepFields[s] }

// Steps returns all steps in order.
func Steps() []Step {
	return []Step{StepBasicInfo, StepDeviceDetails, StepConditionDocs, StepAccessoriesNotes}
}
