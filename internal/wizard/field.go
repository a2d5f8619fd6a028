package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/erazemk/resell/internal/model"
)

var (
	// ErrUnknownField is returned for a field name outside the record.
	ErrUnknownField = errors.New("unknown field")
	// ErrFieldType is returned when a value does not have the field's type.
	ErrFieldType = errors.New("wrong value type for field")
)

// DateLayout is the text form of a purchase date.
const DateLayout = "2006-01-02"

// Field names a record attribute the wizard collects.
type Field string

// Fields.
const (
	FieldModel           Field = "model"
	FieldCondition       Field = "condition"
	FieldPurchasePrice   Field = "purchasePrice"
	FieldPurchaseDate    Field = "purchaseDate"
	FieldSerialNumber    Field = "serialNumber"
	FieldColor           Field = "color"
	FieldControllerCount Field = "controllerCount"
	FieldHasWarranty     Field = "hasWarranty"
	FieldHasReceipt      Field = "hasReceipt"
	FieldPhotoLinks      Field = "photoLinks"
	FieldAccessories     Field = "accessories"
	FieldNotes           Field = "notes"
)

// Validation messages.
const (
	MsgModelRequired         = "Model is required"
	MsgConditionRequired     = "Condition is required"
	MsgPurchasePriceRequired = "Purchase price is required"
	MsgPurchasePriceNumber   = "Must be a valid number"
	MsgPurchaseDateRequired  = "Purchase date is required"
	MsgSerialNumberRequired  = "Serial number is required"
)

// ParseField parses a field name.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if f.Step() == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	return f, nil
}

// Step returns the step that owns the field, or 0 for unknown fields.
func (f Field) Step() Step {
	for _, s := range Steps() {
		for _, owned := range s.Fields() {
			if owned == f {
				return s
			}
		}
	}
	return 0
}

// Bool reports whether the field holds a boolean.
func (f Field) Bool() bool {
	return f == FieldHasWarranty || f == FieldHasReceipt
}

// assign writes a typed value into the record.
func assign(r *model.Record, f Field, value any) error {
	var ok bool
	switch f {
	case FieldModel:
		var v model.Model
		if v, ok = value.(model.Model); ok {
			if _, err := model.ParseModel(string(v)); err != nil {
				return err
			}
			r.Model = v
		}
	case FieldCondition:
		var v model.Condition
		if v, ok = value.(model.Condition); ok {
			if _, err := model.ParseCondition(string(v)); err != nil {
				return err
			}
			r.Condition = v
		}
	case FieldColor:
		var v model.Color
		if v, ok = value.(model.Color); ok {
			if _, err := model.ParseColor(string(v)); err != nil {
				return err
			}
			r.Color = v
		}
	case FieldControllerCount:
		var v model.ControllerCount
		if v, ok = value.(model.ControllerCount); ok {
			if _, err := model.ParseControllerCount(string(v)); err != nil {
				return err
			}
			r.ControllerCount = v
		}
	case FieldPurchaseDate:
		switch v := value.(type) {
		case time.Time:
			d := dateOf(v)
			r.PurchaseDate, ok = &d, true
		case *time.Time:
			r.PurchaseDate, ok = nil, true
			if v != nil {
				d := dateOf(*v)
				r.PurchaseDate = &d
			}
		}
	case FieldPurchasePrice:
		r.PurchasePrice, ok = value.(string)
	case FieldSerialNumber:
		r.SerialNumber, ok = value.(string)
	case FieldPhotoLinks:
		r.PhotoLinks, ok = value.(string)
	case FieldNotes:
		r.Notes, ok = value.(string)
	case FieldHasWarranty:
		r.HasWarranty, ok = value.(bool)
	case FieldHasReceipt:
		r.HasReceipt, ok = value.(bool)
	case FieldAccessories:
		r.Accessories, ok = value.(model.AccessorySet)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	if !ok {
		return fmt.Errorf("%w: %s got %T", ErrFieldType, f, value)
	}
	return nil
}

// ParseValue converts form text into the field's semantic type.
func ParseValue(f Field, text string) (any, error) {
	switch f {
	case FieldModel:
		return model.ParseModel(text)
	case FieldCondition:
		return model.ParseCondition(text)
	case FieldColor:
		return model.ParseColor(text)
	case FieldControllerCount:
		return model.ParseControllerCount(text)
	case FieldPurchaseDate:
		text = strings.TrimSpace(text)
		if text == "" {
			return (*time.Time)(nil), nil
		}
		d, err := time.Parse(DateLayout, text)
		if err != nil {
			return nil, fmt.Errorf("parsing purchase date: %w", err)
		}
		return d, nil
	case FieldHasWarranty, FieldHasReceipt:
		return parseCheckbox(text)
	case FieldAccessories:
		var set model.AccessorySet
		for _, id := range strings.Split(text, ",") {
			if strings.TrimSpace(id) == "" {
				continue
			}
			a, err := model.ParseAccessory(id)
			if err != nil {
				return nil, err
			}
			set |= model.NewAccessorySet(a)
		}
		return set, nil
	case FieldPurchasePrice, FieldSerialNumber, FieldPhotoLinks, FieldNotes:
		return text, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, f)
}

func parseCheckbox(text string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "off":
		return false, nil
	case "on":
		return true, nil
	}
	b, err := strconv.ParseBool(text)
	if err != nil {
		return false, fmt.Errorf("%w: %q is not a boolean", model.ErrInvalidValue, text)
	}
	return b, nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
