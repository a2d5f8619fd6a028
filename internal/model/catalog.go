package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidValue is returned when a value is not a member of its enumeration.
var ErrInvalidValue = errors.New("invalid value")

// Model is a console model. The zero value means unset.
type Model string

// Console models.
const (
	ModelDigital Model = "Digital Edition"
	ModelDisc    Model = "Disc Edition"
	ModelSlim    Model = "Slim"
	ModelPro     Model = "Pro"
)

// Models lists all models in display order.
var Models = []Model{ModelDigital, ModelDisc, ModelSlim, ModelPro}

// Condition is the cosmetic and functional state of a unit. The zero value means unset.
type Condition string

// Conditions.
const (
	ConditionNew     Condition = "New"
	ConditionLikeNew Condition = "Like New"
	ConditionGood    Condition = "Good"
	ConditionFair    Condition = "Fair"
	ConditionPoor    Condition = "Poor"
)

// Conditions lists all conditions from best to worst.
var Conditions = []Condition{ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor}

// Color is the shell color or edition. The zero value means unset.
type Color string

// Colors.
const (
	ColorWhite   Color = "Standard White"
	ColorBlack   Color = "Black"
	ColorSpecial Color = "Special Edition"
)

// Colors lists all colors in display order.
var Colors = []Color{ColorWhite, ColorBlack, ColorSpecial}

// ControllerCount is the number of controllers bundled with a unit. The zero value means unset.
type ControllerCount string

// Controller counts.
const (
	Controllers0   ControllerCount = "0"
	Controllers1   ControllerCount = "1"
	Controllers2   ControllerCount = "2"
	Controllers3Up ControllerCount = "3+"
)

// ControllerCounts lists all controller counts in display order.
var ControllerCounts = []ControllerCount{Controllers0, Controllers1, Controllers2, Controllers3Up}

// Label returns the display label.
func (m Model) Label() string { return label(string(m)) }

// Label returns the display label.
func (c Condition) Label() string { return label(string(c)) }

// Label returns the display label.
func (c Color) Label() string { return label(string(c)) }

// Label returns the display label.
func (c ControllerCount) Label() string { return label(string(c)) }

// Set reports whether the value is set.
func (m Model) Set() bool { return m != "" }

// Set reports whether the value is set.
func (c Condition) Set() bool { return c != "" }

// ParseModel parses a model label. An empty string yields the unset model.
func ParseModel(s string) (Model, error) { return parseEnum("model", s, Models) }

// ParseCondition parses a condition label. An empty string yields the unset condition.
func ParseCondition(s string) (Condition, error) { return parseEnum("condition", s, Conditions) }

// ParseColor parses a color label. An empty string yields the unset color.
func ParseColor(s string) (Color, error) { return parseEnum("color", s, Colors) }

// ParseControllerCount parses a controller count. An empty string yields the unset count.
func ParseControllerCount(s string) (ControllerCount, error) {
	return parseEnum("controller count", s, ControllerCounts)
}

func parseEnum[T ~string](kind, s string, all []T) (T, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, v := range all {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: unknown %s %q", ErrInvalidValue, kind, s)
}

func label(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
