package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Accessory identifies an item from the fixed accessory catalog.
type Accessory string

// Accessories in catalog order.
const (
	AccessoryChargingStation Accessory = "charging-station"
	AccessoryExtraController Accessory = "extra-controller"
	AccessoryHeadset         Accessory = "headset"
	AccessoryHDMICable       Accessory = "hdmi-cable"
	AccessoryCamera          Accessory = "camera"
	AccessoryStand           Accessory = "stand"
	AccessoryRemote          Accessory = "remote"
	AccessoryGames           Accessory = "games"
)

// AccessoryCatalog lists every accessory in display order.
var AccessoryCatalog = []Accessory{
	AccessoryChargingStation,
	AccessoryExtraController,
	AccessoryHeadset,
	AccessoryHDMICable,
	AccessoryCamera,
	AccessoryStand,
	AccessoryRemote,
	AccessoryGames,
}

var accessoryLabels = map[Accessory]string{
	AccessoryChargingStation: "Charging Station",
	AccessoryExtraController: "Extra Controller",
	AccessoryHeadset:         "Headset",
	AccessoryHDMICable:       "HDMI Cable",
	AccessoryCamera:          "PS5 Camera",
	AccessoryStand:           "Vertical Stand",
	AccessoryRemote:          "Media Remote",
	AccessoryGames:           "Physical Games",
}

// Label returns the display label, or the raw id for unknown accessories.
func (a Accessory) Label() string {
	if l, ok := accessoryLabels[a]; ok {
		return l
	}
	return string(a)
}

// ParseAccessory parses an accessory id.
func ParseAccessory(s string) (Accessory, error) {
	a := Accessory(strings.TrimSpace(s))
	if a.bit() == 0 {
		return "", fmt.Errorf("%w: unknown accessory %q", ErrInvalidValue, s)
	}
	return a, nil
}

// bit returns the set bit for a catalog accessory, or 0 if unknown.
func (a Accessory) bit() AccessorySet {
	for i, c := range AccessoryCatalog {
		if c == a {
			return 1 << i
		}
	}
	return 0
}

// AccessorySet is a set of catalog accessories. The zero value is empty.
type AccessorySet uint8

// NewAccessorySet builds a set from the given accessories, ignoring unknown ids.
func NewAccessorySet(items ...Accessory) AccessorySet {
	var s AccessorySet
	for _, a := range items {
		s |= a.bit()
	}
	return s
}

// Has reports whether a is in the set.
func (s AccessorySet) Has(a Accessory) bool {
	b := a.bit()
	return b != 0 && s&b != 0
}

// Toggle returns the set with a removed if present, added otherwise.
// Unknown accessories leave the set unchanged.
func (s AccessorySet) Toggle(a Accessory) AccessorySet {
	return s ^ a.bit()
}

// Len returns the number of accessories in the set.
func (s AccessorySet) Len() int {
	n := 0
	for v := s; v != 0; v &= v - 1 {
		n++
	}
	return n
}

// List returns the members in catalog order.
func (s AccessorySet) List() []Accessory {
	out := make([]Accessory, 0, s.Len())
	for _, a := range AccessoryCatalog {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// MarshalJSON encodes the set as a list of ids in catalog order.
func (s AccessorySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

// UnmarshalJSON decodes a list of ids. Unknown ids are rejected.
func (s *AccessorySet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	var set AccessorySet
	for _, id := range ids {
		a, err := ParseAccessory(id)
		if err != nil {
			return err
		}
		set |= a.bit()
	}
	*s = set
	return nil
}
