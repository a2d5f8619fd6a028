package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseModel(t *testing.T) {
	tests := []struct {
		in      string
		want    Model
		wantErr bool
	}{
		{"Digital Edition", ModelDigital, false},
		{"Disc Edition", ModelDisc, false},
		{"Slim", ModelSlim, false},
		{" Pro ", ModelPro, false},
		// Empty input means unset.
		{"", "", false},
		{"pro", "", true},
		{"PS4", "", true},
	}

	for _, tt := range tests {
		got, err := ParseModel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseModel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidValue) {
			t.Errorf("ParseModel(%q) error = %v, want ErrInvalidValue", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseEnumsAcceptEveryMember(t *testing.T) {
	for _, c := range Conditions {
		if got, err := ParseCondition(string(c)); err != nil || got != c {
			t.Errorf("ParseCondition(%q) = %q, %v", c, got, err)
		}
	}
	for _, c := range Colors {
		if got, err := ParseColor(string(c)); err != nil || got != c {
			t.Errorf("ParseColor(%q) = %q, %v", c, got, err)
		}
	}
	for _, c := range ControllerCounts {
		if got, err := ParseControllerCount(string(c)); err != nil || got != c {
			t.Errorf("ParseControllerCount(%q) = %q, %v", c, got, err)
		}
	}
	if _, err := ParseControllerCount("4"); err == nil {
		t.Error("expected error for controller count 4")
	}
}

func TestLabels(t *testing.T) {
	if got := Model("").Label(); got != "Not specified" {
		t.Errorf("expected 'Not specified' for unset model, got %q", got)
	}
	if got := ConditionLikeNew.Label(); got != "Like New" {
		t.Errorf("expected 'Like New', got %q", got)
	}
	if got := AccessoryCamera.Label(); got != "PS5 Camera" {
		t.Errorf("expected 'PS5 Camera', got %q", got)
	}
}

func TestAccessoryCatalogHasEightEntries(t *testing.T) {
	if len(AccessoryCatalog) != 8 {
		t.Fatalf("expected 8 accessories, got %d", len(AccessoryCatalog))
	}
	for _, a := range AccessoryCatalog {
		if _, err := ParseAccessory(string(a)); err != nil {
			t.Errorf("ParseAccessory(%q): %v", a, err)
		}
	}
	if _, err := ParseAccessory("jetpack"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue for unknown accessory, got %v", err)
	}
}

func TestAccessorySetToggle(t *testing.T) {
	var s AccessorySet

	s = s.Toggle(AccessoryHeadset)
	if !s.Has(AccessoryHeadset) || s.Len() != 1 {
		t.Fatalf("expected set {headset}, got %v", s.List())
	}

	s = s.Toggle(AccessoryHeadset)
	if s != 0 {
		t.Errorf("expected empty set after second toggle, got %v", s.List())
	}

	if got := s.Toggle("jetpack"); got != s {
		t.Error("toggling an unknown accessory should not change the set")
	}
}

func TestAccessorySetListInCatalogOrder(t *testing.T) {
	s := NewAccessorySet(AccessoryGames, AccessoryChargingStation, AccessoryGames, AccessoryStand)

	got := s.List()
	want := []Accessory{AccessoryChargingStation, AccessoryStand, AccessoryGames}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestAccessorySetJSON(t *testing.T) {
	s := NewAccessorySet(AccessoryHDMICable, AccessoryCamera)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `["hdmi-cable","camera"]` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var back AccessorySet
	if err := json.Unmarshal([]byte(`["camera","hdmi-cable"]`), &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != s {
		t.Errorf("expected %v, got %v", s.List(), back.List())
	}

	if err := json.Unmarshal([]byte(`["jetpack"]`), &back); err == nil {
		t.Error("expected error for unknown accessory id")
	}
}

func TestPhotoURLs(t *testing.T) {
	r := Record{PhotoLinks: "https://a.example/1.jpg\n\n  https://a.example/2.jpg  \n"}
	urls := r.PhotoURLs()
	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %d", len(urls))
	}
	if urls[1] != "https://a.example/2.jpg" {
		t.Errorf("expected trimmed url, got %q", urls[1])
	}
}
