package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is one inventory unit's full attribute set.
type Record struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Basic information.
	Model         Model      `json:"model,omitempty"`
	Condition     Condition  `json:"condition,omitempty"`
	PurchasePrice string     `json:"purchase_price"`
	PurchaseDate  *time.Time `json:"purchase_date,omitempty"`

	// Device details.
	SerialNumber    string          `json:"serial_number"`
	Color           Color           `json:"color,omitempty"`
	ControllerCount ControllerCount `json:"controller_count,omitempty"`

	// Condition documentation.
	HasWarranty bool   `json:"has_warranty"`
	HasReceipt  bool   `json:"has_receipt"`
	PhotoLinks  string `json:"photo_links,omitempty"`

	// Accessories and notes.
	Accessories AccessorySet `json:"accessories"`
	Notes       string       `json:"notes,omitempty"`
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	if r.PurchaseDate != nil {
		d := *r.PurchaseDate
		r.PurchaseDate = &d
	}
	return r
}

// PhotoURLs splits PhotoLinks into non-blank lines.
func (r Record) PhotoURLs() []string {
	var urls []string
	for _, line := range strings.Split(r.PhotoLinks, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			urls = append(urls, line)
		}
	}
	return urls
}
