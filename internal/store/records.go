package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/resell/internal/metrics"
	"github.com/erazemk/resell/internal/model"
)

// ErrIndexOutOfRange is returned when a position does not name a confirmed item.
var ErrIndexOutOfRange = errors.New("index out of range")

const (
	listConfirmed = "confirmed"
	listDraft     = "draft"
)

const recordColumns = `id, model, condition, purchase_price, purchase_date, serial_number,
	color, controller_count, has_warranty, has_receipt, photo_links, accessories, notes, created_at`

// AddConfirmed appends a record to the confirmed inventory. The stored copy
// gets a fresh ID and creation time, which are returned with it.
func AddConfirmed(ctx context.Context, db *sql.DB, r model.Record) (model.Record, error) {
	return addRecord(ctx, db, listConfirmed, r)
}

// AddDraft appends a record to the drafts.
func AddDraft(ctx context.Context, db *sql.DB, r model.Record) (model.Record, error) {
	return addRecord(ctx, db, listDraft, r)
}

func addRecord(ctx context.Context, db *sql.DB, list string, r model.Record) (model.Record, error) {
	r = r.Clone()
	r.ID = uuid.New()
	r.CreatedAt = time.Now().UTC()

	var purchaseDate sql.NullString
	if r.PurchaseDate != nil {
		purchaseDate = sql.NullString{String: r.PurchaseDate.Format(time.DateOnly), Valid: true}
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO records (list, `+recordColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		list, r.ID.String(), string(r.Model), string(r.Condition), r.PurchasePrice, purchaseDate,
		r.SerialNumber, string(r.Color), string(r.ControllerCount), r.HasWarranty, r.HasReceipt,
		r.PhotoLinks, int64(r.Accessories), r.Notes, r.CreatedAt,
	)
	if err != nil {
		return model.Record{}, fmt.Errorf("adding %s record: %w", list, err)
	}
	metrics.RecordsStored.WithLabelValues(list).Inc()
	return r, nil
}

// ListConfirmed returns the confirmed inventory in insertion order.
func ListConfirmed(ctx context.Context, db *sql.DB) ([]model.Record, error) {
	return listRecords(ctx, db, listConfirmed)
}

// ListDrafts returns the drafts in insertion order.
func ListDrafts(ctx context.Context, db *sql.DB) ([]model.Record, error) {
	return listRecords(ctx, db, listDraft)
}

func listRecords(ctx context.Context, db *sql.DB, list string) ([]model.Record, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE list = ? ORDER BY seq`, list,
	)
	if err != nil {
		return nil, fmt.Errorf("listing %s records: %w", list, err)
	}
	defer rows.Close()

	records := []model.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func scanRecord(rows *sql.Rows) (model.Record, error) {
	var (
		r                                      model.Record
		id                                     string
		modelName, condition, color, ctrlCount string
		purchaseDate                           sql.NullString
		accessories                            int64
	)
	err := rows.Scan(&id, &modelName, &condition, &r.PurchasePrice, &purchaseDate, &r.SerialNumber,
		&color, &ctrlCount, &r.HasWarranty, &r.HasReceipt, &r.PhotoLinks, &accessories, &r.Notes, &r.CreatedAt)
	if err != nil {
		return model.Record{}, fmt.Errorf("scanning record: %w", err)
	}

	if r.ID, err = uuid.Parse(id); err != nil {
		return model.Record{}, fmt.Errorf("parsing record id: %w", err)
	}
	if purchaseDate.Valid {
		d, err := time.Parse(time.DateOnly, purchaseDate.String)
		if err != nil {
			return model.Record{}, fmt.Errorf("parsing purchase date: %w", err)
		}
		r.PurchaseDate = &d
	}
	r.Model = model.Model(modelName)
	r.Condition = model.Condition(condition)
	r.Color = model.Color(color)
	r.ControllerCount = model.ControllerCount(ctrlCount)
	r.Accessories = model.AccessorySet(accessories)
	return r, nil
}

// RemoveConfirmed removes the confirmed item at the zero-based index,
// keeping the order of the rest. An index outside the list changes nothing
// and returns ErrIndexOutOfRange.
func RemoveConfirmed(ctx context.Context, db *sql.DB, index int) error {
	if index < 0 {
		return ErrIndexOutOfRange
	}

	var seq int64
	err := db.QueryRowContext(ctx,
		`SELECT seq FROM records WHERE list = ? ORDER BY seq LIMIT 1 OFFSET ?`,
		listConfirmed, index,
	).Scan(&seq)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrIndexOutOfRange
	}
	if err != nil {
		return fmt.Errorf("finding confirmed record: %w", err)
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM records WHERE seq = ?`, seq); err != nil {
		return fmt.Errorf("removing confirmed record: %w", err)
	}
	metrics.RecordsRemoved.Inc()
	return nil
}

// Counts holds the length of both inventory lists.
type Counts struct {
	Confirmed int `json:"confirmed"`
	Drafts    int `json:"drafts"`
}

// CountRecords returns the length of both inventory lists.
func CountRecords(ctx context.Context, db *sql.DB) (Counts, error) {
	var c Counts
	err := db.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN list = 'confirmed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN list = 'draft' THEN 1 ELSE 0 END), 0)
		 FROM records`,
	).Scan(&c.Confirmed, &c.Drafts)
	if err != nil {
		return Counts{}, fmt.Errorf("counting records: %w", err)
	}
	return c, nil
}

// Sink hands records finished in a wizard to the inventory. It remembers
// the last record it stored.
type Sink struct {
	ctx  context.Context
	db   *sql.DB
	last model.Record
}

// NewSink returns a Sink storing into db.
func NewSink(ctx context.Context, db *sql.DB) *Sink {
	return &Sink{ctx: ctx, db: db}
}

// AddConfirmed stores r as a confirmed item.
func (s *Sink) AddConfirmed(r model.Record) error {
	stored, err := AddConfirmed(s.ctx, s.db, r)
	if err != nil {
		return err
	}
	s.last = stored
	return nil
}

// AddDraft stores r as a draft.
func (s *Sink) AddDraft(r model.Record) error {
	stored, err := AddDraft(s.ctx, s.db, r)
	if err != nil {
		return err
	}
	s.last = stored
	return nil
}

// Last returns the most recently stored record.
func (s *Sink) Last() model.Record { return s.last }
