package wizard

import (
	"errors"
	"testing"
	"time"

	"github.com/erazemk/resell/internal/model"
)

// recordingSink collects handed-off records.
type recordingSink struct {
	confirmed []model.Record
	drafts    []model.Record
	err       error
}

func (s *recordingSink) AddConfirmed(r model.Record) error {
	if s.err != nil {
		return s.err
	}
	s.confirmed = append(s.confirmed, r)
	return nil
}

func (s *recordingSink) AddDraft(r model.Record) error {
	if s.err != nil {
		return s.err
	}
	s.drafts = append(s.drafts, r)
	return nil
}

func mustSet(t *testing.T, e *Engine, f Field, v any) {
	t.Helper()
	if err := e.SetField(f, v); err != nil {
		t.Fatalf("SetField(%s): %v", f, err)
	}
}

func fillStepOne(t *testing.T, e *Engine, price string) {
	t.Helper()
	mustSet(t, e, FieldModel, model.ModelPro)
	mustSet(t, e, FieldCondition, model.ConditionGood)
	mustSet(t, e, FieldPurchasePrice, price)
	mustSet(t, e, FieldPurchaseDate, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
}

func TestNewEngineStartsOnFirstStep(t *testing.T) {
	e := New()
	if e.Step() != StepBasicInfo {
		t.Errorf("expected step 1, got %d", e.Step())
	}
	if len(e.Errors()) != 0 {
		t.Errorf("expected no errors, got %v", e.Errors())
	}
	if e.Progress() != 0 {
		t.Errorf("expected progress 0, got %d", e.Progress())
	}
}

func TestValidateStepOnEmptyRecord(t *testing.T) {
	tests := []struct {
		step Step
		want Errors
	}{
		{StepBasicInfo, Errors{
			FieldModel:         MsgModelRequired,
			FieldCondition:     MsgConditionRequired,
			FieldPurchasePrice: MsgPurchasePriceRequired,
			FieldPurchaseDate:  MsgPurchaseDateRequired,
		}},
		{StepDeviceDetails, Errors{FieldSerialNumber: MsgSerialNumberRequired}},
		{StepConditionDocs, Errors{}},
		{StepAccessoriesNotes, Errors{}},
	}

	for _, tt := range tests {
		e := New()
		ok := e.ValidateStep(tt.step)
		if ok != (len(tt.want) == 0) {
			t.Errorf("ValidateStep(%d) = %v, want %v", tt.step, ok, len(tt.want) == 0)
		}
		got := e.Errors()
		if len(got) != len(tt.want) {
			t.Errorf("step %d: expected errors %v, got %v", tt.step, tt.want, got)
			continue
		}
		for f, msg := range tt.want {
			if got[f] != msg {
				t.Errorf("step %d field %s: expected %q, got %q", tt.step, f, msg, got[f])
			}
		}
	}
}

func TestValidateStepIsScopedToStep(t *testing.T) {
	e := New()
	e.ValidateStep(StepBasicInfo)
	e.ValidateStep(StepDeviceDetails)

	if n := len(e.Errors()); n != 5 {
		t.Fatalf("expected 5 errors across steps 1 and 2, got %v", e.Errors())
	}

	// Revalidating step 1 after a fix replaces only step 1's entries.
	e.record.Model = model.ModelSlim
	if e.ValidateStep(StepBasicInfo) {
		t.Fatal("expected step 1 to still fail")
	}
	errs := e.Errors()
	if _, ok := errs[FieldModel]; ok {
		t.Error("expected model error to be gone after revalidation")
	}
	if _, ok := errs[FieldSerialNumber]; !ok {
		t.Error("expected step 2 error to survive step 1 validation")
	}
	if len(errs) != 4 {
		t.Errorf("expected 4 errors, got %v", errs)
	}
}

func TestSetFieldClearsOnlyThatField(t *testing.T) {
	e := New()
	e.ValidateStep(StepBasicInfo)

	mustSet(t, e, FieldModel, model.ModelPro)

	errs := e.Errors()
	if _, ok := errs[FieldModel]; ok {
		t.Error("expected model error to be cleared")
	}
	for _, f := range []Field{FieldCondition, FieldPurchasePrice, FieldPurchaseDate} {
		if _, ok := errs[f]; !ok {
			t.Errorf("expected %s error to remain", f)
		}
	}
}

func TestSetFieldRejectsWrongType(t *testing.T) {
	e := New()
	e.ValidateStep(StepBasicInfo)

	if err := e.SetField(FieldModel, "Pro"); !errors.Is(err, ErrFieldType) {
		t.Errorf("expected ErrFieldType, got %v", err)
	}
	if err := e.SetField(FieldModel, model.Model("PS4")); !errors.Is(err, model.ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
	if err := e.SetField("colour", model.ColorBlack); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
	if _, ok := e.Errors()[FieldModel]; !ok {
		t.Error("a rejected value should not clear the field's error")
	}
}

func TestPriceFormatAsymmetry(t *testing.T) {
	e := New()
	fillStepOne(t, e, "abc")

	if !e.IsStepValid(StepBasicInfo) {
		t.Error("expected presence check to pass for non-numeric price")
	}
	if e.GoNext() {
		t.Fatal("expected GoNext to be rejected for non-numeric price")
	}
	if e.Step() != StepBasicInfo {
		t.Errorf("expected to stay on step 1, got %d", e.Step())
	}
	if got := e.Errors()[FieldPurchasePrice]; got != MsgPurchasePriceNumber {
		t.Errorf("expected %q, got %q", MsgPurchasePriceNumber, got)
	}
}

func TestPriceAcceptsNegativeAndZero(t *testing.T) {
	for _, price := range []string{"0", "-25", "+7", "19.99", "999999999999999.99999999"} {
		e := New()
		fillStepOne(t, e, price)
		if !e.ValidateStep(StepBasicInfo) {
			t.Errorf("price %q: expected step 1 to validate, got %v", price, e.Errors())
		}
	}
	for _, price := range []string{"NaN", "Inf", "12abc", " 12", "1,000", "1e3", "12.", ".5", "1000000000000000"} {
		e := New()
		fillStepOne(t, e, price)
		if e.ValidateStep(StepBasicInfo) {
			t.Errorf("price %q: expected step 1 to fail", price)
		}
	}
}

func TestPriceRejectsExponentNotation(t *testing.T) {
	for _, price := range []string{"1e20000000", "1e-20000000", "1E5", "2.5e-3"} {
		e := New()
		fillStepOne(t, e, price)

		start := time.Now()
		if e.ValidateStep(StepBasicInfo) {
			t.Errorf("price %q: expected step 1 to fail", price)
		}
		if got := e.Errors()[FieldPurchasePrice]; got != MsgPurchasePriceNumber {
			t.Errorf("price %q: expected %q, got %q", price, MsgPurchasePriceNumber, got)
		}
		if got := e.EstimateProfit(); got != NotApplicable {
			t.Errorf("price %q: expected %q, got %q", price, NotApplicable, got)
		}
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("price %q: validation took %v", price, elapsed)
		}
	}
}

func TestEstimateProfit(t *testing.T) {
	tests := []struct {
		model     model.Model
		condition model.Condition
		price     string
		want      string
	}{
		{model.ModelPro, model.ConditionGood, "100", "$460.00"},
		{model.ModelDigital, model.ConditionNew, "350", "$50.00"},
		{model.ModelDisc, model.ConditionLikeNew, "450.5", "$-0.50"},
		{model.ModelSlim, model.ConditionFair, "0", "$315.00"},
		{model.ModelSlim, model.ConditionPoor, "300", "$-75.00"},
		{model.ModelPro, model.ConditionPoor, "-10", "$360.00"},
		{"", model.ConditionGood, "100", NotApplicable},
		{model.ModelPro, "", "100", NotApplicable},
		{model.ModelPro, model.ConditionGood, "", NotApplicable},
		{model.ModelPro, model.ConditionGood, "abc", NotApplicable},
		{model.ModelPro, model.ConditionGood, "1e20000000", NotApplicable},
		{model.ModelPro, model.ConditionGood, "1e-20000000", NotApplicable},
	}

	for _, tt := range tests {
		r := model.Record{Model: tt.model, Condition: tt.condition, PurchasePrice: tt.price}
		if got := EstimateProfit(r); got != tt.want {
			t.Errorf("EstimateProfit(%q, %q, %q) = %q, want %q", tt.model, tt.condition, tt.price, got, tt.want)
		}
	}
}

func TestProgress(t *testing.T) {
	e := New()
	if e.Progress() != 0 {
		t.Errorf("expected 0, got %d", e.Progress())
	}

	// Presence is enough; the price need not be numeric.
	fillStepOne(t, e, "not a number")
	if e.Progress() != 50 {
		t.Errorf("expected 50, got %d", e.Progress())
	}

	mustSet(t, e, FieldSerialNumber, "E12345")
	if e.Progress() != 100 {
		t.Errorf("expected 100, got %d", e.Progress())
	}

	// Step 2 alone also counts as half.
	e2 := New()
	mustSet(t, e2, FieldSerialNumber, "E12345")
	if e2.Progress() != 50 {
		t.Errorf("expected 50 for step 2 only, got %d", e2.Progress())
	}
}

func TestToggleAccessoryRoundTrip(t *testing.T) {
	e := New()
	if err := e.ToggleAccessory(model.AccessoryStand); err != nil {
		t.Fatal(err)
	}
	before := e.Record().Accessories

	e.ToggleAccessory(model.AccessoryHeadset)
	if !e.Record().Accessories.Has(model.AccessoryHeadset) {
		t.Error("expected headset after first toggle")
	}
	e.ToggleAccessory(model.AccessoryHeadset)
	if got := e.Record().Accessories; got != before {
		t.Errorf("expected %v after round trip, got %v", before.List(), got.List())
	}

	if err := e.ToggleAccessory("jetpack"); !errors.Is(err, model.ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestNavigation(t *testing.T) {
	e := New()

	if e.GoBack() {
		t.Error("expected GoBack on step 1 to be a no-op")
	}
	if e.GoNext() {
		t.Error("expected GoNext on empty step 1 to fail")
	}

	fillStepOne(t, e, "100")
	if !e.GoNext() || e.Step() != StepDeviceDetails {
		t.Fatalf("expected step 2, got %d", e.Step())
	}

	// Blocked on step 2, then GoBack leaves the errors alone.
	if e.GoNext() {
		t.Fatal("expected GoNext to fail without serial number")
	}
	if !e.GoBack() || e.Step() != StepBasicInfo {
		t.Fatalf("expected step 1, got %d", e.Step())
	}
	if _, ok := e.Errors()[FieldSerialNumber]; !ok {
		t.Error("GoBack should not clear errors")
	}

	e.GoNext()
	mustSet(t, e, FieldSerialNumber, "E12345")
	e.GoNext()
	e.GoNext()
	if e.Step() != StepAccessoriesNotes {
		t.Fatalf("expected step 4, got %d", e.Step())
	}
	if e.GoNext() {
		t.Error("expected GoNext on the last step to be a no-op")
	}
}

func TestSaveRequiresCompleteRecord(t *testing.T) {
	sink := &recordingSink{}
	e := New()
	fillStepOne(t, e, "100")

	saved, err := e.Save(sink)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved || len(sink.confirmed) != 0 {
		t.Fatal("expected Save to be a no-op without serial number")
	}
	if e.Closed() {
		t.Error("a gated save should not close the engine")
	}

	mustSet(t, e, FieldSerialNumber, "E12345")
	saved, err = e.Save(sink)
	if err != nil || !saved {
		t.Fatalf("expected save to succeed, got %v, %v", saved, err)
	}
	if len(sink.confirmed) != 1 || sink.confirmed[0].SerialNumber != "E12345" {
		t.Errorf("unexpected confirmed records: %+v", sink.confirmed)
	}
	if !e.Closed() {
		t.Error("expected engine to be closed after save")
	}
	if _, err := e.Save(sink); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed on second save, got %v", err)
	}
	if err := e.SetField(FieldNotes, "late"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed on edit after save, got %v", err)
	}
}

func TestSaveDraftIsUnconditional(t *testing.T) {
	sink := &recordingSink{}
	e := New()
	mustSet(t, e, FieldNotes, "needs cleaning")

	if err := e.SaveDraft(sink); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	if len(sink.drafts) != 1 || sink.drafts[0].Notes != "needs cleaning" {
		t.Errorf("unexpected drafts: %+v", sink.drafts)
	}
	if len(sink.confirmed) != 0 {
		t.Error("draft should not reach confirmed items")
	}
}

func TestSinkErrorKeepsSessionOpen(t *testing.T) {
	sink := &recordingSink{err: errors.New("disk on fire")}
	e := New()

	if err := e.SaveDraft(sink); err == nil {
		t.Fatal("expected sink error")
	}
	if e.Closed() {
		t.Error("engine should stay open when the hand-off fails")
	}
}

func TestSetFieldText(t *testing.T) {
	e := New()
	for f, text := range map[Field]string{
		FieldModel:           "Disc Edition",
		FieldCondition:       "Like New",
		FieldPurchasePrice:   "320",
		FieldPurchaseDate:    "2024-02-29",
		FieldSerialNumber:    "AJ8812",
		FieldColor:           "Black",
		FieldControllerCount: "3+",
		FieldHasWarranty:     "on",
		FieldHasReceipt:      "false",
		FieldPhotoLinks:      "https://img.example/1.jpg",
		FieldAccessories:     "headset,games,headset",
		FieldNotes:           "boxed",
	} {
		if err := e.SetFieldText(f, text); err != nil {
			t.Fatalf("SetFieldText(%s, %q): %v", f, text, err)
		}
	}

	r := e.Record()
	if r.Model != model.ModelDisc || r.ControllerCount != model.Controllers3Up {
		t.Errorf("unexpected enums: %+v", r)
	}
	if r.PurchaseDate == nil || r.PurchaseDate.Format(DateLayout) != "2024-02-29" {
		t.Errorf("unexpected purchase date: %v", r.PurchaseDate)
	}
	if !r.HasWarranty || r.HasReceipt {
		t.Errorf("unexpected booleans: warranty=%v receipt=%v", r.HasWarranty, r.HasReceipt)
	}
	if r.Accessories.Len() != 2 {
		t.Errorf("expected 2 accessories, got %v", r.Accessories.List())
	}
	if !e.IsComplete() {
		t.Error("expected complete record")
	}

	if err := e.SetFieldText(FieldPurchaseDate, ""); err != nil {
		t.Fatal(err)
	}
	if e.Record().PurchaseDate != nil {
		t.Error("expected empty date text to unset the date")
	}
	if err := e.SetFieldText(FieldPurchaseDate, "15/03/2024"); err == nil {
		t.Error("expected error for malformed date")
	}
	if err := e.SetFieldText(FieldCondition, "Mint"); !errors.Is(err, model.ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestRecordIsACopy(t *testing.T) {
	e := New()
	mustSet(t, e, FieldPurchaseDate, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	r := e.Record()
	*r.PurchaseDate = r.PurchaseDate.AddDate(1, 0, 0)

	if e.Record().PurchaseDate.Year() != 2024 {
		t.Error("mutating a returned record should not affect the engine")
	}
}

func TestView(t *testing.T) {
	e := New()
	v := e.View()
	if v.StepTitle != "Basic Information" || v.NextTitle != "Device Details" {
		t.Errorf("unexpected titles: %q, %q", v.StepTitle, v.NextTitle)
	}
	if v.CanAdvance || v.CanGoBack || v.Complete {
		t.Errorf("unexpected flags on fresh engine: %+v", v)
	}
	if v.Profit != NotApplicable {
		t.Errorf("expected %q, got %q", NotApplicable, v.Profit)
	}

	fillStepOne(t, e, "100")
	e.GoNext()
	v = e.View()
	if !v.CanGoBack || v.CanAdvance || v.Progress != 50 || v.Profit != "$460.00" {
		t.Errorf("unexpected view on step 2: %+v", v)
	}
}

func TestParseField(t *testing.T) {
	for _, s := range Steps() {
		for _, f := range s.Fields() {
			got, err := ParseField(string(f))
			if err != nil || got != f {
				t.Errorf("ParseField(%q) = %q, %v", f, got, err)
			}
			if f.Step() != s {
				t.Errorf("%s: expected step %d, got %d", f, s, f.Step())
			}
		}
	}
	if _, err := ParseField("price"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}
