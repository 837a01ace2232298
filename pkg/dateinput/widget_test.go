package dateinput_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dateinput/pkg/dateinput"
	"github.com/goliatone/go-dateinput/pkg/formcontrol"
)

func newWidget(t *testing.T, control *formcontrol.Control, fns ...dateinput.OptionFn) *dateinput.Widget {
	t.Helper()
	w, err := dateinput.New(context.Background(), control, fns...)
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}
	t.Cleanup(w.Destroy)
	return w
}

func kinds(entries []dateinput.ErrorEntry) []dateinput.Kind {
	var out []dateinput.Kind
	for _, entry := range entries {
		out = append(out, entry.Kind)
	}
	return out
}

func assertUniqueKinds(t *testing.T, entries []dateinput.ErrorEntry) {
	t.Helper()
	seen := make(map[dateinput.Kind]struct{}, len(entries))
	for _, entry := range entries {
		if _, dup := seen[entry.Kind]; dup {
			t.Fatalf("duplicate error kind %q in %#v", entry.Kind, entries)
		}
		seen[entry.Kind] = struct{}{}
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNew_RequiresControl(t *testing.T) {
	if _, err := dateinput.New(context.Background(), nil); !errors.Is(err, dateinput.ErrNilControl) {
		t.Fatalf("expected ErrNilControl, got %v", err)
	}
}

func TestWidget_ValidBirthDateIsWrittenToControl(t *testing.T) {
	control := formcontrol.New("")
	w := newWidget(t, control, dateinput.WithDateOfBirth(true))

	if err := w.SetSegments(dateinput.Segments{Day: "15", Month: "06", Year: "1990"}); err != nil {
		t.Fatalf("set segments: %v", err)
	}

	if got := control.Value(); got != "06-15-1990" {
		t.Fatalf("expected control value 06-15-1990, got %q", got)
	}
	if errs := w.Errors(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %#v", errs)
	}
	if !w.Snapshot().Valid() {
		t.Fatalf("expected snapshot to be valid")
	}
}

func TestWidget_ZeroDayAddsInvalidDay(t *testing.T) {
	control := formcontrol.New("")
	w := newWidget(t, control)

	_ = w.SetSegments(dateinput.Segments{Day: "00", Month: "06", Year: "2020"})

	want := []dateinput.ErrorEntry{{Kind: dateinput.KindInvalidDay, Message: "Please enter a valid day."}}
	if diff := cmp.Diff(want, w.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if got := control.Value(); got != "" {
		t.Fatalf("expected empty control, got %q", got)
	}
}

func TestWidget_ImpossibleDateAddsInvalidFeb(t *testing.T) {
	control := formcontrol.New("")
	w := newWidget(t, control, dateinput.WithDateOfBirth(true))

	_ = w.SetSegments(dateinput.Segments{Day: "30", Month: "02", Year: "1990"})

	if diff := cmp.Diff([]dateinput.Kind{dateinput.KindInvalidFeb}, kinds(w.Errors())); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if got := control.Value(); got != "" {
		t.Fatalf("expected control cleared, got %q", got)
	}

	_ = w.SetDay("28")
	if w.HasError(dateinput.KindInvalidFeb) {
		t.Fatalf("expected invalidFeb to be removed once the date exists")
	}
	if got := control.Value(); got != "02-28-1990" {
		t.Fatalf("expected 02-28-1990, got %q", got)
	}
}

func TestWidget_DayThirtyOneInApril(t *testing.T) {
	control := formcontrol.New("")
	w := newWidget(t, control)

	_ = w.SetSegments(dateinput.Segments{Day: "31", Month: "04", Year: "2021"})

	if !w.HasError(dateinput.KindInvalidFeb) {
		t.Fatalf("expected invalidFeb for April 31st, got %#v", w.Errors())
	}
	if got := control.Value(); got != "" {
		t.Fatalf("expected control cleared, got %q", got)
	}
}

func TestWidget_MinDateViolation(t *testing.T) {
	control := formcontrol.New("")
	w := newWidget(t, control,
		dateinput.WithDateOfBirth(true),
		dateinput.WithMinDate(dateinput.Literal("01-01-2000")),
		dateinput.WithMinDateErrorContent("Date must be after 2000."),
	)

	_ = w.SetSegments(dateinput.Segments{Day: "01", Month: "01", Year: "1999"})

	want := []dateinput.ErrorEntry{{Kind: dateinput.KindMinDate, Message: "Date must be after 2000."}}
	if diff := cmp.Diff(want, w.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if got := control.Value(); got != "" {
		t.Fatalf("expected control cleared, got %q", got)
	}

	_ = w.SetYear("2000")
	if w.HasError(dateinput.KindMinDate) {
		t.Fatalf("expected minDateError removed for a date equal to the bound")
	}
	if got := control.Value(); got != "01-01-2000" {
		t.Fatalf("expected 01-01-2000, got %q", got)
	}
}

func TestWidget_YearRuleDependsOnDateOfBirth(t *testing.T) {
	cases := []struct {
		name        string
		dateOfBirth bool
		year        string
		wantInvalid bool
	}{
		{name: "general 1850", dateOfBirth: false, year: "1850", wantInvalid: true},
		{name: "general 0999", dateOfBirth: false, year: "0999", wantInvalid: true},
		{name: "general 2024", dateOfBirth: false, year: "2024", wantInvalid: false},
		{name: "general 2999", dateOfBirth: false, year: "2999", wantInvalid: false},
		{name: "birth 1850", dateOfBirth: true, year: "1850", wantInvalid: false},
		{name: "birth 0850", dateOfBirth: true, year: "0850", wantInvalid: true},
		{name: "partial 1", dateOfBirth: false, year: "1", wantInvalid: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			control := formcontrol.New("")
			w := newWidget(t, control, dateinput.WithDateOfBirth(tc.dateOfBirth))

			_ = w.SetSegments(dateinput.Segments{Day: "10", Month: "05", Year: tc.year})

			if got := w.HasError(dateinput.KindInvalidYear); got != tc.wantInvalid {
				t.Fatalf("invalidYear = %v, want %v (errors %#v)", got, tc.wantInvalid, w.Errors())
			}
			if tc.wantInvalid && control.Value() != "" {
				t.Fatalf("expected control to stay empty, got %q", control.Value())
			}
		})
	}
}

func TestWidget_PasteIsRejectedWithoutErrorEntry(t *testing.T) {
	control := formcontrol.New("")
	w := newWidget(t, control)
	_ = w.SetSegments(dateinput.Segments{Day: "1", Month: "", Year: ""})
	before := w.Segments()

	if w.Paste(dateinput.SegmentDay) {
		t.Fatalf("expected paste to be rejected")
	}
	if !w.PasteError() {
		t.Fatalf("expected paste flag to be set")
	}
	if w.Paste(dateinput.SegmentYear) {
		t.Fatalf("expected repeated paste to be rejected")
	}
	if diff := cmp.Diff(before, w.Segments()); diff != "" {
		t.Fatalf("segments changed by paste (-want +got):\n%s", diff)
	}
	if errs := w.Errors(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %#v", errs)
	}
}

func TestWidget_IncompleteSegmentsClearAndTouchControl(t *testing.T) {
	control := formcontrol.New("")
	w := newWidget(t, control)

	_ = w.SetSegments(dateinput.Segments{Day: "15", Month: "06", Year: "2020"})
	if control.Value() != "06-15-2020" {
		t.Fatalf("expected merged value, got %q", control.Value())
	}

	control.Reset(control.Value())
	_ = w.SetYear("202")

	if got := control.Value(); got != "" {
		t.Fatalf("expected control cleared while typing, got %q", got)
	}
	if !control.Touched() || !control.Dirty() {
		t.Fatalf("expected control touched and dirty, got touched=%v dirty=%v", control.Touched(), control.Dirty())
	}
}

func TestWidget_ErrorKindsStayUnique(t *testing.T) {
	control := formcontrol.New("")
	w := newWidget(t, control,
		dateinput.WithMinDate(dateinput.Literal("01-01-2001")),
		dateinput.WithMaxDate(dateinput.Literal("12-31-2030")),
	)

	edits := []dateinput.Segments{
		{Day: "00", Month: "00", Year: "1"},
		{Day: "00", Month: "00", Year: "19"},
		{Day: "00", Month: "00", Year: "1999"},
		{Day: "30", Month: "02", Year: "2020"},
		{Day: "30", Month: "02", Year: "2021"},
		{Day: "01", Month: "01", Year: "2000"},
		{Day: "01", Month: "01", Year: "2000"},
		{Day: "01", Month: "01", Year: "2040"},
		{Day: "01", Month: "01", Year: "2040"},
		{Day: "00", Month: "13", Year: "0000"},
	}
	for _, edit := range edits {
		_ = w.SetSegments(edit)
		assertUniqueKinds(t, w.Errors())
	}
}

func TestWidget_ResubmittingSameSegmentsIsIdempotent(t *testing.T) {
	control := formcontrol.New("")
	w := newWidget(t, control, dateinput.WithMaxDate(dateinput.Literal("10-10-2022")))

	segments := dateinput.Segments{Day: "11", Month: "10", Year: "2022"}
	_ = w.SetSegments(segments)
	first := w.Snapshot()
	_ = w.SetSegments(segments)
	second := w.Snapshot()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("snapshot changed on resubmission (-first +second):\n%s", diff)
	}

	valid := dateinput.Segments{Day: "09", Month: "10", Year: "2022"}
	_ = w.SetSegments(valid)
	_ = w.SetSegments(valid)
	if got := control.Value(); got != "10-09-2022" {
		t.Fatalf("expected 10-09-2022, got %q", got)
	}
	if errs := w.Errors(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %#v", errs)
	}
}

func TestWidget_BoundSymmetry(t *testing.T) {
	cases := []struct {
		name    string
		value   dateinput.Segments
		wantMin bool
		wantMax bool
	}{
		{name: "before min", value: dateinput.Segments{Day: "31", Month: "12", Year: "2009"}, wantMin: true},
		{name: "equal min", value: dateinput.Segments{Day: "01", Month: "01", Year: "2010"}},
		{name: "inside", value: dateinput.Segments{Day: "15", Month: "06", Year: "2015"}},
		{name: "equal max", value: dateinput.Segments{Day: "31", Month: "12", Year: "2020"}},
		{name: "after max", value: dateinput.Segments{Day: "01", Month: "01", Year: "2021"}, wantMax: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			control := formcontrol.New("")
			w := newWidget(t, control,
				dateinput.WithMinDate(dateinput.Literal("01-01-2010")),
				dateinput.WithMaxDate(dateinput.Literal("2020-12-31")),
			)

			_ = w.SetSegments(tc.value)

			if got := w.HasError(dateinput.KindMinDate); got != tc.wantMin {
				t.Fatalf("minDateError = %v, want %v", got, tc.wantMin)
			}
			if got := w.HasError(dateinput.KindMaxDate); got != tc.wantMax {
				t.Fatalf("maxDateError = %v, want %v", got, tc.wantMax)
			}
			wantValue := tc.value.Canonical()
			if tc.wantMin || tc.wantMax {
				wantValue = ""
			}
			if got := control.Value(); got != wantValue {
				t.Fatalf("control = %q, want %q", got, wantValue)
			}
		})
	}
}

func TestWidget_ClearedValueReleasesLaterBoundChecks(t *testing.T) {
	control := formcontrol.New("")
	w := newWidget(t, control,
		dateinput.WithMinDate(dateinput.Literal("01-01-2010")),
		dateinput.WithMaxDate(dateinput.Literal("12-31-2020")),
	)

	_ = w.SetSegments(dateinput.Segments{Day: "01", Month: "01", Year: "2025"})
	if diff := cmp.Diff([]dateinput.Kind{dateinput.KindMaxDate}, kinds(w.Errors())); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	_ = w.SetYear("2005")
	if diff := cmp.Diff([]dateinput.Kind{dateinput.KindMinDate}, kinds(w.Errors())); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestWidget_ChecksRunInDeclaredOrder(t *testing.T) {
	control := formcontrol.New("")
	w := newWidget(t, control)

	_ = w.SetSegments(dateinput.Segments{Day: "00", Month: "00", Year: "0123"})

	want := []dateinput.Kind{dateinput.KindInvalidDay, dateinput.KindInvalidMonth, dateinput.KindInvalidYear}
	if diff := cmp.Diff(want, kinds(w.Errors())); diff != "" {
		t.Fatalf("errors order mismatch (-want +got):\n%s", diff)
	}

	_ = w.SetSegments(dateinput.Segments{Day: "10", Month: "10", Year: "2020"})
	if errs := w.Errors(); len(errs) != 0 {
		t.Fatalf("expected all errors removed, got %#v", errs)
	}
}

func TestWidget_ExternalWritesAreCalendarChecked(t *testing.T) {
	control := formcontrol.New("")
	w := newWidget(t, control)

	control.SetValue("04-31-2020")
	if got := control.Value(); got != "" {
		t.Fatalf("expected invalid external value to be cleared, got %q", got)
	}
	if !w.HasError(dateinput.KindInvalidFeb) {
		t.Fatalf("expected invalidFeb after external write")
	}

	control.SetValue("")
	if !w.HasError(dateinput.KindInvalidFeb) {
		t.Fatalf("empty writes must not touch invalidFeb")
	}

	control.SetValue("02-29-2024")
	if w.HasError(dateinput.KindInvalidFeb) {
		t.Fatalf("expected invalidFeb removed after a valid external write")
	}
	if got := control.Value(); got != "02-29-2024" {
		t.Fatalf("expected leap day to be kept, got %q", got)
	}
}

func TestWidget_LinkedBoundIsSnapshotted(t *testing.T) {
	minField := formcontrol.New("01-01-2005")
	control := formcontrol.New("")
	w := newWidget(t, control, dateinput.WithMinDate(dateinput.Linked(minField)))

	minField.SetValue("01-01-2000")

	if got := w.MinDate(); got != "01-01-2005" {
		t.Fatalf("expected snapshotted bound 01-01-2005, got %q", got)
	}
	_ = w.SetSegments(dateinput.Segments{Day: "01", Month: "01", Year: "2001"})
	if !w.HasError(dateinput.KindMinDate) {
		t.Fatalf("expected minDateError against the snapshotted bound")
	}
}

func TestWidget_EmptyLinkedBoundMeansNoBound(t *testing.T) {
	control := formcontrol.New("")
	w := newWidget(t, control, dateinput.WithMaxDate(dateinput.Linked(formcontrol.New(""))))

	_ = w.SetSegments(dateinput.Segments{Day: "01", Month: "01", Year: "2999"})
	if got := control.Value(); got != "01-01-2999" {
		t.Fatalf("expected value without bound, got %q", got)
	}
}

func TestWidget_FeedBoundFollowsEmissions(t *testing.T) {
	feed := dateinput.NewFeed("10-10-2022")
	control := formcontrol.New("")
	w := newWidget(t, control, dateinput.WithMaxDate(dateinput.Subscribed(feed)))

	_ = w.SetSegments(dateinput.Segments{Day: "11", Month: "10", Year: "2022"})
	if !w.HasError(dateinput.KindMaxDate) {
		t.Fatalf("expected maxDateError against the first emission")
	}

	feed.Publish("12-31-2022")
	waitFor(t, func() bool { return w.MaxDate() == "12-31-2022" })

	if !w.HasError(dateinput.KindMaxDate) {
		t.Fatalf("bound updates must not revalidate on their own")
	}
	_ = w.SetSegments(dateinput.Segments{Day: "11", Month: "10", Year: "2022"})
	if w.HasError(dateinput.KindMaxDate) {
		t.Fatalf("expected maxDateError removed on the next edit")
	}
	if got := control.Value(); got != "10-11-2022" {
		t.Fatalf("expected 10-11-2022, got %q", got)
	}
}

func TestWidget_ReplayedBoundAppliesToFirstEdit(t *testing.T) {
	for i := 0; i < 50; i++ {
		feed := dateinput.NewFeed("01-01-2020")
		control := formcontrol.New("")
		w, err := dateinput.New(context.Background(), control, dateinput.WithMinDate(dateinput.Subscribed(feed)))
		if err != nil {
			t.Fatalf("new widget: %v", err)
		}

		if got := w.MinDate(); got != "01-01-2020" {
			w.Destroy()
			t.Fatalf("run %d: expected bound resolved by New, got %q", i, got)
		}
		_ = w.SetSegments(dateinput.Segments{Day: "01", Month: "01", Year: "2019"})
		hasErr, value := w.HasError(dateinput.KindMinDate), control.Value()
		w.Destroy()

		if !hasErr || value != "" {
			t.Fatalf("run %d: edit bypassed the replayed bound (minDateError=%v, control=%q)", i, hasErr, value)
		}
	}
}

func TestWidget_BufferedStreamValueIsResolvedByNew(t *testing.T) {
	updates := make(chan string, 1)
	updates <- "12-31-2020"
	control := formcontrol.New("")
	w := newWidget(t, control, dateinput.WithMaxDate(dateinput.Stream(updates)))

	_ = w.SetSegments(dateinput.Segments{Day: "01", Month: "01", Year: "2021"})
	if !w.HasError(dateinput.KindMaxDate) {
		t.Fatalf("expected maxDateError against the buffered bound")
	}
}

func TestWidget_StreamBound(t *testing.T) {
	updates := make(chan string, 1)
	control := formcontrol.New("")
	w := newWidget(t, control, dateinput.WithMinDate(dateinput.Stream(updates)))

	if got := w.MinDate(); got != "" {
		t.Fatalf("expected no bound before the first emission, got %q", got)
	}
	updates <- "06-01-2020"
	waitFor(t, func() bool { return w.MinDate() == "06-01-2020" })

	_ = w.SetSegments(dateinput.Segments{Day: "31", Month: "05", Year: "2020"})
	if !w.HasError(dateinput.KindMinDate) {
		t.Fatalf("expected minDateError")
	}
}

func TestWidget_DestroyStopsAllMutation(t *testing.T) {
	feed := dateinput.NewFeed("10-10-2022")
	control := formcontrol.New("")
	w, err := dateinput.New(context.Background(), control, dateinput.WithMaxDate(dateinput.Subscribed(feed)))
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}
	waitFor(t, func() bool { return w.MaxDate() == "10-10-2022" })

	w.Destroy()
	w.Destroy()

	if err := w.SetDay("00"); !errors.Is(err, dateinput.ErrDestroyed) {
		t.Fatalf("expected ErrDestroyed, got %v", err)
	}
	feed.Publish("01-01-2030")
	control.SetValue("02-30-2020")

	if got := w.MaxDate(); got != "10-10-2022" {
		t.Fatalf("expected bound frozen after destroy, got %q", got)
	}
	if errs := w.Errors(); len(errs) != 0 {
		t.Fatalf("expected no errors after destroy, got %#v", errs)
	}
	if got := control.Value(); got != "02-30-2020" {
		t.Fatalf("destroyed widget must not rewrite the control, got %q", got)
	}
}

func TestWidget_ParentContextCancelEndsLifetime(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	control := formcontrol.New("")
	w, err := dateinput.New(ctx, control)
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}
	defer w.Destroy()

	cancel()
	if err := w.SetMonth("01"); !errors.Is(err, dateinput.ErrDestroyed) {
		t.Fatalf("expected ErrDestroyed after cancel, got %v", err)
	}
}

func TestWidget_MessageOverrides(t *testing.T) {
	control := formcontrol.New("")
	w := newWidget(t, control,
		dateinput.WithMessages(map[dateinput.Kind]string{dateinput.KindInvalidMonth: "Month cannot be 00."}),
	)

	_ = w.SetSegments(dateinput.Segments{Day: "01", Month: "00", Year: "2020"})

	want := []dateinput.ErrorEntry{{Kind: dateinput.KindInvalidMonth, Message: "Month cannot be 00."}}
	if diff := cmp.Diff(want, w.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestWidget_SnapshotCarriesConfiguration(t *testing.T) {
	control := formcontrol.New("")
	w := newWidget(t, control,
		dateinput.WithName("Birth date"),
		dateinput.WithReadOnly(true),
		dateinput.WithDateOfBirth(true),
		dateinput.WithMaxDate(dateinput.Literal("12-31-2010")),
	)
	_ = w.SetSegments(dateinput.Segments{Day: "02", Month: "03", Year: "1980"})

	want := dateinput.State{
		Name:        "Birth date",
		ReadOnly:    true,
		DateOfBirth: true,
		Segments:    dateinput.Segments{Day: "02", Month: "03", Year: "1980"},
		Value:       "03-02-1980",
		MaxDate:     "12-31-2010",
	}
	if diff := cmp.Diff(want, w.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}
