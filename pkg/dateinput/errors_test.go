package dateinput

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestErrorList_AddIsUniqueByKind(t *testing.T) {
	var list ErrorList

	if !list.Add(KindInvalidDay, "first") {
		t.Fatalf("expected first add to change the list")
	}
	if list.Add(KindInvalidDay, "second") {
		t.Fatalf("expected duplicate add to be ignored")
	}
	list.Add(KindInvalidYear, "year")

	want := []ErrorEntry{
		{Kind: KindInvalidDay, Message: "first"},
		{Kind: KindInvalidYear, Message: "year"},
	}
	if diff := cmp.Diff(want, list.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorList_RemoveKeepsOrder(t *testing.T) {
	var list ErrorList
	list.Add(KindInvalidDay, "d")
	list.Add(KindInvalidMonth, "m")
	list.Add(KindInvalidYear, "y")

	if !list.Remove(KindInvalidMonth) {
		t.Fatalf("expected remove to change the list")
	}
	if list.Remove(KindInvalidMonth) {
		t.Fatalf("expected second remove to be a no-op")
	}
	if list.Remove(KindMaxDate) {
		t.Fatalf("expected removing an absent kind to be a no-op")
	}

	want := []ErrorEntry{{Kind: KindInvalidDay, Message: "d"}, {Kind: KindInvalidYear, Message: "y"}}
	if diff := cmp.Diff(want, list.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	if list.Len() != 2 {
		t.Fatalf("expected len 2, got %d", list.Len())
	}
}

func TestErrorList_EntriesIsACopy(t *testing.T) {
	var list ErrorList
	list.Add(KindInvalidFeb, "feb")

	entries := list.Entries()
	entries[0].Message = "mutated"

	if got := list.Entries()[0].Message; got != "feb" {
		t.Fatalf("expected internal entry untouched, got %q", got)
	}
}

func TestErrorEntry_JSONShape(t *testing.T) {
	raw, err := json.Marshal([]ErrorEntry{{Kind: KindMinDate, Message: "Too early"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(raw); got != `[{"name":"minDateError","message":"Too early"}]` {
		t.Fatalf("unexpected JSON %s", got)
	}
}

func TestOptions_Message(t *testing.T) {
	opts := NewOptions(
		WithMinDateErrorContent("min content"),
		WithMessages(map[Kind]string{KindInvalidDay: "custom day", KindMaxDate: "max override"}),
		WithMaxDateErrorContent("max content"),
	)

	cases := map[Kind]string{
		KindInvalidDay:   "custom day",
		KindInvalidMonth: "Please enter a valid month.",
		KindMinDate:      "min content",
		KindMaxDate:      "max override",
	}
	for kind, want := range cases {
		if got := opts.Message(kind); got != want {
			t.Fatalf("Message(%s) = %q, want %q", kind, got, want)
		}
	}
}

func TestNewOptions_CopiesMessages(t *testing.T) {
	messages := map[Kind]string{KindInvalidYear: "year"}
	opts := NewOptions(WithMessages(messages))
	messages[KindInvalidYear] = "changed"

	if got := opts.Message(KindInvalidYear); got != "year" {
		t.Fatalf("expected options to own their messages, got %q", got)
	}
}
