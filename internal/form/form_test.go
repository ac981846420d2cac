package form

import (
	"testing"
)

func TestDefault(t *testing.T) {
	got := Default()
	if got.Text != "" || got.Choice != "option1" || got.Toggle {
		t.Fatalf("Default() = %v, want empty text, option1, toggle off", got)
	}
}

func TestForm_SettersNotifyOnlyOnChange(t *testing.T) {
	f := New(Default())
	var seen []Snapshot
	f.Subscribe(func(s Snapshot) { seen = append(seen, s) })

	f.SetText("a")
	f.SetText("a")
	f.SetToggle(true)
	if err := f.SetChoice("option2"); err != nil {
		t.Fatalf("SetChoice: %v", err)
	}

	if len(seen) != 3 {
		t.Fatalf("got %d notifications, want 3: %v", len(seen), seen)
	}
	want := Snapshot{Text: "a", Choice: "option2", Toggle: true}
	if seen[2] != want {
		t.Fatalf("last notification = %v, want %v", seen[2], want)
	}
}

func TestForm_SetChoiceRejectsUnknown(t *testing.T) {
	f := New(Default())
	if err := f.SetChoice("option9"); err == nil {
		t.Fatal("SetChoice(option9) returned nil error")
	}
	if f.Values().Choice != "option1" {
		t.Fatalf("Choice = %q, want option1", f.Values().Choice)
	}
}

func TestForm_UnsubscribeStopsNotifications(t *testing.T) {
	f := New(Default())
	calls := 0
	unsubscribe := f.Subscribe(func(Snapshot) { calls++ })
	f.SetText("x")
	unsubscribe()
	f.SetText("y")
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestForm_ReconcileDoesNotNotify(t *testing.T) {
	f := New(Default())
	calls := 0
	f.Subscribe(func(Snapshot) { calls++ })

	base := f.Values()
	result := Snapshot{Text: "normalized", Choice: "option3", Toggle: true}
	merged, changed := f.Reconcile(base, result)

	if calls != 0 {
		t.Fatalf("Reconcile notified %d subscribers", calls)
	}
	if !changed || merged != result {
		t.Fatalf("Reconcile = %v, %t; want %v, true", merged, changed, result)
	}
	if f.Revision() != 1 {
		t.Fatalf("Revision = %d, want 1", f.Revision())
	}
}

func TestForm_ReconcileKeepsNewerLocalEdits(t *testing.T) {
	f := New(Default())
	f.SetText("abc")
	base := f.Values()
	f.SetText("abcd")

	merged, changed := f.Reconcile(base, base)
	if changed {
		t.Fatalf("Reconcile changed values to %v", merged)
	}
	if f.Values().Text != "abcd" {
		t.Fatalf("Text = %q, want abcd", f.Values().Text)
	}
	if f.Revision() != 0 {
		t.Fatalf("Revision = %d, want 0", f.Revision())
	}
}

func TestMerge(t *testing.T) {
	base := Snapshot{Text: "a", Choice: "option1"}
	tests := []struct {
		name   string
		local  Snapshot
		remote Snapshot
		want   Snapshot
	}{
		{
			name:   "untouched takes remote",
			local:  base,
			remote: Snapshot{Text: "A", Choice: "option2", Toggle: true},
			want:   Snapshot{Text: "A", Choice: "option2", Toggle: true},
		},
		{
			name:   "local text edit wins",
			local:  Snapshot{Text: "ab", Choice: "option1"},
			remote: Snapshot{Text: "A", Choice: "option1", Toggle: true},
			want:   Snapshot{Text: "ab", Choice: "option1", Toggle: true},
		},
		{
			name:   "local toggle edit wins",
			local:  Snapshot{Text: "a", Choice: "option1", Toggle: true},
			remote: Snapshot{Text: "a", Choice: "option3"},
			want:   Snapshot{Text: "a", Choice: "option3", Toggle: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Merge(base, tt.local, tt.remote); got != tt.want {
				t.Fatalf("Merge = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshot_Diff(t *testing.T) {
	a := Snapshot{Text: "a", Choice: "option1"}
	b := Snapshot{Text: "b", Choice: "option1", Toggle: true}
	diff := a.Diff(b)
	if len(diff) != 2 || diff[0] != FieldText || diff[1] != FieldToggle {
		t.Fatalf("Diff = %v, want [textInput checkboxInput]", diff)
	}
	if len(a.Diff(a)) != 0 {
		t.Fatal("Diff of equal snapshots is not empty")
	}
}
