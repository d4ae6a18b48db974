package model

import (
	"errors"
	"testing"
)

func TestParseModerationStatus(t *testing.T) {
	for _, s := range []string{"in_process", "approved", "rejected"} {
		if got, ok := ParseModerationStatus(s); !ok || got.String() != s {
			t.Fatalf("ParseModerationStatus(%q) = %q, %v", s, got, ok)
		}
	}
	for _, s := range []string{"", "Approved", "deleted"} {
		if _, ok := ParseModerationStatus(s); ok {
			t.Fatalf("ParseModerationStatus(%q) accepted", s)
		}
	}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    ModerationStatus
		to      ModerationStatus
		staff   bool
		want    ModerationStatus
		wantErr error
	}{
		{"approve", StatusInProcess, StatusApproved, true, StatusApproved, nil},
		{"reject", StatusInProcess, StatusRejected, true, StatusRejected, nil},
		{"re-approve rejected", StatusRejected, StatusApproved, true, StatusApproved, nil},
		{"reject approved", StatusApproved, StatusRejected, true, StatusRejected, nil},
		{"back to in process", StatusApproved, StatusInProcess, true, StatusApproved, ErrInvalidTransition},
		{"non staff", StatusInProcess, StatusApproved, false, StatusInProcess, ErrTransitionForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Transition(tt.to, tt.staff)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVisibility(t *testing.T) {
	if StatusInProcess.Visible(false) || StatusRejected.Visible(false) {
		t.Fatal("non-approved recipe visible to non-staff")
	}
	if !StatusApproved.Visible(false) || !StatusRejected.Visible(true) {
		t.Fatal("visibility rules broken")
	}
	if VisibleStatuses(true) != nil {
		t.Fatal("staff should not be restricted")
	}
	if got := VisibleStatuses(false); len(got) != 1 || got[0] != StatusApproved {
		t.Fatalf("VisibleStatuses(false) = %v", got)
	}
}

func TestScan(t *testing.T) {
	var s ModerationStatus
	if err := s.Scan([]byte("approved")); err != nil || s != StatusApproved {
		t.Fatalf("Scan bytes = %q, %v", s, err)
	}
	if err := s.Scan(42); err == nil {
		t.Fatal("Scan accepted int")
	}
}

func TestIsOwnedBy(t *testing.T) {
	r := &Recipe{UserID: 7}
	if !r.IsOwnedBy(7) || r.IsOwnedBy(8) || r.IsOwnedBy(0) {
		t.Fatal("IsOwnedBy broken")
	}
}
