package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"campusevents/internal/domain"
)

func TestRosterService_List(t *testing.T) {
	events := newFakeEventRepo()
	regs := newFakeRegistrationRepo(events)
	deadline := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	event := seedEvent(t, events, 10, deadline)
	svc := NewRosterService(events, regs)

	t.Run("missing event", func(t *testing.T) {
		_, err := svc.List(context.Background(), "missing")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("empty roster is an empty slice", func(t *testing.T) {
		got, err := svc.List(context.Background(), event.ID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty slice, got %#v", got)
		}
	})

	t.Run("returns registrations oldest first", func(t *testing.T) {
		base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		for i, email := range []string{"alice@x.edu", "bob@x.edu"} {
			reg := domain.NewRegistration(event.ID, "Student", "R1", "CSE", email, base.Add(time.Duration(i)*time.Minute))
			if err := regs.Admit(context.Background(), reg); err != nil {
				t.Fatalf("admit: %v", err)
			}
		}
		got, err := svc.List(context.Background(), event.ID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if got[0].Email != "alice@x.edu" || got[1].Email != "bob@x.edu" {
			t.Errorf("order = %s, %s", got[0].Email, got[1].Email)
		}
	})
}

func TestRosterService_ExportCSV(t *testing.T) {
	events := newFakeEventRepo()
	regs := newFakeRegistrationRepo(events)
	deadline := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	event := seedEvent(t, events, 10, deadline)
	svc := NewRosterService(events, regs)

	createdAt := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	reg := domain.NewRegistration(event.ID, `Smith, John "JJ"`, "REG001", "Computer Science", "john@x.edu", createdAt)
	if err := regs.Admit(context.Background(), reg); err != nil {
		t.Fatalf("admit: %v", err)
	}

	out, err := svc.ExportCSV(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want header + 1 record:\n%s", len(lines), out)
	}
	if lines[0] != "Name,Roll Number,Department,Email,Registered At" {
		t.Errorf("header = %q", lines[0])
	}
	// Name holds a comma and quotes; RFC 4180 wraps it and doubles the quotes.
	want := `"Smith, John ""JJ""",REG001,Computer Science,john@x.edu,2025-03-01T10:30:00Z`
	if lines[1] != want {
		t.Errorf("record = %q, want %q", lines[1], want)
	}
}

func TestRosterService_ExportCSV_MissingEvent(t *testing.T) {
	events := newFakeEventRepo()
	regs := newFakeRegistrationRepo(events)
	svc := NewRosterService(events, regs)

	_, err := svc.ExportCSV(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
