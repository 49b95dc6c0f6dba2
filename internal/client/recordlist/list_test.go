package recordlist

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"dailypawie/internal/domain/pets"
)

func newReminderList() *List[pets.Reminder] {
	l := New(Ops[pets.Reminder]{
		Key:    pets.Reminder.Key,
		ID:     func(r pets.Reminder) string { return r.ID },
		WithID: func(r pets.Reminder, id string) pets.Reminder { r.ID = id; return r },
	})
	l.sleep = func(time.Duration) {}
	return l
}

func TestSubmit_SuccessReplacesOptimisticWithServerTruth(t *testing.T) {
	l := newReminderList()

	var sawPlaceholder bool
	rec := pets.Reminder{Type: pets.ReminderFood, Date: "2024-06-01", Time: "08:00"}

	err := l.Submit(context.Background(), rec,
		func(ctx context.Context) error {
			// Mientras la mutación está en vuelo, el placeholder es visible.
			for _, r := range l.records {
				if strings.HasPrefix(r.ID, OptimisticPrefix) {
					sawPlaceholder = true
				}
			}
			return nil
		},
		func(ctx context.Context) ([]pets.Reminder, error) {
			return []pets.Reminder{{ID: "srv-1", Type: pets.ReminderFood, Date: "2024-06-01", Time: "08:00"}}, nil
		},
	)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !sawPlaceholder {
		t.Fatal("expected optimistic placeholder during submit")
	}

	got := l.Records()
	if len(got) != 1 || got[0].ID != "srv-1" {
		t.Fatalf("expected server truth only, got %+v", got)
	}

	b := l.Banner()
	if b == nil || b.Kind != BannerSuccess {
		t.Fatalf("expected success banner, got %+v", b)
	}
}

func TestSubmit_OptimisticRollbackOnFailure(t *testing.T) {
	// Escenario del protocolo: la mutación falla y el refetch muestra que el
	// registro no quedó. El placeholder no puede seguir visible y el banner
	// es de error.
	l := newReminderList()
	l.SetRecords([]pets.Reminder{{ID: "r1", Type: pets.ReminderFood, Date: "2024-05-01"}})

	boom := errors.New("network down")
	err := l.Submit(context.Background(),
		pets.Reminder{Type: pets.ReminderVaccine, Date: "2024-06-01"},
		func(ctx context.Context) error { return boom },
		func(ctx context.Context) ([]pets.Reminder, error) {
			return []pets.Reminder{{ID: "r1", Type: pets.ReminderFood, Date: "2024-05-01"}}, nil
		},
	)
	if !errors.Is(err, boom) {
		t.Fatalf("expected submit error, got %v", err)
	}

	for _, r := range l.Records() {
		if strings.HasPrefix(r.ID, OptimisticPrefix) {
			t.Fatalf("placeholder survived rollback: %+v", r)
		}
	}
	if len(l.Records()) != 1 {
		t.Fatalf("expected original list, got %+v", l.Records())
	}

	b := l.Banner()
	if b == nil || b.Kind != BannerError {
		t.Fatalf("expected error banner, got %+v", b)
	}
}

func TestSubmit_PlaceholderDroppedEvenIfRefetchFails(t *testing.T) {
	l := newReminderList()

	_ = l.Submit(context.Background(),
		pets.Reminder{Type: pets.ReminderVaccine, Date: "2024-06-01"},
		func(ctx context.Context) error { return errors.New("down") },
		func(ctx context.Context) ([]pets.Reminder, error) { return nil, errors.New("still down") },
	)

	for _, r := range l.Records() {
		if strings.HasPrefix(r.ID, OptimisticPrefix) {
			t.Fatalf("placeholder survived failed refetch: %+v", r)
		}
	}
}

func TestBanner_AutoDismissAfterTTL(t *testing.T) {
	l := newReminderList()

	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	now := base
	l.now = func() time.Time { return now }

	err := l.Submit(context.Background(),
		pets.Reminder{Type: pets.ReminderFood, Date: "2024-06-01"},
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) ([]pets.Reminder, error) { return nil, nil },
	)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if l.Banner() == nil {
		t.Fatal("expected active banner")
	}

	now = base.Add(2999 * time.Millisecond)
	if l.Banner() == nil {
		t.Fatal("banner must still be visible before 3s")
	}

	now = base.Add(3000 * time.Millisecond)
	if l.Banner() != nil {
		t.Fatal("banner must auto-dismiss after 3s")
	}
}

func TestCanModify(t *testing.T) {
	l := newReminderList()

	cases := map[string]bool{
		"srv-1":           true,
		"":                false,
		"optimistic-1234": false,
		"temp-7":          false,
	}
	for id, want := range cases {
		if got := l.CanModify(id); got != want {
			t.Errorf("CanModify(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	l := newReminderList()
	l.SetRecords([]pets.Reminder{{ID: "r1", Type: pets.ReminderFood, Date: "2024-05-01"}})

	var called bool
	do := func(ctx context.Context) error { called = true; return nil }
	refetch := func(ctx context.Context) ([]pets.Reminder, error) { return nil, nil }

	// Sin armar: no ejecuta.
	if err := l.ConfirmDelete(context.Background(), do, refetch); err == nil {
		t.Fatal("expected error without pending confirmation")
	}
	if called {
		t.Fatal("delete must not run without confirmation")
	}

	if err := l.RequestDelete("optimistic-1"); err == nil {
		t.Fatal("expected rejection for placeholder id")
	}

	if err := l.RequestDelete("r1"); err != nil {
		t.Fatalf("RequestDelete: %v", err)
	}
	if l.PendingDelete() != "r1" {
		t.Fatalf("expected pending delete r1, got %q", l.PendingDelete())
	}

	l.CancelDelete()
	if l.PendingDelete() != "" {
		t.Fatal("cancel must clear pending delete")
	}

	_ = l.RequestDelete("r1")
	if err := l.ConfirmDelete(context.Background(), do, refetch); err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	if !called {
		t.Fatal("confirmed delete must run")
	}
}

func TestSubmit_RecoversPhaseAfterCallbackPanic(t *testing.T) {
	// Un panic dentro del callback no puede dejar la lista clavada en
	// submitting: el siguiente Submit tiene que poder ejecutarse.
	l := newReminderList()

	func() {
		defer func() { _ = recover() }()
		_ = l.Submit(context.Background(),
			pets.Reminder{Type: pets.ReminderFood, Date: "2024-06-01"},
			func(ctx context.Context) error { panic("boom") },
			func(ctx context.Context) ([]pets.Reminder, error) { return nil, nil },
		)
	}()

	if l.Phase() != PhaseIdle {
		t.Fatalf("phase = %s after panic, want idle", l.Phase())
	}

	err := l.Submit(context.Background(),
		pets.Reminder{Type: pets.ReminderFood, Date: "2024-06-02"},
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) ([]pets.Reminder, error) {
			return []pets.Reminder{{ID: "srv-1", Type: pets.ReminderFood, Date: "2024-06-02"}}, nil
		},
	)
	if err != nil {
		t.Fatalf("Submit after panic: %v", err)
	}

	l.SetRecords([]pets.Reminder{{ID: "r1", Type: pets.ReminderFood, Date: "2024-05-01"}})
	_ = l.RequestDelete("r1")
	func() {
		defer func() { _ = recover() }()
		_ = l.ConfirmDelete(context.Background(),
			func(ctx context.Context) error { panic("boom") },
			func(ctx context.Context) ([]pets.Reminder, error) { return nil, nil },
		)
	}()
	if l.Phase() != PhaseIdle {
		t.Fatalf("phase = %s after delete panic, want idle", l.Phase())
	}
}

func TestDedup_Idempotent(t *testing.T) {
	key := pets.Reminder.Key
	in := []pets.Reminder{
		{ID: "a", Type: pets.ReminderFood, Date: "2024-06-01", Time: "08:00"},
		{ID: "b", Type: pets.ReminderFood, Date: "2024-06-01", Time: "08:00"}, // duplicado
		{ID: "c", Type: pets.ReminderFood, Date: "2024-06-01", Time: "09:00"},
	}

	once := Dedup(in, key)
	twice := Dedup(once, key)

	if len(once) != 2 {
		t.Fatalf("expected 2 after dedup, got %d", len(once))
	}
	if len(once) != len(twice) {
		t.Fatalf("dedup not idempotent: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("dedup not idempotent at %d: %+v vs %+v", i, once[i], twice[i])
		}
	}
	// Se conserva la primera aparición.
	if once[0].ID != "a" {
		t.Fatalf("expected first occurrence kept, got %q", once[0].ID)
	}
}
