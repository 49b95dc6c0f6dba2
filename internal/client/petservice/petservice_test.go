package petservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"dailypawie/internal/domain/pets"
	"dailypawie/internal/platform/httpclient"
)

// -------------------------
// Backend fake (store de documentos genérico)
// -------------------------

// fakeBackend guarda el documento como map, igual que un CMS genérico:
// GET lo devuelve entero, PATCH mergea secciones y asigna ids srv-N a los
// sub-registros que llegan con id vacío.
type fakeBackend struct {
	mu  sync.Mutex
	doc map[string]any

	// patchStatus != 0 => PATCH responde ese status.
	// applyOnError simula el write-timeout: la mutación commitea igual.
	patchStatus  int
	applyOnError bool

	nextID     int
	getCalls   int
	patchCalls int
}

func newFakeBackend(petID string) *fakeBackend {
	return &fakeBackend{
		doc: map[string]any{
			"id":            petID,
			"name":          "Milo",
			"species":       "dog",
			"petOwner":      "owner-1",
			"medicalRecord": map[string]any{},
			"dailyCare":     map[string]any{},
			"reminders":     []any{},
		},
	}
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !strings.HasPrefix(r.URL.Path, "/api/pets/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		b.getCalls++
		writeDoc(w, b.doc)
	case http.MethodPatch:
		b.patchCalls++

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if b.patchStatus != 0 {
			if b.applyOnError {
				b.apply(body)
			}
			http.Error(w, "write timeout", b.patchStatus)
			return
		}

		b.apply(body)
		writeDoc(w, b.doc)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (b *fakeBackend) apply(body map[string]any) {
	for k, v := range body {
		b.doc[k] = v
	}

	if mr, ok := b.doc["medicalRecord"].(map[string]any); ok {
		for _, section := range mr {
			if arr, ok := section.([]any); ok {
				b.assignIDs(arr)
			}
		}
	}
	if arr, ok := b.doc["reminders"].([]any); ok {
		b.assignIDs(arr)
	}
}

func (b *fakeBackend) assignIDs(arr []any) {
	for _, item := range arr {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if id, _ := rec["id"].(string); id == "" {
			b.nextID++
			rec["id"] = fmt.Sprintf("srv-%d", b.nextID)
		}
	}
}

// seedMedical pisa un array de medicalRecord directamente en el store.
func (b *fakeBackend) seedMedical(category string, records []any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	mr := b.doc["medicalRecord"].(map[string]any)
	mr[category] = records
}

func (b *fakeBackend) seedReminders(records []any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.doc["reminders"] = records
}

func writeDoc(w http.ResponseWriter, doc map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(doc)
}

func newTestClient(t *testing.T, b *fakeBackend) *Client {
	t.Helper()

	ts := httptest.NewServer(b)
	t.Cleanup(ts.Close)

	api, err := httpclient.New(ts.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("httpclient: %v", err)
	}

	c := New(api, nil)
	c.retryDelay = 0
	c.sleep = func(time.Duration) {}
	return c
}

// -------------------------
// Tests
// -------------------------

func TestAddVaccine_AddThenList(t *testing.T) {
	b := newFakeBackend("pet-1")
	c := newTestClient(t, b)

	updated, err := c.AddVaccine(context.Background(), "pet-1", pets.Vaccine{
		Name: "rabies",
		Date: "2024-06-01",
	})
	if err != nil {
		t.Fatalf("AddVaccine: %v", err)
	}

	vs := updated.MedicalRecord.Vaccines
	if len(vs) != 1 {
		t.Fatalf("expected 1 vaccine, got %d", len(vs))
	}
	if vs[0].ID == "" || strings.HasPrefix(vs[0].ID, "optimistic-") {
		t.Fatalf("expected backend-assigned id, got %q", vs[0].ID)
	}
	if vs[0].Name != "rabies" || vs[0].Date != "2024-06-01" {
		t.Fatalf("unexpected record: %+v", vs[0])
	}

	// GetPet confirma, sin duplicados
	fresh, err := c.GetPet(context.Background(), "pet-1")
	if err != nil {
		t.Fatalf("GetPet: %v", err)
	}
	if len(fresh.MedicalRecord.Vaccines) != 1 {
		t.Fatalf("expected exactly 1 vaccine after refetch, got %d", len(fresh.MedicalRecord.Vaccines))
	}
}

func TestAddVaccine_ForcesEmptyIDOnAdd(t *testing.T) {
	b := newFakeBackend("pet-1")
	c := newTestClient(t, b)

	// El caller manda un id propio: debe ser ignorado, el store asigna.
	updated, err := c.AddVaccine(context.Background(), "pet-1", pets.Vaccine{
		ID:   "client-made-id",
		Name: "parvo",
		Date: "2024-03-10",
	})
	if err != nil {
		t.Fatalf("AddVaccine: %v", err)
	}
	got := updated.MedicalRecord.Vaccines[0].ID
	if got == "client-made-id" || got == "" {
		t.Fatalf("expected store-assigned id, got %q", got)
	}
}

func TestAddVaccine_ValidationFailsBeforeNetwork(t *testing.T) {
	b := newFakeBackend("pet-1")
	c := newTestClient(t, b)

	_, err := c.AddVaccine(context.Background(), "pet-1", pets.Vaccine{Name: "rabies"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if b.getCalls != 0 || b.patchCalls != 0 {
		t.Fatalf("expected no network calls, got get=%d patch=%d", b.getCalls, b.patchCalls)
	}
}

func TestUpdateAllergy_PreservesIdentity(t *testing.T) {
	b := newFakeBackend("pet-1")
	b.seedMedical("allergies", []any{
		map[string]any{"id": "a1", "name": "pollen", "severity": "mild"},
		map[string]any{"id": "a2", "name": "chicken", "severity": "severe"},
	})
	c := newTestClient(t, b)

	// Overlay parcial: severity cambia, name queda.
	updated, err := c.UpdateAllergy(context.Background(), "pet-1", "a1", pets.Allergy{
		Severity: "severe",
	})
	if err != nil {
		t.Fatalf("UpdateAllergy: %v", err)
	}

	as := updated.MedicalRecord.Allergies
	if len(as) != 2 {
		t.Fatalf("expected 2 allergies, got %d", len(as))
	}
	var a1, a2 pets.Allergy
	for _, a := range as {
		switch a.ID {
		case "a1":
			a1 = a
		case "a2":
			a2 = a
		}
	}
	if a1.ID != "a1" || a1.Name != "pollen" || a1.Severity != "severe" {
		t.Fatalf("unexpected updated record: %+v", a1)
	}
	if a2.Name != "chicken" || a2.Severity != "severe" {
		t.Fatalf("other record must not change: %+v", a2)
	}
}

func TestUpdateAllergy_CallerIDCannotDriftIdentity(t *testing.T) {
	b := newFakeBackend("pet-1")
	b.seedMedical("allergies", []any{
		map[string]any{"id": "a1", "name": "pollen"},
	})
	c := newTestClient(t, b)

	updated, err := c.UpdateAllergy(context.Background(), "pet-1", "a1", pets.Allergy{
		ID:   "totally-different",
		Name: "dust",
	})
	if err != nil {
		t.Fatalf("UpdateAllergy: %v", err)
	}
	a := updated.MedicalRecord.Allergies[0]
	if a.ID != "a1" {
		t.Fatalf("identity drift: got id %q", a.ID)
	}
	if a.Name != "dust" {
		t.Fatalf("expected updated name, got %q", a.Name)
	}
}

func TestUpdateAllergy_NotFound(t *testing.T) {
	b := newFakeBackend("pet-1")
	c := newTestClient(t, b)

	_, err := c.UpdateAllergy(context.Background(), "pet-1", "nope", pets.Allergy{Name: "dust"})
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if b.patchCalls != 0 {
		t.Fatalf("not-found must not PATCH, got %d calls", b.patchCalls)
	}
}

func TestUpdate_RejectsPlaceholderID(t *testing.T) {
	b := newFakeBackend("pet-1")
	c := newTestClient(t, b)

	for _, id := range []string{"", "optimistic-123", "temp-9"} {
		_, err := c.UpdateAllergy(context.Background(), "pet-1", id, pets.Allergy{Name: "dust"})
		if err == nil {
			t.Fatalf("expected error for id %q", id)
		}
		if id != "" && !errors.Is(err, ErrPlaceholderID) {
			t.Fatalf("expected ErrPlaceholderID for %q, got %v", id, err)
		}
	}
	if b.getCalls != 0 {
		t.Fatalf("placeholder ids must fail before network, got %d gets", b.getCalls)
	}
}

func TestDeleteReminder_Exact(t *testing.T) {
	b := newFakeBackend("pet-1")
	b.seedReminders([]any{
		map[string]any{"id": "r1", "type": "medication", "date": "2024-06-01", "time": "08:00"},
		map[string]any{"id": "r2", "type": "food", "date": "2024-06-02"},
	})
	c := newTestClient(t, b)

	updated, err := c.DeleteReminder(context.Background(), "pet-1", "r1")
	if err != nil {
		t.Fatalf("DeleteReminder: %v", err)
	}
	if len(updated.Reminders) != 1 {
		t.Fatalf("expected 1 reminder left, got %d", len(updated.Reminders))
	}
	if updated.Reminders[0].ID != "r2" {
		t.Fatalf("wrong record deleted, left %q", updated.Reminders[0].ID)
	}

	// Borrar un id inexistente: not-found, el array no cambia.
	_, err = c.DeleteReminder(context.Background(), "pet-1", "r1")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	fresh, _ := c.GetPet(context.Background(), "pet-1")
	if len(fresh.Reminders) != 1 {
		t.Fatalf("array must be unchanged after failed delete, got %d", len(fresh.Reminders))
	}
}

func TestAddVetAppointment_ReconciledSuccess(t *testing.T) {
	// El PATCH devuelve 500 pero la escritura commiteó: el refetch encuentra
	// la cita por clave natural (date+reason) y se reporta éxito.
	b := newFakeBackend("pet-1")
	b.patchStatus = http.StatusInternalServerError
	b.applyOnError = true
	c := newTestClient(t, b)

	updated, err := c.AddVetAppointment(context.Background(), "pet-1", pets.VetAppointment{
		Date:   "2024-07-15",
		Reason: "limping",
	})
	if err != nil {
		t.Fatalf("expected reconciled success, got %v", err)
	}

	as := updated.MedicalRecord.VetAppointments
	if len(as) != 1 || as[0].Date != "2024-07-15" || as[0].Reason != "limping" {
		t.Fatalf("unexpected appointments: %+v", as)
	}
	if as[0].ID == "" {
		t.Fatal("reconciled record must carry the store-assigned id")
	}
	if b.getCalls < 2 {
		t.Fatalf("expected fetch + reconcile refetch, got %d gets", b.getCalls)
	}
}

func TestAddReminder_FailurePropagatesWhenAbsent(t *testing.T) {
	// El PATCH falla y la mutación NO quedó: el error original se re-lanza.
	b := newFakeBackend("pet-1")
	b.patchStatus = http.StatusInternalServerError
	b.applyOnError = false
	c := newTestClient(t, b)

	_, err := c.AddReminder(context.Background(), "pet-1", pets.Reminder{
		Type: pets.ReminderMedication,
		Date: "2024-06-01",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var he *httpclient.HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected wrapped HTTP 500, got %v", err)
	}
}

func TestDeleteVaccine_ReconciledSuccess(t *testing.T) {
	// PATCH falla pero el registro ya no está en el documento fresco.
	b := newFakeBackend("pet-1")
	b.seedMedical("vaccines", []any{
		map[string]any{"id": "v1", "name": "rabies", "date": "2024-01-01"},
	})
	b.patchStatus = http.StatusInternalServerError
	b.applyOnError = true
	c := newTestClient(t, b)

	updated, err := c.DeleteVaccine(context.Background(), "pet-1", "v1")
	if err != nil {
		t.Fatalf("expected reconciled delete success, got %v", err)
	}
	if len(updated.MedicalRecord.Vaccines) != 0 {
		t.Fatalf("expected empty array, got %+v", updated.MedicalRecord.Vaccines)
	}
}

func TestUpdateLaboratoryTest_ReconciledByStoredState(t *testing.T) {
	// PATCH falla pero el update commiteó: el registro en ese id coincide con
	// el merge esperado, se reporta éxito.
	b := newFakeBackend("pet-1")
	b.seedMedical("laboratoryTests", []any{
		map[string]any{"id": "t1", "type": "blood", "date": "2024-02-02", "result": "pending"},
	})
	b.patchStatus = http.StatusInternalServerError
	b.applyOnError = true
	c := newTestClient(t, b)

	updated, err := c.UpdateLaboratoryTest(context.Background(), "pet-1", "t1", pets.LaboratoryTest{
		Result: "normal",
	})
	if err != nil {
		t.Fatalf("expected reconciled update success, got %v", err)
	}
	lt := updated.MedicalRecord.LaboratoryTests[0]
	if lt.ID != "t1" || lt.Result != "normal" || lt.Type != "blood" {
		t.Fatalf("unexpected record: %+v", lt)
	}
}
