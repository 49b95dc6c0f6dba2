package petservice

import (
	"context"
	"fmt"
	"strings"

	"dailypawie/internal/domain/pets"
)

// Cuerpos de PATCH: siempre viaja la sección entera con el array modificado.
// medicalRecord envuelve las categorías médicas; reminders vive en el tope
// del documento.
type patchMedicalRecord struct {
	MedicalRecord pets.MedicalRecord `json:"medicalRecord"`
}

type patchReminders struct {
	Reminders []pets.Reminder `json:"reminders"`
}

func required(category, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s requires %s", ErrInvalidInput, category, field)
	}
	return nil
}

var vaccineOps = ops[pets.Vaccine]{
	category: "vaccine",
	validate: func(v pets.Vaccine) error {
		if err := required("vaccine", "name", v.Name); err != nil {
			return err
		}
		return required("vaccine", "date", v.Date)
	},
	key:    pets.Vaccine.Key,
	id:     func(v pets.Vaccine) string { return v.ID },
	withID: func(v pets.Vaccine, id string) pets.Vaccine { v.ID = id; return v },
	fromPet: func(p pets.Pet) []pets.Vaccine { return p.MedicalRecord.Vaccines },
	body: func(p pets.Pet, arr []pets.Vaccine) any {
		mr := p.MedicalRecord
		mr.Vaccines = arr
		return patchMedicalRecord{MedicalRecord: mr}
	},
}

var dewormingOps = ops[pets.Deworming]{
	category: "deworming",
	validate: func(d pets.Deworming) error {
		if err := required("deworming", "type", string(d.Type)); err != nil {
			return err
		}
		return required("deworming", "date", d.Date)
	},
	key:    pets.Deworming.Key,
	id:     func(d pets.Deworming) string { return d.ID },
	withID: func(d pets.Deworming, id string) pets.Deworming { d.ID = id; return d },
	fromPet: func(p pets.Pet) []pets.Deworming { return p.MedicalRecord.Dewormings },
	body: func(p pets.Pet, arr []pets.Deworming) any {
		mr := p.MedicalRecord
		mr.Dewormings = arr
		return patchMedicalRecord{MedicalRecord: mr}
	},
}

var vetAppointmentOps = ops[pets.VetAppointment]{
	category: "vetAppointment",
	validate: func(a pets.VetAppointment) error {
		if err := required("vetAppointment", "date", a.Date); err != nil {
			return err
		}
		return required("vetAppointment", "reason", a.Reason)
	},
	key:    pets.VetAppointment.Key,
	id:     func(a pets.VetAppointment) string { return a.ID },
	withID: func(a pets.VetAppointment, id string) pets.VetAppointment { a.ID = id; return a },
	fromPet: func(p pets.Pet) []pets.VetAppointment { return p.MedicalRecord.VetAppointments },
	body: func(p pets.Pet, arr []pets.VetAppointment) any {
		mr := p.MedicalRecord
		mr.VetAppointments = arr
		return patchMedicalRecord{MedicalRecord: mr}
	},
}

var surgicalProcedureOps = ops[pets.SurgicalProcedure]{
	category: "surgicalProcedure",
	validate: func(s pets.SurgicalProcedure) error {
		if err := required("surgicalProcedure", "name", s.Name); err != nil {
			return err
		}
		return required("surgicalProcedure", "date", s.Date)
	},
	key:    pets.SurgicalProcedure.Key,
	id:     func(s pets.SurgicalProcedure) string { return s.ID },
	withID: func(s pets.SurgicalProcedure, id string) pets.SurgicalProcedure { s.ID = id; return s },
	fromPet: func(p pets.Pet) []pets.SurgicalProcedure { return p.MedicalRecord.SurgicalProcedures },
	body: func(p pets.Pet, arr []pets.SurgicalProcedure) any {
		mr := p.MedicalRecord
		mr.SurgicalProcedures = arr
		return patchMedicalRecord{MedicalRecord: mr}
	},
}

var allergyOps = ops[pets.Allergy]{
	category: "allergy",
	validate: func(a pets.Allergy) error {
		return required("allergy", "name", a.Name)
	},
	key:    pets.Allergy.Key,
	id:     func(a pets.Allergy) string { return a.ID },
	withID: func(a pets.Allergy, id string) pets.Allergy { a.ID = id; return a },
	fromPet: func(p pets.Pet) []pets.Allergy { return p.MedicalRecord.Allergies },
	body: func(p pets.Pet, arr []pets.Allergy) any {
		mr := p.MedicalRecord
		mr.Allergies = arr
		return patchMedicalRecord{MedicalRecord: mr}
	},
}

var laboratoryTestOps = ops[pets.LaboratoryTest]{
	category: "laboratoryTest",
	validate: func(t pets.LaboratoryTest) error {
		if err := required("laboratoryTest", "type", t.Type); err != nil {
			return err
		}
		return required("laboratoryTest", "date", t.Date)
	},
	key:    pets.LaboratoryTest.Key,
	id:     func(t pets.LaboratoryTest) string { return t.ID },
	withID: func(t pets.LaboratoryTest, id string) pets.LaboratoryTest { t.ID = id; return t },
	fromPet: func(p pets.Pet) []pets.LaboratoryTest { return p.MedicalRecord.LaboratoryTests },
	body: func(p pets.Pet, arr []pets.LaboratoryTest) any {
		mr := p.MedicalRecord
		mr.LaboratoryTests = arr
		return patchMedicalRecord{MedicalRecord: mr}
	},
}

var reminderOps = ops[pets.Reminder]{
	category: "reminder",
	validate: func(r pets.Reminder) error {
		if err := required("reminder", "type", string(r.Type)); err != nil {
			return err
		}
		return required("reminder", "date", r.Date)
	},
	key:    pets.Reminder.Key,
	id:     func(r pets.Reminder) string { return r.ID },
	withID: func(r pets.Reminder, id string) pets.Reminder { r.ID = id; return r },
	fromPet: func(p pets.Pet) []pets.Reminder { return p.Reminders },
	body: func(_ pets.Pet, arr []pets.Reminder) any {
		return patchReminders{Reminders: arr}
	},
}

func (c *Client) AddVaccine(ctx context.Context, petID string, v pets.Vaccine) (pets.Pet, error) {
	return addRecord(ctx, c, petID, v, vaccineOps)
}

func (c *Client) UpdateVaccine(ctx context.Context, petID, id string, v pets.Vaccine) (pets.Pet, error) {
	return updateRecord(ctx, c, petID, id, v, vaccineOps)
}

func (c *Client) DeleteVaccine(ctx context.Context, petID, id string) (pets.Pet, error) {
	return deleteRecord(ctx, c, petID, id, vaccineOps)
}

func (c *Client) AddDeworming(ctx context.Context, petID string, d pets.Deworming) (pets.Pet, error) {
	return addRecord(ctx, c, petID, d, dewormingOps)
}

func (c *Client) UpdateDeworming(ctx context.Context, petID, id string, d pets.Deworming) (pets.Pet, error) {
	return updateRecord(ctx, c, petID, id, d, dewormingOps)
}

func (c *Client) DeleteDeworming(ctx context.Context, petID, id string) (pets.Pet, error) {
	return deleteRecord(ctx, c, petID, id, dewormingOps)
}

func (c *Client) AddVetAppointment(ctx context.Context, petID string, a pets.VetAppointment) (pets.Pet, error) {
	return addRecord(ctx, c, petID, a, vetAppointmentOps)
}

func (c *Client) UpdateVetAppointment(ctx context.Context, petID, id string, a pets.VetAppointment) (pets.Pet, error) {
	return updateRecord(ctx, c, petID, id, a, vetAppointmentOps)
}

func (c *Client) DeleteVetAppointment(ctx context.Context, petID, id string) (pets.Pet, error) {
	return deleteRecord(ctx, c, petID, id, vetAppointmentOps)
}

func (c *Client) AddSurgicalProcedure(ctx context.Context, petID string, s pets.SurgicalProcedure) (pets.Pet, error) {
	return addRecord(ctx, c, petID, s, surgicalProcedureOps)
}

func (c *Client) UpdateSurgicalProcedure(ctx context.Context, petID, id string, s pets.SurgicalProcedure) (pets.Pet, error) {
	return updateRecord(ctx, c, petID, id, s, surgicalProcedureOps)
}

func (c *Client) DeleteSurgicalProcedure(ctx context.Context, petID, id string) (pets.Pet, error) {
	return deleteRecord(ctx, c, petID, id, surgicalProcedureOps)
}

func (c *Client) AddAllergy(ctx context.Context, petID string, a pets.Allergy) (pets.Pet, error) {
	return addRecord(ctx, c, petID, a, allergyOps)
}

func (c *Client) UpdateAllergy(ctx context.Context, petID, id string, a pets.Allergy) (pets.Pet, error) {
	return updateRecord(ctx, c, petID, id, a, allergyOps)
}

func (c *Client) DeleteAllergy(ctx context.Context, petID, id string) (pets.Pet, error) {
	return deleteRecord(ctx, c, petID, id, allergyOps)
}

func (c *Client) AddLaboratoryTest(ctx context.Context, petID string, t pets.LaboratoryTest) (pets.Pet, error) {
	return addRecord(ctx, c, petID, t, laboratoryTestOps)
}

func (c *Client) UpdateLaboratoryTest(ctx context.Context, petID, id string, t pets.LaboratoryTest) (pets.Pet, error) {
	return updateRecord(ctx, c, petID, id, t, laboratoryTestOps)
}

func (c *Client) DeleteLaboratoryTest(ctx context.Context, petID, id string) (pets.Pet, error) {
	return deleteRecord(ctx, c, petID, id, laboratoryTestOps)
}

func (c *Client) AddReminder(ctx context.Context, petID string, r pets.Reminder) (pets.Pet, error) {
	return addRecord(ctx, c, petID, r, reminderOps)
}

func (c *Client) UpdateReminder(ctx context.Context, petID, id string, r pets.Reminder) (pets.Pet, error) {
	return updateRecord(ctx, c, petID, id, r, reminderOps)
}

func (c *Client) DeleteReminder(ctx context.Context, petID, id string) (pets.Pet, error) {
	return deleteRecord(ctx, c, petID, id, reminderOps)
}
