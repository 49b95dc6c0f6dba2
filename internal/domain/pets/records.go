package pets

// Los sub-registros se identifican por un `id` asignado por el store: un id
// vacío significa "todavía no persistido". Las fechas se guardan como string
// YYYY-MM-DD y las horas como HH:MM, tal como viajan por la API.
//
// Key() construye la clave natural de cada categoría: la combinación de campos
// que reconoce "el mismo registro" sin depender del id asignado. Se usa para
// deduplicar y para reconciliar mutaciones ambiguas.

// MedicalRecord agrupa las categorías médicas embebidas en el documento Pet.
// medicalTreatments y evolutionTracking existen en el documento aunque la UI
// actual no los edita.
type MedicalRecord struct {
	Vaccines           []Vaccine           `json:"vaccines"`
	Dewormings         []Deworming         `json:"dewormings"`
	VetAppointments    []VetAppointment    `json:"vetAppointments"`
	SurgicalProcedures []SurgicalProcedure `json:"surgicalProcedures"`
	Allergies          []Allergy           `json:"allergies"`
	LaboratoryTests    []LaboratoryTest    `json:"laboratoryTests"`
	MedicalTreatments  []MedicalTreatment  `json:"medicalTreatments"`
	EvolutionTracking  []EvolutionEntry    `json:"evolutionTracking"`
}

type Vaccine struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Date         string `json:"date"` // YYYY-MM-DD
	NextDoseDate string `json:"nextDoseDate,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

func (v Vaccine) Key() string { return v.Name + "|" + v.Date }

// DewormingType distingue desparasitación interna y externa.
// @Enum internal, external
type DewormingType string

const (
	DewormingInternal DewormingType = "internal"
	DewormingExternal DewormingType = "external"
)

type Deworming struct {
	ID           string        `json:"id"`
	Type         DewormingType `json:"type"`
	Product      string        `json:"product,omitempty"`
	Date         string        `json:"date"`
	NextDoseDate string        `json:"nextDoseDate,omitempty"`
}

func (d Deworming) Key() string { return string(d.Type) + "|" + d.Date }

type VetAppointment struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Time   string `json:"time,omitempty"` // HH:MM
	Reason string `json:"reason"`
	Vet    string `json:"vet,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

func (a VetAppointment) Key() string { return a.Date + "|" + a.Reason }

type SurgicalProcedure struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Date  string `json:"date"`
	Vet   string `json:"vet,omitempty"`
	Notes string `json:"notes,omitempty"`
}

func (s SurgicalProcedure) Key() string { return s.Name + "|" + s.Date }

type Allergy struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Severity string `json:"severity,omitempty"`
	Reaction string `json:"reaction,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// La clave natural de alergias es solo el nombre: dos alergias con el mismo
// nombre son el mismo registro.
func (a Allergy) Key() string { return a.Name }

type LaboratoryTest struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	Result   string `json:"result,omitempty"`
	Document string `json:"document,omitempty"` // referencia a media
}

func (t LaboratoryTest) Key() string { return t.Type + "|" + t.Date }

type MedicalTreatment struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
	Dosage    string `json:"dosage,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

func (m MedicalTreatment) Key() string { return m.Name + "|" + m.StartDate }

type EvolutionEntry struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Weight float64 `json:"weight,omitempty"`
	Notes  string  `json:"notes,omitempty"`
}

func (e EvolutionEntry) Key() string { return e.Date }

// ReminderType clasifica los recordatorios.
// @Enum medication, vaccine, vetAppointment, food, hygiene, other
type ReminderType string

const (
	ReminderMedication     ReminderType = "medication"
	ReminderVaccine        ReminderType = "vaccine"
	ReminderVetAppointment ReminderType = "vetAppointment"
	ReminderFood           ReminderType = "food"
	ReminderHygiene        ReminderType = "hygiene"
	ReminderOther          ReminderType = "other"
)

// Reminder vive en el tope del documento Pet, no dentro de medicalRecord.
type Reminder struct {
	ID          string       `json:"id"`
	Type        ReminderType `json:"type"`
	Date        string       `json:"date"`
	Time        string       `json:"time,omitempty"` // HH:MM, opcional
	Description string       `json:"description,omitempty"`
}

func (r Reminder) Key() string { return r.Date + "|" + string(r.Type) + "|" + r.Time }

// identifiable se usa para asignar ids dentro del documento sin repetir
// el mismo loop por categoría.
type identifiable interface {
	recordID() string
	setRecordID(string)
}

func (v *Vaccine) recordID() string                { return v.ID }
func (v *Vaccine) setRecordID(id string)           { v.ID = id }
func (d *Deworming) recordID() string              { return d.ID }
func (d *Deworming) setRecordID(id string)         { d.ID = id }
func (a *VetAppointment) recordID() string         { return a.ID }
func (a *VetAppointment) setRecordID(id string)    { a.ID = id }
func (s *SurgicalProcedure) recordID() string      { return s.ID }
func (s *SurgicalProcedure) setRecordID(id string) { s.ID = id }
func (a *Allergy) recordID() string                { return a.ID }
func (a *Allergy) setRecordID(id string)           { a.ID = id }
func (t *LaboratoryTest) recordID() string         { return t.ID }
func (t *LaboratoryTest) setRecordID(id string)    { t.ID = id }
func (m *MedicalTreatment) recordID() string       { return m.ID }
func (m *MedicalTreatment) setRecordID(id string)  { m.ID = id }
func (e *EvolutionEntry) recordID() string         { return e.ID }
func (e *EvolutionEntry) setRecordID(id string)    { e.ID = id }
func (r *Reminder) recordID() string               { return r.ID }
func (r *Reminder) setRecordID(id string)          { r.ID = id }
func (f *Feeding) recordID() string                { return f.ID }
func (f *Feeding) setRecordID(id string)           { f.ID = id }
func (h *HygieneRoutine) recordID() string         { return h.ID }
func (h *HygieneRoutine) setRecordID(id string)    { h.ID = id }
