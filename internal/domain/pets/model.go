package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat, bird, rodent, other
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesBird   Species = "bird"
	SpeciesRodent Species = "rodent"
	SpeciesOther  Species = "other"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Pet es el documento completo de una mascota. Es la unidad de persistencia:
// el historial médico, el cuidado diario y los recordatorios viven embebidos,
// no como recursos independientes.
type Pet struct {
	ID string `json:"id"`

	Name    string  `json:"name"`
	Species Species `json:"species"`
	Breed   string  `json:"breed,omitempty"`
	Sex     Sex     `json:"sex,omitempty"`
	Age     int     `json:"age,omitempty"`
	Height  float64 `json:"height,omitempty"` // cm
	Weight  float64 `json:"weight,omitempty"` // kg

	// Referencia a media subida vía /api/media.
	Photo string `json:"photo,omitempty"`

	PetOwner string `json:"petOwner"`
	PetCarer string `json:"petCarer,omitempty"`

	MedicalRecord MedicalRecord `json:"medicalRecord"`
	DailyCare     DailyCare     `json:"dailyCare"`
	Reminders     []Reminder    `json:"reminders"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DailyCare agrupa las rutinas de cuidado diario embebidas en el documento.
type DailyCare struct {
	Feedings        []Feeding        `json:"feedings"`
	HygieneRoutines []HygieneRoutine `json:"hygieneRoutines"`
}

type Feeding struct {
	ID        string `json:"id"`
	FoodType  string `json:"foodType"`
	Quantity  string `json:"quantity,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type HygieneRoutine struct {
	ID        string `json:"id"`
	Type      string `json:"type"` // bath, brushing, nails, etc.
	Frequency string `json:"frequency,omitempty"`
	LastDone  string `json:"lastDone,omitempty"` // YYYY-MM-DD
	Notes     string `json:"notes,omitempty"`
}
