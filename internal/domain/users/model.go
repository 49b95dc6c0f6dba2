package users

import (
	"time"

	"dailypawie/internal/ports/auth"
)

// User representa una cuenta de DailyPawie.
// ownedPets NO se guarda: es una vista derivada que se recalcula en lectura
// desde el petOwner autoritativo de cada documento Pet (ver Profile).
type User struct {
	ID    string    `json:"id"`
	Email string    `json:"email"`
	Role  auth.Role `json:"role"`

	Name     string `json:"name,omitempty"`
	Surname  string `json:"surname,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Photo    string `json:"photo,omitempty"` // referencia a media

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnedPetSummary es la proyección mínima de una mascota para el perfil.
type OwnedPetSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`
}

// Profile es User + la vista derivada ownedPets.
type Profile struct {
	User
	OwnedPets []OwnedPetSummary `json:"ownedPets"`
}
