// Package reminders arma la vista transversal de recordatorios: junta los
// arrays de varias mascotas, los etiqueta con su mascota, deduplica, filtra
// por vista y ordena por fecha y hora.
package reminders

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"dailypawie/internal/domain/pets"

	"golang.org/x/sync/errgroup"
)

// View filtra por fecha relativa a hoy.
type View string

const (
	ViewUpcoming View = "upcoming" // date >= hoy
	ViewPast     View = "past"     // date < hoy
	ViewAll      View = "all"
)

// Tagged es un recordatorio etiquetado con su mascota.
type Tagged struct {
	pets.Reminder

	PetID   string `json:"petId"`
	PetName string `json:"petName"`
}

// Key agrega el petId a la clave natural del recordatorio: el mismo
// recordatorio en mascotas distintas no es duplicado.
func (t Tagged) Key() string {
	return t.PetID + "|" + t.Reminder.Key()
}

// PetFetcher trae el documento de una mascota; lo implementa petservice.Client.
type PetFetcher interface {
	GetPet(ctx context.Context, petID string) (pets.Pet, error)
}

type Aggregator struct {
	fetcher PetFetcher

	// today devuelve la fecha de corte YYYY-MM-DD; inyectable para tests.
	today func() string
}

func NewAggregator(fetcher PetFetcher) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		today:   todayISO,
	}
}

// Result es la vista final, posiblemente truncada para el resumen.
type Result struct {
	Items []Tagged
	// Remaining cuenta los que quedaron fuera por el límite ("ver todos").
	Remaining int
}

// Collect trae los recordatorios de cada mascota en paralelo, concatena en el
// orden de los pets recibidos, deduplica, filtra por vista, ordena y trunca.
// limit <= 0 significa sin límite.
func (a *Aggregator) Collect(ctx context.Context, petList []pets.Pet, view View, limit int) (Result, error) {
	perPet := make([][]Tagged, len(petList))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range petList {
		i, p := i, p
		g.Go(func() error {
			doc, err := a.fetcher.GetPet(gctx, p.ID)
			if err != nil {
				return err
			}
			tagged := make([]Tagged, 0, len(doc.Reminders))
			for _, r := range doc.Reminders {
				tagged = append(tagged, Tagged{
					Reminder: r,
					PetID:    doc.ID,
					PetName:  doc.Name,
				})
			}
			perPet[i] = tagged
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	all := make([]Tagged, 0)
	for _, chunk := range perPet {
		all = append(all, chunk...)
	}

	all = dedup(all)
	all = filterView(all, view, a.today())
	Sort(all)

	if limit > 0 && len(all) > limit {
		return Result{Items: all[:limit], Remaining: len(all) - limit}, nil
	}
	return Result{Items: all}, nil
}

func dedup(items []Tagged) []Tagged {
	seen := make(map[string]struct{}, len(items))
	out := make([]Tagged, 0, len(items))
	for _, t := range items {
		k := t.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
	}
	return out
}

func filterView(items []Tagged, view View, today string) []Tagged {
	if view == ViewAll || view == "" {
		return items
	}
	out := make([]Tagged, 0, len(items))
	for _, t := range items {
		switch view {
		case ViewUpcoming:
			if t.Date >= today {
				out = append(out, t)
			}
		case ViewPast:
			if t.Date < today {
				out = append(out, t)
			}
		}
	}
	return out
}

// Sort ordena ascendente por fecha y, dentro de la misma fecha, por hora
// (hora, después minuto). Los recordatorios sin hora van después de los que
// tienen hora en esa fecha. El orden es estable.
func Sort(items []Tagged) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		hi, mi, oki := parseTime(items[i].Time)
		hj, mj, okj := parseTime(items[j].Time)
		if oki != okj {
			return oki // con hora antes que sin hora
		}
		if !oki {
			return false
		}
		if hi != hj {
			return hi < hj
		}
		return mi < mj
	})
}

// parseTime acepta HH:MM; cualquier otra cosa cuenta como "sin hora".
func parseTime(s string) (hour, minute int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

func todayISO() string {
	return time.Now().Format("2006-01-02")
}
