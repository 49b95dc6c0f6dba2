// Package petservice es la fachada cliente sobre la API de documentos.
//
// El backend solo expone PATCH del documento Pet completo, no endpoints por
// sub-registro. Esta capa simula CRUD por registro encima de esa restricción:
// cada mutación hace fetch del documento, modifica el array de la categoría y
// manda el PATCH con la sección entera. Ante un error de escritura se aplica
// el fallback de reconciliación: refetch y verificación de si la mutación en
// realidad quedó aplicada (el backend a veces responde error después de
// commitear, p.ej. un write-timeout).
package petservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"dailypawie/internal/domain/pets"
	"dailypawie/internal/platform/httpclient"
	"dailypawie/internal/platform/logger"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrRecordNotFound = errors.New("record not found")

	// ErrPlaceholderID: update/delete exigen el id asignado por el store,
	// nunca un placeholder optimista local.
	ErrPlaceholderID = errors.New("record has no stable backend id")
)

// placeholderPrefixes marcan ids fabricados localmente que jamás deben
// llegar al backend.
var placeholderPrefixes = []string{"optimistic-", "temp-"}

const defaultRetryDelay = 1000 * time.Millisecond

type Client struct {
	http *httpclient.Client
	log  logger.Logger

	// retryDelay y sleep son inyectables para tests.
	retryDelay time.Duration
	sleep      func(time.Duration)
}

func New(api *httpclient.Client, log logger.Logger) *Client {
	if log == nil {
		log = logger.New(logger.Options{Level: logger.Warn})
	}
	return &Client{
		http:       api,
		log:        log,
		retryDelay: defaultRetryDelay,
		sleep:      time.Sleep,
	}
}

// GetPet trae el documento completo.
func (c *Client) GetPet(ctx context.Context, petID string) (pets.Pet, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return pets.Pet{}, fmt.Errorf("%w: pet id required", ErrInvalidInput)
	}

	var p pets.Pet
	if err := c.http.GetJSON(ctx, "/api/pets/"+url.PathEscape(petID), &p); err != nil {
		return pets.Pet{}, fmt.Errorf("get pet %s: %w", petID, err)
	}
	return p, nil
}

func (c *Client) patchPet(ctx context.Context, petID string, body any) (pets.Pet, error) {
	var p pets.Pet
	err := c.http.PatchJSON(ctx, "/api/pets/"+url.PathEscape(petID), body, &p)
	return p, err
}

// ops describe una categoría de sub-registro para los algoritmos genéricos.
type ops[T any] struct {
	category string

	validate func(T) error
	key      func(T) string
	id       func(T) string
	withID   func(T, string) T

	fromPet func(pets.Pet) []T
	// body arma el cuerpo del PATCH con la sección entera ya modificada.
	body func(pets.Pet, []T) any
}

// addRecord implementa el alta: fetch, validar, id="" (el store asigna
// identidad), append, PATCH. Si el PATCH falla, espera el delay fijo,
// refetch y busca el registro por clave natural: si aparece, la escritura
// commiteó a pesar del error y se reporta éxito con el documento fresco.
func addRecord[T any](ctx context.Context, c *Client, petID string, rec T, o ops[T]) (pets.Pet, error) {
	if err := o.validate(rec); err != nil {
		return pets.Pet{}, err
	}

	current, err := c.GetPet(ctx, petID)
	if err != nil {
		return pets.Pet{}, err
	}

	// id vacío señala "asignar identidad nueva"; jamás se manda un id
	// generado en el cliente.
	rec = o.withID(rec, "")

	arr := append(o.fromPet(current), rec)

	updated, err := c.patchPet(ctx, petID, o.body(current, arr))
	if err == nil {
		return updated, nil
	}

	c.log.Warn("patch failed, reconciling add", map[string]any{
		"petId":    petID,
		"category": o.category,
		"error":    err.Error(),
	})

	c.sleep(c.retryDelay)

	refreshed, ferr := c.GetPet(ctx, petID)
	if ferr == nil {
		want := o.key(rec)
		for _, r := range o.fromPet(refreshed) {
			if o.key(r) == want {
				// La mutación quedó aplicada: el error original fue falso.
				return refreshed, nil
			}
		}
	}

	return pets.Pet{}, fmt.Errorf("add %s: %w", o.category, err)
}

// updateRecord: fetch, ubicar por id, merge (existente + cambios del caller,
// id forzado de vuelta al original para impedir drift de identidad), PATCH.
// El fallback no tiene clave natural que consultar: se confirma comparando el
// registro almacenado en ese id contra el merge esperado.
func updateRecord[T any](ctx context.Context, c *Client, petID, recordID string, rec T, o ops[T]) (pets.Pet, error) {
	if err := checkStableID(recordID); err != nil {
		return pets.Pet{}, err
	}

	current, err := c.GetPet(ctx, petID)
	if err != nil {
		return pets.Pet{}, err
	}

	arr := o.fromPet(current)
	idx := -1
	for i, r := range arr {
		if o.id(r) == recordID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return pets.Pet{}, fmt.Errorf("%w: %s %s", ErrRecordNotFound, o.category, recordID)
	}

	merged, err := overlay(arr[idx], rec)
	if err != nil {
		return pets.Pet{}, fmt.Errorf("merge %s: %w", o.category, err)
	}
	merged = o.withID(merged, recordID)
	arr[idx] = merged

	updated, err := c.patchPet(ctx, petID, o.body(current, arr))
	if err == nil {
		return updated, nil
	}

	c.log.Warn("patch failed, reconciling update", map[string]any{
		"petId":    petID,
		"category": o.category,
		"recordId": recordID,
		"error":    err.Error(),
	})

	c.sleep(c.retryDelay)

	refreshed, ferr := c.GetPet(ctx, petID)
	if ferr == nil {
		for _, r := range o.fromPet(refreshed) {
			if o.id(r) == recordID && sameRecord(r, merged) {
				return refreshed, nil
			}
		}
	}

	return pets.Pet{}, fmt.Errorf("update %s: %w", o.category, err)
}

// deleteRecord: fetch, filtrar por id (not-found si el largo no cambia),
// PATCH. El fallback confirma por ausencia: si el registro ya no está en el
// documento fresco, la baja commiteó.
func deleteRecord[T any](ctx context.Context, c *Client, petID, recordID string, o ops[T]) (pets.Pet, error) {
	if err := checkStableID(recordID); err != nil {
		return pets.Pet{}, err
	}

	current, err := c.GetPet(ctx, petID)
	if err != nil {
		return pets.Pet{}, err
	}

	arr := o.fromPet(current)
	filtered := make([]T, 0, len(arr))
	for _, r := range arr {
		if o.id(r) != recordID {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == len(arr) {
		return pets.Pet{}, fmt.Errorf("%w: %s %s", ErrRecordNotFound, o.category, recordID)
	}

	updated, err := c.patchPet(ctx, petID, o.body(current, filtered))
	if err == nil {
		return updated, nil
	}

	c.log.Warn("patch failed, reconciling delete", map[string]any{
		"petId":    petID,
		"category": o.category,
		"recordId": recordID,
		"error":    err.Error(),
	})

	c.sleep(c.retryDelay)

	refreshed, ferr := c.GetPet(ctx, petID)
	if ferr == nil {
		gone := true
		for _, r := range o.fromPet(refreshed) {
			if o.id(r) == recordID {
				gone = false
				break
			}
		}
		if gone {
			return refreshed, nil
		}
	}

	return pets.Pet{}, fmt.Errorf("delete %s: %w", o.category, err)
}

func checkStableID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: record id required", ErrInvalidInput)
	}
	for _, prefix := range placeholderPrefixes {
		if strings.HasPrefix(id, prefix) {
			return fmt.Errorf("%w: %s", ErrPlaceholderID, id)
		}
	}
	return nil
}

// overlay replica el merge por spread del documento: los campos del update
// que vienen vacíos no pisan los existentes.
func overlay[T any](existing, updates T) (T, error) {
	var zero T

	base, err := toMap(existing)
	if err != nil {
		return zero, err
	}
	over, err := toMap(updates)
	if err != nil {
		return zero, err
	}

	for k, v := range over {
		if v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		base[k] = v
	}

	b, err := json.Marshal(base)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// sameRecord compara por representación JSON, suficiente para registros
// planos de strings/números.
func sameRecord[T any](a, b T) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ab) == string(bb)
}
