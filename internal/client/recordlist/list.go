// Package recordlist mantiene el estado local de una lista de sub-registros:
// copias optimistas para feedback inmediato, banners transitorios y la
// confirmación de borrado. Después de cada mutación el estado local se
// reemplaza por la verdad del servidor (reconciliación); un placeholder
// optimista nunca sobrevive a un refetch exitoso.
//
// El modelo es de un solo hilo (event loop de UI): no hay locks.
package recordlist

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	// OptimisticPrefix marca ids fabricados localmente, sin identidad backend.
	OptimisticPrefix = "optimistic-"
	tempPrefix       = "temp-"

	bannerTTL         = 3000 * time.Millisecond
	errorRefetchDelay = 500 * time.Millisecond
)

type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Banner es el aviso transitorio post-mutación; expira solo.
type Banner struct {
	Kind    BannerKind
	Message string

	expiresAt time.Time
}

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
)

// Ops describe la categoría: clave natural para dedup y acceso al id.
type Ops[T any] struct {
	Key    func(T) string
	ID     func(T) string
	WithID func(T, string) T
}

type List[T any] struct {
	ops Ops[T]

	records []T
	phase   Phase
	banner  *Banner

	// id armado para borrar; el borrado exige dos pasos.
	pendingDelete string

	now   func() time.Time
	sleep func(time.Duration)
}

func New[T any](ops Ops[T]) *List[T] {
	return &List[T]{
		ops:   ops,
		phase: PhaseIdle,
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// SetRecords reemplaza el estado local con la verdad del servidor.
func (l *List[T]) SetRecords(records []T) {
	l.records = append([]T(nil), records...)
}

// Records devuelve la lista visible, deduplicada por clave natural para
// enmascarar duplicados que se hayan colado por updates optimistas
// concurrentes o anomalías del backend.
func (l *List[T]) Records() []T {
	return Dedup(l.records, l.ops.Key)
}

func (l *List[T]) Phase() Phase { return l.phase }

// CanModify: editar/borrar se deshabilita para registros sin identidad
// backend estable (id vacío o placeholder).
func (l *List[T]) CanModify(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	return !strings.HasPrefix(id, OptimisticPrefix) && !strings.HasPrefix(id, tempPrefix)
}

// Banner devuelve el aviso activo, o nil si expiró o fue descartado.
func (l *List[T]) Banner() *Banner {
	if l.banner == nil {
		return nil
	}
	if !l.now().Before(l.banner.expiresAt) {
		l.banner = nil
		return nil
	}
	return l.banner
}

func (l *List[T]) DismissBanner() { l.banner = nil }

// Submit ejecuta el alta con update optimista:
//  1. inserta un placeholder optimistic-<ts> para feedback inmediato
//  2. ejecuta la mutación
//  3. gane o pierda, reconcilia: refetch y reemplazo del estado local
//  4. banner de éxito o error
//
// En el camino de error el refetch se hace tras un delay corto, para darle
// al backend la chance de reflejar una escritura que commiteó tarde.
func (l *List[T]) Submit(ctx context.Context, rec T, do func(context.Context) error, refetch func(context.Context) ([]T, error)) error {
	if l.phase != PhaseIdle {
		return fmt.Errorf("submit while %s", l.phase)
	}
	l.phase = PhaseSubmitting
	// El defer cubre también un panic del callback: la lista nunca queda
	// clavada en submitting.
	defer func() { l.phase = PhaseIdle }()

	placeholder := l.ops.WithID(rec, fmt.Sprintf("%s%d", OptimisticPrefix, l.now().UnixNano()))
	l.records = append(l.records, placeholder)

	err := do(ctx)
	if err != nil {
		l.setBanner(BannerError, err.Error())
		l.sleep(errorRefetchDelay)
	} else {
		l.setBanner(BannerSuccess, "saved")
	}

	l.reconcile(ctx, refetch)
	return err
}

// RequestDelete arma el borrado; queda pendiente hasta ConfirmDelete.
func (l *List[T]) RequestDelete(id string) error {
	if !l.CanModify(id) {
		return fmt.Errorf("record %q has no stable backend id", id)
	}
	l.pendingDelete = id
	return nil
}

func (l *List[T]) PendingDelete() string { return l.pendingDelete }

func (l *List[T]) CancelDelete() { l.pendingDelete = "" }

// ConfirmDelete ejecuta el borrado armado por RequestDelete.
func (l *List[T]) ConfirmDelete(ctx context.Context, do func(context.Context) error, refetch func(context.Context) ([]T, error)) error {
	if l.pendingDelete == "" {
		return fmt.Errorf("no delete pending confirmation")
	}
	if l.phase != PhaseIdle {
		return fmt.Errorf("delete while %s", l.phase)
	}
	l.pendingDelete = ""
	l.phase = PhaseSubmitting
	defer func() { l.phase = PhaseIdle }()

	err := do(ctx)
	if err != nil {
		l.setBanner(BannerError, err.Error())
		l.sleep(errorRefetchDelay)
	} else {
		l.setBanner(BannerSuccess, "deleted")
	}

	l.reconcile(ctx, refetch)
	return err
}

// reconcile reemplaza el estado local con la verdad del servidor. Si el
// refetch falla, al menos se caen los placeholders: nunca quedan visibles
// registros sin identidad backend.
func (l *List[T]) reconcile(ctx context.Context, refetch func(context.Context) ([]T, error)) {
	if refetch == nil {
		l.dropPlaceholders()
		return
	}
	fresh, err := refetch(ctx)
	if err != nil {
		l.dropPlaceholders()
		return
	}
	l.SetRecords(fresh)
}

func (l *List[T]) dropPlaceholders() {
	kept := l.records[:0]
	for _, r := range l.records {
		if l.CanModify(l.ops.ID(r)) {
			kept = append(kept, r)
		}
	}
	l.records = kept
}

func (l *List[T]) setBanner(kind BannerKind, msg string) {
	l.banner = &Banner{
		Kind:      kind,
		Message:   msg,
		expiresAt: l.now().Add(bannerTTL),
	}
}

// Dedup filtra duplicados por clave natural conservando la primera
// aparición. Es idempotente: aplicarla dos veces da lo mismo que una.
func Dedup[T any](records []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(records))
	out := make([]T, 0, len(records))
	for _, r := range records {
		k := key(r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
