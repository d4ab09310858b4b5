// Package editor drives the point form through validated state transitions
// while save/delete operations are in flight against the route synchronizer.
package editor

import (
	"context"
	"strconv"
	"sync"
	"time"

	"bigtrip/internal/catalog"
	"bigtrip/internal/domain"
	"bigtrip/internal/domain/models"
)

// State is the controller's lifecycle phase.
type State string

const (
	StateViewing    State = "VIEWING"
	StateEditing    State = "EDITING"
	StateSubmitting State = "SUBMITTING"
	StateDeleting   State = "DELETING"
	StateError      State = "ERROR"
)

// RouteService is the synchronizer surface the controller drives.
type RouteService interface {
	Create(ctx context.Context, draft models.Point) (models.Point, error)
	Update(ctx context.Context, point models.Point) (models.Point, error)
	Delete(ctx context.Context, id string) error
}

// Controller holds one draft and coordinates submit/delete/cancel for a
// single form instance. The canonical collection is only ever touched through
// the route service. A generation counter discards settlements of superseded
// operations.
type Controller struct {
	routes       RouteService
	destinations *catalog.Destinations
	offers       *catalog.Offers

	mu         sync.Mutex
	state      State
	draft      Draft
	committed  *models.Point
	generation uint64
	lastErr    error
	disposed   bool
}

// Config wires a controller. Point is nil for a new point (starts in EDITING
// on the default template) and set for an existing one (starts in VIEWING).
type Config struct {
	Routes       RouteService
	Destinations *catalog.Destinations
	Offers       *catalog.Offers
	Point        *models.Point
}

// NewController builds the per-form state machine.
func NewController(cfg Config) *Controller {
	c := &Controller{
		routes:       cfg.Routes,
		destinations: cfg.Destinations,
		offers:       cfg.Offers,
	}
	if cfg.Point == nil {
		c.state = StateEditing
		c.draft = newDraft(cfg.Offers)
		return c
	}
	point := cfg.Point.Clone()
	c.committed = &point
	c.state = StateViewing
	c.draft = draftFromPoint(point, cfg.Destinations, cfg.Offers)
	return c
}

// State returns the current phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft returns a copy of the working state for rendering.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.clone()
}

// Committed returns the last confirmed point, if any.
func (c *Controller) Committed() (models.Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.committed == nil {
		return models.Point{}, false
	}
	return c.committed.Clone(), true
}

// Err returns the error of the last failed operation, set while in ERROR.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Disposed reports whether the controller reached its terminal condition.
func (c *Controller) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// BeginEdit opens the form for an existing point: VIEWING -> EDITING.
func (c *Controller) BeginEdit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || c.state != StateViewing || c.committed == nil {
		return domain.ValidationError{Msg: "nothing to edit"}
	}
	c.generation++
	c.draft = draftFromPoint(*c.committed, c.destinations, c.offers)
	c.state = StateEditing
	return nil
}

// ChangeType switches the point type and resets the draft's offers to the
// type's catalog partition, each unchecked.
func (c *Controller) ChangeType(raw string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editableLocked(); err != nil {
		return err
	}
	pointType, err := models.ParsePointType(raw)
	if err != nil {
		c.draft.ValidationErr = err
		return err
	}
	c.draft.Type = pointType
	c.draft.SelectedType = pointType
	c.draft.Offers = choicesForType(c.offers, pointType, nil)
	c.draft.ValidationErr = nil
	return nil
}

// InputDestination resolves the typed name against the catalog with an exact,
// case-sensitive match. On no match the draft keeps its previous destination.
func (c *Controller) InputDestination(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editableLocked(); err != nil {
		return err
	}
	destination, ok := c.destinations.ByName(name)
	if !ok {
		err := domain.ValidationError{Field: "destination", Msg: "unknown destination " + name}
		c.draft.ValidationErr = err
		return err
	}
	c.draft.Destination = &destination
	c.draft.ValidationErr = nil
	return nil
}

// InputPrice accepts only a non-negative integer string; anything else is
// rejected and the draft's price stays unchanged.
func (c *Controller) InputPrice(raw string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editableLocked(); err != nil {
		return err
	}
	if !isValidPrice(raw) {
		err := domain.ValidationError{Field: "basePrice", Msg: "price must be a non-negative integer"}
		c.draft.ValidationErr = err
		return err
	}
	price, err := strconv.Atoi(raw)
	if err != nil {
		verr := domain.ValidationError{Field: "basePrice", Msg: "price must be a non-negative integer", Err: err}
		c.draft.ValidationErr = verr
		return verr
	}
	c.draft.BasePrice = price
	c.draft.ValidationErr = nil
	return nil
}

// SetDateFrom moves the start date; the end date is dragged forward so it
// never precedes the start.
func (c *Controller) SetDateFrom(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editableLocked(); err != nil {
		return err
	}
	c.draft.DateFrom = t
	if !c.draft.DateTo.IsZero() && c.draft.DateTo.Before(t) {
		c.draft.DateTo = t
	}
	if c.draft.DateTo.IsZero() {
		c.draft.DateTo = t
	}
	c.draft.ValidationErr = nil
	return nil
}

// SetDateTo moves the end date; a value before the start date is clamped to
// it, never rejected outright.
func (c *Controller) SetDateTo(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editableLocked(); err != nil {
		return err
	}
	if !c.draft.DateFrom.IsZero() && t.Before(c.draft.DateFrom) {
		t = c.draft.DateFrom
	}
	c.draft.DateTo = t
	c.draft.ValidationErr = nil
	return nil
}

// ToggleOffer flips the checked flag of exactly the targeted offer.
func (c *Controller) ToggleOffer(offerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editableLocked(); err != nil {
		return err
	}
	for i := range c.draft.Offers {
		if c.draft.Offers[i].ID == offerID {
			c.draft.Offers[i].IsChecked = !c.draft.Offers[i].IsChecked
			c.draft.ValidationErr = nil
			return nil
		}
	}
	err := domain.ValidationError{Field: "offers", Msg: "unknown offer " + offerID}
	c.draft.ValidationErr = err
	return err
}

// ToggleFavorite flips the favorite flag on the draft.
func (c *Controller) ToggleFavorite() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editableLocked(); err != nil {
		return err
	}
	c.draft.IsFavorite = !c.draft.IsFavorite
	return nil
}

// Submit builds the canonical point from the draft and saves it through the
// route service: create for a point without a confirmed id, update otherwise.
// EDITING/ERROR -> SUBMITTING -> VIEWING on success, ERROR on failure. A
// settlement arriving after the controller moved on is discarded.
func (c *Controller) Submit(ctx context.Context) (models.Point, error) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return models.Point{}, domain.ValidationError{Msg: "controller is disposed"}
	}
	if c.state != StateEditing && c.state != StateError {
		c.mu.Unlock()
		return models.Point{}, domain.ValidationError{Msg: "submit is not allowed in state " + string(c.state)}
	}
	point, err := c.draft.toPoint()
	if err != nil {
		c.draft.ValidationErr = err
		c.state = StateEditing
		c.mu.Unlock()
		return models.Point{}, err
	}
	c.generation++
	generation := c.generation
	isNew := c.committed == nil
	c.state = StateSubmitting
	c.draft.IsSaving = true
	c.draft.IsDisabled = true
	c.draft.ValidationErr = nil
	c.lastErr = nil
	c.mu.Unlock()

	var saved models.Point
	var opErr error
	if isNew {
		saved, opErr = c.routes.Create(ctx, point)
	} else {
		saved, opErr = c.routes.Update(ctx, point)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || generation != c.generation {
		// superseded settlement, discarded silently
		return models.Point{}, nil
	}
	c.draft.IsSaving = false
	c.draft.IsDisabled = false
	if opErr != nil {
		c.state = StateError
		c.lastErr = opErr
		return models.Point{}, opErr
	}
	confirmed := saved.Clone()
	c.committed = &confirmed
	c.draft = draftFromPoint(confirmed, c.destinations, c.offers)
	c.state = StateViewing
	return saved, nil
}

// Delete removes an existing, confirmed point through the route service:
// EDITING/VIEWING/ERROR -> DELETING -> disposed on success, ERROR on failure.
func (c *Controller) Delete(ctx context.Context) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return domain.ValidationError{Msg: "controller is disposed"}
	}
	switch c.state {
	case StateEditing, StateViewing, StateError:
	default:
		c.mu.Unlock()
		return domain.ValidationError{Msg: "delete is not allowed in state " + string(c.state)}
	}
	if c.committed == nil || c.committed.IsTemp() {
		c.mu.Unlock()
		return domain.ValidationError{Msg: "only a confirmed point can be deleted"}
	}
	id := c.committed.ID
	c.generation++
	generation := c.generation
	c.state = StateDeleting
	c.draft.IsDeleting = true
	c.draft.IsDisabled = true
	c.lastErr = nil
	c.mu.Unlock()

	opErr := c.routes.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || generation != c.generation {
		return nil
	}
	c.draft.IsDeleting = false
	c.draft.IsDisabled = false
	if opErr != nil {
		c.state = StateError
		c.lastErr = opErr
		return opErr
	}
	c.disposed = true
	return nil
}

// Cancel discards the draft: back to VIEWING for an existing point, disposal
// for a never-committed one. Any in-flight settlement is superseded.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	if c.state != StateEditing && c.state != StateError {
		return
	}
	c.generation++
	c.lastErr = nil
	if c.committed == nil {
		c.disposed = true
		return
	}
	c.draft = draftFromPoint(*c.committed, c.destinations, c.offers)
	c.state = StateViewing
}

// Dispose discards the draft without side effects on the collection.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.disposed = true
}

func (c *Controller) editableLocked() error {
	if c.disposed {
		return domain.ValidationError{Msg: "controller is disposed"}
	}
	if c.state != StateEditing {
		return domain.ValidationError{Msg: "edits are not allowed in state " + string(c.state)}
	}
	return nil
}

// isValidPrice accepts only unsigned integer strings.
func isValidPrice(raw string) bool {
	if raw == "" {
		return false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
