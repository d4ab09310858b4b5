// Package route owns the canonical in-memory point collection and keeps it
// consistent with the remote store under optimistic updates and rollback.
package route

import (
	"context"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"

	"bigtrip/internal/adapter"
	"bigtrip/internal/domain"
	"bigtrip/internal/domain/models"
	"bigtrip/internal/event"
	"bigtrip/internal/remote"
	"bigtrip/internal/utils"
)

// Service is the remote store contract the synchronizer consumes.
type Service interface {
	ListPoints(ctx context.Context) ([]remote.PointRecord, error)
	CreatePoint(ctx context.Context, record remote.PointRecord) (remote.PointRecord, error)
	UpdatePoint(ctx context.Context, record remote.PointRecord) (remote.PointRecord, error)
	DeletePoint(ctx context.Context, id string) error
}

// Synchronizer orchestrates create/update/delete against the remote store
// with optimistic application and rollback. Operations sharing a point id are
// serialized; distinct ids proceed concurrently. It is the only writer of the
// collection. Events are emitted after the corresponding mutation is
// complete, so observers always read a settled collection.
type Synchronizer struct {
	service Service
	bus     *event.Bus
	queues  *idQueues

	mu     sync.Mutex
	points []models.Point
}

// NewSynchronizer wires the synchronizer to its collaborators. The bus may be
// shared with other publishers.
func NewSynchronizer(service Service, bus *event.Bus) *Synchronizer {
	if bus == nil {
		bus = event.NewBus()
	}
	return &Synchronizer{
		service: service,
		bus:     bus,
		queues:  newIDQueues(),
	}
}

// AddObserver subscribes to collection-change events; returns an id for
// RemoveObserver.
func (s *Synchronizer) AddObserver(fn event.Observer) int {
	return s.bus.Subscribe(fn)
}

// RemoveObserver drops a subscription.
func (s *Synchronizer) RemoveObserver(id int) {
	s.bus.Unsubscribe(id)
}

// Init loads the full collection. Malformed records are skipped with a
// warning; on a remote failure the collection stays empty and the error is
// returned without retry.
func (s *Synchronizer) Init(ctx context.Context) error {
	records, err := s.service.ListPoints(ctx)
	if err != nil {
		return fmt.Errorf("load points: %w", err)
	}

	points := make([]models.Point, 0, len(records))
	for _, record := range records {
		point, err := adapter.ToClient(record)
		if err != nil {
			utils.LogEvent("", "route", "init_skip_record", fmt.Sprintf("id=%s err=%v", record.ID, err))
			continue
		}
		points = append(points, point)
	}

	s.mu.Lock()
	s.points = points
	s.mu.Unlock()
	return nil
}

// Points returns a copy of the current collection. Ordering is a display
// concern and not guaranteed here.
func (s *Synchronizer) Points() []models.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Point, len(s.points))
	for i, point := range s.points {
		out[i] = point.Clone()
	}
	return out
}

// Create optimistically inserts the draft under a temporary id, then issues
// the remote create. On success the temporary entity is replaced by the
// confirmed one (UPDATED event with PrevID); on failure it is removed again
// (ROLLBACK event) and the error returned.
func (s *Synchronizer) Create(ctx context.Context, draft models.Point) (models.Point, error) {
	if err := draft.Validate(); err != nil {
		return models.Point{}, err
	}

	temp := draft.Clone()
	temp.ID = models.TempIDPrefix + ulid.Make().String()

	release := s.queues.acquire(temp.ID)
	defer release()

	s.mu.Lock()
	s.points = append(s.points, temp.Clone())
	s.mu.Unlock()
	s.bus.Emit(event.Event{Kind: event.KindCreated, Point: ref(temp)})

	record := adapter.ToServer(draft)
	record.ID = ""
	confirmedRecord, err := s.service.CreatePoint(ctx, record)
	if err != nil {
		s.removeByID(temp.ID)
		s.bus.Emit(event.Event{Kind: event.KindRollback, ID: temp.ID, Err: err})
		return models.Point{}, fmt.Errorf("create point: %w", err)
	}

	confirmed, err := adapter.ToClient(confirmedRecord)
	if err != nil {
		s.removeByID(temp.ID)
		s.bus.Emit(event.Event{Kind: event.KindRollback, ID: temp.ID, Err: err})
		return models.Point{}, fmt.Errorf("create point: %w", err)
	}

	s.mu.Lock()
	s.replaceLocked(temp.ID, confirmed)
	s.mu.Unlock()
	s.bus.Emit(event.Event{Kind: event.KindUpdated, Point: ref(confirmed), PrevID: temp.ID})
	return confirmed.Clone(), nil
}

// Update optimistically replaces the entity, then issues the remote update.
// On success the server-confirmed entity is reconciled in; on failure the
// snapshot is restored and the error returned. A remote NotFound additionally
// drops the stale entity, since it cannot exist.
func (s *Synchronizer) Update(ctx context.Context, point models.Point) (models.Point, error) {
	if err := point.Validate(); err != nil {
		return models.Point{}, err
	}

	release := s.queues.acquire(point.ID)
	defer release()

	s.mu.Lock()
	snapshot, _, ok := s.findLocked(point.ID)
	if !ok {
		s.mu.Unlock()
		return models.Point{}, domain.NotFoundError{Resource: "point", ID: point.ID}
	}
	s.replaceLocked(point.ID, point)
	s.mu.Unlock()
	s.bus.Emit(event.Event{Kind: event.KindUpdated, Point: ref(point)})

	confirmedRecord, err := s.service.UpdatePoint(ctx, adapter.ToServer(point))
	if err != nil {
		s.rollbackReplace(snapshot, err)
		return models.Point{}, fmt.Errorf("update point %s: %w", point.ID, err)
	}

	confirmed, err := adapter.ToClient(confirmedRecord)
	if err != nil {
		s.rollbackReplace(snapshot, err)
		return models.Point{}, fmt.Errorf("update point %s: %w", point.ID, err)
	}

	s.mu.Lock()
	s.replaceLocked(point.ID, confirmed)
	s.mu.Unlock()
	s.bus.Emit(event.Event{Kind: event.KindUpdated, Point: ref(confirmed)})
	return confirmed.Clone(), nil
}

// Delete optimistically removes the entity, then issues the remote delete.
// On failure the snapshot is reinserted at its original position and the
// error returned; a remote NotFound drops the stale entity after the
// rollback.
func (s *Synchronizer) Delete(ctx context.Context, id string) error {
	release := s.queues.acquire(id)
	defer release()

	s.mu.Lock()
	snapshot, index, ok := s.findLocked(id)
	if !ok {
		s.mu.Unlock()
		return domain.NotFoundError{Resource: "point", ID: id}
	}
	s.points = append(s.points[:index], s.points[index+1:]...)
	s.mu.Unlock()
	s.bus.Emit(event.Event{Kind: event.KindDeleted, ID: id})

	if err := s.service.DeletePoint(ctx, id); err != nil {
		s.mu.Lock()
		s.insertLocked(snapshot, index)
		s.mu.Unlock()
		s.bus.Emit(event.Event{Kind: event.KindRollback, ID: id, Err: err})
		s.dropIfGoneRemotely(id, err)
		return fmt.Errorf("delete point %s: %w", id, err)
	}
	return nil
}

// rollbackReplace restores an update snapshot and emits ROLLBACK, then drops
// the entity entirely if the remote says it no longer exists.
func (s *Synchronizer) rollbackReplace(snapshot models.Point, cause error) {
	s.mu.Lock()
	s.replaceLocked(snapshot.ID, snapshot)
	s.mu.Unlock()
	s.bus.Emit(event.Event{Kind: event.KindRollback, ID: snapshot.ID, Err: cause})
	s.dropIfGoneRemotely(snapshot.ID, cause)
}

func (s *Synchronizer) dropIfGoneRemotely(id string, cause error) {
	if !domain.IsNotFound(cause) {
		return
	}
	if s.removeByID(id) {
		utils.LogEvent("", "route", "drop_stale_point", "id="+id)
		s.bus.Emit(event.Event{Kind: event.KindDeleted, ID: id})
	}
}

func (s *Synchronizer) removeByID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, index, ok := s.findLocked(id); ok {
		s.points = append(s.points[:index], s.points[index+1:]...)
		return true
	}
	return false
}

func (s *Synchronizer) findLocked(id string) (models.Point, int, bool) {
	for i, point := range s.points {
		if point.ID == id {
			return point.Clone(), i, true
		}
	}
	return models.Point{}, -1, false
}

func (s *Synchronizer) replaceLocked(id string, point models.Point) {
	for i := range s.points {
		if s.points[i].ID == id {
			s.points[i] = point.Clone()
			return
		}
	}
	s.points = append(s.points, point.Clone())
}

func (s *Synchronizer) insertLocked(point models.Point, index int) {
	if index < 0 || index > len(s.points) {
		index = len(s.points)
	}
	s.points = append(s.points, models.Point{})
	copy(s.points[index+1:], s.points[index:])
	s.points[index] = point.Clone()
}

func ref(point models.Point) *models.Point {
	clone := point.Clone()
	return &clone
}
