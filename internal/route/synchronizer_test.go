package route

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bigtrip/internal/domain"
	"bigtrip/internal/domain/models"
	"bigtrip/internal/event"
	"bigtrip/internal/remote"
)

// fakeService stubs the remote store with overridable behavior per call.
type fakeService struct {
	listFn   func(ctx context.Context) ([]remote.PointRecord, error)
	createFn func(ctx context.Context, record remote.PointRecord) (remote.PointRecord, error)
	updateFn func(ctx context.Context, record remote.PointRecord) (remote.PointRecord, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakeService) ListPoints(ctx context.Context) ([]remote.PointRecord, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeService) CreatePoint(ctx context.Context, record remote.PointRecord) (remote.PointRecord, error) {
	if f.createFn != nil {
		return f.createFn(ctx, record)
	}
	record.ID = "server-1"
	return record, nil
}

func (f *fakeService) UpdatePoint(ctx context.Context, record remote.PointRecord) (remote.PointRecord, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, record)
	}
	return record, nil
}

func (f *fakeService) DeletePoint(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func validDraft() models.Point {
	return models.Point{
		Type:        models.TypeFlight,
		Destination: "d-1",
		DateFrom:    time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		DateTo:      time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		BasePrice:   500,
		Offers:      []string{"offer-1"},
	}
}

func TestInitLoadsAndSkipsMalformed(t *testing.T) {
	service := &fakeService{
		listFn: func(_ context.Context) ([]remote.PointRecord, error) {
			return []remote.PointRecord{
				{ID: "p-1", Type: "flight", Destination: "d-1", BasePrice: 100,
					DateFrom: "2024-01-01T10:00:00Z", DateTo: "2024-01-01T11:00:00Z"},
				{ID: "p-2", Type: "flight", Destination: "d-1", BasePrice: 100,
					DateFrom: "not-a-date", DateTo: "2024-01-01T11:00:00Z"},
			}, nil
		},
	}
	s := NewSynchronizer(service, nil)

	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("init error: %v", err)
	}
	points := s.Points()
	if len(points) != 1 || points[0].ID != "p-1" {
		t.Fatalf("expected only the well-formed record, got %+v", points)
	}
}

func TestInitFailureLeavesCollectionEmpty(t *testing.T) {
	service := &fakeService{
		listFn: func(_ context.Context) ([]remote.PointRecord, error) {
			return nil, domain.TransportError{Op: "GET points", Err: errors.New("connection refused")}
		},
	}
	s := NewSynchronizer(service, nil)

	if err := s.Init(context.Background()); !domain.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if got := len(s.Points()); got != 0 {
		t.Fatalf("collection must stay empty, got %d points", got)
	}
}

func TestCreateOptimisticVisibility(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	service := &fakeService{
		createFn: func(_ context.Context, record remote.PointRecord) (remote.PointRecord, error) {
			close(entered)
			<-release
			record.ID = "server-1"
			return record, nil
		},
	}
	s := NewSynchronizer(service, nil)

	done := make(chan error, 1)
	go func() {
		_, err := s.Create(context.Background(), validDraft())
		done <- err
	}()

	<-entered
	points := s.Points()
	if len(points) != 1 || !points[0].IsTemp() {
		t.Fatalf("expected one temp point before settle, got %+v", points)
	}
	if points[0].BasePrice != 500 {
		t.Fatalf("optimistic entity must carry the draft fields: %+v", points[0])
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("create error: %v", err)
	}
	points = s.Points()
	if len(points) != 1 || points[0].ID != "server-1" {
		t.Fatalf("expected confirmed entity after settle, got %+v", points)
	}
}

func TestCreateRollbackOnFailure(t *testing.T) {
	service := &fakeService{
		createFn: func(_ context.Context, _ remote.PointRecord) (remote.PointRecord, error) {
			return remote.PointRecord{}, domain.ServerError{Op: "POST points", Status: 500}
		},
	}
	bus := event.NewBus()
	var rollbacks []event.Event
	bus.Subscribe(func(evt event.Event) {
		if evt.Kind == event.KindRollback {
			rollbacks = append(rollbacks, evt)
		}
	})
	s := NewSynchronizer(service, bus)

	_, err := s.Create(context.Background(), validDraft())
	if !domain.IsServer(err) {
		t.Fatalf("expected server error, got %v", err)
	}
	if got := len(s.Points()); got != 0 {
		t.Fatalf("temp entity must be gone after rollback, got %d points", got)
	}
	if len(rollbacks) != 1 {
		t.Fatalf("expected exactly one ROLLBACK, got %d", len(rollbacks))
	}
	if rollbacks[0].ID == "" || rollbacks[0].Err == nil {
		t.Fatalf("rollback must carry temp id and error: %+v", rollbacks[0])
	}
}

func TestCreateConfirmationCarriesPrevID(t *testing.T) {
	bus := event.NewBus()
	var confirmations []event.Event
	bus.Subscribe(func(evt event.Event) {
		if evt.Kind == event.KindUpdated {
			confirmations = append(confirmations, evt)
		}
	})
	s := NewSynchronizer(&fakeService{}, bus)

	confirmed, err := s.Create(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if confirmed.ID != "server-1" {
		t.Fatalf("expected server id, got %s", confirmed.ID)
	}
	if len(confirmations) != 1 || confirmations[0].PrevID == "" {
		t.Fatalf("confirmation must map temp id to real id: %+v", confirmations)
	}
}

func TestUpdateRollbackRestoresSnapshot(t *testing.T) {
	s := seededSynchronizer(t, &fakeService{
		updateFn: func(_ context.Context, _ remote.PointRecord) (remote.PointRecord, error) {
			return remote.PointRecord{}, domain.TransportError{Op: "PUT points", Err: errors.New("network down")}
		},
	})

	edited := s.Points()[0]
	edited.BasePrice = 9999

	_, err := s.Update(context.Background(), edited)
	if !domain.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	points := s.Points()
	if len(points) != 1 || points[0].BasePrice != 100 {
		t.Fatalf("collection must show the pre-edit entity, got %+v", points)
	}
}

func TestUpdateNotFoundDropsStaleEntity(t *testing.T) {
	s := seededSynchronizer(t, &fakeService{
		updateFn: func(_ context.Context, record remote.PointRecord) (remote.PointRecord, error) {
			return remote.PointRecord{}, domain.NotFoundError{Resource: "point", ID: record.ID}
		},
	})

	edited := s.Points()[0]
	edited.BasePrice = 250

	_, err := s.Update(context.Background(), edited)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if got := len(s.Points()); got != 0 {
		t.Fatalf("stale entity must be removed, got %d points", got)
	}
}

func TestDeleteRollbackReinsertsAtPosition(t *testing.T) {
	records := []remote.PointRecord{
		{ID: "p-1", Type: "flight", Destination: "d-1", BasePrice: 1,
			DateFrom: "2024-01-01T10:00:00Z", DateTo: "2024-01-01T11:00:00Z"},
		{ID: "p-2", Type: "taxi", Destination: "d-1", BasePrice: 2,
			DateFrom: "2024-01-02T10:00:00Z", DateTo: "2024-01-02T11:00:00Z"},
		{ID: "p-3", Type: "bus", Destination: "d-1", BasePrice: 3,
			DateFrom: "2024-01-03T10:00:00Z", DateTo: "2024-01-03T11:00:00Z"},
	}
	service := &fakeService{
		listFn: func(_ context.Context) ([]remote.PointRecord, error) { return records, nil },
		deleteFn: func(_ context.Context, _ string) error {
			return domain.ServerError{Op: "DELETE points", Status: 500}
		},
	}
	s := NewSynchronizer(service, nil)
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("init error: %v", err)
	}

	if err := s.Delete(context.Background(), "p-2"); !domain.IsServer(err) {
		t.Fatalf("expected server error, got %v", err)
	}
	points := s.Points()
	if len(points) != 3 || points[1].ID != "p-2" {
		t.Fatalf("snapshot must return to its original position, got %+v", points)
	}
}

func TestDeleteSuccessIsQuietAfterOptimisticEvent(t *testing.T) {
	bus := event.NewBus()
	var kinds []event.Kind
	bus.Subscribe(func(evt event.Event) { kinds = append(kinds, evt.Kind) })

	s := seededSynchronizerWithBus(t, &fakeService{}, bus)

	if err := s.Delete(context.Background(), "p-1"); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if len(kinds) != 1 || kinds[0] != event.KindDeleted {
		t.Fatalf("expected a single DELETED event, got %v", kinds)
	}
	if got := len(s.Points()); got != 0 {
		t.Fatalf("entity must be gone, got %d points", got)
	}
}

func TestSameIDOperationsAreSerialized(t *testing.T) {
	firstEntered := make(chan struct{})
	releaseFirst := make(chan struct{})

	var mu sync.Mutex
	var started []int
	call := 0

	service := &fakeService{
		updateFn: func(_ context.Context, record remote.PointRecord) (remote.PointRecord, error) {
			mu.Lock()
			call++
			current := call
			started = append(started, current)
			mu.Unlock()
			if current == 1 {
				close(firstEntered)
				<-releaseFirst
			}
			return record, nil
		},
	}
	s := seededSynchronizer(t, service)

	first := s.Points()[0]
	first.BasePrice = 111
	second := first.Clone()
	second.BasePrice = 222

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Update(context.Background(), first)
	}()
	<-firstEntered

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Update(context.Background(), second)
	}()

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	startedEarly := len(started)
	mu.Unlock()
	if startedEarly != 1 {
		t.Fatalf("second update must not start before the first settles, saw %d starts", startedEarly)
	}

	close(releaseFirst)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(started) != 2 {
		t.Fatalf("both updates should have run, saw %d", len(started))
	}
	points := s.Points()
	if len(points) != 1 || points[0].BasePrice != 222 {
		t.Fatalf("final state must reflect the second payload, got %+v", points)
	}
}

func seededSynchronizer(t *testing.T, service *fakeService) *Synchronizer {
	t.Helper()
	return seededSynchronizerWithBus(t, service, nil)
}

func seededSynchronizerWithBus(t *testing.T, service *fakeService, bus *event.Bus) *Synchronizer {
	t.Helper()
	prevList := service.listFn
	service.listFn = func(ctx context.Context) ([]remote.PointRecord, error) {
		if prevList != nil {
			return prevList(ctx)
		}
		return []remote.PointRecord{
			{ID: "p-1", Type: "flight", Destination: "d-1", BasePrice: 100,
				DateFrom: "2024-01-01T10:00:00Z", DateTo: "2024-01-01T11:00:00Z"},
		}, nil
	}
	s := NewSynchronizer(service, bus)
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("init error: %v", err)
	}
	return s
}
