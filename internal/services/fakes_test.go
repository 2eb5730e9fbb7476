package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/JBcollo1/magnet-sub000/internal/models"
)

// fakeStore is an in-memory store.Store with optional error injection.
type fakeStore struct {
	mu      sync.Mutex
	data    map[string][]models.CartLineItem
	loadErr error
	saveErr error
	clears  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]models.CartLineItem)}
}

func (f *fakeStore) Load(_ context.Context, sessionID string) ([]models.CartLineItem, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loadErr != nil {
		return nil, false, f.loadErr
	}

	items, ok := f.data[sessionID]

	return items, ok, nil
}

func (f *fakeStore) Save(_ context.Context, sessionID string, items []models.CartLineItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return f.saveErr
	}

	f.data[sessionID] = items

	return nil
}

func (f *fakeStore) Clear(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.clears++
	delete(f.data, sessionID)

	return nil
}

// fakeGateway records calls and replays scripted responses.
type fakeGateway struct {
	createOrderID  string
	createOrderErr error
	createdItems   [][]models.OrderItemInput

	updateErr     error
	updatedOrders []models.UpdateOrderRequest

	payment    *models.Payment
	paymentErr error

	pickupPoints []models.PickupPoint
	pickupErr    error
	pickupCalls  int

	deletedImages []string
	deleteErr     error
}

func (f *fakeGateway) CreateOrder(_ context.Context, items []models.OrderItemInput) (string, error) {
	if f.createOrderErr != nil {
		return "", f.createOrderErr
	}

	f.createdItems = append(f.createdItems, items)

	return f.createOrderID, nil
}

func (f *fakeGateway) UpdateOrder(_ context.Context, req *models.UpdateOrderRequest) error {
	if f.updateErr != nil {
		return f.updateErr
	}

	f.updatedOrders = append(f.updatedOrders, *req)

	return nil
}

func (f *fakeGateway) RecordPayment(_ context.Context, _ *models.RecordPaymentRequest) (*models.Payment, error) {
	if f.paymentErr != nil {
		return nil, f.paymentErr
	}

	return f.payment, nil
}

func (f *fakeGateway) ListPickupPoints(_ context.Context) ([]models.PickupPoint, error) {
	f.pickupCalls++

	if f.pickupErr != nil {
		return nil, f.pickupErr
	}

	return f.pickupPoints, nil
}

func (f *fakeGateway) DeleteTempImage(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}

	f.deletedImages = append(f.deletedImages, id)

	return nil
}

// fakePublisher captures published events.
type publishedEvent struct {
	Type      string
	SessionID string
	Payload   any
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, eventType, sessionID string, payload any) error {
	if f.err != nil {
		return f.err
	}

	f.events = append(f.events, publishedEvent{Type: eventType, SessionID: sessionID, Payload: payload})

	return nil
}

func (f *fakePublisher) Close() error { return nil }

// fakeCache is a map-backed cache.Cache storing values as-is.
type fakeCache struct {
	values map[string]any
	getErr error
	setErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]any)}
}

func (f *fakeCache) Get(_ context.Context, key string, value any) (bool, error) {
	if f.getErr != nil {
		return false, f.getErr
	}

	stored, ok := f.values[key]
	if !ok {
		return false, nil
	}

	dst, ok := value.(*[]models.PickupPoint)
	if !ok {
		return false, errors.New("unexpected destination type")
	}

	*dst = stored.([]models.PickupPoint)

	return true, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}

	f.values[key] = value

	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.values, key)

	return nil
}
