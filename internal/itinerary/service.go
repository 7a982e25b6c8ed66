// Package itinerary keeps each trip's plan of activities and announces every change on
// the itinerary event channel.
package itinerary

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/apperr"
	"github.com/mmynk/tripsplit/internal/models"
)

// Store persists itinerary items.
type Store interface {
	AppendItineraryItem(ctx context.Context, item *models.ItineraryItem) error
	ReplaceItineraryItem(ctx context.Context, item *models.ItineraryItem) error
	RemoveItineraryItem(ctx context.Context, itemID string) (*models.ItineraryItem, error)
	GetItineraryItem(ctx context.Context, itemID string) (*models.ItineraryItem, error)
	ListItinerary(ctx context.Context, tripID string) ([]models.ItineraryItem, error)
}

// TripRegistry resolves trips with their members.
type TripRegistry interface {
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
}

// EventSink receives itinerary change notifications.
type EventSink interface {
	Publish(ctx context.Context, event models.Event)
}

// ItemInput describes an item to add or the replacement for an existing one.
// StartsAt and EndsAt are Unix seconds; zero leaves the time unset.
type ItemInput struct {
	TripID      string
	Title       string
	Description string
	Location    string
	StartsAt    int64
	EndsAt      int64
	CreatedBy   string
}

// Service manages itinerary items.
type Service struct {
	store  Store
	trips  TripRegistry
	events EventSink
	now    func() time.Time
}

// NewService wires a Service. A nil sink discards events.
func NewService(store Store, trips TripRegistry, events EventSink) *Service {
	if events == nil {
		events = discard{}
	}
	return &Service{store: store, trips: trips, events: events, now: time.Now}
}

// AddItem validates and stores a new item. The creator must be on the trip.
func (s *Service) AddItem(ctx context.Context, in ItemInput) (*models.ItineraryItem, error) {
	trip, err := s.trips.GetTrip(ctx, in.TripID)
	if err != nil {
		return nil, err
	}
	if !trip.HasMember(in.CreatedBy) {
		return nil, apperr.New(apperr.KindMemberNotFound, "member %q is not on trip %s", in.CreatedBy, trip.ID)
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	now := s.now().Unix()
	item := &models.ItineraryItem{
		ID:          uuid.New().String(),
		TripID:      trip.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.AppendItineraryItem(ctx, item); err != nil {
		slog.Error("AddItem failed", "trip_id", trip.ID, "error", err)
		return nil, err
	}

	slog.Info("Itinerary item added", "trip_id", item.TripID, "item_id", item.ID)
	s.events.Publish(ctx, models.Event{Channel: models.ChannelItinerary, Action: models.ActionAdd, TripID: item.TripID, Item: item, At: now})
	return item, nil
}

// UpdateItem replaces an item's editable fields. The trip and creator never change.
func (s *Service) UpdateItem(ctx context.Context, itemID string, in ItemInput) (*models.ItineraryItem, error) {
	existing, err := s.store.GetItineraryItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if in.TripID != "" && in.TripID != existing.TripID {
		return nil, apperr.New(apperr.KindInvalidInput, "itinerary item %s belongs to a different trip", itemID)
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	item := *existing
	item.Title = strings.TrimSpace(in.Title)
	item.Description = strings.TrimSpace(in.Description)
	item.Location = strings.TrimSpace(in.Location)
	item.StartsAt = in.StartsAt
	item.EndsAt = in.EndsAt
	item.UpdatedAt = s.now().Unix()
	if err := s.store.ReplaceItineraryItem(ctx, &item); err != nil {
		slog.Error("UpdateItem failed", "item_id", itemID, "error", err)
		return nil, err
	}

	slog.Info("Itinerary item updated", "trip_id", item.TripID, "item_id", item.ID)
	s.events.Publish(ctx, models.Event{Channel: models.ChannelItinerary, Action: models.ActionUpdate, TripID: item.TripID, Item: &item, At: item.UpdatedAt})
	return &item, nil
}

// DeleteItem removes an item.
func (s *Service) DeleteItem(ctx context.Context, itemID string) error {
	removed, err := s.store.RemoveItineraryItem(ctx, itemID)
	if err != nil {
		return err
	}

	slog.Info("Itinerary item deleted", "trip_id", removed.TripID, "item_id", itemID)
	s.events.Publish(ctx, models.Event{
		Channel: models.ChannelItinerary,
		Action:  models.ActionDelete,
		TripID:  removed.TripID,
		ID:      itemID,
		At:      s.now().Unix(),
	})
	return nil
}

// GetItem returns one item.
func (s *Service) GetItem(ctx context.Context, itemID string) (*models.ItineraryItem, error) {
	return s.store.GetItineraryItem(ctx, itemID)
}

// ListItems returns the trip's plan, scheduled items first by start time.
func (s *Service) ListItems(ctx context.Context, tripID string) ([]models.ItineraryItem, error) {
	return s.store.ListItinerary(ctx, tripID)
}

func validate(in ItemInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return apperr.New(apperr.KindInvalidInput, "title is required")
	}
	if in.StartsAt < 0 || in.EndsAt < 0 {
		return apperr.New(apperr.KindInvalidInput, "times cannot be negative")
	}
	if in.StartsAt != 0 && in.EndsAt != 0 && in.EndsAt < in.StartsAt {
		return apperr.New(apperr.KindInvalidInput, "item ends before it starts")
	}
	return nil
}

type discard struct{}

func (discard) Publish(context.Context, models.Event) {}
