package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/itinerary"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/pkg/api"
)

// ItineraryService implements the ItineraryService RPC interface. Every call is limited
// to trips the caller belongs to.
type ItineraryService struct {
	plans *itinerary.Service
	trips tripGetter
}

// NewItineraryService creates an ItineraryService.
func NewItineraryService(plans *itinerary.Service, trips itinerary.TripRegistry) *ItineraryService {
	return &ItineraryService{plans: plans, trips: trips}
}

// AddItineraryItem adds an item to the caller's trip.
func (s *ItineraryService) AddItineraryItem(ctx context.Context, req *connect.Request[api.AddItineraryItemRequest]) (*connect.Response[api.AddItineraryItemResponse], error) {
	if _, err := memberTrip(ctx, s.trips, req.Msg.TripID); err != nil {
		return nil, toConnectError(err)
	}

	item, err := s.plans.AddItem(ctx, itinerary.ItemInput{
		TripID:      req.Msg.TripID,
		Title:       req.Msg.Title,
		Description: req.Msg.Description,
		Location:    req.Msg.Location,
		StartsAt:    req.Msg.StartsAt,
		EndsAt:      req.Msg.EndsAt,
		CreatedBy:   middleware.GetUserID(ctx),
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AddItineraryItemResponse{Item: toAPIItem(item)}), nil
}

// UpdateItineraryItem replaces an item's editable fields.
func (s *ItineraryService) UpdateItineraryItem(ctx context.Context, req *connect.Request[api.UpdateItineraryItemRequest]) (*connect.Response[api.UpdateItineraryItemResponse], error) {
	existing, err := s.memberItem(ctx, req.Msg.ItemID)
	if err != nil {
		return nil, toConnectError(err)
	}

	item, err := s.plans.UpdateItem(ctx, existing.ID, itinerary.ItemInput{
		TripID:      existing.TripID,
		Title:       req.Msg.Title,
		Description: req.Msg.Description,
		Location:    req.Msg.Location,
		StartsAt:    req.Msg.StartsAt,
		EndsAt:      req.Msg.EndsAt,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UpdateItineraryItemResponse{Item: toAPIItem(item)}), nil
}

// DeleteItineraryItem removes an item.
func (s *ItineraryService) DeleteItineraryItem(ctx context.Context, req *connect.Request[api.DeleteItineraryItemRequest]) (*connect.Response[api.DeleteItineraryItemResponse], error) {
	if _, err := s.memberItem(ctx, req.Msg.ItemID); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.plans.DeleteItem(ctx, req.Msg.ItemID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteItineraryItemResponse{}), nil
}

// ListItinerary returns the trip's plan.
func (s *ItineraryService) ListItinerary(ctx context.Context, req *connect.Request[api.ListItineraryRequest]) (*connect.Response[api.ListItineraryResponse], error) {
	if _, err := memberTrip(ctx, s.trips, req.Msg.TripID); err != nil {
		return nil, toConnectError(err)
	}

	items, err := s.plans.ListItems(ctx, req.Msg.TripID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]api.ItineraryItem, len(items))
	for i := range items {
		out[i] = *toAPIItem(&items[i])
	}
	return connect.NewResponse(&api.ListItineraryResponse{Items: out}), nil
}

func (s *ItineraryService) memberItem(ctx context.Context, itemID string) (*models.ItineraryItem, error) {
	item, err := s.plans.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := memberTrip(ctx, s.trips, item.TripID); err != nil {
		return nil, err
	}
	return item, nil
}
