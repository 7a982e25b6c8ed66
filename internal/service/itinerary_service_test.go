package service

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/pkg/api"
)

func TestItineraryRPCs(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	asha := env.register(t, "asha@example.com", "Asha")
	bilal := env.register(t, "bilal@example.com", "Bilal")
	trip := env.tripWith(t, asha, bilal)

	added, err := env.itinerary.AddItineraryItem(ctx, authed(bilal, &api.AddItineraryItemRequest{
		TripID: trip.ID, Title: "Boat ride", Location: "Chapora", StartsAt: 2000, EndsAt: 5000,
	}))
	require.NoError(t, err)
	item := added.Msg.Item
	assert.Equal(t, bilal.userID, item.CreatedBy)
	assert.Equal(t, trip.ID, item.TripID)

	_, err = env.itinerary.AddItineraryItem(ctx, authed(asha, &api.AddItineraryItemRequest{
		TripID: trip.ID, Title: "Breakfast", StartsAt: 1000,
	}))
	require.NoError(t, err)

	list, err := env.itinerary.ListItinerary(ctx, authed(asha, &api.ListItineraryRequest{TripID: trip.ID}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Items, 2)
	assert.Equal(t, "Breakfast", list.Msg.Items[0].Title)
	assert.Equal(t, "Boat ride", list.Msg.Items[1].Title)

	updated, err := env.itinerary.UpdateItineraryItem(ctx, authed(asha, &api.UpdateItineraryItemRequest{
		ItemID: item.ID, Title: "Sunset boat ride", StartsAt: 6000,
	}))
	require.NoError(t, err)
	assert.Equal(t, "Sunset boat ride", updated.Msg.Item.Title)
	assert.Equal(t, bilal.userID, updated.Msg.Item.CreatedBy, "any member may edit; the creator stays")
	assert.Empty(t, updated.Msg.Item.Location)

	_, err = env.itinerary.DeleteItineraryItem(ctx, authed(asha, &api.DeleteItineraryItemRequest{ItemID: item.ID}))
	require.NoError(t, err)

	list, err = env.itinerary.ListItinerary(ctx, authed(bilal, &api.ListItineraryRequest{TripID: trip.ID}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Items, 1)
	assert.Equal(t, "Breakfast", list.Msg.Items[0].Title)

	_, err = env.itinerary.DeleteItineraryItem(ctx, authed(asha, &api.DeleteItineraryItemRequest{ItemID: item.ID}))
	connectErr := requireCode(t, err, connect.CodeNotFound)
	assert.Equal(t, "ItineraryItemNotFound", connectErr.Meta().Get(ErrorKindHeader))
}

func TestItineraryErrors(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	asha := env.register(t, "asha@example.com", "Asha")
	chen := env.register(t, "chen@example.com", "Chen")
	trip := env.tripWith(t, asha)

	added, err := env.itinerary.AddItineraryItem(ctx, authed(asha, &api.AddItineraryItemRequest{TripID: trip.ID, Title: "Spice farm"}))
	require.NoError(t, err)
	itemID := added.Msg.Item.ID

	tests := []struct {
		name string
		call func() error
		code connect.Code
	}{
		{"outsider adds", func() error {
			_, err := env.itinerary.AddItineraryItem(ctx, authed(chen, &api.AddItineraryItemRequest{TripID: trip.ID, Title: "Crash"}))
			return err
		}, connect.CodePermissionDenied},
		{"outsider lists", func() error {
			_, err := env.itinerary.ListItinerary(ctx, authed(chen, &api.ListItineraryRequest{TripID: trip.ID}))
			return err
		}, connect.CodePermissionDenied},
		{"outsider edits", func() error {
			_, err := env.itinerary.UpdateItineraryItem(ctx, authed(chen, &api.UpdateItineraryItemRequest{ItemID: itemID, Title: "Mine"}))
			return err
		}, connect.CodePermissionDenied},
		{"outsider deletes", func() error {
			_, err := env.itinerary.DeleteItineraryItem(ctx, authed(chen, &api.DeleteItineraryItemRequest{ItemID: itemID}))
			return err
		}, connect.CodePermissionDenied},
		{"blank title", func() error {
			_, err := env.itinerary.AddItineraryItem(ctx, authed(asha, &api.AddItineraryItemRequest{TripID: trip.ID, Title: " "}))
			return err
		}, connect.CodeInvalidArgument},
		{"ends before it starts", func() error {
			_, err := env.itinerary.UpdateItineraryItem(ctx, authed(asha, &api.UpdateItineraryItemRequest{
				ItemID: itemID, Title: "Spice farm", StartsAt: 500, EndsAt: 100,
			}))
			return err
		}, connect.CodeInvalidArgument},
		{"unknown item", func() error {
			_, err := env.itinerary.UpdateItineraryItem(ctx, authed(asha, &api.UpdateItineraryItemRequest{ItemID: "missing", Title: "x"}))
			return err
		}, connect.CodeNotFound},
		{"unknown trip", func() error {
			_, err := env.itinerary.ListItinerary(ctx, authed(asha, &api.ListItineraryRequest{TripID: "missing"}))
			return err
		}, connect.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireCode(t, tt.call(), tt.code)
		})
	}

	got, err := env.itinerary.ListItinerary(ctx, authed(asha, &api.ListItineraryRequest{TripID: trip.ID}))
	require.NoError(t, err)
	require.Len(t, got.Msg.Items, 1)
	assert.Equal(t, "Spice farm", got.Msg.Items[0].Title, "rejected calls change nothing")
}

func TestWatchTripItinerary(t *testing.T) {
	env := setupTestServer(t)
	asha := env.register(t, "asha@example.com", "Asha")
	bilal := env.register(t, "bilal@example.com", "Bilal")
	trip := env.tripWith(t, asha, bilal)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream, err := env.expenses.WatchTrip(ctx, authed(bilal, &api.WatchTripRequest{TripID: trip.ID}))
	require.NoError(t, err)
	defer stream.Close()

	require.Eventually(t, func() bool { return env.hub.Subscribers(trip.ID) == 1 },
		2*time.Second, 10*time.Millisecond, "watcher never subscribed")

	added, err := env.itinerary.AddItineraryItem(context.Background(), authed(asha, &api.AddItineraryItemRequest{
		TripID: trip.ID, Title: "Fort Aguada",
	}))
	require.NoError(t, err)

	require.True(t, stream.Receive(), "stream ended: %v", stream.Err())
	event := stream.Msg()
	assert.Equal(t, "itineraryUpdated", event.Channel)
	assert.Equal(t, "add", event.Action)
	require.NotNil(t, event.Item)
	assert.Equal(t, added.Msg.Item.ID, event.Item.ID)
	assert.Nil(t, event.Expense)
}
