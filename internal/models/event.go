package models

// EventChannel separates the kinds of trip change a watcher can receive.
type EventChannel string

const (
	ChannelExpense   EventChannel = "expenseUpdated"
	ChannelItinerary EventChannel = "itineraryUpdated"
)

// EventAction names a trip change.
type EventAction string

const (
	ActionAdd      EventAction = "add"
	ActionUpdate   EventAction = "update"
	ActionDelete   EventAction = "delete"
	ActionSettle   EventAction = "settle"
	ActionUnsettle EventAction = "unsettle"
)

// Event describes one change for subscribers of a trip. On the expense channel add and
// update carry the expense, settle carries the settlement, delete and unsettle carry
// only ID. On the itinerary channel add and update carry the item and delete carries
// only ID.
type Event struct {
	Channel    EventChannel
	Action     EventAction
	TripID     string
	Expense    *Expense
	Settlement *Settlement
	Item       *ItineraryItem
	ID         string
	At         int64
}
