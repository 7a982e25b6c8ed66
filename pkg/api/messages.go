// Package api defines the tripsplit.v1 wire messages. Money travels as decimal strings
// with two fractional digits ("12.50"); timestamps are Unix seconds.
package api

// User is a registered account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

// RegisterResponse carries a short-lived access token and a refresh token that
// RefreshToken exchanges for new access tokens.
type RegisterResponse struct {
	User         *User  `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User         *User  `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenResponse struct {
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// Member is a user inside one trip.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Trip dates are Unix seconds; zero means not set.
type Trip struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Destination string   `json:"destination,omitempty"`
	StartDate   int64    `json:"startDate,omitempty"`
	EndDate     int64    `json:"endDate,omitempty"`
	Currency    string   `json:"currency"`
	InviteCode  string   `json:"inviteCode"`
	OwnerID     string   `json:"ownerId"`
	Members     []Member `json:"members"`
	CreatedAt   int64    `json:"createdAt"`
}

type CreateTripRequest struct {
	Name        string `json:"name"`
	Currency    string `json:"currency,omitempty"`
	Description string `json:"description,omitempty"`
	Destination string `json:"destination,omitempty"`
	StartDate   int64  `json:"startDate,omitempty"`
	EndDate     int64  `json:"endDate,omitempty"`
}

type CreateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type JoinTripRequest struct {
	InviteCode string `json:"inviteCode"`
}

type JoinTripResponse struct {
	Trip *Trip `json:"trip"`
}

type GetTripRequest struct {
	TripID string `json:"tripId"`
}

type GetTripResponse struct {
	Trip *Trip `json:"trip"`
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Trips []Trip `json:"trips"`
}

// Participant names a member sharing an expense. Percent is read for percentage
// splits, Share for custom splits; both are ignored for equal splits.
type Participant struct {
	MemberID string `json:"memberId"`
	Percent  string `json:"percent,omitempty"`
	Share    string `json:"share,omitempty"`
}

type Split struct {
	MemberID string `json:"memberId"`
	Share    string `json:"share"`
}

type Expense struct {
	ID        string  `json:"id"`
	TripID    string  `json:"tripId"`
	Title     string  `json:"title"`
	Amount    string  `json:"amount"`
	Currency  string  `json:"currency"`
	PayerID   string  `json:"payerId"`
	SplitType string  `json:"splitType"`
	Splits    []Split `json:"splits"`
	Notes     string  `json:"notes,omitempty"`
	CreatedAt int64   `json:"createdAt"`
	UpdatedAt int64   `json:"updatedAt"`
}

type CreateExpenseRequest struct {
	TripID       string        `json:"tripId"`
	Title        string        `json:"title"`
	Amount       string        `json:"amount"`
	PayerID      string        `json:"payerId"`
	SplitType    string        `json:"splitType"`
	Participants []Participant `json:"participants"`
	Notes        string        `json:"notes,omitempty"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

// UpdateExpenseRequest replaces every editable field of an expense.
type UpdateExpenseRequest struct {
	ExpenseID    string        `json:"expenseId"`
	Title        string        `json:"title"`
	Amount       string        `json:"amount"`
	PayerID      string        `json:"payerId"`
	SplitType    string        `json:"splitType"`
	Participants []Participant `json:"participants"`
	Notes        string        `json:"notes,omitempty"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

type GetExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	TripID string `json:"tripId"`
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type Settlement struct {
	ID        string `json:"id"`
	TripID    string `json:"tripId"`
	FromID    string `json:"fromId"`
	ToID      string `json:"toId"`
	Amount    string `json:"amount"`
	Note      string `json:"note,omitempty"`
	CreatedBy string `json:"createdBy"`
	CreatedAt int64  `json:"createdAt"`
}

type RecordSettlementRequest struct {
	TripID string `json:"tripId"`
	FromID string `json:"fromId"`
	ToID   string `json:"toId"`
	Amount string `json:"amount"`
	Note   string `json:"note,omitempty"`
}

type RecordSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type DeleteSettlementRequest struct {
	SettlementID string `json:"settlementId"`
}

type DeleteSettlementResponse struct{}

type ListSettlementsRequest struct {
	TripID string `json:"tripId"`
}

type ListSettlementsResponse struct {
	Settlements []Settlement `json:"settlements"`
}

// Balance is one member's position. Positive Net means the member is owed money.
type Balance struct {
	MemberID string `json:"memberId"`
	Name     string `json:"name"`
	Paid     string `json:"paid"`
	Owed     string `json:"owed"`
	Net      string `json:"net"`
}

// Transfer is one suggested payment from a debtor to a creditor.
type Transfer struct {
	FromID   string `json:"fromId"`
	FromName string `json:"fromName"`
	ToID     string `json:"toId"`
	ToName   string `json:"toName"`
	Amount   string `json:"amount"`
}

type Summary struct {
	TripID    string     `json:"tripId"`
	Currency  string     `json:"currency"`
	Balances  []Balance  `json:"balances"`
	Transfers []Transfer `json:"transfers"`
}

type GetSettlementSummaryRequest struct {
	TripID string `json:"tripId"`
}

type GetSettlementSummaryResponse struct {
	Summary *Summary `json:"summary"`
}

// ItineraryItem times are Unix seconds; zero means unscheduled.
type ItineraryItem struct {
	ID          string `json:"id"`
	TripID      string `json:"tripId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	StartsAt    int64  `json:"startsAt,omitempty"`
	EndsAt      int64  `json:"endsAt,omitempty"`
	CreatedBy   string `json:"createdBy"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

type AddItineraryItemRequest struct {
	TripID      string `json:"tripId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	StartsAt    int64  `json:"startsAt,omitempty"`
	EndsAt      int64  `json:"endsAt,omitempty"`
}

type AddItineraryItemResponse struct {
	Item *ItineraryItem `json:"item"`
}

// UpdateItineraryItemRequest replaces every editable field of an item.
type UpdateItineraryItemRequest struct {
	ItemID      string `json:"itemId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	StartsAt    int64  `json:"startsAt,omitempty"`
	EndsAt      int64  `json:"endsAt,omitempty"`
}

type UpdateItineraryItemResponse struct {
	Item *ItineraryItem `json:"item"`
}

type DeleteItineraryItemRequest struct {
	ItemID string `json:"itemId"`
}

type DeleteItineraryItemResponse struct{}

type ListItineraryRequest struct {
	TripID string `json:"tripId"`
}

type ListItineraryResponse struct {
	Items []ItineraryItem `json:"items"`
}

type WatchTripRequest struct {
	TripID string `json:"tripId"`
}

// TripEvent is one trip change pushed to watchers. Channel is expenseUpdated or
// itineraryUpdated. Action is one of add, update, delete, settle or unsettle.
type TripEvent struct {
	Channel    string         `json:"channel"`
	Action     string         `json:"action"`
	TripID     string         `json:"tripId"`
	Expense    *Expense       `json:"expense,omitempty"`
	Settlement *Settlement    `json:"settlement,omitempty"`
	Item       *ItineraryItem `json:"item,omitempty"`
	ID         string         `json:"id,omitempty"`
	At         int64          `json:"at"`
}
