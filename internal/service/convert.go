package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/apperr"
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/pkg/api"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// parseMoney reads a decimal string from a request field.
func parseMoney(field, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, apperr.New(apperr.KindInvalidAmount, "%s is required", field)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, apperr.New(apperr.KindInvalidAmount, "%s %q is not a number", field, value)
	}
	return d, nil
}

// toParticipants reads the percent or share each participant supplies for splitType.
func toParticipants(splitType models.SplitType, in []api.Participant) ([]calculator.Participant, error) {
	out := make([]calculator.Participant, len(in))
	for i, p := range in {
		out[i] = calculator.Participant{MemberID: p.MemberID}
		var err error
		switch splitType {
		case models.SplitPercentage:
			out[i].Percent, err = parseMoney("percent", p.Percent)
		case models.SplitCustom:
			out[i].Share, err = parseMoney("share", p.Share)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPITrip(t *models.Trip) *api.Trip {
	members := make([]api.Member, len(t.Members))
	for i, m := range t.Members {
		members[i] = api.Member{ID: m.ID, Name: m.Name}
	}
	return &api.Trip{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Destination: t.Destination,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Currency:    t.Currency,
		InviteCode:  t.InviteCode,
		OwnerID:     t.OwnerID,
		Members:     members,
		CreatedAt:   t.CreatedAt,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	splits := make([]api.Split, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = api.Split{MemberID: s.MemberID, Share: money(s.Share)}
	}
	return &api.Expense{
		ID:        e.ID,
		TripID:    e.TripID,
		Title:     e.Title,
		Amount:    money(e.Amount),
		Currency:  e.Currency,
		PayerID:   e.PayerID,
		SplitType: string(e.SplitType),
		Splits:    splits,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toAPISettlement(s *models.Settlement) *api.Settlement {
	return &api.Settlement{
		ID:        s.ID,
		TripID:    s.TripID,
		FromID:    s.FromID,
		ToID:      s.ToID,
		Amount:    money(s.Amount),
		Note:      s.Note,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
	}
}

func toAPISummary(s *models.Summary) *api.Summary {
	out := &api.Summary{
		TripID:    s.TripID,
		Currency:  s.Currency,
		Balances:  make([]api.Balance, len(s.Balances)),
		Transfers: make([]api.Transfer, len(s.Transfers)),
	}
	for i, b := range s.Balances {
		out.Balances[i] = api.Balance{
			MemberID: b.MemberID,
			Name:     b.Name,
			Paid:     money(b.Paid),
			Owed:     money(b.Owed),
			Net:      money(b.Net),
		}
	}
	for i, t := range s.Transfers {
		out.Transfers[i] = api.Transfer{
			FromID:   t.FromID,
			FromName: t.FromName,
			ToID:     t.ToID,
			ToName:   t.ToName,
			Amount:   money(t.Amount),
		}
	}
	return out
}

func toAPIItem(it *models.ItineraryItem) *api.ItineraryItem {
	return &api.ItineraryItem{
		ID:          it.ID,
		TripID:      it.TripID,
		Title:       it.Title,
		Description: it.Description,
		Location:    it.Location,
		StartsAt:    it.StartsAt,
		EndsAt:      it.EndsAt,
		CreatedBy:   it.CreatedBy,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func toAPIEvent(e models.Event) *api.TripEvent {
	out := &api.TripEvent{
		Channel: string(e.Channel),
		Action:  string(e.Action),
		TripID:  e.TripID,
		ID:      e.ID,
		At:      e.At,
	}
	if e.Expense != nil {
		out.Expense = toAPIExpense(e.Expense)
	}
	if e.Settlement != nil {
		out.Settlement = toAPISettlement(e.Settlement)
	}
	if e.Item != nil {
		out.Item = toAPIItem(e.Item)
	}
	return out
}
