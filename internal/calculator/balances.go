package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

// MemberBalance represents the balance information for one trip member.
type MemberBalance struct {
	MemberID string
	Paid     decimal.Decimal // Expenses paid plus settlements sent
	Owed     decimal.Decimal // Expense shares plus settlements received
	Net      decimal.Decimal // Positive = owed money, Negative = owes money
}

// Positions folds a trip's expenses and settlements into one MemberBalance per member,
// sorted by member ID.
//
// Algorithm:
//   - Every known member starts at zero, so members with no activity still appear.
//   - For each expense: payer paid +amount, each split member owes their share.
//   - For each settlement: the sender paid +amount, the receiver owes +amount.
//   - Net = Paid - Owed.
//
// Expenses and settlements may arrive in any order. IDs missing from members still get
// a balance so the sum stays zero.
func Positions(members []models.Member, expenses []models.Expense, settlements []models.Settlement) []MemberBalance {
	balances := make(map[string]*MemberBalance, len(members))
	get := func(id string) *MemberBalance {
		bal, ok := balances[id]
		if !ok {
			bal = &MemberBalance{MemberID: id}
			balances[id] = bal
		}
		return bal
	}

	for _, m := range members {
		get(m.ID)
	}

	for _, e := range expenses {
		payer := get(e.PayerID)
		payer.Paid = payer.Paid.Add(e.Amount)
		for _, s := range e.Splits {
			participant := get(s.MemberID)
			participant.Owed = participant.Owed.Add(s.Share)
		}
	}

	for _, s := range settlements {
		from := get(s.FromID)
		from.Paid = from.Paid.Add(s.Amount)
		to := get(s.ToID)
		to.Owed = to.Owed.Add(s.Amount)
	}

	out := make([]MemberBalance, 0, len(balances))
	for _, bal := range balances {
		bal.Net = bal.Paid.Sub(bal.Owed)
		out = append(out, *bal)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MemberID < out[j].MemberID })
	return out
}

// Aggregate returns each member's net balance. See Positions.
func Aggregate(members []models.Member, expenses []models.Expense, settlements []models.Settlement) map[string]decimal.Decimal {
	positions := Positions(members, expenses, settlements)
	net := make(map[string]decimal.Decimal, len(positions))
	for _, p := range positions {
		net[p.MemberID] = p.Net
	}
	return net
}
