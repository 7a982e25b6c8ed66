package calculator

import (
	"container/heap"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

// Simplify reduces net balances to a list of transfers that settles everyone.
//
// Greedy matching: the largest creditor is paid by the largest debtor, by the smaller
// of the two magnitudes, until one side runs out. Each step zeroes at least one member,
// so N members with a nonzero balance need at most N-1 transfers. This is not the
// global minimum, which is a partition problem.
//
// Balances are rounded to cents first; anything under a cent counts as settled. Ties on
// magnitude go to the lowest member ID, so the same input always yields the same
// transfers. Transfers carry IDs only.
func Simplify(balances map[string]decimal.Decimal) []models.Transfer {
	creditors := &partyHeap{}
	debtors := &partyHeap{}
	for id, bal := range balances {
		bal = bal.Round(2)
		switch {
		case bal.GreaterThanOrEqual(cent):
			*creditors = append(*creditors, party{id: id, amount: bal})
		case bal.LessThanOrEqual(cent.Neg()):
			*debtors = append(*debtors, party{id: id, amount: bal.Neg()})
		}
	}
	heap.Init(creditors)
	heap.Init(debtors)

	var transfers []models.Transfer
	for creditors.Len() > 0 && debtors.Len() > 0 {
		c := heap.Pop(creditors).(party)
		d := heap.Pop(debtors).(party)

		amount := decimal.Min(c.amount, d.amount)
		transfers = append(transfers, models.Transfer{
			FromID: d.id,
			ToID:   c.id,
			Amount: amount,
		})

		if rest := c.amount.Sub(amount); rest.GreaterThanOrEqual(cent) {
			heap.Push(creditors, party{id: c.id, amount: rest})
		}
		if rest := d.amount.Sub(amount); rest.GreaterThanOrEqual(cent) {
			heap.Push(debtors, party{id: d.id, amount: rest})
		}
	}
	return transfers
}

// party is one side of the matching; amount is always positive.
type party struct {
	id     string
	amount decimal.Decimal
}

// partyHeap is a max-heap on amount, lowest id first on ties.
type partyHeap []party

func (h partyHeap) Len() int { return len(h) }

func (h partyHeap) Less(i, j int) bool {
	if c := h[i].amount.Cmp(h[j].amount); c != 0 {
		return c > 0
	}
	return h[i].id < h[j].id
}

func (h partyHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *partyHeap) Push(x any) { *h = append(*h, x.(party)) }

func (h *partyHeap) Pop() any {
	old := *h
	n := len(old)
	p := old[n-1]
	*h = old[:n-1]
	return p
}
