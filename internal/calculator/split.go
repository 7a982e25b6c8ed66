// Package calculator holds the split and settlement math: dividing an expense among
// participants, folding a ledger into member balances, and reducing balances to a
// short list of transfers. Everything here is pure and safe for concurrent use.
package calculator

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/apperr"
	"github.com/mmynk/tripsplit/internal/models"
)

var (
	hundred          = decimal.NewFromInt(100)
	cent             = decimal.New(1, -2)
	percentTolerance = decimal.New(5, -1)

	// MaxAmount is the largest amount whose cent value fits in an int64.
	MaxAmount = decimal.New(math.MaxInt64, -2)
)

// Participant is one member's input to a split.
type Participant struct {
	MemberID string

	// Percent is used by percentage splits (e.g., 33.3 for 33.3%).
	Percent decimal.Decimal

	// Share is used by custom splits.
	Share decimal.Decimal
}

// ComputeSplits divides amount among participants according to splitType.
//
// Shares are truncated to whole cents for every participant except the last one in the
// supplied order, which absorbs the remainder. The returned splits always sum exactly
// to amount. ExpenseID is left empty for the caller to fill.
func ComputeSplits(amount decimal.Decimal, splitType models.SplitType, participants []Participant) ([]models.Split, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	switch splitType {
	case models.SplitEqual, models.SplitPercentage, models.SplitCustom:
	default:
		return nil, apperr.New(apperr.KindInvalidSplitType, "unknown split type: %q", splitType)
	}
	if len(participants) == 0 {
		return nil, apperr.New(apperr.KindNoParticipants, "must have at least one participant")
	}
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if p.MemberID == "" {
			return nil, apperr.New(apperr.KindInvalidInput, "participant member id is required")
		}
		if seen[p.MemberID] {
			return nil, apperr.New(apperr.KindDuplicateParticipant, "participant %s listed more than once", p.MemberID)
		}
		seen[p.MemberID] = true
	}

	switch splitType {
	case models.SplitPercentage:
		return splitPercentage(amount, participants)
	case models.SplitCustom:
		return splitCustom(amount, participants)
	default:
		return splitEqual(amount, participants), nil
	}
}

// ValidateAmount rejects non-positive amounts, amounts finer than one cent and
// amounts above MaxAmount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return apperr.New(apperr.KindInvalidAmount, "amount must be positive, got %s", amount)
	}
	if !amount.Equal(amount.Truncate(2)) {
		return apperr.New(apperr.KindInvalidAmount, "amount %s has more than two decimal places", amount)
	}
	if amount.GreaterThan(MaxAmount) {
		return apperr.New(apperr.KindInvalidAmount, "amount %s exceeds %s", amount, MaxAmount)
	}
	return nil
}

func splitEqual(amount decimal.Decimal, participants []Participant) []models.Split {
	each := amount.Div(decimal.NewFromInt(int64(len(participants)))).Truncate(2)

	shares := make([]decimal.Decimal, len(participants))
	for i := range shares {
		shares[i] = each
	}
	return withRemainder(amount, participants, shares)
}

func splitPercentage(amount decimal.Decimal, participants []Participant) ([]models.Split, error) {
	total := decimal.Zero
	for _, p := range participants {
		if p.Percent.IsNegative() {
			return nil, apperr.New(apperr.KindInvalidAmount, "percent for %s cannot be negative", p.MemberID)
		}
		total = total.Add(p.Percent)
	}
	if total.Sub(hundred).Abs().GreaterThan(percentTolerance) {
		return nil, apperr.New(apperr.KindSplitSumMismatch, "percentages sum to %s, want 100", total)
	}

	shares := make([]decimal.Decimal, len(participants))
	for i, p := range participants {
		shares[i] = amount.Mul(p.Percent).Div(hundred).Truncate(2)
	}
	splits := withRemainder(amount, participants, shares)
	if splits[len(splits)-1].Share.IsNegative() {
		return nil, apperr.New(apperr.KindSplitSumMismatch, "percentages sum to %s, leaving a negative share", total)
	}
	return splits, nil
}

func splitCustom(amount decimal.Decimal, participants []Participant) ([]models.Split, error) {
	total := decimal.Zero
	for _, p := range participants {
		if p.Share.IsNegative() {
			return nil, apperr.New(apperr.KindInvalidAmount, "share for %s cannot be negative", p.MemberID)
		}
		total = total.Add(p.Share)
	}
	if total.Sub(amount).Abs().GreaterThan(cent) {
		return nil, apperr.New(apperr.KindSplitSumMismatch, "shares sum to %s, want %s", total, amount)
	}

	shares := make([]decimal.Decimal, len(participants))
	for i, p := range participants {
		shares[i] = p.Share.Round(2)
	}
	splits := withRemainder(amount, participants, shares)
	if splits[len(splits)-1].Share.IsNegative() {
		return nil, apperr.New(apperr.KindSplitSumMismatch, "shares sum to %s, want %s", total, amount)
	}
	return splits, nil
}

// withRemainder builds the splits, replacing the last share with whatever is left of
// amount after the others.
func withRemainder(amount decimal.Decimal, participants []Participant, shares []decimal.Decimal) []models.Split {
	splits := make([]models.Split, len(participants))
	assigned := decimal.Zero
	last := len(participants) - 1
	for i, p := range participants {
		share := shares[i]
		if i == last {
			share = amount.Sub(assigned)
		}
		assigned = assigned.Add(share)
		splits[i] = models.Split{MemberID: p.MemberID, Share: share}
	}
	return splits
}
