package services

import (
	"fmt"
	"sort"

	"travelog/internal/domain/models"
	"travelog/internal/repositories"
	"travelog/internal/utils"
)

// SettlementService turns a trip's expense list into per-member balances and a
// minimal repayment plan. Loader funcs are injectable for tests.
type SettlementService struct {
	ExpenseRepo repositories.ExpenseRepository
	MemberRepo  repositories.MemberRepository
	RequestID   string

	LoadExpenses func(tripID int64) ([]models.Expense, error)
	LoadMembers  func(tripID int64) ([]int64, error)
}

func (s SettlementService) expenses(tripID int64) ([]models.Expense, error) {
	if s.LoadExpenses != nil {
		return s.LoadExpenses(tripID)
	}
	return s.ExpenseRepo.ListByTrip(tripID)
}

func (s SettlementService) memberIDs(tripID int64) ([]int64, error) {
	if s.LoadMembers != nil {
		return s.LoadMembers(tripID)
	}
	members, err := s.MemberRepo.ListByTrip(tripID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	return ids, nil
}

// Balances computes paid/owed/net per member across all trip expenses.
func (s SettlementService) Balances(tripID int64) ([]models.Balance, error) {
	expenses, err := s.expenses(tripID)
	if err != nil {
		return nil, err
	}
	members, err := s.memberIDs(tripID)
	if err != nil {
		return nil, err
	}
	return ComputeBalances(expenses, members), nil
}

// Settlement returns balances plus the transfer list that zeroes them.
func (s SettlementService) Settlement(tripID int64) ([]models.Balance, []models.Transfer, error) {
	balances, err := s.Balances(tripID)
	if err != nil {
		return nil, nil, err
	}
	transfers := ComputeTransfers(balances)
	utils.LogEvent(s.RequestID, "settlement", "compute", fmt.Sprintf("trip_id=%d transfers=%d", tripID, len(transfers)))
	return balances, transfers, nil
}

// ComputeBalances splits each expense across its participants (all members
// when the expense names none) and credits the payer. Split order is sorted
// by user id so leftover cents land deterministically.
func ComputeBalances(expenses []models.Expense, memberIDs []int64) []models.Balance {
	byUser := map[int64]*models.Balance{}
	ensure := func(uid int64) *models.Balance {
		if b, ok := byUser[uid]; ok {
			return b
		}
		b := &models.Balance{UserID: uid}
		byUser[uid] = b
		return b
	}
	for _, uid := range memberIDs {
		ensure(uid)
	}

	for _, e := range expenses {
		participants := e.Participants
		if len(participants) == 0 {
			participants = memberIDs
		}
		if len(participants) == 0 {
			continue
		}
		participants = append([]int64(nil), participants...)
		sort.Slice(participants, func(i, j int) bool { return participants[i] < participants[j] })

		ensure(e.PayerID).Paid += e.Amount

		shares := utils.SplitEven(e.Amount, len(participants))
		for i, uid := range participants {
			ensure(uid).Owed += shares[i]
		}
	}

	out := make([]models.Balance, 0, len(byUser))
	for _, b := range byUser {
		b.Net = b.Paid - b.Owed
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// ComputeTransfers greedily matches the largest debtor against the largest
// creditor until every net balance reaches zero. Ties break on smaller user id
// so the plan is stable across runs.
func ComputeTransfers(balances []models.Balance) []models.Transfer {
	net := make(map[int64]int64, len(balances))
	ids := make([]int64, 0, len(balances))
	for _, b := range balances {
		net[b.UserID] = b.Net
		ids = append(ids, b.UserID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	transfers := []models.Transfer{}
	for {
		var creditor, debtor int64
		var maxCredit, maxDebt int64
		for _, id := range ids {
			v := net[id]
			if v > maxCredit {
				maxCredit = v
				creditor = id
			}
			if -v > maxDebt {
				maxDebt = -v
				debtor = id
			}
		}
		if maxCredit == 0 || maxDebt == 0 {
			break
		}

		amount := maxCredit
		if maxDebt < amount {
			amount = maxDebt
		}
		net[creditor] -= amount
		net[debtor] += amount
		transfers = append(transfers, models.Transfer{FromUserID: debtor, ToUserID: creditor, Amount: amount})
	}
	return transfers
}
