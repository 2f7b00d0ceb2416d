package services

import (
	"testing"

	"travelog/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBalancesSplitsAcrossAllMembersByDefault(t *testing.T) {
	expenses := []models.Expense{
		{ID: 1, PayerID: 1, Amount: 9000},
	}
	balances := ComputeBalances(expenses, []int64{1, 2, 3})

	require.Len(t, balances, 3)
	assert.Equal(t, int64(9000), balances[0].Paid)
	assert.Equal(t, int64(3000), balances[0].Owed)
	assert.Equal(t, int64(6000), balances[0].Net)
	assert.Equal(t, int64(-3000), balances[1].Net)
	assert.Equal(t, int64(-3000), balances[2].Net)
}

func TestComputeBalancesLeftoverCentsAreDeterministic(t *testing.T) {
	// 100 cents across 3 people: shares 34/33/33 in user-id order.
	expenses := []models.Expense{
		{ID: 1, PayerID: 2, Amount: 100, Participants: []int64{3, 1, 2}},
	}
	balances := ComputeBalances(expenses, []int64{1, 2, 3})

	require.Len(t, balances, 3)
	assert.Equal(t, int64(34), balances[0].Owed)
	assert.Equal(t, int64(33), balances[1].Owed)
	assert.Equal(t, int64(33), balances[2].Owed)

	var total int64
	for _, b := range balances {
		total += b.Net
	}
	assert.Zero(t, total, "net balances must sum to zero")
}

func TestComputeBalancesParticipantSubset(t *testing.T) {
	// Payer not in the participant set still gets full credit.
	expenses := []models.Expense{
		{ID: 1, PayerID: 1, Amount: 5000, Participants: []int64{2, 3}},
	}
	balances := ComputeBalances(expenses, []int64{1, 2, 3})

	require.Len(t, balances, 3)
	assert.Equal(t, int64(5000), balances[0].Net)
	assert.Equal(t, int64(-2500), balances[1].Net)
	assert.Equal(t, int64(-2500), balances[2].Net)
}

func TestComputeTransfersZeroesEveryBalance(t *testing.T) {
	balances := []models.Balance{
		{UserID: 1, Net: 6000},
		{UserID: 2, Net: -3500},
		{UserID: 3, Net: -2500},
	}
	transfers := ComputeTransfers(balances)

	require.Len(t, transfers, 2)
	assert.Equal(t, models.Transfer{FromUserID: 2, ToUserID: 1, Amount: 3500}, transfers[0])
	assert.Equal(t, models.Transfer{FromUserID: 3, ToUserID: 1, Amount: 2500}, transfers[1])

	applied := map[int64]int64{}
	for _, b := range balances {
		applied[b.UserID] = b.Net
	}
	for _, tr := range transfers {
		applied[tr.FromUserID] += tr.Amount
		applied[tr.ToUserID] -= tr.Amount
	}
	for uid, v := range applied {
		assert.Zerof(t, v, "user %d should end settled", uid)
	}
}

func TestComputeTransfersEmptyWhenSettled(t *testing.T) {
	assert.Empty(t, ComputeTransfers(nil))
	assert.Empty(t, ComputeTransfers([]models.Balance{{UserID: 1, Net: 0}, {UserID: 2, Net: 0}}))
}

func TestSettlementServiceUsesInjectedLoaders(t *testing.T) {
	svc := SettlementService{
		LoadExpenses: func(tripID int64) ([]models.Expense, error) {
			return []models.Expense{{ID: 1, PayerID: 1, Amount: 2000}}, nil
		},
		LoadMembers: func(tripID int64) ([]int64, error) {
			return []int64{1, 2}, nil
		},
	}

	balances, transfers, err := svc.Settlement(9)
	require.NoError(t, err)
	require.Len(t, balances, 2)
	require.Len(t, transfers, 1)
	assert.Equal(t, models.Transfer{FromUserID: 2, ToUserID: 1, Amount: 1000}, transfers[0])
}
