package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Damilola-codes/lenno-sub000/apperr"
	"github.com/Damilola-codes/lenno-sub000/models"
)

func TestCreateEscrowFees(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)
	contract := seedContract(t, s, client, freelancer)

	trx, breakdown, err := s.CreateEscrow(ctx, asPrincipal(client), contract.JobID, 4200)
	require.NoError(t, err)

	require.Equal(t, 4200.0, breakdown.Total)
	require.Equal(t, 336.0, breakdown.PlatformFee)
	require.Equal(t, 3864.0, breakdown.FreelancerReceives)
	require.Equal(t, 8.0, breakdown.FeePercentage)

	require.Equal(t, models.TransactionStatusEscrowHeld, trx.Status)
	require.Equal(t, models.TransactionChannelEscrow, trx.Channel)
	require.Equal(t, freelancer.ID, trx.FreelancerID)
	require.NotEmpty(t, trx.PaymentID)
	require.Nil(t, trx.TxHash)
}

func TestCreateEscrowPreconditions(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)

	t.Run("no accepted proposal", func(t *testing.T) {
		job := seedJob(t, s, client, 4000)
		seedProposal(t, s, freelancer, job.ID, 4200)
		_, _, err := s.CreateEscrow(ctx, asPrincipal(client), job.ID, 4200)
		require.True(t, apperr.IsInvalidState(err))
	})

	t.Run("one active hold per job", func(t *testing.T) {
		contract := seedContract(t, s, client, freelancer)
		_, _, err := s.CreateEscrow(ctx, asPrincipal(client), contract.JobID, 4200)
		require.NoError(t, err)
		_, _, err = s.CreateEscrow(ctx, asPrincipal(client), contract.JobID, 100)
		require.True(t, apperr.IsInvalidState(err))
	})

	t.Run("only the owning client", func(t *testing.T) {
		other := seedUser(t, s, "chi2", models.RoleClient)
		contract := seedContract(t, s, client, seedUser(t, s, "dele", models.RoleFreelancer))
		_, _, err := s.CreateEscrow(ctx, asPrincipal(other), contract.JobID, 500)
		require.True(t, apperr.IsForbidden(err))
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, _, err := s.CreateEscrow(ctx, asPrincipal(client), 1, -5)
		require.True(t, apperr.IsValidation(err))
	})
}

func TestCreateEscrowConcurrentHolds(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)
	contract := seedContract(t, s, client, freelancer)

	const n = 4
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = s.CreateEscrow(ctx, asPrincipal(client), contract.JobID, 4200)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		require.True(t, apperr.IsInvalidState(err), "unexpected error: %v", err)
	}
	require.Equal(t, 1, wins)

	var held int64
	require.NoError(t, s.db.Model(&models.Transaction{}).
		Where("job_id = ? AND status = ?", contract.JobID, models.TransactionStatusEscrowHeld).
		Count(&held).Error)
	require.EqualValues(t, 1, held)
}

func TestCompletePayment(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)
	contract := seedContract(t, s, client, freelancer)
	trx, _, err := s.CreateEscrow(ctx, asPrincipal(client), contract.JobID, 4200)
	require.NoError(t, err)

	done, points, err := s.CompletePayment(ctx, asPrincipal(client), trx.ID, "txabc123")
	require.NoError(t, err)
	require.Equal(t, models.TransactionStatusCompleted, done.Status)
	require.Equal(t, "txabc123", *done.TxHash)
	require.Equal(t, 42000.0, points)

	// Completing the escrow closes the job.
	var job models.Job
	require.NoError(t, s.db.First(&job, contract.JobID).Error)
	require.Equal(t, models.JobStatusCompleted, job.Status)

	// Second settlement attempt is refused.
	_, _, err = s.CompletePayment(ctx, asPrincipal(client), trx.ID, "txabc999")
	require.True(t, apperr.IsInvalidState(err))

	var reloaded models.Transaction
	require.NoError(t, s.db.First(&reloaded, trx.ID).Error)
	require.Equal(t, "txabc123", *reloaded.TxHash)
}

func TestApprovePayment(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)
	contract := seedContract(t, s, client, freelancer)
	trx, _, err := s.CreateEscrow(ctx, asPrincipal(client), contract.JobID, 4200)
	require.NoError(t, err)

	approved, err := s.ApprovePayment(ctx, asPrincipal(client), trx.ID, "txhash1")
	require.NoError(t, err)
	require.Equal(t, "txhash1", *approved.TxHash)
	// Approve records the reference without settling.
	require.Equal(t, models.TransactionStatusEscrowHeld, approved.Status)

	_, err = s.ApprovePayment(ctx, asPrincipal(client), trx.ID, "  ")
	require.True(t, apperr.IsValidation(err))

	// Once settled, the recorded txid is frozen.
	_, _, err = s.CompletePayment(ctx, asPrincipal(client), trx.ID, "txfinal")
	require.NoError(t, err)
	_, err = s.ApprovePayment(ctx, asPrincipal(client), trx.ID, "txlater")
	require.True(t, apperr.IsInvalidState(err))

	var reloaded models.Transaction
	require.NoError(t, s.db.First(&reloaded, trx.ID).Error)
	require.Equal(t, "txfinal", *reloaded.TxHash)
}

func TestWalletPayment(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	sender := seedUser(t, s, "ada", models.RoleClient)
	recipient := seedUser(t, s, "bashir", models.RoleFreelancer)

	trx, breakdown, err := s.CreateWalletPayment(ctx, asPrincipal(sender), recipient.ID, 200, "")
	require.NoError(t, err)
	require.Equal(t, models.TransactionChannelWallet, trx.Channel)
	require.Nil(t, trx.JobID)
	require.Equal(t, 10.0, breakdown.PlatformFee)
	require.Equal(t, 190.0, breakdown.FreelancerReceives)
	require.Equal(t, 5.0, breakdown.FeePercentage)
	require.Equal(t, "Payment to bashir", trx.Memo)

	_, _, err = s.CreateWalletPayment(ctx, asPrincipal(sender), sender.ID, 50, "")
	require.True(t, apperr.IsValidation(err))

	_, _, err = s.CreateWalletPayment(ctx, asPrincipal(sender), 9999, 50, "")
	require.True(t, apperr.IsNotFound(err))

	// Settling a wallet payment credits the recipient's balance.
	_, _, err = s.CompletePayment(ctx, asPrincipal(sender), trx.ID, "txwallet1")
	require.NoError(t, err)
	var reloaded models.User
	require.NoError(t, s.db.First(&reloaded, recipient.ID).Error)
	require.Equal(t, 190.0, reloaded.Balance)
}

func TestPaymentVisibility(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)
	outsider := seedUser(t, s, "chi", models.RoleClient)
	contract := seedContract(t, s, client, freelancer)
	trx, _, err := s.CreateEscrow(ctx, asPrincipal(client), contract.JobID, 4200)
	require.NoError(t, err)

	_, err = s.GetPayment(ctx, asPrincipal(freelancer), trx.ID)
	require.NoError(t, err)

	_, err = s.GetPayment(ctx, asPrincipal(outsider), trx.ID)
	require.True(t, apperr.IsForbidden(err))

	list, total, err := s.ListPayments(ctx, asPrincipal(client), 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, list, 1)

	list, total, err = s.ListPayments(ctx, asPrincipal(outsider), 1, 10)
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, list)
}
