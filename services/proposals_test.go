package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Damilola-codes/lenno-sub000/apperr"
	"github.com/Damilola-codes/lenno-sub000/models"
)

func TestSubmitProposal(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)
	job := seedJob(t, s, client, 4000)

	p, err := s.SubmitProposal(ctx, asPrincipal(freelancer), job.ID, SubmitProposalInput{
		CoverLetter:  "Portfolio attached",
		ProposedRate: 4200,
		Duration:     "2 weeks",
	})
	require.NoError(t, err)
	require.Equal(t, models.ProposalStatusPending, p.Status)
	require.Equal(t, freelancer.ID, p.FreelancerID)

	// Second proposal on the same job from the same freelancer.
	_, err = s.SubmitProposal(ctx, asPrincipal(freelancer), job.ID, SubmitProposalInput{ProposedRate: 3000})
	require.True(t, apperr.IsInvalidState(err))
}

func TestSubmitProposalRejections(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)
	job := seedJob(t, s, client, 4000)

	t.Run("client role cannot submit", func(t *testing.T) {
		_, err := s.SubmitProposal(ctx, asPrincipal(client), job.ID, SubmitProposalInput{ProposedRate: 100})
		require.True(t, apperr.IsForbidden(err))
	})

	t.Run("non-positive rate", func(t *testing.T) {
		_, err := s.SubmitProposal(ctx, asPrincipal(freelancer), job.ID, SubmitProposalInput{ProposedRate: 0})
		require.True(t, apperr.IsValidation(err))
	})

	t.Run("missing job", func(t *testing.T) {
		_, err := s.SubmitProposal(ctx, asPrincipal(freelancer), 9999, SubmitProposalInput{ProposedRate: 100})
		require.True(t, apperr.IsNotFound(err))
	})

	t.Run("own job", func(t *testing.T) {
		selfEmployed := seedUser(t, s, "chi", models.RoleFreelancer)
		ownJob := models.Job{ClientID: selfEmployed.ID, Title: "Side gig", Budget: 50, Status: models.JobStatusOpen}
		require.NoError(t, s.db.Create(&ownJob).Error)
		_, err := s.SubmitProposal(ctx, asPrincipal(selfEmployed), ownJob.ID, SubmitProposalInput{ProposedRate: 100})
		require.True(t, apperr.IsInvalidState(err))
	})

	t.Run("closed job", func(t *testing.T) {
		require.NoError(t, s.db.Model(&models.Job{}).Where("id = ?", job.ID).
			Update("status", models.JobStatusCompleted).Error)
		_, err := s.SubmitProposal(ctx, asPrincipal(freelancer), job.ID, SubmitProposalInput{ProposedRate: 100})
		require.True(t, apperr.IsInvalidState(err))
	})
}

func TestAcceptProposal(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	winner := seedUser(t, s, "bashir", models.RoleFreelancer)
	loser := seedUser(t, s, "chi", models.RoleFreelancer)

	// The contract is priced off the proposal, not the job budget.
	job := seedJob(t, s, client, 4000)
	winning := seedProposal(t, s, winner, job.ID, 4200)
	losing := seedProposal(t, s, loser, job.ID, 3500)

	contract, err := s.AcceptProposal(ctx, asPrincipal(client), winning.ID)
	require.NoError(t, err)
	require.Equal(t, job.ID, contract.JobID)
	require.Equal(t, winner.ID, contract.FreelancerID)
	require.Equal(t, 4200.0, contract.Amount)
	require.Equal(t, models.ContractStatusActive, contract.Status)
	require.NotNil(t, contract.Freelancer)
	require.Equal(t, "bashir", contract.Freelancer.Username)

	var reloadedJob models.Job
	require.NoError(t, s.db.First(&reloadedJob, job.ID).Error)
	require.Equal(t, models.JobStatusInProgress, reloadedJob.Status)

	var sibling models.Proposal
	require.NoError(t, s.db.First(&sibling, losing.ID).Error)
	require.Equal(t, models.ProposalStatusRejected, sibling.Status)
}

func TestAcceptProposalSingleWinner(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	first := seedUser(t, s, "bashir", models.RoleFreelancer)
	second := seedUser(t, s, "chi", models.RoleFreelancer)
	job := seedJob(t, s, client, 4000)
	p1 := seedProposal(t, s, first, job.ID, 4200)
	p2 := seedProposal(t, s, second, job.ID, 3900)

	_, err := s.AcceptProposal(ctx, asPrincipal(client), p1.ID)
	require.NoError(t, err)

	// Accepting the runner-up must fail and leave exactly one contract.
	_, err = s.AcceptProposal(ctx, asPrincipal(client), p2.ID)
	require.True(t, apperr.IsInvalidState(err))

	// Re-accepting the winner is not idempotent either.
	_, err = s.AcceptProposal(ctx, asPrincipal(client), p1.ID)
	require.True(t, apperr.IsInvalidState(err))

	var contracts int64
	require.NoError(t, s.db.Model(&models.Contract{}).Where("job_id = ?", job.ID).Count(&contracts).Error)
	require.EqualValues(t, 1, contracts)
}

func TestAcceptProposalConcurrent(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	job := seedJob(t, s, client, 4000)

	const n = 8
	proposals := make([]*models.Proposal, n)
	for i := 0; i < n; i++ {
		f := seedUser(t, s, fmt.Sprintf("freelancer%d", i), models.RoleFreelancer)
		proposals[i] = seedProposal(t, s, f, job.ID, 4200)
	}

	// All accepts race; the status predicates plus the unique contract
	// index must let exactly one through.
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.AcceptProposal(ctx, asPrincipal(client), proposals[i].ID)
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

	var contracts int64
	require.NoError(t, s.db.Model(&models.Contract{}).Where("job_id = ?", job.ID).Count(&contracts).Error)
	require.EqualValues(t, 1, contracts)

	var accepted int64
	require.NoError(t, s.db.Model(&models.Proposal{}).
		Where("job_id = ? AND status = ?", job.ID, models.ProposalStatusAccepted).
		Count(&accepted).Error)
	require.EqualValues(t, 1, accepted)
}

func TestAcceptProposalAuthorization(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)
	stranger := seedUser(t, s, "dele", models.RoleClient)
	job := seedJob(t, s, client, 4000)
	proposal := seedProposal(t, s, freelancer, job.ID, 4200)

	_, err := s.AcceptProposal(ctx, asPrincipal(stranger), proposal.ID)
	require.True(t, apperr.IsForbidden(err))

	_, err = s.AcceptProposal(ctx, asPrincipal(freelancer), proposal.ID)
	require.True(t, apperr.IsForbidden(err))

	var reloaded models.Proposal
	require.NoError(t, s.db.First(&reloaded, proposal.ID).Error)
	require.Equal(t, models.ProposalStatusPending, reloaded.Status)
}

func TestRejectProposal(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)
	job := seedJob(t, s, client, 4000)
	proposal := seedProposal(t, s, freelancer, job.ID, 4200)

	rejected, err := s.RejectProposal(ctx, asPrincipal(client), proposal.ID)
	require.NoError(t, err)
	require.Equal(t, models.ProposalStatusRejected, rejected.Status)

	// Terminal either way.
	_, err = s.RejectProposal(ctx, asPrincipal(client), proposal.ID)
	require.True(t, apperr.IsInvalidState(err))

	accepted := seedProposal(t, s, seedUser(t, s, "chi", models.RoleFreelancer), job.ID, 3900)
	_, err = s.AcceptProposal(ctx, asPrincipal(client), accepted.ID)
	require.NoError(t, err)
	_, err = s.RejectProposal(ctx, asPrincipal(client), accepted.ID)
	require.True(t, apperr.IsInvalidState(err))
}

func TestListProposals(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)
	job := seedJob(t, s, client, 4000)
	seedProposal(t, s, freelancer, job.ID, 4200)

	list, err := s.ListProposals(ctx, asPrincipal(client), job.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Freelancer)

	_, err = s.ListProposals(ctx, asPrincipal(freelancer), job.ID)
	require.True(t, apperr.IsForbidden(err))
}
