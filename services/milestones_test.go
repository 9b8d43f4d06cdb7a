package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Damilola-codes/lenno-sub000/apperr"
	"github.com/Damilola-codes/lenno-sub000/models"
)

func TestMilestoneLifecycle(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)
	contract := seedContract(t, s, client, freelancer)

	m, err := s.CreateMilestone(ctx, asPrincipal(client), contract.ID, CreateMilestoneInput{
		Title:  "Design handoff",
		Amount: 1000,
	})
	require.NoError(t, err)
	require.False(t, m.IsCompleted)
	require.False(t, m.IsPaid)

	completed, err := s.CompleteMilestone(ctx, asPrincipal(freelancer), m.ID)
	require.NoError(t, err)
	require.True(t, completed.IsCompleted)

	paid, err := s.PayMilestone(ctx, asPrincipal(client), m.ID)
	require.NoError(t, err)
	require.True(t, paid.IsPaid)
	require.True(t, paid.IsCompleted)
}

func TestPayMilestoneRequiresCompletion(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)
	contract := seedContract(t, s, client, freelancer)
	m, err := s.CreateMilestone(ctx, asPrincipal(freelancer), contract.ID, CreateMilestoneInput{
		Title:  "First draft",
		Amount: 500,
	})
	require.NoError(t, err)

	_, err = s.PayMilestone(ctx, asPrincipal(client), m.ID)
	require.True(t, apperr.IsInvalidState(err))
	require.EqualError(t, err, "milestone must be completed before payment")

	_, err = s.CompleteMilestone(ctx, asPrincipal(freelancer), m.ID)
	require.NoError(t, err)
	_, err = s.PayMilestone(ctx, asPrincipal(client), m.ID)
	require.NoError(t, err)

	_, err = s.PayMilestone(ctx, asPrincipal(client), m.ID)
	require.True(t, apperr.IsInvalidState(err))
	require.EqualError(t, err, "milestone has already been paid")
}

func TestMilestoneRoles(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)
	outsider := seedUser(t, s, "chi", models.RoleFreelancer)
	contract := seedContract(t, s, client, freelancer)
	m, err := s.CreateMilestone(ctx, asPrincipal(client), contract.ID, CreateMilestoneInput{
		Title:  "Integration",
		Amount: 800,
	})
	require.NoError(t, err)

	// Delivery belongs to the freelancer, release to the client.
	_, err = s.CompleteMilestone(ctx, asPrincipal(client), m.ID)
	require.True(t, apperr.IsForbidden(err))

	_, err = s.CompleteMilestone(ctx, asPrincipal(outsider), m.ID)
	require.True(t, apperr.IsForbidden(err))

	_, err = s.CompleteMilestone(ctx, asPrincipal(freelancer), m.ID)
	require.NoError(t, err)

	_, err = s.PayMilestone(ctx, asPrincipal(freelancer), m.ID)
	require.True(t, apperr.IsForbidden(err))

	_, err = s.CreateMilestone(ctx, asPrincipal(outsider), contract.ID, CreateMilestoneInput{Title: "x", Amount: 1})
	require.True(t, apperr.IsForbidden(err))
}

func TestCreateMilestoneInactiveContract(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)
	contract := seedContract(t, s, client, freelancer)

	_, err := s.CancelContract(ctx, asPrincipal(client), contract.ID)
	require.NoError(t, err)

	_, err = s.CreateMilestone(ctx, asPrincipal(client), contract.ID, CreateMilestoneInput{
		Title:  "Too late",
		Amount: 100,
	})
	require.True(t, apperr.IsInvalidState(err))
}

func TestListMilestones(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)
	outsider := seedUser(t, s, "chi", models.RoleClient)
	contract := seedContract(t, s, client, freelancer)

	for _, title := range []string{"Draft", "Review", "Ship"} {
		_, err := s.CreateMilestone(ctx, asPrincipal(client), contract.ID, CreateMilestoneInput{Title: title, Amount: 100})
		require.NoError(t, err)
	}

	list, err := s.ListMilestones(ctx, asPrincipal(freelancer), contract.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "Draft", list[0].Title)

	_, err = s.ListMilestones(ctx, asPrincipal(outsider), contract.ID)
	require.True(t, apperr.IsForbidden(err))
}
