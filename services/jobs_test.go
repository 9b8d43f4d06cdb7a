package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Damilola-codes/lenno-sub000/apperr"
	"github.com/Damilola-codes/lenno-sub000/models"
)

func TestCreateJob(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)

	job, err := s.CreateJob(ctx, asPrincipal(client), CreateJobInput{
		Title:  "  Translate docs  ",
		Budget: 150,
	})
	require.NoError(t, err)
	require.Equal(t, "Translate docs", job.Title)
	require.Equal(t, models.JobStatusOpen, job.Status)

	_, err = s.CreateJob(ctx, asPrincipal(freelancer), CreateJobInput{Title: "x", Budget: 10})
	require.True(t, apperr.IsForbidden(err))

	_, err = s.CreateJob(ctx, asPrincipal(client), CreateJobInput{Title: "   ", Budget: 10})
	require.True(t, apperr.IsValidation(err))

	_, err = s.CreateJob(ctx, asPrincipal(client), CreateJobInput{Title: "x", Budget: 0})
	require.True(t, apperr.IsValidation(err))
}

func TestListJobsOnlyOpen(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	client := seedUser(t, s, "ada", models.RoleClient)
	freelancer := seedUser(t, s, "bashir", models.RoleFreelancer)

	open := seedJob(t, s, client, 100)
	taken := seedJob(t, s, client, 200)
	proposal := seedProposal(t, s, freelancer, taken.ID, 250)
	_, err := s.AcceptProposal(ctx, asPrincipal(client), proposal.ID)
	require.NoError(t, err)

	jobs, total, err := s.ListJobs(ctx, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, jobs, 1)
	require.Equal(t, open.ID, jobs[0].ID)

	got, err := s.GetJob(ctx, taken.ID)
	require.NoError(t, err)
	require.Equal(t, models.JobStatusInProgress, got.Status)
	require.NotNil(t, got.Client)

	_, err = s.GetJob(ctx, 9999)
	require.True(t, apperr.IsNotFound(err))
}
