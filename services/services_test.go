package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Damilola-codes/lenno-sub000/database"
	"github.com/Damilola-codes/lenno-sub000/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return New(db)
}

func seedUser(t *testing.T, s *Service, username, role string) models.User {
	t.Helper()
	u := models.User{PiUID: "pi-" + username, Username: username, Role: role}
	require.NoError(t, s.db.Create(&u).Error)
	return u
}

func asPrincipal(u models.User) Principal {
	return Principal{UserID: u.ID, Role: u.Role}
}

func seedJob(t *testing.T, s *Service, client models.User, budget float64) *models.Job {
	t.Helper()
	job, err := s.CreateJob(context.Background(), asPrincipal(client), CreateJobInput{
		Title:       "Build a storefront",
		Description: "Static site plus checkout",
		Budget:      budget,
	})
	require.NoError(t, err)
	return job
}

func seedProposal(t *testing.T, s *Service, freelancer models.User, jobID uint, rate float64) *models.Proposal {
	t.Helper()
	p, err := s.SubmitProposal(context.Background(), asPrincipal(freelancer), jobID, SubmitProposalInput{
		CoverLetter:  "I can deliver this",
		ProposedRate: rate,
		Duration:     "2 weeks",
	})
	require.NoError(t, err)
	return p
}

// seedContract walks the full accept path: job, proposal, accept.
func seedContract(t *testing.T, s *Service, client, freelancer models.User) *models.Contract {
	t.Helper()
	job := seedJob(t, s, client, 4000)
	proposal := seedProposal(t, s, freelancer, job.ID, 4200)
	contract, err := s.AcceptProposal(context.Background(), asPrincipal(client), proposal.ID)
	require.NoError(t, err)
	return contract
}
