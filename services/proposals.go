package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Damilola-codes/lenno-sub000/apperr"
	"github.com/Damilola-codes/lenno-sub000/models"
)

type SubmitProposalInput struct {
	CoverLetter  string  `json:"cover_letter"`
	ProposedRate float64 `json:"proposed_rate"`
	Duration     string  `json:"duration"`
}

func (s *Service) SubmitProposal(ctx context.Context, p Principal, jobID uint, in SubmitProposalInput) (*models.Proposal, error) {
	if err := requireRole(p, models.RoleFreelancer); err != nil {
		return nil, err
	}
	if in.ProposedRate <= 0 {
		return nil, apperr.Validation("proposed_rate must be positive")
	}

	db := s.db.WithContext(ctx)

	var job models.Job
	if err := db.First(&job, jobID).Error; err != nil {
		return nil, notFoundOr(err, "job")
	}
	if job.ClientID == p.UserID {
		return nil, apperr.InvalidState("cannot submit a proposal on your own job")
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperr.InvalidState("job is no longer open")
	}

	var existing int64
	if err := db.Model(&models.Proposal{}).
		Where("job_id = ? AND freelancer_id = ?", jobID, p.UserID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, apperr.InvalidState("you have already submitted a proposal for this job")
	}

	proposal := models.Proposal{
		JobID:        jobID,
		FreelancerID: p.UserID,
		CoverLetter:  in.CoverLetter,
		ProposedRate: in.ProposedRate,
		Duration:     in.Duration,
		Status:       models.ProposalStatusPending,
	}
	if err := db.Create(&proposal).Error; err != nil {
		return nil, err
	}
	return &proposal, nil
}

// AcceptProposal resolves a job: the target proposal becomes accepted,
// sibling pending proposals are rejected, the job moves to in_progress
// and an active contract is opened, all in one transaction. The status
// predicates on each UPDATE plus the unique contract-per-job index keep
// concurrent accepts down to a single winner.
func (s *Service) AcceptProposal(ctx context.Context, p Principal, proposalID uint) (*models.Contract, error) {
	db := s.db.WithContext(ctx)

	var proposal models.Proposal
	if err := db.First(&proposal, proposalID).Error; err != nil {
		return nil, notFoundOr(err, "proposal")
	}
	var job models.Job
	if err := db.First(&job, proposal.JobID).Error; err != nil {
		return nil, notFoundOr(err, "job")
	}

	if err := authorize(ActionAcceptProposal, Owners{ClientID: job.ClientID}, p); err != nil {
		return nil, err
	}

	if proposal.Status != models.ProposalStatusPending {
		return nil, apperr.InvalidState("proposal has already been " + proposal.Status)
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperr.InvalidState("job is no longer open")
	}

	contract := models.Contract{
		JobID:        job.ID,
		ClientID:     job.ClientID,
		FreelancerID: proposal.FreelancerID,
		Title:        job.Title,
		Description:  job.Description,
		Amount:       proposal.ProposedRate,
		StartDate:    time.Now(),
		Status:       models.ContractStatusActive,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Conditional update is the authoritative pending check; a
		// concurrent accept that got here first leaves zero rows.
		res := tx.Model(&models.Proposal{}).
			Where("id = ? AND status = ?", proposal.ID, models.ProposalStatusPending).
			Update("status", models.ProposalStatusAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.InvalidState("proposal has already been resolved")
		}

		if err := tx.Model(&models.Proposal{}).
			Where("job_id = ? AND id <> ? AND status = ?", job.ID, proposal.ID, models.ProposalStatusPending).
			Update("status", models.ProposalStatusRejected).Error; err != nil {
			return err
		}

		res = tx.Model(&models.Job{}).
			Where("id = ? AND status = ?", job.ID, models.JobStatusOpen).
			Update("status", models.JobStatusInProgress)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.InvalidState("job is no longer open")
		}

		// Unique index on contracts.job_id backstops the race: a second
		// contract for the same job fails here and rolls everything back.
		return tx.Create(&contract).Error
	})
	if err != nil {
		return nil, err
	}

	if err := db.Preload("Freelancer").First(&contract, contract.ID).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

// RejectProposal declines a pending proposal. Accepted and rejected are
// both terminal, so re-rejecting reports an error rather than silently
// succeeding.
func (s *Service) RejectProposal(ctx context.Context, p Principal, proposalID uint) (*models.Proposal, error) {
	db := s.db.WithContext(ctx)

	var proposal models.Proposal
	if err := db.First(&proposal, proposalID).Error; err != nil {
		return nil, notFoundOr(err, "proposal")
	}
	var job models.Job
	if err := db.First(&job, proposal.JobID).Error; err != nil {
		return nil, notFoundOr(err, "job")
	}
	if err := authorize(ActionAcceptProposal, Owners{ClientID: job.ClientID}, p); err != nil {
		return nil, err
	}

	switch proposal.Status {
	case models.ProposalStatusAccepted:
		return nil, apperr.InvalidState("an accepted proposal cannot be rejected")
	case models.ProposalStatusRejected:
		return nil, apperr.InvalidState("proposal has already been rejected")
	}

	res := db.Model(&models.Proposal{}).
		Where("id = ? AND status = ?", proposal.ID, models.ProposalStatusPending).
		Update("status", models.ProposalStatusRejected)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.InvalidState("proposal has already been resolved")
	}

	proposal.Status = models.ProposalStatusRejected
	return &proposal, nil
}

// ListProposals returns the proposals on a job, newest first. Only the
// owning client sees the full list.
func (s *Service) ListProposals(ctx context.Context, p Principal, jobID uint) ([]models.Proposal, error) {
	db := s.db.WithContext(ctx)

	var job models.Job
	if err := db.First(&job, jobID).Error; err != nil {
		return nil, notFoundOr(err, "job")
	}
	if err := authorize(ActionAcceptProposal, Owners{ClientID: job.ClientID}, p); err != nil {
		return nil, err
	}

	var proposals []models.Proposal
	if err := db.Preload("Freelancer").
		Where("job_id = ?", jobID).
		Order("id DESC").
		Find(&proposals).Error; err != nil {
		return nil, err
	}
	return proposals, nil
}
