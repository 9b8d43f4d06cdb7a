package services

import (
	"context"
	"strings"
	"time"

	"github.com/Damilola-codes/lenno-sub000/apperr"
	"github.com/Damilola-codes/lenno-sub000/models"
)

type CreateMilestoneInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// CreateMilestone adds a checkpoint to an active contract. Either party
// may propose one.
func (s *Service) CreateMilestone(ctx context.Context, p Principal, contractID uint, in CreateMilestoneInput) (*models.Milestone, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("title is required")
	}
	if in.Amount <= 0 {
		return nil, apperr.Validation("amount must be positive")
	}

	db := s.db.WithContext(ctx)

	var contract models.Contract
	if err := db.First(&contract, contractID).Error; err != nil {
		return nil, notFoundOr(err, "contract")
	}
	if err := authorize(ActionCreateMilestone, Owners{ClientID: contract.ClientID, FreelancerID: contract.FreelancerID}, p); err != nil {
		return nil, err
	}
	if contract.Status != models.ContractStatusActive {
		return nil, apperr.InvalidState("contract is not active")
	}

	milestone := models.Milestone{
		ContractID:  contract.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Amount:      in.Amount,
		DueDate:     in.DueDate,
	}
	if err := db.Create(&milestone).Error; err != nil {
		return nil, err
	}
	return &milestone, nil
}

// ListMilestones returns a contract's milestones to one of its parties.
func (s *Service) ListMilestones(ctx context.Context, p Principal, contractID uint) ([]models.Milestone, error) {
	db := s.db.WithContext(ctx)

	var contract models.Contract
	if err := db.First(&contract, contractID).Error; err != nil {
		return nil, notFoundOr(err, "contract")
	}
	if err := authorize(ActionViewContract, Owners{ClientID: contract.ClientID, FreelancerID: contract.FreelancerID}, p); err != nil {
		return nil, err
	}

	var milestones []models.Milestone
	if err := db.Where("contract_id = ?", contractID).Order("id ASC").Find(&milestones).Error; err != nil {
		return nil, err
	}
	return milestones, nil
}

// CompleteMilestone marks delivery. Only the freelancer on the contract
// may do this, and only once.
func (s *Service) CompleteMilestone(ctx context.Context, p Principal, milestoneID uint) (*models.Milestone, error) {
	db := s.db.WithContext(ctx)

	milestone, contract, err := s.loadMilestone(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if err := authorize(ActionCompleteMilestone, Owners{ClientID: contract.ClientID, FreelancerID: contract.FreelancerID}, p); err != nil {
		return nil, err
	}
	if milestone.IsCompleted {
		return nil, apperr.InvalidState("milestone has already been completed")
	}

	res := db.Model(&models.Milestone{}).
		Where("id = ? AND is_completed = ?", milestone.ID, false).
		Update("is_completed", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.InvalidState("milestone has already been completed")
	}

	milestone.IsCompleted = true
	return milestone, nil
}

// PayMilestone releases a completed milestone. Only the client may do
// this. This records the payment instruction; moving the actual funds
// stays with the escrow transaction flow.
func (s *Service) PayMilestone(ctx context.Context, p Principal, milestoneID uint) (*models.Milestone, error) {
	db := s.db.WithContext(ctx)

	milestone, contract, err := s.loadMilestone(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if err := authorize(ActionPayMilestone, Owners{ClientID: contract.ClientID, FreelancerID: contract.FreelancerID}, p); err != nil {
		return nil, err
	}
	if !milestone.IsCompleted {
		return nil, apperr.InvalidState("milestone must be completed before payment")
	}
	if milestone.IsPaid {
		return nil, apperr.InvalidState("milestone has already been paid")
	}

	res := db.Model(&models.Milestone{}).
		Where("id = ? AND is_completed = ? AND is_paid = ?", milestone.ID, true, false).
		Update("is_paid", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.InvalidState("milestone has already been paid")
	}

	milestone.IsPaid = true
	return milestone, nil
}

func (s *Service) loadMilestone(ctx context.Context, milestoneID uint) (*models.Milestone, *models.Contract, error) {
	db := s.db.WithContext(ctx)

	var milestone models.Milestone
	if err := db.First(&milestone, milestoneID).Error; err != nil {
		return nil, nil, notFoundOr(err, "milestone")
	}
	var contract models.Contract
	if err := db.First(&contract, milestone.ContractID).Error; err != nil {
		return nil, nil, notFoundOr(err, "contract")
	}
	return &milestone, &contract, nil
}
