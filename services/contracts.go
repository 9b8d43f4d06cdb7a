package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Damilola-codes/lenno-sub000/apperr"
	"github.com/Damilola-codes/lenno-sub000/models"
)

// GetContract returns a contract with its milestones to one of its
// parties.
func (s *Service) GetContract(ctx context.Context, p Principal, contractID uint) (*models.Contract, error) {
	var contract models.Contract
	err := s.db.WithContext(ctx).
		Preload("Freelancer").
		Preload("Milestones").
		First(&contract, contractID).Error
	if err != nil {
		return nil, notFoundOr(err, "contract")
	}
	if err := authorize(ActionViewContract, Owners{ClientID: contract.ClientID, FreelancerID: contract.FreelancerID}, p); err != nil {
		return nil, err
	}
	return &contract, nil
}

// ListContracts returns the contracts the principal is a party to.
func (s *Service) ListContracts(ctx context.Context, p Principal) ([]models.Contract, error) {
	var contracts []models.Contract
	err := s.db.WithContext(ctx).
		Preload("Freelancer").
		Where("client_id = ? OR freelancer_id = ?", p.UserID, p.UserID).
		Order("id DESC").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// CancelContract moves an active contract to cancelled. Only the client
// may cancel; completed contracts stay completed.
func (s *Service) CancelContract(ctx context.Context, p Principal, contractID uint) (*models.Contract, error) {
	db := s.db.WithContext(ctx)

	var contract models.Contract
	if err := db.First(&contract, contractID).Error; err != nil {
		return nil, notFoundOr(err, "contract")
	}
	if err := authorize(ActionManageContract, Owners{ClientID: contract.ClientID}, p); err != nil {
		return nil, err
	}
	if contract.Status != models.ContractStatusActive {
		return nil, apperr.InvalidState("only an active contract can be cancelled")
	}

	now := time.Now()
	res := db.Model(&models.Contract{}).
		Where("id = ? AND status = ?", contract.ID, models.ContractStatusActive).
		Updates(map[string]interface{}{
			"status":   models.ContractStatusCancelled,
			"end_date": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.InvalidState("contract is no longer active")
	}

	contract.Status = models.ContractStatusCancelled
	contract.EndDate = &now
	return &contract, nil
}

// DeleteContract removes a cancelled contract and its milestones.
// Active and completed contracts are never deletable.
func (s *Service) DeleteContract(ctx context.Context, p Principal, contractID uint) error {
	db := s.db.WithContext(ctx)

	var contract models.Contract
	if err := db.First(&contract, contractID).Error; err != nil {
		return notFoundOr(err, "contract")
	}
	if err := authorize(ActionManageContract, Owners{ClientID: contract.ClientID}, p); err != nil {
		return err
	}
	if contract.Status == models.ContractStatusActive || contract.Status == models.ContractStatusCompleted {
		return apperr.InvalidState("contract cannot be deleted while " + contract.Status)
	}

	// Milestones go with the contract so nothing is left orphaned.
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contract_id = ?", contract.ID).Delete(&models.Milestone{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Contract{}, contract.ID).Error
	})
}
