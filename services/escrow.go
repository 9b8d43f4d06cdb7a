package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Damilola-codes/lenno-sub000/apperr"
	"github.com/Damilola-codes/lenno-sub000/config"
	"github.com/Damilola-codes/lenno-sub000/models"
	"github.com/Damilola-codes/lenno-sub000/utils"
)

// FeeBreakdown is returned alongside a newly held transaction so the
// client can show where the money goes.
type FeeBreakdown struct {
	Total              float64 `json:"total"`
	PlatformFee        float64 `json:"platform_fee"`
	FreelancerReceives float64 `json:"freelancer_receives"`
	FeePercentage      float64 `json:"fee_percentage"`
}

// CreateEscrow opens an escrow hold against a job. The job must carry an
// accepted proposal; the freelancer on that proposal receives the net
// amount when the hold completes. Fee figures are fixed here and never
// recomputed.
func (s *Service) CreateEscrow(ctx context.Context, p Principal, jobID uint, amount float64) (*models.Transaction, *FeeBreakdown, error) {
	if amount <= 0 {
		return nil, nil, apperr.Validation("amount must be positive")
	}

	db := s.db.WithContext(ctx)

	var job models.Job
	if err := db.First(&job, jobID).Error; err != nil {
		return nil, nil, notFoundOr(err, "job")
	}
	if err := authorize(ActionCreateEscrow, Owners{ClientID: job.ClientID}, p); err != nil {
		return nil, nil, err
	}

	var accepted models.Proposal
	err := db.Where("job_id = ? AND status = ?", jobID, models.ProposalStatusAccepted).
		First(&accepted).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, apperr.InvalidState("job has no accepted proposal")
		}
		return nil, nil, err
	}

	rate := config.FeeRate(config.ChannelEscrow)
	fee := utils.RoundFloat(amount*rate, 2)
	net := utils.RoundFloat(amount-fee, 2)
	paymentID := utils.GeneratePaymentID()
	now := time.Now()

	// Guarded insert: the hold only lands when no other hold is active
	// on the job. One statement, so concurrent funding attempts cannot
	// both pass a separate existence check.
	res := db.Exec(`INSERT INTO transactions
			(job_id, client_id, freelancer_id, amount, platform_fee, net_amount, payment_id, memo, channel, status, created_at, updated_at)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		FROM (SELECT 1) AS seed
		WHERE NOT EXISTS (
			SELECT 1 FROM transactions WHERE job_id = ? AND status = ?
		)`,
		job.ID, job.ClientID, accepted.FreelancerID, amount, fee, net,
		paymentID, fmt.Sprintf("Escrow for job #%d", job.ID),
		models.TransactionChannelEscrow, models.TransactionStatusEscrowHeld,
		now, now, job.ID, models.TransactionStatusEscrowHeld)
	if res.Error != nil {
		return nil, nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil, apperr.InvalidState("job already has an active escrow hold")
	}

	var trx models.Transaction
	if err := db.Where("payment_id = ?", paymentID).First(&trx).Error; err != nil {
		return nil, nil, err
	}

	breakdown := &FeeBreakdown{
		Total:              trx.Amount,
		PlatformFee:        trx.PlatformFee,
		FreelancerReceives: trx.NetAmount,
		FeePercentage:      rate * 100,
	}
	return &trx, breakdown, nil
}

// CreateWalletPayment is the ad-hoc wallet-to-wallet path. It carries
// its own fee rate, is not tied to a job, and follows the same
// held -> completed lifecycle as job escrow.
func (s *Service) CreateWalletPayment(ctx context.Context, p Principal, recipientID uint, amount float64, memo string) (*models.Transaction, *FeeBreakdown, error) {
	if amount <= 0 {
		return nil, nil, apperr.Validation("amount must be positive")
	}
	if recipientID == p.UserID {
		return nil, nil, apperr.Validation("cannot send a payment to yourself")
	}

	db := s.db.WithContext(ctx)

	var recipient models.User
	if err := db.First(&recipient, recipientID).Error; err != nil {
		return nil, nil, notFoundOr(err, "recipient")
	}

	if strings.TrimSpace(memo) == "" {
		memo = fmt.Sprintf("Payment to %s", recipient.Username)
	}

	rate := config.FeeRate(config.ChannelWallet)
	fee := utils.RoundFloat(amount*rate, 2)
	trx := models.Transaction{
		ClientID:     p.UserID,
		FreelancerID: recipient.ID,
		Amount:       amount,
		PlatformFee:  fee,
		NetAmount:    utils.RoundFloat(amount-fee, 2),
		PaymentID:    utils.GeneratePaymentID(),
		Memo:         memo,
		Channel:      models.TransactionChannelWallet,
		Status:       models.TransactionStatusEscrowHeld,
	}
	if err := db.Create(&trx).Error; err != nil {
		return nil, nil, err
	}

	breakdown := &FeeBreakdown{
		Total:              trx.Amount,
		PlatformFee:        trx.PlatformFee,
		FreelancerReceives: trx.NetAmount,
		FeePercentage:      rate * 100,
	}
	return &trx, breakdown, nil
}

// ApprovePayment records the external rail's reference on a held
// transaction. It does not advance status; settlement is a separate
// complete step (two-phase, mirroring the Pi payment flow).
func (s *Service) ApprovePayment(ctx context.Context, p Principal, trxID uint, txHash string) (*models.Transaction, error) {
	if strings.TrimSpace(txHash) == "" {
		return nil, apperr.Validation("txid is required")
	}

	db := s.db.WithContext(ctx)

	var trx models.Transaction
	if err := db.First(&trx, trxID).Error; err != nil {
		return nil, notFoundOr(err, "payment")
	}
	if err := authorize(ActionSettlePayment, Owners{ClientID: trx.ClientID, FreelancerID: trx.FreelancerID}, p); err != nil {
		return nil, err
	}

	// Only a held transaction takes a new reference; a settled one keeps
	// the txid it settled with.
	res := db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", trx.ID, models.TransactionStatusEscrowHeld).
		Update("tx_hash", txHash)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.InvalidState("payment has already been completed")
	}
	trx.TxHash = &txHash
	return &trx, nil
}

// CompletePayment settles a held transaction: records the settlement
// reference, flips status to completed and closes the referenced job.
// The status predicate on the UPDATE makes double completion impossible
// under concurrent retries. Returns the derived reward points figure;
// it is display-only and never persisted.
func (s *Service) CompletePayment(ctx context.Context, p Principal, trxID uint, txHash string) (*models.Transaction, float64, error) {
	if strings.TrimSpace(txHash) == "" {
		return nil, 0, apperr.Validation("txid is required")
	}

	db := s.db.WithContext(ctx)

	var trx models.Transaction
	if err := db.First(&trx, trxID).Error; err != nil {
		return nil, 0, notFoundOr(err, "payment")
	}
	if err := authorize(ActionSettlePayment, Owners{ClientID: trx.ClientID, FreelancerID: trx.FreelancerID}, p); err != nil {
		return nil, 0, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", trx.ID, models.TransactionStatusEscrowHeld).
			Updates(map[string]interface{}{
				"status":  models.TransactionStatusCompleted,
				"tx_hash": txHash,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.InvalidState("payment has already been completed")
		}

		if trx.JobID != nil {
			if err := tx.Model(&models.Job{}).
				Where("id = ? AND status <> ?", *trx.JobID, models.JobStatusCompleted).
				Update("status", models.JobStatusCompleted).Error; err != nil {
				return err
			}
		}

		// Wallet payments settle into the recipient's platform balance.
		if trx.Channel == models.TransactionChannelWallet {
			var recipient models.User
			if err := tx.First(&recipient, trx.FreelancerID).Error; err != nil {
				return err
			}
			newBalance := utils.RoundFloat(recipient.Balance+trx.NetAmount, 2)
			if err := tx.Model(&recipient).Update("balance", newBalance).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	trx.Status = models.TransactionStatusCompleted
	trx.TxHash = &txHash

	points := utils.RoundFloat(trx.Amount*config.RewardPointsMultiplier(), 2)
	return &trx, points, nil
}

// GetPayment returns a transaction to one of its parties.
func (s *Service) GetPayment(ctx context.Context, p Principal, trxID uint) (*models.Transaction, error) {
	var trx models.Transaction
	if err := s.db.WithContext(ctx).First(&trx, trxID).Error; err != nil {
		return nil, notFoundOr(err, "payment")
	}
	if err := authorize(ActionSettlePayment, Owners{ClientID: trx.ClientID, FreelancerID: trx.FreelancerID}, p); err != nil {
		return nil, err
	}
	return &trx, nil
}

// ListPayments returns the transactions the principal is a party to,
// newest first, paginated.
func (s *Service) ListPayments(ctx context.Context, p Principal, page, limit int) ([]models.Transaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	db := s.db.WithContext(ctx)
	base := db.Model(&models.Transaction{}).
		Where("client_id = ? OR freelancer_id = ?", p.UserID, p.UserID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trxs []models.Transaction
	err := db.Where("client_id = ? OR freelancer_id = ?", p.UserID, p.UserID).
		Order("id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&trxs).Error
	if err != nil {
		return nil, 0, err
	}
	return trxs, total, nil
}
