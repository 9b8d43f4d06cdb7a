package controllers

import (
	"context"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/Damilola-codes/lenno-sub000/middleware"
	"github.com/Damilola-codes/lenno-sub000/models"
	"github.com/Damilola-codes/lenno-sub000/services"
	"github.com/Damilola-codes/lenno-sub000/utils"
)

type createPaymentRequest struct {
	JobID       uint    `json:"job_id"`
	RecipientID uint    `json:"recipient_id"`
	Amount      float64 `json:"amount" validate:"positive"`
	Memo        string  `json:"memo" validate:"maxlen=191"`
}

type settlePaymentRequest struct {
	TxID string `json:"txid" validate:"required,maxlen=191"`
}

// POST /payments
// Job escrow when job_id is set; ad-hoc wallet payment when
// recipient_id is set. The two channels carry independent fee rates.
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req createPaymentRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if (req.JobID == 0) == (req.RecipientID == 0) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Exactly one of job_id or recipient_id is required"})
		return
	}

	var (
		trx       *models.Transaction
		breakdown *services.FeeBreakdown
		err       error
	)
	if req.JobID != 0 {
		trx, breakdown, err = h.Svc.CreateEscrow(r.Context(), p, req.JobID, req.Amount)
	} else {
		trx, breakdown, err = h.Svc.CreateWalletPayment(r.Context(), p, req.RecipientID, req.Amount, req.Memo)
	}
	if err != nil {
		writeError(w, "payments", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Payment created",
		Data: map[string]interface{}{
			"transaction": trx,
			"breakdown":   breakdown,
		},
	})
}

// PUT /payments/{id}/approve
func (h *Handler) ApprovePayment(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r)
	if !ok {
		unauthorized(w)
		return
	}
	trxID, ok := pathID(r)
	if !ok {
		badID(w)
		return
	}

	var req settlePaymentRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	trx, err := h.Svc.ApprovePayment(r.Context(), p, trxID, req.TxID)
	if err != nil {
		writeError(w, "payments", err)
		return
	}

	// Acknowledge on the Pi rail. Best-effort: our record is the source
	// of truth and the rail reconciles on its side.
	go func(paymentID string) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := utils.PiApprovePayment(ctx, paymentID); err != nil {
			log.Printf("[payments] pi approve %s: %v", paymentID, err)
		}
	}(trx.PaymentID)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Payment approved", Data: trx})
}

// PUT /payments/{id}/complete
func (h *Handler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r)
	if !ok {
		unauthorized(w)
		return
	}
	trxID, ok := pathID(r)
	if !ok {
		badID(w)
		return
	}

	var req settlePaymentRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	trx, points, err := h.Svc.CompletePayment(r.Context(), p, trxID, req.TxID)
	if err != nil {
		writeError(w, "payments", err)
		return
	}

	go func(paymentID, txid string) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		// Reconcile before acking: the rail may have marked the payment
		// completed already (retries, webhook races).
		if st, err := utils.PiGetPayment(ctx, paymentID); err == nil && st.Developer.Completed {
			return
		}
		if err := utils.PiCompletePayment(ctx, paymentID, txid); err != nil {
			log.Printf("[payments] pi complete %s: %v", paymentID, err)
		}
	}(trx.PaymentID, req.TxID)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Payment completed",
		Data: map[string]interface{}{
			"transaction":   trx,
			"reward_points": points,
		},
	})
}

// GET /payments/{id}
func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r)
	if !ok {
		unauthorized(w)
		return
	}
	trxID, ok := pathID(r)
	if !ok {
		badID(w)
		return
	}

	trx, err := h.Svc.GetPayment(r.Context(), p, trxID)
	if err != nil {
		writeError(w, "payments", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: trx})
}

// GET /payments
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r)
	if !ok {
		unauthorized(w)
		return
	}
	page, limit := parsePagination(r)

	trxs, total, err := h.Svc.ListPayments(r.Context(), p, page, limit)
	if err != nil {
		writeError(w, "payments", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data": trxs,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  total,
				"total_pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		},
	})
}
