package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cashbook/internal/models"
	"cashbook/internal/services"
)

type recordResp struct {
	ID              uint              `json:"id"`
	RecordType      models.RecordType `json:"record_type"`
	Amount          decimal.Decimal   `json:"amount"`
	Note            string            `json:"note"`
	PaymentDate     string            `json:"payment_date"`
	Category        *uint             `json:"category"`
	Account         *uint             `json:"account"`
	MethodOfPayment *uint             `json:"method_of_payment"`
	Customer        *uint             `json:"customer"`
	Voucher         string            `json:"voucher,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Owner           string            `json:"owner"`
}

func toRecordResp(rec *models.Record) recordResp {
	return recordResp{
		ID:              rec.ID,
		RecordType:      rec.RecordType,
		Amount:          rec.Amount,
		Note:            rec.Note,
		PaymentDate:     rec.PaymentDate.Format("2006-01-02"),
		Category:        rec.CategoryID,
		Account:         rec.AccountID,
		MethodOfPayment: rec.MethodOfPaymentID,
		Customer:        rec.CustomerID,
		Voucher:         rec.Voucher,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
		Owner:           rec.Owner.Username,
	}
}

type recordInput struct {
	RecordType      models.RecordType `json:"record_type"`
	Amount          decimal.Decimal   `json:"amount"`
	Note            string            `json:"note" binding:"max=100"`
	PaymentDate     string            `json:"payment_date"`
	Category        *uint             `json:"category"`
	Account         *uint             `json:"account"`
	MethodOfPayment *uint             `json:"method_of_payment"`
	Customer        *uint             `json:"customer"`
}

// GET /v1/records
func (s *Server) listRecords(c *gin.Context) {
	query := s.db.Preload("Owner").Order("payment_date")

	if t := c.Query("record_type"); t != "" {
		query = query.Where("record_type = ?", t)
	}
	if acc := c.Query("account"); acc != "" {
		query = query.Where("account_id = ?", acc)
	}
	if cat := c.Query("category"); cat != "" {
		query = query.Where("category_id = ?", cat)
	}
	if start := c.Query("start_date"); start != "" {
		query = query.Where("payment_date >= ?", start)
	}
	if end := c.Query("end_date"); end != "" {
		query = query.Where("payment_date <= ?", end)
	}

	var records []models.Record
	if err := query.Find(&records).Error; err != nil {
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	resp := make([]recordResp, 0, len(records))
	for i := range records {
		resp = append(resp, toRecordResp(&records[i]))
	}
	c.JSON(200, resp)
}

// GET /v1/records/:id
func (s *Server) getRecord(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var rec models.Record
	if err := s.db.Preload("Owner").First(&rec, id).Error; err != nil {
		c.JSON(404, gin.H{"error": "record_not_found"})
		return
	}
	c.JSON(200, toRecordResp(&rec))
}

// POST /v1/records
func (s *Server) createRecord(c *gin.Context) {
	user := currentUser(c)

	var input recordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	rec, ok := s.buildRecord(c, user, &input)
	if !ok {
		return
	}

	if err := s.records.Create(rec); err != nil {
		switch {
		case errors.Is(err, services.ErrAmountTooSmall):
			c.JSON(400, gin.H{"error": "amount_below_minimum"})
		case errors.Is(err, services.ErrAccountNotFound):
			c.JSON(400, gin.H{"error": "account_not_found"})
		default:
			c.JSON(500, gin.H{"error": "db_error"})
		}
		return
	}
	c.JSON(201, toRecordResp(rec))
}

// buildRecord turns a validated request body into a record owned by user.
func (s *Server) buildRecord(c *gin.Context, user *models.User, input *recordInput) (*models.Record, bool) {
	if input.RecordType == "" {
		input.RecordType = models.RecordExpense
	}
	if !input.RecordType.Valid() {
		c.JSON(400, gin.H{"error": "invalid_record_type"})
		return nil, false
	}

	paymentDate := time.Now()
	if input.PaymentDate != "" {
		parsed, err := time.Parse("2006-01-02", input.PaymentDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid_payment_date"})
			return nil, false
		}
		paymentDate = parsed
	}

	return &models.Record{
		OwnerID:           user.ID,
		Owner:             *user,
		RecordType:        input.RecordType,
		Amount:            input.Amount,
		Note:              input.Note,
		PaymentDate:       paymentDate,
		CategoryID:        input.Category,
		AccountID:         input.Account,
		MethodOfPaymentID: input.MethodOfPayment,
		CustomerID:        input.Customer,
	}, true
}

// applyRef applies a nullable reference field: absent keeps the stored
// value, JSON null clears it, an id sets it.
func applyRef(raw json.RawMessage, target **uint) error {
	if raw == nil {
		return nil
	}
	if string(raw) == "null" {
		*target = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(raw, &id); err != nil {
		return err
	}
	*target = &id
	return nil
}

// PUT /v1/records/:id
func (s *Server) updateRecord(c *gin.Context) {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var rec models.Record
	if err := s.db.Preload("Owner").First(&rec, id).Error; err != nil {
		c.JSON(404, gin.H{"error": "record_not_found"})
		return
	}
	if !canEdit(user, &rec.OwnerID) {
		c.JSON(403, gin.H{"error": "forbidden"})
		return
	}

	// reference fields decode raw so an explicit null (clear the reference)
	// is distinguishable from the field being absent
	var input struct {
		RecordType      *models.RecordType `json:"record_type"`
		Amount          *decimal.Decimal   `json:"amount"`
		Note            *string            `json:"note"`
		PaymentDate     *string            `json:"payment_date"`
		Category        json.RawMessage    `json:"category"`
		Account         json.RawMessage    `json:"account"`
		MethodOfPayment json.RawMessage    `json:"method_of_payment"`
		Customer        json.RawMessage    `json:"customer"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if input.RecordType != nil {
		if !input.RecordType.Valid() {
			c.JSON(400, gin.H{"error": "invalid_record_type"})
			return
		}
		rec.RecordType = *input.RecordType
	}
	if input.Amount != nil {
		rec.Amount = *input.Amount
	}
	if input.Note != nil {
		rec.Note = *input.Note
	}
	if input.PaymentDate != nil {
		parsed, err := time.Parse("2006-01-02", *input.PaymentDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid_payment_date"})
			return
		}
		rec.PaymentDate = parsed
	}
	for _, ref := range []struct {
		raw    json.RawMessage
		target **uint
	}{
		{input.Category, &rec.CategoryID},
		{input.Account, &rec.AccountID},
		{input.MethodOfPayment, &rec.MethodOfPaymentID},
		{input.Customer, &rec.CustomerID},
	} {
		if err := applyRef(ref.raw, ref.target); err != nil {
			c.JSON(400, gin.H{"error": "invalid_reference"})
			return
		}
	}

	if err := s.records.Update(&rec); err != nil {
		switch {
		case errors.Is(err, services.ErrAmountTooSmall):
			c.JSON(400, gin.H{"error": "amount_below_minimum"})
		case errors.Is(err, services.ErrAccountNotFound):
			c.JSON(500, gin.H{"error": "account_missing"})
		case errors.Is(err, services.ErrRecordNotFound):
			c.JSON(404, gin.H{"error": "record_not_found"})
		default:
			c.JSON(500, gin.H{"error": "db_error"})
		}
		return
	}
	c.JSON(200, toRecordResp(&rec))
}

// DELETE /v1/records/:id
func (s *Server) deleteRecord(c *gin.Context) {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var rec models.Record
	if err := s.db.First(&rec, id).Error; err != nil {
		c.JSON(404, gin.H{"error": "record_not_found"})
		return
	}
	if !canEdit(user, &rec.OwnerID) {
		c.JSON(403, gin.H{"error": "forbidden"})
		return
	}

	if err := s.records.Delete(&rec); err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			c.JSON(500, gin.H{"error": "account_missing"})
			return
		}
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	c.JSON(200, gin.H{"message": "record deleted"})
}

// POST /v1/records/:id/voucher
func (s *Server) uploadVoucher(c *gin.Context) {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var rec models.Record
	if err := s.db.First(&rec, id).Error; err != nil {
		c.JSON(404, gin.H{"error": "record_not_found"})
		return
	}
	if !canEdit(user, &rec.OwnerID) {
		c.JSON(403, gin.H{"error": "forbidden"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"error": "no_file_provided"})
		return
	}
	if file.Size > s.cfg.MaxUploadMB*1024*1024 {
		c.JSON(413, gin.H{"error": "file_too_large"})
		return
	}

	filename := uuid.NewString() + filepath.Ext(file.Filename)
	path := filepath.Join(s.cfg.UploadDir, filename)
	if err := c.SaveUploadedFile(file, path); err != nil {
		c.JSON(500, gin.H{"error": "failed_to_save_file"})
		return
	}

	rec.Voucher = fmt.Sprintf("/uploads/%s", filename)
	if err := s.db.Model(&rec).Update("voucher", rec.Voucher).Error; err != nil {
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	c.JSON(200, gin.H{"voucher": rec.Voucher})
}
