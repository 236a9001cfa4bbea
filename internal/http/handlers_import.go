package http

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
	"gorm.io/gorm"

	"cashbook/internal/models"
	"cashbook/internal/services"
)

// POST /v1/import/records
// Accepts a JSON array of record objects, validates the whole payload
// against the import schema before any row is created, then persists every
// row through the record lifecycle in a single transaction: either the
// whole batch lands or nothing does.
func (s *Server) importRecords(c *gin.Context) {
	user := currentUser(c)

	if s.importSchema == nil {
		c.JSON(500, gin.H{"error": "import_unavailable"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"error": "failed_to_read_body"})
		return
	}

	result, err := s.importSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_json"})
		return
	}
	if !result.Valid() {
		details := []string{}
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		c.JSON(400, gin.H{"error": "schema_invalid", "details": details})
		return
	}

	var inputs []recordInput
	if err := json.Unmarshal(body, &inputs); err != nil {
		c.JSON(400, gin.H{"error": "invalid_json"})
		return
	}

	recs := make([]*models.Record, 0, len(inputs))
	for i := range inputs {
		rec, ok := s.buildRecord(c, user, &inputs[i])
		if !ok {
			return
		}
		recs = append(recs, rec)
	}

	// all rows land in one transaction: a bad row rejects the whole batch
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range recs {
			if err := s.records.CreateTx(tx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
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

	created := make([]recordResp, 0, len(recs))
	for _, rec := range recs {
		created = append(created, toRecordResp(rec))
	}
	c.JSON(201, gin.H{"imported": len(created), "records": created})
}
