package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bigtrip/internal/adapter"
	"bigtrip/internal/domain"
	"bigtrip/internal/http/middleware"
	"bigtrip/internal/remote"
	"bigtrip/internal/repositories"
	"bigtrip/internal/utils"
)

// PointHandler serves the point store routes.
type PointHandler struct {
	Points repositories.PointRepository
}

// GET /big-trip/points
func (h PointHandler) List(c *gin.Context) {
	records, err := h.Points.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// POST /big-trip/points
func (h PointHandler) Create(c *gin.Context) {
	var record remote.PointRecord
	if !BindJSONOrError(c, &record) {
		return
	}
	record.ID = uuid.NewString()
	if err := validateRecord(record); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := h.Points.Create(c.Request.Context(), record); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "points", "create", "id="+record.ID)
	c.JSON(http.StatusCreated, record)
}

// PUT /big-trip/points/:id
func (h PointHandler) Update(c *gin.Context) {
	var record remote.PointRecord
	if !BindJSONOrError(c, &record) {
		return
	}
	record.ID = c.Param("id")
	if err := validateRecord(record); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := h.Points.Update(c.Request.Context(), record); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "points", "update", "id="+record.ID)
	c.JSON(http.StatusOK, record)
}

// DELETE /big-trip/points/:id
func (h PointHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Points.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "points", "delete", "id="+id)
	c.Status(http.StatusNoContent)
}

// validateRecord runs the same record checks the client adapter applies, so
// the store never accepts what the engine could not read back.
func validateRecord(record remote.PointRecord) error {
	if strings.TrimSpace(record.ID) == "" {
		return domain.ValidationError{Field: "id", Msg: "id is required"}
	}
	point, err := adapter.ToClient(record)
	if err != nil {
		return err
	}
	return point.Validate()
}
