package employee

import (
	"errors"
	"html/template"
	"io"
	"net/http"
	"strconv"

	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	views   *template.Template
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, views: views, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(mapServiceError(err))
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	}
	logger := contextutil.GetLogger(c.Request.Context(), h.logger)
	if httpErr.Status >= http.StatusInternalServerError {
		logger.Error("employee request failed", append(fields, zap.Error(err))...)
	} else {
		logger.Warn("employee request failed", fields...)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// maxIDBits matches the SERIAL (int4) id column.
const maxIDBits = 31

// parseID treats anything that is not a positive integer the id column can
// hold as an id no row can have.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, maxIDBits)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBind(&req); err != nil {
		contextutil.GetLogger(c.Request.Context(), h.logger).
			Warn("http create employee validation failed", zap.Error(err))
		if apperror.IsRequiredViolation(err) {
			h.writeServiceError(c, employeeerrors.ErrMissingRequiredFields)
			return
		}
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Employee added successfully", response.Envelope{
		"employeeId": resp.ID,
	})
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Employees retrieved successfully", response.Envelope{
		"employees": resp,
	})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, employeeerrors.ErrEmployeeNotFound)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Employee retrieved successfully", response.Envelope{
		"employee": resp,
	})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, employeeerrors.ErrEmployeeNotFound)
		return
	}

	// An empty body is an update with every field absent.
	var req UpdateEmployeeRequest
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		contextutil.GetLogger(c.Request.Context(), h.logger).
			Warn("http update employee bind failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Employee updated successfully", nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, employeeerrors.ErrEmployeeNotFound)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Employee deleted successfully", nil)
}

// EditPage renders the edit form. Failures are plain text, not JSON.
func (h *Handler) EditPage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.String(http.StatusNotFound, "Employee not found")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			c.String(http.StatusNotFound, "Employee not found")
			return
		}
		contextutil.GetLogger(c.Request.Context(), h.logger).
			Error("render edit employee failed", zap.Uint("id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, "Database error")
		return
	}

	c.Render(http.StatusOK, render.HTML{
		Template: h.views,
		Name:     editEmployeeTemplate,
		Data:     editEmployeeData(resp),
	})
}
