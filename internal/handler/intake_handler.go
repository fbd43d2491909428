package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"floral-studio/internal/domain"
	"floral-studio/internal/response"
	"floral-studio/internal/service"
)

type IntakeHandler struct {
	intakeService service.IntakeService
}

func NewIntakeHandler(intakeService service.IntakeService) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService}
}

// SubmitForm handles POST /intake-forms
func (h *IntakeHandler) SubmitForm(c *gin.Context) {
	var form domain.IntakeForm
	if !bindJSON(c, &form) {
		return
	}

	saved, err := h.intakeService.Submit(c.Request.Context(), &form)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, saved)
}

// ListForms handles GET /intake-forms
func (h *IntakeHandler) ListForms(c *gin.Context) {
	forms, err := h.intakeService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, forms)
}

// UpdateForm handles PUT /intake-forms/:id; the path id wins over the body
func (h *IntakeHandler) UpdateForm(c *gin.Context) {
	formID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var form domain.IntakeForm
	if !bindJSON(c, &form) {
		return
	}
	form.ID = formID

	updated, err := h.intakeService.Update(c.Request.Context(), &form)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, updated)
}

// DeleteForm handles DELETE /intake-forms/:id
func (h *IntakeHandler) DeleteForm(c *gin.Context) {
	formID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.intakeService.Delete(c.Request.Context(), formID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
