package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"floral-studio/internal/dto"
	"floral-studio/internal/response"
	"floral-studio/internal/service"
)

const (
	// imagesFormField is the multipart field carrying uploaded images
	imagesFormField = "images"
	maxImageSize    = 32 << 20
)

type StudioHandler struct {
	studioService service.StudioService
}

func NewStudioHandler(studioService service.StudioService) *StudioHandler {
	return &StudioHandler{studioService: studioService}
}

// Login handles POST /auth/login
func (h *StudioHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.studioService.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// Logout handles POST /auth/logout
func (h *StudioHandler) Logout(c *gin.Context) {
	h.studioService.Logout()
	response.SendSuccess(c, http.StatusOK, dto.ApplyResponse{Applied: true})
}

// Me handles GET /auth/me
func (h *StudioHandler) Me(c *gin.Context) {
	user := h.studioService.CurrentUser()
	if user == nil {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Not signed in")
		return
	}
	response.SendSuccess(c, http.StatusOK, user)
}

// GetSnapshot handles GET /snapshot
func (h *StudioHandler) GetSnapshot(c *gin.Context) {
	response.SendSuccess(c, http.StatusOK, h.studioService.Snapshot())
}

// CreateClient handles POST /clients
func (h *StudioHandler) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.studioService.CreateClient(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if client == nil {
		sendDenied(c)
		return
	}

	response.SendSuccess(c, http.StatusCreated, client)
}

// ListClients handles GET /clients
func (h *StudioHandler) ListClients(c *gin.Context) {
	clients, err := h.studioService.ListClients(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, clients)
}

// CreateDesign handles POST /designs
func (h *StudioHandler) CreateDesign(c *gin.Context) {
	var req dto.CreateDesignRequest
	if !bindJSON(c, &req) {
		return
	}

	design, err := h.studioService.CreateDesign(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if design == nil {
		sendDenied(c)
		return
	}

	response.SendSuccess(c, http.StatusCreated, design)
}

// UpdateDesign handles PUT /designs/:id
func (h *StudioHandler) UpdateDesign(c *gin.Context) {
	designID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDesignRequest
	if !bindJSON(c, &req) {
		return
	}

	applied, err := h.studioService.UpdateDesign(c.Request.Context(), designID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, dto.ApplyResponse{Applied: applied})
}

// DeleteDesign handles DELETE /designs/:id
func (h *StudioHandler) DeleteDesign(c *gin.Context) {
	designID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	applied, err := h.studioService.DeleteDesign(c.Request.Context(), designID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, dto.ApplyResponse{Applied: applied})
}

// CreateMoodBoard handles POST /mood-boards
func (h *StudioHandler) CreateMoodBoard(c *gin.Context) {
	var req dto.CreateMoodBoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := h.studioService.CreateMoodBoard(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if board == nil {
		sendDenied(c)
		return
	}

	response.SendSuccess(c, http.StatusCreated, board)
}

// DeleteMoodBoard handles DELETE /mood-boards/:id
func (h *StudioHandler) DeleteMoodBoard(c *gin.Context) {
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	applied, err := h.studioService.DeleteMoodBoard(c.Request.Context(), boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, dto.ApplyResponse{Applied: applied})
}

// UploadImages handles POST /mood-boards/:id/images.
// Every file of the "images" field is saved in order; one failure does not stop the rest.
func (h *StudioHandler) UploadImages(c *gin.Context) {
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Expected a multipart form")
		return
	}
	files := form.File[imagesFormField]
	if len(files) == 0 {
		response.SendAppError(c, http.StatusBadRequest, response.NewValidationError("At least one image is required", imagesFormField))
		return
	}

	images := make([][]byte, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxImageSize {
			response.SendAppError(c, http.StatusBadRequest,
				response.NewValidationError(fmt.Sprintf("Image %s is larger than %d bytes", fh.Filename, maxImageSize), imagesFormField))
			return
		}
		f, err := fh.Open()
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Failed to read uploaded image")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Failed to read uploaded image")
			return
		}
		images = append(images, data)
	}

	results, err := h.studioService.SaveImages(c.Request.Context(), boardID, images)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if results == nil {
		sendDenied(c)
		return
	}

	response.SendSuccess(c, http.StatusCreated, results)
}

// GetImage handles GET /images/:id and writes the raw bytes
func (h *StudioHandler) GetImage(c *gin.Context) {
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	data, err := h.studioService.LoadImage(c.Request.Context(), imageID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/jpeg", data)
}

// DeleteImage handles DELETE /images/:id
func (h *StudioHandler) DeleteImage(c *gin.Context) {
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	applied, err := h.studioService.DeleteImage(c.Request.Context(), imageID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, dto.ApplyResponse{Applied: applied})
}
