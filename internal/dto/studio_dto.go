package dto

import (
	"github.com/google/uuid"

	"floral-studio/internal/domain"
)

// LoginRequest asks to act as (username, email, role); Secret is checked by the configured authenticator
type LoginRequest struct {
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     domain.UserRole `json:"role"`
	Secret   string          `json:"secret"`
}

// CreateClientRequest represents the request to create a new client
type CreateClientRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// CreateDesignRequest represents the request to create a new design.
// An empty status means draft.
type CreateDesignRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	ClientID    *uuid.UUID          `json:"clientId,omitempty"`
	Status      domain.DesignStatus `json:"status"`
}

// UpdateDesignRequest replaces the editable fields of a design
type UpdateDesignRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      domain.DesignStatus `json:"status"`
}

// CreateMoodBoardRequest represents the request to create a new mood board
type CreateMoodBoardRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ClientID    *uuid.UUID `json:"clientId,omitempty"`
	DesignID    *uuid.UUID `json:"designId,omitempty"`
}

// ImageResult is the outcome of saving one image of a batch
type ImageResult struct {
	Image *domain.Image `json:"image,omitempty"`
	Error string        `json:"error,omitempty"`
}

// ApplyResponse reports whether a guarded mutation was applied
type ApplyResponse struct {
	Applied bool `json:"applied"`
}
