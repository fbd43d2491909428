package auth

import (
	"github.com/google/uuid"

	"floral-studio/internal/domain"
)

// ResourceKind identifies what a Resource describes
type ResourceKind string

const (
	KindDesign    ResourceKind = "design"
	KindMoodBoard ResourceKind = "moodBoard"
)

// Resource carries the ownership facts CanModify needs.
// For a mood board, DesignerID is the designer of its parent design.
type Resource struct {
	Kind       ResourceKind
	DesignerID *uuid.UUID
	ClientID   *uuid.UUID
}

// DesignResource describes a design for authorization
func DesignResource(d *domain.Design) Resource {
	return Resource{Kind: KindDesign, DesignerID: d.DesignerID, ClientID: d.ClientID}
}

// MoodBoardResource describes a mood board for authorization.
// parent may be nil when the board is not attached to a design.
func MoodBoardResource(b *domain.MoodBoard, parent *domain.Design) Resource {
	r := Resource{Kind: KindMoodBoard, ClientID: b.ClientID}
	if parent != nil {
		r.DesignerID = parent.DesignerID
	}
	return r
}

// CanModify reports whether actor may mutate resource
func CanModify(actor *domain.User, resource Resource) bool {
	if actor == nil {
		return false
	}

	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleDesigner:
		return sameID(resource.DesignerID, actor.ID)
	case domain.RoleClient:
		if resource.Kind != KindMoodBoard {
			return false
		}
		return sameID(resource.ClientID, actor.ID)
	default:
		return false
	}
}

func sameID(owner *uuid.UUID, id uuid.UUID) bool {
	return owner != nil && *owner == id
}
