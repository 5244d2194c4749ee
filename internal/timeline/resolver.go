package timeline

import (
	"strings"

	"github.com/joshua-takyi/staydesk/internal/models"
)

// SystemActor names events whose actor is missing or unknown.
const SystemActor = "System"

// ActorResolver maps an opaque actor id to a display name.
type ActorResolver interface {
	ActorName(id string) (string, bool)
}

// ActorNames is a pre-fetched id -> name table.
type ActorNames map[string]string

func (m ActorNames) ActorName(id string) (string, bool) {
	name, ok := m[id]
	name = strings.TrimSpace(name)
	return name, ok && name != ""
}

// NewActorNames indexes staff profiles by id.
func NewActorNames(staff []models.StaffProfile) ActorNames {
	names := make(ActorNames, len(staff))
	for _, s := range staff {
		if s.ID == "" {
			continue
		}
		names[s.ID.String()] = s.FullName
	}
	return names
}

// ActorFunc adapts a plain function to ActorResolver.
type ActorFunc func(id string) (string, bool)

func (f ActorFunc) ActorName(id string) (string, bool) {
	return f(id)
}

func resolveActor(r ActorResolver, id models.RowID) string {
	if r == nil || id == "" {
		return SystemActor
	}
	if name, ok := r.ActorName(id.String()); ok && strings.TrimSpace(name) != "" {
		return name
	}
	return SystemActor
}
