// Package policy decides whether an authenticated caller may perform an action
// on a resource. Handlers and services never compare roles inline.
package policy

import (
	"fmt"

	"github.com/noah-isme/brightminds-api/internal/models"
	appErrors "github.com/noah-isme/brightminds-api/pkg/errors"
)

// Kind names a protected collection.
type Kind string

const (
	KindNews      Kind = "news"
	KindEvent     Kind = "event"
	KindUser      Kind = "user"
	KindSettings  Kind = "settings"
	KindDashboard Kind = "dashboard"
)

// Action names an operation on a Kind.
type Action string

const (
	ActionRead    Action = "read"
	ActionList    Action = "list"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionPublish Action = "publish"
	ActionExport  Action = "export"
)

// Resource identifies the target of an action. OwnerID is the author or
// creator for content; for users it is the target account itself.
type Resource struct {
	Kind      Kind
	OwnerID   string
	OwnerRole models.UserRole
}

// News returns a news resource owned by authorID.
func News(authorID string) Resource { return Resource{Kind: KindNews, OwnerID: authorID} }

// Event returns an event resource created by creatorID.
func Event(creatorID string) Resource { return Resource{Kind: KindEvent, OwnerID: creatorID} }

// User returns a user resource. Zero values address the collection.
func User(id string, role models.UserRole) Resource {
	return Resource{Kind: KindUser, OwnerID: id, OwnerRole: role}
}

// Collection returns a resource with no owner.
func Collection(kind Kind) Resource { return Resource{Kind: kind} }

// Decision is the outcome of Evaluate.
type Decision struct {
	Allowed bool
	err     *appErrors.Error
}

// Err returns nil when the decision allows the action, otherwise the error the
// caller should surface.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if d.err == nil {
		return appErrors.ErrForbidden
	}
	return d.err
}

var allow = Decision{Allowed: true}

func deny(err *appErrors.Error) Decision { return Decision{err: err} }

// Evaluate applies the role and ownership rules.
func Evaluate(identity models.Identity, resource Resource, action Action) Decision {
	if identity.ID == "" || !identity.Role.Valid() {
		return deny(appErrors.ErrUnauthorized)
	}

	switch resource.Kind {
	case KindNews, KindEvent:
		return content(identity, resource, action)
	case KindUser:
		return users(identity, resource, action)
	case KindSettings:
		switch action {
		case ActionRead:
			return allow
		case ActionUpdate:
			return adminOnly(identity)
		}
	case KindDashboard:
		if action == ActionRead {
			return allow
		}
	}
	return deny(appErrors.ErrForbidden)
}

func content(identity models.Identity, resource Resource, action Action) Decision {
	switch action {
	case ActionCreate:
		if identity.Role.IsStaff() {
			return allow
		}
		noun := "events"
		if resource.Kind == KindNews {
			noun = "news"
		}
		return deny(appErrors.Clone(appErrors.ErrForbidden, "Not authorized to create "+noun))
	case ActionUpdate, ActionDelete:
		if identity.Role.IsAdmin() || (resource.OwnerID != "" && identity.ID == resource.OwnerID) {
			return allow
		}
		noun := "event"
		if resource.Kind == KindNews {
			noun = "article"
		}
		return deny(appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("Not authorized to %s this %s", action, noun)))
	case ActionPublish:
		if resource.Kind == KindNews {
			return adminOnly(identity)
		}
	}
	return deny(appErrors.ErrForbidden)
}

func users(identity models.Identity, resource Resource, action Action) Decision {
	if !identity.Role.IsAdmin() {
		return deny(appErrors.ErrForbidden)
	}
	switch action {
	case ActionList, ActionCreate, ActionExport:
		return allow
	case ActionDelete:
		if resource.OwnerID == identity.ID {
			return deny(appErrors.Clone(appErrors.ErrInvalidOperation, "Cannot delete your own account"))
		}
		if resource.OwnerRole.IsAdmin() && identity.Role != models.RoleSuperAdmin {
			return deny(appErrors.Clone(appErrors.ErrForbidden, "Only a superadmin can delete an admin account"))
		}
		return allow
	}
	return deny(appErrors.ErrForbidden)
}

func adminOnly(identity models.Identity) Decision {
	if identity.Role.IsAdmin() {
		return allow
	}
	return deny(appErrors.ErrForbidden)
}
