package usecase

import (
	"learning-platform-api/internal/domain"
	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/domain/ports/repository"
)

// Action names a handler-level operation on a resource.
type Action string

const (
	ActionCreate   Action = "create"
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionUpdate   Action = "update"
	ActionDestroy  Action = "destroy"
)

// predicate decides whether the actor may perform an action on a resource
// owned by ownerID. ownerID is empty for collection-level actions.
type predicate func(actor *model.User, ownerID string) bool

func anyAuthenticated(actor *model.User, _ string) bool {
	return !actor.IsZero()
}

// ownerOrModerator is the mutation rule: the resource owner, any member of
// the moderators group, or an administrator.
func ownerOrModerator(actor *model.User, ownerID string) bool {
	if actor.IsZero() {
		return false
	}
	return actor.IsStaff || actor.IsModerator() || actor.ID == ownerID
}

// accessPolicy is the per-action authorization table, evaluated before the
// handler body runs. Role membership comes from the request's freshly loaded
// user row, never from a cache.
var accessPolicy = map[Action]predicate{
	ActionCreate:   anyAuthenticated,
	ActionList:     anyAuthenticated,
	ActionRetrieve: anyAuthenticated,
	ActionUpdate:   ownerOrModerator,
	ActionDestroy:  ownerOrModerator,
}

// Authorize consults the policy table. Unknown actions are denied.
func Authorize(actor *model.User, action Action, ownerID string) error {
	if actor.IsZero() {
		return domain.ErrUnauthenticated
	}
	p, ok := accessPolicy[action]
	if !ok || !p(actor, ownerID) {
		return domain.ErrPermissionDenied
	}
	return nil
}

// listScope maps the actor's role onto a repository query scope: staff and
// moderators see all rows, everyone else only their own.
func listScope(actor *model.User) repository.Scope {
	if actor.IsStaff || actor.IsModerator() {
		return repository.ScopeAll
	}
	return repository.ScopeOwner(actor.ID)
}

// canViewObject mirrors queryset scoping for single-object reads: an object
// outside the actor's scope reads as absent, not forbidden.
func canViewObject(actor *model.User, ownerID string) bool {
	return actor.IsStaff || actor.IsModerator() || actor.ID == ownerID
}

// canViewPayment is stricter: moderators get no special payment access.
func canViewPayment(actor *model.User, payerID string) bool {
	return actor.IsStaff || actor.ID == payerID
}
