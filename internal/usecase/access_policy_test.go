//go:build !integration

package usecase_test

import (
	"errors"
	"testing"

	"learning-platform-api/internal/domain"
	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/usecase"
)

func TestAuthorize(t *testing.T) {
	owner := &model.User{ID: "owner-1"}
	other := &model.User{ID: "other-1"}
	moderator := &model.User{ID: "mod-1", Groups: []string{model.GroupModerators}}
	admin := &model.User{ID: "admin-1", IsStaff: true}

	cases := []struct {
		name    string
		actor   *model.User
		action  usecase.Action
		ownerID string
		wantErr error
	}{
		{"anonymous create", nil, usecase.ActionCreate, "", domain.ErrUnauthenticated},
		{"anonymous retrieve", &model.User{}, usecase.ActionRetrieve, "", domain.ErrUnauthenticated},
		{"any user may create", other, usecase.ActionCreate, "", nil},
		{"any user may list", other, usecase.ActionList, "", nil},
		{"any user may retrieve", other, usecase.ActionRetrieve, "", nil},
		{"owner may update", owner, usecase.ActionUpdate, "owner-1", nil},
		{"owner may destroy", owner, usecase.ActionDestroy, "owner-1", nil},
		{"non-owner may not update", other, usecase.ActionUpdate, "owner-1", domain.ErrPermissionDenied},
		{"non-owner may not destroy", other, usecase.ActionDestroy, "owner-1", domain.ErrPermissionDenied},
		{"moderator may update anything", moderator, usecase.ActionUpdate, "owner-1", nil},
		{"moderator may destroy anything", moderator, usecase.ActionDestroy, "owner-1", nil},
		{"admin may update anything", admin, usecase.ActionUpdate, "owner-1", nil},
		{"admin may destroy anything", admin, usecase.ActionDestroy, "owner-1", nil},
		{"unknown action is denied", owner, usecase.Action("approve"), "owner-1", domain.ErrPermissionDenied},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := usecase.Authorize(tc.actor, tc.action, tc.ownerID)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected allow, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
