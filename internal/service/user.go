package service

import (
	"context"

	v1 "github.com/emrgen/prd/apis/v1"
	"github.com/emrgen/prd/internal/identity"
	"github.com/emrgen/prd/internal/model"
	"github.com/sirupsen/logrus"
)

// SyncUser creates or refreshes the local user of the authenticated caller.
// Creating a PRD requires this to have happened first.
func (s *PRDService) SyncUser(ctx context.Context, request *v1.SyncUserRequest) (*v1.SyncUserResponse, error) {
	caller := identity.FromContext(ctx)
	if caller == nil {
		return nil, toStatus(ErrUnauthorized)
	}

	user := &model.User{ClerkUserID: caller.Subject, Email: request.Email, Name: request.Name}
	if err := s.store.UpsertUser(ctx, user); err != nil {
		return nil, toStatus(err)
	}

	logrus.Infof("synced user %s", user.ID)

	return &v1.SyncUserResponse{User: toUser(user)}, nil
}
