package service

import (
	"errors"

	"github.com/emrgen/prd/internal/generation"
	"github.com/emrgen/prd/internal/store"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrUnauthorized is returned when the request carries no authenticated caller.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUserNotFound is returned when the caller has no local user record.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidInput is returned when a required project field is missing.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrPersistence is returned when writing the prd aggregate fails.
	ErrPersistence = errors.New("failed to persist prd")
	// ErrCreationFailed is the only failure createPRD reports to its caller.
	ErrCreationFailed = errors.New("Failed to create PRD")
	// ErrPRDNotFound is returned when the prd does not exist or is not visible to the caller.
	ErrPRDNotFound = errors.New("prd not found")
	// ErrForbidden is returned when the caller may read but not change a record.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidOrder is returned when a reorder does not list every section exactly once.
	ErrInvalidOrder = errors.New("section ids must list every section of the prd exactly once")
	// ErrSectionNotFound is returned when the section does not belong to the prd.
	ErrSectionNotFound = errors.New("section not found")
	// ErrVersionNotFound is returned when the prd has no version with that number.
	ErrVersionNotFound = errors.New("version not found")
	// ErrCommentNotFound is returned when the comment does not belong to the prd.
	ErrCommentNotFound = errors.New("comment not found")
)

// toStatus converts a service error into a grpc status error.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, ErrUserNotFound):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, ErrPRDNotFound), errors.Is(err, ErrSectionNotFound),
		errors.Is(err, ErrVersionNotFound), errors.Is(err, ErrCommentNotFound),
		errors.Is(err, store.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidOrder), errors.Is(err, store.ErrInvalidOrderBy):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, store.ErrConflict):
		return status.Error(codes.Aborted, "the prd was changed concurrently, retry the request")
	case errors.Is(err, generation.ErrGenerationFailed):
		return status.Error(codes.Unavailable, "Failed to generate PRD content")
	}

	logrus.Errorf("internal error: %v", err)
	return status.Error(codes.Internal, "internal error")
}
