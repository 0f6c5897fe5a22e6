package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrValidation         = fmt.Errorf("validation error")
	ErrStorageUnavailable = fmt.Errorf("storage unavailable")
	ErrInvalidState       = fmt.Errorf("invalid state")
	ErrSubscriptionClosed = fmt.Errorf("subscription closed")
)

// Unavailable wraps a backend failure so callers can retry with backoff.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}

// MapToGRPCError converts a feed error into a gRPC status error.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case stderrors.Is(err, ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case stderrors.Is(err, ErrStorageUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case stderrors.Is(err, ErrInvalidState):
		return status.Error(codes.FailedPrecondition, err.Error())
	case stderrors.Is(err, ErrSubscriptionClosed):
		return status.Error(codes.Aborted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// FromGRPCError is the inverse of MapToGRPCError on the client side.
func FromGRPCError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.OK:
		return nil
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrValidation, st.Message())
	case codes.Unavailable:
		return fmt.Errorf("%w: %s", ErrStorageUnavailable, st.Message())
	case codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", ErrInvalidState, st.Message())
	case codes.Aborted:
		return fmt.Errorf("%w: %s", ErrSubscriptionClosed, st.Message())
	default:
		return err
	}
}

// HTTPStatus returns the response code a feed error maps to.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case stderrors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case stderrors.Is(err, ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case stderrors.Is(err, ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
