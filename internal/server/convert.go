package server

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/alfredjeanlab/counsel/internal/store"
)

// toStatus converts an error from a Server operation into a gRPC status
// error, mirroring the HTTP mapping in writeServiceError.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	var ie inputError
	switch {
	case errors.As(err, &ie):
		return status.Error(codes.InvalidArgument, ie.Error())
	case errors.Is(err, store.ErrNotFound):
		return status.Error(codes.NotFound, "record not found")
	}
	return status.Errorf(codes.Internal, "%v", err)
}
