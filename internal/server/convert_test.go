package server

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/alfredjeanlab/counsel/internal/store"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{inputError("bad kind"), codes.InvalidArgument},
		{fmt.Errorf("wrapped: %w", inputError("bad")), codes.InvalidArgument},
		{store.ErrNotFound, codes.NotFound},
		{fmt.Errorf("get: %w", store.ErrNotFound), codes.NotFound},
		{errors.New("disk full"), codes.Internal},
	}
	for _, tt := range tests {
		if got := status.Code(toStatus(tt.err)); got != tt.want {
			t.Errorf("toStatus(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
	if toStatus(nil) != nil {
		t.Error("toStatus(nil) should be nil")
	}
}
