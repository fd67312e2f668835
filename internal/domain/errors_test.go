package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsReadFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "read error",
			err:  ErrRead,
			want: true,
		},
		{
			name: "wrapped connection error",
			err:  fmt.Errorf("list partners: %w", ErrConnection),
			want: true,
		},
		{
			name: "joined read error",
			err:  errors.Join(ErrRead, errors.New("driver: bad connection")),
			want: true,
		},
		{
			name: "persistence error",
			err:  ErrPersistence,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsReadFailure(tt.err)
			if got != tt.want {
				t.Errorf("IsReadFailure() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "partner", err: ErrPartnerNotFound, want: true},
		{name: "partner type wrapped", err: fmt.Errorf("%w: %w", ErrPersistence, ErrPartnerTypeNotFound), want: true},
		{name: "manager", err: ErrManagerNotFound, want: true},
		{name: "invalid credentials", err: ErrInvalidCredentials, want: false},
		{name: "nil error", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}
