package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorTaxonomyHelpers(t *testing.T) {
	cases := []struct {
		err  error
		pred func(error) bool
		name string
	}{
		{UnauthenticatedError{Reason: "token kosong"}, IsUnauthenticated, "unauthenticated"},
		{TransportError{Op: "GET /crm/contracts"}, IsTransport, "transport"},
		{ValidationError{Msg: "nama wajib diisi"}, IsValidation, "validation"},
		{NotFoundError{Resource: "contract"}, IsNotFound, "not found"},
		{ConflictError{Resource: "driver"}, IsConflict, "conflict"},
		{DecodeError{Path: "/tms/drivers"}, IsDecode, "decode"},
	}
	for _, c := range cases {
		if !c.pred(c.err) {
			t.Errorf("%s: predicate did not match its own type", c.name)
		}
	}
}

func TestHelpersMatchWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("reload: %w", ValidationError{Msg: "status tidak dikenal"})
	if !IsValidation(wrapped) {
		t.Fatalf("IsValidation should see through fmt.Errorf wrapping")
	}
	if IsTransport(wrapped) {
		t.Fatalf("IsTransport matched a validation error")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(ValidationError{Msg: "total_value harus positif"}); got != "total_value harus positif" {
		t.Errorf("validation message not surfaced verbatim: %q", got)
	}
	if got := UserMessage(TransportError{Op: "GET /pm/tasks", Err: errors.New("dial tcp: refused")}); got != "gagal terhubung ke server, coba lagi" {
		t.Errorf("transport message should be generic, got %q", got)
	}
	if got := UserMessage(nil); got != "" {
		t.Errorf("nil error should give empty message, got %q", got)
	}
}
