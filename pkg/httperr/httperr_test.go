package httperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsBadRequest(t *testing.T) {
	err := NewBadRequest("nope")
	if !IsBadRequest(err) {
		t.Fatalf("expected bad request")
	}
	if IsBadRequest(errors.New("nope")) {
		t.Fatalf("expected plain error to not match")
	}
	if !IsBadRequest(fmt.Errorf("wrap: %w", err)) {
		t.Fatalf("expected wrapped bad request to match")
	}
}

func TestNewBadRequestf(t *testing.T) {
	err := NewBadRequestf("campo %s obrigatorio", "nome")
	if err.Error() != "campo nome obrigatorio" {
		t.Fatalf("got=%q", err.Error())
	}
	if !IsBadRequest(err) {
		t.Fatalf("expected bad request")
	}
}
