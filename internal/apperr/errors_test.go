package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DjordjeVuckovic/callbench/internal/apperr"
)

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("iterations must be positive")
	err := apperr.NewValidationWrap("benchmark \"enhanced\"", inner)

	if err.Error() != "benchmark \"enhanced\": iterations must be positive" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
	if apperr.NewValidation("plan has no benchmarks").Unwrap() != nil {
		t.Error("expected nil unwrap")
	}
}

func TestError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "shape mismatch",
			err:  apperr.NewShapeMismatch("BenchmarkResult", "number"),
			want: "shape mismatch: expected BenchmarkResult, got number",
		},
		{
			name: "field access",
			err:  apperr.NewFieldAccess("operations", apperr.ErrFieldMissing),
			want: `field access error: field "operations": field not present`,
		},
		{
			name: "type coercion",
			err:  apperr.NewTypeCoercion("operations", "uint32", "-1"),
			want: `type coercion error: field "operations": cannot convert -1 to uint32`,
		},
		{
			name: "registration",
			err:  apperr.NewRegistration("distance", errors.New("already registered")),
			want: `registration error: callback "distance": already registered`,
		},
		{
			name: "script",
			err:  apperr.NewScript("lua", errors.New("<string>:1: unexpected symbol")),
			want: "script evaluation error: lua: <string>:1: unexpected symbol",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_KindSurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewFieldAccess("max_value", apperr.ErrFieldMissing)
	wrapped := fmt.Errorf("run benchmark %q: %w", "enhanced", original)

	if !errors.Is(wrapped, apperr.ErrFieldAccess) {
		t.Fatal("errors.Is should match the field access sentinel through wrapping")
	}
	if errors.Is(wrapped, apperr.ErrShapeMismatch) {
		t.Fatal("errors.Is must not match a different kind")
	}
	if !errors.Is(wrapped, apperr.ErrFieldMissing) {
		t.Fatal("the underlying cause should stay reachable")
	}

	var ae *apperr.Error
	if !errors.As(wrapped, &ae) {
		t.Fatal("errors.As should find *apperr.Error")
	}
	if ae.Field != "max_value" {
		t.Errorf("expected field max_value, got %q", ae.Field)
	}

	kind, ok := apperr.KindOf(wrapped)
	if !ok || kind != apperr.KindFieldAccess {
		t.Errorf("expected KindFieldAccess, got %v (%v)", kind, ok)
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if _, ok := apperr.KindOf(errors.New("boom")); ok {
		t.Fatal("plain errors carry no kind")
	}
}
