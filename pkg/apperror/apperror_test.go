package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindClassification(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", NotFound("notebook %q", "research"), IsNotFound},
		{"validation", Validation("unsupported file extension: %s", ".docx"), IsValidation},
		{"io", IO(errors.New("disk full"), "write chunk"), IsIO},
		{"provider", Provider(errors.New("status 500"), "generation failed"), IsProvider},
		{"config", Config(nil, "missing GROQ_API_KEY"), IsConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
		})
	}
}

func TestKindsAreDistinct(t *testing.T) {
	err := NotFound("no such notebook")
	assert.False(t, IsValidation(err))
	assert.False(t, IsIO(err))
	assert.False(t, IsProvider(err))
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Provider(cause, "generation failed")

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "generation failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWrappingThroughFmt(t *testing.T) {
	err := fmt.Errorf("processing notes.txt: %w", Validation("unsupported file extension"))
	assert.True(t, IsValidation(err))
}
