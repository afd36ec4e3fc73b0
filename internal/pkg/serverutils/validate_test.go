package serverutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebookrag/pkg/apperror"
)

type sampleRequest struct {
	Name  string `validate:"required,min=3"`
	Query string `validate:"required"`
}

func TestValidateRequestPasses(t *testing.T) {
	err := ValidateRequest(sampleRequest{Name: "research", Query: "hello"})
	assert.NoError(t, err)
}

func TestValidateRequestReportsAllFields(t *testing.T) {
	err := ValidateRequest(sampleRequest{Name: "ab"})
	require.Error(t, err)

	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "Name")
	assert.Contains(t, err.Error(), "Query")
}
