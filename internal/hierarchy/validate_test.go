package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNewItem_Valid(t *testing.T) {
	assert.NoError(t, ValidateNewItem("1.2.3", "Foundation works"))
	assert.NoError(t, ValidateNewItem("A-100_b", "x"))
}

func TestValidateNewItem_MissingFields(t *testing.T) {
	err := ValidateNewItem("", "   ")
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "code")
	assert.Contains(t, verr.Fields, "name")
}

func TestValidateNewItem_CodePattern(t *testing.T) {
	err := ValidateNewItem("1.2 3", "name")
	require.Error(t, err)

	verr := err.(*ValidationError)
	assert.Contains(t, verr.Fields, "code")
	assert.NotContains(t, verr.Fields, "name")

	assert.Error(t, ValidateNewItem("1/2", "name"))
	assert.Error(t, ValidateNewItem("工程", "name"))
}

func TestValidateItemPatch_OnlyChecksProvidedFields(t *testing.T) {
	assert.NoError(t, ValidateItemPatch(nil, nil, "adjusting description"))

	bad := ""
	err := ValidateItemPatch(&bad, nil, "reason")
	require.Error(t, err)
	assert.Contains(t, err.(*ValidationError).Fields, "code")
}

func TestValidateItemPatch_RequiresChangeReason(t *testing.T) {
	name := "New name"
	err := ValidateItemPatch(nil, &name, "  ")
	require.Error(t, err)
	assert.Contains(t, err.(*ValidationError).Fields, "changeReason")
}

func TestValidateChangeReason(t *testing.T) {
	assert.NoError(t, ValidateChangeReason("scope moved to phase 2"))

	err := ValidateChangeReason("")
	require.Error(t, err)
	assert.Contains(t, err.(*ValidationError).Fields, "changeReason")
}

func TestValidationError_Message(t *testing.T) {
	verr := &ValidationError{}
	verr.add("code", "code is required")
	verr.add("name", "name is required")
	assert.Equal(t, "validation failed: code: code is required; name: name is required", verr.Error())
}
