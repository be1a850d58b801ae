package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReport_Valid(t *testing.T) {
	err := ValidateReport(`{"skillGap": "Learn GenAI APIs", "niche": "Micro-SaaS", "actionPlan": "Ship in 30 days"}`)
	assert.NoError(t, err)
}

func TestValidateReport_MissingField(t *testing.T) {
	err := ValidateReport(`{"skillGap": "Learn GenAI APIs", "niche": "Micro-SaaS"}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
	assert.Contains(t, validationErr.Errors[0].Message, "actionPlan")
}

func TestValidateReport_WrongType(t *testing.T) {
	err := ValidateReport(`{"skillGap": 3, "niche": "x", "actionPlan": "y"}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, "skillGap", validationErr.Errors[0].Field)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateReport_NotJSON(t *testing.T) {
	err := ValidateReport("Skill Gap: none")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.NotNil(t, loadErr.Unwrap())
}

func TestValidateJSONString_InvalidSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}

func TestReportSchema_ListsEveryField(t *testing.T) {
	schema := ReportSchema()
	for _, field := range ReportFields {
		assert.Contains(t, schema, `"`+field+`"`)
	}
}
