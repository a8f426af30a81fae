package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionFromForm(t *testing.T) {
	t.Run("extracts present fields only", func(t *testing.T) {
		sub := SubmissionFromForm(map[string][]string{
			"name":  {"Jane Doe"},
			"email": {"jane@example.com"},
			"extra": {"ignored"},
		})

		require.NotNil(t, sub.Name)
		require.NotNil(t, sub.Email)
		assert.Equal(t, "Jane Doe", *sub.Name)
		assert.Equal(t, "jane@example.com", *sub.Email)
		assert.Nil(t, sub.Phone)
		assert.Nil(t, sub.CompanyID)
		assert.Nil(t, sub.Position)
		assert.Nil(t, sub.Location)
		assert.Nil(t, sub.VisaType)
	})

	t.Run("first value of repeated key wins", func(t *testing.T) {
		sub := SubmissionFromForm(map[string][]string{
			"visa_type": {"kaigo", "restaurant"},
		})
		require.NotNil(t, sub.VisaType)
		assert.Equal(t, "kaigo", *sub.VisaType)
	})

	t.Run("empty string is kept as present", func(t *testing.T) {
		sub := SubmissionFromForm(map[string][]string{"phone": {""}})
		require.NotNil(t, sub.Phone)
		assert.Equal(t, "", *sub.Phone)
	})
}

func TestApplicationResponse_JSONOmitsMissingFields(t *testing.T) {
	resp := ApplicationResponse{
		OK:    true,
		Data:  SubmissionFromForm(map[string][]string{"companyId": {"42"}}),
		Files: map[string][]UploadedFile{},
	}

	out, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true,"data":{"companyId":"42"},"files":{}}`, string(out))
}
