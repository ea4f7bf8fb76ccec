package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorDetailMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "string detail",
			body: `{"detail": "LOGIN_BAD_CREDENTIALS"}`,
			want: "LOGIN_BAD_CREDENTIALS",
		},
		{
			name: "validation issues",
			body: `{"detail": [{"loc": ["body", "email"], "msg": "value is not a valid email address", "type": "value_error"}, {"msg": "field required"}]}`,
			want: "value is not a valid email address; field required",
		},
		{
			name: "object detail with reason",
			body: `{"detail": {"code": "REGISTER_INVALID_PASSWORD", "reason": "Password should be at least 3 characters"}}`,
			want: "Password should be at least 3 characters",
		},
		{
			name: "no detail",
			body: `{"message": "boom"}`,
			want: "",
		},
		{
			name: "null detail",
			body: `{"detail": null}`,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var detail ErrorDetail
			require.NoError(t, json.Unmarshal([]byte(tt.body), &detail))
			assert.Equal(t, tt.want, detail.Message())
		})
	}
}

func TestNewRegisterRequestFlags(t *testing.T) {
	body, err := json.Marshal(NewRegisterRequest("ann@example.com", "secret"))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"email": "ann@example.com",
		"password": "secret",
		"is_active": true,
		"is_superuser": false,
		"is_verified": false
	}`, string(body))
}

func TestItineraryItemCreateAlwaysSendsCost(t *testing.T) {
	body, err := json.Marshal(ItineraryItemCreate{Title: "Walk", Category: CategoryActivity})
	require.NoError(t, err)

	assert.Contains(t, string(body), `"estimated_cost":0`)
}
