package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_DecodesServiceShape(t *testing.T) {
	raw := `{
		"id": "1",
		"name": "Ada",
		"username": "ada",
		"email": "a@x.com",
		"phone": "555-0100",
		"address": {
			"id": "a1", "user_id": "1", "street": "Main St", "city": "London",
			"zipcode": "N1", "geo": {"lat": 51.5, "lng": -0.12}
		},
		"company": {"id": "c1", "user_id": "1", "name": "Engines", "catch_phrase": "compute", "bs": "analytical"},
		"created_at": "2024-01-02T03:04:05Z",
		"updated_at": "2024-01-02T03:04:05Z"
	}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(raw), &u))

	assert.Equal(t, "1", u.ID)
	assert.Equal(t, "555-0100", u.Phone)
	assert.Empty(t, u.Website)
	require.NotNil(t, u.Address)
	require.NotNil(t, u.Address.Geo)
	assert.InDelta(t, 51.5, u.Address.Geo.Lat, 1e-9)
	require.NotNil(t, u.Company)
	assert.Equal(t, "compute", u.Company.CatchPhrase)
	assert.Equal(t, "analytical", u.Company.BS)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), u.CreatedAt)
}

func TestUpdateUserRequest_OmitsUnsetFields(t *testing.T) {
	name := "Grace"
	b, err := json.Marshal(UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Grace"}`, string(b))
}

func TestCreateUserRequest_OmitsOptionalFields(t *testing.T) {
	b, err := json.Marshal(CreateUserRequest{Name: "Ada", Username: "ada", Email: "a@x.com"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada","username":"ada","email":"a@x.com"}`, string(b))
}

func TestSession_Valid(t *testing.T) {
	assert.False(t, Session{}.Valid())
	assert.True(t, SessionFromAuth(AuthResponse{Token: "T", User: AuthUser{ID: "u1"}}).Valid())
}

func TestHealthStatus_OK(t *testing.T) {
	assert.True(t, HealthStatus{Status: "ok"}.OK())
	assert.False(t, HealthStatus{Status: "degraded"}.OK())
}
