package cli

import (
	"bytes"
	"testing"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestMapLink(t *testing.T) {
	assert.Equal(t, "https://www.google.com/maps?q=-37.3159,81.1496", MapLink(&models.Geo{Lat: -37.3159, Lng: 81.1496}))
	assert.Equal(t, "https://www.google.com/maps?q=0,0", MapLink(&models.Geo{}))
	assert.Empty(t, MapLink(nil))
}

func TestRenderUserList(t *testing.T) {
	var out bytes.Buffer
	renderUserList(&out, nil)
	assert.Equal(t, "No users found.\n", out.String())

	out.Reset()
	renderUserList(&out, []models.User{
		{ID: "1", Name: "Leanne Graham", Username: "Bret", Email: "l@x.com", Company: &models.Company{Name: "Romaguera"}},
		{ID: "2", Name: "Ervin", Username: "Antonette", Email: "e@x.com"},
	})
	s := out.String()
	assert.Contains(t, s, "2 users found")
	assert.Contains(t, s, "@Bret")
	assert.Contains(t, s, "Romaguera")
	assert.Contains(t, s, "@Antonette")
}

func TestRenderUserDetail_Full(t *testing.T) {
	u := models.User{
		ID:       "1",
		Name:     "Leanne Graham",
		Username: "Bret",
		Email:    "l@x.com",
		Phone:    "1-770-736-8031",
		Website:  "hildegard.org",
		Address: &models.Address{
			Street: "Kulas Light", Suite: "Apt. 556", City: "Gwenborough", Zipcode: "92998-3874",
			Geo: &models.Geo{Lat: -37.3159, Lng: 81.1496},
		},
		Company: &models.Company{Name: "Romaguera-Crona", CatchPhrase: "Multi-layered", BS: "harness"},
	}

	var out bytes.Buffer
	renderUserDetail(&out, u)
	s := out.String()

	for _, want := range []string{
		"Basic Information", "@Bret", "https://hildegard.org",
		"Kulas Light, Apt. 556", "Gwenborough", "-37.3159, 81.1496",
		"https://www.google.com/maps?q=-37.3159,81.1496",
		"Romaguera-Crona", `"Multi-layered"`, "harness",
	} {
		assert.Contains(t, s, want)
	}
}

func TestRenderUserDetail_OptionalSectionsOmitted(t *testing.T) {
	var out bytes.Buffer
	renderUserDetail(&out, models.User{ID: "2", Name: "Ervin", Username: "Antonette", Email: "e@x.com"})
	s := out.String()

	assert.NotContains(t, s, "Address")
	assert.NotContains(t, s, "Company")
	assert.NotContains(t, s, "Phone")
	assert.NotContains(t, s, "maps")
}

func TestRenderHealth(t *testing.T) {
	var out bytes.Buffer
	renderHealth(&out, models.HealthStatus{Status: "ok", Service: "userdir", Version: "0.1.0"})
	assert.Equal(t, "status: ok, service: userdir, version: 0.1.0\n", out.String())
}
