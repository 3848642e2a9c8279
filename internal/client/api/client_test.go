package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/testutil/fakeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeClient returns a client talking to a fresh fake whose session is
// controlled by the returned holder.
func newFakeClient(t *testing.T) (*Client, *fakeapi.Server, *switchableSession) {
	t.Helper()
	srv := fakeapi.New(t)
	src := &switchableSession{}
	return NewClient(newTestTransport(t, srv.URL, src)), srv, src
}

func TestClient_LoginAndUseToken(t *testing.T) {
	c, srv, src := newFakeClient(t)
	srv.AddAccount("Ada", "a@x.com", "secret1")
	srv.SeedUsers(models.User{ID: "1", Name: "Ada", Username: "ada", Email: "a@x.com"})
	ctx := context.Background()

	resp, err := c.Login(ctx, models.LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "a@x.com", resp.User.Email)

	src.s = models.SessionFromAuth(resp)
	users, err := c.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "1", users[0].ID)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.False(t, reqs[0].HasAuth)
	assert.Equal(t, "Bearer "+resp.Token, reqs[1].Authorization)
	assert.NotEmpty(t, reqs[1].RequestID)
	assert.NotEqual(t, reqs[0].RequestID, reqs[1].RequestID)
}

func TestClient_LoginRejected(t *testing.T) {
	c, srv, _ := newFakeClient(t)
	srv.AddAccount("Ada", "a@x.com", "secret1")

	_, err := c.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrUnauthorized)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.NotNil(t, se.Response)
	assert.Equal(t, "invalid_credentials", se.Response.Error)
}

func TestClient_RegisterConflict(t *testing.T) {
	c, _, _ := newFakeClient(t)
	ctx := context.Background()

	resp, err := c.Register(ctx, models.RegisterRequest{Name: "Ada", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Ada", resp.User.Name)

	_, err = c.Register(ctx, models.RegisterRequest{Name: "Ada", Email: "a@x.com", Password: "secret1"})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusConflict, se.StatusCode)
}

func TestClient_UsersWithoutSessionUnauthorized(t *testing.T) {
	c, _, _ := newFakeClient(t)

	_, err := c.GetUsers(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_UserCRUD(t *testing.T) {
	c, srv, _ := newFakeClient(t)
	srv.SetRequireAuth(false)
	ctx := context.Background()

	created, err := c.CreateUser(ctx, models.CreateUserRequest{
		Name:     "Ada",
		Username: "ada",
		Email:    "a@x.com",
		Address:  &models.CreateAddressRequest{Street: "Main", City: "London", Zipcode: "N1", Geo: &models.Geo{Lat: 51.5, Lng: -0.12}},
		Company:  &models.CreateCompanyRequest{Name: "Engines", CatchPhrase: "compute"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.NotNil(t, created.Address)
	assert.Equal(t, created.ID, created.Address.UserID)

	got, err := c.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)

	name := "Ada L."
	updated, err := c.UpdateUser(ctx, created.ID, models.UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.Name)
	assert.Equal(t, "ada", updated.Username)

	require.NoError(t, c.DeleteUser(ctx, created.ID))
	assert.Empty(t, srv.Users())

	_, err = c.GetUser(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, c.DeleteUser(ctx, created.ID), ErrNotFound)
}

func TestClient_EmptyIDNeverSent(t *testing.T) {
	c, srv, _ := newFakeClient(t)
	ctx := context.Background()

	_, err := c.GetUser(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyID)
	_, err = c.UpdateUser(ctx, "", models.UpdateUserRequest{})
	assert.ErrorIs(t, err, ErrEmptyID)
	assert.ErrorIs(t, c.DeleteUser(ctx, ""), ErrEmptyID)

	assert.Empty(t, srv.Requests())
}

func TestClient_EscapesUserID(t *testing.T) {
	var rawPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(newTestTransport(t, srv.URL, nil))
	require.NoError(t, c.DeleteUser(context.Background(), "a/b c"))
	assert.Equal(t, "/users/a%2Fb%20c", rawPath)
}

func TestClient_Health(t *testing.T) {
	c, srv, _ := newFakeClient(t)
	ctx := context.Background()

	h, err := c.Health(ctx)
	require.NoError(t, err)
	assert.True(t, h.OK())
	assert.Equal(t, "userdir-fake", h.Service)

	srv.SetHealth(models.HealthStatus{Status: "degraded"})
	h, err = c.Health(ctx)
	require.NoError(t, err)
	assert.False(t, h.OK())

	srv.FailNext(http.MethodGet, "/health", http.StatusServiceUnavailable, "")
	_, err = c.Health(ctx)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
}

func TestClient_GetUsersEmptyList(t *testing.T) {
	c, srv, _ := newFakeClient(t)
	srv.SetRequireAuth(false)

	users, err := c.GetUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}
