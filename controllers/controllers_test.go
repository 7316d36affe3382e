package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"GameHub/middleware"
	"GameHub/models"
	"GameHub/routes"
	"GameHub/services/dialogs"
	"GameHub/services/events"
	"GameHub/services/kvstore"
	"GameHub/services/notifications"
	"GameHub/services/store"
)

type testServer struct {
	router *gin.Engine
	store  *store.Store
	toasts *notifications.Center
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SESSION_KEY", "test-session-key")
	gin.SetMode(gin.TestMode)

	bus := events.NewBus(64)
	t.Cleanup(bus.Close)
	s, err := store.New(kvstore.NewMemoryStore(), bus)
	assert.NoError(t, err)

	toasts := notifications.NewCenter(kvstore.NewMemoryStore())
	t.Cleanup(toasts.Close)

	router := gin.New()
	middleware.SetUpMiddleware(router)
	routes.SetupRoutes(router, s, toasts, dialogs.NewCoordinator())

	return &testServer{router: router, store: s, toasts: toasts}
}

func (ts *testServer) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) doJSON(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) signUp(t *testing.T, email, password, username string) string {
	t.Helper()
	w := ts.postForm(t, "/signup", url.Values{
		"email":    {email},
		"password": {password},
		"username": {username},
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestSignUpAndMe(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signUp(t, "ana@example.com", "testpass123", "ana")

	t.Run("me returns the new account", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodGet, "/auth/me", token, "")
		assert.Equal(t, http.StatusOK, w.Code)

		var me models.User
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
		assert.Equal(t, "ana@example.com", me.Email)
		assert.Equal(t, models.UserStatusActive, me.Status)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		w := ts.postForm(t, "/signup", url.Values{
			"email":    {"ana@example.com"},
			"password": {"testpass123"},
			"username": {"ana2"},
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		w := ts.postForm(t, "/signup", url.Values{
			"email":    {"weak@example.com"},
			"password": {"short"},
			"username": {"weakling"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("signup toast was recorded", func(t *testing.T) {
		user, found := ts.store.GetUserByEmail("ana@example.com")
		assert.True(t, found)
		assert.NotEmpty(t, ts.toasts.Visible(user.ID))
	})
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.signUp(t, "bob@example.com", "testpass123", "bob")

	t.Run("valid credentials return a token", func(t *testing.T) {
		w := ts.postForm(t, "/login", url.Values{
			"email":    {"bob@example.com"},
			"password": {"testpass123"},
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		w := ts.postForm(t, "/login", url.Values{
			"email":    {"bob@example.com"},
			"password": {"wrongpass1"},
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("blocked account is refused", func(t *testing.T) {
		user, found := ts.store.GetUserByEmail("bob@example.com")
		assert.True(t, found)
		blocked := models.UserStatusBlocked
		_, err := ts.store.UpdateUser(user.ID, store.UserUpdate{Status: &blocked})
		assert.NoError(t, err)

		w := ts.postForm(t, "/login", url.Values{
			"email":    {"bob@example.com"},
			"password": {"testpass123"},
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "blocked")
	})
}

func TestSubmitTicketValidation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signUp(t, "carol@example.com", "testpass123", "carol")

	t.Run("a nine character message is rejected", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodPost, "/auth/support", token,
			`{"subject":"Help","message":"123456789"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("a ten character message is persisted as open", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodPost, "/auth/support", token,
			`{"subject":"Help","message":"1234567890"}`)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var ticket models.SupportTicket
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &ticket))
		assert.Equal(t, models.TicketStatusOpen, ticket.Status)

		inbox, err := ts.store.ListAdminNotifications()
		assert.NoError(t, err)
		assert.Len(t, inbox, 1)
		assert.Equal(t, ticket.ID, inbox[0].TicketID)
	})
}

func TestUpdateUserInfoRenameGate(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signUp(t, "dora@example.com", "testpass123", "dora")

	rename := func(name string) *httptest.ResponseRecorder {
		return ts.doJSON(t, http.MethodPatch, "/auth/update", token,
			`{"username":"`+name+`"}`)
	}

	t.Run("three renames pass", func(t *testing.T) {
		for _, name := range []string{"dora1", "dora2", "dora3"} {
			w := rename(name)
			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}
	})

	t.Run("the fourth rename is gated", func(t *testing.T) {
		w := rename("dora4")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "limit")
	})

	t.Run("taken username is a conflict", func(t *testing.T) {
		otherToken := ts.signUp(t, "evan@example.com", "testpass123", "evan")
		w := ts.doJSON(t, http.MethodPatch, "/auth/update", otherToken,
			`{"username":"dora3"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestGamesEndpoints(t *testing.T) {
	ts := newTestServer(t)
	_, err := ts.store.AddGame(models.Game{Title: "Вектор", Description: "Головоломка"})
	assert.NoError(t, err)
	_, err = ts.store.AddGame(models.Game{Title: "Nebula Drift", Description: "Racer"})
	assert.NoError(t, err)

	t.Run("list is public", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodGet, "/games", "", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var games []models.Game
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &games))
		assert.Len(t, games, 2)
	})

	t.Run("search tolerates the wrong keyboard layout", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodGet, "/games/search?q=dtrnjh", "", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var games []models.Game
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &games))
		assert.Len(t, games, 1)
		assert.Equal(t, "Вектор", games[0].Title)
	})

	t.Run("mutations require an admin", func(t *testing.T) {
		token := ts.signUp(t, "user@example.com", "testpass123", "plainuser")
		w := ts.doJSON(t, http.MethodPost, "/auth/admin/games", token,
			`{"title":"Sneaky"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestDialogEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signUp(t, "fred@example.com", "testpass123", "fred")

	type confirmResp struct {
		Confirmed bool `json:"confirmed"`
	}
	result := make(chan confirmResp, 1)

	go func() {
		w := ts.doJSON(t, http.MethodPost, "/auth/dialogs/confirm", token,
			`{"title":"Delete","message":"Really delete?"}`)
		var resp confirmResp
		json.Unmarshal(w.Body.Bytes(), &resp)
		result <- resp
	}()

	// Poll until the opener's dialog is visible to a second request.
	var dialog dialogs.Dialog
	assert.Eventually(t, func() bool {
		w := ts.doJSON(t, http.MethodGet, "/auth/dialogs/active", token, "")
		if w.Code != http.StatusOK {
			return false
		}
		return json.Unmarshal(w.Body.Bytes(), &dialog) == nil
	}, 2*time.Second, 10*time.Millisecond)

	w := ts.doJSON(t, http.MethodPost, "/auth/dialogs/"+dialog.ID+"/resolve", token,
		`{"confirmed":true}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := <-result
	assert.True(t, resp.Confirmed)
}

func TestUnauthenticatedAccess(t *testing.T) {
	ts := newTestServer(t)

	w := ts.doJSON(t, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.doJSON(t, http.MethodGet, "/ping", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
