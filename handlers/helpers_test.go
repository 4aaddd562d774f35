package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"lms-backend/middleware"
	"lms-backend/models"
	"lms-backend/utils"
)

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// asUser attaches authenticated claims the way AuthMiddleware would.
func asUser(req *http.Request, user *models.User) *http.Request {
	claims := &utils.Claims{UserID: user.ID, Username: user.Username, Role: user.Role}
	ctx := context.WithValue(req.Context(), middleware.UserCtxKey, claims)
	return req.WithContext(ctx)
}

func seedUser(t *testing.T, f *fakeStore, username, password, role string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := f.CreateUser(username, string(hashed), role)
	require.NoError(t, err)
	return user
}

func seedBook(t *testing.T, f *fakeStore, title string, quantity, available int) *models.Book {
	t.Helper()
	book := &models.Book{
		Title:           title,
		Author:          "Author",
		ISBN:            "978-0000000000",
		Quantity:        quantity,
		AvailableCopies: available,
	}
	require.NoError(t, f.CreateBook(book))
	return book
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}
