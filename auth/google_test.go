package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint/auth"
	"google.golang.org/api/option"
)

func TestNewGoogleAuthority(t *testing.T) {
	// Act
	a, err := auth.NewGoogleAuthority("", "secret")

	// Assert
	require.Nil(t, a)
	require.ErrorIs(t, err, auth.ErrNotValid)
}

func TestGoogleAuthorityFetch(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"code":401,"message":"Invalid Credentials"}}`))
			return
		}

		w.Write([]byte(`{"id":"1234","email":"ada@example.com","name":"Ada"}`))
	}))
	defer srv.Close()

	a, err := auth.NewGoogleAuthority("client", "secret", option.WithEndpoint(srv.URL+"/"))
	require.Nil(t, err)

	t.Run("Valid", func(t *testing.T) {
		// Act
		id, err := a.Fetch(context.Background(), "good")

		// Assert
		require.Nil(t, err)
		require.Equal(t, "1234", id.GetID())
		require.Equal(t, "ada@example.com", id.(*auth.Client).Data["email"])
	})

	t.Run("Rejected", func(t *testing.T) {
		// Act
		_, err := a.Fetch(context.Background(), "bad")

		// Assert
		require.ErrorIs(t, err, auth.ErrRejected)
		require.Contains(t, err.Error(), "Invalid Credentials")
	})
}
