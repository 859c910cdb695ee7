package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/client/client"
	"github.com/dmitrijs2005/recipebox/internal/client/models"
	"github.com/stretchr/testify/require"
)

func TestProfile_FetchesUserAndRecipes(t *testing.T) {
	fc := &fakeClient{
		UserRet: &models.PublicUser{ID: 9, Username: "bob"},
		ListRet: []models.Recipe{{ID: 1, UserID: 9}},
	}
	p, err := NewUserService(fc).Profile(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, "bob", p.User.Username)
	require.Len(t, p.Recipes, 1)
	require.Equal(t, int64(9), fc.LastUserID)
	require.Equal(t, int64(9), fc.LastListUserID)
}

func TestProfile_UnauthorizedFromEitherFetch(t *testing.T) {
	fc := &fakeClient{UserRet: &models.PublicUser{ID: 9}, ListErr: &client.APIError{StatusCode: 401}}
	_, err := NewUserService(fc).Profile(context.Background(), 9)
	require.ErrorIs(t, err, client.ErrUnauthorized)

	fc = &fakeClient{UserErr: &client.APIError{StatusCode: 401}}
	_, err = NewUserService(fc).Profile(context.Background(), 9)
	require.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestProfile_UnauthorizedNotHiddenBySiblingFailure(t *testing.T) {
	fc := &fakeClient{
		UserErr:   &client.APIError{StatusCode: http.StatusInternalServerError, Message: "internal error"},
		ListErr:   &client.APIError{StatusCode: http.StatusUnauthorized},
		ListDelay: 50 * time.Millisecond,
	}
	_, err := NewUserService(fc).Profile(context.Background(), 9)
	require.ErrorIs(t, err, client.ErrUnauthorized)
	require.NotErrorIs(t, err, context.Canceled)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
}

func TestProfile_SlowFetchCompletesAfterSiblingFails(t *testing.T) {
	fc := &fakeClient{
		UserErr:   &client.APIError{StatusCode: http.StatusNotFound, Message: "User not found"},
		ListRet:   []models.Recipe{soup},
		ListDelay: 20 * time.Millisecond,
	}
	_, err := NewUserService(fc).Profile(context.Background(), 9)
	require.ErrorIs(t, err, client.ErrNotFound)
	require.NotErrorIs(t, err, context.Canceled)
}
