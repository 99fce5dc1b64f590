package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/idu-staffing-board/internal/models"
	appErrors "github.com/noah-isme/idu-staffing-board/pkg/errors"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := NewTokenService("secret")

	token, err := svc.Issue("Tod Baker", models.RoleEditor, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Tod Baker", claims.Name)
	assert.Equal(t, models.RoleEditor, claims.Role)
}

func TestTokenServiceRejectsBadTokens(t *testing.T) {
	svc := NewTokenService("secret")

	expired, err := svc.Issue("Tod Baker", models.RoleViewer, -time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))

	foreign, err := NewTokenService("other").Issue("Tod Baker", models.RoleEditor, time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateToken(foreign)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &models.StaffClaims{Name: "x"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(unsigned)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}
