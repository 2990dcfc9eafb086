package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-marketplace-api/authgate"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
)

func vendorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/vendor/ping",
		middleware.AuthRequired(),
		middleware.RoleRequired(authgate.RoleVendor),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"user_id": middleware.GetUserID(c),
				"role":    middleware.GetRole(c),
			})
		})
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/vendor/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMissingTokenRedirectsToSignIn(t *testing.T) {
	w := doRequest(vendorRouter(), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["redirect"], authgate.SignInPath)
	assert.Contains(t, body["redirect"], "next=%2Fvendor%2Fping")
}

func TestGarbageTokenRedirectsToSignIn(t *testing.T) {
	w := doRequest(vendorRouter(), "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVendorTokenAllowed(t *testing.T) {
	token, err := middleware.GenerateToken(&models.User{
		ID:    42,
		Name:  "Spice Route",
		Email: "owner@spiceroute.test",
		Role:  authgate.RoleVendor,
	})
	require.NoError(t, err)

	w := doRequest(vendorRouter(), token)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["user_id"])
	assert.Equal(t, "vendor", body["role"])
}

func TestCustomerTokenForbidden(t *testing.T) {
	token, err := middleware.GenerateToken(&models.User{
		ID:    7,
		Email: "alice@example.test",
		Role:  authgate.RoleCustomer,
	})
	require.NoError(t, err)

	w := doRequest(vendorRouter(), token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, authgate.UnauthorizedPath, body["redirect"])
}

func TestUnknownRoleTreatedAsCustomer(t *testing.T) {
	token, err := middleware.GenerateToken(&models.User{
		ID:    9,
		Email: "mystery@example.test",
		Role:  authgate.Role("superuser"),
	})
	require.NoError(t, err)

	// fails the vendor-only check
	w := doRequest(vendorRouter(), token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
