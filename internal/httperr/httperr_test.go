package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:      http.StatusBadRequest,
		KindUnauthenticated: http.StatusUnauthorized,
		KindForbidden:       http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindConflict:        http.StatusConflict,
		KindTooManyRequests: http.StatusTooManyRequests,
		Kind(0):             http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.Status())
	}
}

func TestIsBusinessThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create store: %w", Conflict("owner_has_store", "This owner already has a store"))

	assert.True(t, IsBusiness(err, "owner_has_store"))
	assert.True(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsBusiness(errors.New("boom"), "owner_has_store"))
}

func respond(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	Respond(c, zap.NewNop(), err, "Error fetching stores")
	return w
}

func TestRespondBusinessError(t *testing.T) {
	w := respond(NotFoundErr("store_not_found", "Store not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "store_not_found", body.Code)
	assert.Equal(t, "Store not found", body.Message)
}

func TestRespondHidesInternalDetail(t *testing.T) {
	w := respond(errors.New("pq: relation \"stores\" does not exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "relation")
	assert.Contains(t, w.Body.String(), "Error fetching stores")
}
