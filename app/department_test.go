package app

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentCRUD(t *testing.T) {
	r, _, mail := newTestEnv(t)

	token := onboardUser(t, r, mail, "a@x.com", "C1")

	w := doJSON(r, http.MethodPost, "/api/departments", map[string]any{
		"name":  "Engineering",
		"email": "eng@x.com",
		"lead":  "Grace",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := parseBody(t, w)["data"].(map[string]any)
	id := created["id"].(string)
	require.NotEmpty(t, id)

	w = doJSON(r, http.MethodGet, "/api/departments", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, parseBody(t, w)["count"])

	w = doJSON(r, http.MethodPut, "/api/departments/"+id, map[string]any{
		"name": "Platform Engineering",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Platform Engineering", parseBody(t, w)["data"].(map[string]any)["name"])

	w = doJSON(r, http.MethodDelete, "/api/departments/"+id, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/departments", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, parseBody(t, w)["count"])
}

func TestDepartmentValidation(t *testing.T) {
	r, _, mail := newTestEnv(t)

	token := onboardUser(t, r, mail, "a@x.com", "C1")

	w := doJSON(r, http.MethodPost, "/api/departments", map[string]any{
		"name": "",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/departments", map[string]any{
		"name":  "Engineering",
		"email": "not-an-email",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDepartmentCrossTenantForbidden(t *testing.T) {
	r, _, mail := newTestEnv(t)

	ownerToken := onboardUser(t, r, mail, "a@x.com", "C1")
	otherToken := onboardUser(t, r, mail, "b@y.com", "C2")

	w := doJSON(r, http.MethodPost, "/api/departments", map[string]any{
		"name": "Engineering",
	}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code)

	id := parseBody(t, w)["data"].(map[string]any)["id"].(string)

	w = doJSON(r, http.MethodPut, "/api/departments/"+id, map[string]any{
		"name": "Takeover",
	}, otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/departments/"+id, nil, otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The other tenant never sees it in their listing either
	w = doJSON(r, http.MethodGet, "/api/departments", nil, otherToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, parseBody(t, w)["count"])

	// And the owner's department is untouched
	w = doJSON(r, http.MethodPut, "/api/departments/"+id, map[string]any{
		"name": "Engineering v2",
	}, ownerToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDepartmentNotFound(t *testing.T) {
	r, _, mail := newTestEnv(t)

	token := onboardUser(t, r, mail, "a@x.com", "C1")

	w := doJSON(r, http.MethodPut, "/api/departments/missing", map[string]any{
		"name": "Nope",
	}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/departments/missing", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
