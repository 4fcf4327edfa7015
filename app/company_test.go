package app

import (
	"corehr/onboarding-api/internal/model"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyFetch(t *testing.T) {
	r, d, mail := newTestEnv(t)

	token := onboardUser(t, r, mail, "a@x.com", "C1")

	var company model.Company
	require.NoError(t, d.DB.Where("company_id = ?", "C1").First(&company).Error)

	w := doJSON(r, http.MethodGet, "/api/companies/"+company.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "C1", parseBody(t, w)["data"].(map[string]any)["companyId"])

	w = doJSON(r, http.MethodGet, "/api/companies/missing", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompanyUpdateOwnTenant(t *testing.T) {
	r, d, mail := newTestEnv(t)

	token := onboardUser(t, r, mail, "a@x.com", "C1")

	var company model.Company
	require.NoError(t, d.DB.Where("company_id = ?", "C1").First(&company).Error)

	w := doJSON(r, http.MethodPut, "/api/companies/"+company.ID, map[string]any{
		"name":           "Initech",
		"employeesCount": "51-200",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, d.DB.Where("id = ?", company.ID).First(&company).Error)
	assert.Equal(t, "Initech", company.Name)
	assert.Equal(t, "51-200", company.EmployeesCount)

	w = doJSON(r, http.MethodPut, "/api/companies/"+company.ID, map[string]any{
		"employeesCount": "a lot",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompanyUpdateCrossTenantForbidden(t *testing.T) {
	r, d, mail := newTestEnv(t)

	onboardUser(t, r, mail, "a@x.com", "C1")
	otherToken := onboardUser(t, r, mail, "b@y.com", "C2")

	var company model.Company
	require.NoError(t, d.DB.Where("company_id = ?", "C1").First(&company).Error)

	w := doJSON(r, http.MethodPut, "/api/companies/"+company.ID, map[string]any{
		"name": "Takeover",
	}, otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCompanyListRequiresAdmin(t *testing.T) {
	r, d, mail := newTestEnv(t)

	token := onboardUser(t, r, mail, "a@x.com", "C1")

	w := doJSON(r, http.MethodGet, "/api/companies", nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Role checks read the live user record, not the token claims
	require.NoError(t, d.DB.Model(&model.User{}).
		Where("email = ?", "a@x.com").
		Update("role", model.RoleAdmin).Error)

	w = doJSON(r, http.MethodGet, "/api/companies", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, parseBody(t, w)["count"])
}

func TestAdminCanUpdateOtherTenant(t *testing.T) {
	r, d, mail := newTestEnv(t)

	onboardUser(t, r, mail, "a@x.com", "C1")
	adminToken := onboardUser(t, r, mail, "admin@y.com", "C2")

	require.NoError(t, d.DB.Model(&model.User{}).
		Where("email = ?", "admin@y.com").
		Update("role", model.RoleAdmin).Error)

	var company model.Company
	require.NoError(t, d.DB.Where("company_id = ?", "C1").First(&company).Error)

	w := doJSON(r, http.MethodPut, "/api/companies/"+company.ID, map[string]any{
		"name": "Renamed by admin",
	}, adminToken)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
