package app

import (
	"bytes"
	"corehr/onboarding-api/internal"
	"corehr/onboarding-api/internal/model"
	"corehr/onboarding-api/pkg/security"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	v "github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPassword = "Aa1!aaaa"

var verifyLinkRe = regexp.MustCompile(`verify-email/([0-9a-f]+)`)

type sentMail struct {
	to      string
	subject string
	body    string
}

// fakeMailer records outbound mail so tests can pull the verification
// token out of the link instead of talking to SMTP
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return errors.New("smtp relay unavailable")
	}

	f.sent = append(f.sent, sentMail{to, subject, body})
	return nil
}

func (f *fakeMailer) lastToken(t *testing.T) string {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	require.NotEmpty(t, f.sent, "expected at least one mail to be sent")

	m := verifyLinkRe.FindStringSubmatch(f.sent[len(f.sent)-1].body)
	require.NotNil(t, m, "expected a verification link in the mail body")

	return m[1]
}

func newTestEnv(t *testing.T) (*gin.Engine, *internal.Deps, *fakeMailer) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	v.Set("jwt.secret", "test-secret")
	v.Set("host.domain", "localhost")
	v.Set("host.cors", "http://localhost")
	v.Set("host.ssl_enabled", false)
	v.Set("security.rate_limit", 1000)
	v.Set("security.verification_ttl_minutes", 60)
	v.Set("cleanup.retention_days", 30)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(model.User{}, model.Company{}, model.Department{}))

	mail := &fakeMailer{}
	d := &internal.Deps{
		DB:     conn,
		Hasher: security.NewHasher(),
		Mail:   mail,
	}

	return NewRouterWithDeps(d), d, mail
}

func doJSON(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerBody(email, companyID string) map[string]any {
	return map[string]any{
		"firstName":   "Ada",
		"lastName":    "Lovelace",
		"email":       email,
		"phoneNumber": "+4512345678",
		"company": map[string]any{
			"companyId":      companyID,
			"employeesCount": "11-50",
			"name":           "",
		},
	}
}

// onboardUser walks the whole wizard for a fresh user and returns a
// valid session token
func onboardUser(t *testing.T, r http.Handler, mail *fakeMailer, email, companyID string) string {
	t.Helper()

	w := doJSON(r, http.MethodPost, "/api/auth/register", registerBody(email, companyID), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/auth/verify-email/"+mail.lastToken(t), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPut, "/api/auth/create-password", map[string]any{
		"email":    email,
		"password": testPassword,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    email,
		"password": testPassword,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token, ok := parseBody(t, w)["token"].(string)
	require.True(t, ok, "expected a session token")
	return token
}
