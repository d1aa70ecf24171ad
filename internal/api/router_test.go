package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolhub/portal/internal/api/middleware"
	"github.com/schoolhub/portal/internal/core/domain"
	"github.com/schoolhub/portal/internal/core/service"
	"github.com/schoolhub/portal/internal/infrastructure/schoolapi"
	"github.com/schoolhub/portal/internal/infrastructure/session"
)

// fakeBackend simulates the school REST API for end-to-end routing tests.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		switch {
		case creds["username"] == "jdoe" && creds["password"] == "secret":
			_ = json.NewEncoder(w).Encode(map[string]string{"role": "ROLE_TEACHER"})
		case creds["username"] == "root" && creds["password"] == "toor":
			_ = json.NewEncoder(w).Encode(map[string]string{"role": "ROLE_ADMIN"})
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
		}
	})

	mux.HandleFunc("GET /api/auth/accountType/", func(w http.ResponseWriter, r *http.Request) {
		username := strings.TrimPrefix(r.URL.Path, "/api/auth/accountType/")
		role := map[string]string{"jdoe": "ROLE_TEACHER", "root": "ROLE_ADMIN"}[username]
		if role == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(role))
	})

	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]int{"id": 42})
	})

	mux.HandleFunc("GET /api/subjects", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]domain.Subject{{ID: 1, Name: "Maths"}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	backend := fakeBackend(t)

	log := zerolog.Nop()
	client := schoolapi.NewClient(backend.URL+"/api", 5*time.Second, log)
	store := session.NewMemoryStore(time.Hour)
	sessions := service.NewSessionService(client, store, "test-secret", time.Hour, log)

	return NewRouter(Deps{
		Sessions:   sessions,
		Gateway:    client,
		School:     client,
		SessionTTL: time.Hour,
		Version:    "test",
		Log:        log,
	})
}

func doLogin(t *testing.T, router http.Handler, username, password string) *http.Cookie {
	t.Helper()
	body := strings.NewReader(`{"username":"` + username + `","password":"` + password + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", rec.Code, rec.Body.String())
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			return ck
		}
	}
	t.Fatalf("no session cookie in login response")
	return nil
}

func getEnvelope(t *testing.T, router http.Handler, path string, cookie *http.Cookie) (int, domain.Envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env domain.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid envelope from %s: %v (%s)", path, err, rec.Body.String())
	}
	return rec.Code, env
}

func TestRouter_ProtectedPathsSubstituteLoginWithoutSession(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/", "/teacherDashboard", "/adminDashboard", "/subjects", "/help"} {
		code, env := getEnvelope(t, router, path, nil)
		if code != http.StatusOK || env.View != "login" {
			t.Fatalf("%s: expected login substitution, got status=%d view=%q", path, code, env.View)
		}
	}
}

func TestRouter_LoginThenDashboard(t *testing.T) {
	router := newTestRouter(t)

	cookie := doLogin(t, router, "jdoe", "secret")

	code, env := getEnvelope(t, router, "/teacherDashboard", cookie)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if env.View != "teacherDashboard" {
		t.Fatalf("expected teacherDashboard view, got %q", env.View)
	}
	if env.Header.Username != "jdoe" || env.Header.AccountType != "TEACHER" {
		t.Fatalf("unexpected header: %+v", env.Header)
	}
}

func TestRouter_FailedLoginLeavesGuardClosed(t *testing.T) {
	router := newTestRouter(t)

	body := strings.NewReader(`{"username":"jdoe","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var env domain.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if env.Error != "Invalid credentials" {
		t.Fatalf("expected verbatim backend message, got %q", env.Error)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("failed login must not set a cookie")
	}

	code, env := getEnvelope(t, router, "/teacherDashboard", nil)
	if code != http.StatusOK || env.View != "login" {
		t.Fatalf("guard must stay closed after failed login")
	}
}

func TestRouter_RoleGateForbidsWrongDashboard(t *testing.T) {
	router := newTestRouter(t)

	cookie := doLogin(t, router, "jdoe", "secret") // teacher

	code, env := getEnvelope(t, router, "/adminDashboard", cookie)
	if code != http.StatusForbidden || env.View != "forbidden" {
		t.Fatalf("expected forbidden envelope, got status=%d view=%q", code, env.View)
	}
}

func TestRouter_RegistrationReturnsNewID(t *testing.T) {
	router := newTestRouter(t)

	cookie := doLogin(t, router, "root", "toor") // admin

	payload := `{"username":"ann","password":"secret1","firstName":"Ann","lastName":"Lee","email":"ann@example.com","className":"5B"}`
	req := httptest.NewRequest(http.MethodPost, "/registerStudent", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var env domain.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, _ := env.Data.(map[string]any)
	if data["id"] != float64(42) {
		t.Fatalf("expected id 42, got %v", env.Data)
	}

	// registration never writes session state: a fresh client still bounces
	code, env := getEnvelope(t, router, "/studentDashboard", nil)
	if code != http.StatusOK || env.View != "login" {
		t.Fatalf("registration must not create a session")
	}
}

func TestRouter_LogoutClosesTheGuard(t *testing.T) {
	router := newTestRouter(t)

	cookie := doLogin(t, router, "jdoe", "secret")

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout failed: %d", rec.Code)
	}

	// the old cookie no longer resolves: session cleared server-side
	code, env := getEnvelope(t, router, "/teacherDashboard", cookie)
	if code != http.StatusOK || env.View != "login" {
		t.Fatalf("expected login substitution after logout, got status=%d view=%q", code, env.View)
	}
}

func TestRouter_HealthProbes(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("liveness failed: %d", rec.Code)
	}
}
