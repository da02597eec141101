package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestNewSessionManager(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name       string
		sessionKey string
		secure     bool
		wantErr    bool
	}{
		{
			name:       "valid key dev mode",
			sessionKey: "this-is-a-32-character-long-key!",
			secure:     false,
			wantErr:    false,
		},
		{
			name:       "valid key prod mode",
			sessionKey: "this-is-a-32-character-long-key!",
			secure:     true,
			wantErr:    false,
		},
		{
			name:       "empty key",
			sessionKey: "",
			secure:     false,
			wantErr:    true,
		},
		{
			name:       "weak key dev mode",
			sessionKey: "short",
			secure:     false,
			wantErr:    false, // Warning but allowed in dev
		},
		{
			name:       "weak key prod mode",
			sessionKey: "short",
			secure:     true,
			wantErr:    true, // Error in prod
		},
		{
			name:       "default key prod mode",
			sessionKey: "dev-only-session-key-not-for-production",
			secure:     true,
			wantErr:    true, // Default keys not allowed in prod
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm, err := NewSessionManager(tt.sessionKey, "test-session", "", time.Hour, tt.secure, logger)

			if tt.wantErr {
				if err == nil {
					t.Error("NewSessionManager() expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("NewSessionManager() error = %v", err)
				}
				if sm == nil {
					t.Error("NewSessionManager() returned nil")
				}
			}
		})
	}
}

func TestSessionManager_SessionName(t *testing.T) {
	sm, err := NewSessionManager("this-is-a-32-character-long-key!", "my-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	if got := sm.SessionName(); got != "my-session" {
		t.Errorf("SessionName() = %q, want %q", got, "my-session")
	}

	sm, err = NewSessionManager("this-is-a-32-character-long-key!", "", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	if got := sm.SessionName(); got != "schoolcms-session" {
		t.Errorf("SessionName() default = %q, want %q", got, "schoolcms-session")
	}
}

func TestCurrentAdmin(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin/api/notices", nil)

	if _, ok := CurrentAdmin(r); ok {
		t.Error("CurrentAdmin() = true on bare request, want false")
	}

	admin := &SessionAdmin{ID: primitive.NewObjectID().Hex(), Role: "admin"}
	r = WithTestAdmin(r, admin)

	got, ok := CurrentAdmin(r)
	if !ok {
		t.Fatal("CurrentAdmin() = false after WithTestAdmin")
	}
	if got.ID != admin.ID {
		t.Errorf("ID = %q, want %q", got.ID, admin.ID)
	}
}

func TestSessionAdmin_AdminID(t *testing.T) {
	oid := primitive.NewObjectID()
	admin := &SessionAdmin{ID: oid.Hex()}
	if got := admin.AdminID(); got != oid {
		t.Errorf("AdminID() = %v, want %v", got, oid)
	}

	admin = &SessionAdmin{ID: "not-an-object-id"}
	if got := admin.AdminID(); !got.IsZero() {
		t.Errorf("AdminID() = %v for invalid hex, want zero", got)
	}
}

func TestRequireSignedIn(t *testing.T) {
	sm, err := NewSessionManager("this-is-a-32-character-long-key!", "", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("signed in", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/admin/api/notices", nil)
		r = WithTestAdmin(r, &SessionAdmin{ID: primitive.NewObjectID().Hex(), Role: "admin"})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("not signed in", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/admin/api/notices", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	sm, err := NewSessionManager("this-is-a-32-character-long-key!", "", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}

	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name     string
		admin    *SessionAdmin
		wantCode int
	}{
		{
			name:     "matching role",
			admin:    &SessionAdmin{ID: primitive.NewObjectID().Hex(), Role: "admin"},
			wantCode: http.StatusOK,
		},
		{
			name:     "role case insensitive",
			admin:    &SessionAdmin{ID: primitive.NewObjectID().Hex(), Role: "Admin"},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong role",
			admin:    &SessionAdmin{ID: primitive.NewObjectID().Hex(), Role: "viewer"},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "not signed in",
			admin:    nil,
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/admin/api/notices", nil)
			if tt.admin != nil {
				r = WithTestAdmin(r, tt.admin)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}

func TestIsDefaultKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"dev-only-session-key", true},
		{"please-change-me-in-production", true},
		{"this-is-a-placeholder-key", true},
		{"my-insecure-key-for-testing!", true},
		{"xK9mP2vN8qR5tY7wZ3aB6cD1eF4gH0jL", false},
	}
	for _, tt := range tests {
		if got := isDefaultKey(tt.key); got != tt.want {
			t.Errorf("isDefaultKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestClassifySessionError(t *testing.T) {
	errType, category := classifySessionError(nil)
	if errType != sessionErrUnknown || category != "none" {
		t.Errorf("classifySessionError(nil) = (%v, %q)", errType, category)
	}
}

func TestSessionManager_Store(t *testing.T) {
	sm, err := NewSessionManager("this-is-a-32-character-long-key!", "", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	if sm.Store() == nil {
		t.Error("Store() returned nil")
	}
}

func TestSessionConfigError(t *testing.T) {
	err := &SessionConfigError{Message: "bad key"}
	if err.Error() != "bad key" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCreateAndDestroySession(t *testing.T) {
	sm, err := NewSessionManager("this-is-a-32-character-long-key!", "", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}

	adminID := primitive.NewObjectID()

	r := httptest.NewRequest(http.MethodPost, "/admin/api/login", nil)
	w := httptest.NewRecorder()
	if err := sm.CreateSession(w, r, adminID, "admin"); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("CreateSession set no cookies")
	}

	// Replay the cookie and check the session round-trips.
	r2 := httptest.NewRequest(http.MethodGet, "/admin/api/notices", nil)
	for _, c := range cookies {
		r2.AddCookie(c)
	}
	sess, err := sm.store.Get(r2, sm.name)
	if err != nil {
		t.Fatalf("store.Get: %v", err)
	}
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		t.Error("session not authenticated after CreateSession")
	}
	if got := getString(sess, adminIDKey); got != adminID.Hex() {
		t.Errorf("admin_id = %q, want %q", got, adminID.Hex())
	}

	w2 := httptest.NewRecorder()
	sm.DestroySession(w2, r2)
	destroyed := w2.Result().Cookies()
	if len(destroyed) == 0 {
		t.Fatal("DestroySession set no cookies")
	}
	if destroyed[0].MaxAge >= 0 {
		t.Errorf("MaxAge = %d, want negative", destroyed[0].MaxAge)
	}
}

func TestLoadSessionAdmin_NoSession(t *testing.T) {
	sm, err := NewSessionManager("this-is-a-32-character-long-key!", "", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}

	var sawAdmin bool
	handler := sm.LoadSessionAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAdmin = CurrentAdmin(r)
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/notices", nil)
	handler.ServeHTTP(httptest.NewRecorder(), r)
	if sawAdmin {
		t.Error("CurrentAdmin() = true without a session")
	}
}

func TestGetString(t *testing.T) {
	sm, err := NewSessionManager("this-is-a-32-character-long-key!", "", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, _ := sm.store.Get(r, sm.name)

	sess.Values["str"] = "value"
	sess.Values["int"] = 42

	if got := getString(sess, "str"); got != "value" {
		t.Errorf("getString(str) = %q", got)
	}
	if got := getString(sess, "int"); got != "" {
		t.Errorf("getString(int) = %q, want empty", got)
	}
	if got := getString(sess, "missing"); got != "" {
		t.Errorf("getString(missing) = %q, want empty", got)
	}
}
