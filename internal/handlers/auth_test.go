package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/repository"
	"storefront/internal/service"
)

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandlers_SignUpAndSignIn(t *testing.T) {
	auth := &mockAuth{signUpToken: "tok-new", genTokenToken: "tok123", parseID: 1}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	// signup success → 201 with token
	w := postJSON(r, "/auth/signup", `{"username":"alice01","password":"hunter22"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "tok-new" {
		t.Fatalf("expected token tok-new, got %v", m["token"])
	}
	if auth.lastSignUpUsername != "alice01" {
		t.Fatalf("SignUp got username %q", auth.lastSignUpUsername)
	}

	// signin success → 200 with token
	w = postJSON(r, "/auth/signin", `{"username":"alice01","password":"hunter22"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("signin status=%d, body=%s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "tok123" {
		t.Fatalf("expected token tok123, got %v", m["token"])
	}

	// signin invalid body → 400
	w = postJSON(r, "/auth/signin", `{"username":1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestAuthHandlers_SignUpValidation(t *testing.T) {
	auth := &mockAuth{signUpToken: "unused"}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	cases := []struct {
		name string
		body string
	}{
		{name: "username too short", body: `{"username":"abc","password":"password1"}`},
		{name: "username too long", body: `{"username":"abcdefghijklmnopqrstu","password":"password1"}`},
		{name: "password too short", body: `{"username":"alice01","password":"short"}`},
		{name: "missing fields", body: `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(r, "/auth/signup", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (body=%s)", w.Code, w.Body.String())
			}
			var out struct {
				Errors []struct {
					Field   string `json:"field"`
					Message string `json:"message"`
				} `json:"errors"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(out.Errors) == 0 {
				t.Fatalf("expected structured field errors, body=%s", w.Body.String())
			}
			// validation happens at the binding layer, before the service
			if auth.lastSignUpUsername != "" {
				t.Fatalf("SignUp should not be called for invalid input")
			}
		})
	}
}

func TestAuthHandlers_SignUpConflictIsGeneric(t *testing.T) {
	auth := &mockAuth{signUpErr: repository.ErrUsernameTaken}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := postJSON(r, "/auth/signup", `{"username":"alice01","password":"hunter22"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var out struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Error != errSignUpFailed {
		t.Fatalf("expected generic error %q, got %q", errSignUpFailed, out.Error)
	}
}

func TestAuthHandlers_SignInFailureModesAreIdentical(t *testing.T) {
	// unknown user and wrong password must produce the same status and body
	responses := make([]string, 0, 2)
	for _, svcErr := range []error{service.ErrUserNotFound, service.ErrInvalidPassword} {
		auth := &mockAuth{genTokenErr: svcErr}
		s := &service.Service{Authorization: auth}
		r := newTestRouter(s)

		w := postJSON(r, "/auth/signin", `{"username":"alice01","password":"wrongpass"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var out struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &out)
		if out.Error != errInvalidCredentials {
			t.Fatalf("expected %q, got %q", errInvalidCredentials, out.Error)
		}
		responses = append(responses, w.Body.String())
	}
	if responses[0] != responses[1] {
		t.Fatalf("failure bodies differ: %q vs %q", responses[0], responses[1])
	}
}

func TestAuthHandlers_SignOut(t *testing.T) {
	s := &service.Service{Authorization: &mockAuth{}}
	r := newTestRouter(s)

	w := postJSON(r, "/auth/signout", ``)
	if w.Code != http.StatusOK {
		t.Fatalf("signout status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Message != msgSignOut {
		t.Fatalf("expected %q, got %q", msgSignOut, out.Message)
	}
}
