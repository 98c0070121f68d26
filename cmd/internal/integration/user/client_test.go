package user

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/users/u1":
			_, _ = w.Write([]byte(`{"userId":"u1","username":"user-one"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, false)

	usr, err := client.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if usr.UserID != "u1" || usr.Username != "user-one" {
		t.Fatalf("GetByID = %+v, want u1/user-one", usr)
	}

	usr, err = client.GetByID(context.Background(), "missing")
	if err != nil || usr != nil {
		t.Fatalf("GetByID(missing) = (%+v, %v), want (nil, nil)", usr, err)
	}
}

func TestServerFailureIsErrUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, false)

	_, err := client.GetByID(context.Background(), "u1")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}
