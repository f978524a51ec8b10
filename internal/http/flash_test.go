package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFlashShownOnceThenCleared(t *testing.T) {
	srv := newTestServer(t, allStores(&fakeStore{}))

	// Queue a notification the way a POST handler would.
	post := do(t, srv, http.MethodPost, "/transactions", "date=2024-05-01&type=income&category=Pay&amount=10")
	var cookie *http.Cookie
	for _, c := range post.Result().Cookies() {
		if c.Name == flashCookie {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("POST did not set a flash cookie")
	}

	// The next rendered page shows the message and expires the cookie.
	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)

	if !strings.Contains(rr.Body.String(), "Transaction Added!") {
		t.Error("flash message not rendered")
	}
	var cleared bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("flash cookie not cleared after render")
	}
}

func TestPopFlashMalformedValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: "no-separator"})
	rr := httptest.NewRecorder()
	if msg := popFlash(rr, req); msg != nil {
		t.Errorf("malformed cookie should yield no message, got %+v", msg)
	}
}
