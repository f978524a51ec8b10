package http

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookie = "flash"

// Flash levels mirror the notification styles the templates know about.
const (
	flashSuccess = "success"
	flashDanger  = "danger"
	flashWarning = "warning"
)

type flashMessage struct {
	Level   string
	Message string
}

// setFlash queues a one-shot notification shown on the next rendered page.
func setFlash(w http.ResponseWriter, level, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:  flashCookie,
		Value: url.QueryEscape(level + "|" + message),
		Path:  "/",
	})
}

// popFlash reads and clears the pending notification, if any.
func popFlash(w http.ResponseWriter, r *http.Request) *flashMessage {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:   flashCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	level, message, ok := strings.Cut(raw, "|")
	if !ok || message == "" {
		return nil
	}
	return &flashMessage{Level: level, Message: message}
}
