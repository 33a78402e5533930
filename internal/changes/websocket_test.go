package changes

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestStreamWritesChangedFrame(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	r := gin.New()
	r.GET("/api/changes/ws", NewHandler(hub, "").Stream)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/changes/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("handler never subscribed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Publish()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != Message {
		t.Fatalf("expected %q, got %q", Message, data)
	}
}

func TestStreamUnsubscribesWhenClientLeaves(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	r := gin.New()
	r.GET("/api/changes/ws", NewHandler(hub, "").Stream)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/changes/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("handler never subscribed")
		}
		time.Sleep(10 * time.Millisecond)
	}
	conn.Close()

	deadline = time.Now().Add(2 * time.Second)
	for hub.Subscribers() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("handler never unsubscribed")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCheckOriginRejectsForeignOrigin(t *testing.T) {
	h := NewHandler(NewHub(), "http://localhost:3000")
	req := httptest.NewRequest("GET", "/api/changes/ws", nil)
	req.Header.Set("Origin", "http://evil.example")
	if h.upgrader.CheckOrigin(req) {
		t.Fatalf("expected foreign origin to be rejected")
	}
	req.Header.Set("Origin", "http://localhost:3000")
	if !h.upgrader.CheckOrigin(req) {
		t.Fatalf("expected configured origin to be accepted")
	}
}
