package rmiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/internal/middleware"
)

func withRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if role != "" {
			c.Set(middleware.AuthUserIDKey, "u1")
			c.Set(middleware.AuthUserRoleKey, role)
		}
		c.Next()
	}
}

func status(gate gin.HandlerFunc, role string) int {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", withRole(role), gate, func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			return
		}
		if actor.UserID != "u1" {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w.Code
}

func TestRoleGates(t *testing.T) {
	cases := []struct {
		name string
		gate gin.HandlerFunc
		role string
		want int
	}{
		{"admin passes admin gate", AdminMiddleware(), "admin", http.StatusNoContent},
		{"captain blocked by admin gate", AdminMiddleware(), "captain", http.StatusForbidden},
		{"captain passes captain gate", CaptainOrAdminMiddleware(), "captain", http.StatusNoContent},
		{"admin passes captain gate", CaptainOrAdminMiddleware(), "admin", http.StatusNoContent},
		{"scout blocked by captain gate", CaptainOrAdminMiddleware(), "scout", http.StatusForbidden},
		{"scout passes scout gate", ScoutOrAdminMiddleware(), "scout", http.StatusNoContent},
		{"player blocked by scout gate", ScoutOrAdminMiddleware(), "player", http.StatusForbidden},
		{"anonymous", AdminMiddleware(), "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		if got := status(tc.gate, tc.role); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}
