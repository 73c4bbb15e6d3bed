package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"lessoncast/auth"
	"lessoncast/types"
)

func TestSessionTokenSources(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"bearer header", "Bearer abc123", "", "abc123"},
		{"cookie", "", "cookie-token", "cookie-token"},
		{"header wins over cookie", "Bearer from-header", "from-cookie", "from-header"},
		{"no token", "", "", ""},
		{"non-bearer header ignored", "Basic xyz", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				c.Request.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				c.Request.AddCookie(&http.Cookie{Name: "session", Value: tc.cookie})
			}
			if got := sessionToken(c); got != tc.want {
				t.Fatalf("sessionToken = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestRequireEditor(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name  string
		ident *auth.Identity
		want  int
	}{
		{"admin allowed", &auth.Identity{UserID: "u1", Role: types.RoleAdmin}, http.StatusOK},
		{"editor allowed", &auth.Identity{UserID: "u2", Role: types.RoleEditor}, http.StatusOK},
		{"student forbidden", &auth.Identity{UserID: "u3", Role: types.RoleStudent}, http.StatusForbidden},
		{"anonymous forbidden", nil, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(func(c *gin.Context) {
				if tc.ident != nil {
					c.Set(identityKey, tc.ident)
				}
			})
			r.GET("/edit", requireEditor(), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/edit", nil))
			if w.Code != tc.want {
				t.Fatalf("status = %d; want %d", w.Code, tc.want)
			}
		})
	}
}
