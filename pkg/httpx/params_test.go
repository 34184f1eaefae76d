package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/djglaser/spookymart-ecommerce/pkg/httpx"
)

func ginCtx(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, http.NoBody)
	return c
}

func TestClampInt(t *testing.T) {
	cases := []struct{ v, lo, hi, want int }{
		{5, 1, 10, 5},
		{0, 1, 10, 1},
		{11, 1, 10, 10},
	}
	for _, tc := range cases {
		if got := httpx.ClampInt(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Fatalf("ClampInt(%d,%d,%d): want %d, got %d", tc.v, tc.lo, tc.hi, tc.want, got)
		}
	}
}

func TestParseLimitOffset_Defaults(t *testing.T) {
	c := ginCtx(t, "/api/orders")
	limit, offset := httpx.ParseLimitOffset(c, 20, 100)
	if limit != 20 || offset != 0 {
		t.Fatalf("want 20/0, got %d/%d", limit, offset)
	}
}

func TestParseLimitOffset_Bounds(t *testing.T) {
	c := ginCtx(t, "/api/orders?limit=500&offset=7")
	limit, offset := httpx.ParseLimitOffset(c, 20, 100)
	if limit != 100 || offset != 7 {
		t.Fatalf("want 100/7, got %d/%d", limit, offset)
	}
}

func TestParseLimitOffset_Garbage(t *testing.T) {
	c := ginCtx(t, "/api/orders?limit=abc&offset=-3")
	limit, offset := httpx.ParseLimitOffset(c, 20, 100)
	if limit != 20 || offset != 0 {
		t.Fatalf("want defaults on garbage input, got %d/%d", limit, offset)
	}
}
