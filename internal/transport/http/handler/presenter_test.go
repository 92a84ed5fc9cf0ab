package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopher-blog/internal/app"
	"gopher-blog/internal/testutil"
)

func TestFlashCookieFollowsSecureSetting(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, secure := range []bool{true, false} {
		p := NewPresenter(app.NewAdminGate(1), "Blog", secure, testutil.Logger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		p.Flash(c, FlashWarning, "A post with that title already exists.")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, flashCookie, cookies[0].Name)
		assert.Equal(t, secure, cookies[0].Secure)
		assert.True(t, cookies[0].HttpOnly)

		// read back on the next request
		w = httptest.NewRecorder()
		c, _ = gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.AddCookie(&http.Cookie{Name: cookies[0].Name, Value: cookies[0].Value})

		flash := p.popFlash(c)
		require.NotNil(t, flash)
		assert.Equal(t, FlashWarning, flash.Category)
		assert.Equal(t, "A post with that title already exists.", flash.Message)

		cleared := w.Result().Cookies()
		require.Len(t, cleared, 1)
		assert.Less(t, cleared[0].MaxAge, 0)
		assert.Equal(t, secure, cleared[0].Secure)
	}
}
