package middleware

import (
	"bytes"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"learnhub/internal/admin"
)

// bufferedWriter holds the response until the chrome has been injected.
type bufferedWriter struct {
	gin.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *bufferedWriter) WriteHeader(code int) {
	w.status = code
}

func (w *bufferedWriter) WriteHeaderNow() {}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Status() int {
	return w.status
}

func (w *bufferedWriter) Size() int {
	return w.body.Len()
}

func (w *bufferedWriter) Written() bool {
	return w.body.Len() > 0
}

// AdminChrome decorates successful HTML responses of the wrapped routes
// with the admin header, navigation and behaviour script.
func AdminChrome(d *admin.Decorator) gin.HandlerFunc {
	return func(c *gin.Context) {
		orig := c.Writer
		buf := &bufferedWriter{ResponseWriter: orig, status: http.StatusOK}
		c.Writer = buf

		c.Next()

		c.Writer = orig
		out := buf.body.Bytes()
		ct := orig.Header().Get("Content-Type")
		if buf.status == http.StatusOK && strings.HasPrefix(ct, "text/html") {
			decorated, err := d.Decorate(out, viewportWidth(c.Request))
			if err != nil {
				log.Printf("Admin decoration failed: %v", err)
			} else {
				out = decorated
			}
		}

		orig.WriteHeader(buf.status)
		if len(out) > 0 {
			orig.Write(out)
		}
	}
}

// viewportWidth reads the client hint; 0 means unknown.
func viewportWidth(r *http.Request) int {
	for _, h := range []string{"Sec-CH-Viewport-Width", "Viewport-Width"} {
		if v := r.Header.Get(h); v != "" {
			if w, err := strconv.Atoi(v); err == nil && w > 0 {
				return w
			}
		}
	}
	return 0
}
