package midware

import (
	"bytes"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/zstd"
)

const minZip = 512

var encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))

// zipWriter buffers the body so it can be compressed as a whole
type zipWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *zipWriter) Write(b []byte) (int, error) {
	return w.buf.Write(b)
}

func (w *zipWriter) WriteString(s string) (int, error) {
	return w.buf.WriteString(s)
}

// Zip compresses responses with zstd for clients that accept it
func Zip(c *gin.Context) {
	if !strings.Contains(c.GetHeader("Accept-Encoding"), "zstd") {
		c.Next()
		return
	}

	w := &zipWriter{ResponseWriter: c.Writer}
	c.Writer = w
	c.Next()
	c.Writer = w.ResponseWriter

	body := w.buf.Bytes()
	if len(body) < minZip {
		c.Writer.Write(body)
		return
	}

	h := c.Writer.Header()
	h.Set("Content-Encoding", "zstd")
	h.Add("Vary", "Accept-Encoding")
	h.Del("Content-Length")
	c.Writer.Write(encoder.EncodeAll(body, make([]byte, 0, len(body)/2)))
}
