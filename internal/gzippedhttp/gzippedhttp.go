// Package gzippedhttp provides middlewares that transparently decompress
// gzip request bodies and compress responses for clients that accept gzip.
package gzippedhttp

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/logger"
)

// compressedReader decompresses a gzip request body.
type compressedReader struct {
	r  io.ReadCloser
	zr *gzip.Reader
}

func newCompressedReader(body io.ReadCloser) (*compressedReader, error) {
	zr, err := gzip.NewReader(body)
	if err != nil {
		return nil, err
	}

	return &compressedReader{r: body, zr: zr}, nil
}

func (c *compressedReader) Read(p []byte) (int, error) {
	return c.zr.Read(p)
}

// Close closes both the gzip reader and the original body.
func (c *compressedReader) Close() error {
	if err := c.r.Close(); err != nil {
		return err
	}
	return c.zr.Close()
}

// compressedResponseWriter gzips everything written to it. The encoding
// header goes out with the first header write, whatever the status.
type compressedResponseWriter struct {
	w           http.ResponseWriter
	zw          *gzip.Writer
	wroteHeader bool
}

var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		w, _ := gzip.NewWriterLevel(nil, gzip.BestSpeed)
		return w
	},
}

func newCompressedResponseWriter(w http.ResponseWriter) *compressedResponseWriter {
	zw := gzipWriterPool.Get().(*gzip.Writer)
	zw.Reset(w)

	return &compressedResponseWriter{w: w, zw: zw}
}

func (c *compressedResponseWriter) Header() http.Header {
	return c.w.Header()
}

func (c *compressedResponseWriter) WriteHeader(statusCode int) {
	if c.wroteHeader {
		return
	}
	c.wroteHeader = true

	header := c.w.Header()
	header.Del("Content-Length")
	header.Set("Content-Encoding", "gzip")
	header.Add("Vary", "Accept-Encoding")
	c.w.WriteHeader(statusCode)
}

func (c *compressedResponseWriter) Write(p []byte) (int, error) {
	if !c.wroteHeader {
		c.WriteHeader(http.StatusOK)
	}
	return c.zw.Write(p)
}

// close flushes the gzip stream. A handler that never wrote anything gets
// an uncompressed empty response.
func (c *compressedResponseWriter) close() error {
	defer gzipWriterPool.Put(c.zw)

	if !c.wroteHeader {
		c.zw.Reset(io.Discard)
		return nil
	}
	return c.zw.Close()
}

// GzipResponse compresses the response when the request's Accept-Encoding
// allows gzip.
func GzipResponse(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		if !strings.Contains(request.Header.Get("Accept-Encoding"), "gzip") {
			h.ServeHTTP(response, request)
			return
		}

		compressed := newCompressedResponseWriter(response)
		defer func() {
			if err := compressed.close(); err != nil {
				logger.Log.Debugln("error closing the gzip response stream", zap.Error(err))
			}
		}()

		h.ServeHTTP(compressed, request)
	}

	return http.HandlerFunc(middleware)
}

// UngzipRequest replaces a gzip-encoded request body with a decompressing
// reader. A body that is not valid gzip is rejected with 400.
func UngzipRequest(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		if !strings.Contains(request.Header.Get("Content-Encoding"), "gzip") {
			h.ServeHTTP(response, request)
			return
		}

		body, err := newCompressedReader(request.Body)
		if err != nil {
			logger.Log.Debugln("rejecting a malformed gzip request body", zap.Error(err))
			http.Error(response, "malformed gzip body", http.StatusBadRequest)
			return
		}
		defer body.Close()

		request.Body = body
		request.Header.Del("Content-Encoding")
		h.ServeHTTP(response, request)
	}

	return http.HandlerFunc(middleware)
}
