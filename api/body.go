package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/andybalholm/brotli"
	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"

	"github.com/Harvester57/openstreetmap-ng/osmxml/debug"
)

var (
	ErrBodyTooLarge = errors.New("request body too large")
	ErrDecompress   = errors.New("unable to decompress request body")
)

// DefaultMaxBodySize applies when Spec.MaxBodySize is unset.
// OSMXML_BODY_MAX_SIZE overrides it.
var DefaultMaxBodySize = debug.SizeEnv("OSMXML_BODY_MAX_SIZE", 50<<20)

type decompressor func(io.Reader) (io.ReadCloser, error)

// keyed by Content-Encoding; other encodings pass through untouched
var decompressors = map[string]decompressor{
	"gzip": func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	},
	"deflate": zlib.NewReader,
	"zstd": func(r io.Reader) (io.ReadCloser, error) {
		d, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	},
	"br": func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(r)), nil
	},
}

// ReadBody reads the whole request body, decompressing it according to its
// Content-Encoding. Bodies longer than limit, before or after
// decompression, fail with ErrBodyTooLarge.
func ReadBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: Request body exceeded %s", ErrBodyTooLarge, humanize.IBytes(uint64(limit)))
	}
	if len(body) == 0 {
		return body, nil
	}
	enc := r.Header.Get("Content-Encoding")
	dec, ok := decompressors[enc]
	if !ok {
		if debug.Body() {
			debug.Logf("request body size: %s\n", debug.Size(len(body)))
		}
		return body, nil
	}
	out, err := decompress(dec, body, limit)
	if err != nil {
		return nil, err
	}
	if debug.Body() {
		debug.Logf("request body size: %s -> %s (compression: %s)\n",
			debug.Size(len(body)), debug.Size(len(out)), enc)
	}
	return out, nil
}

func decompress(dec decompressor, body []byte, limit int64) ([]byte, error) {
	rc, err := dec(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}
	defer rc.Close()
	out, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}
	if int64(len(out)) > limit {
		return nil, fmt.Errorf("%w: Decompressed request body exceeded %s", ErrBodyTooLarge, humanize.IBytes(uint64(limit)))
	}
	return out, nil
}

// BodyMiddleware replaces the request body with its decompressed content
// and rejects oversized or undecodable bodies.
func (a *API) BodyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := ReadBody(r, a.Spec.MaxBodySize)
		if err != nil {
			a.WriteError(w, r, err)
			return
		}
		if r.Body != nil {
			r.Body.Close()
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		r.ContentLength = int64(len(body))
		r.Header.Del("Content-Encoding")
		r.Header.Set("Content-Length", strconv.Itoa(len(body)))
		a.Spec.Log.Debug("request body", "path", r.URL.Path, "size", humanize.IBytes(uint64(len(body))))
		next.ServeHTTP(w, r)
	})
}
