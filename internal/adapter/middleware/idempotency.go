package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// upper bound on how long a crashed handler can block its request id
	provisionalLockTTL = 60 * time.Second
	maxClockSkew       = 10 * time.Minute
	storeTimeout       = 2 * time.Second
)

// respRecorder tees the response so it can be stored after the handler returns.
type respRecorder struct {
	w    http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }

func (r *respRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.w.Write(b)
}

func (r *respRecorder) WriteHeader(code int) {
	r.code = code
	r.w.WriteHeader(code)
}

func nowUTC() time.Time { return time.Now().UTC() }

func reject(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

// IdempotencyMiddleware makes mutating routes safe to retry. The key is
// method + URL path + session user + X-Request-Id, so it must run after Auth.
// The same id with a different body is a 409; a finished request is replayed
// with Idempotent-Replayed: true. 5xx outcomes are not stored.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	store := entryStore{rdb: rdb, lockTTL: provisionalLockTTL, ttl: ttl}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			st := CurrentSession(c)
			if st == nil {
				return reject(c, http.StatusUnauthorized, "not authenticated")
			}
			stamp, err := readStamp(req.Header, nowUTC())
			if err != nil {
				return reject(c, http.StatusBadRequest, err.Error())
			}

			var body []byte
			if req.Body != nil {
				if body, err = io.ReadAll(req.Body); err != nil {
					return reject(c, http.StatusBadRequest, "unreadable request body")
				}
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			fp := fingerprint(body)

			key := idempKey{Method: req.Method, Path: req.URL.Path, UserID: st.UserID, RequestID: stamp.ID}.String()
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			acquired, err := store.lock(ctx, key, idempEntry{
				InProgress:  true,
				Fingerprint: fp,
				RequestID:   stamp.ID,
				RequestAt:   stamp.At,
				StoredAt:    nowUTC(),
			})
			if err != nil {
				log.Error("idempotency store unavailable", zap.Error(err))
				return reject(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !acquired {
				return replay(ctx, c, store, key, fp, log)
			}

			rec := &respRecorder{w: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			// the request context may be gone by now
			bg, cancelBg := context.WithTimeout(context.Background(), storeTimeout)
			defer cancelBg()

			if rec.code >= http.StatusInternalServerError {
				if err := store.unlock(bg, key); err != nil {
					log.Warn("idempotency lock not released", zap.String("key", key), zap.Error(err))
				}
				return nil
			}
			err = store.commit(bg, key, idempEntry{
				Code:        rec.code,
				ContentType: rec.Header().Get(echo.HeaderContentType),
				Body:        rec.buf.Bytes(),
				Fingerprint: fp,
				RequestID:   stamp.ID,
				RequestAt:   stamp.At,
				StoredAt:    nowUTC(),
			})
			if err != nil {
				log.Warn("idempotency result not stored", zap.String("key", key), zap.Error(err))
			}
			return nil
		}
	}
}

func replay(ctx context.Context, c echo.Context, store entryStore, key, fp string, log *zap.Logger) error {
	cur, err := store.load(ctx, key)
	if err != nil {
		log.Warn("idempotency entry unreadable", zap.String("key", key), zap.Error(err))
	}
	if cur.Fingerprint != "" && cur.Fingerprint != fp {
		return reject(c, http.StatusConflict, HeaderRequestID+" reused with different body")
	}
	if !cur.replayable() {
		return reject(c, http.StatusConflict, "request is already in progress")
	}
	ct := cur.ContentType
	if ct == "" {
		ct = echo.MIMEApplicationJSON
	}
	c.Response().Header().Set("Idempotent-Replayed", "true")
	return c.Blob(cur.Code, ct, cur.Body)
}
