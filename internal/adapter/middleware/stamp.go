package middleware

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	HeaderRequestID = "X-Request-Id"
	HeaderRequestAt = "X-Request-At"

	keyPrefix = "idemp:pl:"
)

var (
	errMissingRequestID = errors.New("missing " + HeaderRequestID)
	errBadRequestID     = errors.New("invalid " + HeaderRequestID + " format")
	errMissingRequestAt = errors.New("missing " + HeaderRequestAt)
	errBadRequestAt     = errors.New(HeaderRequestAt + " must be epoch (s/ms) or RFC3339 with timezone")
	errSkewedRequestAt  = errors.New(HeaderRequestAt + " too skewed")

	reUUID  = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
	reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)
)

// requestStamp is the client's claim about which logical request this is.
type requestStamp struct {
	ID string
	At time.Time
}

// readStamp validates the idempotency headers against now.
func readStamp(h http.Header, now time.Time) (requestStamp, error) {
	id := strings.TrimSpace(h.Get(HeaderRequestID))
	switch {
	case id == "":
		return requestStamp{}, errMissingRequestID
	case !reUUID.MatchString(id) && !reHex32.MatchString(id):
		return requestStamp{}, errBadRequestID
	}

	at, err := parseRequestAt(h.Get(HeaderRequestAt))
	if err != nil {
		return requestStamp{}, err
	}
	if at.Before(now.Add(-maxClockSkew)) || at.After(now.Add(maxClockSkew)) {
		return requestStamp{}, errSkewedRequestAt
	}
	return requestStamp{ID: id, At: at}, nil
}

// parseRequestAt takes epoch seconds, epoch milliseconds or RFC3339 with a
// zone. Naive local timestamps are rejected.
func parseRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errMissingRequestAt
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errBadRequestAt
}

// idempKey scopes a request id to one caller and one concrete URL.
type idempKey struct {
	Method    string
	Path      string
	UserID    string
	RequestID string
}

func (k idempKey) String() string {
	return keyPrefix + strings.ToLower(k.Method) + ":" + k.Path + ":" + k.UserID + ":" + k.RequestID
}
