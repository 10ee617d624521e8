package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/api/responses"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// RateLimitStore keeps the per-window attempt counters; *redis.Client satisfies it.
type RateLimitStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
	RateLimitKey(scope string) string
}

// maxRateLimitBody bounds how much of the body is buffered to find the email.
const maxRateLimitBody = 1 << 20

// AuthRateLimitPolicy is a fixed-window budget for one auth endpoint, counted
// both per client IP and per submitted email.
type AuthRateLimitPolicy struct {
	name           string
	window         time.Duration
	ipLimit        int
	emailLimit     int
	trustedProxies []netip.Prefix
}

func NewAuthRateLimitPolicy(name string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "auth"
	}
	return AuthRateLimitPolicy{name: name, window: window, ipLimit: ipLimit, emailLimit: emailLimit}
}

// WithTrustedProxies returns a copy of p that reads the client address from
// forwarding headers when the socket peer falls inside one of prefixes.
func (p AuthRateLimitPolicy) WithTrustedProxies(prefixes []netip.Prefix) AuthRateLimitPolicy {
	p.trustedProxies = prefixes
	return p
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

type attemptCounter struct {
	kind  string
	value string
	limit int
}

func (c attemptCounter) scope(policy string) string {
	return c.kind + ":" + policy + ":" + c.value
}

// AuthRateLimit rejects a request with 429 once either of its counters passes
// the policy limit inside the window. A failing store surfaces as 503 rather
// than letting traffic through unmetered.
func AuthRateLimit(policy AuthRateLimitPolicy, store RateLimitStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			counters, err := countersFor(policy, r)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			for _, c := range counters {
				count, err := store.IncrWithTTL(ctx, store.RateLimitKey(c.scope(policy.name)), policy.window)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
					return
				}
				if count > int64(c.limit) {
					rejectRateLimited(ctx, logg, w, policy, c, count)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// countersFor lists the counters that apply to r. Reading the email consumes
// the body, so it is buffered and restored for the next handler.
func countersFor(policy AuthRateLimitPolicy, r *http.Request) ([]attemptCounter, error) {
	var counters []attemptCounter
	if policy.ipLimit > 0 {
		if ip := clientIP(r, policy.trustedProxies); ip != "" {
			counters = append(counters, attemptCounter{kind: "ip", value: ip, limit: policy.ipLimit})
		}
	}
	if policy.emailLimit <= 0 || r.Body == nil {
		return counters, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRateLimitBody))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request")
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	if email := normalizeEmail(extractEmail(body)); email != "" {
		counters = append(counters, attemptCounter{kind: "email", value: hashValue(email), limit: policy.emailLimit})
	}
	return counters, nil
}

func rejectRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy AuthRateLimitPolicy, c attemptCounter, count int64) {
	if logg != nil {
		field := "ip"
		if c.kind == "email" {
			field = "email_hash"
		}
		logg.Warn(logg.WithFields(ctx, map[string]any{
			"scope":          c.kind,
			"policy":         policy.name,
			field:            c.value,
			"attempts":       count,
			"limit":          c.limit,
			"window_seconds": int(policy.window.Seconds()),
		}), "auth.rate_limit.blocked")
	}

	w.Header().Set("Retry-After", strconv.Itoa(int(policy.window.Round(time.Second).Seconds())))
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
}

// clientIP is the socket peer unless the peer is a trusted proxy. Behind a
// trusted proxy X-Forwarded-For is walked from the right and the first valid
// untrusted hop wins, so entries a client prepends are never reached.
func clientIP(r *http.Request, trusted []netip.Prefix) string {
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && h != "" {
		host = h
	}
	peer, err := netip.ParseAddr(host)
	if err != nil {
		return host
	}
	peer = peer.Unmap()
	if !isTrustedProxy(peer, trusted) {
		return peer.String()
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			continue
		}
		if addr = addr.Unmap(); !isTrustedProxy(addr, trusted) {
			return addr.String()
		}
	}
	if addr, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return addr.Unmap().String()
	}
	return peer.String()
}

func isTrustedProxy(addr netip.Addr, trusted []netip.Prefix) bool {
	for _, prefix := range trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func extractEmail(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.Email
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
