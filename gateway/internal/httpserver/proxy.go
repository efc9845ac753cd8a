package httpserver

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	echo "github.com/labstack/echo/v4"

	"github.com/rewardlab/event-platform/gateway/internal/middleware"
	"github.com/rewardlab/event-platform/pkg/permissions"
)

// Rule describes one upstream: where to forward and which path prefix, if
// any, to strip before forwarding.
type Rule struct {
	Target      string
	StripPrefix string
}

// RewritePath applies a rule's prefix strip to a request path.
func RewritePath(path, strip string) string {
	if strip == "" || !strings.HasPrefix(path, strip) {
		return path
	}
	p := strings.TrimPrefix(path, strip)
	if p == "" {
		return "/"
	}
	return p
}

// newProxy builds a forwarding handler for one upstream. Identity headers
// on the inbound request are always dropped and re-set from the verified
// principal, so clients cannot impersonate anyone by sending them directly.
func newProxy(rule Rule) (echo.HandlerFunc, error) {
	u, err := url.Parse(rule.Target)
	if err != nil {
		return nil, err
	}

	baseTransport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		MaxIdleConns:          200,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	p := httputil.NewSingleHostReverseProxy(u)
	p.Transport = baseTransport

	origDirector := p.Director
	p.Director = func(req *http.Request) {
		originalHost := req.Host
		originalProto := "http"
		if req.TLS != nil {
			originalProto = "https"
		} else if xf := req.Header.Get("X-Forwarded-Proto"); xf != "" {
			originalProto = xf
		}

		origDirector(req)

		req.URL.Path = RewritePath(req.URL.Path, rule.StripPrefix)
		if rp := req.URL.RawPath; rp != "" {
			req.URL.RawPath = RewritePath(rp, rule.StripPrefix)
		}

		// Let the transport recompute framing for the rewritten request.
		req.Header.Del("Content-Length")

		if req.Header.Get("X-Forwarded-Proto") == "" {
			req.Header.Set("X-Forwarded-Proto", originalProto)
		}
		if req.Header.Get("X-Forwarded-Host") == "" && originalHost != "" {
			req.Header.Set("X-Forwarded-Host", originalHost)
		}
	}

	p.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "Error proxying request",
			"details": err.Error(),
		})
	}

	p.FlushInterval = 100 * time.Millisecond

	return func(c echo.Context) error {
		req := c.Request()

		req.Header.Del(permissions.HeaderUserID)
		req.Header.Del(permissions.HeaderUserRole)
		req.Header.Del(permissions.HeaderUserName)

		if principal, ok := middleware.PrincipalFrom(c); ok {
			req.Header.Set(permissions.HeaderUserID, principal.SubjectID)
			req.Header.Set(permissions.HeaderUserRole, principal.Role)
			req.Header.Set(permissions.HeaderUserName, principal.Username)
		}

		p.ServeHTTP(c.Response(), req)
		return nil
	}, nil
}
