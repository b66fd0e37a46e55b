package rpc

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lumacart/storefront/pkg/logger"
	"github.com/lumacart/storefront/pkg/metrics"
	"github.com/lumacart/storefront/pkg/response"
)

// identityKey is the gin context key under which the session middleware
// stores the resolved caller.
const identityKey = "rpc.identity"

// SetIdentity attaches the resolved caller to the request. Called by the
// session middleware before the router runs.
func SetIdentity(c *gin.Context, id *Identity) {
	if id != nil {
		c.Set(identityKey, id)
	}
}

// IdentityFrom returns the resolved caller, or nil for anonymous requests.
func IdentityFrom(c *gin.Context) *Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*Identity)
	return id
}

// Router is the single addressable surface mapping dotted procedure paths
// ("products.list") to their definitions.
type Router struct {
	procedures map[string]Procedure
	metrics    *metrics.Metrics
}

// NewRouter creates an empty procedure tree.
func NewRouter() *Router {
	return &Router{procedures: make(map[string]Procedure)}
}

// WithMetrics records per-procedure call counters on the given collector set.
func (r *Router) WithMetrics(m *metrics.Metrics) *Router {
	r.metrics = m
	return r
}

// Namespace registers procedures under a dotted prefix. Duplicate paths are a
// programming error and panic at startup.
func (r *Router) Namespace(name string, procs ...Procedure) {
	for _, p := range procs {
		path := name + "." + p.Name()
		if _, exists := r.procedures[path]; exists {
			panic(fmt.Sprintf("rpc: duplicate procedure %q", path))
		}
		r.procedures[path] = p
	}
}

// Lookup resolves a dotted path.
func (r *Router) Lookup(path string) (Procedure, bool) {
	p, ok := r.procedures[path]
	return p, ok
}

// Paths lists every registered procedure path, sorted.
func (r *Router) Paths() []string {
	paths := make([]string, 0, len(r.procedures))
	for p := range r.procedures {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Mount attaches the procedure tree under /api/rpc/<path>. Queries accept GET
// with an "input" query parameter; mutations require POST with a JSON body.
// POST is also accepted for queries so simple clients can use one verb.
func (r *Router) Mount(engine *gin.Engine) {
	engine.GET("/api/rpc/*path", r.handle)
	engine.POST("/api/rpc/*path", r.handle)
}

func (r *Router) handle(c *gin.Context) {
	path := strings.Trim(c.Param("path"), "/")
	start := time.Now()

	proc, ok := r.Lookup(path)
	if !ok {
		r.finish(c, path, start, NotFound(fmt.Sprintf("unknown procedure %q", path)))
		return
	}
	if proc.Kind() == KindMutation && c.Request.Method != http.MethodPost {
		r.finish(c, path, start, BadRequest("mutations must be called with POST", nil))
		return
	}

	var raw []byte
	if c.Request.Method == http.MethodGet {
		raw = []byte(c.Query("input"))
	} else {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			r.finish(c, path, start, BadRequest("unreadable request body", nil))
			return
		}
		raw = body
	}

	call := &Call{Identity: IdentityFrom(c), gin: c}
	out, err := proc.invoke(c.Request.Context(), call, raw)
	if err != nil {
		r.finish(c, path, start, AsError(err))
		return
	}

	r.observe(path, "ok", start)
	response.Success(c, out)
}

func (r *Router) finish(c *gin.Context, path string, start time.Time, err *Error) {
	if err.Code == CodeInternal {
		logger.Error(c.Request.Context(), "procedure failed", "procedure", path, "error", err)
	}
	r.observe(path, string(err.Code), start)

	if err.Code == CodeBadRequest && len(err.Fields) > 0 {
		response.ValidationError(c, err.Message, err.Fields)
		return
	}
	response.Error(c, err.Code.HTTPStatus(), string(err.Code), err.Message)
}

func (r *Router) observe(path, outcome string, start time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.RPCCallsTotal.WithLabelValues(path, outcome).Inc()
	r.metrics.RPCCallDuration.Observe(time.Since(start).Seconds())
}
