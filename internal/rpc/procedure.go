package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Kind distinguishes side-effect-free queries from mutations.
type Kind int

const (
	// KindQuery marks a read-only, safely retryable procedure.
	KindQuery Kind = iota
	// KindMutation marks a write procedure, not assumed idempotent.
	KindMutation
)

func (k Kind) String() string {
	if k == KindMutation {
		return "mutation"
	}
	return "query"
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Call carries the per-call state handed to every handler.
type Call struct {
	// Identity is nil for unauthenticated callers.
	Identity *Identity

	gin *gin.Context
}

// ClientIP reports the caller address.
func (c *Call) ClientIP() string {
	if c.gin == nil {
		return ""
	}
	return c.gin.ClientIP()
}

// SetSessionCookie writes the session cookie. maxAge < 0 clears it; calling
// the clear twice is harmless, which keeps auth.logout idempotent.
func (c *Call) SetSessionCookie(name, value string, maxAge int) {
	if c.gin == nil {
		return
	}
	c.gin.SetCookie(name, value, maxAge, "/", "", false, true)
}

// SessionCookie reads the named cookie, returning "" when absent.
func (c *Call) SessionCookie(name string) string {
	v, err := c.gin.Cookie(name)
	if err != nil {
		return ""
	}
	return v
}

// Procedure is one named, independently invocable unit of the RPC surface.
// The input shape, access level and handler are fixed at construction.
type Procedure struct {
	name   string
	kind   Kind
	access Access
	invoke func(ctx context.Context, call *Call, raw []byte) (any, error)
}

// Name reports the operation name within its namespace.
func (p Procedure) Name() string { return p.name }

// Kind reports whether the procedure is a query or a mutation.
func (p Procedure) Kind() Kind { return p.kind }

// Access reports the access level fixed at registration.
func (p Procedure) Access() Access { return p.access }

// Query declares a read procedure with a typed input and output.
func Query[In any, Out any](name string, access Access, fn func(ctx context.Context, call *Call, in In) (Out, error)) Procedure {
	return newProcedure(name, KindQuery, access, fn)
}

// Mutation declares a write procedure with a typed input and output.
func Mutation[In any, Out any](name string, access Access, fn func(ctx context.Context, call *Call, in In) (Out, error)) Procedure {
	return newProcedure(name, KindMutation, access, fn)
}

func newProcedure[In any, Out any](name string, kind Kind, access Access, fn func(ctx context.Context, call *Call, in In) (Out, error)) Procedure {
	return Procedure{
		name:   name,
		kind:   kind,
		access: access,
		invoke: func(ctx context.Context, call *Call, raw []byte) (any, error) {
			in, err := decodeInput[In](raw)
			if err != nil {
				return nil, err
			}
			// Policy runs after shape validation and always before the
			// handler, so no store access happens for rejected calls.
			if aerr := access.Authorize(call.Identity); aerr != nil {
				return nil, aerr
			}
			return fn(ctx, call, in)
		},
	}
}

// decodeInput unmarshals and validates the raw payload. An absent payload is
// the zero input, so procedures with fully optional shapes accept bare calls.
func decodeInput[In any](raw []byte) (In, *Error) {
	var in In
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		if err := json.Unmarshal(raw, &in); err != nil {
			return in, BadRequest("malformed input payload", nil)
		}
	}
	if err := validate.Struct(&in); err != nil {
		var verrs validator.ValidationErrors
		fields := map[string]string{}
		if ok := asValidationErrors(err, &verrs); ok {
			for _, fe := range verrs {
				fields[fe.Field()] = fmt.Sprintf("failed %q constraint", fe.Tag())
			}
		}
		return in, BadRequest("input validation failed", fields)
	}
	return in, nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}
