package rpc

import (
	"context"

	"github.com/lumacart/storefront/internal/identity/application"
	"github.com/lumacart/storefront/internal/identity/domain"
	"github.com/lumacart/storefront/internal/rpc"
)

type emptyInput struct{}

// Register mounts the auth namespace.
func Register(r *rpc.Router, svc *application.Service, cookieName string) {
	r.Namespace("auth",
		rpc.Query("me", rpc.Public, func(ctx context.Context, call *rpc.Call, _ emptyInput) (*domain.User, error) {
			// Anonymous callers get null, not an error, so the client can
			// probe login state without special-casing a 401.
			if call.Identity == nil {
				return nil, nil
			}
			user, err := svc.GetUser(ctx, call.Identity.ID)
			if err != nil {
				return nil, rpc.Internal(err)
			}
			return user, nil
		}),
		rpc.Mutation("logout", rpc.Protected, func(ctx context.Context, call *rpc.Call, _ emptyInput) (bool, error) {
			call.SetSessionCookie(cookieName, "", -1)
			return true, nil
		}),
	)
}
