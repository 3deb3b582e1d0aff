// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickpoll/cliparse"
	"github.com/danielhkuo/quickpoll/middleware"
)

type IdentityHandler struct {
	cfg cliparse.Config
}

func NewIdentityHandler(cfg cliparse.Config) *IdentityHandler {
	return &IdentityHandler{cfg: cfg}
}

// GetIdentity handles GET /identity
// Resolves the X-Identity-Token header into the identity it carries
func (h *IdentityHandler) GetIdentity(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.RequireIdentity(r, h.cfg.IdentitySalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid identity token required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, identity)
}
