package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hyun090116/vortex-game-explorer/api/middleware"
	"github.com/hyun090116/vortex-game-explorer/api/validators"
	pkgerrors "github.com/hyun090116/vortex-game-explorer/pkg/errors"
	"github.com/hyun090116/vortex-game-explorer/pkg/pagination"
)

const maxPageLimit = 100

func requestUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	uid, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return uid, nil
}

func pageParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", 0, 0, maxPageLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{
		Limit:  limit,
		Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
	}, nil
}
