package controllers

import (
	"net/http"
	"strings"

	"github.com/hyun090116/vortex-game-explorer/api/responses"
	"github.com/hyun090116/vortex-game-explorer/api/validators"
	checkoutsvc "github.com/hyun090116/vortex-game-explorer/internal/checkout"
	pkgerrors "github.com/hyun090116/vortex-game-explorer/pkg/errors"
	"github.com/hyun090116/vortex-game-explorer/pkg/logger"
)

// CheckoutInitiate freezes the cart into a pending order and hands back the
// widget parameters. Precondition misses come back as 200 outcomes, not
// errors, so the storefront can render them inline.
func CheckoutInitiate(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Initiate(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// PaymentConfirm settles the order after the provider redirect.
func PaymentConfirm(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body checkoutsvc.ConfirmRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Confirm(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type paymentFailResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PaymentFail receives the provider's failure redirect. It logs and echoes
// the provider reason and mutates nothing: the cart and the pending snapshot
// stay intact so the user can retry.
func PaymentFail(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(r.URL.Query().Get("code"))
		message := strings.TrimSpace(r.URL.Query().Get("message"))

		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"provider_code":    code,
				"provider_message": message,
			})
			logg.Warn(ctx, "payment.failed_redirect")
		}

		responses.WriteSuccess(w, paymentFailResponse{Code: code, Message: message})
	}
}
