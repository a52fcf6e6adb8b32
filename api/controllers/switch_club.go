package controllers

import (
	"net/http"

	"github.com/pitchpartner/pitchpartner-backend/api/responses"
	"github.com/pitchpartner/pitchpartner-backend/api/validators"
	"github.com/pitchpartner/pitchpartner-backend/internal/auth"
	pkgAuth "github.com/pitchpartner/pitchpartner-backend/pkg/auth"
	"github.com/pitchpartner/pitchpartner-backend/pkg/config"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
	"github.com/pitchpartner/pitchpartner-backend/pkg/logger"
)

// SwitchClub re-scopes the session to another club the user belongs to.
func SwitchClub(svc auth.SwitchClubService, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "switch club service unavailable"))
			return
		}

		var body auth.SwitchClubRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := parseBearerToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		claims, err := pkgAuth.ParseAccessToken(cfg, token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
			return
		}

		result, err := svc.Switch(r.Context(), auth.SwitchClubInput{
			UserID:        claims.UserID,
			ClubID:        body.ClubID,
			AccessTokenID: claims.ID,
			RefreshToken:  body.RefreshToken,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("X-PP-Token", result.AccessToken)
		responses.WriteSuccess(w, result)
	}
}
