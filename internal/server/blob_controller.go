package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"corpusgate/internal/blob/local"
	"corpusgate/internal/model"
)

// blobHandler returns the grant token resolution handler for the local
// backend. GET /blob/:token
//
// Returns:
//   - 200 with the blob data and detected Content-Type
//   - 404 when the token is unknown, expired, or the blob does not exist
//   - 403 when the grant does not carry read permission
func (s *Server) blobHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")

		grant, err := s.Options.LocalBlobs.Resolve(token)
		if err != nil {
			if errors.Is(err, local.ErrGrantNotFound) {
				jsonError(c, http.StatusNotFound, "grant not found or expired")
				return
			}
			log.Error().Err(err).Msg("blob: failed to resolve grant")
			jsonError(c, http.StatusInternalServerError, "internal error")
			return
		}
		if grant.Permission != model.PermissionRead {
			jsonError(c, http.StatusForbidden, "grant does not permit download")
			return
		}

		if _, err := os.Stat(grant.Path); err != nil {
			jsonError(c, http.StatusNotFound, "blob not found")
			return
		}

		mtype, err := mimetype.DetectFile(grant.Path)
		if err != nil {
			log.Error().Err(err).Str("path", grant.Path).Msg("blob: failed to detect content type")
			jsonError(c, http.StatusInternalServerError, "internal error")
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", grant.Filename))
		c.Header("Content-Type", mtype.String())
		c.File(grant.Path)
	}
}
