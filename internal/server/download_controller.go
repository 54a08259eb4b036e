package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"corpusgate/internal/model"
)

const downloadOperation = "download"

// downloadHandler returns the signed download URL handler.
// GET /api/v1/download?container=<name>&filename=<name>
//
// Returns:
//   - 302 with Location set to a read-only signed URL for the blob,
//     valid for the configured TTL, scoped to the corpus storage class
//   - 400 with an INVALID_REQUEST body when container is missing/invalid
//     or filename is missing
//   - 500 when the blob locator fails
func (s *Server) downloadHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		container, err := model.ValidateContainerName(c.Query("container"))
		if err != nil {
			invalidRequest(c, downloadOperation, "'container' query parameter must be provided and valid")
			return
		}

		filename := c.Query("filename")
		if filename == "" {
			invalidRequest(c, downloadOperation, "'filename' query parameter must be provided")
			return
		}

		url, err := s.Locator.SignedURL(c.Request.Context(), model.SignedURLRequest{
			Class:      model.StorageClassCorpus,
			Container:  container,
			Filename:   filename,
			Permission: model.PermissionRead,
			TTL:        s.Options.SignedURLTTL,
		})
		if err != nil {
			log.Error().Err(err).
				Str("container", string(container)).
				Str("filename", filename).
				Msg("download: failed to mint signed URL")
			jsonError(c, http.StatusInternalServerError, "internal error")
			return
		}

		c.Redirect(http.StatusFound, url)
	}
}
