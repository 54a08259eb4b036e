package server

import (
	"github.com/gin-gonic/gin"

	"corpusgate/internal/util"
)

func (s *Server) getVersionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version": util.Version,
			"commit":  util.Commit,
		})
	}
}
