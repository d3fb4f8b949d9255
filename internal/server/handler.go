package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// All feed handlers answer 200 with a playlist result. Upstream trouble shows
// up as fewer or zero tracks, never as an HTTP error status; a total outage
// and "no results" are indistinguishable to the client.

func (s *Server) leftPlaylist(c *gin.Context) {
	c.JSON(http.StatusOK, s.playlists.LeftDefault(c.Request.Context()))
}

func (s *Server) leftPlaylistTag(c *gin.Context) {
	tag := c.DefaultQuery("tag", "all")
	c.JSON(http.StatusOK, s.playlists.LeftTag(c.Request.Context(), tag))
}

func (s *Server) leftSearch(c *gin.Context) {
	c.JSON(http.StatusOK, s.playlists.Search(c.Request.Context(), c.Query("q")))
}

func (s *Server) rightPlaylist(c *gin.Context) {
	c.JSON(http.StatusOK, s.playlists.RightDefault(c.Request.Context()))
}

func (s *Server) rightPlaylistTag(c *gin.Context) {
	tag := c.DefaultQuery("tag", "all")
	c.JSON(http.StatusOK, s.playlists.RightTag(c.Request.Context(), tag))
}
