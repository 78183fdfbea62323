package middleware

import "github.com/gin-gonic/gin"

// NoCache disables client and proxy caching of the aggregated responses.
// Applied to every API response, including errors.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}
