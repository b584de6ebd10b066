package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func installRoutes(e *gin.Engine) {
	e.Handle("GET", "/", redirectToV1Handler)

	v1 := e.Group("/v1")
	{
		v1.Handle("GET", "/", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"Presets": presetNames()}) })

		hooks := v1.Group("/setup", Authenticate)
		{
			hooks.Handle("POST", "", postSetupHandler)
			hooks.Handle("POST", "/me", postSetupSelfHandler)
		}
	}
}

func redirectToV1Handler(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, "/v1")
}
