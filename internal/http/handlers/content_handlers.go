package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/visa-photo/internal/i18n"
	"github.com/phambaophuc/visa-photo/internal/models"
)

type ContentHandler struct{}

func NewContentHandler() *ContentHandler {
	return &ContentHandler{}
}

func (h *ContentHandler) Translations(c *gin.Context) {
	lang, ok := i18n.Parse(c.Param("lang"))
	if !ok {
		respondError(c, http.StatusNotFound, "Unsupported language: "+c.Param("lang"))
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data: gin.H{
			"language":  lang,
			"languages": i18n.Languages(),
			"messages":  i18n.Catalog(lang),
		},
	})
}

// Requirements picks the language from ?lang= first, then Accept-Language.
func (h *ContentHandler) Requirements(c *gin.Context) {
	lang := i18n.Match(c.Query("lang"), c.GetHeader("Accept-Language"))
	c.Header("Content-Language", string(lang))

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    i18n.RequirementsFor(lang),
	})
}
