package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// exportData returns every stored key as one document.
// GET /api/export. Served as an attachment named after the export date.
func (h *Handler) exportData(c *gin.Context) {
	doc, err := exportAll(c, h.store, h.now())
	if err != nil {
		internalError(c, "failed to export data", err)
		return
	}
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="nutriai-export-%s.json"`, doc.ExportDate.Format(dateLayout)))
	c.JSON(http.StatusOK, doc)
}

// importData writes each section present in the body, replacing what is stored.
// POST /api/import. Sections that are absent or null are left untouched.
// Returns { imported: [keys written] }.
func (h *Handler) importData(c *gin.Context) {
	var doc exportDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if doc.Profile != nil {
		if msg := validateProfile(*doc.Profile); msg != "" {
			apiError(c, http.StatusBadRequest, "invalid profile: "+msg)
			return
		}
	}

	written, err := importAll(c, h.store, doc)
	if err != nil {
		internalError(c, "failed to import data", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": written})
}
