package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListParties returns the configured party definitions.
func (h *BattleHandler) ListParties(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"parties": h.battles.Parties()})
}

// ListEncounters returns the configured encounter sequence in stage order.
func (h *BattleHandler) ListEncounters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"encounters": h.battles.Encounters()})
}

// ListSkills returns the engine's skill definitions, including effects,
// resolution times and default AI rules.
func (h *BattleHandler) ListSkills(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"skills": h.battles.Skills()})
}
