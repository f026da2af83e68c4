package handlers

import (
	"net/http"
	"strconv"
	"voidwebsite/internal/models"
	"voidwebsite/internal/services"

	"github.com/gin-gonic/gin"
)

// TeamHandler is the admin side of teams. Writes carry the version the
// editor loaded and fail with 409 when it is stale.
type TeamHandler struct {
	teams services.TeamService
}

func NewTeamHandler(teams services.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

type playerRequest struct {
	Version int           `json:"version"`
	Player  models.Player `json:"player" binding:"required"`
}

type playerPatchRequest struct {
	Version int                `json:"version"`
	Player  models.PlayerPatch `json:"player" binding:"required"`
}

func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teams.ListTeams(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, "Failed to load teams")
		return
	}
	c.JSON(http.StatusOK, teams)
}

func (h *TeamHandler) GetTeam(c *gin.Context) {
	team, err := h.teams.GetTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load team")
		return
	}
	c.JSON(http.StatusOK, team)
}

func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var team models.Team
	if err := c.ShouldBindJSON(&team); err != nil {
		badRequest(c)
		return
	}
	if err := h.teams.CreateTeam(c.Request.Context(), &team); err != nil {
		respondError(c, err, "Failed to save team. Please try again.")
		return
	}
	c.JSON(http.StatusCreated, team)
}

func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	var team models.Team
	if err := c.ShouldBindJSON(&team); err != nil {
		badRequest(c)
		return
	}
	team.ID = c.Param("id")
	if err := h.teams.UpdateTeam(c.Request.Context(), &team); err != nil {
		respondError(c, err, "Failed to save team. Please try again.")
		return
	}
	h.respondTeam(c, http.StatusOK, team.ID)
}

func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	if err := h.teams.DeleteTeam(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete team. Please try again.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TeamHandler) BulkDelete(c *gin.Context) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	c.JSON(http.StatusOK, h.teams.BulkDelete(c.Request.Context(), req.IDs))
}

func (h *TeamHandler) AddPlayer(c *gin.Context) {
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	teamID := c.Param("id")
	if _, err := h.teams.AddPlayer(c.Request.Context(), teamID, req.Version, &req.Player); err != nil {
		respondError(c, err, "Failed to add player. Please try again.")
		return
	}
	h.respondTeam(c, http.StatusCreated, teamID)
}

func (h *TeamHandler) UpdatePlayer(c *gin.Context) {
	var req playerPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	teamID := c.Param("id")
	if _, err := h.teams.UpdatePlayer(c.Request.Context(), teamID, req.Version, c.Param("playerId"), req.Player); err != nil {
		respondError(c, err, "Failed to update player. Please try again.")
		return
	}
	h.respondTeam(c, http.StatusOK, teamID)
}

// DeletePlayer reads the version from ?version= since DELETE has no body.
func (h *TeamHandler) DeletePlayer(c *gin.Context) {
	version, err := strconv.Atoi(c.Query("version"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "version is required"})
		return
	}
	teamID := c.Param("id")
	if _, err := h.teams.DeletePlayer(c.Request.Context(), teamID, version, c.Param("playerId")); err != nil {
		respondError(c, err, "Failed to remove player. Please try again.")
		return
	}
	h.respondTeam(c, http.StatusOK, teamID)
}

// respondTeam returns the fresh team so the editor picks up the new version.
func (h *TeamHandler) respondTeam(c *gin.Context, status int, id string) {
	team, err := h.teams.GetTeam(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to load team")
		return
	}
	c.JSON(status, team)
}
