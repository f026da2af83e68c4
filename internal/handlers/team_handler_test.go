package handlers

import (
	"net/http"
	"strconv"
	"testing"
	"voidwebsite/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTeams_VersionedEdits(t *testing.T) {
	srv := newTestServer(t)

	var team models.Team
	srv.decode(t, srv.do(t, http.MethodPost, "/api/admin/teams", gin.H{
		"name":    "Void Valorant",
		"game":    "Valorant",
		"players": []gin.H{{"name": "Sam", "gamertag": "void_sam", "role": "Duelist"}},
	}, true), http.StatusCreated, &team)
	require.NotEmpty(t, team.ID)
	require.Len(t, team.Players, 1)
	loaded := team.Version

	srv.decode(t, srv.do(t, http.MethodPost, "/api/admin/teams/"+team.ID+"/players", gin.H{
		"version": loaded,
		"player":  gin.H{"name": "Kai", "gamertag": "void_kai"},
	}, true), http.StatusCreated, &team)
	assert.Len(t, team.Players, 2)
	assert.Greater(t, team.Version, loaded)

	// a second editor still holding the old version is rejected
	w := srv.do(t, http.MethodPut, "/api/admin/teams/"+team.ID, gin.H{"name": "Void VAL", "version": loaded}, true)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "changed by someone else")

	srv.decode(t, srv.do(t, http.MethodPut, "/api/admin/teams/"+team.ID, gin.H{"name": "Void VAL", "game": "Valorant", "version": team.Version}, true), http.StatusOK, &team)
	assert.Equal(t, "Void VAL", team.Name)
	assert.Len(t, team.Players, 2, "team edits keep the roster")

	playerID := team.Players[0].ID
	path := "/api/admin/teams/" + team.ID + "/players/" + playerID
	assert.Equal(t, http.StatusBadRequest, srv.do(t, http.MethodDelete, path, nil, true).Code)
	srv.decode(t, srv.do(t, http.MethodDelete, path+"?version="+strconv.Itoa(team.Version), nil, true), http.StatusOK, &team)
	assert.Len(t, team.Players, 1)

	var public []models.Team
	srv.decode(t, srv.do(t, http.MethodGet, "/api/teams", nil, false), http.StatusOK, &public)
	require.Len(t, public, 1)
	assert.Equal(t, "Void VAL", public[0].Name)

	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodGet, "/api/admin/teams/missing", nil, true).Code)
}

func TestAdminTeams_PlayerUpdateKeepsUnsentFields(t *testing.T) {
	srv := newTestServer(t)

	var team models.Team
	srv.decode(t, srv.do(t, http.MethodPost, "/api/admin/teams", gin.H{"name": "Void Apex"}, true), http.StatusCreated, &team)
	srv.decode(t, srv.do(t, http.MethodPost, "/api/admin/teams/"+team.ID+"/players", gin.H{
		"version": team.Version,
		"player":  gin.H{"name": "Kai", "gamertag": "void_kai", "role": "IGL", "position": 3},
	}, true), http.StatusCreated, &team)
	require.Len(t, team.Players, 1)
	path := "/api/admin/teams/" + team.ID + "/players/" + team.Players[0].ID

	srv.decode(t, srv.do(t, http.MethodPut, path, gin.H{
		"version": team.Version,
		"player":  gin.H{"gamertag": "kai"},
	}, true), http.StatusOK, &team)
	require.Len(t, team.Players, 1)
	kai := team.Players[0]
	assert.Equal(t, "kai", kai.Gamertag)
	assert.Equal(t, "Kai", kai.Name)
	assert.Equal(t, "IGL", kai.Role)
	assert.Equal(t, 3, kai.Position)

	srv.decode(t, srv.do(t, http.MethodPut, path, gin.H{
		"version": team.Version,
		"player":  gin.H{"position": 0, "role": ""},
	}, true), http.StatusOK, &team)
	assert.Equal(t, 0, team.Players[0].Position)
	assert.Empty(t, team.Players[0].Role)

	w := srv.do(t, http.MethodPut, "/api/admin/teams/"+team.ID+"/players/ghost", gin.H{
		"version": team.Version,
		"player":  gin.H{"name": "Ghost"},
	}, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
