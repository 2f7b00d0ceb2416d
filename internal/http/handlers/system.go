package handlers

import (
	"net/http"

	intconfig "travelog/internal/config"
	intdb "travelog/internal/db"

	"github.com/gin-gonic/gin"
)

var expectedTables = []string{
	"users", "trips", "trip_members", "steps", "route_points",
	"expenses", "expense_participants", "photos", "share_links", "design_tokens",
}

// Columns added by later migrations; older schemas may lack them.
var expectedColumns = [][2]string{
	{"steps", "departed_at"},
	{"photos", "step_id"},
	{"expenses", "currency"},
	{"design_tokens", "refresh_token"},
}

// GET /api/health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/db-check
func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(appEnv); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "database unreachable", err)
		return
	}

	missingTables := []string{}
	for _, t := range expectedTables {
		if !intdb.HasTable(intconfig.DB, t) {
			missingTables = append(missingTables, t)
		}
	}

	missingColumns := []string{}
	for _, tc := range expectedColumns {
		if !intdb.HasColumn(intconfig.DB, tc[0], tc[1]) {
			missingColumns = append(missingColumns, tc[0]+"."+tc[1])
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"missing_tables":  missingTables,
		"missing_columns": missingColumns,
	})
}
