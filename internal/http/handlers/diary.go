package handlers

import (
	"net/http"
	"time"

	"travelog/internal/domain/models"
	"travelog/internal/http/middleware"
	"travelog/internal/repositories"
	"travelog/internal/services"

	"github.com/gin-gonic/gin"
)

func diaryService(c *gin.Context) services.DiaryService {
	return services.DiaryService{
		Cache:     diaryCache,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/trips/:id/diary.pdf
func GetTripDiaryPDF(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}

	data, filename, err := diaryService(c).GeneratePDF(tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

type connectDesignRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// POST /api/design/connect
// Stores the OAuth token pair the frontend obtained from the design
// platform's consent flow.
func ConnectDesignAccount(c *gin.Context) {
	var req connectDesignRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.AccessToken == "" || req.RefreshToken == "" {
		RespondError(c, http.StatusBadRequest, "access_token and refresh_token required", nil)
		return
	}

	err := repositories.DesignTokenRepository{}.Save(models.DesignToken{
		UserID:       middleware.CurrentUserID(c),
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(req.ExpiresIn) * time.Second).Unix(),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// POST /api/trips/:id/diary/design
// Exports the diary to the design platform.
func ExportTripDesign(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}

	svc := services.DesignService{
		BaseURL:      appEnv.DesignBaseURL,
		ClientID:     appEnv.DesignClientID,
		ClientSecret: appEnv.DesignClientSecret,
		RequestID:    middleware.GetRequestID(c),
	}
	if !svc.Enabled() {
		RespondError(c, http.StatusServiceUnavailable, "design platform integration not configured", nil)
		return
	}

	view, err := diaryService(c).View(tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	export, err := svc.ExportDiary(middleware.CurrentUserID(c), view)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, export)
}
