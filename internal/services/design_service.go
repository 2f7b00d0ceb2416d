package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"travelog/internal/domain"
	"travelog/internal/domain/models"
	"travelog/internal/repositories"
	"travelog/internal/utils"
)

// DesignService exports a diary outline to the configured design platform.
// It owns OAuth token refresh: expired access tokens are refreshed with the
// stored refresh token and the rotated pair is persisted.
type DesignService struct {
	Tokens       repositories.DesignTokenRepository
	HTTP         *http.Client
	BaseURL      string
	ClientID     string
	ClientSecret string
	RequestID    string
	Now          func() time.Time
}

// DesignExport is the platform's response for a created design.
type DesignExport struct {
	DesignID string `json:"design_id"`
	EditURL  string `json:"edit_url"`
}

// Refresh the access token this long before its actual expiry.
const tokenExpirySlack = 60 * time.Second

func (s DesignService) Enabled() bool {
	return strings.TrimSpace(s.BaseURL) != ""
}

func (s DesignService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s DesignService) client() *http.Client {
	if s.HTTP != nil {
		return s.HTTP
	}
	return &http.Client{Timeout: 15 * time.Second}
}

// ExportDiary creates a design from the diary view on behalf of the user.
func (s DesignService) ExportDiary(userID int64, view DiaryView) (DesignExport, error) {
	var out DesignExport

	token, err := s.accessToken(userID)
	if err != nil {
		return out, err
	}

	payload := map[string]any{
		"title": view.Trip.Title,
		"pages": designPages(view),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}

	req, err := http.NewRequest(http.MethodPost, strings.TrimRight(s.BaseURL, "/")+"/v1/designs", bytes.NewReader(body))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client().Do(req)
	if err != nil {
		return out, domain.InternalError{Msg: "design platform unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return out, domain.ValidationError{Msg: "design platform rejected credentials; reconnect your account"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, domain.InternalError{Msg: fmt.Sprintf("design platform returned %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, domain.InternalError{Msg: "invalid design platform response", Err: err}
	}

	utils.LogEvent(s.RequestID, "design", "export", fmt.Sprintf("user_id=%d trip_id=%d design_id=%s", userID, view.Trip.ID, out.DesignID))
	return out, nil
}

// accessToken returns a valid access token for the user, refreshing first
// when the stored one is expired or close to it.
func (s DesignService) accessToken(userID int64) (string, error) {
	token, err := s.Tokens.Get(userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.ValidationError{Msg: "design platform account not connected"}
		}
		return "", err
	}

	expiry := time.Unix(token.ExpiresAt, 0)
	if s.now().Add(tokenExpirySlack).Before(expiry) {
		return token.AccessToken, nil
	}

	refreshed, err := s.refresh(token)
	if err != nil {
		return "", err
	}
	if err := s.Tokens.Save(refreshed); err != nil {
		return "", err
	}
	utils.LogEvent(s.RequestID, "design", "token_refresh", fmt.Sprintf("user_id=%d", userID))
	return refreshed.AccessToken, nil
}

func (s DesignService) refresh(token models.DesignToken) (models.DesignToken, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {token.RefreshToken},
		"client_id":     {s.ClientID},
		"client_secret": {s.ClientSecret},
	}

	resp, err := s.client().PostForm(strings.TrimRight(s.BaseURL, "/")+"/v1/oauth/token", form)
	if err != nil {
		return token, domain.InternalError{Msg: "design platform unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return token, domain.ValidationError{Msg: "refresh token rejected; reconnect your account"}
	}

	var grant struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return token, domain.InternalError{Msg: "invalid token response", Err: err}
	}
	if grant.AccessToken == "" {
		return token, domain.InternalError{Msg: "token response missing access_token"}
	}

	out := token
	out.AccessToken = grant.AccessToken
	if grant.RefreshToken != "" {
		out.RefreshToken = grant.RefreshToken
	}
	out.ExpiresAt = s.now().Add(time.Duration(grant.ExpiresIn) * time.Second).Unix()
	return out, nil
}

// designPages flattens the diary into one page per step plus a cover.
func designPages(view DiaryView) []map[string]any {
	pages := []map[string]any{
		{
			"kind":     "cover",
			"title":    view.Trip.Title,
			"subtitle": fmt.Sprintf("%s - %s", view.Trip.StartDate, view.Trip.EndDate),
			"cover":    view.Trip.CoverPhotoURL,
		},
	}

	photosByStep := map[int64][]string{}
	for _, p := range view.Photos {
		if p.StepID != nil {
			photosByStep[*p.StepID] = append(photosByStep[*p.StepID], p.URL)
		}
	}

	for _, st := range view.Steps {
		pages = append(pages, map[string]any{
			"kind":     "step",
			"title":    st.Name,
			"location": st.Location,
			"lat":      st.Lat,
			"lng":      st.Lng,
			"date":     st.ArrivedAt,
			"notes":    st.Notes,
			"photos":   photosByStep[st.ID],
		})
	}
	return pages
}
