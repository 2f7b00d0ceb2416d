package handlers

import (
	"net/http"
	"strings"

	"travelog/internal/domain"
	"travelog/internal/domain/models"
	"travelog/internal/http/middleware"
	"travelog/internal/repositories"
	"travelog/internal/services"
	"travelog/internal/utils"

	"github.com/gin-gonic/gin"
)

type expenseRequest struct {
	Title        string  `json:"title"`
	Amount       int64   `json:"amount"`
	Currency     string  `json:"currency"`
	PayerID      int64   `json:"payer_id"`
	Category     string  `json:"category"`
	SpentAt      string  `json:"spent_at"`
	Participants []int64 `json:"participants"`
}

// validate checks shape and that payer/participants are trip members.
func (r *expenseRequest) validate(c *gin.Context, tripID int64) error {
	r.Title = utils.NormalizeSpace(r.Title)
	if r.Title == "" {
		return domain.ValidationError{Field: "title", Msg: "required"}
	}
	if r.Amount <= 0 {
		return domain.ValidationError{Field: "amount", Msg: "must be positive (minor units)"}
	}
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	if len(r.Currency) != 3 {
		return domain.ValidationError{Field: "currency", Msg: "expected ISO 4217 code"}
	}
	if r.SpentAt != "" {
		if _, err := utils.ParseDate(r.SpentAt); err != nil {
			return domain.ValidationError{Field: "spent_at", Msg: "expected YYYY-MM-DD"}
		}
	}
	if r.PayerID == 0 {
		r.PayerID = middleware.CurrentUserID(c)
	}
	r.Participants = uniqueIDs(r.Participants)

	memberRepo := repositories.MemberRepository{}
	ok, err := memberRepo.IsMember(tripID, r.PayerID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ValidationError{Field: "payer_id", Msg: "not a trip member"}
	}
	for _, uid := range r.Participants {
		ok, err := memberRepo.IsMember(tripID, uid)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ValidationError{Field: "participants", Msg: "contains a non-member"}
		}
	}
	return nil
}

// uniqueIDs drops repeated ids so a participant never carries a double share.
func uniqueIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return ids
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// GET /api/trips/:id/expenses
func GetTripExpenses(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}
	expenses, err := repositories.ExpenseRepository{}.ListByTrip(tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// POST /api/trips/:id/expenses
func CreateTripExpense(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}

	var req expenseRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.validate(c, tripID); err != nil {
		RespondDomainError(c, err)
		return
	}

	e := models.Expense{
		TripID:       tripID,
		Title:        req.Title,
		Amount:       req.Amount,
		Currency:     req.Currency,
		PayerID:      req.PayerID,
		Category:     strings.TrimSpace(req.Category),
		SpentAt:      req.SpentAt,
		Participants: req.Participants,
	}
	id, err := repositories.ExpenseRepository{}.Create(e)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	e.ID = id
	touchTrip(tripID)
	c.JSON(http.StatusCreated, e)
}

// PUT /api/trips/:id/expenses/:expenseId
func UpdateTripExpense(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	expenseID, ok := parseIDParam(c, "expenseId")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}

	existing, err := repositories.ExpenseRepository{}.GetByID(expenseID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if existing.TripID != tripID {
		RespondDomainError(c, domain.NotFoundError{Resource: "expense"})
		return
	}

	var req expenseRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.validate(c, tripID); err != nil {
		RespondDomainError(c, err)
		return
	}

	e := models.Expense{
		ID:           expenseID,
		TripID:       tripID,
		Title:        req.Title,
		Amount:       req.Amount,
		Currency:     req.Currency,
		PayerID:      req.PayerID,
		Category:     strings.TrimSpace(req.Category),
		SpentAt:      req.SpentAt,
		Participants: req.Participants,
	}
	if err := (repositories.ExpenseRepository{}).Update(e); err != nil {
		RespondDomainError(c, err)
		return
	}
	touchTrip(tripID)
	c.JSON(http.StatusOK, e)
}

// DELETE /api/trips/:id/expenses/:expenseId
func DeleteTripExpense(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	expenseID, ok := parseIDParam(c, "expenseId")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}
	if err := (repositories.ExpenseRepository{}).Delete(tripID, expenseID); err != nil {
		RespondDomainError(c, err)
		return
	}
	touchTrip(tripID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/trips/:id/expenses/summary
func GetTripExpenseSummary(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}

	svc := services.SettlementService{RequestID: middleware.GetRequestID(c)}
	balances, err := svc.Balances(tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": balances})
}

// GET /api/trips/:id/expenses/settlement
func GetTripSettlement(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}

	svc := services.SettlementService{RequestID: middleware.GetRequestID(c)}
	balances, transfers, err := svc.Settlement(tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"balances":  balances,
		"transfers": transfers,
	})
}
