package services

import (
	"bytes"
	"fmt"
	"strings"

	"travelog/internal/domain/models"
	"travelog/internal/repositories"
	"travelog/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DiaryService renders a trip's diary: a PDF for download and a structured
// view for share links and the design-platform export.
type DiaryService struct {
	TripRepo    repositories.TripRepository
	StepRepo    repositories.StepRepository
	PhotoRepo   repositories.PhotoRepository
	ExpenseRepo repositories.ExpenseRepository
	MemberRepo  repositories.MemberRepository
	RouteRepo   repositories.RouteRepository
	Cache       *DiaryCache
	RequestID   string
	Loader      func(int64) (DiaryView, error)
}

// DiaryView is the assembled diary content.
type DiaryView struct {
	Trip       models.Trip         `json:"trip"`
	Members    []models.TripMember `json:"members"`
	Steps      []models.Step       `json:"steps"`
	Photos     []models.Photo      `json:"photos"`
	Expenses   []models.Expense    `json:"expenses"`
	Balances   []models.Balance    `json:"balances"`
	DistanceKm float64             `json:"distance_km"`
}

// GeneratePDF renders the trip diary, serving from cache when warm.
func (s DiaryService) GeneratePDF(tripID int64) ([]byte, string, error) {
	if s.Cache != nil {
		if data, filename, ok := s.Cache.Get(tripID); ok {
			utils.LogEvent(s.RequestID, "diary", "pdf_cache_hit", fmt.Sprintf("trip_id=%d", tripID))
			return data, filename, nil
		}
	}

	view, err := s.View(tripID)
	if err != nil {
		return nil, "", err
	}

	data, filename, err := buildDiaryPDF(view)
	if err != nil {
		return nil, "", err
	}
	if s.Cache != nil {
		s.Cache.Put(tripID, data, filename)
	}
	utils.LogEvent(s.RequestID, "diary", "pdf_rendered", fmt.Sprintf("trip_id=%d bytes=%d", tripID, len(data)))
	return data, filename, nil
}

// View loads the full diary content for a trip.
func (s DiaryService) View(tripID int64) (DiaryView, error) {
	if s.Loader != nil {
		return s.Loader(tripID)
	}

	var out DiaryView
	trip, err := s.TripRepo.GetByID(tripID)
	if err != nil {
		return out, err
	}
	out.Trip = trip

	if out.Members, err = s.MemberRepo.ListByTrip(tripID); err != nil {
		return out, err
	}
	if out.Steps, err = s.StepRepo.ListByTrip(tripID); err != nil {
		return out, err
	}
	if out.Photos, err = s.PhotoRepo.ListByTrip(tripID); err != nil {
		return out, err
	}
	if out.Expenses, err = s.ExpenseRepo.ListByTrip(tripID); err != nil {
		return out, err
	}

	memberIDs := make([]int64, 0, len(out.Members))
	for _, m := range out.Members {
		memberIDs = append(memberIDs, m.UserID)
	}
	out.Balances = ComputeBalances(out.Expenses, memberIDs)

	points, err := s.RouteRepo.ListByTrip(tripID)
	if err != nil {
		return out, err
	}
	lats := make([]float64, len(points))
	lngs := make([]float64, len(points))
	for i, p := range points {
		lats[i] = p.Lat
		lngs[i] = p.Lng
	}
	out.DistanceKm = utils.PathDistanceKm(lats, lngs)

	return out, nil
}

func buildDiaryPDF(v DiaryView) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(v.Trip.Title, false)

	// Cover page
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 24)
	pdf.Ln(40)
	pdf.MultiCell(0, 12, safe(v.Trip.Title, "Untitled Trip"), "", "C", false)
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 13)
	pdf.MultiCell(0, 8, fmt.Sprintf("%s - %s", dateOnly(v.Trip.StartDate), dateOnly(v.Trip.EndDate)), "", "C", false)
	if strings.TrimSpace(v.Trip.Description) != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, v.Trip.Description, "", "C", false)
	}
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("%d steps  |  %d photos  |  %.1f km travelled", len(v.Steps), len(v.Photos), v.DistanceKm), "", "C", false)

	// Steps timeline
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Journey")
	pdf.Ln(12)
	if len(v.Steps) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 7, "No steps recorded yet.")
		pdf.Ln(7)
	}
	for i, st := range v.Steps {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("%d. %s", i+1, safe(st.Name, "-")))
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 11)
		where := safe(st.Location, fmt.Sprintf("%.5f, %.5f", st.Lat, st.Lng))
		when := dateOnly(st.ArrivedAt)
		if st.DepartedAt != nil {
			when += " - " + dateOnly(*st.DepartedAt)
		}
		pdf.Cell(0, 6, fmt.Sprintf("   %s  (%s)", where, when))
		pdf.Ln(6)
		if strings.TrimSpace(st.Notes) != "" {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(0, 5, "   "+st.Notes, "", "", false)
		}
		pdf.Ln(3)
	}

	// Photo index
	if len(v.Photos) > 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.Cell(0, 10, "Photos")
		pdf.Ln(12)
		pdf.SetFont("Helvetica", "", 10)
		for _, p := range v.Photos {
			line := p.URL
			if strings.TrimSpace(p.Caption) != "" {
				line = p.Caption + " - " + p.URL
			}
			pdf.MultiCell(0, 5, line, "", "", false)
			pdf.Ln(1)
		}
	}

	// Expense summary
	if len(v.Expenses) > 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.Cell(0, 10, "Expenses")
		pdf.Ln(12)

		pdf.SetFont("Helvetica", "", 11)
		var total int64
		currency := ""
		for _, e := range v.Expenses {
			if currency == "" {
				currency = e.Currency
			}
			total += e.Amount
			pdf.Cell(0, 6, fmt.Sprintf("%s  %s  (%s)", dateOnly(e.SpentAt), safe(e.Title, "-"), utils.FormatAmount(e.Amount, e.Currency)))
			pdf.Ln(6)
		}
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Total: "+utils.FormatAmount(total, currency))
		pdf.Ln(10)

		if len(v.Balances) > 0 {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.Cell(0, 7, "Balances")
			pdf.Ln(8)
			pdf.SetFont("Helvetica", "", 10)
			names := memberNames(v.Members)
			for _, b := range v.Balances {
				pdf.Cell(0, 5, fmt.Sprintf("%s: paid %s, owes %s, net %s",
					safe(names[b.UserID], fmt.Sprintf("user %d", b.UserID)),
					utils.FormatAmount(b.Paid, currency),
					utils.FormatAmount(b.Owed, currency),
					utils.FormatAmount(b.Net, currency),
				))
				pdf.Ln(5)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("DIARY_%d_%s.pdf", v.Trip.ID, utils.SafeFilenamePart(v.Trip.Title))
	return buf.Bytes(), filename, nil
}

func memberNames(members []models.TripMember) map[int64]string {
	out := make(map[int64]string, len(members))
	for _, m := range members {
		out[m.UserID] = m.Name
	}
	return out
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func dateOnly(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}
