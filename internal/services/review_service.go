package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/faruqeclypst/FLASH-MOSA/internal/config"
	"github.com/faruqeclypst/FLASH-MOSA/internal/models"
	"github.com/faruqeclypst/FLASH-MOSA/internal/repositories"
	"github.com/faruqeclypst/FLASH-MOSA/internal/utils"

	"github.com/sirupsen/logrus"
)

// ReviewPageSize is the fixed page size of the admin registration table.
const ReviewPageSize = 5

type ReviewService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewReviewService(repo *repositories.Repository, cfg *config.Config) *ReviewService {
	return &ReviewService{repo: repo, cfg: cfg}
}

// ReviewFilter narrows the registration collection. Empty or "all" means
// the dimension is not filtered.
type ReviewFilter struct {
	Status      string
	Competition string
	Category    string
	Search      string
	DateFrom    string // YYYY-MM-DD, inclusive
	DateTo      string // YYYY-MM-DD, inclusive
}

type SortField string

const (
	SortByCode        SortField = "registrationCode"
	SortByDate        SortField = "registrationDate"
	SortByName        SortField = "name"
	SortByCategory    SortField = "schoolCategory"
	SortBySchool      SortField = "school"
	SortByCompetition SortField = "competition"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
	SortNone SortDirection = "none"
)

// FormatDate renders a registration date the way the admin table and the
// approval notice show it.
func FormatDate(t time.Time) string {
	return t.Format("2 January 2006")
}

func matchesAll(value, filter string) bool {
	return filter == "" || strings.EqualFold(filter, "all") || strings.EqualFold(value, filter)
}

// FilterRegistrations applies status, competition, category, free-text and
// date-range filters. It is a pure function over the snapshot.
func FilterRegistrations(regs []models.Registration, f ReviewFilter) []models.Registration {
	out := make([]models.Registration, 0, len(regs))
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	for _, reg := range regs {
		if !matchesAll(string(reg.Status), f.Status) {
			continue
		}
		if !matchesAll(reg.Competition, f.Competition) {
			continue
		}
		if !matchesAll(string(reg.SchoolCategory), f.Category) {
			continue
		}
		if needle != "" && !matchesSearch(&reg, needle) {
			continue
		}
		if !withinDateRange(reg.RegistrationDate, f.DateFrom, f.DateTo) {
			continue
		}
		out = append(out, reg)
	}
	return out
}

func matchesSearch(reg *models.Registration, needle string) bool {
	haystacks := []string{
		reg.Name,
		reg.TeamName,
		reg.RegistrantName,
		reg.School,
		string(reg.SchoolCategory),
		reg.Competition,
		FormatDate(reg.RegistrationDate),
		string(reg.Status),
		reg.RegistrationCode,
	}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func withinDateRange(t time.Time, from, to string) bool {
	day := t.Format("2006-01-02")
	if from != "" && day < from {
		return false
	}
	if to != "" && day > to {
		return false
	}
	return true
}

func sortKey(reg *models.Registration, field SortField) string {
	switch field {
	case SortByCode:
		return reg.RegistrationCode
	case SortByDate:
		// ISO form compares correctly as a string
		return reg.RegistrationDate.UTC().Format(time.RFC3339)
	case SortByName:
		return reg.DisplayName()
	case SortByCategory:
		return string(reg.SchoolCategory)
	case SortBySchool:
		return reg.School
	case SortByCompetition:
		return reg.Competition
	}
	return ""
}

// SortRegistrations orders a copy of the slice by the chosen field.
// SortNone returns the input order untouched, which is what the third click
// of the tri-state sort cycle maps to.
func SortRegistrations(regs []models.Registration, field SortField, dir SortDirection) []models.Registration {
	out := make([]models.Registration, len(regs))
	copy(out, regs)

	if dir == SortNone || dir == "" || field == "" {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := sortKey(&out[i], field), sortKey(&out[j], field)
		if dir == SortDesc {
			return a > b
		}
		return a < b
	})
	return out
}

// Paginate slices one page out of the filtered set. Pages are 1-based and
// out-of-range pages clamp to the last page.
func Paginate(regs []models.Registration, page, pageSize int) ([]models.Registration, int) {
	if pageSize <= 0 {
		pageSize = ReviewPageSize
	}
	totalPages := (len(regs) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page <= 0 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(regs) {
		start = len(regs)
	}
	if end > len(regs) {
		end = len(regs)
	}
	return regs[start:end], totalPages
}

type ReviewPage struct {
	Registrations []models.Registration `json:"registrations"`
	Total         int                   `json:"total"`
	Page          int                   `json:"page"`
	PageSize      int                   `json:"page_size"`
	TotalPages    int                   `json:"total_pages"`
}

// ListRegistrations runs the full pipeline: filter, sort, paginate.
func (s *ReviewService) ListRegistrations(filter ReviewFilter, field SortField, dir SortDirection, page int) (*ReviewPage, error) {
	all, err := s.repo.RegistrationRepo.ListAll()
	if err != nil {
		return nil, err
	}

	filtered := FilterRegistrations(all, filter)
	sorted := SortRegistrations(filtered, field, dir)
	pageRegs, totalPages := Paginate(sorted, page, ReviewPageSize)

	if page <= 0 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return &ReviewPage{
		Registrations: pageRegs,
		Total:         len(filtered),
		Page:          page,
		PageSize:      ReviewPageSize,
		TotalPages:    totalPages,
	}, nil
}

// ChangeStatus persists a direct transition to pending or rejected. The
// status graph is fully connected, so the only checks are that the target
// is a known status and that approval goes through the two-phase flow.
func (s *ReviewService) ChangeStatus(id string, newStatus models.Status) (*models.Registration, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("invalid status: %s", newStatus)
	}
	if newStatus == models.StatusApproved {
		return nil, fmt.Errorf("approval requires notification confirmation")
	}

	if err := s.repo.RegistrationRepo.UpdateStatus(id, newStatus); err != nil {
		return nil, err
	}
	return s.repo.RegistrationRepo.GetByID(id)
}

// ApprovalNotice is the prepared WhatsApp notification for an approval.
// Nothing is persisted when it is built; the admin reviews the message and
// either confirms or cancels.
type ApprovalNotice struct {
	RegistrationID string        `json:"registration_id"`
	Code           string        `json:"code"`
	Name           string        `json:"name"`
	Competition    string        `json:"competition"`
	Date           string        `json:"date"`
	Message        string        `json:"message"`
	WhatsAppLink   string        `json:"whatsapp_link"`
	PriorStatus    models.Status `json:"prior_status"`
}

// BeginApproval builds the notification for a registration without touching
// its status. Approval is only persisted on explicit confirmation, so a
// cancelled approval leaves the prior status in place.
func (s *ReviewService) BeginApproval(id string) (*ApprovalNotice, error) {
	reg, err := s.repo.RegistrationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	name := reg.DisplayName()
	date := FormatDate(reg.RegistrationDate)
	message := fmt.Sprintf(
		"Halo %s! Pendaftaran kamu untuk lomba %s telah DISETUJUI. Kode registrasi: %s (terdaftar %s). Sampai jumpa di FLASH!",
		name, reg.Competition, reg.RegistrationCode, date,
	)

	return &ApprovalNotice{
		RegistrationID: reg.ID.String(),
		Code:           reg.RegistrationCode,
		Name:           name,
		Competition:    reg.Competition,
		Date:           date,
		Message:        message,
		WhatsAppLink:   utils.WhatsAppLink(reg.WhatsApp, message),
		PriorStatus:    reg.Status,
	}, nil
}

// ConfirmApproval completes the two-phase approval. Confirmed approvals are
// persisted and get an entry-pass QR; a cancel is a no-op that keeps the
// registration in whatever status it already had.
func (s *ReviewService) ConfirmApproval(id string, confirmed bool) (*models.Registration, error) {
	reg, err := s.repo.RegistrationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !confirmed {
		logrus.WithField("code", reg.RegistrationCode).Info("approval cancelled, status unchanged")
		return reg, nil
	}

	if err := s.repo.RegistrationRepo.UpdateStatus(id, models.StatusApproved); err != nil {
		return nil, err
	}

	if reg.QRPath == "" {
		filename, err := utils.GenerateEntryPassQR(reg.RegistrationCode, s.cfg.QRDir)
		if err != nil {
			// The approval stands; the pass can be regenerated later.
			logrus.WithError(err).Warn("failed to generate entry pass")
		} else {
			qrPath := "/qrcodes/" + filename
			if err := s.repo.RegistrationRepo.UpdateQRPath(id, qrPath); err != nil {
				logrus.WithError(err).Warn("failed to store entry pass path")
			}
		}
	}

	return s.repo.RegistrationRepo.GetByID(id)
}

// DeleteRegistration removes a single record.
func (s *ReviewService) DeleteRegistration(id string) error {
	return s.repo.RegistrationRepo.Delete(id)
}

// BulkDelete removes every registration in the collection and reports which
// deletes succeeded. It deliberately has no all-or-nothing semantics.
func (s *ReviewService) BulkDelete() (*repositories.BulkDeleteReport, error) {
	all, err := s.repo.RegistrationRepo.ListAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(all))
	for _, reg := range all {
		ids = append(ids, reg.ID.String())
	}

	report, err := s.repo.RegistrationRepo.DeleteAll(ids)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"deleted": len(report.Deleted),
		"failed":  len(report.Failed),
	}).Info("bulk delete completed")

	return report, nil
}

type DashboardStats struct {
	Total    int64 `json:"totalRegistrations"`
	Pending  int64 `json:"pendingRegistrations"`
	Approved int64 `json:"approvedRegistrations"`
	Rejected int64 `json:"rejectedRegistrations"`
}

func (s *ReviewService) Stats() (*DashboardStats, error) {
	counts, err := s.repo.RegistrationRepo.CountByStatus()
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Pending:  counts[models.StatusPending],
		Approved: counts[models.StatusApproved],
		Rejected: counts[models.StatusRejected],
	}
	stats.Total = stats.Pending + stats.Approved + stats.Rejected
	return stats, nil
}

// exportHeader is the column layout of the registration export.
var exportHeader = []string{
	"Registration Code", "Date", "Name / Team", "Team Members", "WhatsApp",
	"Category", "School", "Competition", "City", "Email", "Status",
	"Gender", "Birth Date", "Student Document", "Payment Proof",
}

func presence(url string) string {
	if url != "" {
		return "Yes"
	}
	return "No"
}

// ExportRow flattens one registration into the export column layout.
func ExportRow(reg *models.Registration) []string {
	return []string{
		reg.RegistrationCode,
		FormatDate(reg.RegistrationDate),
		reg.DisplayName(),
		strings.Join(reg.TeamMembers, ", "),
		reg.WhatsApp,
		string(reg.SchoolCategory),
		reg.School,
		reg.Competition,
		reg.City,
		reg.Email,
		string(reg.Status),
		string(reg.Gender),
		reg.BirthDate,
		presence(reg.KTSSuratAktif),
		presence(reg.BuktiPembayaran),
	}
}

// ExportFilename names the download after the active status filter.
func ExportFilename(f ReviewFilter) string {
	status := strings.ToLower(strings.TrimSpace(f.Status))
	if status == "" || status == "all" {
		status = "all"
	}
	return fmt.Sprintf("%s-registrations.csv", status)
}

// ExportCSV writes the currently filtered set as CSV.
func (s *ReviewService) ExportCSV(w io.Writer, filter ReviewFilter, field SortField, dir SortDirection) error {
	all, err := s.repo.RegistrationRepo.ListAll()
	if err != nil {
		return err
	}

	rows := SortRegistrations(FilterRegistrations(all, filter), field, dir)

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	for i := range rows {
		if err := cw.Write(ExportRow(&rows[i])); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
