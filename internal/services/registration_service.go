package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/faruqeclypst/FLASH-MOSA/internal/config"
	"github.com/faruqeclypst/FLASH-MOSA/internal/models"
	"github.com/faruqeclypst/FLASH-MOSA/internal/repositories"

	"github.com/sirupsen/logrus"
)

type RegistrationService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewRegistrationService(repo *repositories.Repository, cfg *config.Config) *RegistrationService {
	return &RegistrationService{repo: repo, cfg: cfg}
}

type SubmitRegistrationRequest struct {
	Competition string

	// Individual entries
	Name      string
	Gender    models.Gender
	BirthDate string

	// Team entries
	RegistrantName string
	TeamName       string
	TeamMembers    []string

	Email           string
	WhatsApp        string
	SchoolCategory  models.SchoolCategory
	School          string
	City            string
	KTSSuratAktif   string
	BuktiPembayaran string
}

// SubmitRegistration validates a public submission against the published
// competition definition and creates the record with status pending. The
// registration code is assigned inside the repository transaction.
func (s *RegistrationService) SubmitRegistration(req SubmitRegistrationRequest) (*models.Registration, error) {
	content, err := s.repo.ContentRepo.Get()
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, errors.New("registration is not open yet")
	}

	comp := content.FindCompetition(req.Competition)
	if comp == nil {
		return nil, fmt.Errorf("unknown competition: %s", req.Competition)
	}

	if err := validateParticipantShape(&req, comp); err != nil {
		return nil, err
	}
	if err := validateEligibility(&req, comp); err != nil {
		return nil, err
	}

	reg := &models.Registration{
		Status:           models.StatusPending,
		Competition:      req.Competition,
		Email:            req.Email,
		WhatsApp:         req.WhatsApp,
		SchoolCategory:   req.SchoolCategory,
		School:           req.School,
		City:             req.City,
		KTSSuratAktif:    req.KTSSuratAktif,
		BuktiPembayaran:  req.BuktiPembayaran,
		RegistrationDate: time.Now(),
	}

	if comp.Type == models.CompetitionTeam {
		reg.RegistrantName = req.RegistrantName
		reg.TeamName = req.TeamName
		reg.TeamMembers = req.TeamMembers
	} else {
		reg.Name = req.Name
		reg.Gender = req.Gender
		reg.BirthDate = req.BirthDate
	}

	if req.SchoolCategory == models.CategoryUmum {
		reg.School = ""
		reg.KTSSuratAktif = ""
	}

	if err := s.repo.RegistrationRepo.Create(reg); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"code":        reg.RegistrationCode,
		"competition": reg.Competition,
	}).Info("registration submitted")

	return reg, nil
}

// validateParticipantShape enforces the tagged union: exactly one of the
// individual/team field sets is populated, determined by the competition
// type at submission time.
func validateParticipantShape(req *SubmitRegistrationRequest, comp *models.Competition) error {
	switch comp.Type {
	case models.CompetitionTeam:
		if req.RegistrantName == "" || req.TeamName == "" {
			return errors.New("registrant name and team name are required for team competitions")
		}
		if len(req.TeamMembers) == 0 {
			return errors.New("at least one team member is required")
		}
		if comp.TeamSize != nil && len(req.TeamMembers) > *comp.TeamSize {
			return fmt.Errorf("team size exceeds the limit of %d for %s", *comp.TeamSize, comp.Name)
		}
		if req.Name != "" || req.Gender != "" || req.BirthDate != "" {
			return errors.New("individual fields are not allowed for team competitions")
		}
	case models.CompetitionSingle:
		if req.Name == "" {
			return errors.New("name is required")
		}
		if req.Gender != models.GenderMale && req.Gender != models.GenderFemale {
			return errors.New("gender must be male or female")
		}
		if req.BirthDate == "" {
			return errors.New("birth date is required")
		}
		if req.RegistrantName != "" || req.TeamName != "" || len(req.TeamMembers) > 0 {
			return errors.New("team fields are not allowed for individual competitions")
		}
	default:
		return fmt.Errorf("competition %s has an invalid type", comp.Name)
	}
	return nil
}

func validateEligibility(req *SubmitRegistrationRequest, comp *models.Competition) error {
	if !req.SchoolCategory.Valid() {
		return fmt.Errorf("invalid school category: %s", req.SchoolCategory)
	}
	if !models.ValidCity(req.City) {
		return fmt.Errorf("invalid city: %s", req.City)
	}

	if req.SchoolCategory != models.CategoryUmum {
		if req.School == "" {
			return errors.New("school is required")
		}
		if req.KTSSuratAktif == "" {
			return errors.New("student card or active-student letter is required")
		}
	}

	if req.BuktiPembayaran == "" {
		return errors.New("payment proof is required")
	}

	if len(comp.Categories) > 0 {
		eligible := false
		for _, cat := range comp.Categories {
			if cat == req.SchoolCategory {
				eligible = true
				break
			}
		}
		if !eligible {
			return fmt.Errorf("category %s is not eligible for %s", req.SchoolCategory, comp.Name)
		}
	}

	return nil
}

// LookupByCode lets a registrant check their review status.
func (s *RegistrationService) LookupByCode(code string) (*models.Registration, error) {
	return s.repo.RegistrationRepo.GetByCode(code)
}
