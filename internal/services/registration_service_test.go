package services

import (
	"strings"
	"testing"

	"github.com/faruqeclypst/FLASH-MOSA/internal/config"
	"github.com/faruqeclypst/FLASH-MOSA/internal/models"
	"github.com/faruqeclypst/FLASH-MOSA/internal/repositories"
)

type fakeContentRepo struct {
	content *models.EventContent
}

func (f *fakeContentRepo) Get() (*models.EventContent, error) {
	return f.content, nil
}

func (f *fakeContentRepo) Save(content *models.EventContent, expectedVersion int) error {
	if f.content == nil {
		if expectedVersion != 0 {
			return repositories.ErrVersionConflict
		}
		content.Version = 1
		f.content = content
		return nil
	}
	if f.content.Version != expectedVersion {
		return repositories.ErrVersionConflict
	}
	content.Version = expectedVersion + 1
	f.content = content
	return nil
}

func teamSize(n int) *int { return &n }

func publishedContent() *models.EventContent {
	return &models.EventContent{
		Title:     "FLASH",
		EventDate: "2026-05-20T08:00",
		Competitions: []models.Competition{
			{
				Name:       "Speech Contest",
				Type:       models.CompetitionSingle,
				Categories: []models.SchoolCategory{models.CategorySMA, models.CategoryUmum},
			},
			{
				Name:       "Robotics",
				Type:       models.CompetitionTeam,
				TeamSize:   teamSize(3),
				Categories: []models.SchoolCategory{models.CategorySMP, models.CategorySMA},
			},
		},
		Version: 1,
	}
}

func newRegistrationService(t *testing.T) (*RegistrationService, *fakeRegistrationRepo) {
	t.Helper()
	fake := newFakeRegistrationRepo()
	repo := &repositories.Repository{
		RegistrationRepo: fake,
		ContentRepo:      &fakeContentRepo{content: publishedContent()},
	}
	return NewRegistrationService(repo, &config.Config{}), fake
}

func validIndividual() SubmitRegistrationRequest {
	return SubmitRegistrationRequest{
		Competition:     "Speech Contest",
		Name:            "Aisyah",
		Gender:          models.GenderFemale,
		BirthDate:       "2008-11-02",
		Email:           "aisyah@example.com",
		WhatsApp:        "081234567890",
		SchoolCategory:  models.CategorySMA,
		School:          "SMAN 3 Banda Aceh",
		City:            "Banda Aceh",
		KTSSuratAktif:   "https://example.com/kts.pdf",
		BuktiPembayaran: "https://example.com/bukti.pdf",
	}
}

func validTeam() SubmitRegistrationRequest {
	return SubmitRegistrationRequest{
		Competition:     "Robotics",
		RegistrantName:  "Budi",
		TeamName:        "Garuda",
		TeamMembers:     []string{"Budi", "Citra", "Dedi"},
		Email:           "budi@example.com",
		WhatsApp:        "081234567891",
		SchoolCategory:  models.CategorySMP,
		School:          "MTsN 1 Sigli",
		City:            "Sigli",
		KTSSuratAktif:   "https://example.com/kts.pdf",
		BuktiPembayaran: "https://example.com/bukti.pdf",
	}
}

func TestSubmitRegistrationAssignsSequentialCodes(t *testing.T) {
	svc, _ := newRegistrationService(t)

	first, err := svc.SubmitRegistration(validIndividual())
	if err != nil {
		t.Fatalf("first submission: %v", err)
	}
	second, err := svc.SubmitRegistration(validTeam())
	if err != nil {
		t.Fatalf("second submission: %v", err)
	}

	if first.RegistrationCode != "FLASH#0000" {
		t.Errorf("first code = %s, want FLASH#0000", first.RegistrationCode)
	}
	if second.RegistrationCode != "FLASH#0001" {
		t.Errorf("second code = %s, want FLASH#0001", second.RegistrationCode)
	}
	if first.Status != models.StatusPending {
		t.Errorf("new registration status = %s, want pending", first.Status)
	}
}

func TestSubmitRegistrationValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*SubmitRegistrationRequest)
		wantErr string
	}{
		{
			name:    "unknown competition",
			mutate:  func(r *SubmitRegistrationRequest) { r.Competition = "Chess" },
			wantErr: "unknown competition",
		},
		{
			name: "team exceeds size limit",
			mutate: func(r *SubmitRegistrationRequest) {
				*r = validTeam()
				r.TeamMembers = []string{"a", "b", "c", "d"}
			},
			wantErr: "team size exceeds",
		},
		{
			name: "team without members",
			mutate: func(r *SubmitRegistrationRequest) {
				*r = validTeam()
				r.TeamMembers = nil
			},
			wantErr: "at least one team member",
		},
		{
			name: "individual fields on team entry",
			mutate: func(r *SubmitRegistrationRequest) {
				*r = validTeam()
				r.Name = "Budi"
			},
			wantErr: "individual fields are not allowed",
		},
		{
			name: "team fields on individual entry",
			mutate: func(r *SubmitRegistrationRequest) {
				r.TeamName = "Garuda"
			},
			wantErr: "team fields are not allowed",
		},
		{
			name:    "missing gender",
			mutate:  func(r *SubmitRegistrationRequest) { r.Gender = "" },
			wantErr: "gender must be",
		},
		{
			name:    "missing school for school category",
			mutate:  func(r *SubmitRegistrationRequest) { r.School = "" },
			wantErr: "school is required",
		},
		{
			name:    "missing student document for school category",
			mutate:  func(r *SubmitRegistrationRequest) { r.KTSSuratAktif = "" },
			wantErr: "student card",
		},
		{
			name:    "missing payment proof",
			mutate:  func(r *SubmitRegistrationRequest) { r.BuktiPembayaran = "" },
			wantErr: "payment proof",
		},
		{
			name:    "city outside the locality list",
			mutate:  func(r *SubmitRegistrationRequest) { r.City = "Jakarta" },
			wantErr: "invalid city",
		},
		{
			name: "ineligible school category",
			mutate: func(r *SubmitRegistrationRequest) {
				*r = validTeam()
				r.SchoolCategory = models.CategorySD
			},
			wantErr: "not eligible",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newRegistrationService(t)
			req := validIndividual()
			tc.mutate(&req)

			_, err := svc.SubmitRegistration(req)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestSubmitRegistrationClearsSchoolFieldsForUmum(t *testing.T) {
	svc, _ := newRegistrationService(t)

	req := validIndividual()
	req.SchoolCategory = models.CategoryUmum
	req.School = "should be dropped"
	req.KTSSuratAktif = "https://example.com/kts.pdf"

	reg, err := svc.SubmitRegistration(req)
	if err != nil {
		t.Fatalf("SubmitRegistration: %v", err)
	}

	if reg.School != "" || reg.KTSSuratAktif != "" {
		t.Errorf("general-category registration kept school fields: %q, %q", reg.School, reg.KTSSuratAktif)
	}
}

func TestLookupByCode(t *testing.T) {
	svc, _ := newRegistrationService(t)

	created, err := svc.SubmitRegistration(validIndividual())
	if err != nil {
		t.Fatalf("SubmitRegistration: %v", err)
	}

	found, err := svc.LookupByCode(created.RegistrationCode)
	if err != nil {
		t.Fatalf("LookupByCode: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("lookup returned a different registration")
	}

	if _, err := svc.LookupByCode("FLASH#9999"); err == nil {
		t.Errorf("expected error for unknown code")
	}
}
