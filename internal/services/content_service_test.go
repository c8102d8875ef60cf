package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/faruqeclypst/FLASH-MOSA/internal/config"
	"github.com/faruqeclypst/FLASH-MOSA/internal/models"
	"github.com/faruqeclypst/FLASH-MOSA/internal/repositories"
)

func newContentService(content *models.EventContent) (*ContentService, *fakeContentRepo) {
	fake := &fakeContentRepo{content: content}
	repo := &repositories.Repository{ContentRepo: fake}
	return NewContentService(repo, &config.Config{}), fake
}

func str(s string) *string { return &s }

func TestApplyMutationsEditsDocument(t *testing.T) {
	svc, fake := newContentService(publishedContent())

	muts := []Mutation{
		UpdateInfo{Title: str("FLASH 2026")},
		AddActivity{Activity: models.Activity{Name: "Pentas Seni", Description: "Panggung siswa"}},
		AddRule{Competition: 1, Value: "Robot harus rakitan sendiri"},
		AddGalleryImage{URL: "https://example.com/g1.jpg"},
	}

	saved, err := svc.ApplyMutations(muts, 1)
	if err != nil {
		t.Fatalf("ApplyMutations: %v", err)
	}

	if saved.Title != "FLASH 2026" {
		t.Errorf("title = %q", saved.Title)
	}
	if len(saved.Activities) != 1 || saved.Activities[0].Name != "Pentas Seni" {
		t.Errorf("activity not appended: %+v", saved.Activities)
	}
	if rules := saved.Competitions[1].Rules; len(rules) != 1 || rules[0] != "Robot harus rakitan sendiri" {
		t.Errorf("rule not appended: %+v", rules)
	}
	if len(saved.Gallery) != 1 {
		t.Errorf("gallery not appended: %+v", saved.Gallery)
	}
	if fake.content.Version != 2 {
		t.Errorf("version = %d, want 2", fake.content.Version)
	}
}

func TestRemoveAtIndexMutations(t *testing.T) {
	content := publishedContent()
	content.Activities = []models.Activity{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	content.Gallery = []string{"one", "two"}
	content.Competitions[0].Rules = []string{"r1", "r2"}
	svc, _ := newContentService(content)

	saved, err := svc.ApplyMutations([]Mutation{
		RemoveActivity{Index: 1},
		RemoveRule{Competition: 0, Rule: 0},
		RemoveGalleryImage{Index: 0},
	}, 1)
	if err != nil {
		t.Fatalf("ApplyMutations: %v", err)
	}

	if len(saved.Activities) != 2 || saved.Activities[1].Name != "C" {
		t.Errorf("activity removal wrong: %+v", saved.Activities)
	}
	if rules := saved.Competitions[0].Rules; len(rules) != 1 || rules[0] != "r2" {
		t.Errorf("rule removal wrong: %+v", rules)
	}
	if len(saved.Gallery) != 1 || saved.Gallery[0] != "two" {
		t.Errorf("gallery removal wrong: %+v", saved.Gallery)
	}
}

func TestMutationIndexOutOfRange(t *testing.T) {
	svc, _ := newContentService(publishedContent())

	cases := []Mutation{
		UpdateActivity{Index: 0, Name: str("x")},
		RemoveActivity{Index: 5},
		RemoveCompetition{Index: -1},
		UpdateRule{Competition: 0, Rule: 3, Value: "x"},
		RemoveGalleryImage{Index: 0},
	}

	for i, m := range cases {
		if _, err := svc.ApplyMutations([]Mutation{m}, 1); err == nil {
			t.Errorf("case %d: expected out-of-range error", i)
		}
	}
}

func TestUpdateCompetitionTypeSwitchClearsTeamSize(t *testing.T) {
	svc, _ := newContentService(publishedContent())

	single := models.CompetitionSingle
	saved, err := svc.ApplyMutations([]Mutation{
		UpdateCompetition{Index: 1, Type: &single},
	}, 1)
	if err != nil {
		t.Fatalf("ApplyMutations: %v", err)
	}

	if saved.Competitions[1].TeamSize != nil {
		t.Errorf("team size kept after switching to individual type")
	}
}

func TestSaveValidatesCompetitionInvariants(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.EventContent)
	}{
		{
			name: "team competition without team size",
			mutate: func(c *models.EventContent) {
				c.Competitions[1].TeamSize = nil
			},
		},
		{
			name: "team size below two",
			mutate: func(c *models.EventContent) {
				c.Competitions[1].TeamSize = teamSize(1)
			},
		},
		{
			name: "individual competition with team size",
			mutate: func(c *models.EventContent) {
				c.Competitions[0].TeamSize = teamSize(3)
			},
		},
		{
			name: "invalid category",
			mutate: func(c *models.EventContent) {
				c.Competitions[0].Categories = []models.SchoolCategory{"Kindergarten"}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newContentService(publishedContent())
			draft := publishedContent()
			tc.mutate(draft)

			if _, err := svc.Save(draft, 1); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestSaveDetectsVersionConflict(t *testing.T) {
	svc, _ := newContentService(publishedContent())

	draft := publishedContent()
	if _, err := svc.Save(draft, 0); !errors.Is(err, repositories.ErrVersionConflict) {
		t.Fatalf("err = %v, want version conflict", err)
	}

	if _, err := svc.Save(draft, 1); err != nil {
		t.Fatalf("save with the current token failed: %v", err)
	}
}

func TestDecodeMutation(t *testing.T) {
	raw := json.RawMessage(`{"op":"update_activity","index":2,"name":"Bazar"}`)
	m, err := DecodeMutation("update_activity", raw)
	if err != nil {
		t.Fatalf("DecodeMutation: %v", err)
	}

	ua, ok := m.(*UpdateActivity)
	if !ok {
		t.Fatalf("decoded %T, want *UpdateActivity", m)
	}
	if ua.Index != 2 || ua.Name == nil || *ua.Name != "Bazar" {
		t.Errorf("decoded fields wrong: %+v", ua)
	}

	if _, err := DecodeMutation("explode", raw); err == nil {
		t.Errorf("expected error for unknown op")
	}
}
