package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/faruqeclypst/FLASH-MOSA/internal/config"
	"github.com/faruqeclypst/FLASH-MOSA/internal/models"
	"github.com/faruqeclypst/FLASH-MOSA/internal/repositories"

	"github.com/sirupsen/logrus"
)

type ContentService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewContentService(repo *repositories.Repository, cfg *config.Config) *ContentService {
	return &ContentService{repo: repo, cfg: cfg}
}

func (s *ContentService) Get() (*models.EventContent, error) {
	return s.repo.ContentRepo.Get()
}

// Save commits a full draft guarded by the version token the draft was
// loaded with. A stale token fails with repositories.ErrVersionConflict.
func (s *ContentService) Save(content *models.EventContent, expectedVersion int) (*models.EventContent, error) {
	if err := ValidateContent(content); err != nil {
		return nil, err
	}

	if err := s.repo.ContentRepo.Save(content, expectedVersion); err != nil {
		return nil, err
	}

	logrus.WithField("version", content.Version).Info("event content saved")
	return content, nil
}

// ApplyMutations loads the current document, applies a sequence of typed
// patches and saves the result under the caller's version token. This is
// the field-level alternative to shipping the whole draft.
func (s *ContentService) ApplyMutations(muts []Mutation, expectedVersion int) (*models.EventContent, error) {
	content, err := s.repo.ContentRepo.Get()
	if err != nil {
		return nil, err
	}
	if content == nil {
		content = &models.EventContent{ID: models.ContentID}
	}

	for _, m := range muts {
		if err := m.Apply(content); err != nil {
			return nil, err
		}
	}

	return s.Save(content, expectedVersion)
}

// ValidateContent enforces the competition invariants: team competitions
// carry a team size of at least two, individual ones carry none.
func ValidateContent(content *models.EventContent) error {
	if content == nil {
		return errors.New("event content cannot be nil")
	}

	for i := range content.Competitions {
		comp := &content.Competitions[i]
		if comp.Name == "" {
			return fmt.Errorf("competition %d has no name", i)
		}
		switch comp.Type {
		case models.CompetitionTeam:
			if comp.TeamSize == nil || *comp.TeamSize < 2 {
				return fmt.Errorf("team competition %s needs a team size of at least 2", comp.Name)
			}
		case models.CompetitionSingle:
			if comp.TeamSize != nil {
				return fmt.Errorf("individual competition %s must not have a team size", comp.Name)
			}
		default:
			return fmt.Errorf("competition %s has an invalid type: %s", comp.Name, comp.Type)
		}
		for _, cat := range comp.Categories {
			if !cat.Valid() {
				return fmt.Errorf("competition %s has an invalid category: %s", comp.Name, cat)
			}
		}
	}
	return nil
}

// Mutation is one typed patch against the content document. Each variant
// validates its own indices when applied.
type Mutation interface {
	Apply(*models.EventContent) error
}

type UpdateInfo struct {
	Title      *string `json:"title,omitempty"`
	EventDate  *string `json:"eventDate,omitempty"`
	HeroImage  *string `json:"heroImage,omitempty"`
	HeroVideo  *string `json:"heroVideo,omitempty"`
	AboutFlash *string `json:"aboutFlash,omitempty"`
	AboutImage *string `json:"aboutImage,omitempty"`
}

func (m UpdateInfo) Apply(c *models.EventContent) error {
	if m.Title != nil {
		c.Title = *m.Title
	}
	if m.EventDate != nil {
		c.EventDate = *m.EventDate
	}
	if m.HeroImage != nil {
		c.HeroImage = *m.HeroImage
	}
	if m.HeroVideo != nil {
		c.HeroVideo = *m.HeroVideo
	}
	if m.AboutFlash != nil {
		c.AboutFlash = *m.AboutFlash
	}
	if m.AboutImage != nil {
		c.AboutImage = *m.AboutImage
	}
	return nil
}

type AddActivity struct {
	Activity models.Activity `json:"activity"`
}

func (m AddActivity) Apply(c *models.EventContent) error {
	c.Activities = append(c.Activities, m.Activity)
	return nil
}

type UpdateActivity struct {
	Index       int     `json:"index"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

func (m UpdateActivity) Apply(c *models.EventContent) error {
	if m.Index < 0 || m.Index >= len(c.Activities) {
		return fmt.Errorf("activity index %d out of range", m.Index)
	}
	a := &c.Activities[m.Index]
	if m.Name != nil {
		a.Name = *m.Name
	}
	if m.Description != nil {
		a.Description = *m.Description
	}
	if m.Image != nil {
		a.Image = *m.Image
	}
	return nil
}

type RemoveActivity struct {
	Index int `json:"index"`
}

func (m RemoveActivity) Apply(c *models.EventContent) error {
	if m.Index < 0 || m.Index >= len(c.Activities) {
		return fmt.Errorf("activity index %d out of range", m.Index)
	}
	c.Activities = append(c.Activities[:m.Index], c.Activities[m.Index+1:]...)
	return nil
}

type AddCompetition struct {
	Competition models.Competition `json:"competition"`
}

func (m AddCompetition) Apply(c *models.EventContent) error {
	c.Competitions = append(c.Competitions, m.Competition)
	return nil
}

type UpdateCompetition struct {
	Index       int                      `json:"index"`
	Name        *string                  `json:"name,omitempty"`
	Description *string                  `json:"description,omitempty"`
	Icon        *string                  `json:"icon,omitempty"`
	Type        *models.CompetitionType  `json:"type,omitempty"`
	TeamSize    *int                     `json:"teamSize,omitempty"`
	Categories  *[]models.SchoolCategory `json:"categories,omitempty"`
}

func (m UpdateCompetition) Apply(c *models.EventContent) error {
	if m.Index < 0 || m.Index >= len(c.Competitions) {
		return fmt.Errorf("competition index %d out of range", m.Index)
	}
	comp := &c.Competitions[m.Index]
	if m.Name != nil {
		comp.Name = *m.Name
	}
	if m.Description != nil {
		comp.Description = *m.Description
	}
	if m.Icon != nil {
		comp.Icon = *m.Icon
	}
	if m.Type != nil {
		comp.Type = *m.Type
		if *m.Type == models.CompetitionSingle {
			comp.TeamSize = nil
		}
	}
	if m.TeamSize != nil {
		size := *m.TeamSize
		comp.TeamSize = &size
	}
	if m.Categories != nil {
		comp.Categories = *m.Categories
	}
	return nil
}

type RemoveCompetition struct {
	Index int `json:"index"`
}

func (m RemoveCompetition) Apply(c *models.EventContent) error {
	if m.Index < 0 || m.Index >= len(c.Competitions) {
		return fmt.Errorf("competition index %d out of range", m.Index)
	}
	c.Competitions = append(c.Competitions[:m.Index], c.Competitions[m.Index+1:]...)
	return nil
}

type AddRule struct {
	Competition int    `json:"competition"`
	Value       string `json:"value"`
}

func (m AddRule) Apply(c *models.EventContent) error {
	if m.Competition < 0 || m.Competition >= len(c.Competitions) {
		return fmt.Errorf("competition index %d out of range", m.Competition)
	}
	comp := &c.Competitions[m.Competition]
	comp.Rules = append(comp.Rules, m.Value)
	return nil
}

type UpdateRule struct {
	Competition int    `json:"competition"`
	Rule        int    `json:"rule"`
	Value       string `json:"value"`
}

func (m UpdateRule) Apply(c *models.EventContent) error {
	if m.Competition < 0 || m.Competition >= len(c.Competitions) {
		return fmt.Errorf("competition index %d out of range", m.Competition)
	}
	comp := &c.Competitions[m.Competition]
	if m.Rule < 0 || m.Rule >= len(comp.Rules) {
		return fmt.Errorf("rule index %d out of range", m.Rule)
	}
	comp.Rules[m.Rule] = m.Value
	return nil
}

type RemoveRule struct {
	Competition int `json:"competition"`
	Rule        int `json:"rule"`
}

func (m RemoveRule) Apply(c *models.EventContent) error {
	if m.Competition < 0 || m.Competition >= len(c.Competitions) {
		return fmt.Errorf("competition index %d out of range", m.Competition)
	}
	comp := &c.Competitions[m.Competition]
	if m.Rule < 0 || m.Rule >= len(comp.Rules) {
		return fmt.Errorf("rule index %d out of range", m.Rule)
	}
	comp.Rules = append(comp.Rules[:m.Rule], comp.Rules[m.Rule+1:]...)
	return nil
}

type AddGalleryImage struct {
	URL string `json:"url"`
}

func (m AddGalleryImage) Apply(c *models.EventContent) error {
	if m.URL == "" {
		return errors.New("gallery image URL cannot be empty")
	}
	c.Gallery = append(c.Gallery, m.URL)
	return nil
}

type RemoveGalleryImage struct {
	Index int `json:"index"`
}

func (m RemoveGalleryImage) Apply(c *models.EventContent) error {
	if m.Index < 0 || m.Index >= len(c.Gallery) {
		return fmt.Errorf("gallery index %d out of range", m.Index)
	}
	c.Gallery = append(c.Gallery[:m.Index], c.Gallery[m.Index+1:]...)
	return nil
}

// DecodeMutation turns a wire-format patch {"op": ..., ...} into its typed
// variant.
func DecodeMutation(op string, raw json.RawMessage) (Mutation, error) {
	decode := func(v Mutation) (Mutation, error) {
		if err := json.Unmarshal(raw, v); err != nil {
			return nil, fmt.Errorf("invalid %s mutation: %w", op, err)
		}
		return v, nil
	}

	switch op {
	case "update_info":
		return decode(&UpdateInfo{})
	case "add_activity":
		return decode(&AddActivity{})
	case "update_activity":
		return decode(&UpdateActivity{})
	case "remove_activity":
		return decode(&RemoveActivity{})
	case "add_competition":
		return decode(&AddCompetition{})
	case "update_competition":
		return decode(&UpdateCompetition{})
	case "remove_competition":
		return decode(&RemoveCompetition{})
	case "add_rule":
		return decode(&AddRule{})
	case "update_rule":
		return decode(&UpdateRule{})
	case "remove_rule":
		return decode(&RemoveRule{})
	case "add_gallery_image":
		return decode(&AddGalleryImage{})
	case "remove_gallery_image":
		return decode(&RemoveGalleryImage{})
	}
	return nil, fmt.Errorf("unknown mutation op: %s", op)
}
