package services

import (
	"errors"
	"fmt"
	"strings"
	"voidwebsite/internal/models"
)

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func ValidateProduct(p *models.Product) error {
	if err := required("name", p.Name); err != nil {
		return err
	}
	if p.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	return nil
}

func ValidateReview(r *models.Review) error {
	if err := required("userName", r.UserName); err != nil {
		return err
	}
	if r.Rating < models.MinRating || r.Rating > models.MaxRating {
		return fmt.Errorf("rating must be between %d and %d", models.MinRating, models.MaxRating)
	}
	if r.Helpful < 0 {
		return errors.New("helpful cannot be negative")
	}
	return nil
}

func ValidateAmbassador(a *models.Ambassador) error {
	return required("name", a.Name)
}

func ValidateMatch(m *models.ScheduleMatch) error {
	if err := required("team", m.Team); err != nil {
		return err
	}
	if err := required("opponent", m.Opponent); err != nil {
		return err
	}
	if m.Status == "" {
		m.Status = models.MatchUpcoming
	}
	switch m.Status {
	case models.MatchUpcoming, models.MatchLive, models.MatchCompleted:
		return nil
	}
	return fmt.Errorf("unknown match status %q", m.Status)
}

func ValidateEvent(e *models.ScheduleEvent) error {
	return required("title", e.Title)
}

func ValidateDashboardItem(d *models.DashboardItem) error {
	return required("title", d.Title)
}
