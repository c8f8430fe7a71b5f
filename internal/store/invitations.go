package store

import (
	"context"
	"time"

	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/models"
	"github.com/legwalet/le-barber/internal/validators"
)

func (s *Store) CreateInvitation(ctx context.Context, inv *models.Invitation) (*models.Invitation, error) {
	inv.InviteeEmail = validators.Normalize(inv.InviteeEmail)
	if inv.InviterID == "" || inv.InviteeEmail == "" {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	if inv.Code != "" {
		var count int64
		if err := s.db.WithContext(ctx).
			Model(&models.Invitation{}).
			Where("code = ?", inv.Code).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, httperr.ErrBusiness(httperr.CodeConflict)
		}
	}
	if inv.Status == "" {
		inv.Status = models.InvitationPending
	}

	if err := s.db.WithContext(ctx).Create(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Store) GetInvitationByCode(ctx context.Context, code string) (*models.Invitation, error) {
	var inv models.Invitation
	if err := s.db.WithContext(ctx).
		Where("code = ?", code).
		First(&inv).Error; err != nil {
		return nil, notFound(err)
	}
	return &inv, nil
}

func (s *Store) GetInvitationsByInviter(ctx context.Context, inviterID string) ([]models.Invitation, error) {
	var invs []models.Invitation
	if err := s.db.WithContext(ctx).
		Where("inviter_id = ?", inviterID).
		Order("created_at DESC").
		Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}

func (s *Store) SetInvitationStatus(ctx context.Context, id, status string) error {
	res := s.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return nil
}

// ExpireInvitations marks overdue pending invitations, returning how many
// were swept.
func (s *Store) ExpireInvitations(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("status = ? AND expires_at < ?", models.InvitationPending, now).
		Update("status", models.InvitationExpired)
	return res.RowsAffected, res.Error
}
