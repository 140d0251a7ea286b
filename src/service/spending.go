package service

import (
	"context"
	"errors"

	"finpal-server/src/apperr"
	"finpal-server/src/models"
	"finpal-server/src/store"
	"finpal-server/src/util"
)

func (s *Service) AddSpendingEntry(ctx context.Context, claims models.Claims, req models.SpendingEntryRequest) (*models.SpendingEntry, error) {
	entry := entryFromRequest(req)
	entry.ID = s.newID()
	entry.UserID = claims.Subject
	entry.CreatedAt = s.now().UTC()

	if err := s.store.CreateSpendingEntry(ctx, entry); err != nil {
		return nil, storeError("add spending entry", err)
	}
	return entry, nil
}

// GetSpendingEntries lists the user's entries, optionally for one date.
func (s *Service) GetSpendingEntries(ctx context.Context, claims models.Claims, userID, date string) ([]models.SpendingEntry, error) {
	userID, err := authorize(claims, userID)
	if err != nil {
		return nil, err
	}
	if date != "" && !util.ValidDate(date) {
		return nil, apperr.Validation("date must be a date in YYYY-MM-DD format", nil)
	}

	entries, err := s.store.ListSpendingEntries(ctx, userID, date)
	if err != nil {
		if !s.policy.SoftFailListSpending {
			return nil, storeError("get spending entries", err)
		}
		softFail("list_spending_entries", userID, err)
		return []models.SpendingEntry{}, nil
	}
	if entries == nil {
		entries = []models.SpendingEntry{}
	}
	return entries, nil
}

// UpdateSpendingEntry replaces the editable fields of an entry owned by the
// caller. Entries owned by anyone else are reported as missing.
func (s *Service) UpdateSpendingEntry(ctx context.Context, claims models.Claims, entryID string, req models.SpendingEntryRequest) (*models.SpendingEntry, error) {
	entry := entryFromRequest(req)
	entry.ID = entryID
	entry.UserID = claims.Subject

	updated, err := s.store.UpdateSpendingEntry(ctx, entry)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("Spending entry not found")
	}
	if err != nil {
		return nil, storeError("update spending entry", err)
	}
	return updated, nil
}

func (s *Service) DeleteSpendingEntry(ctx context.Context, claims models.Claims, entryID string) error {
	err := s.store.DeleteSpendingEntry(ctx, claims.Subject, entryID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("Spending entry not found")
	}
	if err != nil {
		return storeError("delete spending entry", err)
	}
	return nil
}

func entryFromRequest(req models.SpendingEntryRequest) *models.SpendingEntry {
	entry := &models.SpendingEntry{
		Date:        req.Date,
		Description: req.Description,
		Category:    req.Category,
		IsNecessary: req.IsNecessary,
	}
	if req.Amount != nil {
		entry.Amount = *req.Amount
	}
	return entry
}
