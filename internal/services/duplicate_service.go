package services

import (
	"fmt"

	"snapspend-api/internal/models"
	"snapspend-api/internal/repositories"

	"github.com/google/uuid"
)

type duplicateService struct {
	receiptRepo repositories.ReceiptRepositoryInterface
}

// NewDuplicateService creates a new DuplicateServiceInterface instance
func NewDuplicateService(receiptRepo repositories.ReceiptRepositoryInterface) DuplicateServiceInterface {
	return &duplicateService{
		receiptRepo: receiptRepo,
	}
}

// FindDuplicates groups the user's receipts by signature and returns every
// group with two or more members. Highlight tags rotate through the fixed
// palette in the order groups are first encountered in the collection, so
// tag assignment is stable for a given collection ordering. Receipts whose
// signature is entirely empty are never flagged.
func (s *duplicateService) FindDuplicates(userID uuid.UUID) ([]models.DuplicateGroup, error) {
	receipts, err := s.receiptRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipts: %w", err)
	}

	members := map[string][]uuid.UUID{}
	order := []string{}

	for i := range receipts {
		r := &receipts[i]
		if r.HasEmptySignature() {
			continue
		}

		signature := r.Signature()
		if _, seen := members[signature]; !seen {
			order = append(order, signature)
		}
		members[signature] = append(members[signature], r.ID)
	}

	groups := []models.DuplicateGroup{}
	for _, signature := range order {
		ids := members[signature]
		if len(ids) < 2 {
			continue
		}

		groups = append(groups, models.DuplicateGroup{
			Signature:  signature,
			ReceiptIDs: ids,
			Tag:        models.HighlightPalette[len(groups)%len(models.HighlightPalette)],
		})
	}

	return groups, nil
}
