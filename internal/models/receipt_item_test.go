package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ReceiptItemTestSuite struct {
	suite.Suite
}

func TestReceiptItemTestSuite(t *testing.T) {
	suite.Run(t, new(ReceiptItemTestSuite))
}

func (s *ReceiptItemTestSuite) TestValidate_Valid() {
	item := &ReceiptItem{
		ReceiptID:   uuid.New(),
		Description: "Instant noodles",
		Quantity:    3,
	}
	s.NoError(item.Validate())
}

func (s *ReceiptItemTestSuite) TestValidate_MissingDescription() {
	item := &ReceiptItem{ReceiptID: uuid.New()}
	s.ErrorIs(item.Validate(), ErrItemDescriptionRequired)
}

func (s *ReceiptItemTestSuite) TestValidate_MissingReceipt() {
	item := &ReceiptItem{Description: "Instant noodles"}
	s.ErrorIs(item.Validate(), ErrItemReceiptRequired)
}

func (s *ReceiptItemTestSuite) TestValidate_NegativeQuantity() {
	item := &ReceiptItem{
		ReceiptID:   uuid.New(),
		Description: "Instant noodles",
		Quantity:    -1,
	}
	s.ErrorIs(item.Validate(), ErrNegativeAmount)
}
