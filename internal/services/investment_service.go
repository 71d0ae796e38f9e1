package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "investmon/internal/errors"
	"investmon/internal/models"
	"investmon/internal/pagination"
)

// initialTransactionNote tags the transaction created alongside an
// investment with a nonzero initial amount.
const initialTransactionNote = "Initial investment"

// investmentService handles investment and transaction ledger logic.
type investmentService struct {
	db *gorm.DB
}

// NewInvestmentService creates a new InvestmentServicer over the ledger store.
func NewInvestmentService(db *gorm.DB) InvestmentServicer {
	return &investmentService{db: db}
}

// CreateInvestment creates a new investment. A nonzero initial amount also
// creates one accompanying transaction dated today, in the same database
// transaction, and seeds both the running total and the actual amount.
func (s *investmentService) CreateInvestment(name, platform, accountName, investmentType string, initialAmount float64) (*models.Investment, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "investment name is required")
	}

	investment := &models.Investment{
		Name:         name,
		Platform:     platform,
		AccountName:  accountName,
		Type:         investmentType,
		TotalAmount:  initialAmount,
		ActualAmount: initialAmount,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Create(investment).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		if initialAmount > 0 {
			transaction := &models.Transaction{
				Date:         time.Now().Format("2006-01-02"),
				Amount:       initialAmount,
				InvestmentID: investment.ID,
				Notes:        initialTransactionNote,
			}
			if txErr := tx.Create(transaction).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return investment, nil
}

// GetInvestmentByID returns an investment by ID.
func (s *investmentService) GetInvestmentByID(id uint) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.First(&investment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}

// ListInvestments returns a paginated list of all investments.
func (s *investmentService) ListInvestments(page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Investment{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investments []models.Investment
	if err := s.db.Order("id ASC").Scopes(pagination.Paginate(page)).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(investments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateInvestment updates an investment's descriptive fields. Amounts are
// never touched here: the running total moves only with transactions, and
// the actual amount has its own operation.
func (s *investmentService) UpdateInvestment(id uint, name, platform, accountName, investmentType string) (*models.Investment, error) {
	investment, err := s.GetInvestmentByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":         name,
		"platform":     platform,
		"account_name": accountName,
		"type":         investmentType,
	}
	if err := s.db.Model(investment).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return investment, nil
}

// UpdateActualAmount sets the independently user-entered current valuation.
func (s *investmentService) UpdateActualAmount(id uint, actualAmount float64) (*models.Investment, error) {
	investment, err := s.GetInvestmentByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(investment).Update("actual_amount", actualAmount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return investment, nil
}

// DeleteInvestment deletes an investment and all of its transactions.
// Transactions go first so the foreign-key invariant holds throughout.
func (s *investmentService) DeleteInvestment(id uint) error {
	if _, err := s.GetInvestmentByID(id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Where("investment_id = ?", id).Delete(&models.Transaction{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if txErr := tx.Delete(&models.Investment{}, id).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
}

// AddTransaction records a signed cash movement against an investment and
// increments the parent's running total in the same database transaction.
func (s *investmentService) AddTransaction(investmentID uint, date string, amount float64, notes string) (*models.Transaction, error) {
	if _, err := s.GetInvestmentByID(investmentID); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		Date:         date,
		Amount:       amount,
		InvestmentID: investmentID,
		Notes:        notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Create(transaction).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if txErr := tx.Model(&models.Investment{}).Where("id = ?", investmentID).
			Update("total_amount", gorm.Expr("total_amount + ?", amount)).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// GetTransactions returns a paginated list of an investment's transactions,
// most recent date first.
func (s *investmentService) GetTransactions(investmentID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if _, err := s.GetInvestmentByID(investmentID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("investment_id = ?", investmentID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}
