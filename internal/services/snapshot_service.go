package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "investmon/internal/errors"
	"investmon/internal/models"
	"investmon/internal/pagination"
)

// snapshotService records and serves the two immutable snapshot logs.
type snapshotService struct {
	db *gorm.DB
}

// NewSnapshotService creates a new SnapshotServicer over the ledger store.
func NewSnapshotService(db *gorm.DB) SnapshotServicer {
	return &snapshotService{db: db}
}

// SavePortfolioSnapshot records a portfolio-level snapshot timestamped now.
func (s *snapshotService) SavePortfolioSnapshot(totalInvested, currentValue, profitLoss, profitLossPct float64) (*models.PortfolioSnapshot, error) {
	snapshot := &models.PortfolioSnapshot{
		Date:          time.Now(),
		TotalInvested: totalInvested,
		CurrentValue:  currentValue,
		ProfitLoss:    profitLoss,
		ProfitLossPct: profitLossPct,
	}
	if err := s.db.Create(snapshot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return snapshot, nil
}

// ListPortfolioSnapshots returns portfolio snapshots, most recent first.
func (s *snapshotService) ListPortfolioSnapshots(page pagination.PageRequest) (*pagination.PageResponse[models.PortfolioSnapshot], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.PortfolioSnapshot{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.PortfolioSnapshot
	if err := s.db.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(snapshots, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeletePortfolioSnapshot deletes one portfolio snapshot by ID.
func (s *snapshotService) DeletePortfolioSnapshot(id uint) error {
	result := s.db.Delete(&models.PortfolioSnapshot{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrSnapshotNotFound
	}
	return nil
}

// SaveAccountSnapshots records one snapshot row per account, all sharing a
// single timestamp, in one database transaction.
func (s *snapshotService) SaveAccountSnapshots(inputs []AccountSnapshotInput) (int, time.Time, error) {
	now := time.Now()
	if len(inputs) == 0 {
		return 0, now, nil
	}

	snapshots := make([]models.AccountSnapshot, 0, len(inputs))
	for _, in := range inputs {
		snapshots = append(snapshots, models.AccountSnapshot{
			Date:          now,
			AccountName:   in.AccountName,
			Goal:          in.Goal,
			Platform:      in.Platform,
			Type:          in.Type,
			TotalInvested: in.TotalInvested,
			CurrentValue:  in.CurrentValue,
			ProfitLoss:    in.ProfitLoss,
			ProfitLossPct: in.ProfitLossPct,
		})
	}

	if err := s.db.Create(&snapshots).Error; err != nil {
		return 0, now, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return len(snapshots), now, nil
}

// ListAccountSnapshots returns account snapshots, most recent first,
// optionally filtered to one account name.
func (s *snapshotService) ListAccountSnapshots(account string, page pagination.PageRequest) (*pagination.PageResponse[models.AccountSnapshot], error) {
	page.Defaults()

	base := s.db.Model(&models.AccountSnapshot{})
	if account != "" {
		base = base.Where("account_name = ?", account)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.AccountSnapshot
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(snapshots, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeleteAccountSnapshot deletes one account snapshot by ID.
func (s *snapshotService) DeleteAccountSnapshot(id uint) error {
	result := s.db.Delete(&models.AccountSnapshot{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrSnapshotNotFound
	}
	return nil
}

// BulkDeleteAccountSnapshots deletes account snapshots matching the given
// filters. The account filter matches exactly; the date filter matches the
// calendar day of the stored timestamp. Both are ANDed when present, and
// at least one must be set.
func (s *snapshotService) BulkDeleteAccountSnapshots(account, date string) (int64, error) {
	if account == "" && date == "" {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "account or date filter is required")
	}

	query := s.db.Model(&models.AccountSnapshot{})
	if account != "" {
		query = query.Where("account_name = ?", account)
	}
	if date != "" {
		query = query.Where("strftime('%Y-%m-%d', date) = ?", date)
	}

	result := query.Delete(&models.AccountSnapshot{})
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}

// AccountNames returns all distinct account names with snapshot history.
func (s *snapshotService) AccountNames() ([]string, error) {
	var names []string
	if err := s.db.Model(&models.AccountSnapshot{}).
		Distinct("account_name").Order("account_name ASC").
		Pluck("account_name", &names).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return names, nil
}
