package ledger

import (
	"context"
	"encoding/json"
	"sync"

	"famfolio-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Price sources recorded on trade events.
const (
	PriceSourceLive      = "live"
	PriceSourceCostBasis = "cost_basis"
)

// Service is the ledger store: account balances, holdings and the append-only
// transaction log. All mutations for one trade go through ApplyTrade as a
// single atomic unit.
//
// Trades for the same user serialize on a per-user mutex held only around the
// database transaction (quote fetches happen before the caller gets here).
// Trades for different users never contend.
type Service struct {
	DB *gorm.DB

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db, locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (s *Service) userLock(userID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// Account returns the user's account.
func (s *Service) Account(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	var acct domain.Account
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&acct).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &acct, nil
}

// Holding returns the user's position in one ticker, or ErrHoldingNotFound.
func (s *Service) Holding(ctx context.Context, userID uuid.UUID, ticker string) (*domain.Holding, error) {
	var h domain.Holding
	if err := s.DB.WithContext(ctx).Where("user_id = ? AND ticker = ?", userID, ticker).First(&h).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrHoldingNotFound
		}
		return nil, err
	}
	return &h, nil
}

// Holdings returns all positions for a user, ordered by ticker.
func (s *Service) Holdings(ctx context.Context, userID uuid.UUID) ([]domain.Holding, error) {
	var hs []domain.Holding
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("ticker ASC").Find(&hs).Error; err != nil {
		return nil, err
	}
	return hs, nil
}

// History returns the user's trade records, newest first. Timestamp ties are
// broken by insertion order (tx_id).
func (s *Service) History(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, tx_id DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// TradeApply describes one validated trade to be applied atomically.
// Price is the execution price, already rounded to 2 decimals.
type TradeApply struct {
	Type        string
	Ticker      string
	Shares      int64
	Price       decimal.Decimal
	PriceSource string
}

// ApplyTrade applies balance change, holding change, transaction append and
// trade-event append as one database transaction. Funds/shares are
// re-validated against a fresh snapshot inside the transaction, so a stale
// precheck can never overdraw the balance or oversell a position. On any
// error the whole trade rolls back; no partial state is visible.
func (s *Service) ApplyTrade(ctx context.Context, userID uuid.UUID, ap TradeApply) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var acct domain.Account
		if err := tx.Where("user_id = ?", userID).First(&acct).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrAccountNotFound
			}
			return err
		}

		amount := ap.Price.Mul(decimal.NewFromInt(ap.Shares)).Round(2)

		switch ap.Type {
		case domain.TradeTypeBuy:
			if acct.Balance.LessThan(amount) {
				return ErrInsufficientFunds
			}
			acct.Balance = acct.Balance.Sub(amount)
			if err := tx.Model(&domain.Account{}).Where("account_id = ?", acct.AccountID).
				Update("balance", acct.Balance).Error; err != nil {
				return err
			}
			if err := applyBuyHolding(tx, userID, ap); err != nil {
				return err
			}
		case domain.TradeTypeSell:
			var h domain.Holding
			err := tx.Where("user_id = ? AND ticker = ?", userID, ap.Ticker).First(&h).Error
			if err == gorm.ErrRecordNotFound || (err == nil && h.Shares < ap.Shares) {
				return ErrInsufficientShares
			}
			if err != nil {
				return err
			}
			acct.Balance = acct.Balance.Add(amount)
			if err := tx.Model(&domain.Account{}).Where("account_id = ?", acct.AccountID).
				Update("balance", acct.Balance).Error; err != nil {
				return err
			}
			if h.Shares == ap.Shares {
				if err := tx.Delete(&domain.Holding{}, "holding_id = ?", h.HoldingID).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Model(&domain.Holding{}).Where("holding_id = ?", h.HoldingID).
					Update("shares", h.Shares-ap.Shares).Error; err != nil {
					return err
				}
			}
		default:
			return gorm.ErrInvalidData
		}

		record := domain.Transaction{
			UserID: userID,
			Type:   ap.Type,
			Ticker: ap.Ticker,
			Shares: ap.Shares,
			Price:  ap.Price,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		eventData, _ := json.Marshal(map[string]interface{}{
			"price_source":  ap.PriceSource,
			"amount":        amount.String(),
			"balance_after": acct.Balance.String(),
		})
		return tx.Create(&domain.TradeEvent{
			TxID:      &record.TxID,
			UserID:    userID,
			EventType: domain.TradeEventExecuted,
			EventData: datatypes.JSON(eventData),
		}).Error
	})
}

// applyBuyHolding upserts the holding for a buy. Top-ups recompute avg_price
// as the quantity-weighted average of the old lot and the new lot.
func applyBuyHolding(tx *gorm.DB, userID uuid.UUID, ap TradeApply) error {
	var h domain.Holding
	err := tx.Where("user_id = ? AND ticker = ?", userID, ap.Ticker).First(&h).Error
	if err == gorm.ErrRecordNotFound {
		return tx.Create(&domain.Holding{
			UserID:   userID,
			Ticker:   ap.Ticker,
			Shares:   ap.Shares,
			AvgPrice: ap.Price,
		}).Error
	}
	if err != nil {
		return err
	}

	oldQty := decimal.NewFromInt(h.Shares)
	newQty := decimal.NewFromInt(ap.Shares)
	totalQty := oldQty.Add(newQty)
	avg := h.AvgPrice.Mul(oldQty).Add(ap.Price.Mul(newQty)).Div(totalQty).Round(2)

	return tx.Model(&domain.Holding{}).Where("holding_id = ?", h.HoldingID).
		Updates(map[string]interface{}{
			"shares":    h.Shares + ap.Shares,
			"avg_price": avg,
		}).Error
}
