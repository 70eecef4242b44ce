package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "stockledger/internal/errors"
	"stockledger/internal/logger"
	"stockledger/internal/models"
	"stockledger/internal/store"
	"stockledger/internal/uuid"
)

// ledgerService applies purchases, sales and deletions to a user's holdings
// and appends the matching entries to the transaction log.
//
// Every mutation is a read-modify-write of the profile. It runs under the
// user's lock, and the holding-set write is a compare-and-swap on the
// profile revision, so concurrent writers cannot silently lose updates.
type ledgerService struct {
	store store.UserStore
	locks *userLocks
	log   *zap.SugaredLogger
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(userStore store.UserStore) LedgerServicer {
	return &ledgerService{
		store: userStore,
		locks: newUserLocks(),
		log:   logger.Named("ledger"),
	}
}

// EnsureProfile creates an empty profile for userID if none exists and
// backfills the transaction log of legacy profiles. Existing holdings and
// transactions are never touched.
func (s *ledgerService) EnsureProfile(ctx context.Context, userID, email string) (*models.Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user id is required")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	profile, err := s.store.Load(ctx, userID)
	switch {
	case errors.Is(err, apperrors.ErrProfileNotFound):
		profile = &models.Profile{
			UID:               userID,
			Email:             email,
			HasTransactionLog: true,
		}
		if err := s.store.Create(ctx, profile); err != nil {
			return nil, err
		}
		s.log.Infow("profile created", "user_id", userID)
		profile.Holdings = []models.Holding{}
		profile.Transactions = []models.Transaction{}
		return profile, nil
	case err != nil:
		return nil, err
	}

	if !profile.HasTransactionLog {
		if err := s.store.InitTransactionLog(ctx, userID); err != nil {
			return nil, err
		}
		s.log.Infow("transaction log backfilled", "user_id", userID)
		profile.HasTransactionLog = true
		profile.Transactions = []models.Transaction{}
	}
	return profile, nil
}

// RecordPurchase absorbs a purchase lot into the user's holding for symbol,
// creating the holding on first purchase, and logs a purchase transaction.
// It returns the holding after the update.
//
// If appending the transaction fails after the holding set was written, the
// holding stays updated and the error is returned; there is no rollback.
func (s *ledgerService) RecordPurchase(
	ctx context.Context,
	userID, symbol, companyName string,
	shares, price decimal.Decimal,
	date models.Date,
) (*models.Holding, error) {
	if !shares.IsPositive() || !price.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "shares and price must be positive")
	}
	if err := checkScale(shares, price); err != nil {
		return nil, err
	}
	symbol = models.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	}
	date = date.OrToday()

	unlock := s.locks.Lock(userID)
	defer unlock()

	profile, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	holdings := slices.Clone(profile.Holdings)
	var result models.Holding
	if i := profile.HoldingBySymbol(symbol); i >= 0 {
		result = holdings[i]
		result.AbsorbLot(shares, price, date)
		holdings[i] = result
	} else {
		result = models.Holding{
			Base:              models.Base{ID: uuid.New()},
			ProfileID:         userID,
			Symbol:            symbol,
			CompanyName:       strings.TrimSpace(companyName),
			Shares:            shares,
			AverageCostBasis:  models.Round2(price),
			FirstPurchaseDate: date,
		}
		holdings = append(holdings, result)
	}

	if _, err := s.store.ReplaceHoldings(ctx, userID, profile.Revision, holdings); err != nil {
		return nil, err
	}

	entry := models.NewTrade(models.TransactionPurchase, symbol, shares, price, date)
	if err := s.store.AppendTransaction(ctx, userID, &entry); err != nil {
		s.log.Errorw("holding updated without purchase transaction",
			"user_id", userID, "symbol", symbol, "holding_id", result.ID, "error", err)
		return nil, err
	}

	s.log.Infow("purchase recorded",
		"user_id", userID,
		"symbol", symbol,
		"shares", shares.String(),
		"price", price.String(),
		"average_cost_basis", result.AverageCostBasis.String(),
	)
	return &result, nil
}

// SellShares removes sharesToSell from the holding and logs a sale. Selling
// every share removes the holding; a partial sale keeps the average cost.
// Over-selling fails with ErrInsufficientShares and writes nothing.
func (s *ledgerService) SellShares(
	ctx context.Context,
	userID, holdingID string,
	sharesToSell, salePrice decimal.Decimal,
	date models.Date,
) error {
	if !sharesToSell.IsPositive() || !salePrice.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "shares and price must be positive")
	}
	if err := checkScale(sharesToSell, salePrice); err != nil {
		return err
	}
	date = date.OrToday()

	unlock := s.locks.Lock(userID)
	defer unlock()

	profile, err := s.store.Load(ctx, userID)
	if err != nil {
		return err
	}

	i := profile.HoldingByID(holdingID)
	if i < 0 {
		return apperrors.ErrHoldingNotFound
	}
	holding := profile.Holdings[i]

	if sharesToSell.GreaterThan(holding.Shares) {
		return apperrors.WithMessage(apperrors.ErrInsufficientShares,
			"Cannot sell "+sharesToSell.String()+" shares of "+holding.Symbol+", only "+holding.Shares.String()+" held")
	}

	holdings := slices.Clone(profile.Holdings)
	if sharesToSell.Equal(holding.Shares) {
		holdings = slices.Delete(holdings, i, i+1)
	} else {
		holdings[i].Shares = holding.Shares.Sub(sharesToSell)
	}

	if _, err := s.store.ReplaceHoldings(ctx, userID, profile.Revision, holdings); err != nil {
		return err
	}

	entry := models.NewTrade(models.TransactionSale, holding.Symbol, sharesToSell, salePrice, date)
	if err := s.store.AppendTransaction(ctx, userID, &entry); err != nil {
		s.log.Errorw("holding updated without sale transaction",
			"user_id", userID, "symbol", holding.Symbol, "holding_id", holdingID, "error", err)
		return err
	}

	s.log.Infow("sale recorded",
		"user_id", userID,
		"symbol", holding.Symbol,
		"shares", sharesToSell.String(),
		"price", salePrice.String(),
		"closed", len(holdings) < len(profile.Holdings),
	)
	return nil
}

// checkScale rejects share counts and prices with more decimal places than
// the ledger stores.
func checkScale(shares, price decimal.Decimal) error {
	if !models.FitsScale(shares, models.ShareScale) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("shares may have at most %d decimal places", models.ShareScale))
	}
	if !models.FitsScale(price, models.PriceScale) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("price may have at most %d decimal places", models.PriceScale))
	}
	return nil
}

// DeleteHolding removes a holding regardless of its share count. It is a
// correction path, so no transaction is logged.
func (s *ledgerService) DeleteHolding(ctx context.Context, userID, holdingID string) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	profile, err := s.store.Load(ctx, userID)
	if err != nil {
		return err
	}

	i := profile.HoldingByID(holdingID)
	if i < 0 {
		return apperrors.ErrHoldingNotFound
	}

	holdings := slices.Delete(slices.Clone(profile.Holdings), i, i+1)
	if _, err := s.store.ReplaceHoldings(ctx, userID, profile.Revision, holdings); err != nil {
		return err
	}

	s.log.Infow("holding deleted", "user_id", userID, "holding_id", holdingID, "symbol", profile.Holdings[i].Symbol)
	return nil
}

// GetHoldings returns the user's holdings. A missing profile reads as empty.
func (s *ledgerService) GetHoldings(ctx context.Context, userID string) ([]models.Holding, error) {
	profile, err := s.store.Load(ctx, userID)
	if errors.Is(err, apperrors.ErrProfileNotFound) {
		s.log.Debugw("holdings requested for missing profile", "user_id", userID)
		return []models.Holding{}, nil
	}
	if err != nil {
		return nil, err
	}
	if profile.Holdings == nil {
		return []models.Holding{}, nil
	}
	return profile.Holdings, nil
}

// GetTransactions returns the user's transaction log in insertion order.
// A missing profile or log reads as empty.
func (s *ledgerService) GetTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	profile, err := s.store.Load(ctx, userID)
	if errors.Is(err, apperrors.ErrProfileNotFound) {
		s.log.Debugw("transactions requested for missing profile", "user_id", userID)
		return []models.Transaction{}, nil
	}
	if err != nil {
		return nil, err
	}
	if profile.Transactions == nil {
		return []models.Transaction{}, nil
	}
	return profile.Transactions, nil
}
