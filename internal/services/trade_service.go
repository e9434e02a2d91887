// internal/services/trade_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookswap/bookswap-api/internal/database"
	"github.com/bookswap/bookswap-api/internal/models"
	"github.com/bookswap/bookswap-api/internal/utils"
)

// TradeService enforces the trade lifecycle:
//
//	proposed  --respond(accepted)-->              accepted
//	proposed  --respond(rejected)-->              rejected
//	proposed  --respond(countered,+book)-->       countered
//	countered --counter(accept) [requester]-->    accepted
//	countered --counter(decline) [requester]-->   rejected
//	proposed|countered --cancel-->                cancelled
//	accepted  --complete [owner]-->               awaiting_requester
//	awaiting_requester --complete [requester]-->  completed
//
// Both books are reserved (status pending) the moment a trade is accepted
// and handed to their new owners when it completes. Every state transition
// is a conditional update keyed on the prior status so concurrent callers
// cannot double-apply it.
type TradeService struct {
	db *gorm.DB
}

type InitiateTradeRequest struct {
	OfferedBookID   uuid.UUID `json:"offered_book_id" validate:"required"`
	RequestedBookID uuid.UUID `json:"requested_book_id" validate:"required"`
	Notes           string    `json:"notes,omitempty"`
}

type RespondTradeRequest struct {
	Status         models.TradeStatus `json:"status" validate:"required"`
	ProposedBookID *uuid.UUID         `json:"proposed_book_id,omitempty"`
	Notes          string             `json:"notes,omitempty"`
}

type CounterResponseRequest struct {
	Accept bool   `json:"accept"`
	Notes  string `json:"notes,omitempty"`
}

func NewTradeService(db *gorm.DB) *TradeService {
	return &TradeService{db: db}
}

// Initiate creates a proposed trade. The offered book must belong to the
// requester, the requested book must not, and both must be available.
// Neither book record is touched.
func (s *TradeService) Initiate(requesterID uuid.UUID, req *InitiateTradeRequest) (*models.Trade, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	offeredBook, err := s.findBook(s.db, req.OfferedBookID)
	if err != nil {
		return nil, err
	}
	requestedBook, err := s.findBook(s.db, req.RequestedBookID)
	if err != nil {
		return nil, err
	}

	if offeredBook.OwnerID != requesterID {
		return nil, fmt.Errorf("%w: offered book is not yours", ErrInvalidOwnership)
	}
	if requestedBook.OwnerID == requesterID {
		return nil, fmt.Errorf("%w: cannot request a book you already own", ErrInvalidOwnership)
	}
	if offeredBook.Status != models.BookStatusAvailable || requestedBook.Status != models.BookStatusAvailable {
		return nil, ErrBookUnavailable
	}

	trade := &models.Trade{
		RequesterID:        requesterID,
		OwnerID:            requestedBook.OwnerID,
		OfferedBookID:      req.OfferedBookID,
		RequestedBookID:    req.RequestedBookID,
		Status:             models.TradeStatusProposed,
		NotesFromRequester: req.Notes,
	}

	if err := s.db.Create(trade).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to create trade: %v", ErrStorageFailure, err)
	}

	return s.Get(trade.ID)
}

// Respond records the owner's answer to a proposed trade: accept, reject,
// or counter with another of their books. Only valid while the trade is
// still proposed.
func (s *TradeService) Respond(tradeID, ownerID uuid.UUID, req *RespondTradeRequest) (*models.Trade, error) {
	trade, err := s.findTrade(s.db, tradeID)
	if err != nil {
		return nil, err
	}

	if trade.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}

	switch req.Status {
	case models.TradeStatusAccepted, models.TradeStatusRejected, models.TradeStatusCountered:
	default:
		return nil, ErrInvalidStatus
	}

	// Every arm below compare-and-swaps away from the same state the
	// guard just checked.
	from := models.TradeStatusProposed
	if trade.Status != from {
		return nil, ErrInvalidTransition
	}

	switch req.Status {
	case models.TradeStatusRejected:
		err = s.transition(s.db, trade.ID, from, map[string]interface{}{
			"status":           models.TradeStatusRejected,
			"notes_from_owner": req.Notes,
		})

	case models.TradeStatusCountered:
		if req.ProposedBookID == nil {
			return nil, fmt.Errorf("%w: proposed book is required for a counter-offer", ErrInvalidProposal)
		}
		var proposedBook *models.Book
		proposedBook, err = s.findBook(s.db, *req.ProposedBookID)
		if err != nil {
			if errors.Is(err, ErrBookNotFound) {
				return nil, ErrInvalidProposal
			}
			return nil, err
		}
		if proposedBook.OwnerID != ownerID || proposedBook.Status != models.BookStatusAvailable {
			return nil, ErrInvalidProposal
		}
		err = s.transition(s.db, trade.ID, from, map[string]interface{}{
			"status":                      models.TradeStatusCountered,
			"proposed_book_from_owner_id": *req.ProposedBookID,
			"notes_from_owner":            req.Notes,
		})

	case models.TradeStatusAccepted:
		err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
			if err := s.reserveBooks(tx, trade.OfferedBookID, trade.RequesterID, trade.RequestedBookID, trade.OwnerID); err != nil {
				return err
			}
			return s.transition(tx, trade.ID, from, map[string]interface{}{
				"status":           models.TradeStatusAccepted,
				"notes_from_owner": req.Notes,
			})
		})
	}

	if err != nil {
		return nil, err
	}
	return s.Get(trade.ID)
}

// RespondToCounter lets the requester settle an owner counter-offer.
// Accepting reserves the offered book and the counter-offered book and
// moves the trade to accepted; declining ends it as rejected.
func (s *TradeService) RespondToCounter(tradeID, requesterID uuid.UUID, req *CounterResponseRequest) (*models.Trade, error) {
	trade, err := s.findTrade(s.db, tradeID)
	if err != nil {
		return nil, err
	}

	if trade.RequesterID != requesterID {
		return nil, ErrUnauthorized
	}
	from := models.TradeStatusCountered
	if trade.Status != from {
		return nil, ErrInvalidTransition
	}

	if !req.Accept {
		err = s.transition(s.db, trade.ID, from, map[string]interface{}{
			"status": models.TradeStatusRejected,
		})
		if err != nil {
			return nil, err
		}
		return s.Get(trade.ID)
	}

	updates := map[string]interface{}{
		"status": models.TradeStatusAccepted,
	}
	if req.Notes != "" {
		updates["notes_from_requester"] = req.Notes
	}
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := s.reserveBooks(tx, trade.OfferedBookID, trade.RequesterID, *trade.ProposedBookFromOwnerID, trade.OwnerID); err != nil {
			return err
		}
		return s.transition(tx, trade.ID, from, updates)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(trade.ID)
}

// Cancel withdraws a trade that has not been agreed yet. Either party may
// cancel; accepted and completed trades cannot be cancelled.
func (s *TradeService) Cancel(tradeID, userID uuid.UUID) (*models.Trade, error) {
	trade, err := s.findTrade(s.db, tradeID)
	if err != nil {
		return nil, err
	}

	if !trade.IsParty(userID) {
		return nil, ErrUnauthorized
	}

	if trade.Status != models.TradeStatusProposed && trade.Status != models.TradeStatusCountered {
		return nil, ErrInvalidTransition
	}

	err = s.transition(s.db, trade.ID, trade.Status, map[string]interface{}{
		"status": models.TradeStatusCancelled,
	})
	if err != nil {
		return nil, err
	}
	return s.Get(trade.ID)
}

// Complete drives the two-phase handshake. The owner confirms first,
// moving the trade to awaiting_requester; the requester's confirmation
// then finalizes it: inside one transaction the trade is marked completed
// and both books change hands, so ownership can never end up half-swapped.
func (s *TradeService) Complete(tradeID, userID uuid.UUID) (*models.Trade, error) {
	trade, err := s.findTrade(s.db, tradeID)
	if err != nil {
		return nil, err
	}

	if !trade.IsParty(userID) {
		return nil, ErrUnauthorized
	}

	switch trade.Status {
	case models.TradeStatusAccepted:
		if userID != trade.OwnerID {
			// Requester is confirming before the owner has.
			return nil, ErrAwaitingCounterparty
		}
		err = s.transition(s.db, trade.ID, models.TradeStatusAccepted, map[string]interface{}{
			"status": models.TradeStatusAwaitingRequester,
		})

	case models.TradeStatusAwaitingRequester:
		if userID != trade.RequesterID {
			// Owner already confirmed; a second owner call is a no-op error.
			return nil, ErrAwaitingCounterparty
		}
		now := time.Now()
		receivedBookID := trade.ReceivedBookID()
		err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
			if err := s.transition(tx, trade.ID, models.TradeStatusAwaitingRequester, map[string]interface{}{
				"status":     models.TradeStatusCompleted,
				"trade_date": now,
			}); err != nil {
				return err
			}

			// Absolute owner assignments; re-applying them is safe.
			if err := s.handOver(tx, trade.OfferedBookID, trade.OwnerID); err != nil {
				return err
			}
			return s.handOver(tx, receivedBookID, trade.RequesterID)
		})

	default:
		return nil, ErrInvalidTransition
	}

	if err != nil {
		return nil, err
	}
	return s.Get(trade.ID)
}

// ListForUser returns every trade in which the user is requester or owner.
func (s *TradeService) ListForUser(userID uuid.UUID) ([]models.Trade, error) {
	var trades []models.Trade
	err := s.preloaded(s.db).
		Where("requester_id = ? OR owner_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&trades).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch trades: %v", ErrStorageFailure, err)
	}
	return trades, nil
}

func (s *TradeService) Get(id uuid.UUID) (*models.Trade, error) {
	var trade models.Trade
	if err := s.preloaded(s.db).First(&trade, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTradeNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return &trade, nil
}

// transition applies a conditional status update: it only succeeds if the
// trade row still carries the expected status, so two concurrent callers
// cannot both win the same transition.
func (s *TradeService) transition(tx *gorm.DB, tradeID uuid.UUID, from models.TradeStatus, updates map[string]interface{}) error {
	res := tx.Model(&models.Trade{}).
		Where("id = ? AND status = ?", tradeID, from).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("%w: failed to update trade: %v", ErrStorageFailure, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// reserveBooks re-validates current ownership of both sides of the deal
// and marks the books pending, each via a conditional update keyed on the
// available status.
func (s *TradeService) reserveBooks(tx *gorm.DB, offeredID, requesterID, receivedID, ownerID uuid.UUID) error {
	if err := s.reserve(tx, offeredID, requesterID); err != nil {
		return err
	}
	return s.reserve(tx, receivedID, ownerID)
}

func (s *TradeService) reserve(tx *gorm.DB, bookID, expectedOwnerID uuid.UUID) error {
	book, err := s.findBook(tx, bookID)
	if err != nil {
		return err
	}
	if book.OwnerID != expectedOwnerID {
		return fmt.Errorf("%w: book changed hands since the trade was proposed", ErrInvalidOwnership)
	}

	res := tx.Model(&models.Book{}).
		Where("id = ? AND owner_id = ? AND status = ?", bookID, expectedOwnerID, models.BookStatusAvailable).
		Update("status", models.BookStatusPending)
	if res.Error != nil {
		return fmt.Errorf("%w: failed to reserve book: %v", ErrStorageFailure, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBookUnavailable
	}
	return nil
}

func (s *TradeService) handOver(tx *gorm.DB, bookID, newOwnerID uuid.UUID) error {
	res := tx.Model(&models.Book{}).
		Where("id = ?", bookID).
		Updates(map[string]interface{}{
			"owner_id": newOwnerID,
			"status":   models.BookStatusAvailable,
		})
	if res.Error != nil {
		return fmt.Errorf("%w: failed to reassign book owner: %v", ErrStorageFailure, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (s *TradeService) findTrade(tx *gorm.DB, id uuid.UUID) (*models.Trade, error) {
	var trade models.Trade
	if err := tx.First(&trade, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTradeNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return &trade, nil
}

func (s *TradeService) findBook(tx *gorm.DB, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	if err := tx.First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return &book, nil
}

func (s *TradeService) preloaded(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Requester").
		Preload("Owner").
		Preload("OfferedBook").
		Preload("RequestedBook").
		Preload("ProposedBookFromOwner")
}
