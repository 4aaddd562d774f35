package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"lms-backend/middleware"
	"lms-backend/store"
)

// BorrowHandler covers the borrow lifecycle: request, approve/reject,
// return, and the listings built on top of it.
type BorrowHandler struct {
	Store Store
}

func NewBorrowHandler(store Store) *BorrowHandler {
	return &BorrowHandler{Store: store}
}

// RequestBorrow files a pending borrow request for the caller.
func (h *BorrowHandler) RequestBorrow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var payload struct {
		BookID int `json:"book_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	_, err := h.Store.CreateBorrowRequest(claims.UserID, payload.BookID)
	if errors.Is(err, store.ErrBookNotFound) || errors.Is(err, store.ErrBookUnavailable) {
		respondError(w, http.StatusBadRequest, "Book unavailable")
		return
	}
	if err != nil {
		log.Println("Borrow request error:", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondMessage(w, http.StatusCreated, "Borrow request submitted")
}

// DecideBorrow approves or rejects a pending request (admin only).
func (h *BorrowHandler) DecideBorrow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	requestID, err := extractID(r.URL.Path, "/api/borrow/request/")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	var payload struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	switch payload.Action {
	case "approve":
		_, err = h.Store.ApproveBorrowRequest(requestID)
		if err == nil {
			respondMessage(w, http.StatusOK, "Borrow approved")
			return
		}
	case "reject":
		err = h.Store.RejectBorrowRequest(requestID)
		if err == nil {
			respondMessage(w, http.StatusOK, "Borrow rejected")
			return
		}
	default:
		respondError(w, http.StatusBadRequest, "Invalid action")
		return
	}

	switch {
	case errors.Is(err, store.ErrRequestNotFound):
		respondError(w, http.StatusNotFound, "Request not found")
	case errors.Is(err, store.ErrRequestDecided):
		respondError(w, http.StatusBadRequest, "Request already decided")
	case errors.Is(err, store.ErrBookUnavailable):
		respondError(w, http.StatusBadRequest, "Book unavailable")
	default:
		log.Println("Decide borrow error:", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// ReturnBook marks a borrow record returned and restocks the copy (admin
// only). Returning a record twice is rejected rather than double-counted.
func (h *BorrowHandler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	recordID, err := extractID(r.URL.Path, "/api/borrow/return/")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	_, err = h.Store.ReturnBorrowRecord(recordID)
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, "Record not found")
	case errors.Is(err, store.ErrRecordReturned):
		respondError(w, http.StatusBadRequest, "Record already returned")
	case err != nil:
		log.Println("Return book error:", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong")
	default:
		respondMessage(w, http.StatusOK, "Book returned")
	}
}

// MyBorrows lists the caller's borrow records, all statuses.
func (h *BorrowHandler) MyBorrows(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	records, err := h.Store.ListBorrowsByUser(claims.UserID)
	if err != nil {
		log.Println("My borrows error:", err)
		respondError(w, http.StatusInternalServerError, "Error fetching borrows")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// AdminBorrows serves the aggregated overview of pending requests, open
// records and completed returns (admin only).
func (h *BorrowHandler) AdminBorrows(w http.ResponseWriter, r *http.Request) {
	activity, err := h.Store.ListBorrowActivity()
	if err != nil {
		log.Println("Admin borrows error:", err)
		respondError(w, http.StatusInternalServerError, "Error fetching borrow activity")
		return
	}
	respondJSON(w, http.StatusOK, activity)
}
