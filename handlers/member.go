package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"lms-backend/models"
	"lms-backend/store"
)

// MemberHandler covers the admin-only member profile routes.
type MemberHandler struct {
	Store Store
}

func NewMemberHandler(store Store) *MemberHandler {
	return &MemberHandler{Store: store}
}

// MembersCollection dispatches /api/admin/members by method.
func (h *MemberHandler) MembersCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createMember(w, r)
	case http.MethodGet:
		h.listMembers(w, r)
	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// MembersItem dispatches /api/admin/members/{id} by method.
func (h *MemberHandler) MembersItem(w http.ResponseWriter, r *http.Request) {
	id, err := extractStringID(r.URL.Path, "/api/admin/members/")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.updateMember(w, r, id)
	case http.MethodDelete:
		h.deleteMember(w, r, id)
	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *MemberHandler) createMember(w http.ResponseWriter, r *http.Request) {
	var member models.Member
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if member.Name == "" {
		respondError(w, http.StatusBadRequest, "Name required")
		return
	}

	if err := h.Store.CreateMember(&member); err != nil {
		log.Println("Create member error:", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondJSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Store.ListMembers()
	if err != nil {
		log.Println("List members error:", err)
		respondError(w, http.StatusInternalServerError, "Error fetching members")
		return
	}
	respondJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) updateMember(w http.ResponseWriter, r *http.Request, id string) {
	existing, err := h.Store.GetMemberByID(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Member not found")
		return
	}

	var member models.Member
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	member.ID = existing.ID
	member.JoinedDate = existing.JoinedDate
	if member.Status == "" {
		member.Status = existing.Status
	}

	if err := h.Store.UpdateMember(&member); err != nil && !errors.Is(err, store.ErrMemberNotFound) {
		log.Println("Update member error:", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondMessage(w, http.StatusOK, "Member updated successfully")
}

func (h *MemberHandler) deleteMember(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.Store.DeleteMember(id); err != nil {
		if errors.Is(err, store.ErrMemberNotFound) {
			respondError(w, http.StatusNotFound, "Member not found")
			return
		}
		log.Println("Delete member error:", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondMessage(w, http.StatusOK, "Member deleted successfully")
}
