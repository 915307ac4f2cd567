package learning

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/finbook/finbook/internal/rest"
	log "github.com/sirupsen/logrus"
)

type ItemDTO struct {
	Id       int    `json:"id,omitempty"`
	ItemType string `json:"type"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	Image    string `json:"image,omitempty"`
}

// Handler serves the shared learning content. Publishing requires the
// configured code; reading does not.
type Handler struct {
	repo        Repo
	publishCode string
}

func NewHandler(repo Repo, publishCode string) *Handler {
	return &Handler{repo: repo, publishCode: publishCode}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	items, err := h.repo.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, ItemDTO{
			Id:       item.Id,
			ItemType: item.ItemType,
			Name:     item.Name,
			Content:  item.Content,
			Image:    item.Image,
		})
	}
	response := struct {
		Items []ItemDTO `json:"items"`
	}{dtos}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto struct {
		Code string `json:"code"`
		ItemDTO
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	if h.publishCode == "" || subtle.ConstantTimeCompare([]byte(dto.Code), []byte(h.publishCode)) != 1 {
		log.Debug("learning publish rejected: wrong code")
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid code"})
		return
	}

	created, err := h.repo.Append(r.Context(), Item{
		ItemType: dto.ItemType,
		Name:     dto.Name,
		Content:  dto.Content,
		Image:    dto.Image,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	response := ItemDTO{
		Id:       created.Id,
		ItemType: created.ItemType,
		Name:     created.Name,
		Content:  created.Content,
		Image:    created.Image,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
