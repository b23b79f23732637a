package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"server/internal/domain"
)

type hadithRequest struct {
	Text string `json:"text"`
	Date string `json:"date"`
}

// HadithCreate adds a hadith entry.
func (a *App) HadithCreate(w http.ResponseWriter, r *http.Request) {
	var req hadithRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Text == "" {
		a.error(w, http.StatusBadRequest, "Text required")
		return
	}
	hadith := &domain.Hadith{
		Text:      req.Text,
		Date:      req.Date,
		CreatedAt: time.Now(),
	}
	if err := a.Hadith.Insert(r.Context(), hadith); err != nil {
		a.storeError(w, err, "hadith insert failed")
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"insertedId": hadith.ID.Hex()})
}

// HadithList returns one page of entries matching the search term plus the
// total match count.
func (a *App) HadithList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
	items, total, err := a.Hadith.Search(r.Context(), q.Get("search"), page, limit)
	if err != nil {
		a.storeError(w, err, "hadith list failed")
		return
	}
	if items == nil {
		items = []domain.Hadith{}
	}
	a.json(w, http.StatusOK, map[string]any{"hadith": items, "count": total})
}

// HadithAll returns every entry.
func (a *App) HadithAll(w http.ResponseWriter, r *http.Request) {
	items, err := a.Hadith.All(r.Context())
	if err != nil {
		a.storeError(w, err, "hadith list failed")
		return
	}
	if items == nil {
		items = []domain.Hadith{}
	}
	a.json(w, http.StatusOK, map[string]any{"hadith": items})
}

// HadithUpdate applies a sparse update to one entry.
func (a *App) HadithUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "Invalid hadith id")
		return
	}
	var req struct {
		Text *string `json:"text"`
		Date *string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	set := bson.M{}
	if req.Text != nil {
		set["text"] = *req.Text
	}
	if req.Date != nil {
		set["date"] = *req.Date
	}
	if len(set) == 0 {
		a.error(w, http.StatusBadRequest, "No updatable fields in request")
		return
	}
	set["updatedAt"] = time.Now()
	matched, modified, err := a.Hadith.Update(r.Context(), id, set)
	if err != nil {
		a.storeError(w, err, "hadith update failed")
		return
	}
	if matched == 0 {
		a.error(w, http.StatusNotFound, "Hadith not found")
		return
	}
	a.json(w, http.StatusOK, map[string]int64{
		"matchedCount":  matched,
		"modifiedCount": modified,
	})
}

// HadithDelete removes one entry.
func (a *App) HadithDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "Invalid hadith id")
		return
	}
	deleted, err := a.Hadith.Delete(r.Context(), id)
	if err != nil {
		a.storeError(w, err, "hadith delete failed")
		return
	}
	if deleted == 0 {
		a.error(w, http.StatusNotFound, "Hadith not found")
		return
	}
	a.json(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}
