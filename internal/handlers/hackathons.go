package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"hackhub/internal/listing"
	"hackhub/internal/moderation"
	"hackhub/models"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// hackathonView - хакатон для публичной выдачи. CurrentStatus вычисляется
// по датам на момент запроса и служит только для отображения, источником
// истины остается сохраненный status.
type hackathonView struct {
	models.Hackathon
	CurrentStatus    models.Status `json:"currentStatus"`
	RegistrationOpen bool          `json:"registrationOpen"`
	// -1, если регистрация закрыта
	DaysUntilDeadline int `json:"daysUntilDeadline"`
}

func (h *Handler) view(item models.Hackathon, now time.Time) hackathonView {
	return hackathonView{
		Hackathon:         item,
		CurrentStatus:     listing.DeriveStatus(item.StartDate, item.EndDate, now),
		RegistrationOpen:  listing.RegistrationOpen(&item, now),
		DaysUntilDeadline: listing.DaysUntilDeadline(&item, now),
	}
}

type moderationResponse struct {
	Message   string            `json:"message"`
	Hackathon *models.Hackathon `json:"hackathon"`
}

// SubmitHackathonHandler обрабатывает POST /api/hackathons/submit
func (h *Handler) SubmitHackathonHandler(w http.ResponseWriter, r *http.Request) {
	// Ограничение размера тела
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	defer r.Body.Close()

	var sub moderation.Submission
	if err := json.Unmarshal(body, &sub); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	created, err := h.Moderation.Submit(r.Context(), sub)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, moderationResponse{
		Message:   "Hackathon submitted successfully",
		Hackathon: created,
	})
}

// GetHackathonsHandler возвращает публичные хакатоны с необязательными
// фильтрами state, district, college, status, tag, startDate, endDate и q
func (h *Handler) GetHackathonsHandler(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.Moderation.ListPublic(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	now := h.Clock.Now()
	items = listing.Apply(items, criteria, r.URL.Query().Get("q"), now)

	out := make([]hackathonView, 0, len(items))
	for _, item := range items {
		out = append(out, h.view(item, now))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetPendingHackathonsHandler - заявки на модерации, только для администратора
func (h *Handler) GetPendingHackathonsHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.Moderation.ListPending(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []models.Hackathon{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetHackathonHandler возвращает проверенный хакатон по id
func (h *Handler) GetHackathonHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeMessage(w, http.StatusBadRequest, "Invalid id")
		return
	}

	item, err := h.Moderation.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(*item, h.Clock.Now()))
}

// ApproveHackathonHandler обрабатывает PUT /api/hackathons/{id}/approve
func (h *Handler) ApproveHackathonHandler(w http.ResponseWriter, r *http.Request) {
	item, err := h.Moderation.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, moderationResponse{Message: "Hackathon approved", Hackathon: item})
}

// RejectHackathonHandler обрабатывает PUT /api/hackathons/{id}/reject
func (h *Handler) RejectHackathonHandler(w http.ResponseWriter, r *http.Request) {
	item, err := h.Moderation.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, moderationResponse{Message: "Hackathon rejected", Hackathon: item})
}

type facetsResponse struct {
	States    []string `json:"states"`
	Districts []string `json:"districts"`
	Colleges  []string `json:"colleges"`
	Tags      []string `json:"tags"`
	Statuses  []string `json:"statuses"`
}

// GetFacetsHandler отдает значения для панели фильтров
func (h *Handler) GetFacetsHandler(w http.ResponseWriter, r *http.Request) {
	colleges, err := h.Store.GetPublicColleges(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	tags, err := h.Store.GetPublicTags(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, facetsResponse{
		States:    listing.States(),
		Districts: listing.Districts(listing.AllStates),
		Colleges:  append([]string{listing.AllColleges}, colleges...),
		Tags:      append([]string{listing.AllTags}, tags...),
		Statuses:  listing.Statuses(),
	})
}

// GetDistrictsHandler - районы выбранного штата
func (h *Handler) GetDistrictsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listing.Districts(r.URL.Query().Get("state")))
}

func parseCriteria(r *http.Request) (listing.Criteria, error) {
	q := r.URL.Query()
	c := listing.DefaultCriteria()

	if v := q.Get("state"); v != "" {
		c.State = v
	}
	if v := q.Get("district"); v != "" {
		c.District = v
	}
	if v := q.Get("college"); v != "" {
		c.College = v
	}
	if v := q.Get("status"); v != "" {
		c.Status = v
	}
	if v := q.Get("tag"); v != "" {
		c.Tag = v
	}

	var err error
	if c.StartDate, err = parseQueryDate(q.Get("startDate")); err != nil {
		return c, errInvalidParam("startDate")
	}
	if c.EndDate, err = parseQueryDate(q.Get("endDate")); err != nil {
		return c, errInvalidParam("endDate")
	}
	return c.Normalize(), nil
}

func parseQueryDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", v)
}

type paramError string

func (e paramError) Error() string { return "Invalid " + string(e) + " parameter" }

func errInvalidParam(name string) error { return paramError(name) }
