package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
	"shiptix/internal/http/middleware"
	"shiptix/internal/services"
	"shiptix/internal/session"
)

// GET /api/ports
func (h *Handler) ListPorts(c *gin.Context) {
	ports, err := h.Refs.Ports(c.Request.Context())
	if err != nil {
		RespondDomainError(c, domain.Unavailable("gagal mengambil pelabuhan", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ports": ports})
}

// POST /api/search
func (h *Handler) Search(c *gin.Context) {
	var in services.SearchInput
	if !BindJSONOrError(c, &in) {
		return
	}
	sid := middleware.GetSessionID(c)
	req, gen, err := h.builder(middleware.GetRequestID(c)).Submit(c.Request.Context(), sid, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Loader.Start(sid, gen, req)

	c.JSON(http.StatusOK, gin.H{
		"next":       domain.NextResults,
		"session_id": sid,
		"generation": gen,
		"search":     req,
	})
}

type passengerAdjustRequest struct {
	Passengers map[string]any `json:"passengers"`
	Category   string         `json:"category"`
	Action     string         `json:"action"` // increment | decrement | set
	Value      any            `json:"value"`
}

// POST /api/search/passengers
func (h *Handler) AdjustPassengers(c *gin.Context) {
	var req passengerAdjustRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	counts := services.NormalizeCounts(req.Passengers)
	// the current counts may already sit below a floor
	for _, cat := range models.PassengerCategories {
		if floor := h.Counter.Min(cat, counts); counts.Get(cat) < floor {
			counts = counts.With(cat, floor)
		}
	}

	if strings.TrimSpace(req.Category) != "" {
		cat, ok := models.ParsePassengerCategory(req.Category)
		if !ok {
			respondError(c, http.StatusBadRequest, "validation_error", "kategori penumpang tidak dikenal", nil)
			return
		}
		switch strings.ToLower(strings.TrimSpace(req.Action)) {
		case "increment", "inc", "+":
			counts = h.Counter.Increment(counts, cat)
		case "decrement", "dec", "-":
			counts = h.Counter.Decrement(counts, cat)
		case "set", "":
			next := h.Counter.Set(counts, cat, req.Value)
			if next.Get(cat) < h.Counter.Min(cat, next) {
				next = next.With(cat, h.Counter.Min(cat, next))
			}
			counts = next
		default:
			respondError(c, http.StatusBadRequest, "validation_error", "aksi tidak dikenal", nil)
			return
		}
	}

	mins := gin.H{}
	for _, cat := range models.PassengerCategories {
		mins[string(cat)] = h.Counter.Min(cat, counts)
	}
	c.JSON(http.StatusOK, gin.H{
		"passengers": counts,
		"total":      counts.Total(),
		"min":        mins,
		"policy":     h.Counter.Policy,
	})
}

// GET /api/search
func (h *Handler) GetSearch(c *gin.Context) {
	st, ok := h.loadSession(c)
	if !ok {
		return
	}
	if st.Search == nil {
		respondError(c, http.StatusNotFound, "not_found", "belum ada pencarian", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"search": st.Search, "generation": st.Generation})
}

// GET /api/search/results?sort=price|time|duration&class=&leg=outbound|return
func (h *Handler) Results(c *gin.Context) {
	st, ok := h.loadSession(c)
	if !ok {
		return
	}
	if st.Search == nil || st.Results == nil {
		respondError(c, http.StatusNotFound, "not_found", "belum ada pencarian", nil)
		return
	}

	leg := domain.ParseLeg(c.Query("leg"))
	res := st.Results
	switch res.State {
	case session.ResultsLoading:
		c.JSON(http.StatusAccepted, gin.H{"state": res.State, "generation": res.Generation})
		return
	case session.ResultsUnavailable:
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"state":      res.State,
			"generation": res.Generation,
			"error":      res.Error,
			"code":       "data_source_unavailable",
			"request_id": middleware.GetRequestID(c),
		})
		return
	}

	lr := res.Leg(leg)
	if lr == nil {
		respondError(c, http.StatusBadRequest, "validation_error", "pencarian ini tidak memiliki perjalanan pulang", nil)
		return
	}
	opts := services.EngineOptions{
		Sort:  models.ParseSortKey(c.Query("sort")),
		Class: c.Query("class"),
	}
	out := services.ArrangeResults(*lr, opts)
	c.JSON(http.StatusOK, gin.H{
		"state":             res.State,
		"generation":        res.Generation,
		"leg":               leg,
		"search":            st.Search,
		"sort":              opts.Sort,
		"class":             opts.Class,
		"schedules":         out.Schedules,
		"available_classes": out.AvailableClasses,
		"total":             len(out.Schedules),
	})
}

type selectRequest struct {
	ScheduleID string `json:"schedule_id"`
	Leg        string `json:"leg"`
}

// POST /api/search/select
func (h *Handler) Select(c *gin.Context) {
	var req selectRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.ScheduleID) == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "schedule_id wajib diisi", nil)
		return
	}
	st, ok := h.loadSession(c)
	if !ok {
		return
	}
	leg := domain.ParseLeg(req.Leg)
	sched, err := services.FindInResults(st, leg, strings.TrimSpace(req.ScheduleID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	next, err := h.selection(middleware.GetRequestID(c)).Select(c.Request.Context(), st.ID, leg, sched)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"next": next, "leg": leg, "selected": sched})
}

// GET /api/search/selected
func (h *Handler) Selected(c *gin.Context) {
	st, ok := h.loadSession(c)
	if !ok {
		return
	}
	if st.Selected == nil && st.SelectedReturn == nil {
		respondError(c, http.StatusNotFound, "not_found", "belum ada jadwal yang dipilih", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"search":          st.Search,
		"selected":        st.Selected,
		"selected_return": st.SelectedReturn,
	})
}

// DELETE /api/session
func (h *Handler) ResetSession(c *gin.Context) {
	if err := h.Sessions.Reset(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal mengosongkan sesi", Err: err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sesi dikosongkan"})
}

func (h *Handler) loadSession(c *gin.Context) (session.State, bool) {
	st, err := h.Sessions.Get(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal membaca sesi", Err: err})
		return session.State{}, false
	}
	return st, true
}
