package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tezexpress/courier-manager/internal/dependency"
	"github.com/tezexpress/courier-manager/internal/dto"
	"github.com/tezexpress/courier-manager/internal/entity"
)

const dateLayout = "2006-01-02"

type analyticsServer struct {
	engine dependency.Analytics
}

func newAnalyticsServer(engine dependency.Analytics) *analyticsServer {
	return &analyticsServer{engine: engine}
}

// periodFromQuery parses the from/to date params. to is exclusive and is
// advanced by one day so that "to=2024-01-31" covers the whole last day.
func periodFromQuery(r *http.Request) (entity.TimeRange, error) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		return entity.TimeRange{}, fmt.Errorf("from and to date params are required")
	}
	if !govalidator.IsTime(fromStr, dateLayout) || !govalidator.IsTime(toStr, dateLayout) {
		return entity.TimeRange{}, fmt.Errorf("dates must be formatted as %s", dateLayout)
	}
	from, _ := time.Parse(dateLayout, fromStr)
	to, _ := time.Parse(dateLayout, toStr)
	if to.Before(from) {
		return entity.TimeRange{}, fmt.Errorf("to must not precede from")
	}
	return entity.TimeRange{From: from, To: to.AddDate(0, 0, 1)}, nil
}

func courierIdFromURL(r *http.Request) (int, error) {
	idStr := chi.URLParam(r, "courierId")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("courierId must be a positive integer")
	}
	return id, nil
}

func (as *analyticsServer) getCohortRanking(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	cohort, err := as.engine.CohortRanking(r.Context(), period)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, dto.ConvertEntityRanking(cohort))
}

func (as *analyticsServer) getCourierReport(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	courierId, err := courierIdFromURL(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	data, err := as.engine.CourierReport(r.Context(), period, courierId)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, dto.ConvertEntityAnalyticsData(data))
}

func (as *analyticsServer) getReturnedOrders(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	courierId, err := courierIdFromURL(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	details, err := as.engine.ReturnedOrderDetails(r.Context(), period, courierId)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, dto.ConvertEntityReturnedDetails(details))
}

func (as *analyticsServer) getTransitions(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	data, err := as.engine.CourierReport(r.Context(), period, 0)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, dto.ConvertEntityTransitions(data.Transitions))
}

func (as *analyticsServer) exportRankingCSV(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	cohort, err := as.engine.CohortRanking(r.Context(), period)
	if err != nil {
		renderError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=courier-performance.csv")
	if err := dto.WriteRankingCSV(w, dto.ConvertEntityRanking(cohort)); err != nil {
		render.Render(w, r, ErrInternalServerError(err))
	}
}
