package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"catalog_writer/internal/domain"
)

type handlers struct {
	pipeline Pipeline
}

type statusResponse struct {
	Status string `json:"status"`
}

func (h *handlers) health(c echo.Context) error {
	return c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}

func (h *handlers) scan(c echo.Context) error {
	stats, err := h.pipeline.Scan(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, scanResponse(stats))
}

func (h *handlers) processBatch(c echo.Context) error {
	stats, err := h.pipeline.ProcessBatch(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, batchResponse(stats))
}

func (h *handlers) pause(c echo.Context) error {
	if err := h.pipeline.Pause(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "paused"})
}

func (h *handlers) unpause(c echo.Context) error {
	if err := h.pipeline.Unpause(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "active"})
}

func (h *handlers) stats(c echo.Context) error {
	stats, err := h.pipeline.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *handlers) items(c echo.Context) error {
	var filter domain.ItemFilter

	if v := c.QueryParam("kind"); v != "" {
		kind, ok := domain.ParseKind(v)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown kind: "+v)
		}
		filter.Kind = kind
	}
	if v := c.QueryParam("status"); v != "" {
		status, ok := domain.ParseStatus(v)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown status: "+v)
		}
		filter.Status = status
	}

	var err error
	if filter.Limit, err = intParam(c, "limit"); err != nil {
		return err
	}
	if filter.Offset, err = intParam(c, "offset"); err != nil {
		return err
	}

	items, err := h.pipeline.Items(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.CatalogItem{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *handlers) history(c echo.Context) error {
	kind, id, err := itemParams(c)
	if err != nil {
		return err
	}

	rows, err := h.pipeline.History(c.Request().Context(), kind, id)
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []domain.GeneratedContent{}
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *handlers) requeue(c echo.Context) error {
	kind, id, err := itemParams(c)
	if err != nil {
		return err
	}

	if err := h.pipeline.Requeue(c.Request().Context(), kind, id); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, statusResponse{Status: "queued"})
}

func itemParams(c echo.Context) (domain.Kind, string, error) {
	kind, ok := domain.ParseKind(c.Param("kind"))
	if !ok {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "unknown kind: "+c.Param("kind"))
	}
	id := c.Param("id")
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "invalid id: "+id)
	}
	return kind, id, nil
}

func intParam(c echo.Context, name string) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+": "+v)
	}
	return n, nil
}

type scanResult struct {
	Found          map[domain.Kind]int `json:"found"`
	New            map[domain.Kind]int `json:"new"`
	NewCount       int                 `json:"new_count"`
	ListErrors     int                 `json:"list_errors"`
	BreakerTripped bool                `json:"breaker_tripped"`
	DurationMS     int64               `json:"duration_ms"`
	Batch          *batchResult        `json:"batch,omitempty"`
}

type batchResult struct {
	RunID      string `json:"run_id"`
	Selected   int    `json:"selected"`
	Processed  int    `json:"processed"`
	Completed  int    `json:"completed"`
	Failed     int    `json:"failed"`
	Abandoned  int    `json:"abandoned"`
	Skipped    int    `json:"skipped"`
	Released   int    `json:"released"`
	DurationMS int64  `json:"duration_ms"`
}

func scanResponse(s *domain.ScanStats) scanResult {
	out := scanResult{
		Found:          s.Found,
		New:            s.New,
		NewCount:       s.NewCount,
		ListErrors:     s.ListErrors,
		BreakerTripped: s.BreakerTripped,
		DurationMS:     s.Duration.Milliseconds(),
	}
	if s.Batch != nil {
		b := batchResponse(s.Batch)
		out.Batch = &b
	}
	return out
}

func batchResponse(b *domain.BatchStats) batchResult {
	return batchResult{
		RunID:      b.RunID,
		Selected:   b.Selected,
		Processed:  b.Processed,
		Completed:  b.Completed,
		Failed:     b.Failed,
		Abandoned:  b.Abandoned,
		Skipped:    b.Skipped,
		Released:   b.Released,
		DurationMS: b.Duration.Milliseconds(),
	}
}
