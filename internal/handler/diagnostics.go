package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Status lines reported by the diagnostic route.
const (
	statusBackendRunning  = "✅ Running"
	statusDBNotAvailable  = "❌ Not Available"
	statusDBAvailable     = "✅ Available"
	statusDBWorking       = "✅ Connected & Working"
	statusDBUninitialized = "⚠️  Available but not initialized"
	statusDBErrorPrefix   = "⚠️  Connected but Error: "
	statusSet             = "✅ Set"
	statusNotSet          = "❌ Not Set"
	statusConnected       = "Connected"
	statusNotConnected    = "Not Connected"

	maxReportedCollections = 10
	maxReportedErrorRunes  = 50
)

// DatabaseInspector exposes what the diagnostic route needs to know about
// the lead database.
type DatabaseInspector interface {
	Available() bool
	DatabaseName() string
	CollectionNames(ctx context.Context) ([]string, error)
}

// DiagnosticsHandler reports backend and database connectivity.
type DiagnosticsHandler struct {
	DB      DatabaseInspector
	URLSet  bool // DATABASE_URL present in the environment
	NameSet bool // DATABASE_NAME present in the environment
	Logger  *zap.Logger
}

// DiagnosticsResponse is the body of GET /test.
type DiagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// TestDatabase checks whether the database is reachable and lists up to ten
// collections. It always answers 200; failures are folded into the report.
func (h *DiagnosticsHandler) TestDatabase(c echo.Context) error {
	resp := DiagnosticsResponse{
		Backend:          statusBackendRunning,
		Database:         statusDBNotAvailable,
		ConnectionStatus: statusNotConnected,
		Collections:      []string{},
	}

	if h.DB != nil && h.DB.Available() {
		resp.Database = statusDBAvailable
		resp.ConnectionStatus = statusConnected

		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()
		names, err := h.DB.CollectionNames(ctx)
		if err != nil {
			h.Logger.Warn("diagnostics: list collections", zap.String("db", h.DB.DatabaseName()), zap.Error(err))
			resp.Database = statusDBErrorPrefix + truncateRunes(err.Error(), maxReportedErrorRunes)
		} else {
			if len(names) > maxReportedCollections {
				names = names[:maxReportedCollections]
			}
			resp.Collections = names
			resp.Database = statusDBWorking
		}
	} else {
		resp.Database = statusDBUninitialized
	}

	resp.DatabaseURL = setOrNot(h.URLSet)
	resp.DatabaseName = setOrNot(h.NameSet)
	return c.JSON(http.StatusOK, resp)
}

func setOrNot(ok bool) string {
	if ok {
		return statusSet
	}
	return statusNotSet
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
