package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/luxury-estate-api/internal/model"
	"github.com/iliyamo/luxury-estate-api/internal/queue"
)

const (
	defaultLeadLimit = 50
	maxLeadLimit     = 500
)

// LeadStore persists and lists leads.
type LeadStore interface {
	Create(ctx context.Context, l *model.Lead) (string, error)
	List(ctx context.Context, limit int) ([]model.Lead, error)
}

// LeadEventPublisher announces stored leads to downstream consumers.
type LeadEventPublisher interface {
	PublishLeadCreated(ctx context.Context, ev queue.LeadCreatedEvent) error
}

// LeadHandler bundles dependencies for the lead endpoints.
type LeadHandler struct {
	Leads    LeadStore
	Projects ProjectStore
	Events   LeadEventPublisher
	Logger   *zap.Logger
}

// NewLeadHandler constructs a LeadHandler and panics if a dependency is nil.
func NewLeadHandler(leads LeadStore, projects ProjectStore, events LeadEventPublisher, logger *zap.Logger) *LeadHandler {
	if leads == nil || projects == nil || events == nil || logger == nil {
		panic("nil dependency passed to NewLeadHandler")
	}
	return &LeadHandler{Leads: leads, Projects: projects, Events: events, Logger: logger}
}

// ----- DTOs -----

type createLeadReq struct {
	Name             string `json:"name" validate:"required,max=200"`
	Email            string `json:"email" validate:"required,email,max=254"`
	Phone            string `json:"phone" validate:"omitempty,max=40"`
	ProjectID        string `json:"project_id" validate:"omitempty,max=100"`
	Message          string `json:"message" validate:"omitempty,max=5000"`
	Budget           string `json:"budget" validate:"omitempty,max=100"`
	PreferredContact string `json:"preferred_contact" validate:"omitempty,oneof=email phone whatsapp"`
	Source           string `json:"source" validate:"omitempty,max=100"`
}

// forValidation returns a trimmed copy for the validator. The submitted
// values themselves are stored unchanged.
func (r createLeadReq) forValidation() createLeadReq {
	v := r
	v.Name = strings.TrimSpace(r.Name)
	v.Email = strings.TrimSpace(r.Email)
	v.Phone = strings.TrimSpace(r.Phone)
	v.ProjectID = strings.TrimSpace(r.ProjectID)
	v.Message = strings.TrimSpace(r.Message)
	v.Budget = strings.TrimSpace(r.Budget)
	v.PreferredContact = strings.ToLower(strings.TrimSpace(r.PreferredContact))
	v.Source = strings.TrimSpace(r.Source)
	return v
}

// CreateLeadResponse is the body returned after a lead is stored.
type CreateLeadResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// CreateLead validates the submitted form, stores it and answers with the
// new id. A lead.created event is published in the background; failing to
// publish never fails the request.
func (h *LeadHandler) CreateLead(c echo.Context) error {
	var req createLeadReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	check := req.forValidation()
	if err := c.Validate(&check); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":  "validation failed",
			"fields": fieldErrors(err),
		})
	}

	lead := &model.Lead{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		ProjectID:        req.ProjectID,
		Message:          req.Message,
		Budget:           req.Budget,
		PreferredContact: req.PreferredContact,
		Source:           req.Source,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Leads.Create(ctx, lead)
	if err != nil {
		h.Logger.Error("create lead", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	go h.publishCreated(h.eventFor(c.Request().Context(), lead, id))

	return c.JSON(http.StatusOK, CreateLeadResponse{Status: "ok", ID: id})
}

func (h *LeadHandler) eventFor(ctx context.Context, l *model.Lead, id string) queue.LeadCreatedEvent {
	ev := queue.LeadCreatedEvent{
		LeadID:           id,
		Name:             l.Name,
		Email:            l.Email,
		Phone:            l.Phone,
		ProjectID:        l.ProjectID,
		PreferredContact: l.PreferredContact,
		Source:           l.Source,
		CreatedAt:        l.CreatedAt.Format(time.RFC3339),
	}
	if l.ProjectID != "" {
		if p, err := h.Projects.GetByID(ctx, l.ProjectID); err == nil {
			ev.ProjectTitle = p.Title
		}
	}
	return ev
}

func (h *LeadHandler) publishCreated(ev queue.LeadCreatedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := h.Events.PublishLeadCreated(ctx, ev); err != nil {
		h.Logger.Warn("publish lead.created", zap.String("lead_id", ev.LeadID), zap.Error(err))
	}
}

// ListLeads returns stored leads, newest first. The optional ?limit=
// query parameter defaults to 50 and must lie in [1, 500].
func (h *LeadHandler) ListLeads(c echo.Context) error {
	limit := defaultLeadLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLeadLimit {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	leads, err := h.Leads.List(ctx, limit)
	if err != nil {
		h.Logger.Error("list leads", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if leads == nil {
		leads = []model.Lead{}
	}
	return c.JSON(http.StatusOK, leads)
}
