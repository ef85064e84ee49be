package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/opensamaj/samiti"
	"github.com/opensamaj/samiti/internal/domain"
	"github.com/opensamaj/samiti/internal/present/rest/middleware"
	"github.com/opensamaj/samiti/internal/present/rest/presenter"
	"github.com/opensamaj/samiti/internal/service"
	"github.com/opensamaj/samiti/internal/usecase"
)

type Handler struct {
	geo     *usecase.GeoUsecase
	profile *usecase.ProfileUsecase
	reader  *usecase.ReaderUsecase
	member  *usecase.MemberUsecase
	wizard  *usecase.WizardUsecase
	signal  *service.SignalService
}

func NewHandler(
	geo *usecase.GeoUsecase,
	profile *usecase.ProfileUsecase,
	reader *usecase.ReaderUsecase,
	member *usecase.MemberUsecase,
	wizard *usecase.WizardUsecase,
	signal *service.SignalService,
) *Handler {
	return &Handler{
		geo:     geo,
		profile: profile,
		reader:  reader,
		member:  member,
		wizard:  wizard,
		signal:  signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, identity *middleware.IdentityMiddleware) {
	e.Use(identity.Identify)

	api := e.Group("/api/v1")

	api.GET("/geo/:kind", h.handleGeoList)
	api.POST("/geo/:kind", h.handleGeoCreate, identity.RequireAdmin)
	api.PUT("/geo/:kind/:id", h.handleGeoUpdate, identity.RequireAdmin)
	api.DELETE("/geo/:kind/:id", h.handleGeoDelete, identity.RequireAdmin)

	api.POST("/members", h.handleMemberRegister)
	api.PUT("/members/:id/status", h.handleMemberStatus, identity.RequireAdmin)
	api.POST("/members/sweep", h.handleMemberSweep, identity.RequireAdmin)

	api.GET("/members/profiles", h.handleProfileList, identity.RequireAdmin)
	api.POST("/members/:id/profile", h.handleProfileSave)
	api.GET("/members/:id/profile", h.handleProfileGet)

	api.GET("/members/:id/wizard", h.handleWizardResume)
	api.POST("/members/:id/wizard/steps", h.handleWizardAdvance)
	api.DELETE("/members/:id/wizard", h.handleWizardComplete)

	e.GET("/realtime", h.handleRealtime)
}

func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicateName):
		return presenter.Conflict(c, err)
	case errors.Is(err, domain.ErrMemberNotFound):
		return presenter.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return presenter.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return presenter.BadRequest(c, err)
	default:
		return presenter.InternalError(c, err)
	}
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return uint(parsed), nil
}

func parseUintQuery(c echo.Context, name string) (*uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter", name)
	}
	value := uint(parsed)
	return &value, nil
}

// --- geo hierarchy ---

func (h *Handler) handleGeoList(c echo.Context) error {
	ctx := c.Request().Context()

	kind, ok := samiti.ParseGeoKind(c.Param("kind"))
	if !ok {
		return presenter.BadRequestMessage(c, "unknown hierarchy level")
	}

	var filter samiti.GeoFilter
	stateID, err := parseUintQuery(c, "stateId")
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	filter.StateID = stateID

	districtID, err := parseUintQuery(c, "districtId")
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	filter.DistrictID = districtID

	nodes, err := h.geo.List(ctx, kind, filter)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, nodes)
}

func (h *Handler) handleGeoCreate(c echo.Context) error {
	ctx := c.Request().Context()

	kind, ok := samiti.ParseGeoKind(c.Param("kind"))
	if !ok {
		return presenter.BadRequestMessage(c, "unknown hierarchy level")
	}

	var input samiti.GeoNodeInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}

	id, err := h.geo.Create(ctx, kind, input)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.Created(c, echo.Map{"id": id})
}

func (h *Handler) handleGeoUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	kind, ok := samiti.ParseGeoKind(c.Param("kind"))
	if !ok {
		return presenter.BadRequestMessage(c, "unknown hierarchy level")
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	var input samiti.GeoNodeInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}

	if err := h.geo.Update(ctx, kind, id, input); err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleGeoDelete(c echo.Context) error {
	ctx := c.Request().Context()

	kind, ok := samiti.ParseGeoKind(c.Param("kind"))
	if !ok {
		return presenter.BadRequestMessage(c, "unknown hierarchy level")
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	if err := h.geo.Delete(ctx, kind, id); err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

// --- members ---

type memberRegisterRequest struct {
	OrganizationName string `json:"organizationName"`
	OrganizationType string `json:"organizationType"`
	ContactNumber    string `json:"contactNumber"`
	Email            string `json:"email"`
}

func (h *Handler) handleMemberRegister(c echo.Context) error {
	ctx := c.Request().Context()

	var req memberRegisterRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	id, err := h.member.Register(ctx, domain.RegisterMemberInput{
		OrganizationName: req.OrganizationName,
		OrganizationType: req.OrganizationType,
		ContactNumber:    req.ContactNumber,
		Email:            req.Email,
	})
	if err != nil {
		return respondError(c, err)
	}
	return presenter.Created(c, echo.Map{"id": id})
}

type memberStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleMemberStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUintParam(c, "id")
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	var req memberStatusRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	if err := h.member.SetStatus(ctx, id, req.Status); err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleMemberSweep(c echo.Context) error {
	ctx := c.Request().Context()

	swept, err := h.member.SweepExpired(ctx, time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"swept": swept})
}

// --- profile ---

func (h *Handler) handleProfileSave(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUintParam(c, "id")
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	var payload samiti.ProfilePayload
	if err := c.Bind(&payload); err != nil {
		return presenter.BadRequest(c, err)
	}

	if err := h.profile.Save(ctx, id, payload); err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleProfileGet(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUintParam(c, "id")
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	view, err := h.reader.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, view)
}

func (h *Handler) handleProfileList(c echo.Context) error {
	ctx := c.Request().Context()

	views, err := h.reader.ListAll(ctx, c.QueryParam("sort"), c.QueryParam("order"))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, views)
}

// --- wizard ---

func (h *Handler) handleWizardResume(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUintParam(c, "id")
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	draft, err := h.wizard.Resume(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, draft)
}

type wizardAdvanceRequest struct {
	Step    int                   `json:"step"`
	Payload samiti.ProfilePayload `json:"payload"`
}

func (h *Handler) handleWizardAdvance(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUintParam(c, "id")
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	var req wizardAdvanceRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	draft, err := h.wizard.Advance(ctx, id, req.Step, req.Payload)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, draft)
}

func (h *Handler) handleWizardComplete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUintParam(c, "id")
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	if err := h.wizard.Complete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

// --- realtime ---

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type realtimeRequest struct {
	Type      string   `json:"type"`
	MemberIDs []string `json:"memberIds"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	// The feed goroutine owns its exit: cancellation tears it down, and the
	// channels are abandoned rather than closed so a late send cannot panic.
	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	input := make(chan []string)
	output := make(chan samiti.Event)

	go h.signal.Realtime(ctx, input, output)

	quit := make(chan struct{}, 1)

	go func() {
		for {
			var req realtimeRequest
			err := ws.ReadJSON(&req)
			if err != nil {

				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}

				quit <- struct{}{}
				break
			}

			switch req.Type {
			case "listen":
				select {
				case input <- req.MemberIDs:
				case <-ctx.Done():
					return
				}
				slog.DebugContext(
					ctx, fmt.Sprintf("Socket subscribe: %s", req.MemberIDs),
					slog.String("module", "socket"),
				)
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case <-ctx.Done():
			return nil
		case event := <-output:
			if err := ws.WriteJSON(event); err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
