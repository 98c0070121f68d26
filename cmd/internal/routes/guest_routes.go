package routes

import (
	"context"
	"net/http"
	"strings"

	"guestserver/cmd/internal/integration/appointment"
	"guestserver/cmd/internal/service"
	"guestserver/cmd/internal/utils"
	"guestserver/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type GuestService interface {
	CreateGuest(ctx context.Context, appointmentId string, req *service.GuestRequest) (*service.GuestResponse, apierror.ErrorResponse)
	GetGuests(appointmentId, statusFilter string) ([]*service.GuestResponse, apierror.ErrorResponse)
	GetGuest(appointmentId, guestId string) (*service.GuestResponse, apierror.ErrorResponse)
	GetGuestStatus(appointmentId, guestId string) (string, apierror.ErrorResponse)
	UpdateGuestStatus(ctx context.Context, appointmentId, guestId string, req *service.GuestStatusRequest, actingUserId string) (*service.GuestResponse, apierror.ErrorResponse)
	DeleteGuest(appointmentId, guestId string) (bool, apierror.ErrorResponse)
	GetAppointments(ctx context.Context) ([]*appointment.Appointment, apierror.ErrorResponse)
	GetAppointment(ctx context.Context, appointmentId string) (*appointment.Appointment, apierror.ErrorResponse)
	GetHostAppointments(ctx context.Context, hostId string) ([]*appointment.Appointment, apierror.ErrorResponse)
	AppointmentExists(ctx context.Context, appointmentId string) (bool, apierror.ErrorResponse)
}

type DefaultGuestRoute struct {
	GuestService GuestService
}

func NewGuestDefault(guestService GuestService) *DefaultGuestRoute {
	return &DefaultGuestRoute{GuestService: guestService}
}

func (g *DefaultGuestRoute) CreateGuest(c echo.Context) error {
	appointmentId := strings.TrimSpace(c.Param("appointment_id"))
	if appointmentId == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("appointment_id"))
	}

	var req service.GuestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	guest, apierr := g.GuestService.CreateGuest(c.Request().Context(), appointmentId, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, guest)
}

func (g *DefaultGuestRoute) GetGuests(c echo.Context) error {
	appointmentId := strings.TrimSpace(c.Param("appointment_id"))
	if appointmentId == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("appointment_id"))
	}

	found, apierr := g.GuestService.AppointmentExists(c.Request().Context(), appointmentId)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	if !found {
		return c.JSON(apierror.AppointmentNotFoundError.Code(), apierror.AppointmentNotFoundError)
	}

	guests, apierr := g.GuestService.GetGuests(appointmentId, c.QueryParam("guest_status"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"guests": guests}
	return c.JSON(http.StatusOK, &resp)
}

func (g *DefaultGuestRoute) GetGuest(c echo.Context) error {
	appointmentId, guestId, apierr := guestParams(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	guest, apierr := g.GuestService.GetGuest(appointmentId, guestId)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, guest)
}

func (g *DefaultGuestRoute) GetGuestStatus(c echo.Context) error {
	appointmentId, guestId, apierr := guestParams(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	status, apierr := g.GuestService.GetGuestStatus(appointmentId, guestId)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"guest_status": status})
}

func (g *DefaultGuestRoute) UpdateGuestStatus(c echo.Context) error {
	appointmentId, guestId, apierr := guestParams(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	actingUserId, apierr := actingUserID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.GuestStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	guest, apierr := g.GuestService.UpdateGuestStatus(c.Request().Context(), appointmentId, guestId, &req, actingUserId)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, guest)
}

// DeleteGuest answers 200 whether or not the guest still existed; the
// success flag in the body tells the caller which it was.
func (g *DefaultGuestRoute) DeleteGuest(c echo.Context) error {
	appointmentId, guestId, apierr := guestParams(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	deleted, apierr := g.GuestService.DeleteGuest(appointmentId, guestId)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	message := "guest removed"
	if !deleted {
		message = "guest was already removed"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":        deleted,
		"message":        message,
		"appointment_id": appointmentId,
		"guest_id":       guestId,
	})
}

func (g *DefaultGuestRoute) GetAppointments(c echo.Context) error {
	appts, apierr := g.GuestService.GetAppointments(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"appointments": appts}
	return c.JSON(http.StatusOK, &resp)
}

func (g *DefaultGuestRoute) GetAppointment(c echo.Context) error {
	appointmentId := strings.TrimSpace(c.Param("appointment_id"))
	if appointmentId == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("appointment_id"))
	}

	appt, apierr := g.GuestService.GetAppointment(c.Request().Context(), appointmentId)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, appt)
}

func (g *DefaultGuestRoute) GetHostAppointments(c echo.Context) error {
	hostId := strings.TrimSpace(c.Param("host_id"))
	if hostId == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("host_id"))
	}

	appts, apierr := g.GuestService.GetHostAppointments(c.Request().Context(), hostId)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"appointments": appts}
	return c.JSON(http.StatusOK, &resp)
}

func guestParams(c echo.Context) (string, string, apierror.ErrorResponse) {
	appointmentId := strings.TrimSpace(c.Param("appointment_id"))
	if appointmentId == "" {
		return "", "", apierror.NewMissingParamError("appointment_id")
	}
	guestId := strings.TrimSpace(c.Param("guest_id"))
	if guestId == "" {
		return "", "", apierror.NewMissingParamError("guest_id")
	}
	return appointmentId, guestId, nil
}

// actingUserID resolves who is making the request: the X-User-ID header set
// by the edge, or failing that the subject of the bearer token.
func actingUserID(c echo.Context) (string, apierror.ErrorResponse) {
	if id := strings.TrimSpace(c.Request().Header.Get("X-User-ID")); id != "" {
		return id, nil
	}
	if data, err := utils.ParseTokenDataCtx(c); err == nil {
		return data.Sub, nil
	}
	return "", apierror.NewMissingHeaderError("X-User-ID")
}
