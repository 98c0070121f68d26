package service

import (
	"context"
	"errors"

	"guestserver/cmd/internal/domain/entity"
	"guestserver/cmd/internal/domain/sqlite/repository"
	"guestserver/cmd/internal/integration/appointment"
	"guestserver/cmd/internal/integration/user"
	"guestserver/cmd/internal/utils"
	"guestserver/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type GuestRepository interface {
	FindByID(id string) (*entity.Guest, error)
	FindByAppointmentID(appointmentId string) ([]*entity.Guest, error)
	FindByAppointmentIDAndStatus(appointmentId, status string) ([]*entity.Guest, error)
	ExistsByID(id string) (bool, error)
	ExistsByAppointmentAndUser(appointmentId, userId string) (bool, error)
	Save(guest *entity.Guest) error
	UpdateStatus(id, status string, updatedAt int64) (int64, error)
	Delete(id string) (int64, error)
}

type AppointmentGateway interface {
	GetByID(ctx context.Context, id string) (*appointment.Appointment, error)
	Exists(ctx context.Context, id string) (bool, error)
	FindAll(ctx context.Context) ([]*appointment.Appointment, error)
	FindByHostID(ctx context.Context, hostId string) ([]*appointment.Appointment, error)
}

type UserGateway interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type GuestRequest struct {
	UserID      string `json:"user_id" validate:"required,max=64"`
	GuestStatus string `json:"guest_status" validate:"omitempty,gueststatus"`
}

type GuestStatusRequest struct {
	GuestStatus string `json:"guest_status"`
}

type GuestResponse struct {
	GuestID       string `json:"guest_id"`
	AppointmentID string `json:"appointment_id"`
	UserID        string `json:"user_id"`
	GuestStatus   string `json:"guest_status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type DefaultGuestService struct {
	GuestRepo    GuestRepository
	Appointments AppointmentGateway
	Users        UserGateway
	Validate     *validator.Validate
}

func NewGuestService(guestRepo GuestRepository, appointments AppointmentGateway, users UserGateway, validate *validator.Validate) *DefaultGuestService {
	return &DefaultGuestService{
		GuestRepo:    guestRepo,
		Appointments: appointments,
		Users:        users,
		Validate:     validate,
	}
}

// CreateGuest registers userId as a guest of the appointment. The host of an
// appointment can never be its guest, and a (appointment, user) pair may
// only be registered once.
func (g *DefaultGuestService) CreateGuest(ctx context.Context, appointmentId string, req *GuestRequest) (*GuestResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := g.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	appt, err := g.Appointments.GetByID(ctx, appointmentId)
	if err != nil {
		log.Errorf("failed to fetch appointment %s: %v", appointmentId, err)
		return nil, apierror.DependencyUnavailableError
	}
	if appt == nil {
		return nil, apierror.AppointmentNotFoundError
	}
	if appt.HostID == req.UserID {
		return nil, apierror.SelfHostError
	}

	usr, err := g.Users.GetByID(ctx, req.UserID)
	if err != nil {
		log.Errorf("failed to fetch user %s: %v", req.UserID, err)
		return nil, apierror.DependencyUnavailableError
	}
	if usr == nil {
		return nil, apierror.UserNotFoundError
	}

	found, err := g.GuestRepo.ExistsByAppointmentAndUser(appointmentId, req.UserID)
	if err != nil {
		log.Errorf("failed to check existing guest for appointment %s: %v", appointmentId, err)
		return nil, apierror.InternalServerError
	}
	if found {
		return nil, apierror.DuplicateGuestError
	}

	status := req.GuestStatus
	if status == "" {
		status = entity.StatusComing
	}

	now := utils.NowUTC()
	guest := &entity.Guest{
		GuestID:       uuid.NewString(),
		AppointmentID: appointmentId,
		UserID:        req.UserID,
		GuestStatus:   status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = g.GuestRepo.Save(guest)
	if errors.Is(err, repository.ErrDuplicateGuest) {
		// Two concurrent registrations can both pass the existence check;
		// the unique index settles the race and the loser lands here.
		return nil, apierror.DuplicateGuestError
	}
	if err != nil {
		log.Errorf("failed to save guest for appointment %s: %v", appointmentId, err)
		return nil, apierror.InternalServerError
	}
	return toGuestResponse(guest), nil
}

// GetGuests lists the appointment's guests, optionally narrowed to one
// status. An appointment without guests yields an empty list, not an error.
func (g *DefaultGuestService) GetGuests(appointmentId, statusFilter string) ([]*GuestResponse, apierror.ErrorResponse) {
	if statusFilter != "" && !entity.IsValidStatus(statusFilter) {
		return nil, apierror.InvalidStatusError
	}

	var guests []*entity.Guest
	var err error
	if statusFilter != "" {
		guests, err = g.GuestRepo.FindByAppointmentIDAndStatus(appointmentId, statusFilter)
	} else {
		guests, err = g.GuestRepo.FindByAppointmentID(appointmentId)
	}
	if err != nil {
		log.Errorf("failed to find guests for appointment %s: %v", appointmentId, err)
		return nil, apierror.InternalServerError
	}

	response := make([]*GuestResponse, len(guests))
	for i, guest := range guests {
		response[i] = toGuestResponse(guest)
	}
	return response, nil
}

func (g *DefaultGuestService) GetGuest(appointmentId, guestId string) (*GuestResponse, apierror.ErrorResponse) {
	guest, err := g.GuestRepo.FindByID(guestId)
	if err != nil {
		log.Errorf("failed to find guest %s: %v", guestId, err)
		return nil, apierror.InternalServerError
	}
	if guest == nil {
		return nil, apierror.GuestNotFoundError
	}

	// A valid guest id under the wrong appointment is treated as absent, so
	// guest ids cannot be probed across appointments.
	if guest.AppointmentID != appointmentId {
		return nil, apierror.GuestNotFoundError
	}
	return toGuestResponse(guest), nil
}

func (g *DefaultGuestService) GetGuestStatus(appointmentId, guestId string) (string, apierror.ErrorResponse) {
	guest, apierr := g.GetGuest(appointmentId, guestId)
	if apierr != nil {
		return "", apierr
	}
	return guest.GuestStatus, nil
}

// UpdateGuestStatus lets the appointment's host move a guest between coming,
// came and noshow. Guard order matters: a non-host actor is rejected before
// the requested status value is even looked at.
func (g *DefaultGuestService) UpdateGuestStatus(ctx context.Context, appointmentId, guestId string, req *GuestStatusRequest, actingUserId string) (*GuestResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)

	exists, err := g.GuestRepo.ExistsByID(guestId)
	if err != nil {
		log.Errorf("failed to check guest %s: %v", guestId, err)
		return nil, apierror.InternalServerError
	}
	if !exists {
		return nil, apierror.GuestNotFoundError
	}

	appt, err := g.Appointments.GetByID(ctx, appointmentId)
	if err != nil {
		log.Errorf("failed to fetch appointment %s: %v", appointmentId, err)
		return nil, apierror.DependencyUnavailableError
	}
	if appt == nil {
		return nil, apierror.AppointmentNotFoundError
	}
	if appt.HostID != actingUserId {
		return nil, apierror.NotHostError
	}

	if !entity.IsValidStatus(req.GuestStatus) {
		return nil, apierror.InvalidStatusError
	}

	rows, err := g.GuestRepo.UpdateStatus(guestId, req.GuestStatus, utils.NowUTC())
	if err != nil {
		log.Errorf("failed to update status of guest %s: %v", guestId, err)
		return nil, apierror.InternalServerError
	}
	if rows == 0 {
		// The guest was cancelled between the existence check and the write.
		return nil, apierror.UpdateRacedError
	}

	// Return the persisted row, not a locally built echo, so a lost update
	// cannot be masked.
	guest, err := g.GuestRepo.FindByID(guestId)
	if err != nil {
		log.Errorf("failed to re-read guest %s: %v", guestId, err)
		return nil, apierror.InternalServerError
	}
	if guest == nil {
		return nil, apierror.UpdateRacedError
	}
	return toGuestResponse(guest), nil
}

// DeleteGuest cancels a registration. Deleting a guest that is already gone
// is not an error; the bool reports whether a row actually went away.
func (g *DefaultGuestService) DeleteGuest(appointmentId, guestId string) (bool, apierror.ErrorResponse) {
	rows, err := g.GuestRepo.Delete(guestId)
	if err != nil {
		log.Errorf("failed to delete guest %s: %v", guestId, err)
		return false, apierror.InternalServerError
	}
	return rows > 0, nil
}

// GetAppointments proxies the Appointment service's full listing.
func (g *DefaultGuestService) GetAppointments(ctx context.Context) ([]*appointment.Appointment, apierror.ErrorResponse) {
	appts, err := g.Appointments.FindAll(ctx)
	if err != nil {
		log.Errorf("failed to fetch appointments: %v", err)
		return nil, apierror.DependencyUnavailableError
	}
	return appts, nil
}

// GetAppointment proxies a single appointment lookup.
func (g *DefaultGuestService) GetAppointment(ctx context.Context, appointmentId string) (*appointment.Appointment, apierror.ErrorResponse) {
	appt, err := g.Appointments.GetByID(ctx, appointmentId)
	if err != nil {
		log.Errorf("failed to fetch appointment %s: %v", appointmentId, err)
		return nil, apierror.DependencyUnavailableError
	}
	if appt == nil {
		return nil, apierror.AppointmentNotFoundError
	}
	return appt, nil
}

// GetHostAppointments proxies the host's appointment listing.
func (g *DefaultGuestService) GetHostAppointments(ctx context.Context, hostId string) ([]*appointment.Appointment, apierror.ErrorResponse) {
	appts, err := g.Appointments.FindByHostID(ctx, hostId)
	if err != nil {
		log.Errorf("failed to fetch appointments of host %s: %v", hostId, err)
		return nil, apierror.DependencyUnavailableError
	}
	return appts, nil
}

// AppointmentExists is the boundary-level existence probe used before
// answering guest listings.
func (g *DefaultGuestService) AppointmentExists(ctx context.Context, appointmentId string) (bool, apierror.ErrorResponse) {
	found, err := g.Appointments.Exists(ctx, appointmentId)
	if err != nil {
		log.Errorf("failed to check appointment %s: %v", appointmentId, err)
		return false, apierror.DependencyUnavailableError
	}
	return found, nil
}

func toGuestResponse(guest *entity.Guest) *GuestResponse {
	return &GuestResponse{
		GuestID:       guest.GuestID,
		AppointmentID: guest.AppointmentID,
		UserID:        guest.UserID,
		GuestStatus:   guest.GuestStatus,
		CreatedAt:     utils.FormatEpoch(guest.CreatedAt),
		UpdatedAt:     utils.FormatEpoch(guest.UpdatedAt),
	}
}
