package repository

import (
	"errors"

	"guestserver/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

// ErrDuplicateGuest is returned by Save when the (appointment_id, user_id)
// unique index rejects the insert, i.e. a concurrent registration won.
var ErrDuplicateGuest = errors.New("guest already registered for this appointment")

type DefaultGuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) *DefaultGuestRepository {
	return &DefaultGuestRepository{db: db}
}

func (g *DefaultGuestRepository) FindByID(id string) (*entity.Guest, error) {
	var guest entity.Guest
	err := g.db.First(&guest, "guest_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &guest, err
}

func (g *DefaultGuestRepository) FindByAppointmentID(appointmentId string) ([]*entity.Guest, error) {
	var guests []*entity.Guest
	err := g.db.Where("appointment_id = ?", appointmentId).Find(&guests).Error
	return guests, err
}

func (g *DefaultGuestRepository) FindByAppointmentIDAndStatus(appointmentId, status string) ([]*entity.Guest, error) {
	var guests []*entity.Guest
	err := g.db.
		Where("appointment_id = ?", appointmentId).
		Where("guest_status = ?", status).
		Find(&guests).Error
	return guests, err
}

func (g *DefaultGuestRepository) ExistsByID(id string) (bool, error) {
	var count int64
	err := g.db.Model(&entity.Guest{}).
		Where("guest_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (g *DefaultGuestRepository) ExistsByAppointmentAndUser(appointmentId, userId string) (bool, error) {
	var count int64
	err := g.db.Model(&entity.Guest{}).
		Where("appointment_id = ?", appointmentId).
		Where("user_id = ?", userId).
		Count(&count).Error
	return count > 0, err
}

func (g *DefaultGuestRepository) Save(guest *entity.Guest) error {
	err := g.db.Create(guest).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateGuest
	}
	return err
}

// UpdateStatus changes guest_status and updated_at in a single UPDATE
// statement. The returned row count is how callers detect that the guest
// vanished between their existence check and the write.
func (g *DefaultGuestRepository) UpdateStatus(id, status string, updatedAt int64) (int64, error) {
	res := g.db.Model(&entity.Guest{}).
		Where("guest_id = ?", id).
		UpdateColumns(map[string]any{
			"guest_status": status,
			"updated_at":   updatedAt,
		})
	return res.RowsAffected, res.Error
}

// Delete removes the guest row if present and reports how many rows went
// away, so deleting an already-gone guest is not an error.
func (g *DefaultGuestRepository) Delete(id string) (int64, error) {
	res := g.db.Delete(&entity.Guest{}, "guest_id = ?", id)
	return res.RowsAffected, res.Error
}
