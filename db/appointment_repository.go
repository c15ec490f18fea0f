package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dresslink/dresslink/models"
)

type AppointmentRepository interface {
	CreateAppointment(appointment *models.Appointment) (*models.Appointment, error)
	FindAppointmentByID(id uint) (*models.Appointment, error)
	GetAppointmentsByCustomer(userID uint) ([]models.Appointment, error)
	GetAppointmentsByProfessional(professionalID uint) ([]models.Appointment, error)
	UpdateAppointment(appointment *models.Appointment) error
}

type appointmentRepo struct {
	DB *gorm.DB
}

func NewAppointmentRepo(db *GormDB) AppointmentRepository {
	return &appointmentRepo{db.DB}
}

func (a *appointmentRepo) CreateAppointment(appointment *models.Appointment) (*models.Appointment, error) {
	if err := a.DB.Create(appointment).Error; err != nil {
		return nil, errors.Wrap(err, "unable to create appointment")
	}
	return appointment, nil
}

func (a *appointmentRepo) FindAppointmentByID(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := a.DB.Preload("User").Preload("Professional").Preload("Gig").
		Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(err, "unable to fetch appointment")
	}
	return &appointment, nil
}

func (a *appointmentRepo) GetAppointmentsByCustomer(userID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := a.DB.Preload("Professional").Preload("Gig").
		Where("user_id = ?", userID).Order("date ASC, time ASC").Find(&appointments).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch customer appointments")
	}
	return appointments, nil
}

func (a *appointmentRepo) GetAppointmentsByProfessional(professionalID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := a.DB.Preload("User").Preload("Gig").
		Where("professional_id = ?", professionalID).Order("date ASC, time ASC").Find(&appointments).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch professional appointments")
	}
	return appointments, nil
}

func (a *appointmentRepo) UpdateAppointment(appointment *models.Appointment) error {
	return a.DB.Save(appointment).Error
}
