package services

import (
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/dresslink/dresslink/config"
	"github.com/dresslink/dresslink/db"
	apiError "github.com/dresslink/dresslink/errors"
	"github.com/dresslink/dresslink/models"
)

type AppointmentService interface {
	BookAppointment(customerID uint, request *models.CreateAppointmentRequest) (*models.Appointment, *apiError.Error)
	GetAppointment(id, callerID uint) (*models.Appointment, *apiError.Error)
	GetCustomerAppointments(customerID uint) ([]models.Appointment, *apiError.Error)
	GetProfessionalAppointments(professionalID uint) ([]models.Appointment, *apiError.Error)
	UpdateAppointmentStatus(callerID uint, role string, request *models.UpdateAppointmentStatusRequest) (*models.Appointment, *apiError.Error)
	CancelAppointment(id, callerID uint) (*models.Appointment, *apiError.Error)
	ProvideMeetingID(callerID uint, request *models.ProvideMeetingRequest) (*models.Appointment, *apiError.Error)
}

type appointmentService struct {
	Config          *config.Config
	appointmentRepo db.AppointmentRepository
	gigRepo         db.GigRepository
}

func NewAppointmentService(appointmentRepo db.AppointmentRepository, gigRepo db.GigRepository, conf *config.Config) AppointmentService {
	return &appointmentService{
		Config:          conf,
		appointmentRepo: appointmentRepo,
		gigRepo:         gigRepo,
	}
}

// BookAppointment schedules a consultation with the gig's professional.
func (a *appointmentService) BookAppointment(customerID uint, request *models.CreateAppointmentRequest) (*models.Appointment, *apiError.Error) {
	gig, err := a.gigRepo.FindGigByID(request.GigID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("gig not found", http.StatusNotFound)
		}
		log.Printf("BookAppointment gig lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if gig.UserID == customerID {
		return nil, apiError.New("you cannot book an appointment on your own gig", http.StatusBadRequest)
	}

	appointment := &models.Appointment{
		UserID:         customerID,
		ProfessionalID: gig.UserID,
		GigID:          gig.ID,
		Date:           request.Date,
		Time:           request.Time,
		Notes:          request.Notes,
		Status:         models.AppointmentStatusPending,
	}
	created, err := a.appointmentRepo.CreateAppointment(appointment)
	if err != nil {
		log.Printf("BookAppointment error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return created, nil
}

func (a *appointmentService) GetAppointment(id, callerID uint) (*models.Appointment, *apiError.Error) {
	return a.participantAppointment(id, callerID)
}

func (a *appointmentService) GetCustomerAppointments(customerID uint) ([]models.Appointment, *apiError.Error) {
	appointments, err := a.appointmentRepo.GetAppointmentsByCustomer(customerID)
	if err != nil {
		log.Printf("GetCustomerAppointments error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return appointments, nil
}

func (a *appointmentService) GetProfessionalAppointments(professionalID uint) ([]models.Appointment, *apiError.Error) {
	appointments, err := a.appointmentRepo.GetAppointmentsByProfessional(professionalID)
	if err != nil {
		log.Printf("GetProfessionalAppointments error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return appointments, nil
}

// UpdateAppointmentStatus is restricted to the booked professional or an admin.
func (a *appointmentService) UpdateAppointmentStatus(callerID uint, role string, request *models.UpdateAppointmentStatusRequest) (*models.Appointment, *apiError.Error) {
	if !models.IsValidAppointmentStatus(request.Status) {
		return nil, apiError.New("invalid appointment status", http.StatusBadRequest)
	}
	appointment, apiErr := a.participantAppointment(request.AppointmentID, callerID)
	if apiErr != nil {
		if role == models.RoleAdmin && apiErr.Status == http.StatusForbidden {
			appointment, apiErr = a.findAppointment(request.AppointmentID)
		}
		if apiErr != nil {
			return nil, apiErr
		}
	}
	if appointment.ProfessionalID != callerID && role != models.RoleAdmin {
		return nil, apiError.New("only the professional can update the appointment status", http.StatusForbidden)
	}

	appointment.Status = request.Status
	if err := a.appointmentRepo.UpdateAppointment(appointment); err != nil {
		log.Printf("UpdateAppointmentStatus error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return appointment, nil
}

// CancelAppointment lets either participant withdraw a booking that has not
// completed.
func (a *appointmentService) CancelAppointment(id, callerID uint) (*models.Appointment, *apiError.Error) {
	appointment, apiErr := a.participantAppointment(id, callerID)
	if apiErr != nil {
		return nil, apiErr
	}
	if appointment.Status == models.AppointmentStatusCompleted {
		return nil, apiError.New("completed appointments cannot be cancelled", http.StatusBadRequest)
	}

	appointment.Status = models.AppointmentStatusCancelled
	if err := a.appointmentRepo.UpdateAppointment(appointment); err != nil {
		log.Printf("CancelAppointment error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return appointment, nil
}

// ProvideMeetingID attaches the professional's video meeting reference and
// confirms the booking.
func (a *appointmentService) ProvideMeetingID(callerID uint, request *models.ProvideMeetingRequest) (*models.Appointment, *apiError.Error) {
	appointment, apiErr := a.participantAppointment(request.AppointmentID, callerID)
	if apiErr != nil {
		return nil, apiErr
	}
	if appointment.ProfessionalID != callerID {
		return nil, apiError.New("only the professional can provide a meeting id", http.StatusForbidden)
	}
	if appointment.Status == models.AppointmentStatusCancelled {
		return nil, apiError.New("cancelled appointments cannot be updated", http.StatusBadRequest)
	}

	appointment.MeetingID = request.MeetingID
	appointment.Status = models.AppointmentStatusConfirmed
	if err := a.appointmentRepo.UpdateAppointment(appointment); err != nil {
		log.Printf("ProvideMeetingID error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return appointment, nil
}

func (a *appointmentService) participantAppointment(id, callerID uint) (*models.Appointment, *apiError.Error) {
	appointment, apiErr := a.findAppointment(id)
	if apiErr != nil {
		return nil, apiErr
	}
	if appointment.UserID != callerID && appointment.ProfessionalID != callerID {
		return nil, apiError.New("you are not a participant in this appointment", http.StatusForbidden)
	}
	return appointment, nil
}

func (a *appointmentService) findAppointment(id uint) (*models.Appointment, *apiError.Error) {
	appointment, err := a.appointmentRepo.FindAppointmentByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("appointment not found", http.StatusNotFound)
		}
		log.Printf("appointment lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return appointment, nil
}
