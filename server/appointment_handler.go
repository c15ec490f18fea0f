package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/dresslink/dresslink/errors"
	"github.com/dresslink/dresslink/models"
	"github.com/dresslink/dresslink/server/response"
)

func (s *Server) handleBookAppointment() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var request models.CreateAppointmentRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		appointment, apiErr := s.AppointmentService.BookAppointment(userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Appointment booked successfully", http.StatusCreated, appointment, nil)
	}
}

func (s *Server) handleGetAppointment() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		id, err := paramUint(c, "id")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		appointment, apiErr := s.AppointmentService.GetAppointment(id, userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Appointment retrieved successfully", http.StatusOK, appointment, nil)
	}
}

// handleGetUserAppointments lists the caller's appointments, as a professional
// when they hold that role and as a customer otherwise.
func (s *Server) handleGetUserAppointments() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var appointments []models.Appointment
		var apiErr *errs.Error
		if currentRole(c) == models.RoleProfessional {
			appointments, apiErr = s.AppointmentService.GetProfessionalAppointments(userID)
		} else {
			appointments, apiErr = s.AppointmentService.GetCustomerAppointments(userID)
		}
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Appointments retrieved successfully", http.StatusOK, appointments, nil)
	}
}

func (s *Server) handleUpdateAppointmentStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var request models.UpdateAppointmentStatusRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		appointment, apiErr := s.AppointmentService.UpdateAppointmentStatus(userID, currentRole(c), &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Appointment status updated successfully", http.StatusOK, appointment, nil)
	}
}

func (s *Server) handleCancelAppointment() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		id, err := paramUint(c, "id")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		appointment, apiErr := s.AppointmentService.CancelAppointment(id, userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Appointment cancelled successfully", http.StatusOK, appointment, nil)
	}
}

func (s *Server) handleProvideMeetingID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var request models.ProvideMeetingRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		appointment, apiErr := s.AppointmentService.ProvideMeetingID(userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Meeting id recorded successfully", http.StatusOK, appointment, nil)
	}
}
