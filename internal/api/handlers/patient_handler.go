// server/internal/api/handlers/patient_handler.go
package handlers

import (
	"errors"
	"log"
	"net/http"

	"phc-ops-api-server/internal/models"
	"phc-ops-api-server/internal/triage"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PatientHandler struct {
	DB *gorm.DB
	// Classifier is the AI triage collaborator. It is injected at
	// construction time and may be nil when no API key is configured.
	Classifier triage.Classifier
	// Fallback is the deterministic rule-based classifier used whenever the
	// AI collaborator is unavailable or returns malformed output.
	Fallback triage.RuleBasedClassifier
}

type CreatePatientRequest struct {
	Name           string   `json:"name" binding:"required,max=255"`
	Age            int      `json:"age" binding:"required,gt=0"`
	Sex            string   `json:"sex" binding:"required,oneof=Male Female"`
	Symptoms       []string `json:"symptoms" binding:"required,min=1"`
	VisitType      string   `json:"visit_type" binding:"required,oneof=Emergency Acute Routine Follow-up"`
	Vitals         string   `json:"vitals"`
	MedicalHistory []string `json:"medical_history"`
}

type UpdatePatientRequest struct {
	Name           *string   `json:"name" binding:"omitempty,max=255"`
	Age            *int      `json:"age" binding:"omitempty,gt=0"`
	Sex            *string   `json:"sex" binding:"omitempty,oneof=Male Female"`
	Symptoms       *[]string `json:"symptoms"`
	VisitType      *string   `json:"visit_type" binding:"omitempty,oneof=Emergency Acute Routine Follow-up"`
	Vitals         *string   `json:"vitals"`
	MedicalHistory *[]string `json:"medical_history"`
}

// RegisterPatient stores a new patient and their visit details.
func (h *PatientHandler) RegisterPatient(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient := models.Patient{
		Name:           req.Name,
		Age:            req.Age,
		Sex:            req.Sex,
		Symptoms:       datatypes.NewJSONSlice(req.Symptoms),
		VisitType:      req.VisitType,
		Vitals:         req.Vitals,
		MedicalHistory: datatypes.NewJSONSlice(req.MedicalHistory),
	}

	if err := h.DB.Create(&patient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register patient", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, patient)
}

// GetAllPatients lists registered patients, newest first.
func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	var patients []models.Patient
	if err := h.DB.Order("created_at desc").Find(&patients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query patients", "details": err.Error()})
		return
	}

	if patients == nil {
		patients = []models.Patient{}
	}

	c.JSON(http.StatusOK, patients)
}

// GetPatientByID retrieves one patient record.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve patient", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, patient)
}

// UpdatePatient applies a partial update to a patient record.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve patient", "details": err.Error()})
		}
		return
	}

	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Age != nil {
		patient.Age = *req.Age
	}
	if req.Sex != nil {
		patient.Sex = *req.Sex
	}
	if req.Symptoms != nil {
		patient.Symptoms = datatypes.NewJSONSlice(*req.Symptoms)
	}
	if req.VisitType != nil {
		patient.VisitType = *req.VisitType
	}
	if req.Vitals != nil {
		patient.Vitals = *req.Vitals
	}
	if req.MedicalHistory != nil {
		patient.MedicalHistory = datatypes.NewJSONSlice(*req.MedicalHistory)
	}

	if err := h.DB.Save(&patient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update patient", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, patient)
}

// TriagePatient runs the AI triage for a patient, falling back to the
// rule-based classifier when the collaborator is unavailable or its output
// cannot be parsed.
func (h *PatientHandler) TriagePatient(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve patient", "details": err.Error()})
		}
		return
	}

	if h.Classifier != nil {
		assessment, err := h.Classifier.Classify(c.Request.Context(), patient)
		if err == nil {
			c.JSON(http.StatusOK, assessment)
			return
		}
		log.Printf("AI triage failed for patient %d, using rule-based fallback: %v", patient.ID, err)
	}

	assessment, _ := h.Fallback.Classify(c.Request.Context(), patient)
	c.JSON(http.StatusOK, assessment)
}
