package http

import (
	"encoding/json"
	"net/http"

	"github.com/hadirly/attendance-backend-go/internal/domain/attendanceconfig"
	"github.com/hadirly/attendance-backend-go/internal/handler/http/response"
)

type AttendanceConfigHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
}

type attendanceConfigHandlerImpl struct {
	configService attendanceconfig.Service
}

func NewAttendanceConfigHandler(configService attendanceconfig.Service) AttendanceConfigHandler {
	return &attendanceConfigHandlerImpl{
		configService: configService,
	}
}

// Get implements AttendanceConfigHandler. Returns null data when no config
// has been saved yet.
func (h *attendanceConfigHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if cfg == nil {
		response.Success(w, nil)
		return
	}

	response.Success(w, attendanceconfig.ToResponse(*cfg))
}

// Save implements AttendanceConfigHandler.
func (h *attendanceConfigHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	var req attendanceconfig.SaveConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	saved, err := h.configService.Save(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Konfigurasi kehadiran disimpan", attendanceconfig.ToResponse(saved))
}
