package handler

import (
	"net/http"

	"walkin/pkg/client"
)

// RegisterRoutes mounts the appointment API. Literal segments take
// precedence over wildcards, so /timeslots/{date} and /id-types never reach
// the {id} routes.
func (h *AppointmentHandler) RegisterRoutes(mux *http.ServeMux) {
	base := client.AppointmentsBasePath

	mux.HandleFunc("GET "+base+"/timeslots/{date}", h.Timeslots)
	mux.HandleFunc("GET "+base+"/id-types", h.IDTypes)
	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("GET "+base+"/{id}", h.GetByID)
	mux.HandleFunc("PUT "+base+"/{id}/cancel", h.Cancel)
}
