package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/recruit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/recruit-scheduler/internal/validation"
)

type businessStatus struct {
	status  int
	message string
}

var businessErrors = map[string]businessStatus{
	"candidate_not_found":         {http.StatusNotFound, "Candidat introuvable."},
	"proposal_not_found":          {http.StatusNotFound, "Proposition introuvable."},
	"draft_not_found":             {http.StatusNotFound, "Brouillon introuvable ou expiré."},
	"exception_not_found":         {http.StatusNotFound, "Aucune exception pour cette date."},
	"alternate_slot_not_found":    {http.StatusNotFound, "Créneau alternatif introuvable."},
	"invalid_tab":                 {http.StatusBadRequest, "Onglet inconnu."},
	"invalid_date":                {http.StatusBadRequest, "Date invalide."},
	"too_many_alternate_slots":    {http.StatusConflict, "Nombre maximum de créneaux alternatifs atteint."},
	"duplicate_exception_date":    {http.StatusConflict, "Une exception existe déjà pour cette date."},
	"duplicate_calendar_provider": {http.StatusConflict, "Ce calendrier est déjà connecté."},
	"duplicate_weekday":           {http.StatusConflict, "Ce jour est déjà configuré."},
	"availability_save_failed":    {http.StatusInternalServerError, "Impossible d'enregistrer les disponibilités."},
}

// writeError maps use case errors onto the JSON error body.
func writeError(c *gin.Context, err error) {
	if fe, ok := validation.AsFieldErrors(err); ok {
		httperr.Validation(c, fe)
		return
	}

	if code, ok := httperr.BusinessCode(err); ok {
		if bs, known := businessErrors[code]; known {
			httperr.Write(c, bs.status, code, bs.message)
			return
		}
		httperr.BadRequest(c, code, "Requête refusée.")
		return
	}

	_ = c.Error(err)
	httperr.Internal(c, "internal_error", "Erreur interne.")
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	httperr.BadRequest(c, "invalid_request", "Requête invalide.")
}
