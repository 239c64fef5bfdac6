package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// ListBranches retorna as filiais presentes no snapshot
func ListBranches(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branches, err := service.ListBranches(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar filiais")
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"branches": branches,
			"total":    len(branches),
		})
	}
}

// GetAvailableMonths retorna os meses do ano corrente com vendas da filial
func GetAvailableMonths(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taxID := httprouter.ParamsFromContext(r.Context()).ByName("taxId")
		if taxID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "CNPJ da filial não informado", nil)
			return
		}

		months, err := service.AvailableMonths(r.Context(), taxID)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"branch_tax_id": taxID,
			}).WithError(err).Warn("Erro ao buscar meses disponíveis")
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, months)
	}
}
