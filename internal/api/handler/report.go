package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// GetBranchReport retorna o relatório de vendas x meta de uma filial no mês informado
func GetBranchReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taxID := httprouter.ParamsFromContext(r.Context()).ByName("taxId")
		if taxID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "CNPJ da filial não informado", nil)
			return
		}

		monthParam := r.URL.Query().Get("month")
		if monthParam == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro month é obrigatório", nil)
			return
		}

		month, err := utils.ParseMonth(monthParam)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		report, err := service.GetBranchReport(r.Context(), taxID, month)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"branch_tax_id": taxID,
				"month":         month,
			}).WithError(err).Warn("Erro ao gerar relatório da filial")
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}
