package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	quadrotypes "github.com/madukisp/oris-vagas/modules/quadro/domain/types"
	vagatypes "github.com/madukisp/oris-vagas/modules/vagas/domain/types"
	vagaservices "github.com/madukisp/oris-vagas/modules/vagas/services"
	"github.com/madukisp/oris-vagas/pkg/excelexport"
)

func handleDeficit(w http.ResponseWriter, r *http.Request, vagas VagasService) {
	linhas, avisos, err := vagas.Deficit(r.Context())
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	if linhas == nil {
		linhas = []quadrotypes.DeficitRow{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"deficit": linhas,
		"avisos":  avisos,
	})
}

func handleExportVagas(w http.ResponseWriter, r *http.Request, vagas VagasService) {
	filtro := vagatypes.ListFilter{
		Status:      strings.TrimSpace(r.URL.Query().Get("status")),
		Tipo:        strings.TrimSpace(r.URL.Query().Get("tipo")),
		CentroCusto: strings.TrimSpace(r.URL.Query().Get("centro_custo")),
	}

	out, err := vagas.Listar(r.Context(), filtro)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}

	nome := fmt.Sprintf("vagas_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+nome+`"`)

	if err := excelexport.Write(w, "Vagas", vagaservices.CabecalhoExportacao, vagaservices.LinhasExportacao(out)); err != nil {
		// Headers are already out; nothing useful left to send.
		return
	}
}
