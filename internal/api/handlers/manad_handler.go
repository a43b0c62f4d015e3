// internal/api/handlers/manad_handler.go
package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"manad-service/internal/api/responses"
	"manad-service/internal/core/manad"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ManadHandler handles MANAD report requests.
type ManadHandler struct {
	service      manad.Service
	reportPrefix string
}

// NewManadHandler creates a new MANAD report handler.
func NewManadHandler(service manad.Service, reportPrefix string) *ManadHandler {
	return &ManadHandler{
		service:      service,
		reportPrefix: reportPrefix,
	}
}

// HandleReport returns the .xlsx report for the uploaded MANAD file.
func (h *ManadHandler) HandleReport(c *gin.Context) {
	manadFileHeader, err := c.FormFile("manadFile")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo MANAD não encontrado ou inválido")
		return
	}
	manadFile, err := manadFileHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo MANAD")
		return
	}
	defer manadFile.Close()

	report, err := h.service.GenerateReport(manadFile)
	if err != nil {
		responses.Error(c, statusFor(err), "Erro ao gerar relatório MANAD", err.Error())
		return
	}

	responses.File(c, h.reportName(manadFileHeader.Filename), xlsxContentType, report)
}

// HandleSummary returns the report rows as JSON.
func (h *ManadHandler) HandleSummary(c *gin.Context) {
	manadFileHeader, err := c.FormFile("manadFile")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo MANAD não encontrado ou inválido")
		return
	}
	manadFile, err := manadFileHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo MANAD")
		return
	}
	defer manadFile.Close()

	rows, err := h.service.Summarize(manadFile)
	if err != nil {
		responses.Error(c, statusFor(err), "Erro ao consolidar arquivo MANAD", err.Error())
		return
	}

	responses.Success(c, rows, "Relatório MANAD consolidado com sucesso")
}

func (h *ManadHandler) reportName(uploaded string) string {
	base := filepath.Base(uploaded)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "manad"
	}
	return h.reportPrefix + base + ".xlsx"
}

// statusFor separa erros de conteúdo do arquivo (422) de falhas internas (500).
func statusFor(err error) int {
	if errors.Is(err, manad.ErrMalformedLine) || errors.Is(err, manad.ErrNonNumericCategoryCode) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
