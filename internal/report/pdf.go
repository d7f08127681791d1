package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	domain "github.com/pedroriq/sissuporte/internal/domain/suporte"
	"github.com/pedroriq/sissuporte/internal/dto"
)

const (
	dateLayout     = "02/01/2006"
	descricaoLimit = 40
)

// Filters são os valores exibidos no cabeçalho do relatório, já
// resolvidos (nome do cliente, não o id).
type Filters struct {
	DateStart *time.Time
	DateEnd   *time.Time
	Cliente   string
	Tipo      string
	Status    string
}

// BuildSuportesPDF monta o relatório de chamados: título, filtros
// ativos e uma linha por chamado.
func BuildSuportesPDF(tickets []dto.SuporteListDTO, f Filters) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 10, tr("Relatório de Suportes"))
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 10)

	if f.DateStart != nil || f.DateEnd != nil {
		inicio := "Início"
		if f.DateStart != nil {
			inicio = f.DateStart.Format(dateLayout)
		}
		fim := "Hoje"
		if f.DateEnd != nil {
			fim = f.DateEnd.Format(dateLayout)
		}
		pdf.Cell(0, 6, tr(fmt.Sprintf("Período: %s até %s", inicio, fim)))
		pdf.Ln(6)
	}

	if f.Cliente != "" {
		pdf.Cell(0, 6, tr("Cliente: "+f.Cliente))
		pdf.Ln(6)
	}
	if f.Tipo != "" {
		pdf.Cell(0, 6, tr("Tipo: "+f.Tipo))
		pdf.Ln(6)
	}
	if f.Status != "" {
		pdf.Cell(0, 6, tr("Status: "+domain.StatusLabel(f.Status)))
		pdf.Ln(6)
	}

	pdf.Cell(0, 6, tr(fmt.Sprintf("Total de registros: %d", len(tickets))))
	pdf.Ln(10)

	writeTable(pdf, tr, tickets)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var tableWidths = []float64{22, 38, 28, 30, 26, 46}

func writeTable(pdf *gofpdf.Fpdf, tr func(string) string, tickets []dto.SuporteListDTO) {
	header := []string{"Data", "Cliente", "Tipo", "Técnico", "Status", "Descrição"}

	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(37, 99, 235)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range header {
		pdf.CellFormat(tableWidths[i], 7, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(0, 0, 0)

	deref := func(p *string) string {
		if p == nil || *p == "" {
			return "-"
		}
		return *p
	}

	for i, t := range tickets {
		fill := i%2 == 1
		if fill {
			pdf.SetFillColor(245, 247, 250)
		}

		tipo := t.Tipo
		if tipo == "" {
			tipo = "-"
		}
		cliente := t.ClienteNome
		if cliente == "" {
			cliente = "-"
		}

		row := []string{
			t.DataSuporte.Format(dateLayout),
			cliente,
			tipo,
			deref(t.Tecnico),
			domain.StatusLabel(t.Status),
			Truncate(t.Descricao, descricaoLimit),
		}
		for j, v := range row {
			pdf.CellFormat(tableWidths[j], 6, tr(v), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}
}

// Truncate corta o texto no limite e marca com reticências.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
