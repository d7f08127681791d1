package mailcsv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pedroriq/sissuporte/internal/models"
)

// Header é o contrato do arquivo trocado com as planilhas dos
// técnicos; a ordem das colunas importa.
var Header = []string{"Email", "Usuário", "Cargo", "Departamento", "Objetivo", "Em Uso"}

// Record é uma linha importada; só o e-mail é obrigatório.
type Record struct {
	Email        string
	Usuario      string
	Cargo        string
	Departamento string
	Objetivo     string
	EmUso        bool
}

// ParseEmUso aceita a representação textual da coluna "Em Uso":
// "sim", "true" ou "1" valem verdadeiro, o resto é falso.
func ParseEmUso(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "sim" || v == "true" || v == "1"
}

func emUsoLabel(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

// Marshal serializa os e-mails de um cliente no formato de exportação.
func Marshal(emails []models.ManagedEmail) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, err
	}

	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}

	for _, e := range emails {
		row := []string{
			e.Email,
			deref(e.Usuario),
			deref(e.Cargo),
			deref(e.Department),
			deref(e.Purpose),
			emUsoLabel(e.InUse),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// Parse lê o arquivo importado e devolve os registros com e-mail
// preenchido. Linhas sem e-mail são puladas, não são erro.
func Parse(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cabeçalho ausente: %w", err)
	}

	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(row) < len(Header) || strings.TrimSpace(row[0]) == "" {
			continue
		}

		records = append(records, Record{
			Email:        strings.TrimSpace(row[0]),
			Usuario:      strings.TrimSpace(row[1]),
			Cargo:        strings.TrimSpace(row[2]),
			Departamento: strings.TrimSpace(row[3]),
			Objetivo:     strings.TrimSpace(row[4]),
			EmUso:        ParseEmUso(row[5]),
		})
	}

	return records, nil
}

func checkHeader(got []string) error {
	if len(got) < len(Header) {
		return fmt.Errorf("cabeçalho inválido: esperado %s", strings.Join(Header, ","))
	}
	for i, want := range Header {
		if strings.TrimSpace(got[i]) != want {
			return fmt.Errorf("cabeçalho inválido: esperado %s", strings.Join(Header, ","))
		}
	}
	return nil
}
