package suporte

// ===============================
// Status do chamado
// ===============================

type Status string

const (
	StatusAberto      Status = "aberto"
	StatusEmAndamento Status = "em_andamento"
	StatusResolvido   Status = "resolvido"
	StatusFechado     Status = "fechado"
)

// IsValidStatus checa pertencimento ao conjunto. Não há máquina de
// estados: qualquer valor do conjunto pode ser gravado a qualquer
// momento, o campo é de exibição e filtro.
func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusAberto, StatusEmAndamento, StatusResolvido, StatusFechado:
		return true
	}
	return false
}

// StatusLabel é o rótulo humano usado no relatório.
func StatusLabel(s string) string {
	switch Status(s) {
	case StatusAberto:
		return "Aberto"
	case StatusEmAndamento:
		return "Em Andamento"
	case StatusResolvido:
		return "Resolvido"
	case StatusFechado:
		return "Fechado"
	}
	return s
}

func InitialStatus() Status {
	return StatusAberto
}
