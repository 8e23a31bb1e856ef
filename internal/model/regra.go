package model

// Keys of the validation-rule flags consulted by the association pipeline.
// A missing row behaves as an active rule.
const (
	RegraCapacidade = "capacidade"
	RegraConflito   = "conflito"
	RegraLimite     = "limite"
)

// Regra is a validation-rule flag from `regras_validacao`. Ativo toggles
// the corresponding pipeline check without a redeploy.
type Regra struct {
	ID        uint64 `json:"id"`        // regras_validacao.id
	Chave     string `json:"chave"`     // regras_validacao.chave (unique)
	Descricao string `json:"descricao"` // regras_validacao.descricao
	Ativo     bool   `json:"ativo"`     // regras_validacao.ativo
}
