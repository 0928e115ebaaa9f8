package entity

// CostRecord is one raw row from the cost source: the cost of a service in an
// account on a calendar day. Date is kept as the source string (YYYY-MM-DD);
// parsing happens during aggregation so that one bad row cannot fail a batch.
type CostRecord struct {
	Date      string  `json:"date"`
	AccountID string  `json:"account_id"`
	ServiceID string  `json:"service"`
	Cost      float64 `json:"cost"`
}

// Account represents an AWS account and the name shown on its panel.
type Account struct {
	ID          string `json:"account_id"`
	DisplayName string `json:"display_name"`
}

// AccountGroup representa uma unidade de trabalho para processamento:
// um conjunto de contas que compartilham um gráfico e um canal de destino.
type AccountGroup struct {
	// Name é o nome do projeto exibido nos logs.
	Name string `json:"name"`

	// TargetChannel é o ID do canal Slack que recebe o gráfico.
	TargetChannel string `json:"target_channel"`

	// Accounts preserva a ordem definida na origem; os painéis seguem essa ordem.
	Accounts []Account `json:"accounts"`
}

// AccountIDs returns the ids of the group's accounts in order.
func (g AccountGroup) AccountIDs() []string {
	ids := make([]string, 0, len(g.Accounts))
	for _, a := range g.Accounts {
		ids = append(ids, a.ID)
	}
	return ids
}
