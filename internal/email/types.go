package email

// Email - одно письмо
type Email struct {
	From     string
	To       []string
	Cc       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData - данные для шаблонов писем
type TemplateData map[string]interface{}

// Шаблоны уведомлений маркетплейса
const (
	TemplateApplicationSubmitted     = "application_submitted"
	TemplateApplicationStatusChanged = "application_status_changed"
	TemplateOfferReceived            = "offer_received"
	TemplateOfferStatusChanged       = "offer_status_changed"
	TemplateProposalReceived         = "proposal_received"
	TemplateProposalStatusChanged    = "proposal_status_changed"
)
