package dataset

// Label values for synthetic records.
const (
	LabelLegitimate = 0
	LabelFraud      = 1
)

// Record is one labeled synthetic training example. Immutable after
// creation; exported as a flat key/value row.
type Record struct {
	Label                 int      `json:"label"`
	Subject               string   `json:"subject"`
	Body                  string   `json:"body"`
	FromDomain            string   `json:"fromDomain"`
	ReturnPathDomain      string   `json:"returnPathDomain"`
	DomainMismatchFlag    bool     `json:"domainMismatchFlag"`
	SenderReputationScore float64  `json:"senderReputationScore"`
	TimeAnomalyScore      float64  `json:"timeAnomalyScore"`
	AttachmentType        string   `json:"attachmentType"`
	UrgencyKeywords       []string `json:"urgencyKeywords"`
	HasLinks              bool     `json:"hasLinks"`
	LinkCount             int      `json:"linkCount"`
}
