package domain

// DocTypeKey tags a document-type pipeline on an organization. The set is
// closed: writing an unknown key is rejected by validation.
type DocTypeKey string

const (
	DocTypeInvoice    DocTypeKey = "invoice"
	DocTypeMortgage   DocTypeKey = "mortgage"
	DocTypeCommission DocTypeKey = "commission"
)

// SupportedDocTypeKeys is the closed set of pipeline tags an organization
// may carry steps for.
var SupportedDocTypeKeys = map[DocTypeKey]bool{
	DocTypeInvoice:    true,
	DocTypeMortgage:   true,
	DocTypeCommission: true,
}

// MessageSender identifies who produced a chat message.
type MessageSender string

const (
	SenderBot  MessageSender = "bot"
	SenderUser MessageSender = "user"
)

// Tab is a top-level navigation tab mirrored into the URL.
type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabDocuments Tab = "documents"
	TabReview    Tab = "review"
	TabAdmin     Tab = "admin"
)

// DefaultTab is where unknown or missing tab values fall back to.
const DefaultTab = TabDashboard

// KnownTabs enumerates the valid tab values.
var KnownTabs = map[Tab]bool{
	TabDashboard: true,
	TabDocuments: true,
	TabReview:    true,
	TabAdmin:     true,
}

// SidebarPanel is the active side panel, also URL-mirrored.
type SidebarPanel string

const (
	PanelNone          SidebarPanel = ""
	PanelOrganizations SidebarPanel = "organizations"
	PanelDocumentTypes SidebarPanel = "document-types"
	PanelApplications  SidebarPanel = "applications"
)

// KnownPanels enumerates the valid sidebar panel values.
var KnownPanels = map[SidebarPanel]bool{
	PanelNone:          true,
	PanelOrganizations: true,
	PanelDocumentTypes: true,
	PanelApplications:  true,
}

// ReviewState is the lifecycle state of a review document.
type ReviewState string

const (
	ReviewStateUploaded      ReviewState = "uploaded"
	ReviewStateExtracting    ReviewState = "extracting"
	ReviewStatePendingReview ReviewState = "pending_review"
	ReviewStateApproved      ReviewState = "approved"
	ReviewStateRejected      ReviewState = "rejected"
)

// ValidationRuleType scopes a validation rule.
type ValidationRuleType string

const (
	RuleTypeField       ValidationRuleType = "field"
	RuleTypeDocument    ValidationRuleType = "document"
	RuleTypeApplication ValidationRuleType = "application"
)

// KnownRuleTypes enumerates the valid rule types.
var KnownRuleTypes = map[ValidationRuleType]bool{
	RuleTypeField:       true,
	RuleTypeDocument:    true,
	RuleTypeApplication: true,
}

// ChartType selects the renderer for a dashboard item. The mapping to
// renderer descriptors is static; unknown keys fall back to the table chart.
type ChartType string

const (
	ChartBar   ChartType = "bar"
	ChartLine  ChartType = "line"
	ChartPie   ChartType = "pie"
	ChartTable ChartType = "table"
)

// ChartDescriptor names the renderer bound to a chart type.
type ChartDescriptor struct {
	Renderer string
	Axes     bool
}

var chartDescriptors = map[ChartType]ChartDescriptor{
	ChartBar:   {Renderer: "bar", Axes: true},
	ChartLine:  {Renderer: "line", Axes: true},
	ChartPie:   {Renderer: "pie", Axes: false},
	ChartTable: {Renderer: "table", Axes: false},
}

// DescriptorFor returns the renderer descriptor for a chart type, falling
// back to the table renderer for unknown keys.
func DescriptorFor(t ChartType) ChartDescriptor {
	if d, ok := chartDescriptors[t]; ok {
		return d
	}
	return chartDescriptors[ChartTable]
}

// AllowedExtensions maps upload file extensions to their content types.
// Review documents arrive as rendered pages or source PDFs only.
var AllowedExtensions = map[string]string{
	"pdf":  "application/pdf",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
}

// AllowedContentTypes is the set of magic-byte detected content types
// accepted on upload.
var AllowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
}

// ConfidenceBand classifies an extracted field's reliability.
type ConfidenceBand string

const (
	BandHigh   ConfidenceBand = "high"
	BandMedium ConfidenceBand = "medium"
	BandLow    ConfidenceBand = "low"
)

// BandFor maps a confidence score to its band. High needs no action,
// medium is flagged non-blocking, low must surface a warning before
// approval (approval itself is not prevented).
func BandFor(confidence float64) ConfidenceBand {
	switch {
	case confidence >= 0.90:
		return BandHigh
	case confidence >= 0.75:
		return BandMedium
	default:
		return BandLow
	}
}
