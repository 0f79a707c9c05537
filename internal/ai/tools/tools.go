package tools

// Metadata describes one AI tool as presented to clients.
type Metadata struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Tool identifiers.
const (
	ToolShowHighRiskEvents   = "show_high_risk_events"
	ToolSummarizeOpenEvents  = "summarize_open_events"
	ToolSuggestNextSteps     = "suggest_next_steps"
	ToolIdentifyTrends       = "identify_trends"
	ToolGenerateNotification = "generate_notification"
)

// toolCatalog is the fixed set of tools, in presentation order.
var toolCatalog = []Metadata{
	{
		ID:          ToolShowHighRiskEvents,
		Name:        "Show High-Risk Events",
		Description: "Identify and filter audits based on severity, priority, and risk factors",
		Icon:        "alert-triangle",
	},
	{
		ID:          ToolSummarizeOpenEvents,
		Name:        "Summarize Open Events",
		Description: "Provide a summary of open/planned audits for the specified time period",
		Icon:        "file-text",
	},
	{
		ID:          ToolSuggestNextSteps,
		Name:        "Suggest Next Steps",
		Description: "Get AI recommendations for specific audit actions and follow-ups",
		Icon:        "lightbulb",
	},
	{
		ID:          ToolIdentifyTrends,
		Name:        "Identify Audit Trends",
		Description: "Analyze audit patterns and trends across different types and locations",
		Icon:        "trending-up",
	},
	{
		ID:          ToolGenerateNotification,
		Name:        "Generate Notification",
		Description: "Create draft notifications for audit communications and closures",
		Icon:        "bell",
	},
}

// AvailableTools returns the catalog of tools clients may invoke.
func AvailableTools() []Metadata {
	out := make([]Metadata, len(toolCatalog))
	copy(out, toolCatalog)
	return out
}

// chatRoute maps a message keyword to the tool that should handle it.
// Routes are checked in order and the first match wins.
type chatRoute struct {
	Keyword string
	Tool    string
}

var chatRoutes = []chatRoute{
	{"high-risk", ToolShowHighRiskEvents},
	{"high risk", ToolShowHighRiskEvents},
	{"risk", ToolShowHighRiskEvents},
	{"summary", ToolSummarizeOpenEvents},
	{"summarize", ToolSummarizeOpenEvents},
	{"next steps", ToolSuggestNextSteps},
	{"suggest", ToolSuggestNextSteps},
	{"recommend", ToolSuggestNextSteps},
	{"trends", ToolIdentifyTrends},
	{"pattern", ToolIdentifyTrends},
	{"notification", ToolGenerateNotification},
	{"notify", ToolGenerateNotification},
	{"draft", ToolGenerateNotification},
}
