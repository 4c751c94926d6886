package tools

import "github.com/ziadkadry99/smartsupport/internal/llm"

var scheduleTechnicianDef = llm.ToolDefinition{
	Name:        "schedule_technician",
	Description: "Schedule a technician visit for a customer. Use this when the customer requests a technician, reports a leak, or needs help with water meter issues.",
	Parameters: llm.Schema{
		Type: "object",
		Properties: map[string]llm.Property{
			"reason": {
				Type:        "string",
				Description: "The reason for the technician visit (e.g., 'בדיקת נזילה', 'בעיה במונה', 'לחץ מים נמוך')",
			},
			"preferred_date": {
				Type:        "string",
				Description: "Preferred date for the visit (optional)",
			},
		},
		Required: []string{"reason"},
	},
}

var getWeatherDef = llm.ToolDefinition{
	Name:        "get_weather",
	Description: "Get current weather information for a city in Israel. Use this when customers ask about weather, or to provide context about water usage during hot/cold days.",
	Parameters: llm.Schema{
		Type: "object",
		Properties: map[string]llm.Property{
			"city": {
				Type:        "string",
				Description: "City name in Israel (e.g., 'תל אביב', 'ירושלים', 'חיפה', 'Tel Aviv', 'Jerusalem', 'Haifa')",
			},
		},
		Required: []string{"city"},
	},
}

var sendConfirmationEmailDef = llm.ToolDefinition{
	Name:        "send_confirmation_email",
	Description: "Send an email confirmation to the customer with appointment or request details. Use this AFTER scheduling a technician and AFTER the customer provides their email address.",
	Parameters: llm.Schema{
		Type: "object",
		Properties: map[string]llm.Property{
			"email": {
				Type:        "string",
				Description: "Customer's email address",
			},
			"subject": {
				Type:        "string",
				Description: "Email subject",
			},
			"details": {
				Type:        "string",
				Description: "Details to include in the email (appointment time, reason, etc.)",
			},
		},
		Required: []string{"email", "subject", "details"},
	},
}

var searchKnowledgeBaseDef = llm.ToolDefinition{
	Name:        "search_knowledge_base",
	Description: "Search the company knowledge base for information about Mei Avivim water company services, billing, procedures, policies, and FAQs. Use this when the customer asks questions about company services, billing, how things work, or needs factual information that might be in company documents.",
	Parameters: llm.Schema{
		Type: "object",
		Properties: map[string]llm.Property{
			"query": {
				Type:        "string",
				Description: "The search query - what information to look for (e.g., 'תעריפי מים', 'איך לשלם חשבון', 'שעות פעילות')",
			},
		},
		Required: []string{"query"},
	},
}
