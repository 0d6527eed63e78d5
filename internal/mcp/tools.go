package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var messageSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"message": map[string]interface{}{
			"type":        "string",
			"description": "The user's utterance",
		},
	},
	"required": []string{"message"},
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "get_response",
		Description: "Get the bot's reply to a message. Returns the reply text only.",
		InputSchema: messageSchema,
	},
	{
		Name:        "score_message",
		Description: "Score a message against every response rule. Returns the tokens, each rule's score and the chosen reply.",
		InputSchema: messageSchema,
	},
	{
		Name:        "list_rules",
		Description: "List the response rules in scoring order, with their recognized and required words.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
}
