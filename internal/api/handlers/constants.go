package handlers

const (
	// Header carrying the caller's LLM credential on the JSON API
	apiKeyHeader = "X-API-Key"

	missingCredentialMessage = "Please enter your OpenAI API key."
)
