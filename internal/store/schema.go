package store

// Table and column names.
const (
	tableAttempts    = "attempts"
	tableKV          = "kv"
	tableLLMRequests = "llm_requests"

	colSeq          = "seq"
	colID           = "id"
	colRecordedAt   = "recorded_at"
	colPayload      = "payload"
	colKey          = "key"
	colValue        = "value"
	colProvider     = "provider"
	colModel        = "model"
	colPurpose      = "purpose"
	colInputTokens  = "input_tokens"
	colOutputTokens = "output_tokens"
	colLatencyMs    = "latency_ms"
	colSuccess      = "success"
	colErrorMessage = "error_message"
)
