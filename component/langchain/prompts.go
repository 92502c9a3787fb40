package langchain

import "fmt"

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "topic": {
      "type": "string"
    },
    "keywords": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "keyword": {
            "type": "string",
            "pattern": "^[a-z0-9]+( [a-z0-9]+)*$"
          },
          "importance": {
            "type": "integer",
            "minimum": 1,
            "maximum": 10
          }
        },
        "required": ["keyword", "importance"],
        "additionalProperties": false
      }
    }
  },
  "required": ["topic", "keywords"],
  "additionalProperties": false
}`

const extractionPromptTemplate = `Identify the overall topic of the given document and extract its most important keywords, returned as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- The topic is a single short phrase naming what the document is about.
- Keywords must be lowercase, 1-3 words each, singular form only.
- Return at most %d keywords.
- Importance is an integer from 1 (least relevant) to 10 (most central). Rate based on how essential the keyword is for finding this document.
- Include only keywords that are explicitly mentioned or clearly implied by the document. Do not hallucinate.
- If no keywords can be identified, return "keywords": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "PostgreSQL uses write-ahead logging to guarantee durability. Every change is recorded in the WAL before it reaches the data files."
Output:
{
  "topic": "postgresql write-ahead logging",
  "keywords": [
    {"keyword":"write-ahead logging","importance":9},
    {"keyword":"postgresql","importance":8},
    {"keyword":"durability","importance":7}
  ]
}

Example (short note, little structure):
Input: "remember to rotate the api keys before the audit next week"
Output:
{
  "topic": "api key rotation",
  "keywords": [
    {"keyword":"api key","importance":9},
    {"keyword":"audit","importance":7}
  ]
}`

// buildSystemPrompt creates the system prompt with the keyword cap embedded.
func buildSystemPrompt(maxKeywords int) string {
	return fmt.Sprintf(extractionPromptTemplate,
		extractionResponseSchema,
		maxKeywords)
}
