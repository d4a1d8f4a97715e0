package audit

import "fmt"

// schema is the reply shape the model is asked to produce
const schema = `{
  "auditReport": "A detailed audit report of the smart contract, covering security, performance and any other relevant aspects",
  "metricScores": [
    {"metric": "Security", "score": 0-10},
    {"metric": "Performance", "score": 0-10},
    {"metric": "Other key Areas", "score": 0-10},
    {"metric": "Gas Efficiency", "score": 0-10},
    {"metric": "Code Quality", "score": 0-10},
    {"metric": "Documentation", "score": 0-10}
  ],
  "suggestionsForImprovement": "Suggestions for improving the smart contract in terms of security, performance and any other identified weaknesses"
}`

const template = `Your role and goal is to be an AI smart contract auditor. Your job is to perform an audit on the given smart contract.
Here is the smart contract: %s

Please provide the results in the following JSON format for easy front-end display:

%s

Ensure that your response is a valid JSON object.
Thank You`

// Prompt embeds the contract into the fixed audit prompt
func Prompt(contract string) string {
	return fmt.Sprintf(template, contract, schema)
}
