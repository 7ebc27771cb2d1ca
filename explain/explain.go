package explain

import "strings"

type rule struct {
	keywords    []string
	explanation string
}

// rules are matched in order, the first match wins.
var rules = []rule{
	{
		keywords:    []string{"swap", "uniswap", "sushi"},
		explanation: "You're swapping tokens (e.g., ETH → USDC) on a DEX such as Uniswap.",
	},
	{
		keywords:    []string{"approve"},
		explanation: "This transaction approves a contract to spend your tokens.",
	},
	{
		keywords:    []string{"transfer"},
		explanation: "This transfers tokens from one address to another.",
	},
}

const genericExplanation = "Generic transaction — could be a contract call or token transfer."

// Explain describes the transaction in plain words by case-insensitive keyword matching.
func Explain(tx string) string {
	tx = strings.ToLower(tx)

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(tx, kw) {
				return r.explanation
			}
		}
	}

	return genericExplanation
}
