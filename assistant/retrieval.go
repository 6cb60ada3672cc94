package assistant

import (
	"fmt"
	"strings"

	"go-antna/types"
)

// Context keeps every update whose message contains at least one query
// token, compared case-insensitively as plain substrings. Matches are not
// ranked and keep input order.
func Context(query string, updates []types.SocialUpdate) []string {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return []string{}
	}

	out := []string{}
	for _, u := range updates {
		msg := strings.ToLower(u.Message)
		for _, tok := range tokens {
			if strings.Contains(msg, tok) {
				out = append(out, u.Message)
				break
			}
		}
	}
	return out
}

func systemPrompt(region string) string {
	return fmt.Sprintf("You are ANTNA, an AI assistant for emergency management in %s. "+
		"Provide clear, accurate information based on available data and social media updates.", region)
}

// BuildPrompt embeds the retrieved messages and the question in one user
// message.
func BuildPrompt(context []string, query string) string {
	return fmt.Sprintf("Context from verified social media:\n%s\n\nUser Question: %s", strings.Join(context, "\n"), query)
}
