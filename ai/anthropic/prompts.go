package anthropic

import (
	"fmt"
	"strings"

	"github.com/ltejedor/aihacks/core"
)

const raterPromptTemplate = `
You are curating a knowledge base for AI builders. You will be shown a cluster of chat messages that has been flagged as a potential resource.

Task: Assess how evergreen and valuable this resource is for builders (i.e. still useful 6+ months from now).

STRICT FILTERING - Rate 0 or 1 for ANY of these:
- Events (hackathons, conferences, meetups, webinars, demos, launches)
- Job postings or recruitment
- Time-sensitive announcements or offers
- News or current events
- Personal updates or social posts
- Simple questions without substantive answers

Rating guidelines (choose ONE integer):
0 – Non-evergreen (events, jobs, announcements, news, personal updates)
1 – Mostly time-sensitive / low long-term value
2 – Evergreen but with some dated context or minor relevance
3 – Highly evergreen, broadly useful reference or guide

Only output a JSON object with exactly two keys:
  "rating"  → integer 0-3 following the scale above
  "reason"  → short text (1-2 sentences) why you gave that rating

Example output:
{"rating": 0, "reason": "This is an event announcement with specific dates"}

Here are the messages to evaluate:
%s`

const enricherPromptTemplate = `
You are an expert content creator for a website that showcases resources for AI hackers and founders.
Your task is to transform a chat conversation into an evergreen resource entry for our site.

Context:
- This resource has been pre-rated for evergreen quality: %d/3 (2 = evergreen, 3 = highly evergreen)
- Focus on what will remain useful to readers over time.
- The audience: developers & early-stage startup founders building with AI.

Here is the resource information:
Original one-sentence description: %s
Messages:
%s

Please produce a JSON object with the following keys:
1. "summary": object with:
   • "title" – catchy but clear (max 8 words), specific to the individual tool/solution
   • "summary_text" – start with one sentence that clearly states the core problem/question raised in the chat ("Problem:" or "Question:" prefix). Then provide the key solutions or outcomes from the discussion, using short paragraphs or bullet lists. Include only actionable insights, concrete advice, and takeaways for busy founders. Strictly avoid hype/filler.
2. "documentation": pull out code snippets, commands, links, or explicit step-by-step guides that a reader can copy/paste. Leave empty string if nothing useful.
3. "tags": 3-5 lowercase, hyphenated tags that founders would actually search for (e.g. "llms", "agents", "voice-ai", "computer-vision", "marketing", "evaluations", "data-labeling"). Avoid vague adjectives – favour concrete tech or topic names. No more than 5 tags.

Return ONLY the JSON. Escape newlines in string values as \n.
`

// formatMembers renders a resource's member messages as author/body lines.
func formatMembers(resource *core.Resource) string {
	var b strings.Builder
	for i, msg := range resource.Messages {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "Author: %s, Body: %s", msg.Author, msg.Body)
	}
	return b.String()
}

// buildRaterPrompt renders the evergreen-rating prompt for a resource.
func buildRaterPrompt(resource *core.Resource) string {
	return fmt.Sprintf(raterPromptTemplate, formatMembers(resource))
}

// buildEnricherPrompt renders the enrichment prompt for a resource and its
// prior rating.
func buildEnricherPrompt(resource *core.Resource, rating int) string {
	return fmt.Sprintf(enricherPromptTemplate, rating, resource.ResourceDescription, formatMembers(resource))
}
