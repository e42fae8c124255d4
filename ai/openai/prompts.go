package openai

import (
	"fmt"
	"strings"

	"github.com/ltejedor/aihacks/core"
)

const judgeSystemPrompt = "You are a helpful assistant that provides JSON output."

const judgePromptTemplate = `
You are an AI assistant that helps organize chat messages into valuable, evergreen resources.
Your goal is to identify conversations that would be useful to someone reading the chat history weeks or months later.

A "resource" is a conversation that provides lasting value. This could be:
- A discussion about a specific technical problem and its solution.
- A shared link to a tool, paper, or article with insightful commentary.
- A deep discussion on a specific, relevant topic (e.g., a new AI model, a programming technique).

**STRICT FILTERING - DO NOT classify as a resource:**
- Event announcements (hackathons, conferences, meetups, workshops, showcases with specific dates)
- Job postings or internship opportunities
- Simple social chatter (e.g., "hello", "thank you")
- Logistical planning (e.g., "Is anyone doing the hackathon tomorrow", "let's meet at 5")
- Recruitment or networking messages
- Broad, generic questions that don't lead to a specific, deep discussion
- Single messages without substantive follow-up discussion

Here is a candidate message and its surrounding context.

Candidate message:
ID: %s
Author: %s
Body: %s

Context:
%s

Your task is to perform the following steps:

**Step 1: Determine if the candidate message is the start of a useful resource.**
- A useful message must have evergreen value. Ask yourself: "Would someone new to this chat find this conversation useful weeks from now?"
- Be very strict. Most messages are not resources.
- **Example of a non-resource message:** "Is anyone doing the hackathon tomorrow" - this is logistical and has no long-term value.
- **Example of a non-resource message:** "BNT's AI Startup Showcase on April 24th" - this is an event announcement.

**Step 2: If it IS a resource, identify all messages that are part of the SAME, FOCUSED discussion.**
- The messages must be *directly* related to the candidate message's specific topic.
- Be very precise about topic boundaries. For example:
    - A discussion about "AI agents for B2B marketing" is a **different** topic from "using ChatGPT for startup advice". Do not group them, even if they are near each other.
    - A discussion about a new model like "Llama 4" should be its own resource, unless other messages are also *specifically* about Llama 4.
- Only include messages that are part of the core discussion. Do not include tangentially related comments.
- **IMPORTANT:** You must include the candidate message ID in the related_message_ids array if it's a resource.

**Step 3: If it IS a resource, provide a concise, one-sentence description.**
- The description should accurately summarize the specific topic of the resource.

Provide your answer in JSON format with three keys:
- "is_resource": boolean (true if the candidate is a useful resource, false otherwise)
- "related_message_ids": an array of message IDs. If "is_resource" is false, this should be an empty array. If true, it MUST include the candidate message ID.
- "resource_description": a string. If "is_resource" is false, this should be an empty string.

JSON Response:
`

// buildJudgePrompt renders the classification prompt for a focal message and
// its timestamp-ordered context window.
func buildJudgePrompt(focal core.Message, window []core.Message) string {
	var context strings.Builder
	for i, msg := range window {
		if i > 0 {
			context.WriteByte('\n')
		}
		fmt.Fprintf(&context, "ID: %s, Author: %s, Body: %s", msg.ID, msg.Author, msg.Body)
	}

	return fmt.Sprintf(judgePromptTemplate, focal.ID, focal.Author, focal.Body, context.String())
}
