package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"email-agent-backend/pkg/ai"
)

// Recognized tones and their prompt guideline blocks.
var toneGuidelines = map[string]string{
	"Professional": `- Formal business language
- Clear, concise, and respectful
- Proper grammar and structure
- Professional greetings and closings
- Focus on clarity and professionalism
- Avoid slang and casual expressions`,

	"Casual": `- Relaxed, informal language
- Can use contractions and everyday expressions
- Friendly, conversational tone
- Simple, direct communication
- Can use emojis if appropriate
- Like talking to a colleague or friend`,

	"Friendly": `- Warm and approachable
- Positive and encouraging
- Shows empathy and understanding
- Uses welcoming language
- Maintains professionalism with warmth
- Builds rapport and connection`,

	"Formal": `- Very structured and official
- Traditional business language
- Complete sentences, no contractions
- Formal salutations and closings
- Precise and detailed
- Suitable for official communications`,

	"Urgent": `- Direct and to the point
- Clear action-oriented language
- Emphasizes time sensitivity
- Uses attention-grabbing elements if needed
- Focuses on immediate action
- Concise and impactful`,

	"Persuasive": `- Convincing and motivational
- Highlights benefits and positive outcomes
- Uses compelling language
- Builds enthusiasm and buy-in
- Focuses on value proposition
- Encourages action and agreement`,
}

// Introductory phrases models like to prepend; stripped from replies.
var rewriteIntroPhrases = []string{
	"Here is the rewritten email:",
	"Rewritten email:",
	"Here's the email rewritten in",
	"Certainly! Here's the email rewritten",
	"Of course! Here is the email",
}

// RewriteEmail rewrites text in the named tone. An unrecognized tone uses
// the Professional guidelines on the AI path and returns the input verbatim
// on the fallback path.
func (u *processingUsecase) RewriteEmail(ctx context.Context, emailText, tone string) (string, bool) {
	guidelines, known := toneGuidelines[tone]
	if !known {
		guidelines = toneGuidelines["Professional"]
	}

	prompt := fmt.Sprintf(`TASK: Completely rewrite the following email in a %s tone.

IMPORTANT INSTRUCTIONS:
1. UNDERSTAND the core message, intent, and key information from the original email
2. DO NOT simply copy-paste or lightly edit the original text
3. CREATE a completely new version with fresh wording and phrasing
4. PRESERVE all factual information: names, dates, numbers, registration numbers, specific details
5. MAINTAIN the original purpose and intent of the email
6. ADAPT the style completely to match the %s tone
7. USE appropriate formatting, greetings, and closings for the %s tone
8. KEEP the same length and level of detail as the original

TONE GUIDELINES for %s:
%s

Original Email:
"%s"

Your completely rewritten version in %s tone:`,
		strings.ToLower(tone), tone, tone, tone, guidelines, emailText, tone)

	rewritten, err := u.generate(ctx, prompt, ai.GenerateOptions{Temperature: 0.7, TopP: 0.9, MaxTokens: 800})
	if err != nil {
		log.Printf("[Rewriter] Rewrite in %s tone failed: %v, using template", tone, err)
		return fallbackRewrite(emailText, tone), false
	}

	return cleanRewriteResponse(rewritten), true
}

// cleanRewriteResponse strips wrapping quotes and known intro phrases.
func cleanRewriteResponse(text string) string {
	text = strings.Trim(text, "\"'")

	for _, phrase := range rewriteIntroPhrases {
		if strings.HasPrefix(text, phrase) {
			text = strings.TrimSpace(text[len(phrase):])
		}
	}
	return text
}

// fallbackRewrite wraps the original text in a tone-appropriate greeting and
// closing. Unknown tones return the input unchanged.
func fallbackRewrite(emailText, tone string) string {
	switch tone {
	case "Professional":
		return fmt.Sprintf(`Dear Recipient,

I am writing regarding the matter outlined below.

%s

Thank you for your attention to this issue.

Best regards,
[Your Name]`, emailText)

	case "Casual":
		return fmt.Sprintf(`Hey!

Just wanted to follow up on this:

%s

Let me know what you think!

Thanks!`, emailText)

	case "Friendly":
		return fmt.Sprintf(`Hello!

Hope you're having a good day! I wanted to touch base about this:

%s

Looking forward to hearing from you!

Best,`, emailText)

	case "Formal":
		return fmt.Sprintf(`To Whom It May Concern,

This communication serves to formally address the following matter:

%s

Your prompt attention to this issue would be greatly appreciated.

Respectfully yours,
[Your Name]`, emailText)

	case "Urgent":
		return fmt.Sprintf(`URGENT ATTENTION REQUIRED

Regarding the following matter which requires immediate attention:

%s

Please address this promptly.

Thank you,`, emailText)

	case "Persuasive":
		return fmt.Sprintf(`Hello!

I'm excited to share this opportunity with you:

%s

I'm confident this approach will yield excellent results!

Best regards,`, emailText)

	default:
		return emailText
	}
}
