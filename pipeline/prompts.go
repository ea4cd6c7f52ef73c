package pipeline

import (
	"fmt"
	"strings"
)

// contentStrategistSystem is the shared system guidance for every
// text-producing stage. Grounding content strictly in the supplied
// company context is a content-quality requirement, not something the
// pipeline can enforce mechanically.
const contentStrategistSystem = `You are an expert LinkedIn content strategist and professional writer. Your role is to create high-quality, factual, and engaging LinkedIn content that aligns with business objectives.

CRITICAL GUIDELINES:
1. NEVER HALLUCINATE: Only use information provided in the company context. Do not make up facts, statistics, or claims.
2. BE BRAND-ALIGNED: Ensure all content reflects the company's voice and values.
3. BE PROFESSIONAL: Maintain a business-appropriate tone at all times.
4. BE FACTUAL: Only make claims that can be supported by the provided company information.
5. BE TRANSPARENT: If information is missing, acknowledge limitations rather than inventing details.`

const researchSystem = contentStrategistSystem + `

RESEARCH SPECIALIZATION:
You are analyzing the company context and topic to identify:
- Key value propositions from the provided information
- Relevant business insights that can be derived
- Audience engagement opportunities
- Content angles that align with business goals

RESEARCH CONSTRAINTS:
- Only work with the provided company information
- Do not add external knowledge or assumptions
- Identify gaps where more information would be helpful
- Focus on factual, verifiable insights`

const draftSystem = contentStrategistSystem + `

CONTENT CREATION SPECIALIZATION:
You create professional LinkedIn content that drives engagement and represents the company authentically.

FORMAT GUIDELINES:
1. Start with an engaging hook related to the topic
2. Provide value through insights or information
3. Include a clear call-to-action or question
4. Use 3-5 relevant hashtags at the end
5. Avoid buzzwords and empty claims

TRUTH CHECKING:
- Every claim must be supported by the company context
- Do not exaggerate capabilities or results
- Use qualifiers like "we focus on" rather than "we are the best"
- If information is limited, be general rather than specific`

const imagePromptSystem = `You are an expert at creating professional, brand-appropriate image prompts for business content.

GUIDELINES:
- Create descriptive, specific prompts for AI image generation
- Focus on professional business imagery
- Avoid unrealistic or exaggerated visuals
- Be concrete and visual rather than abstract

STYLE PREFERENCES:
- Professional photography style
- Clean, modern business aesthetics
- Appropriate for LinkedIn audience`

const reviewSystem = contentStrategistSystem + `

REVIEW SPECIALIZATION:
You are a senior content editor and fact-checker. Your role is to ensure:
- 100% factual accuracy based on company context
- Brand alignment and appropriate tone
- Professional quality and engagement
- No hallucinations or unsupported claims

REVIEW PROCESS:
1. Verify every claim against the company context
2. Check for exaggerations or unsupported statements
3. Ensure professional tone and business appropriateness
4. Confirm content structure and engagement potential
5. Validate hashtag relevance

If you find unsupported claims, either remove them or reframe them as general statements.`

// styleGuides maps each Style to the tone guidance interpolated into the
// draft prompt.
var styleGuides = map[Style]string{
	StyleProfessional:  "Tone: authoritative, credible, industry-focused. Language: business professional, clear, concise. Engagement: data-driven insights and industry trends.",
	StyleCasual:        "Tone: conversational, approachable, relatable. Language: professional but friendly. Engagement: personal experiences and practical tips.",
	StyleInspirational: "Tone: motivating, visionary, positive. Language: uplifting but grounded. Engagement: future-focused and mission-driven.",
	StyleTechnical:     "Tone: expert, precise, knowledgeable. Language: specific terminology with explanations. Engagement: deep insights and technical value.",
	StyleStorytelling:  "Tone: narrative, personal, engaging. Language: descriptive and anecdotal. Engagement: experiences with lessons learned.",
}

// lengthBands maps each Length to the word-count guidance for the draft.
var lengthBands = map[Length]string{
	LengthShort:  "Length: 80-150 words. Tight and punchy, a single key insight.",
	LengthMedium: "Length: 150-300 words. Optimal for LinkedIn engagement: hook, value, insight, engagement.",
	LengthLong:   "Length: 300-500 words. Room for supporting detail or a short narrative arc.",
}

func styleGuide(s Style) string {
	if g, ok := styleGuides[s]; ok {
		return g
	}
	return styleGuides[StyleProfessional]
}

func lengthBand(l Length) string {
	if b, ok := lengthBands[l]; ok {
		return b
	}
	return lengthBands[LengthMedium]
}

func researchUserPrompt(s State) string {
	return fmt.Sprintf(`COMPANY CONTEXT (Use only this information):
%s

CONTENT TOPIC:
%s

REQUESTED STYLE: %s

Please analyze this information and provide research notes that will help create authentic, brand-aligned LinkedIn content. Focus on:

1. Key facts and capabilities mentioned in the company context
2. Potential content angles that are supported by the provided information
3. Any limitations or gaps in the available information
4. Audience relevance based on the company description

Be factual and only work with what's provided.`, s.CompanyInfo, s.Topic, s.Style)
}

func draftUserPrompt(s State) string {
	notes := s.ResearchNotes
	if notes == "" {
		notes = "No specific research notes available."
	}
	audience := s.TargetAudience
	if audience == "" {
		audience = "LinkedIn professionals"
	}
	return fmt.Sprintf(`COMPANY CONTEXT (Base all content on this information only):
%s

CONTENT TOPIC:
%s

RESEARCH NOTES:
%s

CONTENT STYLE: %s
STYLE GUIDELINES: %s
%s

TARGET AUDIENCE: %s

Create LinkedIn content that is 100%% accurate to the company context, engaging, professional, and free from unsupported claims. End with a question to encourage comments and include 3-5 relevant hashtags at the end.

If the company context doesn't provide enough information for quality content, focus on general industry insights while being transparent about limitations.`,
		s.CompanyInfo, s.Topic, notes, s.Style, styleGuide(s.Style), lengthBand(s.ContentLength), audience)
}

func imagePromptUserPrompt(s State) string {
	content := s.DraftContent
	if content == "" {
		content = "No content available"
	}
	return fmt.Sprintf(`CONTENT TOPIC: %s

COMPANY CONTEXT: %s

CONTENT STYLE: %s

CONTENT TO ILLUSTRATE:
%s

Create a professional image generation prompt that visually represents this business content. Focus on concrete, appropriate business imagery rather than abstract concepts.

Example format: "Professional photograph of [specific scene], business environment, modern office setting, professional lighting, LinkedIn appropriate"`,
		s.Topic, s.CompanyInfo, s.Style, content)
}

func reviewUserPrompt(s State) string {
	content := s.DraftContent
	if content == "" {
		content = "No content available"
	}
	return fmt.Sprintf(`ORIGINAL CONTENT TO REVIEW:
%s

COMPANY CONTEXT (Fact-check against this):
%s

TOPIC: %s
STYLE: %s
HASHTAGS: %s

Please review this content and:

1. FACT CHECK: Identify any claims not supported by the company context
2. IMPROVE: Suggest specific edits to ensure accuracy and quality
3. REFRAME: Convert any unsupported claims into general, truthful statements
4. FINALIZE: Provide the corrected, professional version

Return only the improved content that is 100%% accurate and brand-aligned.`,
		content, s.CompanyInfo, s.Topic, s.Style, strings.Join(s.Hashtags, ", "))
}
