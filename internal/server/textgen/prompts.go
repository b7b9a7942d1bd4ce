package textgen

import "fmt"

// DefaultTone is used by change-tone requests that name no tone.
const DefaultTone = "profesional"

// Profile carries the user preferences embedded in every prompt.
type Profile struct {
	ContentType       string
	TargetAudience    string
	AdditionalContext string
}

// Prompts renders requests in a fixed output language.
type Prompts struct {
	Language string
}

func (p Prompts) profile(pr Profile) string {
	return fmt.Sprintf(
		"This is my content type: %s. This is my target audience: %s. "+
			"This is additional context I want included: %s. ",
		pr.ContentType, pr.TargetAudience, pr.AdditionalContext)
}

func (p Prompts) VideoScript(topic string, pr Profile) Request {
	return Request{Shape: ShapeText, Prompt: fmt.Sprintf(
		"Write a video script in %s about %s. ", p.Language, topic) +
		p.profile(pr) +
		"Reply only with the script, split into paragraphs with the matching timestamps in (HH:MM:SS) format, " +
		"no emojis and no unnecessary text."}
}

func (p Prompts) ContentIdea(topic string, pr Profile) Request {
	return Request{Shape: ShapeText, Prompt: fmt.Sprintf(
		"Generate 5 content ideas in %s about %s. ", p.Language, topic) +
		p.profile(pr) +
		"For each idea include a creative title and a short description of what it could cover. " +
		"Number the ideas from 1 to 5."}
}

func (p Prompts) Newsletter(topic string, pr Profile) Request {
	return Request{Shape: ShapeNewsletter, Prompt: fmt.Sprintf(
		"Write the content of a newsletter in %s about %s. ", p.Language, topic) +
		p.profile(pr) +
		"The newsletter must include a catchy subject, a title and introduction, 2-3 main content sections, " +
		"and a conclusion with a call to action."}
}

func (p Prompts) Thread(topic string, pr Profile) Request {
	return Request{Shape: ShapeStringList, Prompt: fmt.Sprintf(
		"Write an X (formerly Twitter) thread in %s about %s. ", p.Language, topic) +
		p.profile(pr) +
		"The thread must have between 5 and 8 tweets, returned as an array of strings. " +
		"Each tweet must be concise and no longer than 280 characters. " +
		"The first tweet must grab attention and the last one must include a call to action."}
}

func (p Prompts) ChangeTone(text, tone string) Request {
	if tone == "" {
		tone = DefaultTone
	}
	return Request{Shape: ShapeText, Prompt: fmt.Sprintf(
		"Rewrite the following text in %s with a %s tone: %q. ", p.Language, tone, text) +
		"Keep the intent and main message, but adapt language and style to the requested tone. " +
		"Reply only with the rewritten text, without extra explanations."}
}
