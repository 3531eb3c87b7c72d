package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultReferenceURL is used when a reply has no more specific link.
	DefaultReferenceURL   = "https://developer.mozilla.org/en-US/docs/Web/JavaScript"
	DefaultReferenceTitle = "JavaScript Documentation Hub"
)

// GreetingText opens every new session.
const GreetingText = "Systems initialized. Good day, I'm W.A.S.I. - your JavaScript & React Virtual Intelligence System. " +
	"My neural networks are fully operational and optimized for web development assistance. " +
	"I now have enhanced learning capabilities - you can contribute new knowledge that I'll remember permanently! " +
	"How may I serve you today?"

// ErrorText is shown when a reply could not be produced.
const ErrorText = "CRITICAL ERROR DETECTED:\n\nI'm experiencing a temporary neural network disruption. " +
	"Running diagnostic protocols... Please standby while I recalibrate my cognitive systems."

// LearningActivity is shown while a contribution is being integrated.
const LearningActivity = "Integrating new knowledge into neural matrix..."

const confirmationPersonality = "Human collaboration in knowledge expansion is truly remarkable - " +
	"together we create something greater than the sum of our parts."

// ThinkingLines are shown while a query is processed.
var ThinkingLines = []string{
	"Accessing quantum knowledge matrices...",
	"Scanning multi-dimensional code repositories...",
	"Processing through neural pathway networks...",
	"Analyzing query through advanced algorithms...",
	"Consulting integrated programming databases...",
	"Running diagnostic through cognitive processors...",
	"Cross-referencing with distributed memory cores...",
	"Accessing user-contributed knowledge vault...",
	"Parsing community-enhanced data structures...",
}

// Fallback builds the reply for a query nothing matched.
// query is embedded as typed by the user.
func Fallback(query string, userEntries int) Entry {
	return Entry{
		Text: fmt.Sprintf("QUERY ANALYSIS COMPLETE:\n\n"+
			"I've performed a comprehensive scan of my knowledge matrices, but couldn't locate specific protocols for \"%s\". "+
			"My databases are optimized for:\n\n"+
			"• JavaScript Core: Arrays, Functions, Promises, Objects\n"+
			"• React Framework: Components, Hooks, State Management\n"+
			"• Advanced Concepts: Event Handling, Async Operations\n"+
			"• User-Contributed Knowledge: %d entries\n\n"+
			"RECOMMENDATION: Please refine your query parameters or contribute new knowledge using the ENHANCE KNOWLEDGE protocol. "+
			"I'm continuously expanding my knowledge base to serve you more effectively.", query, userEntries),
		URL:         DefaultReferenceURL,
		Title:       DefaultReferenceTitle,
		Personality: "Even my advanced neural networks have boundaries, but I'm designed for continuous learning and adaptation through human collaboration.",
	}
}

// Contribution is the data of a knowledge-submission form.
type Contribution struct {
	Topic       string `json:"topic" yaml:"topic"`
	Description string `json:"description" yaml:"description"`
	Code        string `json:"code,omitempty" yaml:"code,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Personality string `json:"personality,omitempty" yaml:"personality,omitempty"`
}

// Validate checks the required fields.
func (c Contribution) Validate() error {
	if strings.TrimSpace(c.Topic) == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidContribution)
	}
	if strings.TrimSpace(c.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidContribution)
	}
	return nil
}

// Key returns the normalized store key for the contribution.
func (c Contribution) Key() string {
	return NormalizeKey(c.Topic)
}

// Entry converts the contribution into a knowledge entry.
// The code snippet, when present, is appended as a fenced block.
func (c Contribution) Entry() Entry {
	topic := strings.TrimSpace(c.Topic)

	var text strings.Builder
	text.WriteString("USER-CONTRIBUTED KNOWLEDGE PROTOCOL:\n\n")
	text.WriteString(c.Description)
	if strings.TrimSpace(c.Code) != "" {
		text.WriteString("\n\nCode Implementation:\n```\n")
		text.WriteString(c.Code)
		text.WriteString("\n```")
	}

	e := Entry{
		Text:        text.String(),
		URL:         DefaultReferenceURL,
		Title:       DefaultReferenceTitle,
		Personality: c.Personality,
	}
	if url := strings.TrimSpace(c.URL); url != "" {
		e.URL = url
		e.Title = "User Resource: " + topic
	}
	if strings.TrimSpace(e.Personality) == "" {
		e.Personality = "Fascinating knowledge contributed by human intelligence - expanding my understanding of " + topic + "."
	}
	return e
}

func confirmationText(topic string, vaultSize int, at time.Time) string {
	return fmt.Sprintf("KNOWLEDGE INTEGRATION SUCCESSFUL:\n\n"+
		"I have successfully integrated your contribution about \"%s\" into my permanent knowledge matrix. "+
		"This information is now part of my core intelligence and will be accessible for all future queries.\n\n"+
		"KNOWLEDGE VAULT STATUS: %d entries\n"+
		"LAST UPDATE: %s\n\n"+
		"Thank you for enhancing my capabilities. Your contribution makes me more intelligent and valuable to all users.",
		strings.TrimSpace(topic), vaultSize, at.Format(time.DateTime))
}
