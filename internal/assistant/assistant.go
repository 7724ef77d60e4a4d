// Package assistant is the scripted dashboard companion. It matches a
// message against keyword rules to pick an intent, then answers from canned
// templates. No model, no external calls; the script lives in a YAML file.
package assistant

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const memoryDepth = 5

// Intent is one keyword rule block with its reply templates. Rules are
// evaluated in file order, so earlier intents win ties.
type Intent struct {
	Name      string   `yaml:"name"`
	Keywords  []string `yaml:"keywords"`
	Templates []string `yaml:"templates"`
}

// Script is the full assistant definition loaded from assistant.yaml.
type Script struct {
	Intents []Intent `yaml:"intents"`
	General []string `yaml:"general"`
	Closers []string `yaml:"closers"`
}

// LoadScript reads and parses the assistant.yaml file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read assistant script: %w", err)
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assistant YAML: %w", err)
	}
	return &script, nil
}

// exchange is one remembered message/reply pair.
type exchange struct {
	message string
	reply   string
}

// Assistant answers messages for one session. Replies are deterministic:
// template choice cycles with the session's message count rather than
// drawing randomness, which keeps conversations reproducible.
type Assistant struct {
	script   *Script
	matchers map[string][]*regexp.Regexp

	count   int
	history []exchange
}

// New compiles the script's keyword rules into word-boundary matchers, so
// "hi" matches "hi there" but not "this".
func New(script *Script) (*Assistant, error) {
	matchers := make(map[string][]*regexp.Regexp, len(script.Intents))
	for _, intent := range script.Intents {
		for _, kw := range intent.Keywords {
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(kw)) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("bad keyword %q for intent %s: %w", kw, intent.Name, err)
			}
			matchers[intent.Name] = append(matchers[intent.Name], re)
		}
	}
	return &Assistant{script: script, matchers: matchers}, nil
}

// DetectIntent returns the first intent whose keywords match, or "general".
func (a *Assistant) DetectIntent(message string) string {
	text := strings.ToLower(message)
	for _, intent := range a.script.Intents {
		for _, re := range a.matchers[intent.Name] {
			if re.MatchString(text) {
				return intent.Name
			}
		}
	}
	return "general"
}

// Reply answers a message: detect the intent, pick a template, append a
// closer, remember the exchange.
func (a *Assistant) Reply(name, message string) (intent, reply string) {
	intent = a.DetectIntent(message)

	templates := a.script.General
	for _, in := range a.script.Intents {
		if in.Name == intent && len(in.Templates) > 0 {
			templates = in.Templates
			break
		}
	}
	if len(templates) == 0 {
		templates = []string{"I'm here with you."}
	}

	reply = templates[a.count%len(templates)]
	reply = strings.ReplaceAll(reply, "{name}", name)
	if len(a.script.Closers) > 0 {
		reply += " " + a.script.Closers[a.count%len(a.script.Closers)]
	}

	a.count++
	a.history = append(a.history, exchange{message: message, reply: reply})
	if len(a.history) > memoryDepth {
		a.history = a.history[len(a.history)-memoryDepth:]
	}
	return intent, reply
}

// History returns the remembered exchanges, oldest first, as display pairs.
func (a *Assistant) History() [][2]string {
	out := make([][2]string, len(a.history))
	for i, ex := range a.history {
		out[i] = [2]string{ex.message, ex.reply}
	}
	return out
}
