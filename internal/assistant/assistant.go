// ABOUTME: Keyword-matching nutrition assistant.
// ABOUTME: Answers from a fixed keyword table with typo tolerance and a general fallback.
package assistant

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Greeting is the assistant's opening message.
const Greeting = "Hello! I'm your AGE-WELL Diet assistant. I'm here to help you with nutrition questions, meal planning, and wellness guidance. How can I support your health journey today?"

// Fallback is the answer when no keyword matches.
const Fallback = "Thank you for your question! For personalized nutrition advice, I recommend consulting with your healthcare provider. In general, focus on a balanced diet rich in fruits, vegetables, lean proteins, and whole grains."

// QuickQuestions are suggested prompts.
var QuickQuestions = []string{
	"What foods are good for heart health?",
	"How much protein should I eat daily?",
	"Can you suggest anti-inflammatory foods?",
	"What vitamins are important for bone health?",
	"How can I manage portion sizes?",
	"What foods help with cognitive function?",
}

// Topic pairs a keyword with its canned answer.
type Topic struct {
	Keyword string
	Answer  string
}

// Topics is checked in order; the first keyword found wins.
var Topics = []Topic{
	{"heart", "Great question about heart health! Focus on omega-3 rich foods like salmon, walnuts, and flaxseeds. Include plenty of colorful vegetables, whole grains, and limit sodium intake. The Mediterranean diet pattern is excellent for cardiovascular health."},
	{"protein", "For adults over 50, aim for about 1.0-1.2 grams of protein per kilogram of body weight daily. Good sources include lean meats, fish, eggs, dairy, beans, and nuts. Spreading protein throughout the day helps with muscle maintenance."},
	{"anti-inflammatory", "Anti-inflammatory foods include fatty fish, berries, leafy greens, nuts, olive oil, and turmeric. These foods help reduce inflammation and may lower the risk of chronic diseases common with aging."},
	{"bone", "For bone health, focus on calcium-rich foods like dairy, leafy greens, and fortified foods. Vitamin D is crucial too - found in fatty fish and fortified foods. Magnesium and vitamin K also support bone strength."},
	{"portion", "Use the plate method: fill half your plate with vegetables, one quarter with lean protein, and one quarter with whole grains. Use smaller plates and bowls, eat slowly, and listen to your hunger cues."},
	{"cognitive", "Foods that support brain health include blueberries, fatty fish, nuts, dark chocolate, and leafy greens. The MIND diet, which combines Mediterranean and DASH eating patterns, is specifically designed for cognitive health."},
}

// fuzzyMinLen is the shortest keyword that tolerates a one-letter typo.
const fuzzyMinLen = 5

// Respond returns the answer for message.
func Respond(message string) string {
	if t, ok := Match(message); ok {
		return t.Answer
	}
	return Fallback
}

// Match finds the topic for message. Exact substring matches are tried in
// table order before any typo-tolerant match.
func Match(message string) (Topic, bool) {
	lower := strings.ToLower(message)
	for _, t := range Topics {
		if strings.Contains(lower, t.Keyword) {
			return t, true
		}
	}

	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '-'
	})
	for _, t := range Topics {
		if utf8.RuneCountInString(t.Keyword) < fuzzyMinLen {
			continue
		}
		for _, w := range words {
			if levenshtein.ComputeDistance(w, t.Keyword) <= 1 {
				return t, true
			}
		}
	}
	return Topic{}, false
}
