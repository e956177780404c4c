package dialogue

import (
	"strings"
	"unicode"
)

// Scripted replies.
const (
	MsgWelcome = "Welcome! Please describe your symptoms or ask any health-related question. " +
		"Type 'reset' to start over or 'exit' to quit."
	MsgNoPredictions        = "No predictions could be made from the symptoms provided."
	MsgDiagnosisUnavailable = "I couldn't look up possible conditions right now. Please try again later."
	MsgNotSure              = "I'm not sure about that. Could you please describe your symptoms or rephrase your question?"
	MsgClarify              = "I couldn't find any symptoms in that. What would you like to do?"
	MsgAddSymptom           = "Please describe the symptom you'd like to add."
	MsgAnythingElse         = "You can describe more symptoms, ask a question, or type 'exit' to quit."
	MsgAnswerFollowup       = "Please answer the questions above, or describe any other symptoms."
	MsgReset                = "Your symptom list has been cleared. Let's start over."
	MsgGoodbye              = "Goodbye! Take care of yourself."
	MsgTerminated           = "This conversation has ended. Please start a new session."
	MsgDisclaimer           = "Medical Disclaimer: This is an automated tool for informational purposes only. " +
		"It is not a substitute for professional medical advice, diagnosis, or treatment. " +
		"Always seek the advice of your physician or other qualified health provider."
)

// Clarification choices offered in ClarifyingIntent, in display order.
var ClarifyChoices = []string{
	"1. Add a symptom",
	"2. Ask a question",
	"3. Continue with my current symptoms",
}

type choice int

const (
	choiceNone choice = iota
	choiceAdd
	choiceAsk
	choiceContinue
)

func parseChoice(input string) choice {
	word := strings.TrimFunc(strings.ToLower(strings.TrimSpace(input)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	switch word {
	case "1", "add", "symptom":
		return choiceAdd
	case "2", "ask", "question":
		return choiceAsk
	case "3", "continue":
		return choiceContinue
	}
	return choiceNone
}

var questionWords = map[string]struct{}{
	"what": {}, "how": {}, "can": {}, "should": {}, "is": {},
	"do": {}, "does": {}, "will": {}, "could": {},
}

// IsQuestion reports whether text reads like a question: it contains a
// question mark or starts with a question word.
func IsQuestion(text string) bool {
	if strings.Contains(text, "?") {
		return true
	}
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return false
	}
	first := strings.TrimFunc(fields[0], func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	_, ok := questionWords[first]
	return ok
}

func isExit(cmd string) bool {
	return cmd == "exit" || cmd == "quit"
}

func isReset(cmd string) bool {
	return cmd == "reset"
}
