package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/wellwise/core"
	"github.com/poiesic/wellwise/session"
)

const (
	// DefaultTopK caps the number of diagnoses in a reply.
	DefaultTopK = 5
	// DefaultMaxQuestions caps the follow-up questions asked per symptom.
	DefaultMaxQuestions = 3
	// DefaultFAQThreshold is the score an FAQ match must exceed to be shown.
	DefaultFAQThreshold float32 = 0.5
)

// Controller drives the multi-turn symptom dialogue. It holds no
// conversation state of its own: each call to Handle takes the current
// session.State and returns the next one, so one Controller can serve any
// number of conversations concurrently.
type Controller struct {
	extractor    SymptomExtractor
	oracles      Oracles
	topK         int
	maxQuestions int
	faqThreshold float32
	logger       *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller) error

// WithTopK sets the maximum number of diagnoses per reply.
// Default is DefaultTopK.
func WithTopK(k int) Option {
	return func(c *Controller) error {
		if k <= 0 {
			return fmt.Errorf("%w: top-k must be positive, got %d", ErrInvalidOption, k)
		}
		c.topK = k
		return nil
	}
}

// WithMaxQuestions sets the maximum number of follow-up questions per symptom.
// Default is DefaultMaxQuestions.
func WithMaxQuestions(n int) Option {
	return func(c *Controller) error {
		if n <= 0 {
			return fmt.Errorf("%w: max questions must be positive, got %d", ErrInvalidOption, n)
		}
		c.maxQuestions = n
		return nil
	}
}

// WithFAQThreshold sets the score an FAQ match must strictly exceed.
// Default is DefaultFAQThreshold.
func WithFAQThreshold(threshold float32) Option {
	return func(c *Controller) error {
		if threshold < 0 || threshold > 1 {
			return fmt.Errorf("%w: faq threshold must be in [0, 1], got %v", ErrInvalidOption, threshold)
		}
		c.faqThreshold = threshold
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger.With("component", "dialogue")
		return nil
	}
}

// NewController creates a controller.
func NewController(extractor SymptomExtractor, oracles Oracles, opts ...Option) (*Controller, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	switch {
	case oracles.Diagnosis == nil:
		return nil, fmt.Errorf("%w: diagnosis", ErrOracleRequired)
	case oracles.Severity == nil:
		return nil, fmt.Errorf("%w: severity", ErrOracleRequired)
	case oracles.Followup == nil:
		return nil, fmt.Errorf("%w: follow-up", ErrOracleRequired)
	case oracles.FAQ == nil:
		return nil, fmt.Errorf("%w: faq", ErrOracleRequired)
	}

	c := &Controller{
		extractor:    extractor,
		oracles:      oracles,
		topK:         DefaultTopK,
		maxQuestions: DefaultMaxQuestions,
		faqThreshold: DefaultFAQThreshold,
		logger:       slog.Default().With("component", "dialogue"),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// turn carries the mutable pieces of one Handle call.
type turn struct {
	ctx   context.Context
	state *session.State
	reply *Reply
}

func (t *turn) enter(p session.Phase) {
	t.state.Phase = p
	t.reply.Trace = append(t.reply.Trace, p)
}

// Handle processes one line of user input.
//
// The input state is never modified; the returned state replaces it. Every
// input, including empty or nonsensical text, produces a reply. Oracle
// failures are logged and turned into messages. The only error is the
// context's, when ctx is already done on entry.
func (c *Controller) Handle(ctx context.Context, st session.State, input string) (session.State, *Reply, error) {
	if err := ctx.Err(); err != nil {
		return st, nil, err
	}

	next := st.Clone()
	t := &turn{ctx: ctx, state: &next, reply: &Reply{}}
	cmd := strings.ToLower(strings.TrimSpace(input))

	switch {
	case next.Phase == session.Terminated:
		t.enter(session.Terminated)
		t.reply.say(MsgTerminated)
	case isExit(cmd):
		next.Pending, next.Held = nil, ""
		t.enter(session.Terminated)
		t.reply.say(MsgGoodbye)
	case isReset(cmd):
		next = session.NewState()
		t.enter(session.AwaitingInput)
		t.reply.say(MsgReset)
	case next.Phase == session.ClarifyingIntent:
		c.clarify(t, input)
	case next.Phase == session.AwaitingFollowupAnswer:
		c.followupAnswer(t, input)
	default:
		next.Phase = session.AwaitingInput
		c.fresh(t, input)
	}

	t.reply.Phase = next.Phase
	t.reply.Terminated = next.Phase == session.Terminated
	t.reply.Symptoms = next.Tracker.Symptoms()
	if t.reply.NewSymptoms == nil {
		t.reply.NewSymptoms = []string{}
	}

	c.logger.Debug("turn handled",
		"trace", t.reply.Trace,
		"symptoms", t.reply.Symptoms,
		"pending", next.Pending)

	return next, t.reply, nil
}

// fresh handles input received in AwaitingInput.
func (c *Controller) fresh(t *turn, input string) {
	if extracted := c.extractor.Extract(input); len(extracted) > 0 {
		c.diagnoseCycle(t, extracted)
		return
	}

	if IsQuestion(input) {
		c.answerFAQ(t, input)
		t.enter(session.AwaitingInput)
		t.reply.Prompt = MsgAnythingElse
		return
	}

	t.state.Held = input
	t.enter(session.ClarifyingIntent)
	t.reply.say(MsgClarify)
	t.reply.Choices = slices.Clone(ClarifyChoices)
}

// followupAnswer handles the answer to the last follow-up questions.
// Answers naming symptoms restart the diagnosis cycle. Anything else is
// answered as a question and the walk over unasked symptoms continues.
func (c *Controller) followupAnswer(t *turn, input string) {
	t.state.Pending = nil

	if extracted := c.extractor.Extract(input); len(extracted) > 0 {
		c.diagnoseCycle(t, extracted)
		return
	}

	if strings.TrimSpace(input) != "" {
		c.answerFAQ(t, input)
	}
	c.askFollowups(t)
}

// clarify handles the user's pick after unclear input.
func (c *Controller) clarify(t *turn, input string) {
	held := t.state.Held
	t.state.Held = ""

	switch parseChoice(input) {
	case choiceAdd:
		t.enter(session.AwaitingInput)
		t.reply.Prompt = MsgAddSymptom
	case choiceAsk:
		c.answerFAQ(t, held)
		t.enter(session.AwaitingInput)
		t.reply.Prompt = MsgAnythingElse
	case choiceContinue:
		c.diagnose(t)
		c.askFollowups(t)
	default:
		t.state.Phase = session.AwaitingInput
		c.fresh(t, input)
	}
}

// diagnoseCycle merges extracted symptoms, then diagnoses and follows up.
func (c *Controller) diagnoseCycle(t *turn, extracted []string) {
	t.reply.NewSymptoms = t.state.Tracker.Merge(extracted)
	c.diagnose(t)
	c.askFollowups(t)
}

// diagnose queries the diagnosis and severity oracles for every tracked
// symptom. It never fails: problems become messages.
func (c *Controller) diagnose(t *turn) {
	t.enter(session.Diagnosing)
	t.reply.Diagnosed = true

	symptoms := t.state.Tracker.Symptoms()
	if len(symptoms) == 0 {
		t.reply.say(MsgNoPredictions)
		return
	}

	results, err := c.oracles.Diagnosis.Predict(t.ctx, strings.Join(symptoms, ", "), c.topK)
	if err != nil {
		c.logger.Warn("diagnosis failed", "symptoms", symptoms, "err", err)
		t.reply.say(MsgDiagnosisUnavailable)
	} else {
		t.reply.Diagnoses = core.RankDiagnoses(results, c.topK)
		if len(t.reply.Diagnoses) == 0 {
			t.reply.say(MsgNoPredictions)
		}
	}

	t.reply.Severities = c.oracles.Severity.Classify(symptoms)
	t.reply.Disclaimer = MsgDisclaimer
}

// askFollowups emits the follow-up questions of every unasked symptom, in
// order, and marks each one as asked. Symptoms without questions are marked
// and skipped. If anything was asked the session waits for the answer,
// otherwise it returns to AwaitingInput.
func (c *Controller) askFollowups(t *turn) {
	t.enter(session.AskingFollowup)

	t.state.Pending = nil
	for _, symptom := range t.state.Tracker.Unasked() {
		t.state.Tracker.MarkAsked(symptom)
		questions := c.oracles.Followup.QuestionsFor(symptom, c.maxQuestions)
		if len(questions) > c.maxQuestions {
			questions = questions[:c.maxQuestions]
		}
		if len(questions) == 0 {
			continue
		}
		t.reply.FollowUps = append(t.reply.FollowUps, FollowUp{Symptom: symptom, Questions: questions})
		t.state.Pending = append(t.state.Pending, symptom)
	}

	if len(t.reply.FollowUps) > 0 {
		t.enter(session.AwaitingFollowupAnswer)
		t.reply.Prompt = MsgAnswerFollowup
		return
	}
	t.enter(session.AwaitingInput)
	t.reply.Prompt = MsgAnythingElse
}

// answerFAQ answers query from the FAQ oracle, or says it is not sure.
func (c *Controller) answerFAQ(t *turn, query string) {
	t.enter(session.AnsweringFAQ)

	if strings.TrimSpace(query) == "" {
		t.reply.say(MsgNotSure)
		return
	}

	matches, err := c.oracles.FAQ.BestMatch(t.ctx, query, 1)
	if err != nil {
		c.logger.Warn("faq lookup failed", "err", err)
		t.reply.say(MsgNotSure)
		return
	}
	if len(matches) == 0 || !(matches[0].Score > c.faqThreshold) {
		t.reply.say(MsgNotSure)
		return
	}
	best := matches[0]
	t.reply.FAQ = &best
}
