package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/poiesic/wellwise"
	"github.com/poiesic/wellwise/core"
	"github.com/poiesic/wellwise/dialogue"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// orange is the 256-color palette index used for High confidence.
const orange = 208

// Renderer prints dialogue replies to a terminal.
type Renderer struct {
	w       io.Writer
	speaker *color.Color
	heading *color.Color
	dim     *color.Color

	buckets  map[core.ConfidenceBucket]*color.Color
	severity map[core.SeverityLevel]*color.Color
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithColor forces colored output on or off. By default color follows
// the terminal detection of the color package.
func WithColor(enabled bool) RendererOption {
	return func(r *Renderer) {
		for _, c := range r.palette() {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, opts ...RendererOption) *Renderer {
	r := &Renderer{
		w:       w,
		speaker: color.New(color.FgCyan, color.Bold),
		heading: color.New(color.Bold),
		dim:     color.New(color.Faint),
		buckets: map[core.ConfidenceBucket]*color.Color{
			core.ConfidenceVeryHigh: color.New(color.FgRed, color.Bold),
			core.ConfidenceHigh:     color.New(38, 5, orange),
			core.ConfidenceModerate: color.New(color.FgYellow),
			core.ConfidenceLow:      color.New(color.FgGreen),
		},
		severity: map[core.SeverityLevel]*color.Color{
			core.SeveritySevere:   color.New(color.FgRed, color.Bold),
			core.SeverityModerate: color.New(color.FgYellow),
			core.SeverityMild:     color.New(color.FgGreen),
			core.SeverityUnknown:  color.New(color.Faint),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) palette() []*color.Color {
	out := []*color.Color{r.speaker, r.heading, r.dim}
	for _, c := range r.buckets {
		out = append(out, c)
	}
	for _, c := range r.severity {
		out = append(out, c)
	}
	return out
}

// Welcome prints the opening lines of a conversation.
func (r *Renderer) Welcome() {
	r.say(dialogue.MsgWelcome)
}

// Prompt prints the input prompt without a trailing newline.
func (r *Renderer) Prompt() {
	fmt.Fprint(r.w, "\n"+r.speaker.Sprint("You:")+" ")
}

func (r *Renderer) say(msg string) {
	fmt.Fprintf(r.w, "\n%s %s\n", r.speaker.Sprint("Bot:"), msg)
}

// Reply prints every part of a reply in display order.
func (r *Renderer) Reply(reply *dialogue.Reply) {
	if len(reply.NewSymptoms) > 0 {
		r.say("I noted: " + joinNames(reply.NewSymptoms))
	}
	for _, msg := range reply.Messages {
		r.say(msg)
	}

	if len(reply.Diagnoses) > 0 {
		fmt.Fprintf(r.w, "\n%s\n", r.heading.Sprint("Possible conditions:"))
		for _, d := range reply.Diagnoses {
			fmt.Fprintf(r.w, " - %s (matched '%s'), confidence: %d%% (%s)\n",
				d.Disease, displayName(d.MatchedSymptom), d.Confidence, r.bucket(d.Bucket))
		}
	}
	if len(reply.Severities) > 0 {
		fmt.Fprintf(r.w, "\n%s\n", r.heading.Sprint("Severity:"))
		for _, s := range reply.Severities {
			fmt.Fprintf(r.w, " - %s: %s -> %s\n", displayName(s.Symptom), r.level(s.Level), s.Alert)
		}
	}
	if reply.Disclaimer != "" {
		fmt.Fprintf(r.w, "\n%s\n", r.dim.Sprint(reply.Disclaimer))
	}

	if reply.FAQ != nil {
		fmt.Fprintf(r.w, "\n%s %s\n%s %s\n",
			r.heading.Sprint("Q:"), reply.FAQ.Question,
			r.heading.Sprint("A:"), reply.FAQ.Answer)
	}
	for _, f := range reply.FollowUps {
		fmt.Fprintf(r.w, "\n%s\n", r.heading.Sprintf("About your %s:", displayName(f.Symptom)))
		for _, q := range f.Questions {
			fmt.Fprintf(r.w, " - %s\n", q)
		}
	}
	if len(reply.Choices) > 0 {
		fmt.Fprintln(r.w)
		for _, c := range reply.Choices {
			fmt.Fprintf(r.w, "  %s\n", c)
		}
	}
	if reply.Prompt != "" {
		r.say(reply.Prompt)
	}
}

// Report prints an evaluation summary.
func (r *Renderer) Report(report *wellwise.Report) {
	fmt.Fprintf(r.w, "\n%s\n", r.heading.Sprint("---------- WellWise Evaluation Summary ----------"))
	for _, c := range report.Cases {
		mark := r.buckets[core.ConfidenceLow].Sprint("hit ")
		if !c.Hit {
			mark = r.buckets[core.ConfidenceVeryHigh].Sprint("miss")
		}
		fmt.Fprintf(r.w, " %s %-12s -> %s (%s)\n", mark, c.Symptom, strings.Join(c.Top, ", "), c.Latency.Round(time.Microsecond))
	}
	fmt.Fprintf(r.w, "Symptom-to-Disease Retrieval Top-3 Accuracy: %.2f%%\n", report.Top3Accuracy)
	fmt.Fprintf(r.w, "Average Retrieval Time per Query: %.2f ms\n", float64(report.MeanLatency.Microseconds())/1000)
	fmt.Fprintf(r.w, "Severity Mapping Success (static lookup): %.2f%%\n", report.SeverityMappingRate)
	fmt.Fprintf(r.w, "Follow-Up Question Symptom Coverage: %.2f%%\n", report.FollowupCoverage)
	fmt.Fprintln(r.w, "=================================================")
}

func (r *Renderer) bucket(b core.ConfidenceBucket) string {
	if c, ok := r.buckets[b]; ok {
		return c.Sprint(string(b))
	}
	return string(b)
}

func (r *Renderer) level(l core.SeverityLevel) string {
	name := displayName(string(l))
	if c, ok := r.severity[l]; ok {
		return c.Sprint(name)
	}
	return name
}

// displayName turns a canonical term into title-cased words.
func displayName(term string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(term, "_", " "))
}

func joinNames(terms []string) string {
	names := make([]string, len(terms))
	for i, t := range terms {
		names[i] = displayName(t)
	}
	return strings.Join(names, ", ")
}
