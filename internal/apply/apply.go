// Package apply implements the dispatch pipeline: it renders a fixed
// application email per casting and sends it through the mail collaborator,
// recording a per-casting outcome with a pacing delay between sends.
package apply

import (
	"context"
	"fmt"
	"log"
	"strings"
	"text/template"
	"time"

	"github.com/jonathan/casting-agent/internal/mail"
	"github.com/jonathan/casting-agent/internal/types"
)

// DefaultSendDelay paces consecutive sends, independent of outcome.
const DefaultSendDelay = time.Second

// DefaultLimit caps how many castings one dispatch request applies to when
// the caller does not say.
const DefaultLimit = 10

// Report aggregates one dispatch run. Results keep the input casting order.
type Report struct {
	Results []types.ApplicationResult
	Applied int
	Failed  int
}

// Dispatcher sends application emails strictly sequentially.
type Dispatcher struct {
	Sender mail.Sender
	Delay  time.Duration
}

// NewDispatcher builds a Dispatcher with the default send delay.
func NewDispatcher(sender mail.Sender) *Dispatcher {
	return &Dispatcher{Sender: sender, Delay: DefaultSendDelay}
}

// Run applies to the first min(limit, len(castings)) castings in order. The
// profile is validated before any send; a validation failure produces zero
// results. A delivery failure is recorded and never stops later sends.
func (d *Dispatcher) Run(ctx context.Context, castings []types.Casting, profile types.Profile, limit int) (*Report, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > len(castings) {
		limit = len(castings)
	}

	report := &Report{Results: make([]types.ApplicationResult, 0, limit)}
	for i, casting := range castings[:limit] {
		msg := d.message(casting, profile)

		sent := true
		if err := d.Sender.Send(ctx, msg); err != nil {
			log.Printf("[APPLY] send to %s for casting %s failed: %v", casting.Email, casting.ID, err)
			sent = false
		}

		report.Results = append(report.Results, types.ApplicationResult{
			CastingID:    casting.ID,
			CastingTitle: casting.Title,
			CastingURL:   casting.URL,
			Success:      sent,
		})
		if sent {
			report.Applied++
		} else {
			report.Failed++
		}

		if i < limit-1 {
			d.pause(ctx)
		}
	}
	return report, nil
}

// message renders the fixed application email for one casting.
func (d *Dispatcher) message(casting types.Casting, profile types.Profile) mail.Message {
	text := renderBody(casting, profile)
	return mail.Message{
		To:      casting.Email,
		From:    profile.Email,
		ReplyTo: profile.Email,
		Subject: fmt.Sprintf("Casting Application: %s - %s", casting.Title, profile.Name),
		Text:    text,
		HTML:    strings.ReplaceAll(text, "\n", "<br>"),
	}
}

func (d *Dispatcher) pause(ctx context.Context) {
	delay := d.Delay
	if delay <= 0 {
		delay = DefaultSendDelay
	}
	select {
	case <-time.After(delay):
	case <-ctx.Done():
	}
}

// bodyData feeds the application template with absent optional fields already
// substituted.
type bodyData struct {
	Title     string
	Profile   types.Profile
	Base      string
	Instagram string
}

var bodyTemplate = template.Must(template.New("application").Parse(strings.TrimSpace(`
Dear Casting Director,

I am writing to express my interest in the casting opportunity: "{{.Title}}".

CONTACT INFORMATION:
Name: {{.Profile.Name}}
Email: {{.Profile.Email}}
Phone: {{.Profile.Phone}}
Base Location: {{.Base}}
Instagram: {{.Instagram}}

MEASUREMENTS:
Height: {{.Profile.Height}}
Weight: {{.Profile.Weight}}
Bust/Chest: {{.Profile.Bust}}
Waist: {{.Profile.Waist}}
Inseam: {{.Profile.Inseam}}
Neck: {{.Profile.Neck}}
Sleeve: {{.Profile.Sleeve}}
Shoe Size: {{.Profile.ShoeSize}}

APPEARANCE:
Skin Color: {{.Profile.SkinColor}}
Hair Color: {{.Profile.HairColor}}
Eye Color: {{.Profile.EyeColor}}

I am professional, reliable, and available for work. Please contact me at {{.Profile.Phone}} or {{.Profile.Email}}.

Best regards,
{{.Profile.Name}}
`)))

func renderBody(casting types.Casting, profile types.Profile) string {
	data := bodyData{
		Title:     casting.Title,
		Profile:   profile,
		Base:      profile.Base,
		Instagram: profile.Instagram,
	}
	if data.Base == "" {
		data.Base = "NYC"
	}
	if data.Instagram == "" {
		data.Instagram = "N/A"
	}

	var sb strings.Builder
	// The template executes over plain strings only; it cannot fail at runtime.
	_ = bodyTemplate.Execute(&sb, data)
	return sb.String()
}
