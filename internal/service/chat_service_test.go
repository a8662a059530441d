// FILE: internal/service/chat_service_test.go
package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchedulingLinkPattern(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{
			name:  "calendly link",
			reply: "Sure, grab a slot here: https://calendly.com/acme/intro-call and we'll talk.",
			want:  "https://calendly.com/acme/intro-call",
		},
		{
			name:  "cal.com link",
			reply: "Book at https://cal.com/acme/30min",
			want:  "https://cal.com/acme/30min",
		},
		{
			name:  "savvycal link",
			reply: "Here you go https://savvycal.com/acme/chat",
			want:  "https://savvycal.com/acme/chat",
		},
		{
			name:  "tidycal link",
			reply: "https://tidycal.com/acme/discovery",
			want:  "https://tidycal.com/acme/discovery",
		},
		{
			name:  "link wrapped in markdown parens",
			reply: "Pick a time [here](https://calendly.com/acme/intro) today.",
			want:  "https://calendly.com/acme/intro",
		},
		{
			name:  "non-booking url is ignored",
			reply: "Read more at https://example.com/pricing",
			want:  "",
		},
		{
			name:  "no url at all",
			reply: "Happy to help! What's your main bottleneck right now?",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schedulingLinkPattern.FindString(tt.reply))
		})
	}
}

func TestDiagnosticTriggers(t *testing.T) {
	matches := func(message string) bool {
		lowered := strings.ToLower(message)
		for _, trigger := range diagnosticTriggers {
			if strings.Contains(lowered, trigger) {
				return true
			}
		}
		return false
	}

	assert.True(t, matches("I just finished the diagnostic, what now?"))
	assert.True(t, matches("We COMPLETED THE AUDIT yesterday"))
	assert.True(t, matches("ok, done with the assessment"))
	assert.False(t, matches("I want to start the diagnostic"))
	assert.False(t, matches("what does the audit cover?"))
}
