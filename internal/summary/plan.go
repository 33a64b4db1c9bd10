package summary

import (
	"fmt"
	"strings"

	"github.com/coddie-dev/create-coddie-app/internal/models"
)

// Plan describes what is about to be created, one bullet per choice
func Plan(sel models.Selection) string {
	lines := []string{
		fmt.Sprintf("Creating %s with:", sel.Path),
		"• Next.js with TypeScript & Tailwind CSS",
	}
	if sel.HasAuth() {
		lines = append(lines, fmt.Sprintf("• Auth: %s", sel.Auth))
	}
	if sel.UI {
		lines = append(lines, "• ShadCN UI")
	}
	if sel.Monitoring {
		lines = append(lines, "• Sentry monitoring")
	}
	if sel.Payments {
		lines = append(lines, "• Stripe payments")
	}
	lines = append(lines, fmt.Sprintf("• Editor: %s", sel.Editor))

	return strings.Join(lines, "\n")
}
