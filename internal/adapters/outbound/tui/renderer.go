package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/valorisation/coherence/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2).
			Width(68)

	statusColors = map[string]lipgloss.Color{
		domain.StatusPass: success,
		domain.StatusWarn: warning,
		domain.StatusFail: danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	stepStyle     = lipgloss.NewStyle().Foreground(accent)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport renders one validation report as a styled terminal string.
func RenderReport(r *domain.Report) string {
	var b strings.Builder

	label := r.Source
	if label == "" {
		label = "snapshot"
	}
	header := titleStyle.Render(label)
	if r.Siren != "" {
		header += "  " + dimStyle.Render("SIREN "+r.Siren)
	}
	status := lipgloss.NewStyle().
		Bold(true).
		Foreground(statusColor(r.Status)).
		Render(strings.ToUpper(r.Status))

	b.WriteString(boxStyle.Render(header + "\n" + status + "  " + summaryLine(r.Summary)))
	b.WriteString("\n")

	if len(r.Alerts) == 0 {
		b.WriteString("\n  " + passStyle.Render("No inconsistencies found.") + "\n")
		return b.String()
	}

	b.WriteString("\n")
	for _, a := range r.Alerts {
		renderAlert(&b, a)
	}

	if r.Blocking {
		b.WriteString("\n  " + hintStyle.Render("Errors must be corrected before the diagnostic can be submitted.") + "\n")
	}
	return b.String()
}

// RenderReports renders several reports separated by a rule.
func RenderReports(reports []*domain.Report) string {
	parts := make([]string, 0, len(reports))
	for _, r := range reports {
		parts = append(parts, RenderReport(r))
	}
	return strings.Join(parts, "\n  "+separatorLine+"\n\n")
}

func renderAlert(b *strings.Builder, a domain.Alert) {
	tag := severityTag(a.Severity)
	step := ""
	if a.Step > 0 {
		step = stepStyle.Render(fmt.Sprintf("step %d", a.Step)) + "  "
	}

	fmt.Fprintf(b, "    %s %s%s\n", tag, step, a.Message)
	if a.Detail != "" {
		fmt.Fprintf(b, "          %s\n", dimStyle.Render(a.Detail))
	}
	if len(a.Fields) > 0 {
		fmt.Fprintf(b, "          %s\n", faintStyle.Render(fieldList(a.Fields)))
	}
}

func summaryLine(s domain.AlertSummary) string {
	var parts []string
	if s.Errors > 0 {
		parts = append(parts, errorTagStyle.Render(fmt.Sprintf("%d errors", s.Errors)))
	}
	if s.Warnings > 0 {
		parts = append(parts, warnTagStyle.Render(fmt.Sprintf("%d warnings", s.Warnings)))
	}
	if s.Infos > 0 {
		parts = append(parts, infoTagStyle.Render(fmt.Sprintf("%d info", s.Infos)))
	}
	if len(parts) == 0 {
		return dimStyle.Render("no alerts")
	}
	return strings.Join(parts, "  ")
}

func severityTag(severity domain.Severity) string {
	switch severity {
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

// FieldLabel turns a snapshot key into words: "tresorerieActuelle" becomes
// "tresorerie actuelle", "pappersCA" becomes "pappers CA".
func FieldLabel(key string) string {
	words := camelcase.Split(key)
	for i, w := range words {
		if strings.ToUpper(w) != w {
			words[i] = strings.ToLower(w)
		}
	}
	return strings.Join(words, " ")
}

func fieldList(fields []string) string {
	labels := make([]string, 0, len(fields))
	for _, f := range fields {
		labels = append(labels, FieldLabel(f))
	}
	return strings.Join(labels, " vs ")
}

// RenderRules lists the rule catalog.
func RenderRules(rules []domain.Rule) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Coherence rules") + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	for i, r := range rules {
		fmt.Fprintf(&b, "  %s %s %s  %s\n",
			dimStyle.Render(fmt.Sprintf("%2d", i+1)),
			severityTag(r.Severity),
			titleStyle.Render(padRight(string(r.ID), 30)),
			stepStyle.Render(fmt.Sprintf("step %d", r.Step)),
		)
		fmt.Fprintf(&b, "           %s\n", dimStyle.Render(r.Description))
		fmt.Fprintf(&b, "           %s\n", faintStyle.Render(fieldList(r.Fields)))
	}
	return b.String()
}

// RenderHistory formats recorded validation runs for terminal output.
func RenderHistory(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No validation history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Validation History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		siren := e.Siren
		if siren == "" {
			siren = "·········"
		}
		day := e.Timestamp
		if len(day) > 10 {
			day = day[:10]
		}

		statusStyled := lipgloss.NewStyle().
			Foreground(statusColor(e.Status)).
			Render(padRight(e.Status, 4))

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(day),
			faintStyle.Render(siren),
			statusStyled,
			summaryLine(e.Summary),
		)
		if e.Source != "" {
			line += "  " + dimStyle.Render(e.Source)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func statusColor(status string) lipgloss.Color {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return fg
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
