package status

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	sections := []string{renderHeader(data)}

	if data.HasAnyConfig {
		sections = append(sections, renderAuthInfo(data))
	}
	sections = append(sections,
		renderConfigHierarchy(data),
		renderPaths("📁 User paths (\"...\" only):", data.UserPaths),
		renderSystemPaths(data),
	)
	if len(data.ShellPaths) > 0 {
		sections = append(sections, renderShellPaths(data))
	}
	sections = append(sections, renderFilters(data))
	if len(data.Problems) > 0 {
		sections = append(sections, renderProblems(data))
	}

	return strings.Join(sections, "\n\n")
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📂 Current directory: ") + valueStyle.Render(data.CurrentDir) + "\n")
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version) + "\n")
	b.WriteString(titleStyle.Render("💻 Platform: ") + valueStyle.Render(data.Platform) + "\n")
	b.WriteString(titleStyle.Render("🔑 Auth path: ") + subtleStyle.Render(data.AuthPath))
	return b.String()
}

func renderAuthInfo(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🔒 Authorization:") + "\n")

	if data.Authorized {
		b.WriteString("   " + successStyle.Render("✓ Shell paths authorized"))
	} else {
		b.WriteString("   " + errorStyle.Render("✗ Shell paths not authorized") + "\n")
		b.WriteString("   " + warningStyle.Render(fmt.Sprintf("Run 'hdrcomp allow %s' to authorize", data.CurrentDir)))
	}

	return b.String()
}

func renderConfigHierarchy(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📝 Configuration hierarchy:") + "\n")

	hasGlobal := data.GlobalConfig != nil && data.GlobalConfig.Exists
	if len(data.LocalConfigs) == 0 && !hasGlobal {
		b.WriteString("   " + subtleStyle.Render("No configuration files found, using built-in defaults"))
		return b.String()
	}

	idx := 1
	if hasGlobal {
		status := successStyle.Render("✓")
		note := ""
		if !data.GlobalConfig.Loaded {
			status = errorStyle.Render("✗")
			note = subtleStyle.Render(" (ignored)")
		}
		b.WriteString(fmt.Sprintf("   %d. %s %s%s\n",
			idx,
			subtleStyle.Render(data.GlobalConfig.Path+" (global)"),
			status,
			note))
		idx++
	}

	for _, cfg := range data.LocalConfigs {
		status := successStyle.Render("✓")
		statusText := ""
		switch {
		case !cfg.Loaded:
			status = errorStyle.Render("✗")
			statusText = subtleStyle.Render(" (ignored)")
		case cfg.PendingCommands > 0:
			status = warningStyle.Render("!")
			statusText = subtleStyle.Render(fmt.Sprintf(" (%d shell paths not authorized)", cfg.PendingCommands))
		case cfg.LocalOnly:
			statusText = subtleStyle.Render(" (local only)")
		}

		b.WriteString(fmt.Sprintf("   %d. %s %s%s\n",
			idx,
			valueStyle.Render(cfg.Path),
			status,
			statusText))
		idx++
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderPaths(title string, paths []PathInfo) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(title) + "\n")

	if len(paths) == 0 {
		b.WriteString("   " + subtleStyle.Render("none"))
		return b.String()
	}

	for i, p := range paths {
		mark := successStyle.Render("✓")
		if !p.Exists {
			mark = errorStyle.Render("✗")
		}
		b.WriteString(fmt.Sprintf("   %d. %s %s\n", i+1, valueStyle.Render(p.Path), mark))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderSystemPaths(data *Data) string {
	title := "📚 System paths (platform defaults):"
	if data.SystemFromConfig {
		title = "📚 System paths (configured):"
	}
	out := renderPaths(title, data.SystemPaths)

	if len(data.Layouts) > 0 {
		var b strings.Builder
		b.WriteString(out + "\n")
		b.WriteString("   " + keyStyle.Render("Layouts:") + "\n")
		for _, l := range data.Layouts {
			b.WriteString("      " + subtleStyle.Render(l) + "\n")
		}
		out = strings.TrimSuffix(b.String(), "\n")
	}
	return out
}

func renderShellPaths(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🐚 Shell paths:") + "\n")

	for _, sp := range data.ShellPaths {
		status := warningStyle.Render("⏳ not authorized")
		if sp.Trusted {
			status = successStyle.Render("✓ authorized")
		}
		b.WriteString(fmt.Sprintf("   $(%s) [%s]\n", subtleStyle.Render(truncateString(sp.Command, 50)), status))
		if sp.Config != "" {
			b.WriteString("      " + subtleStyle.Render("from "+sp.Config) + "\n")
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderFilters(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🔍 Header filters:") + "\n")

	modes := make([]string, 0, len(data.Filters))
	for mode := range data.Filters {
		modes = append(modes, mode)
	}
	sort.Strings(modes)

	for _, mode := range modes {
		b.WriteString(fmt.Sprintf("   %s %s\n", keyStyle.Render(mode+":"), valueStyle.Render(data.Filters[mode])))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderProblems(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("⚠️  Problems:") + "\n")
	for _, p := range data.Problems {
		b.WriteString("   " + warningStyle.Render(p) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func truncateString(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
