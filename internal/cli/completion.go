package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes one flag for completion generation. Every shell
// script is generated from flagRegistry.
type FlagCompletion struct {
	Long       string   // without "--"
	Short      string   // without "-"
	Help       string
	Values     []string // static suggestions
	ValueName  string   // empty for boolean flags
	IsFile     bool
	IsDir      bool
	IsAnalysis bool // suggestions come from the analysis registry
	Section    string
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "General"},
	{Long: "version", Help: "Show version information", Section: "General"},

	{Long: "analysis", Help: "Analysis to run", IsAnalysis: true, ValueName: "analysis", Section: "Sweep"},
	{Long: "tv", Help: "Verification step time", ValueName: "time", Section: "Sweep"},
	{Long: "p", Help: "Acceptance probability of the speed analysis", Values: []string{"0.5", "0.6", "0.7", "0.8"}, ValueName: "probability", Section: "Sweep"},
	{Long: "ratio-min", Help: "Lower bound of the Ts/Tv grid", ValueName: "ratio", Section: "Sweep"},
	{Long: "ratio-max", Help: "Upper bound of the Ts/Tv grid", ValueName: "ratio", Section: "Sweep"},
	{Long: "points", Help: "Samples per grid axis", Values: []string{"25", "50", "100", "200"}, ValueName: "count", Section: "Sweep"},
	{Long: "p-min", Help: "Lower bound of the P grid", ValueName: "probability", Section: "Sweep"},
	{Long: "p-max", Help: "Upper bound of the P grid", ValueName: "probability", Section: "Sweep"},
	{Long: "n-min", Help: "Smallest N searched", ValueName: "n", Section: "Sweep"},
	{Long: "n-max", Help: "Largest N searched", Values: []string{"5", "10", "20"}, ValueName: "n", Section: "Sweep"},
	{Long: "speed-n-max", Help: "Largest N of the speed analysis", Values: []string{"10", "19", "30"}, ValueName: "n", Section: "Sweep"},
	{Long: "example-ratios", Help: "Ratios of the example table", ValueName: "list", Section: "Sweep"},
	{Long: "example-p", Help: "P values of the example table", ValueName: "list", Section: "Sweep"},
	{Long: "timeout", Help: "Maximum sweep duration", Values: []string{"10s", "30s", "1m", "5m"}, ValueName: "duration", Section: "Sweep"},

	{Long: "format", Help: "Chart output format", Values: []string{"html", "png", "both", "none"}, ValueName: "format", Section: "Output"},
	{Long: "out-dir", Help: "Chart directory", IsDir: true, ValueName: "dir", Section: "Output"},
	{Long: "output", Short: "o", Help: "Text report file", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "metrics-file", Help: "Prometheus textfile output", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "quiet", Short: "q", Help: "Print only the results", Section: "Output"},
	{Long: "verbose", Short: "v", Help: "Print every optimal point", Section: "Output"},
	{Long: "no-color", Help: "Disable colors", Section: "Output"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level", Section: "Output"},

	{Long: "tui", Help: "Launch the interactive explorer", Section: "Modes"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell", Section: "Modes"},
}

// GenerateCompletion writes the completion script for shell to out.
// analyses are the registry keys suggested for --analysis.
func GenerateCompletion(out io.Writer, shell string, analyses []string) error {
	choices := append(append([]string{}, analyses...), "all")
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(choices)
	case "zsh":
		script = zshCompletion(choices)
	case "fish":
		script = fishCompletion(choices)
	case "powershell", "ps":
		script = powerShellCompletion(choices)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// suggestions returns the static or dynamic values offered for f.
func suggestions(f FlagCompletion, analyses []string) []string {
	if f.IsAnalysis {
		return analyses
	}
	return f.Values
}

func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func bashCompletion(analyses []string) string {
	var opts []string
	var cases strings.Builder
	var pathFlags []string
	for _, f := range flagRegistry {
		names := flagNames(f)
		opts = append(opts, names...)
		if f.IsFile || f.IsDir {
			pathFlags = append(pathFlags, names...)
			continue
		}
		if vals := suggestions(f, analyses); len(vals) > 0 {
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				strings.Join(names, "|"), strings.Join(vals, " "))
		}
	}
	if len(pathFlags) > 0 {
		fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n",
			strings.Join(pathFlags, "|"))
	}

	return fmt.Sprintf(`# Bash completion script for specdec
# Add this to your ~/.bashrc or ~/.bash_completion

_specdec_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _specdec_completions specdec
`, strings.Join(opts, " "), cases.String())
}

func zshCompletion(analyses []string) string {
	var args []string
	for _, f := range flagRegistry {
		suffix := ""
		switch {
		case f.IsFile:
			suffix = ":" + f.ValueName + ":_files"
		case f.IsDir:
			suffix = ":" + f.ValueName + ":_files -/"
		case len(suggestions(f, analyses)) > 0:
			suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(suggestions(f, analyses), " "))
		case f.ValueName != "":
			suffix = ":" + f.ValueName + ":"
		}
		if f.Short != "" {
			args = append(args, fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, suffix))
		} else {
			args = append(args, fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, suffix))
		}
	}
	return fmt.Sprintf(`#compdef specdec

# Zsh completion script for specdec
# Place this file in your $fpath as _specdec

_arguments -s \
%s
`, strings.Join(args, " \\\n"))
}

func fishCompletion(analyses []string) string {
	lines := []string{
		"# Fish completion script for specdec",
		"# Add this to ~/.config/fish/completions/specdec.fish",
		"",
		"complete -c specdec -f",
	}
	section := ""
	for _, f := range flagRegistry {
		if f.Section != section {
			section = f.Section
			lines = append(lines, "", "# "+section)
		}
		parts := []string{"complete -c specdec"}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))
		switch {
		case f.IsFile || f.IsDir:
			parts = append(parts, "-rF")
		case len(suggestions(f, analyses)) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(suggestions(f, analyses), " ")))
		case f.ValueName != "":
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}

func powerShellCompletion(analyses []string) string {
	var options, cases []string
	for _, f := range flagRegistry {
		for _, name := range flagNames(f) {
			options = append(options, fmt.Sprintf("        @{Name = '%s'; Description = '%s' }", name, f.Help))
		}
		vals := suggestions(f, analyses)
		if len(vals) == 0 || f.IsFile || f.IsDir {
			continue
		}
		quoted := make([]string, len(vals))
		for i, v := range vals {
			quoted[i] = "'" + v + "'"
		}
		cases = append(cases, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quoted, ", ")))
	}

	return fmt.Sprintf(`# PowerShell completion script for specdec
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'specdec' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, strings.Join(options, "\n"), strings.Join(cases, "\n"))
}
