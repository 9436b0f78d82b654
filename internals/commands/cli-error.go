package commands

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
	"github.com/minepkg/openlauncher/internals/merrors"
)

// CliError is an error that might get displayed to the user
type CliError struct {
	Text        string
	Code        string
	Suggestions []string
	Help        string
}

func (e *CliError) Error() string {
	return e.Text
}

func (e *CliError) RichError() string {
	rendered := ErrorBox(e.Text, e.Help)
	if len(e.Suggestions) != 0 {
		suggestionText := "Suggestion:\n"
		if len(e.Suggestions) > 1 {
			suggestionText = "Suggestions:\n"
		}
		suggestionText = Emoji("📎 ") + suggestionText
		for _, s := range e.Suggestions {
			suggestionText += " ⦁ " + s + "\n"
		}
		rendered = lipgloss.JoinVertical(lipgloss.Left, rendered, styleHelpBox.Render(suggestionText))
	}
	return rendered
}

// FromError converts err into a CliError with help matching its kind
func FromError(err error) *CliError {
	var cliErr *CliError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	kind := merrors.KindOf(err)
	c := &CliError{Text: err.Error(), Code: kind.String()}
	switch kind {
	case merrors.KindConfiguration:
		c.Help = "The version is not set up correctly"
		c.Suggestions = []string{
			"Stage the version in <root>/versions/<version> before launching",
			"Check the version json for a mainClass and assets entry",
		}
	case merrors.KindResolution:
		c.Help = "Something required for the launch could not be found"
		c.Suggestions = []string{
			"Install a java runtime to <runtimeRoot>/adoptopenjre8/<release> or <runtimeRoot>/adoptopenjre16/<release>",
			"Or pass an executable with --java",
		}
	case merrors.KindSpawn:
		c.Help = "Minecraft could not be started"
		c.Suggestions = []string{"Check that the java executable exists and is executable"}
	case merrors.KindInstall:
		c.Help = "The mod could not be installed"
		c.Suggestions = []string{"Check the url and your network connection, then try again"}
	}
	return c
}
