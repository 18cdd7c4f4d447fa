package ux

import (
	"errors"
	"fmt"

	"github.com/jorge-barreto/cmslaunch/internal/config"
	"github.com/jorge-barreto/cmslaunch/internal/project"
)

// RenderStatus prints the project inspection report.
func RenderStatus(st project.Status) {
	fmt.Fprintf(Out, "%sProject:%s  %s\n", Bold, Reset, st.Root)
	if st.InContainer {
		fmt.Fprintf(Out, "%sContext:%s  %sinside DDEV container%s\n", Bold, Reset, Cyan, Reset)
	}

	fmt.Fprintf(Out, "\n%sChecks:%s\n", Bold, Reset)
	check("marker file", st.HasMarker, "")

	if st.ToolErr != nil {
		check("ddev", false, st.ToolErr.Error())
	} else {
		check("ddev", true, st.ToolPath)
	}

	switch {
	case st.Configured:
		detail := ""
		if st.Tool != nil && st.Tool.Name != "" {
			detail = fmt.Sprintf("project %q", st.Tool.Name)
		}
		check("ddev config", true, detail)
	case errors.Is(st.ConfigErr, config.ErrNotConfigured):
		check("ddev config", false, "not configured")
	default:
		check("ddev config", false, st.ConfigErr.Error())
	}

	check(fmt.Sprintf("web root (%s)", st.WebRoot), st.Scaffolded, "")

	fmt.Fprintln(Out)
	switch {
	case !st.HasMarker:
		fmt.Fprintf(Out, "%sNot a Drupal CMS project.%s\n\n", Red, Reset)
	case st.Configured && st.Scaffolded:
		fmt.Fprintf(Out, "%sReady:%s launch will start the existing project\n\n", Green, Reset)
	default:
		fmt.Fprintf(Out, "%sPending:%s launch will set up the project first\n\n", Yellow, Reset)
	}
}

func check(label string, ok bool, detail string) {
	mark := fmt.Sprintf("%s✗%s", Red, Reset)
	if ok {
		mark = fmt.Sprintf("%s✓%s", Green, Reset)
	}
	if detail != "" {
		fmt.Fprintf(Out, "  %s %-20s %s%s%s\n", mark, label, Dim, detail, Reset)
		return
	}
	fmt.Fprintf(Out, "  %s %s\n", mark, label)
}
