package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/jbweber/hangar/api/v1alpha1"
	"github.com/jbweber/hangar/internal/status"
)

// TableFormatter formats resources as human-readable tables.
type TableFormatter struct {
	// NoHeaders omits the header row.
	NoHeaders bool
}

func (f *TableFormatter) write(header string, rows func(w *tabwriter.Writer)) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, header)
	}
	rows(w)

	_ = w.Flush()
	return buf.String()
}

// FormatHardwareList formats hardware profiles as a table.
func (f *TableFormatter) FormatHardwareList(hardware []v1alpha1.HardwareProfile) (string, error) {
	if len(hardware) == 0 {
		return "No hardware profiles found\n", nil
	}

	return f.write("NAME\tID\tBIOS\tVMX\tAGE", func(w *tabwriter.Writer) {
		for _, h := range hardware {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				h.Name, shortID(h.ID), orDash(h.BIOSPath), orDash(h.VMXPath), age(h.CreatedAt))
		}
	}), nil
}

// FormatContainerList formats containers as a table, numbered in display
// order.
func (f *TableFormatter) FormatContainerList(containers []v1alpha1.Container, hardware []v1alpha1.HardwareProfile) (string, error) {
	if len(containers) == 0 {
		return "No containers found\n", nil
	}

	names := make(map[string]string, len(hardware))
	for _, h := range hardware {
		names[h.ID] = h.Name
	}

	return f.write("#\tNAME\tID\tHARDWARE\tPATH\tAGE", func(w *tabwriter.Writer) {
		for i, c := range containers {
			hw := "-"
			if c.HasHardware() {
				if name, ok := names[*c.HardwareID]; ok {
					hw = name
				} else {
					hw = "<missing:" + shortID(*c.HardwareID) + ">"
				}
			}
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				i+1, c.Name, shortID(c.ID), hw, orDash(c.VMXPath), age(c.CreatedAt))
		}
	}), nil
}

// FormatStatusList formats container phases as a table.
func (f *TableFormatter) FormatStatusList(statuses []status.ContainerStatus) (string, error) {
	if len(statuses) == 0 {
		return "No containers found\n", nil
	}

	return f.write("NAME\tDOMAIN\tPHASE", func(w *tabwriter.Writer) {
		for _, s := range statuses {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, orDash(s.Domain), s.Phase)
		}
	}), nil
}

// FormatSettings formats the settings as key/value rows.
func (f *TableFormatter) FormatSettings(settings v1alpha1.Settings) (string, error) {
	return f.write("KEY\tVALUE", func(w *tabwriter.Writer) {
		_, _ = fmt.Fprintf(w, "vmware_install_path\t%s\n", orDash(v1alpha1.StringValue(settings.VMwareInstallPath)))
		_, _ = fmt.Fprintf(w, "original_bios_template_path\t%s\n", orDash(v1alpha1.StringValue(settings.OriginalBIOSTemplatePath)))
		_, _ = fmt.Fprintf(w, "original_vmx_template_path\t%s\n", orDash(v1alpha1.StringValue(settings.OriginalVMXTemplatePath)))
	}), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return orDash(id)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func age(t v1alpha1.Time) string {
	if t.IsZero() {
		return "-"
	}
	return formatAge(time.Since(t.Time))
}

// formatAge formats a duration as a human-readable age string.
// Examples: "5s", "2m", "3h", "4d", "2w", "1y"
func formatAge(d time.Duration) string {
	if d < 0 {
		return "unknown"
	}

	seconds := int(d.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%dd", days)
	}

	weeks := days / 7
	// Less than ~2 months (8 weeks)
	if weeks < 8 {
		return fmt.Sprintf("%dw", weeks)
	}

	years := days / 365
	if years > 0 {
		return fmt.Sprintf("%dy", years)
	}

	return fmt.Sprintf("%dd", days)
}
