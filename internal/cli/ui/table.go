package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/spring-attic/spring-native-aot/internal/compiler/pipeline"
)

var beanColumns = [...]string{"BEAN", "TYPE", "CREATOR", "STATUS"}

// statusColors highlights what happened to a bean, unknown statuses are plain
var statusColors = map[string]color.Attribute{
	pipeline.StatusRegistered: color.FgGreen,
	pipeline.StatusDelegated:  color.FgCyan,
	pipeline.StatusProxy:      color.FgCyan,
	pipeline.StatusExcluded:   color.FgHiBlack,
	pipeline.StatusSkipped:    color.FgYellow,
	pipeline.StatusFailed:     color.FgRed,
}

// BeanTable lists beans one per line with their type, creator and status
type BeanTable struct {
	w       io.Writer
	beans   []pipeline.BeanReport
	noColor bool
}

// NewBeanTable creates an empty listing writing to w
func NewBeanTable(w io.Writer, noColor bool) *BeanTable {
	return &BeanTable{w: w, noColor: noColor}
}

// Add appends a bean, listings keep registration order
func (t *BeanTable) Add(b pipeline.BeanReport) {
	t.beans = append(t.beans, b)
}

// Len returns the number of beans listed
func (t *BeanTable) Len() int {
	return len(t.beans)
}

// Render writes the header, a rule and one line per bean. Column widths are
// measured on the plain text so that colored statuses stay aligned.
func (t *BeanTable) Render() {
	var widths [len(beanColumns)]int
	for i, c := range beanColumns {
		widths[i] = len([]rune(c))
	}
	cells := make([][len(beanColumns)]string, len(t.beans))
	for i, b := range t.beans {
		cells[i] = [...]string{b.Name, b.Type, orDash(b.Creator), b.Status}
		for j, cell := range cells[i] {
			widths[j] = max(widths[j], len([]rune(cell)))
		}
	}

	heading := t.style(color.Bold, color.FgCyan)
	rule := t.style(color.FgHiBlack)
	for i, c := range beanColumns {
		heading.Fprint(t.w, pad(c, widths[i], i == len(beanColumns)-1))
	}
	fmt.Fprintln(t.w)
	for i, w := range widths {
		rule.Fprint(t.w, pad(strings.Repeat("─", w), w, i == len(widths)-1))
	}
	fmt.Fprintln(t.w)

	for _, row := range cells {
		last := len(row) - 1
		for j := 0; j < last; j++ {
			fmt.Fprint(t.w, pad(row[j], widths[j], false))
		}
		t.statusStyle(row[last]).Fprintln(t.w, row[last])
	}
}

func (t *BeanTable) statusStyle(status string) *color.Color {
	if attr, ok := statusColors[status]; ok {
		return t.style(attr)
	}
	plain := color.New()
	plain.DisableColor()
	return plain
}

func (t *BeanTable) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if t.noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

// pad right-pads s to width followed by the column gap, the last column is
// left as is
func pad(s string, width int, last bool) string {
	if last {
		return s
	}
	if n := width - len([]rune(s)); n > 0 {
		s += strings.Repeat(" ", n)
	}
	return s + "  "
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// WriteBeanDetails describes a single bean: a title with its name, then one
// labelled line per known attribute
func WriteBeanDetails(w io.Writer, b pipeline.BeanReport, noColor bool) {
	d := detailLines{}
	d.add("Type", b.Type)
	d.add("Status", b.Status)
	if b.Creator != "" {
		d.add("Creator", b.Creator)
		d.add("Injection points", fmt.Sprintf("%d", b.InjectionPoints))
	}
	if b.PrivilegedPackage != "" {
		d.add("Package", b.PrivilegedPackage)
		d.add("Method", b.Method)
	}
	if b.Error != nil {
		d.add("Error", b.Error.Error())
	}

	title := color.New(color.Bold, color.FgCyan)
	rule := color.New(color.FgHiBlack)
	if noColor {
		title.DisableColor()
		rule.DisableColor()
	}
	title.Fprintln(w, b.Name)
	rule.Fprintln(w, strings.Repeat("─", len([]rune(b.Name))))
	d.render(w, noColor)
}

// WriteRunSummary lists the facts of a generation run below its success line
func WriteRunSummary(w io.Writer, result *pipeline.Result, className string, noColor bool) {
	d := detailLines{}
	d.add("Run", result.RunID)
	d.add("Class", className)
	d.add("Sources", fmt.Sprintf("%d", len(result.Sources)))
	d.add("Native files", fmt.Sprintf("%d", len(result.NativeFiles)))
	d.add("Duration", result.Duration.Round(time.Millisecond).String())
	d.render(w, noColor)
}

// detailLines are labelled lines with the values aligned after the longest label
type detailLines [][2]string

func (d *detailLines) add(label, value string) {
	*d = append(*d, [2]string{label, value})
}

func (d detailLines) render(w io.Writer, noColor bool) {
	width := 0
	for _, l := range d {
		width = max(width, len(l[0]))
	}
	label := color.New(color.FgCyan)
	if noColor {
		label.DisableColor()
	}
	for _, l := range d {
		label.Fprint(w, l[0]+":"+strings.Repeat(" ", width-len(l[0])))
		fmt.Fprintf(w, " %s\n", l[1])
	}
}
