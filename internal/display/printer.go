package display

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"dailythought/internal/editor"
	"dailythought/internal/models"
	"dailythought/internal/query"
)

const previewRunes = 40

type Printer struct {
	Out    io.Writer
	ShowID bool
}

// NewPrinter writes to out, or to color.Output when out is nil.
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = color.Output
	}
	return &Printer{Out: out}
}

func (p *Printer) Title(title string) {
	_, _ = color.New(color.Bold, color.Underline).Fprintln(p.Out, title)
}

// Entries prints the dashboard list followed by the search summary, if any.
func (p *Printer) Entries(res query.Result) {
	p.Title(fmt.Sprintf("Diaries (%s)", res.Order.Label()))
	if res.Count() == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(p.Out, " none")
	} else {
		bold := color.New(color.Bold)
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.MaxColWidth = 60
		header := []interface{}{bold.Sprint("Date"), bold.Sprint("Mood"), bold.Sprint("Words"), bold.Sprint("Entry")}
		if p.ShowID {
			header = append([]interface{}{bold.Sprint("ID")}, header...)
		}
		tbl.AddRow(header...)
		for _, e := range res.Entries {
			row := []interface{}{e.Date, Badge(e.Mood, e.MoodIntensity), editor.CountText(e.Body).Words, Preview(e.Body)}
			if p.ShowID {
				row = append([]interface{}{e.ID}, row...)
			}
			tbl.AddRow(row...)
		}
		_, _ = fmt.Fprintln(p.Out, tbl)
	}
	if s := res.Summary(); s != "" {
		_, _ = color.New(color.Faint).Fprintln(p.Out, s)
	}
}

// Preview is the first line of body, cut to a fixed number of runes.
func Preview(body string) string {
	line := strings.TrimSpace(body)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if utf8.RuneCountInString(line) <= previewRunes {
		return line
	}
	r := []rune(line)
	return string(r[:previewRunes-1]) + "…"
}

func (p *Printer) Entry(e models.DiaryEntry) {
	p.Title(e.Date)
	_, _ = fmt.Fprintln(p.Out, Badge(e.Mood, e.MoodIntensity))
	_, _ = fmt.Fprintln(p.Out)
	_, _ = fmt.Fprintln(p.Out, e.Body)
	c := editor.CountText(e.Body)
	_, _ = color.New(color.Faint).Fprintf(p.Out, "\n%d words, %d characters  id %s\n", c.Words, c.Chars, e.ID)
}

// Status prints the editor's transient indicator.
func (p *Printer) Status(s editor.Snapshot) {
	var line string
	switch s.State {
	case editor.Saving:
		line = color.New(color.Faint).Sprint("Saving...")
	case editor.Saved:
		line = color.New(color.FgGreen).Sprint("Saved")
	case editor.Error:
		line = color.New(color.FgRed).Sprint(s.Message)
	case editor.Editing:
		line = color.New(color.Faint).Sprintf("%d words, %d characters", s.Counts.Words, s.Counts.Chars)
		if s.Dirty {
			line += color.New(color.Faint, color.Italic).Sprint("  (unsaved)")
		}
	default:
		return
	}
	_, _ = fmt.Fprintln(p.Out, line)
}

// Analytics prints the mood summary, distribution and trend.
func (p *Printer) Analytics(s models.MoodAnalyticsSnapshot) {
	p.Title("Mood analytics")
	if s.IsEmpty() {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(p.Out, " No mood data yet. Start writing to see your mood patterns.")
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Total entries"), s.TotalEntries)
	tbl.AddRow(bold.Sprint("Current streak"), plural(s.StreakDays, "day", "days"))
	if s.MostCommonMood != nil {
		m := *s.MostCommonMood
		tbl.AddRow(bold.Sprint("Most common"), fmt.Sprintf("%s  %d%% of entries", Badge(m, models.DefaultIntensity), s.MostCommonShare()))
		tbl.AddRow("", m.Description())
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(p.Out, tbl)

	_, _ = fmt.Fprintln(p.Out)
	p.Title("Distribution")
	pct := s.Percentages()
	dist := uitable.New()
	dist.Separator = "  "
	for _, m := range models.Moods {
		n := s.MoodDistribution[m]
		if n == 0 {
			continue
		}
		bar := swatch(m, models.MaxIntensity).Sprint(strings.Repeat("█", max(1, pct[m]/5)))
		dist.AddRow(m.Label(), bar, fmt.Sprintf("%d (%d%%)", n, pct[m]))
	}
	_, _ = fmt.Fprintln(p.Out, dist)

	if len(s.MoodTrend) > 0 {
		_, _ = fmt.Fprintln(p.Out)
		p.Title("Recent trend")
		trend := uitable.New()
		trend.Separator = "  "
		for _, t := range s.MoodTrend {
			trend.AddRow(t.Date, Badge(t.Mood, t.Intensity))
		}
		_, _ = fmt.Fprintln(p.Out, trend)
	}
	_, _ = color.New(color.Faint).Fprintf(p.Out, "\nLast updated %s\n", s.LastUpdated.Local().Format("2006-01-02 15:04"))
}

// Moods prints the legend of every mood and its color.
func (p *Printer) Moods() {
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, m := range models.Moods {
		tbl.AddRow(Badge(m, models.MaxIntensity), string(m), m.Description())
	}
	_, _ = fmt.Fprintln(p.Out, tbl)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
