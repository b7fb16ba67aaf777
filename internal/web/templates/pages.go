package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/polancolabs/growthlab/internal/domain"
)

func esc(s string) string { return templ.EscapeString(s) }

// layout wraps a page body in the shared chrome.
func layout(title string, body func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s · GrowthLab</title>
<link rel="stylesheet" href="/static/app.css">
</head>
<body>
<nav class="topnav"><a href="/">GrowthLab</a><a href="/team">Team</a></nav>
<main>
`, esc(title)); err != nil {
			return err
		}
		if err := body(w); err != nil {
			return err
		}
		_, err := fmt.Fprint(w, "</main>\n</body>\n</html>\n")
		return err
	})
}

func writeHeader(w io.Writer, h ProjectHeader) error {
	_, err := fmt.Fprintf(w, `<header class="project-header">
<h1>%s</h1>
<div class="north-star">
<span class="metric-name">%s</span>
<span class="metric-value">%s / %s</span>
<div class="progress"><div class="progress-fill" style="width: %d%%"></div></div>
</div>
<nav class="views">
<a href="/projects/%s/explore">Explore</a>
<a href="/projects/%s/board">Board</a>
<a href="/projects/%s/library">Library</a>
</nav>
</header>
`,
		esc(h.ProjectName),
		esc(h.NorthStar.Name),
		esc(formatMetric(h.NorthStar.CurrentValue, h.NorthStar.Type)),
		esc(formatMetricWithName(h.NorthStar.TargetValue, h.NorthStar)),
		progressPercent(h.NorthStar),
		esc(h.ProjectID), esc(h.ProjectID), esc(h.ProjectID),
	)
	return err
}

func writeExperimentRow(w io.Writer, e domain.Experiment) error {
	_, err := fmt.Fprintf(w, `<tr>
<td>%s</td>
<td><span class="status">%s</span></td>
<td>%s</td>
<td>%s</td>
<td class="score">%s</td>
<td class="score">%s</td>
<td class="score">%s</td>
<td class="%s">%s</td>
</tr>
`,
		esc(e.Title),
		esc(string(e.Status)),
		esc(string(e.FunnelStage)),
		esc(ownerLabel(e.Owner)),
		formatInt(e.Impact), formatInt(e.Confidence), formatInt(e.Ease),
		iceBandClass(e.ICEScore), formatInt(e.ICEScore),
	)
	return err
}

// Explore renders the backlog table sorted by ICE score.
func Explore(data ExploreData) templ.Component {
	return layout(data.Header.ProjectName+" · Explore", func(w io.Writer) error {
		if err := writeHeader(w, data.Header); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<section class="explore">
<form method="get"><input type="search" name="q" value="%s" placeholder="Search experiments"><input type="hidden" name="sort" value="%s"></form>
<table>
<thead><tr><th>Title</th><th>Status</th><th>Stage</th><th>Owner</th><th>I</th><th>C</th><th>E</th><th>ICE</th></tr></thead>
<tbody>
`, esc(data.Query), esc(string(data.Sort))); err != nil {
			return err
		}
		for _, e := range data.Experiments {
			if err := writeExperimentRow(w, e); err != nil {
				return err
			}
		}
		_, err := fmt.Fprint(w, "</tbody>\n</table>\n</section>\n")
		return err
	})
}

// Board renders the four status columns in fixed order.
func Board(data BoardData) templ.Component {
	return layout(data.Header.ProjectName+" · Board", func(w io.Writer) error {
		if err := writeHeader(w, data.Header); err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, `<section class="board">`+"\n"); err != nil {
			return err
		}
		for _, col := range data.Columns {
			if _, err := fmt.Fprintf(w, `<div class="column">
<h2>%s <span class="count">%d</span></h2>
`, esc(string(col.Status)), len(col.Experiments)); err != nil {
				return err
			}
			for _, e := range col.Experiments {
				if _, err := fmt.Fprintf(w, `<article class="card %s">
<h3>%s</h3>
<p class="owner">%s</p>
<p class="ice">ICE %s</p>
</article>
`, iceBandClass(e.ICEScore), esc(e.Title), esc(ownerLabel(e.Owner)), formatInt(e.ICEScore)); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprint(w, "</div>\n"); err != nil {
				return err
			}
		}
		_, err := fmt.Fprint(w, "</section>\n")
		return err
	})
}

// Library renders the finished experiments with their key learnings.
func Library(data LibraryData) templ.Component {
	return layout(data.Header.ProjectName+" · Library", func(w io.Writer) error {
		if err := writeHeader(w, data.Header); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<section class="library">
<form method="get">
<input type="search" name="q" value="%s" placeholder="Search learnings">
<input type="hidden" name="result" value="%s">
<input type="hidden" name="stage" value="%s">
</form>
`, esc(data.Filter.Query), esc(string(data.Filter.Result)), esc(data.Filter.Stage)); err != nil {
			return err
		}
		for _, e := range data.Experiments {
			learning := ""
			if e.KeyLearnings != nil {
				learning = *e.KeyLearnings
			}
			if _, err := fmt.Fprintf(w, `<article class="learning">
<h3>%s</h3>
<p class="meta">%s · %s · concluded %s</p>
<p>%s</p>
</article>
`, esc(e.Title), esc(string(e.Status)), esc(string(e.FunnelStage)), esc(formatDate(e.EndDate)), esc(learning)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprint(w, "</section>\n")
		return err
	})
}

// Home lists every project with its North Star progress.
func Home(data HomeData) templ.Component {
	return layout("Projects", func(w io.Writer) error {
		if _, err := fmt.Fprint(w, `<section class="projects">`+"\n<h1>Projects</h1>\n"); err != nil {
			return err
		}
		for _, p := range data.Projects {
			logo := ""
			if p.Metadata.Logo != nil {
				logo = *p.Metadata.Logo
			}
			if _, err := fmt.Fprintf(w, `<a class="project-card" href="/projects/%s/explore">
<span class="logo">%s</span>
<span class="name">%s</span>
<span class="metric">%s: %s / %s</span>
</a>
`,
				esc(p.Metadata.ID), esc(logo), esc(p.Metadata.Name),
				esc(p.NorthStar.Name),
				esc(formatMetric(p.NorthStar.CurrentValue, p.NorthStar.Type)),
				esc(formatMetric(p.NorthStar.TargetValue, p.NorthStar.Type)),
			); err != nil {
				return err
			}
		}
		_, err := fmt.Fprint(w, "</section>\n")
		return err
	})
}

// Team renders the roster.
func Team(data TeamData) templ.Component {
	return layout("Team", func(w io.Writer) error {
		if _, err := fmt.Fprint(w, `<section class="team">`+"\n<h1>Team</h1>\n<ul>\n"); err != nil {
			return err
		}
		for _, m := range data.Members {
			if _, err := fmt.Fprintf(w, `<li><span class="avatar">%s</span> %s <span class="role">%s</span> <span class="email">%s</span></li>
`, esc(m.Avatar), esc(m.Name), esc(string(m.Role)), esc(m.Email)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprint(w, "</ul>\n</section>\n")
		return err
	})
}
