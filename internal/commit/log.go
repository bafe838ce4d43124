package commit

import (
	"strings"
	"time"
)

// LogSetup carries the release bookkeeping between log analysis and
// tag creation: the previous tag (empty when the repository has never
// been tagged), the tag being created (assigned once the new version is
// known), and whether the whole history is in scope.
type LogSetup struct {
	PrevTag string
	CurrTag string
	TakeAll bool
}

// Entry is one parsed conventional commit destined for the changelog.
type Entry struct {
	Sha      string
	Type     string
	Scope    string
	Summary  string
	Breaking bool
}

// Log is the analyzed commit range: the changelog entries plus the
// aggregate level, the maximum across all qualifying commits.
type Log struct {
	Entries []Entry
	Level   Level
}

// Analyze classifies raw commit messages into a Log. Commits that do not
// follow the convention still count as benign toward the aggregate level
// but contribute no changelog entry.
func Analyze(messages []ParsedCommit) Log {
	log := Log{Level: LevelBenign}
	for _, c := range messages {
		if lvl := Classify(c.Message); lvl > log.Level {
			log.Level = lvl
		}
		m := ccTypeRe.FindStringSubmatch(c.Message)
		if m == nil {
			continue
		}
		log.Entries = append(log.Entries, Entry{
			Sha:      c.Sha,
			Type:     m[1],
			Scope:    m[2],
			Summary:  m[4],
			Breaking: m[3] == "!" || breakingFooterRe.MatchString(c.Message),
		})
	}
	return log
}

// ParsedCommit is the minimal commit shape Analyze needs.
type ParsedCommit struct {
	Sha     string
	Message string
}

// sectionOrder fixes the changelog section sequence; unlisted types are
// appended in first-seen order.
var sectionOrder = []string{"feat", "fix"}

var sectionTitles = map[string]string{
	"feat": "New features",
	"fix":  "Bug fixes",
}

// Markdown renders the changelog body for one release.
func (l Log) Markdown(version string, date time.Time) string {
	var b strings.Builder
	b.WriteString("## " + version + " (" + date.Format("2006-01-02") + ")\n")

	byType := map[string][]Entry{}
	order := append([]string{}, sectionOrder...)
	for _, e := range l.Entries {
		if _, seen := byType[e.Type]; !seen && !contains(order, e.Type) {
			order = append(order, e.Type)
		}
		byType[e.Type] = append(byType[e.Type], e)
	}

	for _, typ := range order {
		entries := byType[typ]
		if len(entries) == 0 {
			continue
		}
		title, ok := sectionTitles[typ]
		if !ok {
			title = typ
		}
		b.WriteString("\n### " + title + "\n\n")
		for _, e := range entries {
			b.WriteString("- ")
			if e.Breaking {
				b.WriteString("**breaking** ")
			}
			if e.Scope != "" {
				b.WriteString(e.Scope + ": ")
			}
			b.WriteString(e.Summary)
			if e.Sha != "" {
				b.WriteString(" (" + shortSha(e.Sha) + ")")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatCommitMessage renders the changelog body as the release commit's
// message body: a blank separator line followed by one line per entry.
func (l Log) FormatCommitMessage() string {
	if len(l.Entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	for _, e := range l.Entries {
		b.WriteString("\n- " + e.Type)
		if e.Scope != "" {
			b.WriteString("(" + e.Scope + ")")
		}
		b.WriteString(": " + e.Summary)
	}
	return b.String()
}

func shortSha(sha string) string {
	if len(sha) >= 7 {
		return sha[:7]
	}
	return sha
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
