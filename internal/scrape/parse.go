package scrape

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Match is one fixture row of a group's meeting plan.
type Match struct {
	Date      string `json:"date,omitempty"`
	HomeTeam  string `json:"home_team"`
	GuestTeam string `json:"guest_team"`
	Score     string `json:"score,omitempty"`
}

// Group is the parsed content of one league group page.
type Group struct {
	Group   string   `json:"group"`
	Teams   []string `json:"teams"`
	Matches []Match  `json:"matches"`
}

// Payload is the full scraped result, shape {groups: [...]}.
type Payload struct {
	Groups []Group `json:"groups"`
}

var groupHeadingRe = regexp.MustCompile(`Gr\.?\s*\d+`)

// ParseGroupPage reads a nuLiga group page. The page carries a heading
// with the group label, a standings table (header cell "Mannschaft") and
// a meeting plan (header cell "Heimmannschaft"). Tables are located by
// their header text, not position, since the portal reorders sections
// between championship types.
func ParseGroupPage(r io.Reader) (*Group, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse group page: %w", err)
	}

	g := &Group{}
	doc.Find("h1, h2").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if m := groupHeadingRe.FindString(s.Text()); m != "" {
			g.Group = m
			return false
		}
		return true
	})

	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		header := headerCells(table)
		switch {
		case indexOf(header, "Heimmannschaft") >= 0:
			g.Matches = append(g.Matches, parseMeetings(table, header)...)
		case indexOf(header, "Mannschaft") >= 0:
			g.Teams = append(g.Teams, parseStandingsTeams(table, header)...)
		}
	})

	if g.Group == "" && len(g.Teams) == 0 && len(g.Matches) == 0 {
		return nil, fmt.Errorf("no group content found in page")
	}
	return g, nil
}

// headerCells returns the trimmed texts of the first row's th/td cells.
func headerCells(table *goquery.Selection) []string {
	var cells []string
	table.Find("tr").First().Find("th, td").Each(func(i int, s *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(s.Text()))
	})
	return cells
}

func indexOf(cells []string, name string) int {
	for i, c := range cells {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

func parseStandingsTeams(table *goquery.Selection, header []string) []string {
	col := indexOf(header, "Mannschaft")
	var teams []string
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := tr.Find("td")
		if cells.Length() <= col {
			return
		}
		if name := strings.TrimSpace(cells.Eq(col).Text()); name != "" {
			teams = append(teams, name)
		}
	})
	return teams
}

func parseMeetings(table *goquery.Selection, header []string) []Match {
	dateCol := indexOf(header, "Datum")
	homeCol := indexOf(header, "Heimmannschaft")
	guestCol := indexOf(header, "Gastmannschaft")
	scoreCol := indexOf(header, "Matchpunkte")
	if scoreCol < 0 {
		scoreCol = indexOf(header, "Ergebnis")
	}

	var matches []Match
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := tr.Find("td")
		if cells.Length() <= homeCol || cells.Length() <= guestCol || homeCol < 0 || guestCol < 0 {
			return
		}
		m := Match{
			HomeTeam:  strings.TrimSpace(cells.Eq(homeCol).Text()),
			GuestTeam: strings.TrimSpace(cells.Eq(guestCol).Text()),
		}
		if m.HomeTeam == "" || m.GuestTeam == "" {
			return
		}
		if dateCol >= 0 && cells.Length() > dateCol {
			m.Date = strings.TrimSpace(cells.Eq(dateCol).Text())
		}
		if scoreCol >= 0 && cells.Length() > scoreCol {
			m.Score = strings.TrimSpace(cells.Eq(scoreCol).Text())
		}
		matches = append(matches, m)
	})
	return matches
}
