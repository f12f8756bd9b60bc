// nuliga-sync periodically scrapes league group pages from the nuLiga
// portal and folds resolvable fixtures into the local store. Fixtures
// whose teams cannot be auto-accepted are left out; they surface later
// through the analyze/review tools instead of being guessed at here.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"nuliga-league-mcp/internal/match"
	"nuliga-league-mcp/internal/model"
	"nuliga-league-mcp/internal/review"
	"nuliga-league-mcp/internal/scrape"
	"nuliga-league-mcp/internal/store"
)

func main() {
	var (
		dbPath       = flag.String("db", "data/league.db", "SQLite database path")
		cacheDir     = flag.String("cache", "data/cache", "HTML cache directory ('' disables caching)")
		championship = flag.String("championship", "", "nuLiga championship key, e.g. 'TVM+Winter+2025%2F26' (required)")
		groups       = flag.String("groups", "", "comma-separated group ids (required)")
		season       = flag.String("season", "", "season label stored with fixtures, e.g. 'Winter 2025/26'")
		league       = flag.String("league", "", "league label stored with fixtures, e.g. '2. Kreisklasse'")
		schedule     = flag.String("schedule", "0 6 * * *", "cron schedule")
		once         = flag.Bool("once", false, "run a single sync and exit")
		force        = flag.Bool("force", false, "bypass the HTML cache")
	)
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if *championship == "" || *groups == "" {
		logger.Fatal().Msg("-championship and -groups are required")
	}
	groupIDs := strings.Split(*groups, ",")

	run := func() {
		if err := syncOnce(logger, *dbPath, *cacheDir, *championship, groupIDs, *season, *league, *force); err != nil {
			logger.Error().Err(err).Msg("sync failed")
		}
	}

	if *once {
		run()
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(*schedule, run); err != nil {
		logger.Fatal().Err(err).Str("schedule", *schedule).Msg("invalid cron schedule")
	}
	logger.Info().Str("schedule", *schedule).Strs("groups", groupIDs).Msg("sync scheduled")
	c.Run()
}

func syncOnce(logger zerolog.Logger, dbPath, cacheDir, championship string, groupIDs []string, season, league string, force bool) error {
	db, err := store.NewLeagueDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	snap, err := db.Snapshot()
	if err != nil {
		return err
	}

	client := scrape.NewClient(cacheDir)
	payload, err := client.FetchGroups(championship, groupIDs, force)
	if err != nil {
		return err
	}

	clubs := match.NewClubMatcher()
	teams := match.NewTeamMatcher()

	var stored, skipped int
	for _, g := range payload.Groups {
		groupInfo := review.NormalizeLeague(g.Group)
		for _, m := range g.Matches {
			home := resolveTeam(clubs, teams, snap, m.HomeTeam)
			guest := resolveTeam(clubs, teams, snap, m.GuestTeam)
			if home == nil || guest == nil {
				skipped++
				logger.Warn().
					Str("home", m.HomeTeam).
					Str("guest", m.GuestTeam).
					Str("group", g.Group).
					Msg("unresolved fixture, leaving for review")
				continue
			}

			md := model.Matchday{
				// Deterministic ID so re-syncs update instead of duplicate.
				ID:         uuid.NewSHA1(uuid.NameSpaceURL, []byte(championship+"|"+g.Group+"|"+m.Date+"|"+home.ID+"|"+guest.ID)).String(),
				HomeTeamID: home.ID,
				AwayTeamID: guest.ID,
				MatchDate:  m.Date,
				Status:     model.MatchdayScheduled,
				League:     league,
				GroupName:  groupInfo.Group,
				Season:     season,
			}
			if hs, as, ok := parseScore(m.Score); ok {
				md.Status = model.MatchdayCompleted
				md.HomeScore, md.AwayScore = hs, as
			}
			if err := db.UpsertMatchday(md); err != nil {
				return fmt.Errorf("store matchday %s: %w", md.ID, err)
			}
			stored++
		}
	}

	logger.Info().Int("stored", stored).Int("skipped", skipped).Msg("sync complete")
	return nil
}

// resolveTeam resolves a scraped team label, accepting only matches the
// review policy would auto-accept.
func resolveTeam(clubs *match.ClubMatcher, teams *match.TeamMatcher, snap *store.Snapshot, label string) *model.Team {
	clubName, _ := match.SplitTeamLabel(label)
	if clubName == "" {
		clubName = label
	}
	clubCand := clubs.MatchClub(clubName, snap.Clubs)
	if clubCand.Matched == nil || clubCand.NeedsReview {
		return nil
	}
	teamCand := teams.MatchTeam(label, clubCand.Matched.ID, "", snap.Teams, snap.TeamSeasons)
	if teamCand.Matched == nil || teamCand.NeedsReview {
		return nil
	}
	return teamCand.Matched
}

// parseScore reads a "4:2" match-point score; anything else means the
// fixture has not been played.
func parseScore(s string) (home, away int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	a, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return h, a, true
}
