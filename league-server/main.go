package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"nuliga-league-mcp/internal/model"
	"nuliga-league-mcp/internal/store"
)

type ServerConfig struct {
	DBPath string
}

type MatchClubArgs struct {
	Name string `json:"name" jsonschema:"Raw club name to resolve (required)"`
}

type MatchTeamArgs struct {
	Label    string `json:"label" jsonschema:"Team label or suffix, e.g. 'SV Sürth 2' or 'II' (required)"`
	ClubID   string `json:"club_id" jsonschema:"Resolved club id to scope the search (required)"`
	Category string `json:"category" jsonschema:"Age/gender category, e.g. 'Herren 40'"`
}

type MatchPlayerArgs struct {
	Name     string `json:"name" jsonschema:"Player name as imported (required)"`
	LK       string `json:"lk" jsonschema:"LK rating string, e.g. '13.5'"`
	IDNumber string `json:"id_number" jsonschema:"Federation ID number"`
	Rank     int    `json:"rank" jsonschema:"Position in the imported lineup"`
}

type AnalyzeImportArgs struct {
	Payload model.ParsedPayload `json:"payload" jsonschema:"Parsed import payload: {team_info, matches[], players[]}"`
}

type StandingsArgs struct {
	League    string `json:"league" jsonschema:"League label filter, e.g. '2. Kreisklasse'"`
	GroupName string `json:"group_name" jsonschema:"Group filter, e.g. '43'"`
	Season    string `json:"season" jsonschema:"Season filter, e.g. 'Winter 2025/26'"`
}

type ClubLookupArgs struct {
	Query string `json:"query" jsonschema:"Substring of the club name (required)"`
}

type ReviewQueueArgs struct {
	Clear bool `json:"clear" jsonschema:"Drain the queue after returning it"`
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func main() {
	var (
		addr        = flag.String("addr", ":8080", "HTTP listen address")
		mcpPath     = flag.String("path", "/mcp", "HTTP path for MCP endpoint")
		dbPath      = flag.String("db", "data/league.db", "SQLite database path")
		requireAuth = flag.Bool("require-auth", true, "require API key auth via NULIGA_MCP_API_KEY")
		authHeader  = flag.String("auth-header", "X-API-Key", "HTTP header to read API key from")
	)
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	cfg := ServerConfig{DBPath: *dbPath}
	queue := newReviewQueue()

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "nuliga-league-mcp",
			Version: "0.1.0",
		},
		nil,
	)

	registry := make([]toolInfo, 0, 8)

	addTool(server, &registry, &mcp.Tool{
		Name:        "match_club",
		Description: "Resolve a raw club name against known clubs with a confidence score",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args MatchClubArgs) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(args.Name) == "" {
			return toolError(fmt.Errorf("name is required")), nil, nil
		}
		snap, err := loadSnapshot(cfg)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolResult(buildMatchClub(snap, args.Name))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "match_team",
		Description: "Resolve a team label among the teams of an already-resolved club",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args MatchTeamArgs) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(args.Label) == "" {
			return toolError(fmt.Errorf("label is required")), nil, nil
		}
		snap, err := loadSnapshot(cfg)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolResult(buildMatchTeam(snap, args.Label, args.ClubID, args.Category))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "match_player",
		Description: "Resolve an imported player row against known players (name/LK/ID cascade)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args MatchPlayerArgs) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(args.Name) == "" {
			return toolError(fmt.Errorf("name is required")), nil, nil
		}
		snap, err := loadSnapshot(cfg)
		if err != nil {
			return toolError(err), nil, nil
		}
		ip := model.ImportedPlayer{Name: args.Name, LK: args.LK, IDNumber: args.IDNumber, Rank: args.Rank}
		return toolResult(buildMatchPlayer(snap, ip))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "analyze_import",
		Description: "Full review of a parsed import payload: club, team, league, per-match import status",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AnalyzeImportArgs) (*mcp.CallToolResult, any, error) {
		snap, err := loadSnapshot(cfg)
		if err != nil {
			return toolError(err), nil, nil
		}
		res := buildAnalyzeImport(snap, args.Payload)
		if res.NeedsReview {
			queue.add(res)
		}
		return toolResult(res, nil)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "standings",
		Description: "Computed league table for a group (Tabellenpunkte, match points, sets, games)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args StandingsArgs) (*mcp.CallToolResult, any, error) {
		snap, err := loadSnapshot(cfg)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolResult(buildStandings(snap, args.League, args.GroupName, args.Season))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "club_lookup",
		Description: "List clubs matching a name substring, with their teams",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ClubLookupArgs) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(args.Query) == "" {
			return toolError(fmt.Errorf("query is required")), nil, nil
		}
		snap, err := loadSnapshot(cfg)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolResult(buildClubLookup(snap, args.Query))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "review_queue",
		Description: "Pending analyze results that need manual review",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ReviewQueueArgs) (*mcp.CallToolResult, any, error) {
		return toolResult(queue.list(args.Clear), nil)
	})

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	apiKey := strings.TrimSpace(os.Getenv("NULIGA_MCP_API_KEY"))
	if *requireAuth && apiKey == "" {
		logger.Fatal().Msg("NULIGA_MCP_API_KEY is required (set env var or run with --require-auth=false)")
	}

	withAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next(w, r)
				return
			}
			key := strings.TrimSpace(r.Header.Get(*authHeader))
			if key == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					key = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next(w, r)
		}
	}

	router := mux.NewRouter()
	router.Use(requestLogger(logger))

	router.HandleFunc("/health", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))

	router.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))

	router.PathPrefix(*mcpPath).HandlerFunc(withAuth(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", *authHeader},
	})

	logger.Info().Str("addr", *addr).Str("path", *mcpPath).Str("db", cfg.DBPath).Msg("MCP HTTP server listening")
	if err := http.ListenAndServe(*addr, c.Handler(router)); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func requestLogger(logger zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

// loadSnapshot opens the database and loads the full reference snapshot
// the pure engines run on. One load per tool call keeps results
// deterministic against concurrent writes.
func loadSnapshot(cfg ServerConfig) (*store.Snapshot, error) {
	db, err := store.NewLeagueDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.Snapshot()
}

func toolResult(v any, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	return toolJSONBytes(b), nil, nil
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
