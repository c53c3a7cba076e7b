package hiscore

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/resolve109/solo-leveling/internal/skill"
)

// SkillData is one rank,level,xp row. Unranked rows carry rank -1.
type SkillData struct {
	Rank  int   `json:"rank"`
	Level int   `json:"level"`
	XP    int64 `json:"xp"`
}

type Stats struct {
	Player  string                    `json:"player"`
	Overall SkillData                 `json:"overall"`
	Skills  map[skill.Skill]SkillData `json:"skills"`
}

// Level returns the level for s, 1 when the skill is missing.
func (s *Stats) Level(sk skill.Skill) int {
	if d, ok := s.Skills[sk]; ok {
		return d.Level
	}
	return skill.MinLevel
}

// Lookup fetches a player's hiscores. Unknown players yield ErrPlayerNotFound.
func (c *Client) Lookup(ctx context.Context, player string) (*Stats, error) {
	player = strings.TrimSpace(player)
	if player == "" {
		return nil, errors.New("hiscore: player name is required")
	}

	body, err := c.getWithRetry(ctx, c.config.BaseURL+"/index_lite.ws?player="+escape(player))
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, player)
		}
		c.log.Warn("hiscore lookup failed", zap.String("player", player), zap.Error(err))
		return nil, err
	}

	stats := ParseHiscores(body)
	stats.Player = player
	return stats, nil
}

// ParseHiscores reads the lite CSV format: the Overall row, then one row per
// skill in hiscore order. Rows after the skills (activities, bosses) are
// ignored. Malformed numbers fall back to rank -1, level 1 and xp 0.
func ParseHiscores(body []byte) *Stats {
	stats := &Stats{Skills: make(map[skill.Skill]SkillData)}
	skills := skill.Trainable()

	sc := bufio.NewScanner(bytes.NewReader(body))
	row := 0
	for sc.Scan() && row <= len(skills) {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if parts := strings.Split(line, ","); len(parts) >= 3 {
			d := SkillData{
				Rank:  atoiOr(parts[0], -1),
				Level: atoiOr(parts[1], skill.MinLevel),
				XP:    atoi64Or(parts[2], 0),
			}
			if row == 0 {
				stats.Overall = d
			} else {
				stats.Skills[skills[row-1]] = d
			}
		}
		row++
	}
	return stats
}

func atoiOr(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

func atoi64Or(s string, def int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return def
	}
	return v
}

// Result is the outcome of one lookup in LookupMany.
type Result struct {
	Player string
	Stats  *Stats
	Err    error
}

// LookupMany fetches several players with at most parallel requests in flight.
// Per-player failures are reported in the results; only a canceled context
// fails the call. Results keep the input order.
func (c *Client) LookupMany(ctx context.Context, players []string, parallel int) ([]Result, error) {
	if parallel <= 0 {
		parallel = 4
	}
	results := make([]Result, len(players))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, p := range players {
		g.Go(func() error {
			stats, err := c.Lookup(gctx, p)
			results[i] = Result{Player: p, Stats: stats, Err: err}
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
