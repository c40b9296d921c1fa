package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/group-stage/internal/usecase"
)

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	items, err := h.rankingService.GetStandings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(ctx, items))
}

func (h *Handler) GetGroupStanding(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGroupStanding")
	defer span.End()

	group, err := strconv.Atoi(strings.TrimSpace(r.PathValue("group")))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: group must be an integer", usecase.ErrInvalidInput))
		return
	}

	item, err := h.rankingService.GetGroupStanding(ctx, group)
	if err != nil {
		h.logger.WarnContext(ctx, "get group standing failed", "group", group, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, groupStandingToDTO(ctx, item))
}

// ComputeStandings ranks a tournament sent in the request body without
// reading or writing the stores.
func (h *Handler) ComputeStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ComputeStandings")
	defer span.End()

	var req computeStandingsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	teams := make([]usecase.TeamInput, 0, len(req.Teams))
	for _, t := range req.Teams {
		teams = append(teams, t.toInput())
	}
	matches := make([]usecase.MatchInput, 0, len(req.Matches))
	for _, m := range req.Matches {
		matches = append(matches, m.toInput())
	}

	items, err := h.rankingService.ComputeStandings(ctx, teams, matches)
	if err != nil {
		h.logger.WarnContext(ctx, "compute standings failed", "teams", len(teams), "matches", len(matches), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(ctx, items))
}
