package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/expopass/expopass-api/internal/api/handler/v1/response"
	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/service"
)

type RankingService interface {
	Recompute(ctx context.Context) (int, error)
	GetLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
	GetTopRankings(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	GetStallRank(ctx context.Context, stallID uint) (domain.LeaderboardEntry, error)
}

type RankingHandler struct {
	svc RankingService
}

func NewRankingHandler(svc RankingService) *RankingHandler {
	return &RankingHandler{
		svc: svc,
	}
}

// HandleGetLeaderboard godoc
// @Summary      Get the full stall leaderboard
// @Description  Entries are ordered by rank. Stalls with no ratings and
// @Description  no visits are absent.
// @Tags         rankings
// @Produce      json
// @Param        top       query      int  false  "return only the first N entries"
// @Success      200      {array}    domain.LeaderboardEntry
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /rankings [get]
func (h *RankingHandler) HandleGetLeaderboard(ctx *gin.Context) {
	rawTop := ctx.Query("top")

	var (
		entries []domain.LeaderboardEntry
		err     error
	)

	if rawTop == "" {
		entries, err = h.svc.GetLeaderboard(ctx.Request.Context())
	} else {
		top, parseErr := strconv.Atoi(rawTop)
		if parseErr != nil || top < 1 {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid top parameter (%v)", rawTop)))

			return
		}

		entries, err = h.svc.GetTopRankings(ctx.Request.Context(), top)
	}

	if err != nil {
		err = fmt.Errorf("v1.HandleGetLeaderboard -> h.svc -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleGetStallRank godoc
// @Summary      Get the current rank of one stall
// @Tags         rankings
// @Produce      json
// @Param        stallID   path       int  true  "stall ID"
// @Success      200      {object}   domain.LeaderboardEntry
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /rankings/stalls/{stallID} [get]
func (h *RankingHandler) HandleGetStallRank(ctx *gin.Context) {
	rawID := ctx.Param("stallID")
	stallID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || stallID == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid stall ID (%v)", rawID)))

		return
	}

	entry, err := h.svc.GetStallRank(ctx.Request.Context(), uint(stallID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStallNotFound):
			response.RenderErr(ctx, response.ErrNotFound("stall", "ID", stallID))
		case errors.Is(err, service.ErrRankingNotFound):
			response.RenderErr(ctx, response.ErrNotFound("ranking", "stall ID", stallID))
		default:
			err = fmt.Errorf("v1.HandleGetStallRank -> h.svc.GetStallRank -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, entry)
}

// HandleRecompute godoc
// @Summary      Recompute the stall rankings
// @Description  Rebuilds the whole leaderboard from current ratings and
// @Description  visit counts. Admin only.
// @Tags         rankings
// @Produce      json
// @Success      200      {object}   response.RecomputeResponse
// @Failure      500      {object}   response.Err
// @Router       /rankings/recompute [post]
func (h *RankingHandler) HandleRecompute(ctx *gin.Context) {
	ranked, err := h.svc.Recompute(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleRecompute -> h.svc.Recompute -> %w", err)
		response.RenderErr(ctx, response.ErrServiceUnavailable(err))

		return
	}

	ctx.JSON(http.StatusOK, response.RecomputeResponse{
		RankedStalls: ranked,
	})
}
