package v1

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"daylog.dev/backend/internal/model"
	"daylog.dev/backend/internal/pkg/dlerr"
	"daylog.dev/backend/internal/server/svr"
	"daylog.dev/backend/internal/service"
	"daylog.dev/backend/internal/util/rekuest"
)

type Day struct {
	fx.In

	DayService *service.Day
}

func RegisterDay(v1 *svr.V1, c Day) {
	v1.Get("/users/:userId/days/:date", c.GetDaySummary)
}

// @Summary      Get a Day Summary
// @Description  Aggregates a user's checkins, activities, daily metrics and weather for one calendar date into a chronological timeline.
// @Tags         Day
// @Produce      json
// @Param        userId  path      string  true   "User ID"
// @Param        date    path      string  true   "Date in YYYY-MM-DD"
// @Param        lat     query     number  false  "Latitude to enable the weather lookup; requires lon"
// @Param        lon     query     number  false  "Longitude to enable the weather lookup; requires lat"
// @Success      200     {object}  model.DaySummary
// @Failure      400     {object}  dlerr.DaylogError "Invalid or missing userId, date or coordinates"
// @Failure      500     {object}  dlerr.DaylogError "An unexpected error occurred"
// @Router       /api/v1/users/{userId}/days/{date} [GET]
func (c *Day) GetDaySummary(ctx *fiber.Ctx) error {
	userID := ctx.Params("userId")
	date := ctx.Params("date")
	if err := rekuest.ValidVar(ctx, date, "required,datetime=2006-01-02"); err != nil {
		return err
	}

	coords, err := parseCoords(ctx)
	if err != nil {
		return err
	}

	summary, err := c.DayService.GetDaySummary(ctx.UserContext(), userID, date, coords)
	if err != nil {
		return err
	}
	return ctx.JSON(summary)
}

// parseCoords reads the optional lat/lon pair gating the weather lookup.
func parseCoords(ctx *fiber.Ctx) (*model.Coordinates, error) {
	latStr, lonStr := ctx.Query("lat"), ctx.Query("lon")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, dlerr.ErrInvalidReq.Msg("invalid request: lat and lon must be provided together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, dlerr.ErrInvalidReq.Msg("invalid request: malformed lat %q", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, dlerr.ErrInvalidReq.Msg("invalid request: malformed lon %q", lonStr)
	}
	if err := rekuest.ValidVar(ctx, lat, "latitude"); err != nil {
		return nil, err
	}
	if err := rekuest.ValidVar(ctx, lon, "longitude"); err != nil {
		return nil, err
	}

	return &model.Coordinates{Latitude: lat, Longitude: lon}, nil
}
