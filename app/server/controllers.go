package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/senkathir/sorkuvai/app/common"
	"github.com/senkathir/sorkuvai/app/search"
)

type Controller struct {
	ss *search.Service
}

func NewController(ss *search.Service) *Controller {
	return &Controller{ss: ss}
}

func (ct *Controller) GetSearch(c echo.Context) error {
	params := search.Params{
		Query:        c.QueryParam("q"),
		MatchType:    c.QueryParam("match_type"),
		WordPosition: c.QueryParam("word_position"),
		WordRoot:     c.QueryParam("word_root"),
		SortBy:       c.QueryParam("sort_by"),
	}

	var err error
	if params.WorkIDs, err = parseIDList(c.QueryParam("work_ids")); err != nil {
		return common.NewBadParameter("work_ids", "must be a comma-separated list of integers")
	}
	if params.CollectionID, err = parseOptionalInt64(c.QueryParam("collection_id")); err != nil {
		return common.NewBadParameter("collection_id", "must be an integer")
	}
	if params.Limit, err = parseOptionalInt(c.QueryParam("limit")); err != nil {
		return common.NewBadParameter("limit", "must be an integer")
	}
	if params.Offset, err = parseOptionalInt(c.QueryParam("offset")); err != nil {
		return common.NewBadParameter("offset", "must be an integer")
	}

	resp, err := ct.ss.Search(c.Request().Context(), params)
	if err != nil {
		return common.WrapErrorForResponse(err, "search failed")
	}
	return c.JSON(http.StatusOK, resp)
}

func (ct *Controller) GetWorks(c echo.Context) error {
	works, err := ct.ss.Works(c.Request().Context(), c.QueryParam("sort_by"))
	if err != nil {
		return common.NewBadParameter("sort_by", err.Error())
	}
	return c.JSON(http.StatusOK, works)
}

func (ct *Controller) GetVerse(c echo.Context) error {
	verseID, err := strconv.ParseInt(c.Param("verse_id"), 10, 64)
	if err != nil {
		return common.NewBadParameter("verse_id", "must be an integer")
	}
	detail, err := ct.ss.Verse(c.Request().Context(), verseID)
	if errors.Is(err, search.ErrVerseNotFound) {
		return common.NewUserVisibleError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

func (ct *Controller) GetCollections(c echo.Context) error {
	collections, err := ct.ss.Collections(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, collections)
}

func (ct *Controller) GetCollectionTree(c echo.Context) error {
	tree, err := ct.ss.CollectionTree(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tree)
}

func (ct *Controller) GetHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func parseIDList(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseOptionalInt64(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func parseOptionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
