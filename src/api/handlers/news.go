package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Deveshu04/expert-succotash/src/utils"
)

func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var symbols []string
	if symbolsParam := r.URL.Query().Get("symbols"); symbolsParam != "" {
		symbols = strings.Split(symbolsParam, ",")
	}

	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil {
			h.HandleErrors(w, utils.UnprocessableEntity("limit must be an integer"))
			return
		}
		limit = parsed
	}

	newsResponse, err := h.News.GetNews(ctx, symbols, r.URL.Query().Get("category"), limit)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, newsResponse, http.StatusOK)
}
