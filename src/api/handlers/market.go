package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Deveshu04/expert-succotash/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	symbol := chi.URLParam(r, "symbol")
	quote, err := h.Market.GetQuote(ctx, symbol)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, quote, http.StatusOK)
}

func (h *Handler) GetQuotes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	symbolsParam := r.URL.Query().Get("symbols")
	if strings.TrimSpace(symbolsParam) == "" {
		h.HandleErrors(w, utils.BadRequest("symbols query parameter is required"))
		return
	}

	quotes, err := h.Market.GetQuotes(ctx, strings.Split(symbolsParam, ","))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, quotes, http.StatusOK)
}
