// internal/handlers/stats_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_5_vocab_trainer/internal/model"
	"go_5_vocab_trainer/internal/service"
	"go_5_vocab_trainer/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type StatsHandler struct {
	scheduler service.SchedulerService
	profile   service.ProfileService
	logger    *slog.Logger
}

func NewStatsHandler(scheduler service.SchedulerService, profile service.ProfileService, logger *slog.Logger) *StatsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsHandler{
		scheduler: scheduler,
		profile:   profile,
		logger:    logger,
	}
}

// GetStats は学習統計を取得するためのハンドラ
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStats"))

	stats, err := h.scheduler.GetStats(r.Context())
	if err != nil {
		logger.Error("Error getting stats in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Stats retrieved successfully")
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}

// PostReset は全進捗をリセットするためのハンドラ。
// 復習状態・日次統計・ストリークが消える。カスタム項目は残る。
func (h *StatsHandler) PostReset(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostReset"))

	if err := h.scheduler.ResetAllProgress(r.Context()); err != nil {
		logger.Error("Error resetting progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Progress reset successfully")
	w.WriteHeader(http.StatusNoContent)
}

// GetCategory は選択中カテゴリを取得するためのハンドラ
func (h *StatsHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCategory"))

	category, err := h.profile.GetSelectedCategory(r.Context())
	if err != nil {
		logger.Error("Error getting selected category in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.CategoryResponse{Category: category}, logger)
}

// PutCategory は選択中カテゴリを更新するためのハンドラ
func (h *StatsHandler) PutCategory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutCategory"))

	var req model.PutCategoryRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			firstErr := validationErrors[0]
			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				firstErr.Translate(webutil.Trans),
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	category := model.Category(*req.Category)
	if err := h.profile.SetSelectedCategory(r.Context(), category); err != nil {
		logger.Error("Error updating selected category in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Selected category updated successfully", slog.String("category", string(category)))
	webutil.RespondWithJSON(w, http.StatusOK, model.CategoryResponse{Category: category}, logger)
}
