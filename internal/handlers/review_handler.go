// internal/handlers/review_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_5_vocab_trainer/internal/model"
	"go_5_vocab_trainer/internal/service"
	"go_5_vocab_trainer/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	service service.SchedulerService
	logger  *slog.Logger
}

func NewReviewHandler(s service.SchedulerService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		service: s,
		logger:  logger,
	}
}

// GetNextReview は次に出題する項目を取得するためのハンドラ。
// クエリ: category (省略可)、exclude (直前に出題した項目のID、省略可)
func (h *ReviewHandler) GetNextReview(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetNextReview"))

	category := model.Category(r.URL.Query().Get("category"))
	if !category.IsValid() {
		logger.Warn("Invalid category in query", slog.String("category", string(category)))
		appErr := model.NewAppError("INVALID_QUERY_PARAM", "categoryの値が正しくありません。", "category", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	excludeID := uuid.Nil
	if excludeStr := r.URL.Query().Get("exclude"); excludeStr != "" {
		parsed, err := uuid.Parse(excludeStr)
		if err != nil {
			logger.Warn("Invalid exclude ID in query", slog.String("exclude", excludeStr))
			appErr := model.NewAppError("INVALID_QUERY_PARAM", "excludeの形式が正しくありません。", "exclude", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		excludeID = parsed
	}

	next, err := h.service.PickNext(r.Context(), category, excludeID)
	if err != nil {
		if errors.Is(err, model.ErrEmptyCatalog) || errors.Is(err, model.ErrNotFound) {
			logger.Info("No item available for review", slog.Any("error", err))
		} else {
			logger.Error("Error picking next item in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Next item picked successfully", slog.String("item_id", next.ItemID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, next, logger)
}

// PostReviewResult は出題結果 (正解/不正解) を記録するためのハンドラ
func (h *ReviewHandler) PostReviewResult(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostReviewResult"))

	itemID, ok := h.parseItemID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("item_id", itemID.String()))

	var req model.SubmitReviewRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))
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

	state, err := h.service.RecordOutcome(r.Context(), itemID, *req.IsCorrect)
	if err != nil {
		logger.Error("Error recording outcome in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Outcome recorded successfully", slog.Int("level", state.Level))
	webutil.RespondWithJSON(w, http.StatusOK, state, logger)
}

// PostPractice はフリーテキスト練習モードの記録用ハンドラ。
// この経路は回答内容に関わらず常に正解として進捗を進める (元の挙動を維持)。
func (h *ReviewHandler) PostPractice(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostPractice"))

	itemID, ok := h.parseItemID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("item_id", itemID.String()))

	state, err := h.service.RecordPractice(r.Context(), itemID)
	if err != nil {
		logger.Error("Error recording practice in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Practice recorded successfully", slog.Int("level", state.Level))
	webutil.RespondWithJSON(w, http.StatusOK, state, logger)
}

func (h *ReviewHandler) parseItemID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	itemIDStr := chi.URLParam(r, "item_id")
	itemID, err := uuid.Parse(itemIDStr)
	if err != nil {
		logger.Warn("Invalid item ID format in URL", slog.String("item_id_str", itemIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "item_idの形式が正しくありません。", "item_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return itemID, true
}
