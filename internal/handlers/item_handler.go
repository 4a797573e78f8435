// internal/handlers/item_handler.go
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

type ItemHandler struct {
	service service.CatalogService
	logger  *slog.Logger
}

func NewItemHandler(s service.CatalogService, logger *slog.Logger) *ItemHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemHandler{
		service: s,
		logger:  logger,
	}
}

// GetItems は学習項目 (静的カタログ + カスタム) の一覧を取得するためのハンドラ
func (h *ItemHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetItems"))

	category := model.Category(r.URL.Query().Get("category"))
	if !category.IsValid() {
		logger.Warn("Invalid category in query", slog.String("category", string(category)))
		appErr := model.NewAppError("INVALID_QUERY_PARAM", "categoryの値が正しくありません。", "category", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	items, err := h.service.ListItems(r.Context(), category)
	if err != nil {
		logger.Error("Error listing items in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if items == nil {
		items = []*model.LearningItem{}
	}
	logger.Info("Items listed successfully", slog.Int("count", len(items)))
	webutil.RespondWithJSON(w, http.StatusOK, items, logger)
}

// PostItem は新しいカスタム項目を作成するためのハンドラ
func (h *ItemHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostItem"))

	var req model.PostItemRequest
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

			// 最初のエラーを代表としてクライアントに返す
			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)
			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				translatedMsg,
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

	item, err := h.service.AddCustomItem(r.Context(), &req)
	if err != nil {
		logger.Error("Error adding custom item in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Custom item created successfully", slog.String("item_id", item.ItemID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, item, logger)
}

// DeleteItem はカスタム項目を削除するためのハンドラ。
// 既に存在しない場合も成功扱い (no-op) で204を返す。
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteItem"))

	itemIDStr := chi.URLParam(r, "item_id")
	itemID, err := uuid.Parse(itemIDStr)
	if err != nil {
		logger.Warn("Invalid item ID format in URL", slog.String("item_id_str", itemIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "item_idの形式が正しくありません。", "item_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("item_id", itemID.String()))

	if err := h.service.RemoveCustomItem(r.Context(), itemID); err != nil {
		logger.Error("Error removing custom item in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Custom item deleted successfully (or was already absent)")
	w.WriteHeader(http.StatusNoContent)
}
